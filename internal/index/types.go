package index

import "fmt"

type FileTask struct {
	Path string
}

type ProblemKind int

const (
	ProblemMissing ProblemKind = iota
	ProblemUnsupported
	ProblemUnreadable
	ProblemExcluded
)

func (k ProblemKind) String() string {
	switch k {
	case ProblemMissing:
		return "missing"
	case ProblemUnsupported:
		return "unsupported"
	case ProblemUnreadable:
		return "unreadable"
	case ProblemExcluded:
		return "excluded"
	default:
		return fmt.Sprintf("ProblemKind(%d)", int(k))
	}
}

// Problem is a path skipped during enumeration. None of them stop the run.
type Problem struct {
	Path string
	Kind ProblemKind
	Err  error
}

func (p Problem) String() string {
	switch p.Kind {
	case ProblemMissing:
		return fmt.Sprintf("path <%s> is invalid", p.Path)
	case ProblemUnsupported:
		if p.Err != nil {
			return fmt.Sprintf("path <%s> skipped: %v", p.Path, p.Err)
		}
		return fmt.Sprintf("I don't know what kind of file <%s> is", p.Path)
	case ProblemUnreadable:
		return fmt.Sprintf("path <%s> could not be listed: %v", p.Path, p.Err)
	case ProblemExcluded:
		return fmt.Sprintf("path <%s> excluded", p.Path)
	default:
		return fmt.Sprintf("path <%s>: %s", p.Path, p.Kind)
	}
}

type Options struct {
	// WorkingDir is the root used when none are given. Empty means os.Getwd.
	WorkingDir string

	// Exclude holds glob patterns matched against the slash-separated path
	// and against the base name.
	Exclude []string
}
