package index

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// Enumerate expands roots into the sorted list of regular files to scan.
// Directories are walked breadth-first. Paths that cannot be used are
// returned as problems; err is only set for invalid options.
func Enumerate(fsys afero.Fs, roots []string, opts Options) (tasks []FileTask, problems []Problem, err error) {
	excludes, err := compileExcludes(opts.Exclude)
	if err != nil {
		return nil, nil, err
	}

	if len(roots) == 0 {
		wd := opts.WorkingDir
		if wd == "" {
			wd, err = os.Getwd()
			if err != nil {
				return nil, nil, fmt.Errorf("working directory: %w", err)
			}
		}
		roots = []string{wd}
	}

	excluded := func(p string) bool {
		slash := filepath.ToSlash(p)
		base := filepath.Base(p)
		for _, g := range excludes {
			if g.Match(slash) || g.Match(base) {
				return true
			}
		}
		return false
	}

	var queue []string

	for _, root := range roots {
		info, serr := fsys.Stat(root)
		switch {
		case errors.Is(serr, fs.ErrNotExist):
			problems = append(problems, Problem{Path: root, Kind: ProblemMissing, Err: serr})
		case serr != nil:
			problems = append(problems, Problem{Path: root, Kind: ProblemUnreadable, Err: serr})
		case excluded(root):
			problems = append(problems, Problem{Path: root, Kind: ProblemExcluded})
		case info.Mode().IsRegular():
			tasks = append(tasks, FileTask{Path: root})
		case info.IsDir():
			queue = append(queue, root)
		default:
			problems = append(problems, Problem{Path: root, Kind: ProblemUnsupported})
		}
	}

	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		entries, rerr := afero.ReadDir(fsys, dir)
		if rerr != nil {
			problems = append(problems, Problem{Path: dir, Kind: ProblemUnreadable, Err: rerr})
			continue
		}

		for _, entry := range entries {
			child := filepath.Join(dir, entry.Name())
			if excluded(child) {
				problems = append(problems, Problem{Path: child, Kind: ProblemExcluded})
				continue
			}

			mode := entry.Mode()
			if mode&fs.ModeSymlink != 0 {
				target, terr := fsys.Stat(child)
				switch {
				case terr != nil:
					problems = append(problems, Problem{Path: child, Kind: ProblemUnreadable, Err: terr})
				case target.Mode().IsRegular():
					tasks = append(tasks, FileTask{Path: child})
				case target.IsDir():
					problems = append(problems, Problem{
						Path: child,
						Kind: ProblemUnsupported,
						Err:  errors.New("symlinked directory not followed"),
					})
				default:
					problems = append(problems, Problem{Path: child, Kind: ProblemUnsupported})
				}
				continue
			}

			switch {
			case mode.IsRegular():
				tasks = append(tasks, FileTask{Path: child})
			case mode.IsDir():
				queue = append(queue, child)
			default:
				problems = append(problems, Problem{Path: child, Kind: ProblemUnsupported})
			}
		}
	}

	SortTasks(tasks)
	return tasks, problems, nil
}

// SortTasks orders tasks by path, case-insensitively ascending. Ties keep
// their discovery order.
func SortTasks(tasks []FileTask) {
	slices.SortStableFunc(tasks, func(a, b FileTask) int {
		return strings.Compare(strings.ToLower(a.Path), strings.ToLower(b.Path))
	})
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}
