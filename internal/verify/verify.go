package verify

import (
	def "IntegrityScan/definitions"
	"IntegrityScan/internal/index"
	"IntegrityScan/internal/logtrace"
	"IntegrityScan/internal/metrics"
	"IntegrityScan/internal/progress"
	"IntegrityScan/internal/resultlog"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/afero"
)

// Presenter shows the run to the user. Draw and Wait errors end the run.
type Presenter interface {
	Draw(f progress.Frame) error
	Record(e progress.Entry)
	Wait() error
	Close() error
}

type Options struct {
	Roots []string
	Index index.Options

	// LogDir is where the manifest is created.
	LogDir string

	Now func() time.Time

	// OpenPresenter is only called when there is at least one file to scan.
	OpenPresenter func() (Presenter, error)

	OnProblem func(p index.Problem)
	// OnEnumerated receives the number of files found, before anything is
	// opened.
	OnEnumerated func(files int)
	OnResult     func(r FileResult)
}

type runner struct {
	ctx       context.Context
	opts      Options
	state     State
	session   *metrics.Session
	presenter Presenter
	manifest  *resultlog.Log
	digester  *Digester
}

// Run enumerates the roots, digests every file in order and records each
// success in a new manifest. A file that cannot be read is reported and
// skipped; only enumeration, manifest and presenter errors stop the run.
func Run(ctx context.Context, fsys afero.Fs, opts Options) (report *Report, err error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.LogDir == "" {
		opts.LogDir = "."
	}
	if opts.OpenPresenter == nil {
		return nil, errors.New("verify: no presenter")
	}

	r := &runner{
		ctx:      ctx,
		opts:     opts,
		state:    StateIdle,
		digester: NewDigester(fsys, opts.Now),
	}

	r.transition(StateEnumerating)
	tasks, problems, err := index.Enumerate(fsys, opts.Roots, opts.Index)
	if err != nil {
		return nil, err
	}
	for _, p := range problems {
		logtrace.Warn(ctx, p.String(), logtrace.Fields{
			logtrace.FieldModule: logtrace.ValueEnumerator,
			logtrace.FieldPath:   p.Path,
		})
		if opts.OnProblem != nil {
			opts.OnProblem(p)
		}
	}

	if opts.OnEnumerated != nil {
		opts.OnEnumerated(len(tasks))
	}

	report = &Report{Files: len(tasks), Problems: len(problems)}
	if len(tasks) == 0 {
		r.transition(StateDone)
		report.State = r.state
		return report, nil
	}

	r.presenter, err = opts.OpenPresenter()
	if err != nil {
		return nil, fmt.Errorf("display: %w", err)
	}
	defer func() {
		if cerr := r.presenter.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("display: %w", cerr)
		}
	}()

	r.session = metrics.NewSession(opts.Now(), len(tasks))

	r.manifest, err = resultlog.Create(fsys, opts.LogDir, r.session.Started)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := r.manifest.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	report.LogPath = r.manifest.Path()
	logtrace.Debug(ctx, "manifest created", logtrace.Fields{
		logtrace.FieldModule: logtrace.ValueManifest,
		logtrace.FieldPath:   report.LogPath,
		logtrace.FieldTotal:  len(tasks),
	})

	for _, task := range tasks {
		if err := r.process(task); err != nil {
			return nil, err
		}
	}

	r.transition(StateAllDone)
	r.session.Stop(opts.Now())
	if err := r.presenter.Draw(r.frame(ChunkState{}, true)); err != nil {
		return nil, fmt.Errorf("display: %w", err)
	}
	if err := r.presenter.Wait(); err != nil {
		return nil, fmt.Errorf("display: %w", err)
	}

	r.transition(StateDone)
	report.State = r.state
	report.Snapshot = r.session.Snapshot(opts.Now())
	return report, nil
}

func (r *runner) process(task index.FileTask) error {
	r.transition(StateProcessingFile)

	res, err := r.digester.Digest(task.Path, func(c ChunkState) error {
		if err := r.presenter.Draw(r.frame(c, false)); err != nil {
			logtrace.Error(r.ctx, "draw failed", logtrace.Fields{
				logtrace.FieldModule: logtrace.ValueDisplay,
				logtrace.FieldPath:   c.Path,
				logtrace.FieldError:  err.Error(),
			})
			return fmt.Errorf("display: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.transition(StateFileComplete)

	if res.OK() {
		if err := r.manifest.Append(res.Record()); err != nil {
			if !errors.Is(err, def.ErrUnrepresentablePath) {
				return err
			}
			res.Err = err
			res.Description = "not recorded: " + def.ErrUnrepresentablePath.Error()
		}
	}
	r.presenter.Record(res.Entry())

	fields := logtrace.Fields{
		logtrace.FieldModule:    logtrace.ValueController,
		logtrace.FieldPath:      res.Path,
		logtrace.FieldSize:      res.Size,
		logtrace.FieldIndex:     r.session.Index,
		logtrace.FieldTotal:     r.session.Total,
		logtrace.FieldElapsedMs: res.Elapsed.Milliseconds(),
	}
	if res.OK() {
		logtrace.Debug(r.ctx, "file verified", fields)
	} else {
		fields[logtrace.FieldError] = res.Description
		logtrace.Debug(r.ctx, "file failed", fields)
	}

	r.session.Complete(res.Size, res.OK())
	if r.opts.OnResult != nil {
		r.opts.OnResult(res)
	}
	return nil
}

func (r *runner) frame(c ChunkState, done bool) progress.Frame {
	return progress.Frame{
		Path:           c.Path,
		Size:           c.Size,
		Read:           c.Read,
		Index:          r.session.Current(),
		Total:          r.session.Total,
		BytesProcessed: r.session.BytesProcessed,
		Started:        r.session.Started,
		Now:            r.opts.Now(),
		Done:           done,
	}
}

func (r *runner) transition(to State) {
	logtrace.Debug(r.ctx, "state", logtrace.Fields{
		logtrace.FieldModule: logtrace.ValueController,
		logtrace.FieldState:  to.String(),
	})
	r.state = to
}
