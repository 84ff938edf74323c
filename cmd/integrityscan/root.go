package main

import (
	def "IntegrityScan/definitions"
	"IntegrityScan/internal/config"
	"IntegrityScan/internal/display"
	"IntegrityScan/internal/index"
	"IntegrityScan/internal/logtrace"
	"IntegrityScan/internal/metrics"
	"IntegrityScan/internal/progress"
	"IntegrityScan/internal/verify"
	"context"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "integrityscan [path ...]",
	Short: "Checksum every file below the given paths",
	Long: `integrityscan reads every regular file below the given paths (or the
working directory when none are given), computes its SHA-1 and CRC-32 and
appends one line per file to a new .integrity-cache-<timestamp> manifest.

Files that cannot be read are shown in the history and left out of the
manifest. Settings are read from ` + config.FileName + ` in the working
directory when it exists.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScan,
}

func Execute(ver, commit string) error {
	rootCmd.Version = fmt.Sprintf("%s (%s)", ver, commit)
	return rootCmd.Execute()
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOptional(config.FileName)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logOut, closeLog, err := diagnosticOutput(cfg.DiagnosticLog)
	if err != nil {
		return err
	}
	defer closeLog()
	if err := logtrace.Setup(logtrace.Options{Level: cfg.LogLevel, Output: logOut}); err != nil {
		return err
	}
	defer logtrace.Sync()

	stdout := cmd.OutOrStdout()
	ctx := logtrace.CtxWithCorrelationID(context.Background(), def.ArtifactName(time.Now()))

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}
	if len(args) == 0 {
		fmt.Fprintln(stdout, "reading from", wd)
	}

	screens := &presenters{capacity: cfg.HistoryCapacity, exit: exitAfterSignal}
	defer screens.release()

	report, err := verify.Run(ctx, afero.NewOsFs(), verify.Options{
		Roots:         args,
		Index:         index.Options{WorkingDir: wd, Exclude: cfg.Exclude},
		LogDir:        cfg.LogDir,
		OpenPresenter: screens.open,
		OnProblem: func(p index.Problem) {
			fmt.Fprintln(stdout, p.String())
		},
		OnEnumerated: func(files int) {
			if files > 0 {
				fmt.Fprintf(stdout, "found %d files\n", files)
			}
		},
	})
	if err != nil {
		return err
	}
	if report.Files == 0 {
		return nil
	}

	fmt.Fprintln(stdout, "manifest:", report.LogPath)
	metrics.Print(stdout, report.Snapshot)
	return nil
}

// presenters draws the full screen when stdout is a terminal and falls
// back to plain progress bars otherwise. While the full screen is up,
// SIGINT and SIGTERM restore the terminal before the process exits.
type presenters struct {
	capacity int
	exit     func(code int)
	stop     func()
}

func (p *presenters) open() (verify.Presenter, error) {
	if !display.IsTerminal(os.Stdout) || !display.IsTerminal(os.Stdin) {
		return progress.NewBar(os.Stdout), nil
	}
	term, err := display.NewTerminal(os.Stdin, os.Stdout)
	if err != nil {
		return nil, err
	}
	p.stop = display.CloseOnSignal(term, p.exit, os.Interrupt, syscall.SIGTERM)
	return progress.NewScreen(term, p.capacity), nil
}

func (p *presenters) release() {
	if p.stop != nil {
		p.stop()
		p.stop = nil
	}
}

func exitAfterSignal(code int) {
	logtrace.Sync()
	os.Exit(code)
}

func diagnosticOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644) // #nosec G304
	if err != nil {
		return nil, nil, fmt.Errorf("diagnostic log: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
