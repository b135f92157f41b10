package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gastownhall/distfix/internal/hook"
	"github.com/gastownhall/distfix/internal/rewrite"
	"github.com/gastownhall/distfix/internal/style"
	"github.com/spf13/cobra"
)

func newBuildCmd(stdout, stderr io.Writer) *cobra.Command {
	var skipBuild bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "build [-- command...]",
		Short: "Run the frontend build, then rewrite its index.html",
		Long: `Run the configured build command and, once it has written its output,
rewrite the generated index.html for file:// loading.

The command comes from [build].command in distfix.toml (npm run build by
default). Arguments after -- replace it for this run.

Examples:
  distfix build
  distfix build -- pnpm vite build
  distfix build --skip-build`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, cfg, err := loadProject(cmd)
			if err != nil {
				return err
			}
			verbose, _ := cmd.Flags().GetBool("verbose")
			log := newLogger(cmd, stderr)

			command := cfg.Build.Command
			if len(args) > 0 {
				command = args
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Build.Timeout.Duration = timeout
			}

			var captured bytes.Buffer
			builder := &hook.CommandBuilder{
				Dir:     dir,
				Command: command,
				Timeout: cfg.Build.Timeout.Duration,
				Stdout:  &captured,
				Stderr:  &captured,
			}
			if verbose {
				builder.Stdout, builder.Stderr = stderr, stderr
			}

			var b hook.Builder = builder
			if skipBuild {
				b = nil
			}
			runner := hook.NewRunner(b, log)
			runner.Register(&hook.FileProtocolHook{
				Path:     cfg.IndexPath(dir),
				OnReport: func(path string, rep rewrite.Report) { printReport(stdout, path, rep) },
			})

			log.Debug("hooks registered", "hooks", strings.Join(runner.Hooks(), ","))

			var sp *style.Spinner
			if b != nil && !verbose {
				sp = style.StartSpinner(stderr, "Building with "+style.Bold.Render(strings.Join(command, " "))+"...")
			}
			res, err := runBuild(cmd, runner, sp)
			if err != nil {
				if captured.Len() > 0 {
					_, _ = stderr.Write(captured.Bytes())
				}
				return hintWrap(err)
			}
			if b != nil {
				fmt.Fprintf(stdout, "  %s build finished in %s\n", style.Status("pass"), res.BuildDuration.Round(time.Millisecond))
			}
			if verbose {
				for _, h := range res.Hooks {
					fmt.Fprintf(stdout, "  %s\n", style.Dim.Render(fmt.Sprintf("hook %s took %s", h.Name, h.Duration.Round(time.Microsecond))))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipBuild, "skip-build", false, "Only run the post-build rewrite")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Override the build timeout")
	return cmd
}

func runBuild(cmd *cobra.Command, runner *hook.Runner, sp *style.Spinner) (*hook.Result, error) {
	if sp == nil {
		return runner.Run(cmd.Context())
	}
	// The spinner must be gone before hooks print their reports.
	runner.Builder = stoppingBuilder{runner.Builder, sp}
	defer sp.Stop()
	return runner.Run(cmd.Context())
}

// stoppingBuilder stops the spinner as soon as the build returns.
type stoppingBuilder struct {
	hook.Builder
	sp *style.Spinner
}

func (s stoppingBuilder) Build(ctx context.Context) error {
	defer s.sp.Stop()
	return s.Builder.Build(ctx)
}
