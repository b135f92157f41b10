// distfix makes a bundler's index.html loadable from a file:// URL.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gastownhall/distfix/internal/config"
	"github.com/gastownhall/distfix/internal/logging"
	"github.com/gastownhall/distfix/internal/style"
	"github.com/gastownhall/distfix/internal/telemetry"
	"github.com/spf13/cobra"
)

// Version metadata injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// errExit is returned by RunE functions that have already reported their
// failure and only need a non-zero exit.
var errExit = errors.New("exit")

// run executes the distfix CLI with the given args.
func run(args []string, stdout, stderr io.Writer) int {
	reporter, err := telemetry.FromEnv("distfix@" + version)
	if err != nil {
		fmt.Fprintf(stderr, "distfix: warning: error reporting disabled: %v\n", err)
		reporter, _ = telemetry.New(telemetry.Options{})
	}
	defer reporter.Flush()

	root := newRootCmd(stdout, stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}
	if errors.Is(err, errExit) {
		return 1
	}
	fmt.Fprintf(stderr, "distfix: %v\n", err)
	var h *HintedError
	if errors.As(err, &h) && h.Hint != "" {
		fmt.Fprintf(stderr, "  %s\n", style.Dim.Render(h.Hint))
	}
	name := "distfix"
	if cmd != nil {
		name = cmd.Name()
	}
	reporter.CaptureCommandError(name, err)
	return 1
}

// newRootCmd creates the root cobra command with all subcommands.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "distfix",
		Short: "Make a built frontend bundle open from file://",
		Long: `distfix post-processes a bundler's generated index.html so the app
runs when the file is opened directly from disk.

It strips type="module" and crossorigin attributes, which browsers
restrict under file://, and moves the entry script to the end of <body>
so the mount element exists when the script runs.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			fmt.Fprintf(stderr, "distfix: unknown command %q\n", args[0]) //nolint:errcheck // best-effort stderr
			return errExit
		},
	}
	root.PersistentFlags().String("dir", ".", "Project root containing distfix.toml")
	root.PersistentFlags().String("color", "auto", "Color output: always, auto, never")
	root.PersistentFlags().BoolP("verbose", "v", false, "Show debug logs and build output")
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		colorMode, _ := cmd.Flags().GetString("color")
		switch colorMode {
		case "always", "auto", "never":
			style.SetColorMode(colorMode)
			return nil
		default:
			return fmt.Errorf("invalid --color value %q: must be always, auto, or never", colorMode)
		}
	}
	root.AddCommand(
		newFixCmd(stdout, stderr),
		newBuildCmd(stdout, stderr),
		newCheckCmd(stdout, stderr),
		newInitCmd(stdout, stderr),
		newServeCmd(stdout, stderr),
		newVersionCmd(stdout),
	)
	return root
}

// loadProject returns the --dir project root and its merged configuration.
func loadProject(cmd *cobra.Command) (string, *config.Config, error) {
	dir, _ := cmd.Flags().GetString("dir")
	cfg, err := config.Load(dir)
	if err != nil {
		return dir, nil, hintWrap(err)
	}
	return dir, cfg, nil
}

// newLogger returns the diagnostic logger honoring --verbose.
func newLogger(cmd *cobra.Command, stderr io.Writer) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return logging.New(stderr, verbose)
}
