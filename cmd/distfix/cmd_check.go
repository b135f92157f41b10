package main

import (
	"fmt"
	"io"

	"github.com/gastownhall/distfix/internal/check"
	"github.com/gastownhall/distfix/internal/style"
	"github.com/spf13/cobra"
)

func newCheckCmd(stdout, _ io.Writer) *cobra.Command {
	var strict bool
	var anchor string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Report what stops a built index.html from working under file://",
		Long: `Inspect the generated HTML document without modifying it.

Checks for module scripts, crossorigin attributes, scripts that run
before the mount element exists, root-relative asset paths, and a
missing mount element.

Use --strict to exit non-zero on any warning or failure (useful for CI).

Examples:
  distfix check
  distfix check --strict dist/index.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, cfg, err := loadProject(cmd)
			if err != nil {
				return err
			}
			path := cfg.IndexPath(dir)
			if len(args) == 1 {
				path = args[0]
			}
			if !cmd.Flags().Changed("anchor") {
				anchor = cfg.Anchor
			}
			return runCheck(stdout, path, anchor, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero if any warnings or failures")
	cmd.Flags().StringVar(&anchor, "anchor", "", "Id of the mount element (default from config)")
	return cmd
}

func runCheck(stdout io.Writer, path, anchor string, strict bool) error {
	findings, err := check.InspectFile(path, check.Options{Anchor: anchor})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s\n", style.Bold.Render(path))
	for _, f := range findings {
		fmt.Fprintf(stdout, "  %s %s: %s\n", style.Status(string(f.Severity)), f.Check, f.Message)
	}

	worst := check.Worst(findings)
	switch worst {
	case check.Pass:
		fmt.Fprintf(stdout, "\n%s\n", style.Success.Render("Ready for file://"))
	case check.Warn:
		fmt.Fprintf(stdout, "\n%s\n", style.Warning.Render("Warnings found"))
	default:
		fmt.Fprintf(stdout, "\n%s %s\n", style.Error.Render("Not ready for file://."), style.Dim.Render("Run 'distfix fix' to rewrite it."))
	}

	if strict && worst != check.Pass {
		return errExit
	}
	return nil
}
