package main

import (
	"fmt"
	"io"

	"github.com/gastownhall/distfix/internal/rewrite"
	"github.com/gastownhall/distfix/internal/style"
	"github.com/spf13/cobra"
)

func newFixCmd(stdout, _ io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "fix [file]",
		Short: "Rewrite a built index.html for file:// loading",
		Long: `Rewrite the generated HTML document in place.

Without an argument the document is <out_dir>/<index> from distfix.toml
(dist/index.html by default). A missing document is skipped, not an error.

Examples:
  distfix fix
  distfix fix web/dist/index.html`,
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
			rep, err := rewrite.RewriteFile(path)
			if err != nil {
				return err
			}
			printReport(stdout, path, rep)
			return nil
		},
	}
}

// printReport prints the outcome of one rewrite.
func printReport(w io.Writer, path string, rep rewrite.Report) {
	if rep.Skipped {
		fmt.Fprintf(w, "  %s %s: not found, skipped\n", style.Status("skip"), path)
		return
	}
	if !rep.Changed {
		fmt.Fprintf(w, "  %s %s: already file:// ready\n", style.Status("pass"), path)
		return
	}
	fmt.Fprintf(w, "  %s %s\n", style.Status("pass"), path)
	if rep.ModuleAttrs > 0 {
		fmt.Fprintf(w, "    removed %d type=\"module\"\n", rep.ModuleAttrs)
	}
	if rep.CrossOriginAttrs > 0 {
		fmt.Fprintf(w, "    removed %d crossorigin\n", rep.CrossOriginAttrs)
	}
	if rep.Relocated != "" {
		fmt.Fprintf(w, "    moved %s before </body>\n", rep.Relocated)
	} else {
		fmt.Fprintf(w, "    %s\n", style.Dim.Render("no entry script moved"))
	}
}
