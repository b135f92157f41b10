package main

import (
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"

	"github.com/gastownhall/distfix/internal/preview"
	"github.com/gastownhall/distfix/internal/style"
	"github.com/spf13/cobra"
)

func newServeCmd(stdout, _ io.Writer) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the built bundle over HTTP for comparison",
		Long: `Serve <out_dir> over HTTP with index.html fallback.

A rewritten bundle must keep working over HTTP as well as from file://;
this command makes that easy to confirm. Stop it with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, cfg, err := loadProject(cmd)
			if err != nil {
				return err
			}
			outDir := filepath.Dir(cfg.IndexPath(dir))

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}
			fmt.Fprintf(stdout, "Serving %s on %s\n", outDir, style.Info.Render("http://"+ln.Addr().String()))
			return preview.Serve(cmd.Context(), ln, preview.Handler(os.DirFS(outDir)))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:4173", "Address to listen on")
	return cmd
}
