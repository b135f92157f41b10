package main

import (
	"fmt"
	"io"

	"github.com/gastownhall/distfix/internal/config"
	"github.com/gastownhall/distfix/internal/style"
	"github.com/spf13/cobra"
)

func newInitCmd(stdout, _ io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a commented " + config.FileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			path, err := config.WriteDefault(dir)
			if err != nil {
				return hintWrap(err)
			}
			fmt.Fprintf(stdout, "  %s wrote %s\n", style.Status("pass"), path)
			return nil
		},
	}
}
