package hook

import (
	"context"

	"github.com/gastownhall/distfix/internal/rewrite"
)

// FileProtocolHook rewrites the generated index.html for file:// loading.
type FileProtocolHook struct {
	Path string

	// OnReport, if set, receives the outcome of the rewrite.
	OnReport func(path string, rep rewrite.Report)
}

// Name implements Hook.
func (h *FileProtocolHook) Name() string { return "fix-index-for-file" }

// CloseBundle implements Hook. A missing index is skipped, not an error.
func (h *FileProtocolHook) CloseBundle(_ context.Context) error {
	rep, err := rewrite.RewriteFile(h.Path)
	if err != nil {
		return err
	}
	if h.OnReport != nil {
		h.OnReport(h.Path, rep)
	}
	return nil
}
