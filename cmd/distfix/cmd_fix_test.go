package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gastownhall/distfix/internal/rewrite"
	"github.com/gastownhall/distfix/internal/style"
)

func TestPrintReport(t *testing.T) {
	style.SetColorMode("never")
	tests := []struct {
		name string
		rep  rewrite.Report
		want []string
		not  []string
	}{
		{
			name: "skipped",
			rep:  rewrite.Report{Skipped: true},
			want: []string{"not found, skipped"},
		},
		{
			name: "unchanged",
			rep:  rewrite.Report{},
			want: []string{"already file:// ready"},
		},
		{
			name: "full rewrite",
			rep:  rewrite.Report{ModuleAttrs: 1, CrossOriginAttrs: 3, Relocated: "./a.js", Changed: true},
			want: []string{`removed 1 type="module"`, "removed 3 crossorigin", "moved ./a.js before </body>"},
			not:  []string{"no entry script"},
		},
		{
			name: "attributes only",
			rep:  rewrite.Report{CrossOriginAttrs: 1, Changed: true},
			want: []string{"removed 1 crossorigin", "no entry script moved"},
			not:  []string{"type=\"module\""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printReport(&buf, "dist/index.html", tt.rep)
			out := buf.String()
			if !strings.Contains(out, "dist/index.html") {
				t.Errorf("output missing path: %q", out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q: %q", w, out)
				}
			}
			for _, n := range tt.not {
				if strings.Contains(out, n) {
					t.Errorf("output has unexpected %q: %q", n, out)
				}
			}
		})
	}
}
