package rewrite

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// viteIndex is index.html as emitted by `vite build` with base: './'.
const viteIndex = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <title>app</title>
    <script type="module" crossorigin src="./assets/index-abc.js"></script>
    <link rel="stylesheet" crossorigin href="./assets/index-def.css">
  </head>
  <body>
    <div id="app"></div>
  </body>
</html>
`

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func TestRewrite_ViteIndex(t *testing.T) {
	t.Parallel()
	got, rep := Rewrite(viteIndex)
	want := lines(
		`<!doctype html>`,
		`<html lang="en">`,
		`  <head>`,
		`    <meta charset="UTF-8" />`,
		`    <title>app</title>`,
		`    `,
		`    <link rel="stylesheet" href="./assets/index-def.css">`,
		`  </head>`,
		`  <body>`,
		`    <div id="app"></div>`,
		`    <script src="./assets/index-abc.js"></script>`,
		`</body>`,
		`</html>`,
	)
	if got != want {
		t.Errorf("Rewrite() =\n%s\nwant:\n%s", got, want)
	}
	if rep.ModuleAttrs != 1 {
		t.Errorf("ModuleAttrs = %d, want 1", rep.ModuleAttrs)
	}
	if rep.CrossOriginAttrs != 2 {
		t.Errorf("CrossOriginAttrs = %d, want 2", rep.CrossOriginAttrs)
	}
	if rep.Relocated != "./assets/index-abc.js" {
		t.Errorf("Relocated = %q, want %q", rep.Relocated, "./assets/index-abc.js")
	}
	if !rep.Changed {
		t.Error("Changed = false, want true")
	}
}

func TestRewrite_SingleTagExample(t *testing.T) {
	t.Parallel()
	in := `<html><head><script type="module" crossorigin src="/app.js"></script></head><body><div id="app"></div></body></html>`
	got, _ := Rewrite(in)
	want := `<html><head></head><body><div id="app"></div>  <script src="/app.js"></script>` + "\n" + `</body></html>`
	if got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
	head := got[:strings.Index(got, "</head>")]
	if strings.Contains(head, "<script") {
		t.Errorf("head still contains a script tag: %q", head)
	}
}

func TestRewrite_StripsAttributes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		in          string
		want        string
		module      int
		crossOrigin int
	}{
		{
			name: "none",
			in:   `<link rel="icon" href="./favicon.ico">`,
			want: `<link rel="icon" href="./favicon.ico">`,
		},
		{
			name:   "module only",
			in:     `<script type="module">init()</script>`,
			want:   `<script >init()</script>`,
			module: 1,
		},
		{
			name:   "many module",
			in:     `<script type="module" src="./a.js"></script><script type="module">b()</script><link rel="modulepreload" href="./c.js">`,
			want:   `<script src="./a.js"></script><script >b()</script><link rel="modulepreload" href="./c.js">`,
			module: 2,
		},
		{
			name:        "many crossorigin",
			in:          `<link rel="modulepreload" crossorigin href="./a.js"><link rel="stylesheet" crossorigin href="./b.css">`,
			want:        `<link rel="modulepreload" href="./a.js"><link rel="stylesheet" href="./b.css">`,
			crossOrigin: 2,
		},
		{
			name:        "crossorigin with value",
			in:          `<link rel="stylesheet" crossorigin="anonymous" href="./b.css">`,
			want:        `<link rel="stylesheet" href="./b.css">`,
			crossOrigin: 1,
		},
		{
			name:        "other attributes untouched",
			in:          `<script type="module" async data-x="1">x()</script>`,
			want:        `<script async data-x="1">x()</script>`,
			module:      1,
			crossOrigin: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, rep := Rewrite(tt.in)
			if got != tt.want {
				t.Errorf("Rewrite(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if rep.ModuleAttrs != tt.module {
				t.Errorf("ModuleAttrs = %d, want %d", rep.ModuleAttrs, tt.module)
			}
			if rep.CrossOriginAttrs != tt.crossOrigin {
				t.Errorf("CrossOriginAttrs = %d, want %d", rep.CrossOriginAttrs, tt.crossOrigin)
			}
			if rep.Relocated != "" {
				t.Errorf("Relocated = %q, want empty", rep.Relocated)
			}
		})
	}
}

func TestRewrite_NoExternalScript(t *testing.T) {
	t.Parallel()
	in := "<html><head><title>t</title></head><body><div id=\"app\"></div></body></html>"
	got, rep := Rewrite(in)
	if got != in {
		t.Errorf("Rewrite() = %q, want input unchanged", got)
	}
	if rep.Changed || rep.Relocated != "" {
		t.Errorf("report = %+v, want no changes", rep)
	}
}

func TestRewrite_NoCloseBody(t *testing.T) {
	t.Parallel()
	in := `<head><script type="module" src="./a.js"></script></head><div id="app"></div>`
	got, rep := Rewrite(in)
	want := `<head><script src="./a.js"></script></head><div id="app"></div>`
	if got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
	if rep.Relocated != "" {
		t.Errorf("Relocated = %q, want empty", rep.Relocated)
	}
}

func TestRewrite_OnlyFirstScriptMoves(t *testing.T) {
	t.Parallel()
	in := `<head><script src="./a.js"></script><script src="./b.js"></script></head><body></body>`
	got, rep := Rewrite(in)
	want := `<head><script src="./b.js"></script></head><body>  <script src="./a.js"></script>` + "\n</body>"
	if got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
	if rep.Relocated != "./a.js" {
		t.Errorf("Relocated = %q, want ./a.js", rep.Relocated)
	}
}

func TestRewrite_Idempotent(t *testing.T) {
	t.Parallel()
	inputs := []string{
		viteIndex,
		`<html><head><script type="module" crossorigin src="/app.js"></script></head><body></body></html>`,
		`<html><head></head><body><p>static</p></body></html>`,
	}
	for _, in := range inputs {
		once, _ := Rewrite(in)
		twice, rep := Rewrite(once)
		if twice != once {
			t.Errorf("second pass changed output:\nfirst:  %q\nsecond: %q", once, twice)
		}
		if rep.Changed || rep.ModuleAttrs != 0 || rep.CrossOriginAttrs != 0 || rep.Relocated != "" {
			t.Errorf("second pass report = %+v, want zero", rep)
		}
	}
}

func TestRewriteFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte(viteIndex), 0o640); err != nil {
		t.Fatal(err)
	}

	rep, err := RewriteFile(path)
	if err != nil {
		t.Fatalf("RewriteFile: %v", err)
	}
	if rep.Skipped {
		t.Error("Skipped = true for existing file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := Rewrite(viteIndex)
	if string(data) != want {
		t.Errorf("file content =\n%s\nwant:\n%s", data, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Errorf("mode = %v, want 0640", info.Mode().Perm())
	}
}

func TestRewriteFile_Missing(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "dist", "index.html")
	rep, err := RewriteFile(path)
	if err != nil {
		t.Fatalf("RewriteFile(missing) error = %v, want nil", err)
	}
	if !rep.Skipped {
		t.Error("Skipped = false, want true")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("RewriteFile created %s", path)
	}
}

func TestRewriteFile_Directory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	_, err := RewriteFile(dir)
	if err == nil {
		t.Fatal("RewriteFile(directory) error = nil, want read failure")
	}
	if !strings.Contains(err.Error(), "rewriting") {
		t.Errorf("error = %q, want it to name the rewrite", err)
	}
}

func TestRewriteFile_WriteFailure(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("needs unix permissions enforced for the current user")
	}
	dir := filepath.Join(t.TempDir(), "dist")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "index.html")
	if err := os.WriteFile(path, []byte(viteIndex), 0o444); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, err := RewriteFile(path)
	if err == nil {
		t.Fatal("RewriteFile(read-only) error = nil, want write failure")
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("error = %v, want permission error", err)
	}
	if !strings.Contains(err.Error(), "rewriting "+path) {
		t.Errorf("error = %q, want it to name the path", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != viteIndex {
		t.Error("read-only file was modified")
	}
}
