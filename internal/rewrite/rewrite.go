// Package rewrite makes a bundler-generated index.html loadable from a
// file:// URL.
//
// Browsers refuse to run module scripts loaded from the local filesystem and
// may refuse scripts fetched with CORS attributes, so the rewriter strips
// both and moves the entry script to the end of <body>, where the mount
// anchor already exists when it runs.
//
// The rewrite is textual. Markup outside the edited spans is preserved byte
// for byte; the patterns can over-match if the attribute text appears in an
// unexpected form, which is acceptable for the narrow, self-generated input.
package rewrite

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

const closeBody = "</body>"

var (
	moduleAttr      = regexp.MustCompile(`\s*type="module"\s*`)
	crossOriginAttr = regexp.MustCompile(`\s*crossorigin(?:=(?:"[^"]*"|'[^']*'|[^\s>]+))?\s*`)
	entryScript     = regexp.MustCompile(`<script[^>]*src="([^"]+)"[^>]*>\s*</script>`)
)

// Report describes what a rewrite changed.
type Report struct {
	// ModuleAttrs is the number of type="module" attributes removed.
	ModuleAttrs int
	// CrossOriginAttrs is the number of crossorigin attributes removed.
	CrossOriginAttrs int
	// Relocated is the src of the script moved before </body>, or empty.
	Relocated string
	// Skipped is set when the input file did not exist.
	Skipped bool
	// Changed reports whether the output differs from the input.
	Changed bool
}

// Rewrite applies the three edits to doc and returns the result.
func Rewrite(doc string) (string, Report) {
	var rep Report
	out := doc

	rep.ModuleAttrs = len(moduleAttr.FindAllStringIndex(out, -1))
	if rep.ModuleAttrs > 0 {
		out = moduleAttr.ReplaceAllLiteralString(out, " ")
	}

	rep.CrossOriginAttrs = len(crossOriginAttr.FindAllStringIndex(out, -1))
	if rep.CrossOriginAttrs > 0 {
		out = crossOriginAttr.ReplaceAllLiteralString(out, " ")
	}

	out, rep.Relocated = relocateEntryScript(out)
	rep.Changed = out != doc
	return out, rep
}

// relocateEntryScript moves the first external script tag to just before
// </body>. It is a no-op when there is no such tag, no </body>, or the tag
// already immediately precedes </body>.
func relocateEntryScript(doc string) (string, string) {
	loc := entryScript.FindStringSubmatchIndex(doc)
	if loc == nil {
		return doc, ""
	}
	bodyAt := strings.Index(doc, closeBody)
	if bodyAt < 0 {
		return doc, ""
	}
	start, end := loc[0], loc[1]
	src := doc[loc[2]:loc[3]]
	if end <= bodyAt && strings.TrimSpace(doc[end:bodyAt]) == "" {
		return doc, ""
	}

	doc = doc[:start] + doc[end:]
	bodyAt = strings.Index(doc, closeBody)
	tag := `  <script src="` + src + `"></script>` + "\n"
	return doc[:bodyAt] + tag + doc[bodyAt:], src
}

// RewriteFile rewrites the HTML document at path in place. A missing file is
// not an error: the returned report has Skipped set and nothing is created.
func RewriteFile(path string) (Report, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Report{Skipped: true}, nil
	}
	if err != nil {
		return Report{}, fmt.Errorf("rewriting %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("rewriting %s: %w", path, err)
	}
	out, rep := Rewrite(string(data))
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return Report{}, fmt.Errorf("rewriting %s: %w", path, err)
	}
	return rep, nil
}
