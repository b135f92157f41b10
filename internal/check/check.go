// Package check inspects a built index.html for things that stop it from
// working when opened from a file:// URL. It only reads the document.
package check

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Severity of a finding.
type Severity string

const (
	Pass Severity = "pass"
	Warn Severity = "warn"
	Fail Severity = "fail"
)

// Check names, in report order.
const (
	CheckIndex       = "index"
	CheckModule      = "module-script"
	CheckCrossOrigin = "crossorigin"
	CheckPlacement   = "script-placement"
	CheckAbsolute    = "absolute-asset"
	CheckAnchor      = "anchor"
)

var checkOrder = []string{CheckModule, CheckCrossOrigin, CheckPlacement, CheckAbsolute, CheckAnchor}

// DefaultAnchor is the element id the app mounts into.
const DefaultAnchor = "app"

// Finding is a single check result.
type Finding struct {
	Check    string
	Severity Severity
	Message  string
}

// Options tunes the inspection.
type Options struct {
	// Anchor is the id of the mount element. Defaults to DefaultAnchor.
	Anchor string
}

// InspectFile inspects the document at path. A missing file yields a single
// warning rather than an error, since the build may not have produced it.
func InspectFile(path string, opts Options) ([]Finding, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Finding{{Check: CheckIndex, Severity: Warn, Message: path + " not found"}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Inspect(f, opts)
}

// Inspect parses r and reports one or more findings per check. Checks with
// no problems get a single Pass finding.
func Inspect(r io.Reader, opts Options) ([]Finding, error) {
	if opts.Anchor == "" {
		opts.Anchor = DefaultAnchor
	}
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	w := &walker{anchor: opts.Anchor, byCheck: map[string][]Finding{}}
	w.walk(doc)
	if !w.anchorSeen {
		w.add(CheckAnchor, Fail, fmt.Sprintf("no element with id=%q", opts.Anchor))
	}

	var out []Finding
	for _, name := range checkOrder {
		found := w.byCheck[name]
		if len(found) == 0 {
			out = append(out, Finding{Check: name, Severity: Pass, Message: "ok"})
			continue
		}
		out = append(out, found...)
	}
	return out, nil
}

// Worst returns the most severe severity among findings.
func Worst(findings []Finding) Severity {
	worst := Pass
	for _, f := range findings {
		switch f.Severity {
		case Fail:
			return Fail
		case Warn:
			worst = Warn
		}
	}
	return worst
}

type walker struct {
	anchor     string
	anchorSeen bool
	byCheck    map[string][]Finding
}

func (w *walker) add(check string, sev Severity, msg string) {
	w.byCheck[check] = append(w.byCheck[check], Finding{Check: check, Severity: sev, Message: msg})
}

func (w *walker) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		w.element(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *walker) element(n *html.Node) {
	if id, ok := attr(n, "id"); ok && id == w.anchor {
		w.anchorSeen = true
	}
	if _, ok := attr(n, "crossorigin"); ok {
		w.add(CheckCrossOrigin, Warn, fmt.Sprintf("<%s> %s has a crossorigin attribute", n.Data, describe(n)))
	}

	switch n.DataAtom {
	case atom.Script:
		src, hasSrc := attr(n, "src")
		if typ, _ := attr(n, "type"); strings.EqualFold(typ, "module") {
			w.add(CheckModule, Fail, fmt.Sprintf("<script> %s is a module script", describe(n)))
		}
		if hasSrc && src != "" {
			if _, deferred := attr(n, "defer"); !deferred && !w.anchorSeen {
				w.add(CheckPlacement, Fail, fmt.Sprintf("<script src=%q> runs before #%s exists", src, w.anchor))
			}
			if isRootRelative(src) {
				w.add(CheckAbsolute, Warn, fmt.Sprintf("<script src=%q> resolves to the filesystem root", src))
			}
		}
	case atom.Link:
		if href, ok := attr(n, "href"); ok && isRootRelative(href) {
			w.add(CheckAbsolute, Warn, fmt.Sprintf("<link href=%q> resolves to the filesystem root", href))
		}
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func describe(n *html.Node) string {
	if src, ok := attr(n, "src"); ok {
		return fmt.Sprintf("src=%q", src)
	}
	if href, ok := attr(n, "href"); ok {
		return fmt.Sprintf("href=%q", href)
	}
	return "(inline)"
}

// isRootRelative reports whether ref starts at the server root, which under
// file:// means the filesystem root. Protocol-relative URLs are excluded.
func isRootRelative(ref string) bool {
	return strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//")
}
