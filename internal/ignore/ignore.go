// Package ignore reads .jsoncloakignore files: gitignore-like pattern lists
// naming files under the data directory that jsoncloak must leave alone.
package ignore

import (
	"bufio"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileName is the ignore file looked up at the data root.
const FileName = ".jsoncloakignore"

type rule struct {
	pattern  string
	negate   bool
	dirOnly  bool
	anchored bool
}

// Matcher holds the rules of one ignore file in file order.
type Matcher struct {
	rules []rule
}

// Load parses the ignore file at p. Blank lines and lines starting with '#'
// are skipped; a leading '!' re-includes paths matched by earlier rules.
func Load(p string) (*Matcher, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m := &Matcher{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		m.add(sc.Text())
	}
	return m, sc.Err()
}

// Parse builds a matcher from pattern lines.
func Parse(lines ...string) *Matcher {
	m := &Matcher{}
	for _, l := range lines {
		m.add(l)
	}
	return m
}

func (m *Matcher) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	var r rule
	if strings.HasPrefix(line, "!") {
		r.negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		r.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		r.anchored = true
		line = strings.TrimPrefix(line, "/")
	} else if strings.Contains(line, "/") {
		r.anchored = true
	}
	if line == "" {
		return
	}
	r.pattern = line
	m.rules = append(m.rules, r)
}

// Match reports whether the slash-separated relative file path p is ignored,
// either directly or through one of its parent folders.
func (m *Matcher) Match(p string) bool {
	if m == nil {
		return false
	}
	ignored := false
	for _, r := range m.rules {
		if r.matches(p) {
			ignored = !r.negate
		}
	}
	return ignored
}

// MatchDir reports whether the folder at slash-separated relative path p is
// ignored as a whole.
func (m *Matcher) MatchDir(p string) bool {
	if m == nil {
		return false
	}
	ignored := false
	for _, r := range m.rules {
		if r.matchOne(p) {
			ignored = !r.negate
		}
	}
	return ignored
}

// matches checks the file itself and then every parent folder.
func (r rule) matches(p string) bool {
	if !r.dirOnly && r.matchOne(p) {
		return true
	}
	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if r.matchOne(dir) {
			return true
		}
	}
	return false
}

func (r rule) matchOne(p string) bool {
	if r.anchored {
		ok, _ := doublestar.Match(r.pattern, p)
		return ok
	}
	ok, _ := doublestar.Match(r.pattern, path.Base(p))
	return ok
}
