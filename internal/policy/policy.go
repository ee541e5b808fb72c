// Package policy decides, per file and per operation, whether jsoncloak may
// rename or encrypt a file. Each operation is gated by a filename axis and a
// folder axis, and each axis runs in either blacklist or whitelist mode.
package policy

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Op names an operation governed by the selection policy.
type Op string

const (
	OpRename  Op = "rename"
	OpEncrypt Op = "encrypt"
)

// List is a named set of file or folder names with an on/off switch.
type List struct {
	Enabled bool     `yaml:"enabled" json:"enabled"`
	Names   []string `yaml:"names" json:"names"`
}

// Contains reports whether name is in the list. Matching is exact.
func (l List) Contains(name string) bool {
	for _, n := range l.Names {
		if n == name {
			return true
		}
	}
	return false
}

// ContainsAny reports whether any of names is in the list.
func (l List) ContainsAny(names []string) bool {
	for _, n := range names {
		if l.Contains(n) {
			return true
		}
	}
	return false
}

// Rules are the four list rules for a single operation.
type Rules struct {
	FileBlacklist   List `yaml:"file_blacklist" json:"file_blacklist"`
	FolderBlacklist List `yaml:"folder_blacklist" json:"folder_blacklist"`
	FileWhitelist   List `yaml:"file_whitelist" json:"file_whitelist"`
	FolderWhitelist List `yaml:"folder_whitelist" json:"folder_whitelist"`
}

// Config is the immutable selection configuration for both operations.
type Config struct {
	Rename  Rules `yaml:"rename" json:"rename"`
	Encrypt Rules `yaml:"encrypt" json:"encrypt"`
}

// Rules returns the rules for op.
func (c Config) Rules(op Op) Rules {
	if op == OpRename {
		return c.Rename
	}
	return c.Encrypt
}

// Validate checks that for each operation exactly one mode is enabled on the
// file axis and exactly one on the folder axis.
func (c Config) Validate() error {
	for _, op := range []Op{OpRename, OpEncrypt} {
		if err := c.Rules(op).validate(op); err != nil {
			return err
		}
	}
	return nil
}

func (r Rules) validate(op Op) error {
	if err := checkAxis(op, "file", r.FileBlacklist.Enabled, r.FileWhitelist.Enabled); err != nil {
		return err
	}
	return checkAxis(op, "folder", r.FolderBlacklist.Enabled, r.FolderWhitelist.Enabled)
}

func checkAxis(op Op, axis string, black, white bool) error {
	switch {
	case black && white:
		return &ConfigInvariantError{Op: op, Axis: axis, Reason: "both blacklist and whitelist are enabled"}
	case !black && !white:
		return &ConfigInvariantError{Op: op, Axis: axis, Reason: "neither blacklist nor whitelist is enabled"}
	}
	return nil
}

// Allow validates the configuration and then decides whether op applies to
// the file at p. p should be relative to the data root so that folders above
// the root do not take part in folder rules.
func (c Config) Allow(op Op, p string) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}
	return c.Rules(op).Decide(p), nil
}

// Decide evaluates the rules against p without validating them. Blacklists
// are checked before whitelists and the file axis before the folder axis; a
// blacklist hit denies immediately and an enabled whitelist is authoritative.
func (r Rules) Decide(p string) bool {
	dirs, base := SplitPath(p)
	if r.FileBlacklist.Enabled && r.FileBlacklist.Contains(base) {
		return false
	}
	if r.FolderBlacklist.Enabled && r.FolderBlacklist.ContainsAny(dirs) {
		return false
	}
	if r.FileWhitelist.Enabled {
		return r.FileWhitelist.Contains(base)
	}
	if r.FolderWhitelist.Enabled {
		return r.FolderWhitelist.ContainsAny(dirs)
	}
	return true
}

// SplitPath returns the folder segments and the basename of p. Both '/' and
// the OS separator are accepted; empty and "." segments are dropped.
func SplitPath(p string) (dirs []string, base string) {
	p = filepath.ToSlash(p)
	parts := strings.Split(p, "/")
	var segs []string
	for _, s := range parts {
		if s == "" || s == "." {
			continue
		}
		segs = append(segs, s)
	}
	if len(segs) == 0 {
		return nil, ""
	}
	return segs[:len(segs)-1], segs[len(segs)-1]
}

// ConfigInvariantError reports an ambiguous or missing blacklist/whitelist
// toggle. It is fatal for a whole run.
type ConfigInvariantError struct {
	Op     Op
	Axis   string
	Reason string
}

func (e *ConfigInvariantError) Error() string {
	return fmt.Sprintf("invalid %s policy on %s axis: %s", e.Op, e.Axis, e.Reason)
}
