package engine

import (
	"path/filepath"

	"github.com/jsoncloak/jsoncloak/internal/policy"
)

// DefaultConfusionFolders are the folder names whose files get the
// confusion suffix when Config.ConfusionFolders is nil.
var DefaultConfusionFolders = []string{"entity", "ui"}

// Task is a candidate file together with the per-operation decisions made
// for it before any I/O happens.
type Task struct {
	Path    string // on-disk path
	Rel     string // slash-separated, relative to the data root
	Dirs    []string
	Base    string
	Rename  bool
	Encrypt bool
	Confuse bool
}

// NewTask resolves the selection policy and skip flags for rel, a path
// relative to cfg.Root. The policy must already be validated.
func NewTask(cfg Config, rel string) Task {
	dirs, base := policy.SplitPath(rel)
	folders := cfg.ConfusionFolders
	if folders == nil {
		folders = DefaultConfusionFolders
	}
	return Task{
		Path:    filepath.Join(cfg.Root, filepath.FromSlash(rel)),
		Rel:     rel,
		Dirs:    dirs,
		Base:    base,
		Rename:  !cfg.SkipRename && cfg.Policy.Rename.Decide(rel),
		Encrypt: !cfg.SkipEncrypt && cfg.Policy.Encrypt.Decide(rel),
		Confuse: policy.List{Enabled: true, Names: folders}.ContainsAny(dirs),
	}
}
