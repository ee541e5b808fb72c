package engine

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/jsoncloak/jsoncloak/internal/ignore"
)

// Walk enumerates the JSON files under cfg.Root (case-insensitive .json
// suffix) and returns their slash-separated paths relative to the root, in
// lexical order. Paths listed in the root's .jsoncloakignore are left out.
// Unreadable entries are skipped; only cancellation aborts.
func Walk(ctx context.Context, cfg Config) ([]string, error) {
	ig, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	var out []string
	err := filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil || p == cfg.Root {
			return nil
		}
		rel, err := filepath.Rel(cfg.Root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if (cfg.DefaultExcludes && isDefaultDirExcluded(d.Name())) || ig.MatchDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isJSONFile(d.Name()) || ig.Match(rel) {
			return nil
		}
		if !allowedByGlobs(rel, cfg.IncludeGlobs, cfg.ExcludeGlobs) {
			return nil
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
