package core

import (
	"context"
	"io"

	"github.com/jsoncloak/jsoncloak/internal/engine"
	"github.com/jsoncloak/jsoncloak/internal/jsonx"
	"github.com/jsoncloak/jsoncloak/internal/policy"
	"github.com/jsoncloak/jsoncloak/internal/report"
	"github.com/jsoncloak/jsoncloak/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type Config = engine.Config
type Result = engine.Result
type Outcome = types.Outcome
type Policy = policy.Config
type CommentMode = jsonx.CommentMode
type Document = report.Document

const (
	CommentsCompat = jsonx.CommentsCompat
	CommentsAware  = jsonx.CommentsAware
)

// DefaultPolicy returns the built-in selection policy.
func DefaultPolicy() Policy { return policy.Default() }

// Run processes every JSON file under cfg.Root. See engine.Run.
func Run(ctx context.Context, cfg Config) (Result, error) {
	return engine.Run(ctx, cfg)
}

// Transform returns the obfuscated form of a single JSON document without
// touching the filesystem. confuse appends the confusion suffix.
func Transform(raw []byte, mode CommentMode, confuse bool) ([]byte, error) {
	return engine.Transform(raw, mode, confuse)
}

// HashName returns the file name the rename pipeline gives content.
func HashName(content []byte) string {
	return engine.ContentHash(content) + ".json"
}

// WriteReport writes res as the same JSON document the CLI prints for
// --json. root is reported as given.
func WriteReport(w io.Writer, root string, res Result, dryRun bool) error {
	return report.WriteJSON(w, root, res, report.PrintOptions{NoColor: true, DryRun: dryRun})
}
