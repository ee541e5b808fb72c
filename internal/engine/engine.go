package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jsoncloak/jsoncloak/internal/cache"
	"github.com/jsoncloak/jsoncloak/internal/jsonx"
	"github.com/jsoncloak/jsoncloak/internal/policy"
	"github.com/jsoncloak/jsoncloak/internal/types"
)

// Config controls a run: where to look, what to select and how to process.
type Config struct {
	Root        string
	Policy      policy.Config
	SkipRename  bool
	SkipEncrypt bool
	CommentMode jsonx.CommentMode
	// nil means DefaultConfusionFolders; an empty slice disables the suffix
	ConfusionFolders []string

	IncludeGlobs    string
	ExcludeGlobs    string
	DefaultExcludes bool

	Threads  int
	DryRun   bool
	UseCache bool
	Logger   *zap.Logger
}

// Result holds per-file outcomes in walk order plus run statistics.
type Result struct {
	Outcomes   []types.Outcome
	FilesFound int
	Duration   time.Duration
}

// Summary counts outcomes by stage status.
type Summary struct {
	Encrypted int `json:"encrypted"`
	Skipped   int `json:"skipped"`
	Cached    int `json:"cached"`
	Planned   int `json:"planned"`
	Renamed   int `json:"renamed"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
}

// Summary tallies r.Outcomes.
func (r Result) Summary() Summary {
	var s Summary
	for _, o := range r.Outcomes {
		switch o.Content {
		case types.StatusEncrypted:
			s.Encrypted++
		case types.StatusSkipped:
			s.Skipped++
		case types.StatusCached:
			s.Cached++
		case types.StatusPlanned:
			s.Planned++
		}
		switch o.Rename {
		case types.StatusRenamed:
			s.Renamed++
		case types.StatusUnchanged:
			s.Unchanged++
		}
		if o.Failed() {
			s.Failed++
		}
	}
	return s
}

// Run validates the policy, enumerates files and processes each one through
// the content pipeline and then the rename pipeline. Per-file failures are
// recorded in the outcomes and never abort the batch. A policy violation is
// returned before any file is touched. On cancellation Run stops at the next
// file boundary and returns the outcomes gathered so far with ctx.Err().
func Run(ctx context.Context, cfg Config) (Result, error) {
	var res Result
	if err := cfg.Policy.Validate(); err != nil {
		return res, err
	}
	if st, err := os.Stat(cfg.Root); err != nil || !st.IsDir() {
		return res, fmt.Errorf("%w: %s", ErrRootNotFound, cfg.Root)
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	started := time.Now()
	paths, err := Walk(ctx, cfg)
	if err != nil {
		return res, err
	}
	res.FilesFound = len(paths)
	log.Debug("discovered files", zap.String("root", cfg.Root), zap.Int("count", len(paths)))

	p := &pipeline{cfg: cfg, log: log}
	if cfg.UseCache && !cfg.DryRun {
		p.db, _ = cache.Load(cfg.Root)
	}

	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}
	outcomes := make([]types.Outcome, len(paths))
	done := make([]bool, len(paths))
	var g errgroup.Group
	g.SetLimit(threads)
	for i, rel := range paths {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// a file that waited for a free slot is not started once cancelled
			if ctx.Err() != nil {
				return nil
			}
			outcomes[i] = p.process(NewTask(cfg, rel))
			done[i] = true
			return nil
		})
	}
	_ = g.Wait()

	for i, o := range outcomes {
		if done[i] {
			res.Outcomes = append(res.Outcomes, o)
		}
	}
	res.Duration = time.Since(started)
	var runErr error
	if len(res.Outcomes) < len(paths) {
		runErr = ctx.Err()
	}

	if p.db.Entries != nil {
		if err := cache.Save(cfg.Root, p.db); err != nil {
			log.Warn("could not save cache", zap.Error(err))
		}
	}
	if runErr != nil {
		log.Warn("run interrupted", zap.Int("processed", len(res.Outcomes)), zap.Int("total", len(paths)))
	}
	return res, runErr
}

type pipeline struct {
	cfg Config
	log *zap.Logger

	mu sync.Mutex
	db cache.DB
}

func (p *pipeline) process(t Task) types.Outcome {
	out := types.Outcome{Path: t.Rel, NewPath: t.Rel}

	if p.cfg.DryRun {
		out.Content, out.Rename = types.StatusSkipped, types.StatusSkipped
		if t.Encrypt {
			out.Content = types.StatusPlanned
			out.Confused = t.Confuse
		}
		if t.Rename {
			out.Rename = types.StatusPlanned
		}
		p.log.Info("planned", zap.String("path", t.Rel), zap.Bool("encrypt", t.Encrypt), zap.Bool("rename", t.Rename))
		return out
	}

	if p.cached(t) {
		out.Content = types.StatusCached
		p.log.Info("already processed", zap.String("path", t.Rel))
		return out
	}

	out.Content = types.StatusSkipped
	if t.Encrypt {
		written, err := EncryptFile(t.Path, t.Rel, p.cfg.CommentMode, t.Confuse)
		if err != nil {
			out.Content = types.StatusFailed
			return p.fail(out, err)
		}
		// record now; the rename below may still fail
		p.record(t.Rel, written)
		out.Content = types.StatusEncrypted
		out.Confused = t.Confuse
		p.log.Info("encrypted", zap.String("path", t.Rel), zap.Bool("confused", t.Confuse))
	} else {
		p.log.Info("skipped encryption", zap.String("path", t.Rel))
	}

	out.Rename = types.StatusSkipped
	final := t.Path
	if t.Rename {
		rr, err := RenameToHash(t.Path, t.Rel)
		if err != nil {
			out.Rename = types.StatusFailed
			return p.fail(out, err)
		}
		final = rr.Path
		out.Rename = types.StatusUnchanged
		if rr.Renamed {
			p.forget(t.Rel)
			out.Rename = types.StatusRenamed
			out.NewPath = path.Join(path.Dir(t.Rel), path.Base(rr.Path))
			p.log.Info("renamed",
				zap.String("path", t.Rel),
				zap.String("from", t.Base),
				zap.String("to", path.Base(out.NewPath)),
				zap.Bool("duplicate", rr.Duplicate))
		}
	}

	p.remember(out.NewPath, final)
	return out
}

func (p *pipeline) fail(out types.Outcome, err error) types.Outcome {
	out.ErrorKind = ErrorKind(err)
	out.Error = err.Error()
	p.log.Error("file failed", zap.String("path", out.Path), zap.String("kind", string(out.ErrorKind)), zap.Error(err))
	return out
}

func (p *pipeline) cached(t Task) bool {
	if !p.enabled() {
		return false
	}
	data, err := os.ReadFile(t.Path)
	if err != nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.db.Hit(t.Rel, data)
}

func (p *pipeline) enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.db.Entries != nil
}

func (p *pipeline) remember(rel, onDisk string) {
	if !p.enabled() {
		return
	}
	data, err := os.ReadFile(onDisk)
	if err != nil {
		p.log.Warn("could not fingerprint output", zap.String("path", rel), zap.Error(err))
		return
	}
	p.record(rel, data)
}

func (p *pipeline) record(rel string, data []byte) {
	if !p.enabled() {
		return
	}
	fp := cache.Fingerprint(data)
	p.mu.Lock()
	p.db.Entries[rel] = fp
	p.mu.Unlock()
}

func (p *pipeline) forget(rel string) {
	p.mu.Lock()
	delete(p.db.Entries, rel)
	p.mu.Unlock()
}

// IsFatal reports whether err from Run means no file was processed because
// the configuration itself is invalid.
func IsFatal(err error) bool {
	var inv *policy.ConfigInvariantError
	return errors.As(err, &inv)
}
