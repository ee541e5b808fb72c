package jsoncloak

import (
	"errors"
	"fmt"

	"github.com/jsoncloak/jsoncloak/internal/config"
	"github.com/jsoncloak/jsoncloak/internal/engine"
	"github.com/jsoncloak/jsoncloak/internal/jsonx"
	"github.com/jsoncloak/jsoncloak/internal/policy"
)

const defaultDataDir = "data"

// layers holds the config sources below the CLI, highest precedence first.
type layers struct {
	env    config.FileConfig
	local  config.FileConfig
	global config.FileConfig
}

// loadLayers reads the global file, the local file from dir (or the file
// named by --config) and the environment. Missing files are not errors.
func loadLayers(dir string) (layers, error) {
	var l layers
	c, err := config.LoadGlobal()
	switch {
	case err == nil:
		l.global = c
	case !errors.Is(err, config.ErrNotFound):
		return l, fmt.Errorf("global config: %w", err)
	}

	if flagConfig != "" {
		c, err := config.LoadFile(flagConfig)
		if err != nil {
			return l, fmt.Errorf("config %s: %w", flagConfig, err)
		}
		l.local = c
	} else {
		c, err := config.LoadLocal(dir)
		switch {
		case err == nil:
			l.local = c
		case !errors.Is(err, config.ErrNotFound):
			return l, fmt.Errorf("local config: %w", err)
		}
	}

	l.env, err = config.LoadEnv()
	if err != nil {
		return l, err
	}
	return l, nil
}

// settings is the fully merged configuration of one invocation.
type settings struct {
	DataDir          string
	SkipRename       bool
	SkipEncrypt      bool
	CommentMode      jsonx.CommentMode
	Include          string
	Exclude          string
	Threads          int
	NoColor          bool
	DefaultExcludes  bool
	Cache            bool
	Audit            bool
	DryRun           bool
	LogLevel         string
	LogFormat        string
	ConfusionFolders []string
	Policy           policy.Config
}

func resolveSettings(l layers) (settings, error) {
	e, lo, g := l.env, l.local, l.global
	mode, err := jsonx.ParseCommentMode(pickString(flagCommentMode, e.CommentMode, lo.CommentMode, g.CommentMode))
	if err != nil {
		return settings{}, err
	}
	s := settings{
		DataDir:          pickString(flagDataDir, e.DataDir, lo.DataDir, g.DataDir),
		SkipRename:       pickBool(flagNoRename, e.SkipRename, lo.SkipRename, g.SkipRename),
		SkipEncrypt:      pickBool(flagNoEncrypt, e.SkipEncrypt, lo.SkipEncrypt, g.SkipEncrypt),
		CommentMode:      mode,
		Include:          pickString(flagInclude, e.Include, lo.Include, g.Include),
		Exclude:          pickString(flagExclude, e.Exclude, lo.Exclude, g.Exclude),
		Threads:          pickInt(flagThreads, e.Threads, lo.Threads, g.Threads),
		NoColor:          pickBool(flagNoColor, e.NoColor, lo.NoColor, g.NoColor),
		DefaultExcludes:  pickBool(flagDefaultExcludes, e.DefaultExcludes, lo.DefaultExcludes, g.DefaultExcludes),
		Cache:            pickBool(flagCache, e.Cache, lo.Cache, g.Cache),
		Audit:            pickBool(flagAudit, e.Audit, lo.Audit, g.Audit),
		DryRun:           flagDryRun,
		LogLevel:         pickString(flagLogLevel, e.LogLevel, lo.LogLevel, g.LogLevel),
		LogFormat:        pickString(flagLogFormat, e.LogFormat, lo.LogFormat, g.LogFormat),
		ConfusionFolders: pickStrings(e.ConfusionFolders, lo.ConfusionFolders, g.ConfusionFolders),
		Policy:           lo.Selection(g.Selection(policy.Default())),
	}
	if s.DataDir == "" {
		s.DataDir = defaultDataDir
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	if s.LogFormat == "" {
		s.LogFormat = "console"
	}
	return s, nil
}

// fileConfig renders merged settings in the YAML file shape, for
// --show-config and config init.
func (s settings) fileConfig() config.FileConfig {
	folders := s.ConfusionFolders
	if folders == nil {
		folders = append([]string{}, engine.DefaultConfusionFolders...)
	}
	rename, encrypt := config.FromSelection(s.Policy)
	return config.FileConfig{
		DataDir:          strPtr(s.DataDir),
		SkipRename:       boolPtr(s.SkipRename),
		SkipEncrypt:      boolPtr(s.SkipEncrypt),
		CommentMode:      strPtr(string(s.CommentMode)),
		Include:          strPtr(s.Include),
		Exclude:          strPtr(s.Exclude),
		Threads:          intPtr(s.Threads),
		NoColor:          boolPtr(s.NoColor),
		DefaultExcludes:  boolPtr(s.DefaultExcludes),
		Cache:            boolPtr(s.Cache),
		Audit:            boolPtr(s.Audit),
		LogLevel:         strPtr(s.LogLevel),
		LogFormat:        strPtr(s.LogFormat),
		ConfusionFolders: folders,
		Rename:           rename,
		Encrypt:          encrypt,
	}
}

func (s settings) engineConfig(root string) engine.Config {
	return engine.Config{
		Root:             root,
		Policy:           s.Policy,
		SkipRename:       s.SkipRename,
		SkipEncrypt:      s.SkipEncrypt,
		CommentMode:      s.CommentMode,
		ConfusionFolders: s.ConfusionFolders,
		IncludeGlobs:     s.Include,
		ExcludeGlobs:     s.Exclude,
		DefaultExcludes:  s.DefaultExcludes,
		Threads:          s.Threads,
		DryRun:           s.DryRun,
		UseCache:         s.Cache,
	}
}
