package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/jsoncloak/jsoncloak/internal/policy"
)

// EnvPrefix is the prefix of environment variables read by LoadEnv.
const EnvPrefix = "JSONCLOAK_"

// ErrNotFound is returned by LoadLocal and LoadGlobal when there is no file
// to load. Other errors mean a file exists but could not be read.
var ErrNotFound = errors.New("config not found")

// FileConfig is the on-disk YAML configuration shape for jsoncloak.
// Nil fields were not set and fall through to the next layer.
type FileConfig struct {
	DataDir          *string  `yaml:"data_dir"`
	SkipRename       *bool    `yaml:"skip_rename"`
	SkipEncrypt      *bool    `yaml:"skip_encrypt"`
	CommentMode      *string  `yaml:"comment_mode"`
	Include          *string  `yaml:"include"`
	Exclude          *string  `yaml:"exclude"`
	Threads          *int     `yaml:"threads"`
	NoColor          *bool    `yaml:"no_color"`
	DefaultExcludes  *bool    `yaml:"default_excludes"`
	Cache            *bool    `yaml:"cache"`
	Audit            *bool    `yaml:"audit"`
	LogLevel         *string  `yaml:"log_level"`
	LogFormat        *string  `yaml:"log_format"`
	ConfusionFolders []string `yaml:"confusion_folders"`

	// Selection rules overlay the built-in defaults list by list.
	Rename  *RulesConfig `yaml:"rename"`
	Encrypt *RulesConfig `yaml:"encrypt"`
}

// RulesConfig mirrors policy.Rules with optional lists.
type RulesConfig struct {
	FileBlacklist   *ListConfig `yaml:"file_blacklist"`
	FolderBlacklist *ListConfig `yaml:"folder_blacklist"`
	FileWhitelist   *ListConfig `yaml:"file_whitelist"`
	FolderWhitelist *ListConfig `yaml:"folder_whitelist"`
}

// ListConfig mirrors policy.List. A nil Names keeps the base names; an
// explicit empty list clears them.
type ListConfig struct {
	Enabled *bool    `yaml:"enabled"`
	Names   []string `yaml:"names,omitempty"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LocalNames are the file names LoadLocal looks for, in order.
var LocalNames = []string{".jsoncloak.yml", ".jsoncloak.yaml", "jsoncloak.yml", "jsoncloak.yaml"}

// LoadLocal searches for a project-local config file in dir.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range LocalNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, fmt.Errorf("no local config in %s: %w", dir, ErrNotFound)
}

// GlobalPath returns the location of the global config file.
func GlobalPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return "", fmt.Errorf("no config dir: %w", ErrNotFound)
	}
	return filepath.Join(base, "jsoncloak", "config.yml"), nil
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	p, err := GlobalPath()
	if err != nil {
		return cfg, err
	}
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, fmt.Errorf("no global config at %s: %w", p, ErrNotFound)
}

// LoadEnv reads JSONCLOAK_* variables into a FileConfig. Keys map to the
// top-level YAML keys, so JSONCLOAK_SKIP_RENAME sets skip_rename.
// JSONCLOAK_CONFUSION_FOLDERS takes a comma-separated list; an empty value
// disables the suffix. Selection rules are only configurable through files.
func LoadEnv() (FileConfig, error) {
	var cfg FileConfig
	k := koanf.New(".")
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		switch key {
		case "rename", "encrypt":
			// nested rule lists cannot come from flat variables
			return "", nil
		case "confusion_folders":
			return key, splitList(value)
		}
		return key, value
	}), nil); err != nil {
		return cfg, fmt.Errorf("load environment: %w", err)
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return cfg, fmt.Errorf("decode environment: %w", err)
	}
	return cfg, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Selection overlays the configured rule lists on base and returns the
// result. base is not modified.
func (fc FileConfig) Selection(base policy.Config) policy.Config {
	out := policy.Config{
		Rename:  overlayRules(base.Rename, fc.Rename),
		Encrypt: overlayRules(base.Encrypt, fc.Encrypt),
	}
	return out
}

func overlayRules(base policy.Rules, rc *RulesConfig) policy.Rules {
	out := policy.Rules{
		FileBlacklist:   cloneList(base.FileBlacklist),
		FolderBlacklist: cloneList(base.FolderBlacklist),
		FileWhitelist:   cloneList(base.FileWhitelist),
		FolderWhitelist: cloneList(base.FolderWhitelist),
	}
	if rc == nil {
		return out
	}
	overlayList(&out.FileBlacklist, rc.FileBlacklist)
	overlayList(&out.FolderBlacklist, rc.FolderBlacklist)
	overlayList(&out.FileWhitelist, rc.FileWhitelist)
	overlayList(&out.FolderWhitelist, rc.FolderWhitelist)
	return out
}

func overlayList(dst *policy.List, lc *ListConfig) {
	if lc == nil {
		return
	}
	if lc.Enabled != nil {
		dst.Enabled = *lc.Enabled
	}
	if lc.Names != nil {
		dst.Names = append([]string{}, lc.Names...)
	}
}

func cloneList(l policy.List) policy.List {
	if l.Names != nil {
		l.Names = append([]string{}, l.Names...)
	}
	return l
}

// FromSelection renders a policy as a RulesConfig pair, used when writing
// a starter config file.
func FromSelection(c policy.Config) (rename, encrypt *RulesConfig) {
	return toRules(c.Rename), toRules(c.Encrypt)
}

func toRules(r policy.Rules) *RulesConfig {
	return &RulesConfig{
		FileBlacklist:   toList(r.FileBlacklist),
		FolderBlacklist: toList(r.FolderBlacklist),
		FileWhitelist:   toList(r.FileWhitelist),
		FolderWhitelist: toList(r.FolderWhitelist),
	}
}

func toList(l policy.List) *ListConfig {
	enabled := l.Enabled
	return &ListConfig{Enabled: &enabled, Names: cloneList(l).Names}
}
