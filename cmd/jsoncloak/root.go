package jsoncloak

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jsoncloak/jsoncloak/internal/engine"
)

var (
	flagDataDir         string
	flagNoRename        bool
	flagNoEncrypt       bool
	flagShowConfig      bool
	flagConfig          string
	flagDryRun          bool
	flagThreads         int
	flagJSON            bool
	flagText            bool
	flagNoColor         bool
	flagCache           bool
	flagAudit           bool
	flagInclude         string
	flagExclude         string
	flagCommentMode     string
	flagDefaultExcludes bool
	flagLogLevel        string
	flagLogFormat       string

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the jsoncloak CLI.
var rootCmd = &cobra.Command{
	Use:   "jsoncloak",
	Short: "Obfuscate the JSON files of a game data directory",
	Long: "jsoncloak rewrites every JSON file under a data directory so that all string\n" +
		"content is unicode-escaped, optionally appends a confusion suffix, and renames\n" +
		"files to the MD5 hash of their final content, all governed by a per-operation\n" +
		"blacklist/whitelist policy.",
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the jsoncloak CLI. It should be called by the main package.
// Interrupts cancel the run at the next file boundary.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case engine.IsFatal(err):
		return 2
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flagDataDir, "data-dir", "", "data directory to process (default \"data\")")
	f.BoolVar(&flagNoRename, "no-rename", false, "skip the rename pipeline")
	f.BoolVar(&flagNoEncrypt, "no-encrypt", false, "skip the content pipeline")
	f.BoolVar(&flagShowConfig, "show-config", false, "print the merged configuration as YAML and exit")
	f.BoolVar(&flagDryRun, "dry-run", false, "evaluate the policy and report without writing anything")
	f.IntVar(&flagThreads, "threads", 0, "worker count (0 or 1 = sequential)")
	f.BoolVar(&flagJSON, "json", false, "emit a JSON report")
	f.BoolVar(&flagText, "text", false, "emit a plain text report instead of a table")
	f.BoolVar(&flagCache, "cache", false, "skip files jsoncloak already wrote on a previous run")
	f.BoolVar(&flagAudit, "audit", false, "append a run record to the audit log")
	f.StringVar(&flagInclude, "include", "", "comma-separated include globs")
	f.StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	f.StringVar(&flagCommentMode, "comment-mode", "", "comment stripping: compat | aware (default \"compat\")")
	f.BoolVar(&flagDefaultExcludes, "default-excludes", false, "skip VCS, editor and node_modules folders")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "explicit YAML config file (replaces the local config)")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug | info | warn | error (default \"info\")")
	pf.StringVar(&flagLogFormat, "log-format", "", "log format: console | json (default \"console\")")
}
