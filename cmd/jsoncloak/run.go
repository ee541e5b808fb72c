package jsoncloak

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/jsoncloak/jsoncloak/internal/audit"
	"github.com/jsoncloak/jsoncloak/internal/engine"
	"github.com/jsoncloak/jsoncloak/internal/logging"
	"github.com/jsoncloak/jsoncloak/internal/report"
)

func currentSettings() (settings, error) {
	wd, err := os.Getwd()
	if err != nil {
		return settings{}, err
	}
	l, err := loadLayers(wd)
	if err != nil {
		return settings{}, err
	}
	return resolveSettings(l)
}

func runRoot(cmd *cobra.Command, _ []string) error {
	s, err := currentSettings()
	if err != nil {
		return err
	}
	if flagShowConfig {
		return writeConfigYAML(cmd.OutOrStdout(), s)
	}

	log, err := logging.New(logging.Config{Level: s.LogLevel, Format: s.LogFormat, Output: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	root, err := filepath.Abs(s.DataDir)
	if err != nil {
		return err
	}
	cfg := s.engineConfig(root)
	cfg.Logger = log

	res, runErr := engine.Run(cmd.Context(), cfg)
	switch {
	case errors.Is(runErr, engine.ErrRootNotFound):
		fmt.Fprintf(cmd.ErrOrStderr(), "Data directory %s does not exist, nothing to do.\n", root)
		return nil
	case runErr != nil && !errors.Is(runErr, context.Canceled):
		return runErr
	}

	out := cmd.OutOrStdout()
	opts := report.PrintOptions{NoColor: s.NoColor || !isTerminal(out), DryRun: s.DryRun}
	switch {
	case flagJSON:
		if err := report.WriteJSON(out, root, res, opts); err != nil {
			return err
		}
	case flagText:
		report.PrintText(out, res, opts)
	default:
		report.PrintTable(out, res, opts)
	}

	if s.Audit {
		al := audit.NewAuditLog(root)
		if err := al.LogRun(audit.CreateRunRecord(root, res, s.DryRun)); err != nil {
			log.Warn("could not write audit log", zap.String("path", al.Path()), zap.Error(err))
		}
	}
	return runErr
}

func writeConfigYAML(w io.Writer, s settings) error {
	fc := s.fileConfig()
	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// isTerminal reports whether w is a terminal; colour is only used there.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
