// Package core provides a small, stable facade over jsoncloak's internal
// engine for external integrations such as build scripts and pack tooling.
//
// Example:
//
//	cfg := core.Config{Root: "data", Policy: core.DefaultPolicy()}
//	res, err := core.Run(context.Background(), cfg)
//	if err != nil { /* handle */ }
//	_ = core.WriteReport(os.Stdout, cfg.Root, res, cfg.DryRun)
package core
