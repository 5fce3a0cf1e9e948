package preflight

import (
	"context"

	"audiorip/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Optional results are reported but never block a rip.
	Optional bool
}

// Failed returns the required results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			failed = append(failed, r)
		}
	}
	return failed
}

// RunAll executes all applicable preflight checks for the given config.
// The disc check is skipped when requireDisc is false.
func RunAll(ctx context.Context, cfg *config.Config, requireDisc bool) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDevice(cfg.Device.Path),
		CheckDirectoryAccess("Output directory", cfg.Output.Dir),
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
	}
	if requireDisc {
		results = append(results, CheckDisc(cfg.Device.Path))
	}
	if cfg.Catalog.Enabled {
		catalog := CheckCatalog(ctx, cfg.Catalog.Path)
		catalog.Optional = true
		results = append(results, catalog)
	}
	return results
}
