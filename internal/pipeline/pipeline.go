package pipeline

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AnyUserName/trc/internal/codec"
	"github.com/AnyUserName/trc/internal/manifest"
	"github.com/AnyUserName/trc/internal/preset"
)

// Config holds all parameters for a build pipeline run.
type Config struct {
	InputDir      string
	Endpoint      string // URL endpoint prefixed to relative sources
	DefaultPreset string
	Workers       int
	Logger        zerolog.Logger
}

// Pipeline orchestrates batch compilation of job files.
type Pipeline struct {
	cfg      Config
	registry *codec.Registry
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.DefaultPreset == "" {
		cfg.DefaultPreset = preset.DefaultName
	}
	return &Pipeline{
		cfg:      cfg,
		registry: codec.NewRegistry(),
	}
}

// Run executes the full build pipeline and returns the manifest.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	log := p.cfg.Logger
	log.Debug().Msg(p.registry.String())

	// Step 1: Scan for job files.
	sources, err := ScanJobs(p.cfg.InputDir, p.registry)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no job files found in %s", p.cfg.InputDir)
	}
	log.Debug().Int("jobs", len(sources)).Msg("scan complete")

	// Step 2: Compile jobs in parallel.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	// Job files differing only by extension map to the same asset key; the
	// first in walk order owns it.
	owner := make(map[string]string, len(sources))
	for i, src := range sources {
		if first, dup := owner[src.Key]; dup {
			results[i] = processResult{
				key: src.Key,
				err: fmt.Errorf("duplicate asset key %q: %s and %s", src.Key, first, src.RelPath),
			}
			continue
		}
		owner[src.Key] = src.RelPath

		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			log.Debug().Str("job", s.Key).Msg("processing")
			results[idx] = p.processJob(s)

			if r := results[idx]; r.err == nil {
				log.Debug().Str("job", s.Key).Int("tokens", r.asset.Tokens).
					Int("layers", r.asset.Layers).Msg("done")
			}
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.DefaultPreset)
	m.RunID = uuid.NewString()
	m.Endpoint = p.cfg.Endpoint

	var errs []error
	var diagnostics int
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		if r.fallback {
			log.Warn().Str("job", r.key).Str("preset", r.asset.Preset).
				Str("fallback", preset.DefaultName).Msg("unknown preset")
		}
		m.Assets[r.key] = r.asset
		diagnostics += r.diagnostics
	}

	// Report errors but don't fail the entire build for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			log.Error().Err(e).Msg("job failed")
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d jobs failed to compile", len(errs))
		}
		log.Warn().Msgf("%d of %d jobs had errors", len(errs), len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers:     p.cfg.Workers,
		Diagnostics: diagnostics,
	}
	m.ComputeStats()
	return m, nil
}
