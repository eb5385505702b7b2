package pipeline

import (
	"fmt"
	"os"

	"github.com/AnyUserName/trc/internal/hasher"
	"github.com/AnyUserName/trc/internal/logging"
	"github.com/AnyUserName/trc/internal/manifest"
	"github.com/AnyUserName/trc/internal/preset"
	"github.com/AnyUserName/trc/internal/transform"
)

// processResult holds the result of compiling a single job file.
type processResult struct {
	key         string
	asset       manifest.Asset
	err         error
	diagnostics int
	fallback    bool // unknown preset replaced by the default
}

// processJob handles a single job file: decode, resolve config, compile,
// assemble URLs.
func (p *Pipeline) processJob(src Source) processResult {
	result := processResult{key: src.Key}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", src.RelPath, err)
		return result
	}
	var job Job
	if err := p.registry.Decode(src.AbsPath, data, &job); err != nil {
		result.err = err
		return result
	}
	result.asset.Job = src.RelPath
	result.asset.JobHash = hasher.ContentHash(data, hasher.KeyLen)
	if err := job.validate(); err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}

	cfg := job.inline()
	var pr preset.Preset
	if cfg == nil {
		name := job.Preset
		if name == "" {
			name = p.cfg.DefaultPreset
		}
		var ok bool
		if pr, ok = preset.Lookup(name); !ok {
			pr = preset.Get(name)
			result.fallback = true
		}
		cfg = pr.Config()
		result.asset.Preset = pr.Name
	}

	log := p.cfg.Logger.With().Str("job", src.Key).Logger()
	obs := logging.Observer(log)
	compiler := transform.NewCompiler(transform.WithObserver(transform.ObserverFunc(func(d transform.Diagnostic) {
		result.diagnostics++
		obs.Observe(d)
	})))

	base := transform.ResolveSource(p.cfg.Endpoint, job.Src)
	tr := compiler.Compile(cfg)
	chain := transform.Parse(tr)

	result.asset.Src = job.Src
	result.asset.MediaType = string(cfg.MediaType())
	result.asset.Tr = tr
	result.asset.URL = transform.AppendTr(base, tr)
	result.asset.Hash = hasher.CacheKey(base, tr)
	result.asset.Tokens = len(chain.Tokens)
	result.asset.Layers = len(chain.Layers)

	widths := job.Widths
	if len(widths) == 0 {
		widths = pr.EffectiveWidths(job.MaxWidth)
	}
	if cfg.MediaType() != transform.MediaImage {
		return result
	}
	for _, w := range widths {
		if w <= 0 || (job.MaxWidth > 0 && w > job.MaxWidth) {
			continue
		}
		// Variants repeat the base diagnostics, so they compile silently.
		vtr := transform.Compile(preset.WithWidth(cfg, w))
		result.asset.Variants = append(result.asset.Variants, manifest.Variant{
			Width: w,
			Tr:    vtr,
			URL:   transform.AppendTr(base, vtr),
			Hash:  hasher.CacheKey(base, vtr),
		})
	}

	return result
}
