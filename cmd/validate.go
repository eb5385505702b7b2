package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/trc/internal/hasher"
	"github.com/AnyUserName/trc/internal/manifest"
	"github.com/AnyUserName/trc/internal/transform"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a trc manifest: URLs, cache keys and stats",
	Long: `Re-derives every asset's URL, cache key and token counts from its src
and tr, and checks them and the aggregate stats against the manifest.
With --jobs, also checks that each asset's job file is unchanged since
the build.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var validateJobsDir string

func init() {
	validateCmd.Flags().StringVar(&validateJobsDir, "jobs", "", "job directory the manifest was built from")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	manifestPath := args[0]

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	errs := validateManifest(&m)
	if validateJobsDir != "" {
		errs = append(errs, validateJobFiles(&m, validateJobsDir)...)
	}
	return reportValidation(cmd.OutOrStdout(), &m, errs)
}

func reportValidation(w io.Writer, m *manifest.Manifest, errs []string) error {
	if len(errs) == 0 {
		fmt.Fprintln(w, "  ✓ Manifest is valid")
		fmt.Fprintf(w, "  ✓ %d assets, %d variants — all URLs and cache keys match\n", m.Stats.TotalAssets, m.Stats.TotalVariants)
		return nil
	}

	fmt.Fprintf(w, "  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(w, "    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateManifest(m *manifest.Manifest) []string {
	var errs []string

	// Check version.
	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	var want manifest.Stats
	want.TotalAssets = len(m.Assets)

	for _, key := range sortedKeys(m.Assets) {
		asset := m.Assets[key]

		if asset.Src == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing src", key))
		}
		switch transform.MediaType(asset.MediaType) {
		case transform.MediaImage, transform.MediaVideo:
		default:
			errs = append(errs, fmt.Sprintf("asset %q: unknown media type %q", key, asset.MediaType))
		}

		base := transform.ResolveSource(m.Endpoint, asset.Src)
		if u := transform.AppendTr(base, asset.Tr); u != asset.URL {
			errs = append(errs, fmt.Sprintf("asset %q: url mismatch: manifest=%s, derived=%s", key, asset.URL, u))
		}
		if h := hasher.CacheKey(base, asset.Tr); h != asset.Hash {
			errs = append(errs, fmt.Sprintf("asset %q: hash mismatch: manifest=%s, derived=%s", key, asset.Hash, h))
		}

		chain := transform.Parse(asset.Tr)
		if len(chain.Tokens) != asset.Tokens || len(chain.Layers) != asset.Layers {
			errs = append(errs, fmt.Sprintf("asset %q: token count mismatch: manifest=%d/%d, parsed=%d/%d",
				key, asset.Tokens, asset.Layers, len(chain.Tokens), len(chain.Layers)))
		}
		want.TotalTokens += len(chain.Tokens)
		want.TotalLayers += len(chain.Layers)
		if asset.Tr == "" {
			want.EmptyTransforms++
		}

		seenWidths := map[int]bool{}
		for i, v := range asset.Variants {
			if v.Width <= 0 {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: invalid width %d", key, i, v.Width))
			}
			if seenWidths[v.Width] {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: duplicate width %d", key, i, v.Width))
			}
			seenWidths[v.Width] = true

			if u := transform.AppendTr(base, v.Tr); u != v.URL {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: url mismatch", key, i))
			}
			if h := hasher.CacheKey(base, v.Tr); h != v.Hash {
				errs = append(errs, fmt.Sprintf("asset %q variant[%d]: hash mismatch", key, i))
			}
		}
		want.TotalVariants += len(asset.Variants)
	}

	// Verify stats consistency.
	s := m.Stats
	check := func(name string, got, exp int) {
		if got != exp {
			errs = append(errs, fmt.Sprintf("stats.%s mismatch: %d != %d", name, got, exp))
		}
	}
	check("total_assets", s.TotalAssets, want.TotalAssets)
	check("total_variants", s.TotalVariants, want.TotalVariants)
	check("total_tokens", s.TotalTokens, want.TotalTokens)
	check("total_layers", s.TotalLayers, want.TotalLayers)
	check("empty_transforms", s.EmptyTransforms, want.EmptyTransforms)

	return errs
}

// validateJobFiles re-hashes the job file behind each asset under dir.
func validateJobFiles(m *manifest.Manifest, dir string) []string {
	var errs []string
	for _, key := range sortedKeys(m.Assets) {
		asset := m.Assets[key]
		if asset.Job == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(asset.Job)))
		if err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: job file missing: %s", key, asset.Job))
			continue
		}
		if h := hasher.ContentHash(data, hasher.KeyLen); h != asset.JobHash {
			errs = append(errs, fmt.Sprintf("asset %q: job file changed since build: %s", key, asset.Job))
		}
	}
	return errs
}
