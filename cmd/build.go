package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/trc/internal/manifest"
	"github.com/AnyUserName/trc/internal/pipeline"
)

var (
	buildOutDir   string
	buildPreset   string
	buildWorkers  int
	buildEndpoint string
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Compile a directory of job files into a URL manifest",
	Long: `Scans input directory for job files (json, yaml, yml), compiles each
job's transformation and writes a manifest with the tr string, final URL and
cache key of every asset.

A job file looks like:

  {"src": "products/shoe.jpg", "preset": "product-shot"}
  {"src": "hero.jpg", "config": {"type": "IMAGE", "basics": {"width": 1200}}}

Jobs without preset or config use the default preset.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./trc_out", "output directory")
	buildCmd.Flags().StringVarP(&buildPreset, "preset", "p", "", "default preset (default TRC_DEFAULT_PRESET)")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = TRC_WORKERS or NumCPU)")
	buildCmd.Flags().StringVarP(&buildEndpoint, "endpoint", "e", "", "URL endpoint for relative sources (default TRC_URL_ENDPOINT)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	presetName := firstNonEmpty(buildPreset, cfg.DefaultPreset)
	endpoint := firstNonEmpty(buildEndpoint, cfg.Endpoint)
	workers := buildWorkers
	if workers == 0 {
		workers = cfg.Workers
	}

	logVerbose("input:    %s", absInput)
	logVerbose("output:   %s", absOutput)
	logVerbose("preset:   %s", presetName)
	logVerbose("endpoint: %s", endpoint)

	// Create output dir.
	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Run pipeline.
	p := pipeline.New(pipeline.Config{
		InputDir:      absInput,
		Endpoint:      endpoint,
		DefaultPreset: presetName,
		Workers:       workers,
		Logger:        logger,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	// Write manifest.
	manifestPath := filepath.Join(absOutput, manifest.DefaultFileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(cmd.OutOrStdout(), m, time.Since(start))
	return nil
}

func printBuildReport(w io.Writer, m *manifest.Manifest, elapsed time.Duration) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║                trc build complete                ║")
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════╝")
	fmt.Fprintln(w)

	stats := m.Stats
	fmt.Fprintf(w, "  Assets:      %d\n", stats.TotalAssets)
	fmt.Fprintf(w, "  Variants:    %d\n", stats.TotalVariants)
	fmt.Fprintf(w, "  Tokens:      %d (+%d layers)\n", stats.TotalTokens, stats.TotalLayers)
	if stats.EmptyTransforms > 0 {
		fmt.Fprintf(w, "  Untouched:   %d assets with an empty transformation\n", stats.EmptyTransforms)
	}
	fmt.Fprintf(w, "  Time:        %s\n", elapsed.Round(time.Millisecond))

	if m.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:     %d\n", m.BuildInfo.Workers)
		if m.BuildInfo.Diagnostics > 0 {
			fmt.Fprintf(w, "  Warnings:    %d overlay diagnostics (see log)\n", m.BuildInfo.Diagnostics)
		}
	}
	fmt.Fprintln(w)

	// Top 10 longest URLs.
	if len(m.Assets) > 0 {
		type assetLen struct {
			key    string
			urlLen int
			trLen  int
		}
		var items []assetLen
		for key, a := range m.Assets {
			items = append(items, assetLen{key, len(a.URL), len(a.Tr)})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].urlLen != items[j].urlLen {
				return items[i].urlLen > items[j].urlLen
			}
			return items[i].key < items[j].key
		})
		n := min(len(items), 10)
		fmt.Fprintf(w, "  Top %d longest URLs (url / tr chars):\n", n)
		for _, it := range items[:n] {
			fmt.Fprintf(w, "    %-40s %6d / %-6d\n", truncKey(it.key, 40), it.urlLen, it.trLen)
		}
		fmt.Fprintln(w)
	}

	// Manifest size.
	data, _ := json.Marshal(m)
	fmt.Fprintf(w, "  Manifest:    %s (%s)\n", manifest.DefaultFileName, formatBytes(int64(len(data))))
	fmt.Fprintln(w)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
