package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/trc/internal/manifest"
	"github.com/AnyUserName/trc/internal/transform"
)

// maxURLLen is a conservative URL length limit for browsers and proxies.
const maxURLLen = 2048

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a trc manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for manifest inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifest.DefaultFileName)
	}

	m, err := manifest.ReadJSON(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	printStats(cmd.OutOrStdout(), m)
	return nil
}

func printStats(w io.Writer, m *manifest.Manifest) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Manifest version: %d\n", m.Version)
	fmt.Fprintf(w, "  Generated:        %s\n", m.GeneratedAt)
	fmt.Fprintf(w, "  Run:              %s\n", m.RunID)
	fmt.Fprintf(w, "  Default preset:   %s\n", m.Preset)
	if m.Endpoint != "" {
		fmt.Fprintf(w, "  Endpoint:         %s\n", m.Endpoint)
	}
	if m.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:          %d\n", m.BuildInfo.Workers)
		fmt.Fprintf(w, "  Diagnostics:      %d\n", m.BuildInfo.Diagnostics)
	}
	fmt.Fprintln(w)

	s := m.Stats
	fmt.Fprintf(w, "  Total assets:     %d\n", s.TotalAssets)
	fmt.Fprintf(w, "  Total variants:   %d\n", s.TotalVariants)
	fmt.Fprintf(w, "  Total tokens:     %d\n", s.TotalTokens)
	fmt.Fprintf(w, "  Total layers:     %d\n", s.TotalLayers)
	fmt.Fprintln(w)

	// Per-media-type and per-preset breakdown.
	mediaStats := map[string]int{}
	presetStats := map[string]int{}
	for _, a := range m.Assets {
		mediaStats[a.MediaType]++
		name := a.Preset
		if name == "" {
			name = "(inline)"
		}
		presetStats[name]++
	}
	fmt.Fprintln(w, "  Media types:")
	for _, k := range sortedKeys(mediaStats) {
		fmt.Fprintf(w, "    %-8s %4d assets\n", k, mediaStats[k])
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Presets:")
	for _, k := range sortedKeys(presetStats) {
		fmt.Fprintf(w, "    %-16s %4d assets\n", k, presetStats[k])
	}
	fmt.Fprintln(w)

	// Token key and layer kind breakdown.
	keyStats := map[string]int{}
	layerStats := map[string]int{}
	for _, a := range m.Assets {
		chain := transform.Parse(a.Tr)
		for _, t := range chain.Tokens {
			keyStats[t.Key()]++
		}
		for _, l := range chain.Layers {
			layerStats[l.Kind]++
		}
	}
	fmt.Fprintln(w, "  Token breakdown:")
	for _, k := range byCount(keyStats) {
		fmt.Fprintf(w, "    %-16s %4d\n", k, keyStats[k])
	}
	fmt.Fprintln(w)
	if len(layerStats) > 0 {
		fmt.Fprintln(w, "  Layer breakdown:")
		for _, k := range byCount(layerStats) {
			fmt.Fprintf(w, "    l-%-14s %4d\n", k, layerStats[k])
		}
		fmt.Fprintln(w)
	}

	// Per-width breakdown.
	widthStats := map[int]int{}
	for _, a := range m.Assets {
		for _, v := range a.Variants {
			widthStats[v.Width]++
		}
	}
	if len(widthStats) > 0 {
		var widths []int
		for wd := range widthStats {
			widths = append(widths, wd)
		}
		sort.Ints(widths)
		fmt.Fprintln(w, "  Width breakdown:")
		for _, wd := range widths {
			fmt.Fprintf(w, "    %5dpx  %4d variants\n", wd, widthStats[wd])
		}
		fmt.Fprintln(w)
	}

	// Warnings.
	var warnings []string
	for _, key := range sortedKeys(m.Assets) {
		a := m.Assets[key]
		if a.Tr == "" {
			warnings = append(warnings, fmt.Sprintf("asset %q has an empty transformation", key))
		}
		if len(a.URL) > maxURLLen {
			warnings = append(warnings, fmt.Sprintf("asset %q URL is %d chars (> %d)", key, len(a.URL), maxURLLen))
		}
	}
	if len(warnings) > 0 {
		fmt.Fprintf(w, "  Warnings (%d):\n", len(warnings))
		for _, wn := range warnings {
			fmt.Fprintf(w, "    ⚠ %s\n", wn)
		}
		fmt.Fprintln(w)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// byCount orders keys by descending count, then name.
func byCount(m map[string]int) []string {
	keys := sortedKeys(m)
	sort.SliceStable(keys, func(i, j int) bool { return m[keys[i]] > m[keys[j]] })
	return keys
}
