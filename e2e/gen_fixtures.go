//go:build ignore

// gen_fixtures writes a small set of job files for the E2E smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/AnyUserName/trc/internal/pipeline"
	"github.com/AnyUserName/trc/internal/transform"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "products"), 0o755)

	// Preset jobs.
	writeJSON(filepath.Join(dir, "avatar.json"), pipeline.Job{Src: "users/u1.jpg", Preset: "avatar"})
	for i := 1; i <= 3; i++ {
		writeJSON(filepath.Join(dir, "products", fmt.Sprintf("shoe-%d.json", i)),
			pipeline.Job{Src: fmt.Sprintf("products/shoe-%d.jpg", i), Preset: "product-shot"})
	}

	// Inline image config with overlays.
	writeJSON(filepath.Join(dir, "promo.json"), pipeline.Job{
		Src: "campaigns/promo.jpg",
		Config: &transform.Envelope{Config: &transform.ImageConfig{
			Basics: &transform.Basics{Width: 1200, Height: 630, CropMode: transform.CropMaintainRatio},
			Overlays: transform.Overlays{
				&transform.SolidBlock{Color: "#000000", Width: "bw_mul_1", Height: "200", Y: "N0", Opacity: transform.Float(6)},
				&transform.TextOverlay{Text: "Summer sale, 30% off", FontSize: "48", Color: "#FFFFFF", Typography: &transform.Typography{Bold: true}},
				&transform.ImageOverlay{Src: "https://example.com/brand/logo.png", Width: "120", X: "20", Y: "20"},
			},
		}},
		Widths: []int{600, 1200},
	})

	// Video job as YAML.
	writeYAML(filepath.Join(dir, "intro.yaml"), map[string]any{
		"src": "videos/intro.mp4",
		"config": map[string]any{
			"type":         "VIDEO",
			"basics":       map[string]any{"width": 720},
			"enhancements": map[string]any{"trimming": map[string]any{"startOffset": 0, "duration": 15}},
			"audio":        map[string]any{"mute": true},
		},
	})

	// Job without preset or config: default preset.
	writeYAML(filepath.Join(dir, "plain.yml"), map[string]any{"src": "plain.png"})

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 7 job files in %s\n", dir)
}

func writeJSON(path string, job pipeline.Job) {
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal %s: %v\n", path, err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
		os.Exit(1)
	}
}

func writeYAML(path string, doc map[string]any) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal %s: %v\n", path, err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
		os.Exit(1)
	}
}
