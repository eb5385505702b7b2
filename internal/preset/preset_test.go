package preset

import (
	"testing"

	"github.com/AnyUserName/trc/internal/transform"
)

func TestGet_Fallback(t *testing.T) {
	p := Get("no-such-preset")
	if p.Name != "no-such-preset" {
		t.Errorf("name: got %q", p.Name)
	}
	if got, want := transform.Compile(p.Config()), transform.Compile(Get(DefaultName).Config()); got != want {
		t.Errorf("fallback config: got %q, want %q", got, want)
	}
	if _, ok := Lookup("no-such-preset"); ok {
		t.Error("lookup: unknown preset reported as built in")
	}
}

func TestPresets_Compile(t *testing.T) {
	want := map[string]string{
		"thumbnail":       "w-150,h-150,c-maintain_ratio,fo-auto",
		"avatar":          "w-128,h-128,fo-face,r-max",
		"banner":          "w-1280,ar-3-1,c-maintain_ratio,dpr-auto",
		"social-card":     "w-1200,h-630,c-pad_resize,bg-dominant",
		"product-shot":    "w-800,e-bgremove,e-shadow-bl-10_st-30",
		"video-preview":   "w-640,du-10,ac-none",
		"video-thumbnail": "so-2,w-480,ar-16-9",
	}
	names := Names()
	if len(names) != len(want) {
		t.Fatalf("names: got %v", names)
	}
	for _, n := range names {
		if got := transform.Compile(Get(n).Config()); got != want[n] {
			t.Errorf("%s: got %q, want %q", n, got, want[n])
		}
	}
}

func TestPreset_ConfigIsFresh(t *testing.T) {
	a := Get("avatar").Config().(*transform.ImageConfig)
	a.Basics.Width = 1
	b := Get("avatar").Config().(*transform.ImageConfig)
	if b.Basics.Width != 128 {
		t.Errorf("preset shared state: width %v", b.Basics.Width)
	}
}

func TestEffectiveWidths(t *testing.T) {
	p := Preset{Widths: []int{150, 300, 600}, Retina: true}
	got := p.EffectiveWidths(0)
	want := []int{150, 300, 600, 1200}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	// 600 exceeds the cap; the retina doubles of 150 and 300 are 300 (seen) and 600.
	if got := p.EffectiveWidths(400); len(got) != 2 || got[0] != 150 || got[1] != 300 {
		t.Errorf("capped: got %v, want [150 300]", got)
	}
}

func TestWithWidth(t *testing.T) {
	cfg := Get("thumbnail").Config()
	resized := WithWidth(cfg, 300)
	if got := transform.Compile(resized); got != "w-300,h-300,c-maintain_ratio,fo-auto" {
		t.Errorf("resized: got %q", got)
	}
	if got := transform.Compile(cfg); got != "w-150,h-150,c-maintain_ratio,fo-auto" {
		t.Errorf("original mutated: got %q", got)
	}

	video := Get("video-preview").Config()
	if WithWidth(video, 300) != video {
		t.Error("video config should be returned unchanged")
	}
	if got := transform.Compile(WithWidth(&transform.ImageConfig{}, 64)); got != "w-64" {
		t.Errorf("empty basics: got %q", got)
	}
}
