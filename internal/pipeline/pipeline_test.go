package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/AnyUserName/trc/internal/codec"
	"github.com/AnyUserName/trc/internal/hasher"
)

func writeFile(t *testing.T, dir, rel, data string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanJobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{}`)
	writeFile(t, dir, "nested/b.yaml", `src: b.jpg`)
	writeFile(t, dir, "nested/c.YML", `src: c.jpg`)
	writeFile(t, dir, "notes.txt", `ignored`)
	writeFile(t, dir, ".git/d.json", `{}`)

	sources, err := ScanJobs(dir, codec.NewRegistry())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	var keys []string
	for _, s := range sources {
		keys = append(keys, s.Key+":"+s.Format)
	}
	if got, want := strings.Join(keys, " "), "a:json nested/b:yaml nested/c:yaml"; got != want {
		t.Errorf("keys: got %q, want %q", got, want)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "avatar.json", `{"src": "users/u1.jpg", "preset": "avatar"}`)
	writeFile(t, dir, "default.yaml", "src: plain.jpg\n")
	writeFile(t, dir, "promo.yaml", `
src: https://cdn.example.com/promo.jpg?v=2
config:
  type: IMAGE
  basics: {width: 600}
  overlays:
    - {type: text, text: "Sale, today", fontSize: 30}
widths: [300]
`)
	writeFile(t, dir, "clip.json", `{"src": "clip.mp4", "config": {"type": "VIDEO", "audio": {"mute": true}}}`)

	p := New(Config{
		InputDir: dir,
		Endpoint: "https://ik.example.com/demo",
		Workers:  2,
		Logger:   zerolog.Nop(),
	})
	m, err := p.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(m.Assets) != 4 {
		t.Fatalf("assets: got %d", len(m.Assets))
	}
	if m.RunID == "" || m.Preset != "thumbnail" || m.Endpoint != "https://ik.example.com/demo" {
		t.Errorf("header: got run_id=%q preset=%q endpoint=%q", m.RunID, m.Preset, m.Endpoint)
	}

	a := m.Assets["avatar"]
	if a.Preset != "avatar" || a.Tr != "w-128,h-128,fo-face,r-max" {
		t.Errorf("avatar: got %+v", a)
	}
	if a.URL != "https://ik.example.com/demo/users/u1.jpg?tr=w-128,h-128,fo-face,r-max" {
		t.Errorf("avatar url: got %q", a.URL)
	}
	if a.Hash != hasher.CacheKey("https://ik.example.com/demo/users/u1.jpg", a.Tr) {
		t.Errorf("avatar hash: got %q", a.Hash)
	}
	// 64, 128, 256: the retina double of 64 is already listed.
	if len(a.Variants) != 3 || a.Variants[0].Tr != "w-64,h-64,fo-face,r-max" {
		t.Errorf("avatar variants: got %+v", a.Variants)
	}

	d := m.Assets["default"]
	if d.Preset != "thumbnail" || d.Tr != "w-150,h-150,c-maintain_ratio,fo-auto" {
		t.Errorf("default: got %+v", d)
	}

	pr := m.Assets["promo"]
	wantTr := "w-600,l-text,i-Sale%2C%20today,fs-30,l-end"
	if pr.Preset != "" || pr.Tr != wantTr || pr.Tokens != 1 || pr.Layers != 1 {
		t.Errorf("promo: got %+v", pr)
	}
	if pr.URL != "https://cdn.example.com/promo.jpg?v=2&tr="+wantTr {
		t.Errorf("promo url: got %q", pr.URL)
	}
	if len(pr.Variants) != 1 || pr.Variants[0].Tr != "w-300,l-text,i-Sale%2C%20today,fs-30,l-end" {
		t.Errorf("promo variants: got %+v", pr.Variants)
	}

	c := m.Assets["clip"]
	if c.MediaType != "VIDEO" || c.Tr != "ac-none" || len(c.Variants) != 0 {
		t.Errorf("clip: got %+v", c)
	}

	if m.Stats.TotalAssets != 4 || m.Stats.TotalVariants != 3+2+1 {
		t.Errorf("stats: got %+v", m.Stats)
	}
	if m.BuildInfo == nil || m.BuildInfo.Workers != 2 {
		t.Errorf("build_info: got %+v", m.BuildInfo)
	}
}

func TestRun_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.json", `{"src": "a.jpg", "preset": "no-such"}`)
	writeFile(t, dir, "nosrc.json", `{"preset": "avatar"}`)
	writeFile(t, dir, "badtype.json", `{"src": "b.jpg", "config": {"type": "AUDIO"}}`)
	writeFile(t, dir, "typo.json", `{"src": "c.jpg", "presett": "avatar"}`)

	m, err := New(Config{InputDir: dir, Logger: zerolog.Nop()}).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(m.Assets) != 1 {
		t.Fatalf("assets: got %d", len(m.Assets))
	}
	a := m.Assets["ok"]
	if a.Preset != "no-such" || a.Tr != "w-150,h-150,c-maintain_ratio,fo-auto" {
		t.Errorf("fallback: got %+v", a)
	}
	if a.URL != "a.jpg?tr="+a.Tr {
		t.Errorf("url without endpoint: got %q", a.URL)
	}
}

func TestRun_AllFail(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.json", `{`)
	if _, err := New(Config{InputDir: dir, Logger: zerolog.Nop()}).Run(); err == nil || !strings.Contains(err.Error(), "all 1 jobs failed") {
		t.Errorf("got %v", err)
	}
	if _, err := New(Config{InputDir: t.TempDir(), Logger: zerolog.Nop()}).Run(); err == nil || !strings.Contains(err.Error(), "no job files") {
		t.Errorf("empty dir: got %v", err)
	}
}

func TestRun_Diagnostics(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stock.json", `{"src": "a.jpg", "config": {"type": "IMAGE", "overlays": [
		{"type": "image", "src": "https://www.shutterstock.com/x.jpg"}
	]}}`)
	m, err := New(Config{InputDir: dir, Logger: zerolog.Nop()}).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if m.BuildInfo.Diagnostics != 1 {
		t.Errorf("diagnostics: got %d", m.BuildInfo.Diagnostics)
	}
}

func TestRun_JobHash(t *testing.T) {
	dir := t.TempDir()
	body := `{"src": "a.jpg", "preset": "avatar"}`
	writeFile(t, dir, "nested/a.json", body)
	m, err := New(Config{InputDir: dir, Logger: zerolog.Nop()}).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	a := m.Assets["nested/a"]
	if a.Job != "nested/a.json" {
		t.Errorf("job: got %q", a.Job)
	}
	if want := hasher.ContentHash([]byte(body), hasher.KeyLen); a.JobHash != want {
		t.Errorf("job hash: got %q, want %q", a.JobHash, want)
	}
}

func TestRun_DuplicateKey(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"src": "from-json.jpg"}`)
	writeFile(t, dir, "a.yaml", "src: from-yaml.jpg\n")
	writeFile(t, dir, "b.json", `{"src": "b.jpg"}`)

	m, err := New(Config{InputDir: dir, Logger: zerolog.Nop()}).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(m.Assets) != 2 {
		t.Fatalf("assets: got %d", len(m.Assets))
	}
	if a := m.Assets["a"]; a.Src != "from-json.jpg" || a.Job != "a.json" {
		t.Errorf("a: got %+v", a)
	}

	// Both files sharing one key is still a failure when nothing else builds.
	only := t.TempDir()
	writeFile(t, only, "a.json", `{`)
	writeFile(t, only, "a.yml", "src: a.jpg\n")
	if _, err := New(Config{InputDir: only, Logger: zerolog.Nop()}).Run(); err == nil || !strings.Contains(err.Error(), "all 2 jobs failed") {
		t.Errorf("got %v", err)
	}
}

func TestRun_MaxWidth(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "avatar.json", `{"src": "a.jpg", "preset": "avatar", "maxWidth": 128}`)
	writeFile(t, dir, "explicit.json", `{"src": "b.jpg", "preset": "avatar", "widths": [100, 300], "maxWidth": 200}`)
	writeFile(t, dir, "negative.json", `{"src": "c.jpg", "maxWidth": -1}`)

	m, err := New(Config{InputDir: dir, Logger: zerolog.Nop()}).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, ok := m.Assets["negative"]; ok {
		t.Error("negative maxWidth accepted")
	}
	var got []int
	for _, v := range m.Assets["avatar"].Variants {
		got = append(got, v.Width)
	}
	if len(got) != 2 || got[0] != 64 || got[1] != 128 {
		t.Errorf("avatar widths: got %v", got)
	}
	if v := m.Assets["explicit"].Variants; len(v) != 1 || v[0].Width != 100 {
		t.Errorf("explicit widths: got %+v", v)
	}
}
