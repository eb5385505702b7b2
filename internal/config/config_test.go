package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TRC_URL_ENDPOINT", "TRC_DEFAULT_PRESET", "TRC_WORKERS", "TRC_LOG_LEVEL", "TRC_LOG_FORMAT"} {
		t.Setenv(k, "")
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir()) // no .env here

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultPreset != "thumbnail" || cfg.Workers != 0 || cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("defaults: got %+v", cfg)
	}
	if cfg.Endpoint != "" {
		t.Errorf("endpoint: got %q", cfg.Endpoint)
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "trc.env")
	data := "TRC_URL_ENDPOINT=https://ik.example.com/demo\nTRC_WORKERS=3\nTRC_LOG_FORMAT=json\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	// Unset so godotenv may fill them; set variables take precedence.
	for _, k := range []string{"TRC_URL_ENDPOINT", "TRC_WORKERS", "TRC_LOG_FORMAT"} {
		os.Unsetenv(k)
	}
	t.Setenv("TRC_DEFAULT_PRESET", "avatar")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Endpoint != "https://ik.example.com/demo" {
		t.Errorf("endpoint: got %q", cfg.Endpoint)
	}
	if cfg.Workers != 3 || cfg.LogFormat != "json" || cfg.DefaultPreset != "avatar" {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.env")); err == nil {
		t.Error("expected error for missing env file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		cfg  Config
		want string
	}{
		{Config{LogFormat: "console"}, ""},
		{Config{LogFormat: "xml"}, "TRC_LOG_FORMAT"},
		{Config{LogFormat: "json", Workers: -1}, "TRC_WORKERS"},
		{Config{LogFormat: "json", Endpoint: "ik.example.com/demo"}, "TRC_URL_ENDPOINT"},
		{Config{LogFormat: "json", Endpoint: "https://ik.example.com/demo"}, ""},
	}
	for _, c := range cases {
		err := c.cfg.Validate()
		if c.want == "" {
			if err != nil {
				t.Errorf("%+v: unexpected error %v", c.cfg, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), c.want) {
			t.Errorf("%+v: got %v, want error mentioning %s", c.cfg, err, c.want)
		}
	}
}
