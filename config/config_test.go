package config

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/pcm720/glyphtbl/glyphtbl"
)

// clearEnv unsets the GLYPHTBL_* variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvThreshold, EnvInvert, EnvLogLevel} {
		prev, had := os.LookupEnv(k)
		os.Unsetenv(k)
		t.Cleanup(func() {
			if had {
				os.Setenv(k, prev)
			} else {
				os.Unsetenv(k)
			}
		})
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Image != glyphtbl.DefaultImageOptions() || cfg.LogLevel != log.InfoLevel {
		t.Errorf("got %+v", cfg)
	}
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvThreshold, "200")
	t.Setenv(EnvInvert, "true")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	want := Config{Image: glyphtbl.ImageOptions{Threshold: 200, Invert: true}, LogLevel: log.DebugLevel}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	cases := map[string]string{
		EnvThreshold: "300",
		EnvInvert:    "maybe",
		EnvLogLevel:  "loud",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(k, v)
			if _, err := FromEnv(); err == nil {
				t.Errorf("%s=%s accepted", k, v)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	env := filepath.Join(dir, ".env")
	if err := os.WriteFile(local, []byte("GLYPHTBL_THRESHOLD=42\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(env, []byte("GLYPHTBL_THRESHOLD=7\nGLYPHTBL_INVERT=true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(local, env, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Image.Threshold != 42 || !cfg.Image.Invert {
		t.Errorf("got %+v", cfg.Image)
	}
}

func TestApply(t *testing.T) {
	prev := log.GetLevel()
	defer log.SetLevel(prev)

	Config{LogLevel: log.WarnLevel}.Apply()
	if log.GetLevel() != log.WarnLevel {
		t.Errorf("level = %s", log.GetLevel())
	}
}
