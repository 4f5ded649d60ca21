package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !reflect.DeepEqual(cfg.Submit.Sinks, []string{"log"}) {
		t.Errorf("default sinks = %v, want [log]", cfg.Submit.Sinks)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("default level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.UI.Plain {
		t.Error("default plain = true, want false")
	}
	if cfg.UI.Width != 60 {
		t.Errorf("default width = %d, want 60", cfg.UI.Width)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	cfgPath := writeConfig(t, t.TempDir(), `
submit:
  sinks: [log, yaml]
log:
  level: debug
ui:
  plain: true
  width: 80
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg.Submit.Sinks, []string{"log", "yaml"}) {
		t.Errorf("sinks = %v, want [log yaml]", cfg.Submit.Sinks)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("level = %q, want %q", cfg.Log.Level, "debug")
	}
	if !cfg.UI.Plain {
		t.Error("plain = false, want true")
	}
	if cfg.UI.Width != 80 {
		t.Errorf("width = %d, want 80", cfg.UI.Width)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/regform.yaml")
	if err != nil {
		t.Fatalf("Load() should return defaults for missing file, got error: %v", err)
	}
	if want := DefaultConfig(); !reflect.DeepEqual(*cfg, want) {
		t.Errorf("Load(missing) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfgPath := writeConfig(t, t.TempDir(), "{{invalid yaml")

	if _, err := Load(cfgPath); err == nil {
		t.Fatal("Load(invalid YAML) should return error")
	}
}

func TestLoad_UnknownField(t *testing.T) {
	cfgPath := writeConfig(t, t.TempDir(), `
log:
  levle: debug
`)

	if _, err := Load(cfgPath); err == nil {
		t.Fatal("Load() should return error for unknown field 'levle'")
	}
}

func TestLoad_CommentOnlyFile(t *testing.T) {
	cfgPath := writeConfig(t, t.TempDir(), "# just a comment\n")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load(comment-only) error = %v", err)
	}
	if want := DefaultConfig(); !reflect.DeepEqual(*cfg, want) {
		t.Errorf("Load(comment-only) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	cfgPath := writeConfig(t, t.TempDir(), "")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load(empty) error = %v", err)
	}
	if want := DefaultConfig(); !reflect.DeepEqual(*cfg, want) {
		t.Errorf("Load(empty) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadLayered_Priority(t *testing.T) {
	// Setup: user config picks sinks and level, project config overrides level.
	userCfg := writeConfig(t, t.TempDir(), `
submit:
  sinks: [yaml]
log:
  level: warn
`)
	projectCfg := writeConfig(t, t.TempDir(), `
log:
  level: error
`)

	cfg, err := LoadLayered(userCfg, projectCfg)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}
	// Sinks from user config (project doesn't set them).
	if !reflect.DeepEqual(cfg.Submit.Sinks, []string{"yaml"}) {
		t.Errorf("sinks = %v, want [yaml]", cfg.Submit.Sinks)
	}
	// Level from project config (overrides user).
	if cfg.Log.Level != "error" {
		t.Errorf("level = %q, want %q", cfg.Log.Level, "error")
	}
	// Width retains default when neither layer sets it.
	if cfg.UI.Width != 60 {
		t.Errorf("width = %d, want default 60", cfg.UI.Width)
	}
}

func TestLoadLayered_AllMissing(t *testing.T) {
	cfg, err := LoadLayered("/no/user.yaml", "/no/project.yaml")
	if err != nil {
		t.Fatalf("LoadLayered(all missing) error = %v", err)
	}
	if want := DefaultConfig(); !reflect.DeepEqual(*cfg, want) {
		t.Errorf("got %+v, want defaults %+v", *cfg, want)
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		envs    map[string]string
		wantErr bool
		check   func(*testing.T, Config)
	}{
		{
			name: "REGFORM_SINK overrides sinks",
			envs: map[string]string{"REGFORM_SINK": "yaml, log"},
			check: func(t *testing.T, c Config) {
				if !reflect.DeepEqual(c.Submit.Sinks, []string{"yaml", "log"}) {
					t.Errorf("sinks = %v, want [yaml log]", c.Submit.Sinks)
				}
			},
		},
		{
			name: "REGFORM_LOG_LEVEL overrides level",
			envs: map[string]string{"REGFORM_LOG_LEVEL": "DEBUG"},
			check: func(t *testing.T, c Config) {
				if c.Log.Level != "debug" {
					t.Errorf("level = %q, want %q", c.Log.Level, "debug")
				}
			},
		},
		{
			name: "REGFORM_PLAIN overrides plain",
			envs: map[string]string{"REGFORM_PLAIN": "1"},
			check: func(t *testing.T, c Config) {
				if !c.UI.Plain {
					t.Error("plain = false, want true")
				}
			},
		},
		{
			name:    "invalid REGFORM_PLAIN returns error",
			envs:    map[string]string{"REGFORM_PLAIN": "sometimes"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			err := cfg.ApplyEnv()

			if tt.wantErr {
				if err == nil {
					t.Fatal("ApplyEnv() should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:   "both sinks",
			modify: func(c *Config) { c.Submit.Sinks = []string{"yaml", "log"} },
		},
		{
			name:    "no sinks",
			modify:  func(c *Config) { c.Submit.Sinks = nil },
			wantErr: true,
		},
		{
			name:    "unknown sink",
			modify:  func(c *Config) { c.Submit.Sinks = []string{"http"} },
			wantErr: true,
		},
		{
			name:    "duplicate sink",
			modify:  func(c *Config) { c.Submit.Sinks = []string{"log", "log"} },
			wantErr: true,
		},
		{
			name:    "unknown level",
			modify:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: true,
		},
		{
			name:    "narrow width",
			modify:  func(c *Config) { c.UI.Width = MinWidth - 1 },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
