package config

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/kbukum/smcemu/errors"
)

func TestEmulatorApplyDefaults(t *testing.T) {
	cfg := Emulator{
		Name:    "counter",
		Command: &Command{Binary: "cat"},
		Input: [][]Action{{
			{Messages: []Message{{Value: "a"}}},
		}},
		Telemetry: Telemetry{Endpoint: "localhost:4318"},
	}
	cfg.ApplyDefaults()

	if cfg.Module != "counter" {
		t.Errorf("Module = %q, want counter", cfg.Module)
	}
	if cfg.HomeFolder != os.TempDir() || cfg.WorkDirectory != os.TempDir() {
		t.Errorf("directories = %q, %q, want %q", cfg.HomeFolder, cfg.WorkDirectory, os.TempDir())
	}
	if cfg.BufferSize != 1 || cfg.ThreadBufferSize != 1 {
		t.Errorf("buffer sizes = %d, %d, want 1, 1", cfg.BufferSize, cfg.ThreadBufferSize)
	}
	if cfg.ExecutionContext.Name != DefaultExecutionContext || cfg.ExecutionContext.Type != DefaultExecutionContext {
		t.Errorf("execution context = %+v", cfg.ExecutionContext)
	}
	if got := cfg.ExecutionContext.WorkInterval(); got != -1 {
		t.Errorf("WorkInterval() = %d, want -1", got)
	}
	if a := cfg.Input[0][0]; a.Type != "EXECUTE" || a.Messages[0].Type != "DATA" {
		t.Errorf("input defaults = %+v", a)
	}
	if cfg.Command.GracePeriod != 5*time.Second {
		t.Errorf("GracePeriod = %v, want 5s", cfg.Command.GracePeriod)
	}
	if cfg.Telemetry.SampleRate != 1.0 {
		t.Errorf("SampleRate = %v, want 1", cfg.Telemetry.SampleRate)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestEmulatorValidate(t *testing.T) {
	valid := func() Emulator {
		c := Emulator{Name: "svc"}
		c.ApplyDefaults()
		return c
	}
	negative := -2

	tests := []struct {
		name    string
		mutate  func(c *Emulator)
		wantErr bool
	}{
		{"valid", func(c *Emulator) {}, false},
		{"missing name", func(c *Emulator) { c.Name = "" }, true},
		{"zero buffer size", func(c *Emulator) { c.BufferSize = 0 }, true},
		{"work interval below -1", func(c *Emulator) { c.ExecutionContext.MaxWorkInterval = &negative }, true},
		{"unknown action type", func(c *Emulator) {
			c.Input = [][]Action{{{Type: "RUN", Messages: []Message{{Type: "DATA", Value: 1}}}}}
		}, true},
		{"command without binary", func(c *Emulator) { c.Command = &Command{} }, true},
		{"sample rate above one", func(c *Emulator) { c.Telemetry.SampleRate = 2 }, true},
		{"bad log level", func(c *Emulator) { c.Logging.Level = "loud" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Fatalf("expected INVALID_CONFIG, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yml")
	content := `
name: counter
description: counts input
settings:
  step: 2
variables:
  total: 0
execution_context:
  name: main
  max_work_interval: 10
  sources:
    - type: CALLER
      filters:
        - type: NUMBER
          params: [0, 100]
input:
  - - type: EXECUTE
      messages:
        - value: 5
        - value: 7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg Emulator
	if err := LoadConfig("counter", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "counter" || cfg.Description != "counts input" {
		t.Errorf("name/description = %q/%q", cfg.Name, cfg.Description)
	}
	if cfg.Settings["step"] != 2 {
		t.Errorf("settings = %v", cfg.Settings)
	}
	if cfg.ExecutionContext.Name != "main" || cfg.ExecutionContext.WorkInterval() != 10 {
		t.Errorf("execution context = %+v", cfg.ExecutionContext)
	}
	if len(cfg.ExecutionContext.Sources) != 1 || cfg.ExecutionContext.Sources[0].Filters[0].Type != "NUMBER" {
		t.Errorf("sources = %+v", cfg.ExecutionContext.Sources)
	}
	if len(cfg.Input) != 1 || len(cfg.Input[0]) != 1 || len(cfg.Input[0][0].Messages) != 2 {
		t.Fatalf("input = %+v", cfg.Input)
	}
	if cfg.Input[0][0].Messages[1].Value != 7 {
		t.Errorf("second message value = %v", cfg.Input[0][0].Messages[1].Value)
	}
}

func TestLoadConfigCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yml")
	content := `
name: shell
command:
  binary: sh
  args: ["-c", "cat"]
  grace_period: 2s
  retry:
    attempts: 3
    backoff: 250ms
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg Emulator
	if err := LoadConfig("shell", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	c := cfg.Command
	if c == nil || c.Binary != "sh" || !slices.Equal(c.Args, []string{"-c", "cat"}) {
		t.Fatalf("command = %+v", c)
	}
	if c.GracePeriod != 2*time.Second {
		t.Errorf("grace_period = %v", c.GracePeriod)
	}
	if c.Retry.Attempts != 3 || c.Retry.Backoff != 250*time.Millisecond {
		t.Errorf("retry = %+v", c.Retry)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yml")
	if err := os.WriteFile(path, []byte("name: counter\nexecution_context:\n  name: main\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("SMCEMU_EXECUTION_CONTEXT_NAME", "override")
	t.Setenv("SMCEMU_BUFFER_SIZE", "4")

	var cfg Emulator
	if err := LoadConfig("counter", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ExecutionContext.Name != "override" {
		t.Errorf("execution_context.name = %q, want override", cfg.ExecutionContext.Name)
	}
	if cfg.BufferSize != 4 {
		t.Errorf("buffer_size = %d, want 4", cfg.BufferSize)
	}
}

func TestLoadConfigEnvOverrideFreeFormKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yml")
	body := "name: counter\nsettings:\n  mode: fast\nvariables:\n  seed: abc\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("SMCEMU_SETTINGS_MAX_ITEMS", "5")
	t.Setenv("SMCEMU_VARIABLES_RUN_ID", "r1")

	var cfg Emulator
	if err := LoadConfig("counter", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	tests := []struct {
		name    string
		section map[string]any
		want    map[string]any
	}{
		{"settings", cfg.Settings, map[string]any{"mode": "fast", "max_items": "5"}},
		{"variables", cfg.Variables, map[string]any{"seed": "abc", "run_id": "r1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.section, tt.want) {
				t.Errorf("%s = %#v, want %#v", tt.name, tt.section, tt.want)
			}
		})
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	var cfg Emulator
	err := LoadConfig("counter", &cfg, WithConfigFile("/nonexistent/scenario.yml"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolverSearchOrder(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config/counter.yml": true,
		"./config.yml":         true,
		"./.env":               true,
	}}
	files := (&Resolver{FileSystem: fs}).ResolveFiles("counter", LoaderConfig{})
	if files.ConfigFile != "./config/counter.yml" {
		t.Errorf("ConfigFile = %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("EnvFile = %q", files.EnvFile)
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./config.yml": true}}
	files := (&Resolver{FileSystem: fs}).ResolveFiles("counter", LoaderConfig{ConfigFile: "a.yml", EnvFile: "b.env"})
	if files.ConfigFile != "a.yml" || files.EnvFile != "b.env" {
		t.Errorf("resolved = %+v", files)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("EXECUTION_CONTEXT_NAME")
	want := []string{
		"execution_context_name",
		"execution.context_name",
		"execution_context.name",
		"execution.context.name",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("envKeyVariants() = %v, want %v", got, want)
	}
	if got := envKeyVariants("NAME"); !slices.Equal(got, []string{"name"}) {
		t.Errorf("envKeyVariants(NAME) = %v", got)
	}
	if got := envKeyVariants("SETTINGS_MAX_ITEMS"); !slices.Equal(got, []string{"settings.max_items"}) {
		t.Errorf("envKeyVariants(SETTINGS_MAX_ITEMS) = %v", got)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/scenario.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	if lc.FileSystem != fs || lc.ConfigFile != "/path/to/scenario.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("options not applied: %+v", lc)
	}
}
