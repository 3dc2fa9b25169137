package control_test

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/kbukum/smcemu/control"
	"github.com/kbukum/smcemu/errors"
	"github.com/kbukum/smcemu/message"
	"github.com/kbukum/smcemu/testutil"
	"github.com/kbukum/smcemu/testutil/fixtures"
	"github.com/kbukum/smcemu/topology"
	"github.com/kbukum/smcemu/value"
)

func newConfigurationTool(t *testing.T, topo *fixtures.Topology, opts ...control.ConfigurationToolOption) *control.ConfigurationTool {
	t.Helper()
	c, err := control.NewConfigurationTool(topo.Configuration, opts...)
	if err != nil {
		t.Fatalf("NewConfigurationTool() error: %v", err)
	}
	return c
}

func TestConfigurationTool_VariableRoundTrip(t *testing.T) {
	topo := fixtures.New(t, topology.WithVariables(map[string]value.Value{"x": value.MustNew(1)}))
	cfg := newConfigurationTool(t, topo)

	if !cfg.IsVariableChanged("x") {
		t.Fatal("preloaded variable should report changed")
	}
	if cfg.IsVariableChanged("x") {
		t.Fatal("reading the flag should clear it")
	}

	if err := cfg.SetVariable("x", 2); err != nil {
		t.Fatalf("SetVariable() error: %v", err)
	}
	got, err := cfg.Variable("x")
	if err != nil {
		t.Fatalf("Variable() error: %v", err)
	}
	if n, _ := got.AsInt64(); n != 2 {
		t.Errorf("Variable(x) = %v, want 2", got)
	}
	if !cfg.IsVariableChanged("x") {
		t.Error("set should mark the variable changed until read")
	}
	if cfg.IsVariableChanged("x") {
		t.Error("second read should report unchanged")
	}

	if err := cfg.RemoveVariable("x"); err != nil {
		t.Fatalf("RemoveVariable() error: %v", err)
	}
	if cfg.IsVariableChanged("x") {
		t.Error("removed variable should report unchanged")
	}
	if _, err := cfg.Variable("x"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
	if err := cfg.RemoveVariable("x"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestConfigurationTool_RecordsWhenBound(t *testing.T) {
	topo := fixtures.New(t)
	cfg := newConfigurationTool(t, topo)
	tool := newTool(t, topo)

	if err := cfg.SetVariable("unbound", "v"); err != nil {
		t.Fatalf("SetVariable() error: %v", err)
	}
	if tool.OutputLen() != 0 {
		t.Fatal("unbound handle must not record")
	}

	cfg.Bind(tool)
	if err := cfg.SetVariable("y", "v"); err != nil {
		t.Fatalf("SetVariable() error: %v", err)
	}
	if err := cfg.RemoveVariable("y"); err != nil {
		t.Fatalf("RemoveVariable() error: %v", err)
	}
	out := tool.Output()
	if len(out) != 2 ||
		out[0].Type() != message.TypeConfigurationVariableUpdate ||
		out[1].Type() != message.TypeConfigurationVariableRemove {
		t.Fatalf("output = %v", out)
	}
	if out[0].Value().String() != "cfg y" {
		t.Errorf("record text = %q, want %q", out[0].Value().String(), "cfg y")
	}
}

func TestConfigurationTool_SetVariableRejectsUnsupported(t *testing.T) {
	cfg := newConfigurationTool(t, fixtures.New(t))
	if err := cfg.SetVariable("x", map[string]int{}); !errors.Is(err, errors.ErrCodeInvalidValueType) {
		t.Fatalf("expected INVALID_VALUE_TYPE, got %v", err)
	}
}

func TestConfigurationTool_Settings(t *testing.T) {
	topo := fixtures.New(t,
		topology.WithDescription("demo"),
		topology.WithSettings(map[string]value.Value{"step": value.MustNew(2)}),
	)
	cfg := newConfigurationTool(t, topo)

	if cfg.Name() != "cfg" || cfg.Description() != "demo" {
		t.Errorf("Name/Description = %q/%q", cfg.Name(), cfg.Description())
	}
	v, err := cfg.Setting("step")
	if err != nil || v.String() != "2" {
		t.Errorf("Setting(step) = %v, %v", v, err)
	}
	if _, err := cfg.Setting("missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
	if len(cfg.Settings()) != 1 {
		t.Errorf("Settings() = %v", cfg.Settings())
	}
	if cfg.BufferSize() != 1 || cfg.ThreadBufferSize() != 1 || !cfg.IsEnable() {
		t.Error("unexpected defaults")
	}
	if cfg.Module() != topo.Module || cfg.Container() != topo.Root || cfg.Configuration() != topo.Configuration {
		t.Error("handle should expose its topology")
	}
}

func TestConfigurationTool_HostStubs(t *testing.T) {
	cfg := newConfigurationTool(t, fixtures.New(t))
	if !cfg.HasLicense(0) || !cfg.HasLicense(30) {
		t.Error("HasLicense() should always allow")
	}
	if cfg.IsActive() {
		t.Error("IsActive() should be false")
	}
}

func TestConfigurationTool_ExecutionContexts(t *testing.T) {
	topo := fixtures.New(t)
	cfg := newConfigurationTool(t, topo)

	if cfg.CountExecutionContexts() != 1 {
		t.Fatalf("CountExecutionContexts() = %d", cfg.CountExecutionContexts())
	}
	if ec, err := cfg.ExecutionContext(0); err != nil || ec != topo.ExecutionContext {
		t.Errorf("ExecutionContext(0) = %v, %v", ec, err)
	}
	if _, err := cfg.ExecutionContext(1); !errors.Is(err, errors.ErrCodeInvalidIndex) {
		t.Errorf("expected INVALID_INDEX, got %v", err)
	}
}

func TestConfigurationTool_HomeFolder(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/home/module/model.bin", []byte("weights"), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	cfg := newConfigurationTool(t, fixtures.New(t),
		control.WithFs(fs),
		control.WithHomeFolder("/home/module"),
		control.WithWorkDirectory("/work"),
	)

	home := cfg.HomeFolder()
	if home.Name() != "module" || !home.Exists() || !home.IsDirectory() {
		t.Fatalf("home folder = %q exists=%v dir=%v", home.Name(), home.Exists(), home.IsDirectory())
	}
	children, err := home.Children()
	if err != nil || len(children) != 1 || children[0].Name() != "model.bin" {
		t.Fatalf("Children() = %v, %v", children, err)
	}
	if cfg.WorkDirectory() != "/work" {
		t.Errorf("WorkDirectory() = %q", cfg.WorkDirectory())
	}
}

func TestConfigurationTool_LoggerRouting(t *testing.T) {
	sink := &testutil.MemorySink{}
	cfg := newConfigurationTool(t, fixtures.New(t), control.WithSink(sink))

	cfg.LoggerTrace("t")
	cfg.LoggerDebug("d")
	cfg.LoggerInfo("i")
	cfg.LoggerWarn("w")
	cfg.LoggerError("e")

	want := []testutil.Line{
		{Level: "trace", Text: "t"},
		{Level: "debug", Text: "d"},
		{Level: "info", Text: "i"},
		{Level: "warn", Text: "w"},
		{Level: "error", Text: "e"},
	}
	got := sink.Lines()
	if len(got) != len(want) {
		t.Fatalf("lines = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestNewConfigurationTool_RequiresConfiguration(t *testing.T) {
	if _, err := control.NewConfigurationTool(nil); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
}
