package control

import (
	"os"

	"github.com/spf13/afero"

	"github.com/kbukum/smcemu/filetool"
	"github.com/kbukum/smcemu/logger"
	"github.com/kbukum/smcemu/topology"
	"github.com/kbukum/smcemu/validation"
	"github.com/kbukum/smcemu/value"
)

// ConfigurationTool is the configuration handle passed to module code.
type ConfigurationTool struct {
	cfg           *topology.Configuration
	fs            afero.Fs
	homeFolder    string
	workDirectory string
	sink          logger.Sink
	rec           topology.Recorder
}

// ConfigurationToolOption configures a ConfigurationTool.
type ConfigurationToolOption func(*ConfigurationTool)

// WithHomeFolder sets the module home folder.
func WithHomeFolder(path string) ConfigurationToolOption {
	return func(c *ConfigurationTool) { c.homeFolder = path }
}

// WithWorkDirectory sets the module work directory.
func WithWorkDirectory(path string) ConfigurationToolOption {
	return func(c *ConfigurationTool) { c.workDirectory = path }
}

// WithFs sets the filesystem behind HomeFolder.
func WithFs(fs afero.Fs) ConfigurationToolOption {
	return func(c *ConfigurationTool) { c.fs = fs }
}

// WithSink routes the Logger* methods to sink.
func WithSink(sink logger.Sink) ConfigurationToolOption {
	return func(c *ConfigurationTool) { c.sink = sink }
}

// NewConfigurationTool creates the handle for cfg. Home folder and work
// directory default to the system temp directory.
func NewConfigurationTool(cfg *topology.Configuration, opts ...ConfigurationToolOption) (*ConfigurationTool, error) {
	if err := validation.New().NotNil("configuration", cfg != nil).Validate(); err != nil {
		return nil, err
	}
	c := &ConfigurationTool{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.homeFolder == "" {
		c.homeFolder = os.TempDir()
	}
	if c.workDirectory == "" {
		c.workDirectory = os.TempDir()
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.sink == nil {
		c.sink = logger.ForConfiguration(nil, cfg.Name())
	}
	return c, nil
}

// Bind makes rec the recorder of variable mutations. The lifecycle driver
// binds the execution tool of the running phase.
func (c *ConfigurationTool) Bind(rec topology.Recorder) { c.rec = rec }

// Configuration returns the underlying topology node.
func (c *ConfigurationTool) Configuration() *topology.Configuration { return c.cfg }

func (c *ConfigurationTool) Name() string                      { return c.cfg.Name() }
func (c *ConfigurationTool) Description() string               { return c.cfg.Description() }
func (c *ConfigurationTool) Module() *topology.Module          { return c.cfg.Module() }
func (c *ConfigurationTool) Container() *topology.Container    { return c.cfg.Container() }
func (c *ConfigurationTool) Settings() map[string]value.Value  { return c.cfg.Settings() }
func (c *ConfigurationTool) Variables() map[string]value.Value { return c.cfg.Variables() }
func (c *ConfigurationTool) BufferSize() int                   { return c.cfg.BufferSize() }
func (c *ConfigurationTool) ThreadBufferSize() int             { return c.cfg.ThreadBufferSize() }
func (c *ConfigurationTool) IsEnable() bool                    { return c.cfg.IsEnable() }

// IsActive is always false in the emulator.
func (c *ConfigurationTool) IsActive() bool { return false }

// HasLicense always grants.
func (c *ConfigurationTool) HasLicense(freeDays int) bool { return true }

// Setting returns the setting stored under key.
func (c *ConfigurationTool) Setting(key string) (value.Value, error) { return c.cfg.Setting(key) }

// Variable returns the variable stored under key.
func (c *ConfigurationTool) Variable(key string) (value.Value, error) { return c.cfg.Variable(key) }

// SetVariable stores a variable built from payload.
func (c *ConfigurationTool) SetVariable(key string, payload any) error {
	v, err := value.New(payload)
	if err != nil {
		return err
	}
	return c.cfg.SetVariable(c.rec, key, v)
}

// IsVariableChanged reports and clears the changed flag of key.
func (c *ConfigurationTool) IsVariableChanged(key string) bool {
	return c.cfg.IsVariableChanged(key)
}

// RemoveVariable deletes a variable.
func (c *ConfigurationTool) RemoveVariable(key string) error {
	return c.cfg.RemoveVariable(c.rec, key)
}

// HomeFolder returns the module home folder.
func (c *ConfigurationTool) HomeFolder() *filetool.File {
	return filetool.New(c.fs, c.homeFolder)
}

// WorkDirectory returns the module work directory path.
func (c *ConfigurationTool) WorkDirectory() string { return c.workDirectory }

// CountExecutionContexts returns the number of execution contexts.
func (c *ConfigurationTool) CountExecutionContexts() int { return c.cfg.CountExecutionContexts() }

// ExecutionContext returns the execution context at id.
func (c *ConfigurationTool) ExecutionContext(id int) (*topology.ExecutionContext, error) {
	return c.cfg.ExecutionContext(id)
}

func (c *ConfigurationTool) LoggerTrace(text string) { c.sink.Trace(text) }
func (c *ConfigurationTool) LoggerDebug(text string) { c.sink.Debug(text) }
func (c *ConfigurationTool) LoggerInfo(text string)  { c.sink.Info(text) }
func (c *ConfigurationTool) LoggerWarn(text string)  { c.sink.Warn(text) }
func (c *ConfigurationTool) LoggerError(text string) { c.sink.Error(text) }
