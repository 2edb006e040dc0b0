package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
	"gopkg.in/yaml.v3"

	"github.com/runger/nativedialog/internal/backend"
)

// Config represents the nativedialog configuration.
type Config struct {
	Backend  BackendConfig  `yaml:"backend"`
	Messages MessagesConfig `yaml:"messages"`
	Logging  LoggingConfig  `yaml:"logging"`
	Windows  WindowsConfig  `yaml:"windows"`
}

// BackendConfig controls backend selection and invocation.
type BackendConfig struct {
	Preferred        string `yaml:"preferred"`          // auto, zenity, kdialog, yad, osascript, native
	ZenityArgs       string `yaml:"zenity_args"`        // Extra zenity arguments, shell-quoted
	KDialogArgs      string `yaml:"kdialog_args"`       // Extra kdialog arguments, shell-quoted
	YadArgs          string `yaml:"yad_args"`           // Extra yad arguments, shell-quoted
	VersionTimeoutMs int    `yaml:"version_timeout_ms"` // Timeout for `<tool> --version`
}

// MessagesConfig holds message dialog settings.
type MessagesConfig struct {
	Width int `yaml:"width"` // zenity message width in pixels
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path, "default" for the data dir (empty = silent)
}

// DefaultLogFile selects the log file under the data directory.
const DefaultLogFile = "default"

// LogFilePath resolves Logging.File against paths. It returns "" when file
// logging is off.
func (c *Config) LogFilePath(paths *Paths) string {
	if c.Logging.File == DefaultLogFile {
		return paths.LogFile()
	}
	return c.Logging.File
}

// WindowsConfig holds Windows-only settings.
type WindowsConfig struct {
	DPIAware bool `yaml:"dpi_aware"` // Call SetProcessDPIAware before the first dialog
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			Preferred:        "auto",
			VersionTimeoutMs: int(backend.DefaultVersionTimeout / time.Millisecond),
		},
		Messages: MessagesConfig{
			Width: backend.DefaultMessageWidth,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
		Windows: WindowsConfig{
			DPIAware: true,
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	paths := DefaultPaths()
	return c.SaveToFile(paths.ConfigFile())
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get retrieves a configuration value by dot-separated key.
// For example: "backend.preferred" or "messages.width"
func (c *Config) Get(key string) (string, error) {
	section, field, err := splitKey(key)
	if err != nil {
		return "", err
	}

	switch section {
	case "backend":
		return c.getBackendField(field)
	case "messages":
		return c.getMessagesField(field)
	case "logging":
		return c.getLoggingField(field)
	case "windows":
		return c.getWindowsField(field)
	default:
		return "", fmt.Errorf("unknown section: %s", section)
	}
}

// Set sets a configuration value by dot-separated key.
func (c *Config) Set(key, value string) error {
	section, field, err := splitKey(key)
	if err != nil {
		return err
	}

	switch section {
	case "backend":
		return c.setBackendField(field, value)
	case "messages":
		return c.setMessagesField(field, value)
	case "logging":
		return c.setLoggingField(field, value)
	case "windows":
		return c.setWindowsField(field, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

func splitKey(key string) (section, field string, err error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", "", errors.New("key must be in format 'section.key'")
	}
	return parts[0], parts[1], nil
}

func (c *Config) getBackendField(field string) (string, error) {
	switch field {
	case "preferred":
		return c.Backend.Preferred, nil
	case "zenity_args":
		return c.Backend.ZenityArgs, nil
	case "kdialog_args":
		return c.Backend.KDialogArgs, nil
	case "yad_args":
		return c.Backend.YadArgs, nil
	case "version_timeout_ms":
		return strconv.Itoa(c.Backend.VersionTimeoutMs), nil
	default:
		return "", fmt.Errorf("unknown field: backend.%s", field)
	}
}

func (c *Config) setBackendField(field, value string) error {
	switch field {
	case "preferred":
		if !isValidPreferred(value) {
			return fmt.Errorf("invalid backend: %s (must be auto, zenity, kdialog, yad, osascript, or native)", value)
		}
		c.Backend.Preferred = value
	case "zenity_args", "kdialog_args", "yad_args":
		if _, err := shlex.Split(value); err != nil {
			return fmt.Errorf("invalid value for %s: %w", field, err)
		}
		switch field {
		case "zenity_args":
			c.Backend.ZenityArgs = value
		case "kdialog_args":
			c.Backend.KDialogArgs = value
		default:
			c.Backend.YadArgs = value
		}
	case "version_timeout_ms":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for version_timeout_ms: %w", err)
		}
		if v <= 0 {
			return errors.New("version_timeout_ms must be > 0")
		}
		c.Backend.VersionTimeoutMs = v
	default:
		return fmt.Errorf("unknown field: backend.%s", field)
	}
	return nil
}

func (c *Config) getMessagesField(field string) (string, error) {
	switch field {
	case "width":
		return strconv.Itoa(c.Messages.Width), nil
	default:
		return "", fmt.Errorf("unknown field: messages.%s", field)
	}
}

func (c *Config) setMessagesField(field, value string) error {
	switch field {
	case "width":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for width: %w", err)
		}
		if v <= 0 {
			return errors.New("width must be > 0")
		}
		c.Messages.Width = v
	default:
		return fmt.Errorf("unknown field: messages.%s", field)
	}
	return nil
}

func (c *Config) getLoggingField(field string) (string, error) {
	switch field {
	case "level":
		return c.Logging.Level, nil
	case "file":
		return c.Logging.File, nil
	default:
		return "", fmt.Errorf("unknown field: logging.%s", field)
	}
}

func (c *Config) setLoggingField(field, value string) error {
	switch field {
	case "level":
		if !isValidLogLevel(value) {
			return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", value)
		}
		c.Logging.Level = value
	case "file":
		c.Logging.File = value
	default:
		return fmt.Errorf("unknown field: logging.%s", field)
	}
	return nil
}

func (c *Config) getWindowsField(field string) (string, error) {
	switch field {
	case "dpi_aware":
		return strconv.FormatBool(c.Windows.DPIAware), nil
	default:
		return "", fmt.Errorf("unknown field: windows.%s", field)
	}
}

func (c *Config) setWindowsField(field, value string) error {
	switch field {
	case "dpi_aware":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for dpi_aware: %w", err)
		}
		c.Windows.DPIAware = v
	default:
		return fmt.Errorf("unknown field: windows.%s", field)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !isValidPreferred(c.Backend.Preferred) {
		return fmt.Errorf("backend.preferred must be auto, zenity, kdialog, yad, osascript, or native (got: %s)", c.Backend.Preferred)
	}

	if c.Backend.VersionTimeoutMs <= 0 {
		return errors.New("backend.version_timeout_ms must be > 0")
	}

	if _, err := c.ToolArgs(); err != nil {
		return err
	}

	if c.Messages.Width <= 0 {
		return errors.New("messages.width must be > 0")
	}

	if !isValidLogLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got: %s)", c.Logging.Level)
	}

	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func isValidPreferred(name string) bool {
	if name == "" || name == "auto" {
		return true
	}
	_, err := backend.ParseTool(name)
	return err == nil
}

// ToolArgs splits the per-tool argument strings with shell quoting rules.
func (c *Config) ToolArgs() (map[backend.Tool][]string, error) {
	raw := map[backend.Tool]string{
		backend.Zenity:  c.Backend.ZenityArgs,
		backend.KDialog: c.Backend.KDialogArgs,
		backend.Yad:     c.Backend.YadArgs,
	}

	out := make(map[backend.Tool][]string)
	for tool, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		args, err := shlex.Split(s)
		if err != nil {
			return nil, fmt.Errorf("backend.%s_args: %w", tool, err)
		}
		out[tool] = args
	}
	return out, nil
}

// VersionTimeout returns the version probe timeout.
func (c *Config) VersionTimeout() time.Duration {
	return time.Duration(c.Backend.VersionTimeoutMs) * time.Millisecond
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("NATIVE_DIALOG_BACKEND"); v != "" {
		if isValidPreferred(v) {
			c.Backend.Preferred = v
		}
	}
	if v := os.Getenv("NATIVE_DIALOG_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Logging.Level = "debug"
		}
	}
	if v := os.Getenv("NATIVE_DIALOG_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.Logging.Level = v
		}
	}
}

// ListKeys returns user-facing configuration keys.
func ListKeys() []string {
	return []string{
		"backend.preferred",
		"backend.zenity_args",
		"backend.kdialog_args",
		"backend.yad_args",
		"backend.version_timeout_ms",
		"messages.width",
		"logging.level",
		"logging.file",
		"windows.dpi_aware",
	}
}
