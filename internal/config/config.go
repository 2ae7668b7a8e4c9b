// Package config loads the CLI settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyTheme     = "theme"
	KeyMode      = "mode"
	KeyThemeDirs = "theme-dirs"
	KeyCSSOutput = "css.output"
)

const (
	// DefaultMode is the mode applied when none is configured.
	DefaultMode = "light"
	// StdoutPath makes the css command print instead of writing a file.
	StdoutPath = "-"

	envPrefix         = "THEMEKIT"
	projectConfigName = ".themekit.yaml"
)

// Settings is the decoded configuration.
type Settings struct {
	Theme     string      `mapstructure:"theme" validate:"required"`
	Mode      string      `mapstructure:"mode" validate:"required,oneof=light dark"`
	ThemeDirs []string    `mapstructure:"theme-dirs" validate:"dive,required"`
	CSS       CSSSettings `mapstructure:"css"`
}

// CSSSettings configures the css command.
type CSSSettings struct {
	Output string `mapstructure:"output" validate:"required"`
}

type loadSettings struct {
	workingDir        string
	userConfigPath    string
	projectConfigPath string
	overrides         map[string]any
}

// Option configures Load. Useful for tests to override paths.
type Option func(*loadSettings)

// WithWorkingDir overrides the directory used for project config discovery.
func WithWorkingDir(dir string) Option {
	return func(s *loadSettings) {
		s.workingDir = dir
	}
}

// WithUserConfig overrides the default user config path.
func WithUserConfig(path string) Option {
	return func(s *loadSettings) {
		s.userConfigPath = path
	}
}

// WithProjectConfig explicitly sets the project config path instead of discovery.
func WithProjectConfig(path string) Option {
	return func(s *loadSettings) {
		s.projectConfigPath = path
	}
}

// WithOverrides injects values typically coming from CLI flags. They take
// precedence over every other source.
func WithOverrides(overrides map[string]any) Option {
	return func(s *loadSettings) {
		s.overrides = overrides
	}
}

// Load resolves the settings using the precedence:
// defaults < user config < project config < environment variables < overrides.
func Load(opts ...Option) (*Settings, error) {
	var ls loadSettings
	for _, opt := range opts {
		opt(&ls)
	}

	workingDir := strings.TrimSpace(ls.workingDir)
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
		workingDir = wd
	}

	userConfigPath := strings.TrimSpace(ls.userConfigPath)
	if userConfigPath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			userConfigPath = filepath.Join(dir, "themekit", "config.yaml")
		}
	}

	projectConfigPath := strings.TrimSpace(ls.projectConfigPath)
	if projectConfigPath == "" {
		path, err := findProjectConfig(workingDir)
		if err != nil {
			return nil, err
		}
		projectConfigPath = path
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := mergeConfigFile(v, userConfigPath); err != nil {
		return nil, fmt.Errorf("load user config: %w", err)
	}
	if err := mergeConfigFile(v, projectConfigPath); err != nil {
		return nil, fmt.Errorf("load project config: %w", err)
	}
	for k, val := range ls.overrides {
		v.Set(k, val)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := validatorInstance().Struct(&s); err != nil {
		return nil, convertValidationError(err)
	}
	return &s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyTheme, "neutral")
	v.SetDefault(KeyMode, DefaultMode)
	v.SetDefault(KeyThemeDirs, []string{})
	v.SetDefault(KeyCSSOutput, StdoutPath)
}

func mergeConfigFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// findProjectConfig walks up from startDir looking for .themekit.yaml.
func findProjectConfig(startDir string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, projectConfigName)
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("config path %s is a directory", candidate)
			}
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// convertValidationError reports the first failing field by its config key.
func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fmt.Errorf("invalid settings: %w", err)
	}
	fe := ves[0]
	key := configKey(fe)
	if fe.Tag() == "oneof" {
		return fmt.Errorf("invalid settings: %s must be one of [%s], got %q", key, fe.Param(), fe.Value())
	}
	return fmt.Errorf("invalid settings: %s failed validation for tag '%s'", key, fe.Tag())
}

var keyNames = map[string]string{
	"Theme":     KeyTheme,
	"Mode":      KeyMode,
	"ThemeDirs": KeyThemeDirs,
	"CSS":       "css",
	"Output":    "output",
}

func configKey(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")[1:]
	for i, part := range parts {
		name, index, _ := strings.Cut(part, "[")
		if key, ok := keyNames[name]; ok {
			name = key
		}
		if index != "" {
			name += "[" + index
		}
		parts[i] = name
	}
	return strings.Join(parts, ".")
}
