// Package config loads and saves symdoc.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/dhamidi/symdoc/model"
	"github.com/dhamidi/symdoc/symbol"
	"github.com/dhamidi/symdoc/translate"
)

// FileName is the configuration file looked up in the project directory.
const FileName = "symdoc.toml"

type Config struct {
	// Graph is the symbol graph read when no path is given on the command line.
	Graph      string      `mapstructure:"graph" toml:"graph"`
	SourceSets []SourceSet `mapstructure:"source_sets" toml:"source_sets" validate:"required,min=1,unique=ID,dive"`
	Obvious    Obvious     `mapstructure:"obvious" toml:"obvious"`
	Output     Output      `mapstructure:"output" toml:"output"`
	Index      Index       `mapstructure:"index" toml:"index"`
	Log        Log         `mapstructure:"log" toml:"log"`
}

type SourceSet struct {
	ID          string   `mapstructure:"id" toml:"id" validate:"required"`
	DisplayName string   `mapstructure:"display_name" toml:"display_name,omitempty"`
	Platform    string   `mapstructure:"platform" toml:"platform" validate:"omitempty,oneof=jvm js native wasm common"`
	Roots       []string `mapstructure:"roots" toml:"roots" validate:"dive,required"`
}

// Obvious lists extra root classes, as "package/Class", whose generated
// members are flagged as obvious.
type Obvious struct {
	Roots []string `mapstructure:"roots" toml:"roots" validate:"dive,required,contains=/"`
	// Replace drops the built-in roots instead of extending them.
	Replace bool `mapstructure:"replace" toml:"replace"`
}

type Output struct {
	Format string `mapstructure:"format" toml:"format" validate:"oneof=json line"`
	Zstd   bool   `mapstructure:"zstd" toml:"zstd"`
	Path   string `mapstructure:"path" toml:"path,omitempty"`
}

type Index struct {
	Database string `mapstructure:"database" toml:"database" validate:"required"`
}

type Log struct {
	Verbosity int    `mapstructure:"verbosity" toml:"verbosity" validate:"min=0,max=5"`
	Path      string `mapstructure:"path" toml:"path,omitempty"`
}

func Default() *Config {
	return &Config{
		Graph: "symbols.yaml",
		SourceSets: []SourceSet{
			{ID: "main", DisplayName: "main", Platform: "jvm", Roots: []string{"src/main"}},
		},
		Output: Output{Format: "json"},
		Index:  Index{Database: "symdoc.sqlite"},
	}
}

// ConfigError describes one invalid setting.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

// Load reads symdoc.toml (or .yaml/.json) from dir on top of the defaults.
// SYMDOC_* environment variables override file values. A missing file
// yields the validated defaults.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("symdoc")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("symdoc")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("graph", def.Graph)
	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("output.zstd", def.Output.Zstd)
	v.SetDefault("index.database", def.Index.Database)
	v.SetDefault("log.verbosity", def.Log.Verbosity)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := def
	// lists in the file replace the defaults rather than merging into them
	if v.IsSet("source_sets") {
		cfg.SourceSets = nil
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = newValidator()

// newValidator reports fields by their TOML key so errors match the file.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks c and returns one *ConfigError per invalid field, joined.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, &ConfigError{Field: fieldPath(fe.Namespace()), Message: message(fe)})
	}
	return errors.Join(errs...)
}

func fieldPath(ns string) string {
	_, path, _ := strings.Cut(ns, ".")
	return path
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of %s, got %q", fe.Param(), fe.Value())
	case "unique":
		return fmt.Sprintf("%s values must be unique", fe.Param())
	case "min", "max":
		return fmt.Sprintf("violates %s=%s", fe.Tag(), fe.Param())
	case "contains":
		return fmt.Sprintf("must contain %q", fe.Param())
	}
	return "failed " + fe.Tag()
}

// Save writes c as TOML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

// SourceSet returns the configured source set with the given ID.
func (c *Config) SourceSet(id string) (SourceSet, bool) {
	for _, ss := range c.SourceSets {
		if ss.ID == id {
			return ss, true
		}
	}
	return SourceSet{}, false
}

// Model converts s into the source set recorded on documentation nodes.
func (s SourceSet) Model() model.SourceSet {
	name := s.DisplayName
	if name == "" {
		name = s.ID
	}
	return model.SourceSet{ID: s.ID, DisplayName: name, Platform: s.Platform, Roots: s.Roots}
}

// ObviousPolicy builds the translator policy from the configured roots.
func (c *Config) ObviousPolicy() translate.ObviousPolicy {
	roots := make([]symbol.ClassID, 0, len(c.Obvious.Roots))
	for _, r := range c.Obvious.Roots {
		roots = append(roots, symbol.ParseClassID(r))
	}
	if c.Obvious.Replace {
		return translate.NewObviousPolicy(roots...)
	}
	return translate.DefaultObviousPolicy().With(roots...)
}
