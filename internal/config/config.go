package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"bbt.dev/bbt/internal/version"
)

// FileName is the configuration file looked up at the repository root
const FileName = ".bbt.yaml"

// EnvConfigPath overrides the configuration file location
const EnvConfigPath = "BBT_CONFIG"

// Config holds every option bbt recognizes
type Config struct {
	// ProjectKey prefixes merge commit messages and package names
	ProjectKey string `yaml:"project_key" validate:"required,excludesall=/"`
	// Repository is the URL builds clone from
	Repository string `yaml:"repository"`
	// Remote is the remote stabilization branches and tags are pushed to
	Remote string `yaml:"remote" validate:"required"`
	// RootBranch is the branch major releases are built on
	RootBranch string `yaml:"root_branch" validate:"required"`
	// TempDir holds build clones and archives
	TempDir string `yaml:"temp_dir" validate:"required"`
	// FloorVersion is the version below which nothing can be released
	FloorVersion string `yaml:"floor_version" validate:"required,release_version"`
	// BuildCommand runs in the clone before archiving; PACKAGE holds the package name
	BuildCommand string `yaml:"build_command"`
	// UploadURL is where archives go: s3://bucket/prefix, gs://bucket/prefix or file:///dir
	UploadURL string `yaml:"upload_url" validate:"omitempty,upload_url"`
	// LogFile mirrors output to a rotating log file
	LogFile string `yaml:"log_file"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		return name
	})
	_ = v.RegisterValidation("release_version", func(fl validator.FieldLevel) bool {
		_, err := version.Parse(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("upload_url", func(fl validator.FieldLevel) bool {
		return validUploadURL(fl.Field().String())
	})
	return v
}

func validUploadURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "s3", "gs":
		return u.Host != ""
	case "file":
		return u.Path != ""
	default:
		return false
	}
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Remote == "" {
		c.Remote = "origin"
	}
	if c.RootBranch == "" {
		c.RootBranch = "master"
	}
	if c.TempDir == "" {
		c.TempDir = os.TempDir()
	}
	if c.FloorVersion == "" {
		c.FloorVersion = version.Zero.String()
	}
}

// Validate checks every option
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "release_version":
		return fmt.Sprintf("%s must be a MAJOR.MINOR.PATCH version, got %q", fe.Field(), fe.Value())
	case "upload_url":
		return fmt.Sprintf("%s must be an s3://, gs:// or file:// URL, got %q", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// Floor returns the parsed floor version. Validate must have succeeded.
func (c *Config) Floor() version.Version {
	v, err := version.Parse(c.FloorVersion)
	if err != nil {
		return version.Zero
	}
	return v
}

// Parse decodes a configuration document, applies defaults and validates it
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the configuration file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ResolvePath picks the configuration file: an explicit path wins, then
// BBT_CONFIG, then .bbt.yaml at the repository root.
func ResolvePath(explicit, repoRoot string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	return filepath.Join(repoRoot, FileName)
}
