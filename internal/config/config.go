package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Remainder policies for lines left over after floor division.
const (
	RemainderDrop = "drop" // discard trailing lines
	RemainderLast = "last" // append trailing lines to the final output file
)

// ValidRemainderPolicies lists all supported remainder policies.
var ValidRemainderPolicies = []string{RemainderDrop, RemainderLast}

// Config holds all jsonsplit configuration.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig configures the file being split.
type InputConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig configures where and how many parts are written.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	Prefix    string `yaml:"prefix"`    // e.g. "split_file_" -> split_file_1.json
	Files     int    `yaml:"files"`     // number of output files
	Remainder string `yaml:"remainder"` // drop, last
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Path: "yelp_academic_dataset_review.json",
		},
		Output: OutputConfig{
			Dir:       "yelp_splits",
			Prefix:    "split_file_",
			Files:     10,
			Remainder: RemainderDrop,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
// An empty path or a missing file yields the defaults. Environment overrides
// are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("JSONSPLIT_INPUT"); v != "" {
		c.Input.Path = v
	}
	if v := os.Getenv("JSONSPLIT_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("JSONSPLIT_PREFIX"); v != "" {
		c.Output.Prefix = v
	}
	if v := os.Getenv("JSONSPLIT_FILES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid JSONSPLIT_FILES %q: %w", v, err)
		}
		c.Output.Files = n
	}
	if v := os.Getenv("JSONSPLIT_REMAINDER"); v != "" {
		c.Output.Remainder = v
	}
	if v := os.Getenv("JSONSPLIT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate validates the configuration.
// The file count is left to the splitter: zero is reported there as a division error.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("input path not configured")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output directory not configured")
	}
	if strings.ContainsAny(c.Output.Prefix, `/\`) {
		return fmt.Errorf("output prefix must not contain a path separator: %q", c.Output.Prefix)
	}

	validRemainder := false
	for _, p := range ValidRemainderPolicies {
		if c.Output.Remainder == p {
			validRemainder = true
			break
		}
	}
	if !validRemainder {
		return fmt.Errorf("invalid remainder policy: %s (valid: %v)", c.Output.Remainder, ValidRemainderPolicies)
	}

	return c.Logging.Validate()
}
