package runtime

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// yamlRuntimeConfig represents the YAML configuration structure for the
// runtime module.
type yamlRuntimeConfig struct {
	Mode struct {
		Debug bool  `yaml:"debug"`
		Trace *bool `yaml:"trace"`
	} `yaml:"mode"`
}

func optionFromRuntimeConfig(cfg yamlRuntimeConfig) Option {
	return OptionFunc(func(o *Options) {
		o.DebugMode = cfg.Mode.Debug
		if cfg.Mode.Trace != nil {
			o.StackTrace = cfg.Mode.Trace
		}
	})
}

// optionFromConfigBytes parses YAML bytes and returns an Option.
// Returns an error if the YAML is invalid.
func optionFromConfigBytes(b []byte) (Option, error) {
	var cfg yamlRuntimeConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return optionFromRuntimeConfig(cfg), nil
}

// WithConfig parses YAML bytes following runtime.yml structure and applies
// it to Options. It panics if the YAML is invalid.
func WithConfig(yamlBytes []byte) Option {
	opt, err := optionFromConfigBytes(yamlBytes)
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("runtime.WithConfig: %w", err))
		})
	}
	return opt
}

// WithConfigFile loads a YAML file and applies it to Options.
// It panics if the file cannot be read or YAML is invalid.
func WithConfigFile(path string) Option {
	b, err := os.ReadFile(path)
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("runtime.WithConfigFile(%s): %w", path, err))
		})
	}
	return WithConfig(b)
}
