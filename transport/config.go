package transport

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// yamlTransportConfig represents the YAML configuration structure for the
// transport module.
type yamlTransportConfig struct {
	Endpoint string `yaml:"endpoint"`
	Mode     struct {
		Debug bool `yaml:"debug"`
	} `yaml:"mode"`
}

func optionFromTransportConfig(cfg yamlTransportConfig) Option {
	return OptionFunc(func(o *Options) {
		if cfg.Endpoint != "" {
			o.Endpoint = cfg.Endpoint
		}
		o.DebugMode = cfg.Mode.Debug
	})
}

// optionFromConfigBytes parses YAML bytes and returns an Option.
// Returns an error if the YAML is invalid.
func optionFromConfigBytes(b []byte) (Option, error) {
	var cfg yamlTransportConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return optionFromTransportConfig(cfg), nil
}

// WithConfig parses YAML bytes following transport.yml structure and
// applies it to Options. It panics if the YAML is invalid.
func WithConfig(yamlBytes []byte) Option {
	opt, err := optionFromConfigBytes(yamlBytes)
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("transport.WithConfig: %w", err))
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
			panic(fmt.Errorf("transport.WithConfigFile(%s): %w", path, err))
		})
	}
	return WithConfig(b)
}
