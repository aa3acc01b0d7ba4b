package gmtstamp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type GMTConfig struct {
	Binary  string        `yaml:"binary"`
	WorkDir string        `yaml:"workdir"`
	Timeout time.Duration `yaml:"timeout"`
}

type FigureConfig struct {
	Format string `yaml:"format"`
	Show   bool   `yaml:"show"`
}

// Config is the on-disk configuration of the gmtstamp command. Flags given
// on the command line take precedence over it.
type Config struct {
	LogLevel  string           `yaml:"log_level"`
	GMT       GMTConfig        `yaml:"gmt"`
	Figure    FigureConfig     `yaml:"figure"`
	Timestamp TimestampRequest `yaml:"timestamp"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		GMT: GMTConfig{
			Binary:  "gmt",
			Timeout: defaultCallTimeout,
		},
		Figure: FigureConfig{
			Format: DefaultFigureFormat,
		},
		Timestamp: DefaultTimestampRequest(),
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig. Unknown keys
// are rejected so typos do not go unnoticed.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

func (c Config) SessionOptions() GMTSessionOptions {
	return GMTSessionOptions{
		Binary:  c.GMT.Binary,
		WorkDir: c.GMT.WorkDir,
		Timeout: c.GMT.Timeout,
	}
}
