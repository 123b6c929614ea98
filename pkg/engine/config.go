package engine

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the engine's programmatic and file-loadable configuration.
// Builder fields mirror these one-for-one; LoadConfig lets a caller
// keep the same settings in a YAML document instead of code.
type Config struct {
	SampleRate     float64 `yaml:"sample_rate"`
	BlockSize      int     `yaml:"block_size"`
	OutputChannels int     `yaml:"output_channels"`
	InputChannels  int     `yaml:"input_channels"`
	TempoBPM       float32 `yaml:"tempo_bpm"`
	MIDIEnabled    bool    `yaml:"midi_enabled"`
}

// DefaultConfig returns the engine's stock configuration: stereo out,
// no input, 48kHz, 512-frame blocks, 120 BPM, MIDI on.
func DefaultConfig() Config {
	return Config{
		SampleRate:     48000,
		BlockSize:      512,
		OutputChannels: 2,
		InputChannels:  0,
		TempoBPM:       120,
		MIDIEnabled:    true,
	}
}

// LoadConfig reads a YAML document at path, overlaying it onto
// DefaultConfig so an omitted field keeps its default rather than
// zeroing out.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, Wrap(KindInvalidConfig, "engine.LoadConfig", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, Wrap(KindInvalidConfig, "engine.LoadConfig", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.OutputChannels <= 0 {
		return New(KindInvalidConfig, "engine.Build", "output channels must be positive")
	}
	if c.InputChannels < 0 {
		return New(KindInvalidConfig, "engine.Build", "input channels must not be negative")
	}
	if c.SampleRate <= 0 {
		return New(KindInvalidConfig, "engine.Build", "sample rate must be positive")
	}
	if c.BlockSize <= 0 {
		return New(KindInvalidConfig, "engine.Build", "block size must be positive")
	}
	return nil
}
