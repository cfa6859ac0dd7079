package config

import (
	"errors"
	"fmt"
)

// Synthesis backend selectors accepted by synthesis.backend.
const (
	BackendRemote = "remote"
	BackendLocal  = "local"
	BackendTone   = "tone"
)

var validBackends = map[string]struct{}{
	BackendRemote: {},
	BackendLocal:  {},
	BackendTone:   {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSynthesis(); err != nil {
		return err
	}
	if err := c.validateVoices(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSynthesis() error {
	if _, ok := validBackends[c.Synthesis.Backend]; !ok {
		return fmt.Errorf("synthesis.backend must be one of remote, local, tone; got %q", c.Synthesis.Backend)
	}
	if c.Synthesis.Backend == BackendRemote && c.RemoteTTS.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/podforge/config.toml"
		}
		return fmt.Errorf("remote_tts.api_key is required for the remote backend. Set ELEVENLABS_API_KEY env var or edit %s (create with 'podforge config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateVoices() error {
	if len(c.Voices) == 0 {
		return errors.New("at least one [voices.<SPEAKER>] profile must be configured")
	}
	for speaker, voice := range c.Voices {
		if voice.Speed <= 0 {
			return fmt.Errorf("voices.%s.speed must be greater than zero", speaker)
		}
		if voice.Language == "" {
			return fmt.Errorf("voices.%s.language must be set", speaker)
		}
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.SampleRate < 8000 {
		return fmt.Errorf("output.sample_rate must be at least 8000, got %d", c.Output.SampleRate)
	}
	return nil
}
