package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSynthesis(); err != nil {
		return err
	}
	c.normalizeAssembly()
	c.normalizeOutput()
	c.normalizeVoices()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSynthesis() error {
	c.Synthesis.Backend = strings.ToLower(strings.TrimSpace(c.Synthesis.Backend))
	if c.Synthesis.Backend == "" {
		c.Synthesis.Backend = defaultBackend
	}

	c.RemoteTTS.APIKey = strings.TrimSpace(c.RemoteTTS.APIKey)
	if c.RemoteTTS.APIKey == "" {
		if value, ok := os.LookupEnv("ELEVENLABS_API_KEY"); ok {
			c.RemoteTTS.APIKey = strings.TrimSpace(value)
		}
	}
	c.RemoteTTS.BaseURL = strings.TrimRight(strings.TrimSpace(c.RemoteTTS.BaseURL), "/")
	if c.RemoteTTS.BaseURL == "" {
		c.RemoteTTS.BaseURL = defaultRemoteBaseURL
	}
	c.RemoteTTS.ModelID = strings.TrimSpace(c.RemoteTTS.ModelID)
	if c.RemoteTTS.ModelID == "" {
		c.RemoteTTS.ModelID = defaultRemoteModelID
	}

	c.LocalTTS.Command = strings.TrimSpace(c.LocalTTS.Command)
	if c.LocalTTS.Command == "" {
		c.LocalTTS.Command = defaultLocalCommand
	}
	c.LocalTTS.Model = strings.TrimSpace(c.LocalTTS.Model)
	if c.LocalTTS.Model == "" {
		c.LocalTTS.Model = defaultLocalModel
	}
	return nil
}

func (c *Config) normalizeAssembly() {
	if c.Assembly.PauseSeconds < 0 {
		c.Assembly.PauseSeconds = 0
	}
	if c.Assembly.CombinePauseSeconds < 0 {
		c.Assembly.CombinePauseSeconds = 0
	}
	if c.Assembly.IntroSeconds < 0 {
		c.Assembly.IntroSeconds = 0
	}
	if c.Assembly.OutroSeconds < 0 {
		c.Assembly.OutroSeconds = 0
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Codec = strings.TrimSpace(c.Output.Codec)
	if c.Output.Codec == "" {
		c.Output.Codec = defaultCodec
	}
	c.Output.Bitrate = strings.TrimSpace(c.Output.Bitrate)
	if c.Output.Bitrate == "" {
		c.Output.Bitrate = defaultBitrate
	}
	if c.Output.SampleRate <= 0 {
		c.Output.SampleRate = defaultSampleRate
	}
}

func (c *Config) normalizeVoices() {
	if len(c.Voices) == 0 {
		return
	}
	normalized := make(map[string]Voice, len(c.Voices))
	for speaker, voice := range c.Voices {
		key := strings.ToUpper(strings.TrimSpace(speaker))
		if key == "" {
			continue
		}
		voice.DisplayName = strings.TrimSpace(voice.DisplayName)
		if voice.DisplayName == "" {
			voice.DisplayName = key
		}
		voice.Language = strings.TrimSpace(voice.Language)
		voice.Accent = strings.TrimSpace(voice.Accent)
		voice.CloneSample = strings.TrimSpace(voice.CloneSample)
		voice.RemoteID = strings.TrimSpace(voice.RemoteID)
		if voice.Speed == 0 {
			voice.Speed = 1.0
		}
		normalized[key] = voice
	}
	c.Voices = normalized
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
