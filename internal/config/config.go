package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StagingDir string `toml:"staging_dir"`
	OutputDir  string `toml:"output_dir"`
	LogDir     string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Assembly contains timeline construction settings: pause placement and the
// optional lead-in/trail-out silences.
type Assembly struct {
	PauseSeconds        float64 `toml:"pause_seconds"`
	CombinePauseSeconds float64 `toml:"combine_pause_seconds"`
	IntroSeconds        float64 `toml:"intro_seconds"`
	OutroSeconds        float64 `toml:"outro_seconds"`
}

// Output contains encoding settings for the combined artifact.
type Output struct {
	Codec      string `toml:"codec"`
	Bitrate    string `toml:"bitrate"`
	SampleRate int    `toml:"sample_rate"`
}

// Synthesis selects the active synthesis backend for a run.
type Synthesis struct {
	Backend string `toml:"backend"`
}

// RemoteTTS contains configuration for the hosted synthesis service.
type RemoteTTS struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	ModelID        string `toml:"model_id"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LocalTTS contains configuration for the local synthesis model invocation.
type LocalTTS struct {
	Command        string `toml:"command"`
	Model          string `toml:"model"`
	GPU            bool   `toml:"gpu"`
	VoiceClone     bool   `toml:"voice_clone"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Voice describes how one speaker's lines should sound.
type Voice struct {
	DisplayName string  `toml:"display_name"`
	Language    string  `toml:"language"`
	Accent      string  `toml:"accent"`
	Speed       float64 `toml:"speed"`
	CloneSample string  `toml:"clone_sample"`
	RemoteID    string  `toml:"voice_id"`
}

// Config encapsulates all configuration values for podforge.
//
// Configuration sections by subsystem:
//   - Paths: staging, output, and log directories
//   - Logging: log format and level
//   - Assembly: pause and intro/outro silence durations
//   - Output: combined-artifact codec, bitrate, and sample rate
//   - Synthesis: active backend selection
//   - RemoteTTS: hosted synthesis service connection
//   - LocalTTS: local model command invocation
//   - Voices: speaker identifier to voice profile mapping
type Config struct {
	Paths     Paths            `toml:"paths"`
	Logging   Logging          `toml:"logging"`
	Assembly  Assembly         `toml:"assembly"`
	Output    Output           `toml:"output"`
	Synthesis Synthesis        `toml:"synthesis"`
	RemoteTTS RemoteTTS        `toml:"remote_tts"`
	LocalTTS  LocalTTS         `toml:"local_tts"`
	Voices    map[string]Voice `toml:"voices"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/podforge/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("podforge.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StagingDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		if err := os.MkdirAll(c.Paths.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", c.Paths.OutputDir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name used for concatenation.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for duration probing.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

// PauseDuration returns the inter-line pause for the generate pipeline.
func (c *Config) PauseDuration() time.Duration {
	return secondsToDuration(c.Assembly.PauseSeconds)
}

// CombinePauseDuration returns the inter-segment pause for the combiner.
func (c *Config) CombinePauseDuration() time.Duration {
	return secondsToDuration(c.Assembly.CombinePauseSeconds)
}

// IntroDuration returns the lead-in silence length.
func (c *Config) IntroDuration() time.Duration {
	return secondsToDuration(c.Assembly.IntroSeconds)
}

// OutroDuration returns the trail-out silence length.
func (c *Config) OutroDuration() time.Duration {
	return secondsToDuration(c.Assembly.OutroSeconds)
}

// RemoteTimeout returns the HTTP timeout for the remote synthesis service.
func (c *Config) RemoteTimeout() time.Duration {
	if c.RemoteTTS.TimeoutSeconds <= 0 {
		return time.Duration(defaultRemoteTimeoutSeconds) * time.Second
	}
	return time.Duration(c.RemoteTTS.TimeoutSeconds) * time.Second
}

// LocalTimeout returns the per-line timeout for local model invocations.
func (c *Config) LocalTimeout() time.Duration {
	if c.LocalTTS.TimeoutSeconds <= 0 {
		return time.Duration(defaultLocalTimeoutSeconds) * time.Second
	}
	return time.Duration(c.LocalTTS.TimeoutSeconds) * time.Second
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// ExpandPath resolves ~ and relative segments to an absolute path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func secondsToDuration(seconds float64) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
