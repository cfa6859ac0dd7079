package config

const (
	defaultStagingDir           = "~/.local/share/podforge/staging"
	defaultOutputDir            = "."
	defaultLogDir               = "~/.local/share/podforge/logs"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultPauseSeconds         = 0.8
	defaultCombinePauseSeconds  = 1.0
	defaultIntroSeconds         = 3.0
	defaultOutroSeconds         = 2.0
	defaultCodec                = "libmp3lame"
	defaultBitrate              = "192k"
	defaultSampleRate           = 44100
	defaultBackend              = "tone"
	defaultRemoteBaseURL        = "https://api.elevenlabs.io"
	defaultRemoteModelID        = "eleven_multilingual_v2"
	defaultRemoteTimeoutSeconds = 90
	defaultLocalCommand         = "tts"
	defaultLocalModel           = "tts_models/multilingual/multi-dataset/xtts_v2"
	defaultLocalTimeoutSeconds  = 300
)

// Default returns a Config populated with repository defaults, including the
// two-speaker reference voice set.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Assembly: Assembly{
			PauseSeconds:        defaultPauseSeconds,
			CombinePauseSeconds: defaultCombinePauseSeconds,
			IntroSeconds:        defaultIntroSeconds,
			OutroSeconds:        defaultOutroSeconds,
		},
		Output: Output{
			Codec:      defaultCodec,
			Bitrate:    defaultBitrate,
			SampleRate: defaultSampleRate,
		},
		Synthesis: Synthesis{
			Backend: defaultBackend,
		},
		RemoteTTS: RemoteTTS{
			BaseURL:        defaultRemoteBaseURL,
			ModelID:        defaultRemoteModelID,
			TimeoutSeconds: defaultRemoteTimeoutSeconds,
		},
		LocalTTS: LocalTTS{
			Command:        defaultLocalCommand,
			Model:          defaultLocalModel,
			TimeoutSeconds: defaultLocalTimeoutSeconds,
		},
		Voices: map[string]Voice{
			"MIGUEL": {
				DisplayName: "Miguel",
				Language:    "es",
				Accent:      "com.mx",
				Speed:       0.9,
				CloneSample: "voice_samples/miguel_sample.wav",
				RemoteID:    "pNInz6obpgDQGcFmaJgB",
			},
			"SAM": {
				DisplayName: "Sam",
				Language:    "es",
				Accent:      "com.ar",
				Speed:       1.2,
				CloneSample: "voice_samples/sam_sample.wav",
				RemoteID:    "VR6AewLTigWG4xSOukaG",
			},
		},
	}
}
