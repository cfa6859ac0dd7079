package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"podforge/internal/voice"
)

const (
	defaultRemoteBaseURL = "https://api.elevenlabs.io"
	defaultRemoteModelID = "eleven_multilingual_v2"
	defaultRemoteTimeout = 90 * time.Second
	remoteExtension      = "mp3"
)

// Remote synthesizes speech through a hosted ElevenLabs-compatible API.
type Remote struct {
	apiKey     string
	baseURL    string
	modelID    string
	httpClient *http.Client
}

// RemoteOption customizes the remote synthesizer.
type RemoteOption func(*Remote)

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) RemoteOption {
	return func(r *Remote) {
		base = strings.TrimSpace(base)
		if base != "" {
			r.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithModelID overrides the synthesis model requested from the service.
func WithModelID(model string) RemoteOption {
	return func(r *Remote) {
		model = strings.TrimSpace(model)
		if model != "" {
			r.modelID = model
		}
	}
}

// WithTimeout overrides the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) RemoteOption {
	return func(r *Remote) {
		if timeout > 0 {
			r.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(r *Remote) {
		if client != nil {
			r.httpClient = client
		}
	}
}

// NewRemote constructs the hosted-API synthesizer.
func NewRemote(apiKey string, opts ...RemoteOption) *Remote {
	remote := &Remote{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultRemoteBaseURL,
		modelID:    defaultRemoteModelID,
		httpClient: &http.Client{Timeout: defaultRemoteTimeout},
	}
	for _, opt := range opts {
		opt(remote)
	}
	if remote.baseURL == "" {
		remote.baseURL = defaultRemoteBaseURL
	}
	return remote
}

func (r *Remote) Name() string      { return "remote" }
func (r *Remote) Extension() string { return remoteExtension }

type remoteRequest struct {
	Text          string              `json:"text"`
	ModelID       string              `json:"model_id"`
	VoiceSettings remoteVoiceSettings `json:"voice_settings"`
}

type remoteVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Speed           float64 `json:"speed"`
}

type remoteErrorBody struct {
	Detail struct {
		Message string `json:"message"`
	} `json:"detail"`
}

// Synthesize posts the line to the text-to-speech endpoint and streams the
// returned audio to dest. Transport failures classify as network errors,
// non-2xx responses as model errors, and local write problems as IO errors.
func (r *Remote) Synthesize(ctx context.Context, text string, profile voice.Profile, dest string) (Result, error) {
	if r.apiKey == "" {
		return Result{}, failure(ReasonModel, "remote", "api key required", nil)
	}
	if profile.RemoteID == "" {
		return Result{}, failure(ReasonModel, "remote",
			fmt.Sprintf("speaker %s has no voice_id configured", profile.SpeakerID), nil)
	}

	endpoint, err := url.JoinPath(r.baseURL, "/v1/text-to-speech/", profile.RemoteID)
	if err != nil {
		return Result{}, failure(ReasonNetwork, "remote", "build url", err)
	}
	payload := remoteRequest{
		Text:    text,
		ModelID: r.modelID,
		VoiceSettings: remoteVoiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
			Speed:           profile.Speed,
		},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return Result{}, failure(ReasonIO, "remote", "encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return Result{}, failure(ReasonNetwork, "remote", "build request", err)
	}
	req.Header.Set("xi-api-key", r.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return Result{}, failure(ReasonNetwork, "remote", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		message := remoteErrorMessage(body)
		return Result{}, failure(ReasonModel, "remote",
			fmt.Sprintf("http %d: %s", resp.StatusCode, message), nil)
	}

	tmp := dest + ".part"
	file, err := os.Create(tmp)
	if err != nil {
		return Result{}, failure(ReasonIO, "remote", "create output", err)
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(tmp)
		return Result{}, failure(ReasonNetwork, "remote", "stream audio", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return Result{}, failure(ReasonIO, "remote", "close output", err)
	}
	if err := commitFile(tmp, dest); err != nil {
		return Result{}, err
	}
	return Result{Backend: r.Name()}, nil
}

// remoteErrorMessage pulls a human-readable message out of an API error body,
// falling back to the raw text when it is not the expected JSON shape.
func remoteErrorMessage(body []byte) string {
	var parsed remoteErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if msg := strings.TrimSpace(parsed.Detail.Message); msg != "" {
			return msg
		}
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "no error detail"
	}
	return trimmed
}
