package ffprobe

import (
	"testing"
	"time"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "audio", SampleRate: "44100", Channels: 2},
			{CodecType: "audio", SampleRate: "48000"},
		},
		Format: Format{
			Duration: "12.5",
			Size:     "1000",
		},
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	d, ok := result.Duration()
	if !ok {
		t.Fatal("expected duration")
	}
	if d != 12500*time.Millisecond {
		t.Fatalf("unexpected duration: %v", d)
	}
	rate, ok := result.SampleRate()
	if !ok || rate != 44100 {
		t.Fatalf("unexpected sample rate: %d %v", rate, ok)
	}
}

func TestDurationFallsBackToStreams(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "audio", Duration: "1.5"},
			{CodecType: "audio", Duration: "2.5"},
		},
	}
	d, ok := result.Duration()
	if !ok {
		t.Fatal("expected stream-level duration")
	}
	if d != 2500*time.Millisecond {
		t.Fatalf("expected longest stream duration, got %v", d)
	}
}

func TestDurationHandlesInvalidNumbers(t *testing.T) {
	result := Result{Format: Format{Duration: "bad"}}
	if _, ok := result.Duration(); ok {
		t.Fatal("expected no duration for invalid value")
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte("{")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseDecodesPayload(t *testing.T) {
	payload := `{"streams":[{"codec_type":"audio","sample_rate":"22050","channels":1}],"format":{"duration":"0.9","format_name":"wav"}}`
	result, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Format.FormatName != "wav" {
		t.Fatalf("unexpected format name: %q", result.Format.FormatName)
	}
	if rate, ok := result.SampleRate(); !ok || rate != 22050 {
		t.Fatalf("unexpected sample rate: %d %v", rate, ok)
	}
}
