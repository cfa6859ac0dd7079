package voice_test

import (
	"errors"
	"testing"

	"podforge/internal/config"
	"podforge/internal/services"
	"podforge/internal/voice"
)

func testVoices() map[string]config.Voice {
	return map[string]config.Voice{
		"MIGUEL": {DisplayName: "Miguel", Language: "es", Accent: "com.mx", Speed: 0.9},
		"SAM":    {DisplayName: "Sam", Language: "es", Accent: "com.ar", Speed: 1.2},
	}
}

func TestResolveKnownSpeaker(t *testing.T) {
	registry, err := voice.NewRegistry(testVoices())
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	profile, ok := registry.Resolve("MIGUEL")
	if !ok {
		t.Fatal("expected MIGUEL to resolve")
	}
	if profile.DisplayName != "Miguel" {
		t.Fatalf("unexpected display name: %q", profile.DisplayName)
	}
	if profile.Speed != 0.9 {
		t.Fatalf("unexpected speed: %v", profile.Speed)
	}
	if profile.Language.String() != "es" {
		t.Fatalf("unexpected language: %v", profile.Language)
	}
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	registry, err := voice.NewRegistry(testVoices())
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}
	if _, ok := registry.Resolve("sam"); !ok {
		t.Fatal("expected lowercase lookup to resolve")
	}
	if _, ok := registry.Resolve(" sam "); !ok {
		t.Fatal("expected padded lookup to resolve")
	}
}

func TestResolveUnknownSpeakerIsNotAnError(t *testing.T) {
	registry, err := voice.NewRegistry(testVoices())
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}
	if _, ok := registry.Resolve("NARRATOR"); ok {
		t.Fatal("expected unknown speaker to miss")
	}
}

func TestNewRegistryRejectsBadLanguage(t *testing.T) {
	_, err := voice.NewRegistry(map[string]config.Voice{
		"X": {Language: "not a tag!", Speed: 1},
	})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNewRegistryRejectsNonPositiveSpeed(t *testing.T) {
	_, err := voice.NewRegistry(map[string]config.Voice{
		"X": {Language: "en", Speed: 0},
	})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNewRegistryRequiresProfiles(t *testing.T) {
	if _, err := voice.NewRegistry(nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestSpeakersSorted(t *testing.T) {
	registry, err := voice.NewRegistry(testVoices())
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}
	speakers := registry.Speakers()
	if len(speakers) != 2 || speakers[0] != "MIGUEL" || speakers[1] != "SAM" {
		t.Fatalf("unexpected speakers: %v", speakers)
	}
}
