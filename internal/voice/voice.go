// Package voice maps speaker identifiers to synthesizable voice profiles.
//
// The registry is an explicitly constructed value passed down to the render
// stage, never ambient state, so independent pipeline instances (and tests)
// cannot interfere with each other. Profiles are immutable for the duration
// of a run.
package voice

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"podforge/internal/config"
	"podforge/internal/services"
)

// Profile describes how one speaker's lines should sound.
type Profile struct {
	SpeakerID   string
	DisplayName string
	Language    language.Tag
	// Accent refines the base language, e.g. a regional TLD variant the
	// synthesis backend understands. Optional.
	Accent string
	// Speed is a playback-rate multiplier, always > 0.
	Speed float64
	// CloneSample is a read-only reference to an external audio file used by
	// clone-capable backends. Optional; the file may legitimately be absent.
	CloneSample string
	// RemoteID identifies the voice at the hosted synthesis service. Optional.
	RemoteID string
}

// Registry resolves speaker identifiers to profiles.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry builds a registry from the configured voice table. Speaker
// identifiers are matched case-insensitively.
func NewRegistry(voices map[string]config.Voice) (*Registry, error) {
	if len(voices) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "voice", "registry", "no voice profiles configured", nil)
	}

	profiles := make(map[string]Profile, len(voices))
	for speaker, v := range voices {
		id := strings.ToUpper(strings.TrimSpace(speaker))
		if id == "" {
			continue
		}
		if v.Speed <= 0 {
			return nil, services.Wrap(services.ErrConfiguration, "voice", "registry", fmt.Sprintf("%s: speed must be greater than zero", id), nil)
		}
		tag, err := language.Parse(v.Language)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "voice", "registry", fmt.Sprintf("%s: invalid language tag %q", id, v.Language), err)
		}
		display := strings.TrimSpace(v.DisplayName)
		if display == "" {
			display = id
		}
		profiles[id] = Profile{
			SpeakerID:   id,
			DisplayName: display,
			Language:    tag,
			Accent:      v.Accent,
			Speed:       v.Speed,
			CloneSample: v.CloneSample,
			RemoteID:    v.RemoteID,
		}
	}

	if len(profiles) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "voice", "registry", "no usable voice profiles", nil)
	}

	return &Registry{profiles: profiles}, nil
}

// Resolve looks up the profile for a speaker identifier. The second return
// value reports whether the speaker is known; an unknown speaker is a policy
// decision for the caller, not an error here.
func (r *Registry) Resolve(speakerID string) (Profile, bool) {
	profile, ok := r.profiles[strings.ToUpper(strings.TrimSpace(speakerID))]
	return profile, ok
}

// Speakers returns the registered speaker identifiers in sorted order.
func (r *Registry) Speakers() []string {
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	return len(r.profiles)
}
