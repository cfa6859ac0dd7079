package timeline

import (
	"fmt"
	"time"

	"podforge/internal/services"
)

// Clip references one rendered audio file.
type Clip struct {
	// Path is the on-disk location of the audio. Ownership transfers to the
	// timeline once the clip is enqueued; the producer must not touch the
	// file afterwards.
	Path string
	// Duration is an advisory hint, zero when unknown.
	Duration time.Duration
	// Ordinal is the clip's playback position, taken from the dialogue line
	// index or the segment sort position.
	Ordinal int
}

// Kind discriminates timeline items.
type Kind int

const (
	KindClip Kind = iota
	KindSilence
)

// Item is one entry in the timeline: either a clip or a silence.
type Item struct {
	Kind    Kind
	Clip    Clip
	Silence time.Duration
}

// Options controls pause placement and the optional lead-in/trail-out.
type Options struct {
	Pause time.Duration
	Intro time.Duration
	Outro time.Duration
}

// Timeline is the ordered plan of clips and silences that defines the final
// artifact's structure before rendering.
type Timeline struct {
	items []Item
}

// Build assembles a timeline from clips in ordinal order: optional lead-in
// silence, each clip separated by the configured pause, optional trail-out
// silence. Clips must already be sorted by strictly increasing ordinal. A zero
// pause produces no inter-clip silence items; silences of zero length never
// appear in the timeline.
func Build(clips []Clip, opts Options) (*Timeline, error) {
	if len(clips) == 0 {
		return nil, services.Wrap(services.ErrValidation, "timeline", "build", "no clips to assemble", nil)
	}
	for i, clip := range clips {
		if clip.Path == "" {
			return nil, services.Wrap(services.ErrValidation, "timeline", "build", fmt.Sprintf("clip %d has no path", i), nil)
		}
		if i > 0 && clips[i].Ordinal <= clips[i-1].Ordinal {
			return nil, services.Wrap(services.ErrValidation, "timeline", "build",
				fmt.Sprintf("clip ordinals out of order: %d after %d", clips[i].Ordinal, clips[i-1].Ordinal), nil)
		}
	}

	items := make([]Item, 0, 2*len(clips)+1)
	if opts.Intro > 0 {
		items = append(items, Item{Kind: KindSilence, Silence: opts.Intro})
	}
	for i, clip := range clips {
		if i > 0 && opts.Pause > 0 {
			items = append(items, Item{Kind: KindSilence, Silence: opts.Pause})
		}
		items = append(items, Item{Kind: KindClip, Clip: clip})
	}
	if opts.Outro > 0 {
		items = append(items, Item{Kind: KindSilence, Silence: opts.Outro})
	}

	tl := &Timeline{items: items}
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	return tl, nil
}

// Items returns the timeline entries in playback order.
func (t *Timeline) Items() []Item {
	out := make([]Item, len(t.items))
	copy(out, t.items)
	return out
}

// ClipCount returns the number of clip entries.
func (t *Timeline) ClipCount() int {
	count := 0
	for _, item := range t.items {
		if item.Kind == KindClip {
			count++
		}
	}
	return count
}

// SilenceCount returns the number of silence entries.
func (t *Timeline) SilenceCount() int {
	count := 0
	for _, item := range t.items {
		if item.Kind == KindSilence {
			count++
		}
	}
	return count
}

// Clips returns the clip entries in playback order.
func (t *Timeline) Clips() []Clip {
	clips := make([]Clip, 0, len(t.items))
	for _, item := range t.items {
		if item.Kind == KindClip {
			clips = append(clips, item.Clip)
		}
	}
	return clips
}

// Validate checks the structural invariants: no adjacent silences, no
// zero-length silences, and at least one clip.
func (t *Timeline) Validate() error {
	clips := 0
	for i, item := range t.items {
		switch item.Kind {
		case KindClip:
			clips++
			if item.Clip.Path == "" {
				return services.Wrap(services.ErrValidation, "timeline", "validate", fmt.Sprintf("item %d: clip without path", i), nil)
			}
		case KindSilence:
			if item.Silence <= 0 {
				return services.Wrap(services.ErrValidation, "timeline", "validate", fmt.Sprintf("item %d: non-positive silence", i), nil)
			}
			if i > 0 && t.items[i-1].Kind == KindSilence {
				return services.Wrap(services.ErrValidation, "timeline", "validate", fmt.Sprintf("item %d: adjacent silences", i), nil)
			}
		default:
			return services.Wrap(services.ErrValidation, "timeline", "validate", fmt.Sprintf("item %d: unknown kind", i), nil)
		}
	}
	if clips == 0 {
		return services.Wrap(services.ErrValidation, "timeline", "validate", "timeline has no clips", nil)
	}
	return nil
}

// EstimatedDuration sums silence lengths and clip duration hints. The second
// return value reports whether every clip carried a hint; when false the
// estimate is a lower bound.
func (t *Timeline) EstimatedDuration() (time.Duration, bool) {
	var total time.Duration
	complete := true
	for _, item := range t.items {
		switch item.Kind {
		case KindClip:
			if item.Clip.Duration <= 0 {
				complete = false
				continue
			}
			total += item.Clip.Duration
		case KindSilence:
			total += item.Silence
		}
	}
	return total, complete
}
