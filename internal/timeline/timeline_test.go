package timeline_test

import (
	"errors"
	"testing"
	"time"

	"podforge/internal/services"
	"podforge/internal/timeline"
)

func clips(n int) []timeline.Clip {
	out := make([]timeline.Clip, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, timeline.Clip{
			Path:     "clip.wav",
			Ordinal:  i,
			Duration: time.Second,
		})
	}
	return out
}

func TestBuildInterleavesPauses(t *testing.T) {
	tl, err := timeline.Build(clips(3), timeline.Options{Pause: 800 * time.Millisecond})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if got := tl.ClipCount(); got != 3 {
		t.Fatalf("expected 3 clips, got %d", got)
	}
	if got := tl.SilenceCount(); got != 2 {
		t.Fatalf("expected 2 inter-clip silences, got %d", got)
	}

	items := tl.Items()
	if items[0].Kind != timeline.KindClip {
		t.Fatal("expected first item to be a clip without intro")
	}
	if items[len(items)-1].Kind != timeline.KindClip {
		t.Fatal("expected last item to be a clip without outro")
	}
	for i := 1; i < len(items); i++ {
		if items[i].Kind == timeline.KindSilence && items[i-1].Kind == timeline.KindSilence {
			t.Fatalf("adjacent silences at %d", i)
		}
	}
}

func TestBuildAddsIntroAndOutro(t *testing.T) {
	tl, err := timeline.Build(clips(2), timeline.Options{
		Pause: time.Second,
		Intro: 3 * time.Second,
		Outro: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	items := tl.Items()
	if items[0].Kind != timeline.KindSilence || items[0].Silence != 3*time.Second {
		t.Fatalf("expected 3s intro silence first, got %+v", items[0])
	}
	last := items[len(items)-1]
	if last.Kind != timeline.KindSilence || last.Silence != 2*time.Second {
		t.Fatalf("expected 2s outro silence last, got %+v", last)
	}
	// 2 clips + 1 pause + intro + outro
	if got := tl.SilenceCount(); got != 3 {
		t.Fatalf("expected 3 silences, got %d", got)
	}
}

func TestBuildSilenceCountIsDeterministic(t *testing.T) {
	for _, n := range []int{1, 2, 5, 10} {
		tl, err := timeline.Build(clips(n), timeline.Options{Pause: time.Second})
		if err != nil {
			t.Fatalf("Build(%d) returned error: %v", n, err)
		}
		if got := tl.SilenceCount(); got != n-1 {
			t.Fatalf("Build(%d): expected %d silences, got %d", n, n-1, got)
		}
	}
}

func TestBuildZeroPauseOmitsSilences(t *testing.T) {
	tl, err := timeline.Build(clips(3), timeline.Options{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if got := tl.SilenceCount(); got != 0 {
		t.Fatalf("expected no silences with zero pause, got %d", got)
	}
}

func TestBuildSingleClip(t *testing.T) {
	tl, err := timeline.Build(clips(1), timeline.Options{Pause: time.Second})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if tl.ClipCount() != 1 || tl.SilenceCount() != 0 {
		t.Fatalf("unexpected shape: %d clips, %d silences", tl.ClipCount(), tl.SilenceCount())
	}
}

func TestBuildRejectsEmptyInput(t *testing.T) {
	if _, err := timeline.Build(nil, timeline.Options{}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestBuildRejectsOutOfOrderOrdinals(t *testing.T) {
	bad := []timeline.Clip{
		{Path: "a.wav", Ordinal: 1},
		{Path: "b.wav", Ordinal: 0},
	}
	if _, err := timeline.Build(bad, timeline.Options{}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestEstimatedDuration(t *testing.T) {
	tl, err := timeline.Build(clips(2), timeline.Options{Pause: time.Second})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	total, complete := tl.EstimatedDuration()
	if !complete {
		t.Fatal("expected complete estimate with hints on every clip")
	}
	if total != 3*time.Second {
		t.Fatalf("expected 3s total, got %v", total)
	}
}

func TestEstimatedDurationIncomplete(t *testing.T) {
	in := []timeline.Clip{
		{Path: "a.wav", Ordinal: 0, Duration: time.Second},
		{Path: "b.wav", Ordinal: 1},
	}
	tl, err := timeline.Build(in, timeline.Options{Pause: time.Second})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	total, complete := tl.EstimatedDuration()
	if complete {
		t.Fatal("expected incomplete estimate")
	}
	if total != 2*time.Second {
		t.Fatalf("expected 2s lower bound, got %v", total)
	}
}
