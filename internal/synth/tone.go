package synth

import (
	"bufio"
	"context"
	"encoding/binary"
	"math"
	"os"
	"strings"
	"time"

	"podforge/internal/voice"
)

const (
	toneFrequencyHz   = 440.0
	toneAmplitude     = 0.3
	secondsPerWord    = 0.3
	toneExtension     = "wav"
	defaultSampleRate = 44100
)

// Tone is a synthesizer that writes a pure sine tone instead of speech. The
// clip length scales with the word count of the line, so assembled output has
// realistic pacing without any model or credentials. Useful for dry runs and
// tests.
type Tone struct {
	sampleRate int
}

// NewTone builds the tone synthesizer at the given sample rate.
func NewTone(sampleRate int) *Tone {
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	return &Tone{sampleRate: sampleRate}
}

func (t *Tone) Name() string      { return "tone" }
func (t *Tone) Extension() string { return toneExtension }

// Synthesize writes a mono 16-bit PCM WAV containing a 440 Hz tone whose
// duration estimates the spoken line at 0.3 seconds per word. The estimate is
// deterministic for a given text, so repeated runs produce identical files.
func (t *Tone) Synthesize(ctx context.Context, text string, profile voice.Profile, dest string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, failure(ReasonIO, "tone", "context canceled", err)
	}

	words := len(strings.Fields(text))
	if words == 0 {
		words = 1
	}
	frames := int(float64(t.sampleRate) * float64(words) * secondsPerWord)

	tmp := dest + ".part"
	file, err := os.Create(tmp)
	if err != nil {
		return Result{}, failure(ReasonIO, "tone", "create output", err)
	}

	w := bufio.NewWriter(file)
	writeWAVHeader(w, t.sampleRate, frames)
	step := 2 * math.Pi * toneFrequencyHz / float64(t.sampleRate)
	for i := 0; i < frames; i++ {
		sample := int16(math.Sin(step*float64(i)) * toneAmplitude * math.MaxInt16)
		binary.Write(w, binary.LittleEndian, sample)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		os.Remove(tmp)
		return Result{}, failure(ReasonIO, "tone", "write samples", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return Result{}, failure(ReasonIO, "tone", "close output", err)
	}
	if err := commitFile(tmp, dest); err != nil {
		return Result{}, err
	}

	duration := time.Duration(float64(frames) / float64(t.sampleRate) * float64(time.Second))
	return Result{Duration: duration, Backend: t.Name()}, nil
}

// writeWAVHeader emits a canonical 44-byte RIFF header for mono 16-bit PCM.
func writeWAVHeader(w *bufio.Writer, sampleRate, frames int) {
	const (
		channels      = 1
		bitsPerSample = 16
	)
	dataSize := uint32(frames * channels * bitsPerSample / 8)
	byteRate := uint32(sampleRate * channels * bitsPerSample / 8)
	blockAlign := uint16(channels * bitsPerSample / 8)

	w.WriteString("RIFF")
	binary.Write(w, binary.LittleEndian, uint32(36+dataSize))
	w.WriteString("WAVE")
	w.WriteString("fmt ")
	binary.Write(w, binary.LittleEndian, uint32(16))
	binary.Write(w, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(w, binary.LittleEndian, uint16(channels))
	binary.Write(w, binary.LittleEndian, uint32(sampleRate))
	binary.Write(w, binary.LittleEndian, byteRate)
	binary.Write(w, binary.LittleEndian, blockAlign)
	binary.Write(w, binary.LittleEndian, uint16(bitsPerSample))
	w.WriteString("data")
	binary.Write(w, binary.LittleEndian, dataSize)
}
