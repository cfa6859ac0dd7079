// Package ffprobe provides a typed wrapper around ffprobe JSON output for
// audio files.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio stream properties
//   - Format: container-level metadata (duration, size, bitrate)
//
// Primary entry point:
//   - Parse: decodes raw ffprobe JSON captured by the media toolkit
//
// Helper methods on Result expose duration, sample rate, and audio stream
// counts without string plumbing at call sites.
package ffprobe
