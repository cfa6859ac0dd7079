// Package ffmpeg drives the external ffmpeg binary for the operations the
// pipeline needs: generating silence audio, concatenating an ordered file
// list into one encoded artifact, and probing durations via ffprobe.
//
// Failures surface the tool's diagnostic output verbatim, tagged with
// services.ErrExternalTool. The command runner is injectable so the package
// is testable without ffmpeg installed.
package ffmpeg
