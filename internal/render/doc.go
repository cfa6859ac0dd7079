// Package render drives the synthesis pipeline: it resolves each dialogue
// line to a voice, synthesizes the line's audio, assembles the timeline, and
// materializes the result either as independent segment files or as one
// combined output.
//
// Unknown speakers are skipped with a warning and the run continues; a failed
// synthesis call aborts the run. Segment files completed before the failure
// stay on disk since each is independently valid, but a combined run never
// finalizes a partial artifact.
package render
