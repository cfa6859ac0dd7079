// Package combine rebuilds a timeline from already-rendered segment files and
// concatenates them into one output artifact.
//
// Playback order is inferred purely from the lexicographic sort of filenames
// in the segment directory. Producers must name segments so that sort order
// equals intended order, which the render stage guarantees with zero-padded
// numeric prefixes.
package combine
