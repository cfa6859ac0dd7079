// Package synth turns a single script line into an audio file. Three backends
// share the Synthesizer interface: a hosted HTTP service, a local model driven
// through an external command, and a deterministic tone generator that needs
// no credentials or models at all.
//
// Backends write the destination file atomically: output lands under a
// temporary name first and is renamed into place only after a complete,
// successful synthesis. A failed call never leaves a partial segment behind.
package synth
