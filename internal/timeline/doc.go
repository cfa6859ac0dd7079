// Package timeline models the ordered plan of clips and silences that
// defines a podcast's structure before rendering.
//
// A timeline is built once from an ordered clip list and is immutable
// afterwards. Structural invariants are enforced at build time: clips stay in
// ordinal order, adjacent clips are separated by exactly one pause silence,
// intro/outro silences appear only at the edges, and no two silences are ever
// adjacent.
package timeline
