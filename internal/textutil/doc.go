// Package textutil provides filename sanitization helpers.
//
// Segment and artifact names incorporate user-configured speaker and display
// names, which may contain characters that are unsafe in paths or hostile to
// the concat list syntax. These helpers normalize them for filesystem use.
package textutil
