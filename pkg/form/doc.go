// Package form orchestrates one data-entry form over a document type: it
// loads the field schema, owns the value and error state, groups fields into
// sections, validates exhaustively, and submits the assembled document
// through the record transport. One Engine instance backs one form screen
// and is not shared across screens or goroutines.
package form
