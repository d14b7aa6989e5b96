// Package docstore talks to the document-oriented REST backend: generic
// record listing and CRUD over named document types, plus an adapter that
// serves field schemas from the same API. Configuration is explicit; nothing
// reads ambient globals.
package docstore
