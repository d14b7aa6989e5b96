// Package openapi adapts an OpenAPI document into a schema source: each
// named component schema becomes a document type and its properties become
// field descriptors. It exists for offline tooling and tests, where forms
// should render from a spec file without a live backend.
package openapi
