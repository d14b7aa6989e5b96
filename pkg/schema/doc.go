// Package schema defines the field metadata model served by a
// document-oriented backend: field descriptors, the closed field type
// enumeration, and the Source contract that supplies descriptors for a
// named document type.
package schema
