// Package link resolves reference fields, the ones whose domain is "records
// of another document type". The Resolver debounces search-text changes,
// tags every lookup with a generation so stale responses are discarded, and
// keeps a small label cache so a selected identifier can display as a
// human-readable option. DynamicResolver adds the document-type picker used
// by dynamic references.
package link
