// Package field turns schema descriptors into concrete input behavior: the
// mapping from field type to input kind, the per-field validation rules, the
// default value resolution, and the heuristic grouping of ordered field
// lists into titled sections.
package field
