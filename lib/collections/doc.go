// Package collections contains small generic helpers for slices and maps:
// order-preserving deduplication, typed lookups in map[string]any documents
// and map/list wrappers whose methods are mutually exclusive.
package collections
