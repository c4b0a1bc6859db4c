// Package domain contains the request-scoped entities of the annotation gateway.
//
// Nothing in this package outlives a single request: the query store owns all
// durable state, and these types only carry validated arguments to it and
// records back from it.
//
// # Key Entities
//
//   - SequenceRegion: a (reference name, start, end) span parsed from "<start>..<end>"
//   - ProteinQuery: a dataset-scoped protein identifier lookup
//   - Annotation: a free-text note anchored to one coordinate
//   - SearchFilter: the optional constraints of an annotation search
//   - Record: one flat row returned by the store
//
// # Naming Conventions
//
// Types ending in "Query" or "Filter" are used for read operations.
package domain
