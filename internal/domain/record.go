package domain

// Record is one flat key/value row returned by the query store.
// Keys are the column names the HTTP clients expect (e.g. "_start", "end", "name").
type Record map[string]any
