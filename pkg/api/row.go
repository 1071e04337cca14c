package api

import "encoding/json"

// InsertRowsArgs inserts new rows. The service rejects a row whose primary
// key already exists; batches are not atomic. At most 1000 rows per request.
type InsertRowsArgs struct {
	Database string `json:"database"`
	Table    string `json:"table"`
	Rows     []any  `json:"rows"`
}

// Validate checks the locally verifiable invariants of a row batch.
func (a *InsertRowsArgs) Validate() error {
	return validateRowBatch("InsertRows", a.Database, a.Table, len(a.Rows))
}

// InsertRowsResponse reports how many rows the service wrote. On partial
// failure the count is the service's own accounting, passed through as is.
type InsertRowsResponse struct {
	CommonResponse

	AffectedCount int32 `json:"affectedCount"`
}

// UpsertRowsArgs writes rows, overwriting any existing row with the same
// primary key. Batches are not atomic. At most 1000 rows per request.
type UpsertRowsArgs struct {
	Database string `json:"database"`
	Table    string `json:"table"`
	Rows     []any  `json:"rows"`
}

// Validate checks the locally verifiable invariants of a row batch.
func (a *UpsertRowsArgs) Validate() error {
	return validateRowBatch("UpsertRows", a.Database, a.Table, len(a.Rows))
}

// UpsertRowsResponse reports how many rows the service wrote.
type UpsertRowsResponse struct {
	CommonResponse

	AffectedCount int32 `json:"affectedCount"`
}

// MaxRowsPerBatch is the service's batch size limit for insert and upsert.
const MaxRowsPerBatch = 1000

func validateRowBatch(op, database, table string, rows int) error {
	if database == "" {
		return &ValidationError{Op: op, Reason: "database is required"}
	}
	if table == "" {
		return &ValidationError{Op: op, Reason: "table is required"}
	}
	if rows == 0 {
		return &ValidationError{Op: op, Reason: "at least one row is required"}
	}
	if rows > MaxRowsPerBatch {
		return &ValidationError{Op: op, Reason: "batch exceeds the 1000 row limit"}
	}
	return nil
}

// UpdateRowArgs updates scalar fields of one row addressed by primary key.
// Primary keys, partition keys and vector fields cannot be updated.
type UpdateRowArgs struct {
	Database string `json:"database"`
	Table    string `json:"table"`

	PrimaryKey map[string]any `json:"primaryKey"`

	// PartitionKey is needed only when the table's partition key differs
	// from its primary key.
	PartitionKey map[string]any `json:"partitionKey,omitempty"`

	// Update maps field names to their new values.
	Update map[string]any `json:"update"`
}

// DeleteRowsArgs deletes rows by primary key, by filter expression, or both.
// The filter syntax follows the service's SQL WHERE clause subset.
type DeleteRowsArgs struct {
	Database string `json:"database"`
	Table    string `json:"table"`

	PrimaryKey   map[string]any `json:"primaryKey,omitempty"`
	PartitionKey map[string]any `json:"partitionKey,omitempty"`
	Filter       string         `json:"filter,omitempty"`
}

// QueryRowArgs reads a single row by primary key.
type QueryRowArgs struct {
	Database string `json:"database"`
	Table    string `json:"table"`

	PrimaryKey   map[string]any `json:"primaryKey"`
	PartitionKey map[string]any `json:"partitionKey,omitempty"`

	// Projections limits the returned fields; empty returns all scalar fields.
	Projections []string `json:"projections,omitempty"`

	RetrieveVector bool `json:"retrieveVector,omitempty"`

	ReadConsistency ReadConsistency `json:"readConsistency,omitempty"`
}

// QueryRowResponse carries the single matched row. Use DecodeRow to decode
// it into a caller type.
type QueryRowResponse struct {
	CommonResponse

	Row json.RawMessage `json:"row"`
}

// DecodeRow decodes the row payload into out.
func (r *QueryRowResponse) DecodeRow(out any) error {
	return json.Unmarshal(r.Row, out)
}

// VectorSearchParams is the per-kind parameter block of an ANN search.
type VectorSearchParams interface {
	isSearchParams()
}

// FLATSearchParams configures a brute-force search.
type FLATSearchParams struct {
	Limit uint32 `json:"limit"`

	// DistanceFar and DistanceNear bound range retrieval; nil disables the
	// bound.
	DistanceFar  *float64 `json:"distanceFar,omitempty"`
	DistanceNear *float64 `json:"distanceNear,omitempty"`
}

// HNSWSearchParams configures an HNSW graph search.
type HNSWSearchParams struct {
	// Ef is the dynamic candidate list size during retrieval.
	Ef    uint32 `json:"ef"`
	Limit uint32 `json:"limit"`

	DistanceFar  *float64 `json:"distanceFar,omitempty"`
	DistanceNear *float64 `json:"distanceNear,omitempty"`

	Pruning bool `json:"pruning"`
}

// HNSWPQSearchParams configures a quantized HNSW search.
type HNSWPQSearchParams struct {
	Ef    uint32 `json:"ef"`
	Limit uint32 `json:"limit"`

	DistanceFar  *float64 `json:"distanceFar,omitempty"`
	DistanceNear *float64 `json:"distanceNear,omitempty"`
}

// PUCKSearchParams configures a PUCK search.
type PUCKSearchParams struct {
	// SearchCoarseCount is the coarse cluster candidate set size.
	SearchCoarseCount uint32 `json:"searchCoarseCount"`
	Limit             uint32 `json:"limit"`

	DistanceFar  *float64 `json:"distanceFar,omitempty"`
	DistanceNear *float64 `json:"distanceNear,omitempty"`
}

func (FLATSearchParams) isSearchParams()   {}
func (HNSWSearchParams) isSearchParams()   {}
func (HNSWPQSearchParams) isSearchParams() {}
func (PUCKSearchParams) isSearchParams()   {}

// AnnsSearchParams is the ANN part of a search request: which vector field
// to search, the query vector, kind-specific parameters, and an optional
// scalar filter.
type AnnsSearchParams struct {
	VectorField  string             `json:"vectorField"`
	VectorFloats []float64          `json:"vectorFloats"`
	Params       VectorSearchParams `json:"params"`
	Filter       string             `json:"filter,omitempty"`
}

// SearchRowsArgs runs an ANN search over a vector index with optional
// scalar filtering.
type SearchRowsArgs struct {
	Database string `json:"database"`
	Table    string `json:"table"`

	ANNS AnnsSearchParams `json:"anns"`

	PartitionKey    map[string]any  `json:"partitionKey,omitempty"`
	Projections     []string        `json:"projections,omitempty"`
	RetrieveVector  bool            `json:"retrieveVector,omitempty"`
	ReadConsistency ReadConsistency `json:"readConsistency,omitempty"`
}

// Validate checks the locally verifiable invariants of a search request.
func (a *SearchRowsArgs) Validate() error {
	const op = "SearchRows"
	if a.Database == "" {
		return &ValidationError{Op: op, Reason: "database is required"}
	}
	if a.Table == "" {
		return &ValidationError{Op: op, Reason: "table is required"}
	}
	if a.ANNS.VectorField == "" {
		return &ValidationError{Op: op, Reason: "anns.vectorField is required"}
	}
	if len(a.ANNS.VectorFloats) == 0 {
		return &ValidationError{Op: op, Reason: "anns.vectorFloats is required"}
	}
	return nil
}

// RowResult is one search hit: the row itself plus its distance from the
// query vector and its similarity score.
type RowResult struct {
	Row      json.RawMessage `json:"row"`
	Distance float64         `json:"distance"`
	Score    float64         `json:"score"`
}

// DecodeRow decodes the hit's row payload into out.
func (r *RowResult) DecodeRow(out any) error {
	return json.Unmarshal(r.Row, out)
}

// SearchRowsResponse carries search hits in the exact order the service
// ranked them; the client never reorders results.
type SearchRowsResponse struct {
	CommonResponse

	Rows []RowResult `json:"rows"`
}

// SelectRowsArgs filters rows by scalar fields with marker-based pagination.
type SelectRowsArgs struct {
	Database string `json:"database"`
	Table    string `json:"table"`

	Filter string `json:"filter,omitempty"`

	// Marker resumes pagination from a previous response's NextMarker.
	Marker json.RawMessage `json:"marker,omitempty"`

	Limit uint32 `json:"limit,omitempty"`

	Projections     []string        `json:"projections,omitempty"`
	ReadConsistency ReadConsistency `json:"readConsistency,omitempty"`
}

// SelectRowsResponse is one page of a select. When IsTruncated is set,
// pass NextMarker as the next request's Marker.
type SelectRowsResponse struct {
	CommonResponse

	Rows []json.RawMessage `json:"rows"`

	IsTruncated bool            `json:"isTruncated"`
	NextMarker  json.RawMessage `json:"nextMarker"`
}

// DecodeRows decodes every row of the page into out, which must be a
// pointer to a slice.
func (r *SelectRowsResponse) DecodeRows(out any) error {
	raw, err := json.Marshal(r.Rows)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// BatchAnnsSearchParams is AnnsSearchParams with multiple query vectors.
type BatchAnnsSearchParams struct {
	VectorField  string             `json:"vectorField"`
	VectorFloats [][]float64        `json:"vectorFloats"`
	Params       VectorSearchParams `json:"params"`
	Filter       string             `json:"filter,omitempty"`
}

// BatchSearchRowsArgs runs one ANN search per query vector in a single
// request.
type BatchSearchRowsArgs struct {
	Database string `json:"database"`
	Table    string `json:"table"`

	ANNS BatchAnnsSearchParams `json:"anns"`

	PartitionKey    map[string]any  `json:"partitionKey,omitempty"`
	Projections     []string        `json:"projections,omitempty"`
	RetrieveVector  bool            `json:"retrieveVector,omitempty"`
	ReadConsistency ReadConsistency `json:"readConsistency,omitempty"`
}

// Validate checks the locally verifiable invariants of a batch search.
func (a *BatchSearchRowsArgs) Validate() error {
	const op = "BatchSearchRows"
	if a.Database == "" {
		return &ValidationError{Op: op, Reason: "database is required"}
	}
	if a.Table == "" {
		return &ValidationError{Op: op, Reason: "table is required"}
	}
	if a.ANNS.VectorField == "" {
		return &ValidationError{Op: op, Reason: "anns.vectorField is required"}
	}
	if len(a.ANNS.VectorFloats) == 0 {
		return &ValidationError{Op: op, Reason: "anns.vectorFloats is required"}
	}
	return nil
}

// BatchRowResult is the hit list for one query vector of a batch search.
type BatchRowResult struct {
	SearchVectorFloats []float64   `json:"searchVectorFloats"`
	Rows               []RowResult `json:"rows"`
}

// BatchSearchRowsResponse carries one result set per query vector, in
// request order.
type BatchSearchRowsResponse struct {
	CommonResponse

	Results []BatchRowResult `json:"results"`
}
