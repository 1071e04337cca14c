package api

import "encoding/json"

// IndexParams is the parameter block of a vector index. Known kinds use
// the typed variants below; GenericParams keeps unknown parameter shapes
// decodable for forward compatibility.
type IndexParams interface {
	isIndexParams()
}

// HNSWParams configures an HNSW graph index.
type HNSWParams struct {
	// M is the number of neighbors per graph node, range [4, 128].
	M uint32 `json:"M"`
	// EfConstruction is the candidate list size while building, range [8, 1024].
	EfConstruction uint32 `json:"efConstruction"`
}

// HNSWPQParams configures an HNSW index with product quantization.
type HNSWPQParams struct {
	M              uint32 `json:"M"`
	EfConstruction uint32 `json:"efConstruction"`
	// NSQ is the number of quantization subspaces; must divide the vector
	// dimension.
	NSQ uint32 `json:"NSQ"`
	// SampleRate of k-means training samples, range [0.0, 1.0].
	SampleRate float64 `json:"sampleRate"`
}

// PUCKParams configures a PUCK two-level clustering index.
type PUCKParams struct {
	CoarseClusterCount uint32 `json:"coarseClusterCount"`
	FineClusterCount   uint32 `json:"fineClusterCount"`
}

// GenericParams holds an index parameter block the client has no typed
// variant for. Values are decoded with encoding/json defaults.
type GenericParams map[string]any

func (HNSWParams) isIndexParams()    {}
func (HNSWPQParams) isIndexParams()  {}
func (PUCKParams) isIndexParams()    {}
func (GenericParams) isIndexParams() {}

// AutoBuildPolicy tells the service when to rebuild a vector index on its own.
type AutoBuildPolicy struct {
	PolicyType AutoBuildPolicyType `json:"policyType,omitempty"`

	// Timing is the start time, LOCAL (%Y-%m-%d %H:%M:%S) or
	// UTC (%Y-%m-%dT%H:%M:%SZ). For TIMING it is the single build time; for
	// PERIODICAL it anchors the period.
	Timing string `json:"timing,omitempty"`

	// PeriodInSecond is the rebuild interval for PERIODICAL policies.
	PeriodInSecond uint64 `json:"periodInSecond,omitempty"`

	// RowCountIncrement triggers a build once a tablet's row count changed
	// by this many rows.
	RowCountIncrement uint64 `json:"rowCountIncrement,omitempty"`

	// RowCountIncrementRatio triggers a build once the row count changed by
	// this fraction.
	RowCountIncrementRatio float64 `json:"rowCountIncrementRatio,omitempty"`
}

// IndexSchema declares one index over a table field. Vector kinds need a
// metric and usually a params block; SECONDARY needs neither.
type IndexSchema struct {
	IndexName string `json:"indexName"`

	IndexType IndexType `json:"indexType,omitempty"`

	// MetricType is required for vector index kinds.
	MetricType MetricType `json:"metricType,omitempty"`

	Params IndexParams `json:"params,omitempty"`

	// Field is the table field the index acts on.
	Field string `json:"field"`

	AutoBuild       bool             `json:"autoBuild"`
	AutoBuildPolicy *AutoBuildPolicy `json:"autoBuildPolicy,omitempty"`

	// State is filled by the service in describe responses only.
	State IndexState `json:"state,omitempty"`

	// IndexMajorVersion increases when a manual rebuild completes; it is a
	// response-only field.
	IndexMajorVersion uint64 `json:"indexMajorVersion,omitempty"`
}

// UnmarshalJSON decodes the params block into the typed variant matching
// the index kind, keeping unknown shapes as GenericParams instead of
// failing the whole response.
func (s *IndexSchema) UnmarshalJSON(data []byte) error {
	type alias IndexSchema
	aux := struct {
		*alias
		Params json.RawMessage `json:"params,omitempty"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Params) == 0 || string(aux.Params) == "null" {
		s.Params = nil
		return nil
	}
	s.Params = decodeIndexParams(s.IndexType, aux.Params)
	return nil
}

func decodeIndexParams(kind IndexType, raw json.RawMessage) IndexParams {
	switch kind {
	case IndexTypeHNSW:
		var p HNSWParams
		if json.Unmarshal(raw, &p) == nil {
			return p
		}
	case IndexTypeHNSWPQ:
		var p HNSWPQParams
		if json.Unmarshal(raw, &p) == nil {
			return p
		}
	case IndexTypePuck:
		var p PUCKParams
		if json.Unmarshal(raw, &p) == nil {
			return p
		}
	}
	var g GenericParams
	if json.Unmarshal(raw, &g) == nil {
		return g
	}
	return nil
}

func (s *IndexSchema) validate(op string) error {
	if s.IndexName == "" {
		return &ValidationError{Op: op, Reason: "index with empty name"}
	}
	if !s.IndexType.Valid() {
		return &ValidationError{Op: op, Reason: "unsupported index type " + string(s.IndexType)}
	}
	if s.IndexType.IsVectorIndex() {
		if !s.MetricType.Valid() {
			return &ValidationError{Op: op, Reason: "index " + s.IndexName + ": unsupported metric type " + string(s.MetricType)}
		}
	}
	return nil
}

// CreateIndexArgs adds indexes to an existing table. Only vector indexes
// can be created after the table exists.
type CreateIndexArgs struct {
	Database string        `json:"database"`
	Table    string        `json:"table"`
	Indexes  []IndexSchema `json:"indexes"`
}

// Validate performs enum-membership checks on every declared index before
// the request leaves the client. Numerical parameter correctness is the
// service's responsibility.
func (a *CreateIndexArgs) Validate() error {
	const op = "CreateIndexes"
	if a.Database == "" {
		return &ValidationError{Op: op, Reason: "database is required"}
	}
	if a.Table == "" {
		return &ValidationError{Op: op, Reason: "table is required"}
	}
	if len(a.Indexes) == 0 {
		return &ValidationError{Op: op, Reason: "at least one index is required"}
	}
	for i := range a.Indexes {
		if err := a.Indexes[i].validate(op); err != nil {
			return err
		}
	}
	return nil
}

// DescribeIndexArgs is the body of a describe-index request.
type DescribeIndexArgs struct {
	Database  string `json:"database"`
	Table     string `json:"table"`
	IndexName string `json:"indexName"`
}

// DescribeIndexResponse wraps the described index.
type DescribeIndexResponse struct {
	CommonResponse

	Index IndexSchema `json:"index"`
}

// RebuildIndexArgs triggers a manual rebuild of a vector index.
type RebuildIndexArgs struct {
	Database  string `json:"database"`
	Table     string `json:"table"`
	IndexName string `json:"indexName"`
}

// DropIndexArgs is the body of a drop-index request.
type DropIndexArgs struct {
	Database  string `json:"database"`
	Table     string `json:"table"`
	IndexName string `json:"indexName"`
}

// ModifyIndexArgs updates the auto-build attributes of a vector index.
// Other index attributes are immutable.
type ModifyIndexArgs struct {
	Database string      `json:"database"`
	Table    string      `json:"table"`
	Index    IndexSchema `json:"index"`
}
