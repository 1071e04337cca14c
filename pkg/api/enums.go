package api

// FieldType is the scalar or vector data type of a table field.
type FieldType string

const (
	FieldTypeBool        FieldType = "BOOL"
	FieldTypeInt8        FieldType = "INT8"
	FieldTypeUint8       FieldType = "UINT8"
	FieldTypeInt16       FieldType = "INT16"
	FieldTypeUint16      FieldType = "UINT16"
	FieldTypeInt32       FieldType = "INT32"
	FieldTypeUint32      FieldType = "UINT32"
	FieldTypeInt64       FieldType = "INT64"
	FieldTypeUint64      FieldType = "UINT64"
	FieldTypeFloat       FieldType = "FLOAT"
	FieldTypeDouble      FieldType = "DOUBLE"
	FieldTypeDate        FieldType = "DATE"
	FieldTypeDatetime    FieldType = "DATETIME"
	FieldTypeTimestamp   FieldType = "TIMESTAMP"
	FieldTypeString      FieldType = "STRING"
	FieldTypeBinary      FieldType = "BINARY"
	FieldTypeUUID        FieldType = "UUID"
	FieldTypeText        FieldType = "TEXT"
	FieldTypeTextGBK     FieldType = "TEXT_GBK"
	FieldTypeTextGB18030 FieldType = "TEXT_GB18030"
	FieldTypeFloatVector FieldType = "FLOAT_VECTOR"
)

var fieldTypes = map[FieldType]struct{}{
	FieldTypeBool: {}, FieldTypeInt8: {}, FieldTypeUint8: {},
	FieldTypeInt16: {}, FieldTypeUint16: {}, FieldTypeInt32: {},
	FieldTypeUint32: {}, FieldTypeInt64: {}, FieldTypeUint64: {},
	FieldTypeFloat: {}, FieldTypeDouble: {}, FieldTypeDate: {},
	FieldTypeDatetime: {}, FieldTypeTimestamp: {}, FieldTypeString: {},
	FieldTypeBinary: {}, FieldTypeUUID: {}, FieldTypeText: {},
	FieldTypeTextGBK: {}, FieldTypeTextGB18030: {}, FieldTypeFloatVector: {},
}

// Valid reports whether t is a field type the service supports.
func (t FieldType) Valid() bool {
	_, ok := fieldTypes[t]
	return ok
}

// IndexType is the kind of index declared over one or more fields.
// SECONDARY is a scalar index; the remaining kinds are vector indexes.
type IndexType string

const (
	IndexTypeFlat      IndexType = "FLAT"
	IndexTypeHNSW      IndexType = "HNSW"
	IndexTypeHNSWPQ    IndexType = "HNSWPQ"
	IndexTypePuck      IndexType = "PUCK"
	IndexTypeSecondary IndexType = "SECONDARY"
)

// Valid reports whether t is an index kind the service supports.
func (t IndexType) Valid() bool {
	switch t {
	case IndexTypeFlat, IndexTypeHNSW, IndexTypeHNSWPQ, IndexTypePuck, IndexTypeSecondary:
		return true
	}
	return false
}

// IsVectorIndex reports whether t indexes a vector field.
func (t IndexType) IsVectorIndex() bool {
	return t.Valid() && t != IndexTypeSecondary
}

// MetricType is the distance metric of a vector index.
type MetricType string

const (
	MetricTypeL2     MetricType = "L2"
	MetricTypeIP     MetricType = "IP"
	MetricTypeCosine MetricType = "COSINE"
)

// Valid reports whether m is a distance metric the service supports.
func (m MetricType) Valid() bool {
	switch m {
	case MetricTypeL2, MetricTypeIP, MetricTypeCosine:
		return true
	}
	return false
}

// PartitionType is the partitioning scheme of a table. The service
// currently supports hash partitioning only.
type PartitionType string

const PartitionTypeHash PartitionType = "HASH"

// ReadConsistency selects the consistency level of a read request.
type ReadConsistency string

const (
	ReadConsistencyEventual ReadConsistency = "EVENTUAL"
	ReadConsistencyStrong   ReadConsistency = "STRONG"
)

// TableState is the lifecycle state of a table as reported by the service.
type TableState string

const (
	TableStateInvalid  TableState = "INVALID"
	TableStateCreating TableState = "CREATING"
	TableStateNormal   TableState = "NORMAL"
	TableStateDeleting TableState = "DELETING"
)

// IndexState is the build state of an index as reported by the service.
type IndexState string

const (
	IndexStateInvalid  IndexState = "INVALID"
	IndexStateBuilding IndexState = "BUILDING"
	IndexStateNormal   IndexState = "NORMAL"
)

// AutoBuildPolicyType selects when the service rebuilds a vector index
// automatically.
type AutoBuildPolicyType string

const (
	AutoBuildPolicyTiming            AutoBuildPolicyType = "TIMING"
	AutoBuildPolicyPeriodical        AutoBuildPolicyType = "PERIODICAL"
	AutoBuildPolicyRowCountIncrement AutoBuildPolicyType = "ROW_COUNT_INCREMENT"
)
