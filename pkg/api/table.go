package api

// Partition controls how a table's rows are spread across tablets.
type Partition struct {
	// PartitionType is always hash partitioning currently.
	PartitionType PartitionType `json:"partitionType"`
	// PartitionNum is the number of tablets, range [1, 1000].
	PartitionNum uint32 `json:"partitionNum"`
}

// FieldSchema describes one field of a table. Field names must start with
// a letter and may contain letters, digits and underscores.
type FieldSchema struct {
	FieldName string    `json:"fieldName"`
	FieldType FieldType `json:"fieldType"`

	// PrimaryKey marks the field as the table's primary key. Only a single
	// primary key field is supported; BOOL, FLOAT, DOUBLE and FLOAT_VECTOR
	// fields cannot be keys.
	PrimaryKey bool `json:"primaryKey"`

	// PartitionKey marks the field rows are hashed by. A table has exactly
	// one partition key, which may or may not be the primary key.
	PartitionKey bool `json:"partitionKey"`

	// AutoIncrement applies to UINT64 primary keys only.
	AutoIncrement bool `json:"autoIncrement"`

	NotNull bool `json:"notNull"`

	// Dimension of a FLOAT_VECTOR field; unused for scalar types.
	Dimension uint32 `json:"dimension,omitempty"`
}

// TableSchema is the field and index layout of a table.
type TableSchema struct {
	Fields  []FieldSchema `json:"fields"`
	Indexes []IndexSchema `json:"indexes"`
}

// CreateTableArgs is the body of a create-table request.
type CreateTableArgs struct {
	Database    string `json:"database"`
	Table       string `json:"table"`
	Description string `json:"description,omitempty"`

	// Replication is the number of replicas per tablet (primary included),
	// range [1, 10]; >= 3 recommended for availability.
	Replication uint32 `json:"replication"`

	Partition Partition `json:"partition"`

	// EnableDynamicField allows rows to carry fields absent from the schema.
	EnableDynamicField bool `json:"enableDynamicField"`

	Schema TableSchema `json:"schema"`
}

// Validate checks the locally verifiable invariants of the args: names
// present, at least one field, and exactly one primary key. Deeper schema
// validation is the service's responsibility.
func (a *CreateTableArgs) Validate() error {
	const op = "CreateTable"
	if a.Database == "" {
		return &ValidationError{Op: op, Reason: "database is required"}
	}
	if a.Table == "" {
		return &ValidationError{Op: op, Reason: "table is required"}
	}
	if len(a.Schema.Fields) == 0 {
		return &ValidationError{Op: op, Reason: "schema needs at least one field"}
	}
	primaryKeys := 0
	for _, f := range a.Schema.Fields {
		if f.FieldName == "" {
			return &ValidationError{Op: op, Reason: "field with empty name"}
		}
		if !f.FieldType.Valid() {
			return &ValidationError{Op: op, Reason: "unsupported field type " + string(f.FieldType)}
		}
		if f.FieldType == FieldTypeFloatVector && f.Dimension == 0 {
			return &ValidationError{Op: op, Reason: "vector field " + f.FieldName + " needs a dimension"}
		}
		if f.PrimaryKey {
			primaryKeys++
		}
	}
	if primaryKeys != 1 {
		return &ValidationError{Op: op, Reason: "schema needs exactly one primary key field"}
	}
	for i := range a.Schema.Indexes {
		if err := a.Schema.Indexes[i].validate(op); err != nil {
			return err
		}
	}
	return nil
}

// DropTableArgs is the body of a drop-table request.
type DropTableArgs struct {
	Database string `json:"database"`
	Table    string `json:"table"`
}

// ListTablesArgs is the body of a list-tables request.
type ListTablesArgs struct {
	Database string `json:"database"`
}

// ListTablesResponse lists the names of all tables in a database.
type ListTablesResponse struct {
	CommonResponse

	Tables []string `json:"tables"`
}

// DescribeTableArgs is the body of a describe-table request.
type DescribeTableArgs struct {
	Database string `json:"database"`
	Table    string `json:"table"`
}

// TableDescription is the full state of a table as reported by the service.
type TableDescription struct {
	Database string `json:"database"`
	Table    string `json:"table"`

	CreateTime  string `json:"createTime"`
	Description string `json:"description"`
	Replication uint32 `json:"replication"`

	Partition Partition `json:"partition"`

	EnableDynamicField bool `json:"enableDynamicField"`

	State TableState `json:"state"`

	Aliases []string `json:"aliases"`

	Schema TableSchema `json:"schema"`
}

// DescribeTableResponse wraps a TableDescription.
type DescribeTableResponse struct {
	CommonResponse

	Table TableDescription `json:"table"`
}

// AddFieldsArgs appends scalar fields to an existing table. Only scalar
// fields can be added after creation.
type AddFieldsArgs struct {
	Database string      `json:"database"`
	Table    string      `json:"table"`
	Schema   TableSchema `json:"schema"`
}

// TableStatsArgs is the body of a table-stats request.
type TableStatsArgs struct {
	Database string `json:"database"`
	Table    string `json:"table"`
}

// TableStatsResponse carries storage statistics of a table.
type TableStatsResponse struct {
	CommonResponse

	RowCount         uint64 `json:"rowCount"`
	MemorySizeInByte uint64 `json:"memorySizeInByte"`
	DiskSizeInByte   uint64 `json:"diskSizeInByte"`
}

// AliasTableArgs binds an alias name to a table.
type AliasTableArgs struct {
	Database string `json:"database"`
	Table    string `json:"table"`
	Alias    string `json:"alias"`
}

// UnaliasTableArgs removes an alias from a table.
type UnaliasTableArgs struct {
	Database string `json:"database"`
	Table    string `json:"table"`
	Alias    string `json:"alias"`
}
