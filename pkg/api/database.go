package api

// CreateDatabaseArgs is the body of a create-database request.
// The service answers with a bare CommonResponse.
type CreateDatabaseArgs struct {
	Database string `json:"database"`
}

// DropDatabaseArgs is the body of a drop-database request. All tables in
// the database must be dropped first; the service rejects a non-empty
// database with ServerCodeDBNotEmpty.
type DropDatabaseArgs struct {
	Database string `json:"database"`
}

// ListDatabasesResponse lists the names of all databases in the account.
type ListDatabasesResponse struct {
	CommonResponse

	Databases []string `json:"databases"`
}
