package vortex

import (
	"context"
	"net/http"

	"github.com/vortexdb/vortex-go/pkg/api"
)

// CreateTable creates a table from the given schema. The schema is validated
// locally before any network call; see api.CreateTableArgs.Validate for the
// rules.
func (c *Client) CreateTable(ctx context.Context, args *api.CreateTableArgs, opts ...CreateOption) error {
	if err := args.Validate(); err != nil {
		return err
	}
	o := applyCreateOptions(opts)

	var err error
	if o.ifNotExists {
		err = c.doIdempotent(ctx, http.MethodPost, c.apiPath("table"), "create", args, nil)
		err = swallowCode(err, api.ServerCodeTableAlreadyExist)
	} else {
		err = c.do(ctx, http.MethodPost, c.apiPath("table"), "create", args, nil)
	}
	return err
}

// DropTable drops a table and all its rows and indexes.
func (c *Client) DropTable(ctx context.Context, database, table string, opts ...DropOption) error {
	if database == "" || table == "" {
		return &api.ValidationError{Op: "DropTable", Reason: "database and table must not be empty"}
	}
	o := applyDropOptions(opts)

	args := &api.DropTableArgs{Database: database, Table: table}
	err := c.do(ctx, http.MethodDelete, c.apiPath("table"), "", args, nil)
	if o.ignoreMissing {
		err = swallowCode(err, api.ServerCodeTableNotExist)
	}
	return err
}

// ListTables returns the names of all tables in a database.
func (c *Client) ListTables(ctx context.Context, database string) ([]string, error) {
	if database == "" {
		return nil, &api.ValidationError{Op: "ListTables", Reason: "database must not be empty"}
	}
	args := &api.ListTablesArgs{Database: database}
	var resp api.ListTablesResponse
	if err := c.doIdempotent(ctx, http.MethodPost, c.apiPath("table"), "list", args, &resp); err != nil {
		return nil, err
	}
	return resp.Tables, nil
}

// HasTable reports whether a table exists in the database.
func (c *Client) HasTable(ctx context.Context, database, table string) (bool, error) {
	names, err := c.ListTables(ctx, database)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if name == table {
			return true, nil
		}
	}
	return false, nil
}

// DescribeTable returns the full description of a table, including its
// state, schema, and aliases.
func (c *Client) DescribeTable(ctx context.Context, database, table string) (*api.TableDescription, error) {
	if database == "" || table == "" {
		return nil, &api.ValidationError{Op: "DescribeTable", Reason: "database and table must not be empty"}
	}
	args := &api.DescribeTableArgs{Database: database, Table: table}
	var resp api.DescribeTableResponse
	if err := c.doIdempotent(ctx, http.MethodPost, c.apiPath("table"), "desc", args, &resp); err != nil {
		return nil, err
	}
	return &resp.Table, nil
}

// AddFields appends scalar fields to an existing table. New fields must not
// be primary or partition keys.
func (c *Client) AddFields(ctx context.Context, args *api.AddFieldsArgs) error {
	if args.Database == "" || args.Table == "" {
		return &api.ValidationError{Op: "AddFields", Reason: "database and table must not be empty"}
	}
	if len(args.Schema.Fields) == 0 {
		return &api.ValidationError{Op: "AddFields", Reason: "at least one field is required"}
	}
	for _, f := range args.Schema.Fields {
		if f.PrimaryKey || f.PartitionKey {
			return &api.ValidationError{Op: "AddFields", Reason: "added fields must not be primary or partition keys"}
		}
	}
	return c.do(ctx, http.MethodPost, c.apiPath("table"), "addField", args, nil)
}

// TableStats returns row and memory statistics for a table.
func (c *Client) TableStats(ctx context.Context, database, table string) (*api.TableStatsResponse, error) {
	if database == "" || table == "" {
		return nil, &api.ValidationError{Op: "TableStats", Reason: "database and table must not be empty"}
	}
	args := &api.TableStatsArgs{Database: database, Table: table}
	var resp api.TableStatsResponse
	if err := c.doIdempotent(ctx, http.MethodPost, c.apiPath("table"), "stats", args, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AliasTable binds an alias to a table. Re-binding an existing alias points
// it at the new table.
func (c *Client) AliasTable(ctx context.Context, database, table, alias string) error {
	if database == "" || table == "" || alias == "" {
		return &api.ValidationError{Op: "AliasTable", Reason: "database, table and alias must not be empty"}
	}
	args := &api.AliasTableArgs{Database: database, Table: table, Alias: alias}
	return c.doIdempotent(ctx, http.MethodPost, c.apiPath("table"), "alias", args, nil)
}

// UnaliasTable removes an alias from a table.
func (c *Client) UnaliasTable(ctx context.Context, database, table, alias string) error {
	if database == "" || table == "" || alias == "" {
		return &api.ValidationError{Op: "UnaliasTable", Reason: "database, table and alias must not be empty"}
	}
	args := &api.UnaliasTableArgs{Database: database, Table: table, Alias: alias}
	return c.doIdempotent(ctx, http.MethodPost, c.apiPath("table"), "unalias", args, nil)
}
