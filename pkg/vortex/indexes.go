package vortex

import (
	"context"
	"net/http"

	"github.com/vortexdb/vortex-go/pkg/api"
)

// CreateIndexes adds one or more indexes to an existing table. Index and
// metric types are checked locally; an unsupported type fails before any
// network call.
func (c *Client) CreateIndexes(ctx context.Context, args *api.CreateIndexArgs, opts ...CreateOption) error {
	if err := args.Validate(); err != nil {
		return err
	}
	o := applyCreateOptions(opts)

	var err error
	if o.ifNotExists {
		err = c.doIdempotent(ctx, http.MethodPost, c.apiPath("index"), "create", args, nil)
		err = swallowCode(err, api.ServerCodeIndexAlreadyExist)
	} else {
		err = c.do(ctx, http.MethodPost, c.apiPath("index"), "create", args, nil)
	}
	return err
}

// DescribeIndex returns the schema and build state of one index.
func (c *Client) DescribeIndex(ctx context.Context, database, table, indexName string) (*api.IndexSchema, error) {
	if database == "" || table == "" || indexName == "" {
		return nil, &api.ValidationError{Op: "DescribeIndex", Reason: "database, table and indexName must not be empty"}
	}
	args := &api.DescribeIndexArgs{Database: database, Table: table, IndexName: indexName}
	var resp api.DescribeIndexResponse
	if err := c.doIdempotent(ctx, http.MethodPost, c.apiPath("index"), "desc", args, &resp); err != nil {
		return nil, err
	}
	return &resp.Index, nil
}

// RebuildIndex triggers a rebuild of a vector index. The rebuild runs
// asynchronously; poll DescribeIndex for the state.
func (c *Client) RebuildIndex(ctx context.Context, database, table, indexName string) error {
	if database == "" || table == "" || indexName == "" {
		return &api.ValidationError{Op: "RebuildIndex", Reason: "database, table and indexName must not be empty"}
	}
	args := &api.RebuildIndexArgs{Database: database, Table: table, IndexName: indexName}
	return c.doIdempotent(ctx, http.MethodPost, c.apiPath("index"), "rebuild", args, nil)
}

// ModifyIndex updates the auto-build attributes of a vector index. All
// other index attributes are immutable after creation.
func (c *Client) ModifyIndex(ctx context.Context, args *api.ModifyIndexArgs) error {
	if args.Database == "" || args.Table == "" {
		return &api.ValidationError{Op: "ModifyIndex", Reason: "database and table must not be empty"}
	}
	if args.Index.IndexName == "" {
		return &api.ValidationError{Op: "ModifyIndex", Reason: "indexName is required"}
	}
	return c.doIdempotent(ctx, http.MethodPost, c.apiPath("index"), "modify", args, nil)
}

// DropIndex removes an index from a table.
func (c *Client) DropIndex(ctx context.Context, database, table, indexName string, opts ...DropOption) error {
	if database == "" || table == "" || indexName == "" {
		return &api.ValidationError{Op: "DropIndex", Reason: "database, table and indexName must not be empty"}
	}
	o := applyDropOptions(opts)

	args := &api.DropIndexArgs{Database: database, Table: table, IndexName: indexName}
	err := c.do(ctx, http.MethodDelete, c.apiPath("index"), "", args, nil)
	if o.ignoreMissing {
		err = swallowCode(err, api.ServerCodeIndexNotExist)
	}
	return err
}
