package vortex

import (
	"context"
	"net/http"

	"github.com/vortexdb/vortex-go/pkg/api"
)

// InsertRows writes new rows and fails on primary-key conflicts. Inserts are
// not idempotent and are never retried; use UpsertRows when retries matter.
// Returns the number of rows the service wrote.
func (c *Client) InsertRows(ctx context.Context, args *api.InsertRowsArgs) (int32, error) {
	if err := args.Validate(); err != nil {
		return 0, err
	}
	var resp api.InsertRowsResponse
	if err := c.do(ctx, http.MethodPost, c.apiPath("row"), "insert", args, &resp); err != nil {
		return 0, err
	}
	return resp.AffectedCount, nil
}

// UpsertRows writes rows, overwriting existing rows with the same primary
// key. Overwriting makes the operation safe to retry.
func (c *Client) UpsertRows(ctx context.Context, args *api.UpsertRowsArgs) (int32, error) {
	if err := args.Validate(); err != nil {
		return 0, err
	}
	var resp api.UpsertRowsResponse
	if err := c.doIdempotent(ctx, http.MethodPost, c.apiPath("row"), "upsert", args, &resp); err != nil {
		return 0, err
	}
	return resp.AffectedCount, nil
}

// UpdateRow updates scalar fields of one row addressed by primary key.
// Not retried: a concurrent writer could interleave between attempts.
func (c *Client) UpdateRow(ctx context.Context, args *api.UpdateRowArgs) error {
	if args.Database == "" || args.Table == "" {
		return &api.ValidationError{Op: "UpdateRow", Reason: "database and table must not be empty"}
	}
	if len(args.PrimaryKey) == 0 {
		return &api.ValidationError{Op: "UpdateRow", Reason: "primaryKey is required"}
	}
	if len(args.Update) == 0 {
		return &api.ValidationError{Op: "UpdateRow", Reason: "update must set at least one field"}
	}
	return c.do(ctx, http.MethodPost, c.apiPath("row"), "update", args, nil)
}

// DeleteRows deletes rows by primary key, filter expression, or both.
// Deleting an already-deleted row is a no-op, so retries are safe.
func (c *Client) DeleteRows(ctx context.Context, args *api.DeleteRowsArgs) error {
	if args.Database == "" || args.Table == "" {
		return &api.ValidationError{Op: "DeleteRows", Reason: "database and table must not be empty"}
	}
	if len(args.PrimaryKey) == 0 && args.Filter == "" {
		return &api.ValidationError{Op: "DeleteRows", Reason: "primaryKey or filter is required"}
	}
	return c.doIdempotent(ctx, http.MethodPost, c.apiPath("row"), "delete", args, nil)
}

// QueryRow reads one row by primary key. Decode the result with
// QueryRowResponse.DecodeRow.
func (c *Client) QueryRow(ctx context.Context, args *api.QueryRowArgs) (*api.QueryRowResponse, error) {
	if args.Database == "" || args.Table == "" {
		return nil, &api.ValidationError{Op: "QueryRow", Reason: "database and table must not be empty"}
	}
	if len(args.PrimaryKey) == 0 {
		return nil, &api.ValidationError{Op: "QueryRow", Reason: "primaryKey is required"}
	}
	var resp api.QueryRowResponse
	if err := c.doIdempotent(ctx, http.MethodPost, c.apiPath("row"), "query", args, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchRows runs an ANN search over a vector index. Hits come back in the
// service's ranking order with distances and scores attached.
func (c *Client) SearchRows(ctx context.Context, args *api.SearchRowsArgs) (*api.SearchRowsResponse, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	var resp api.SearchRowsResponse
	if err := c.doIdempotent(ctx, http.MethodPost, c.apiPath("row"), "search", args, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SelectRows reads one page of rows matching a scalar filter. Pass the
// response's NextMarker as the next request's Marker while IsTruncated is
// set.
func (c *Client) SelectRows(ctx context.Context, args *api.SelectRowsArgs) (*api.SelectRowsResponse, error) {
	if args.Database == "" || args.Table == "" {
		return nil, &api.ValidationError{Op: "SelectRows", Reason: "database and table must not be empty"}
	}
	var resp api.SelectRowsResponse
	if err := c.doIdempotent(ctx, http.MethodPost, c.apiPath("row"), "select", args, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BatchSearchRows runs one ANN search per query vector in a single request.
// Results come back in request order, one result set per vector.
func (c *Client) BatchSearchRows(ctx context.Context, args *api.BatchSearchRowsArgs) (*api.BatchSearchRowsResponse, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	var resp api.BatchSearchRowsResponse
	if err := c.doIdempotent(ctx, http.MethodPost, c.apiPath("row"), "batchSearch", args, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
