package vortex

import (
	"context"
	"net/http"

	"github.com/vortexdb/vortex-go/pkg/api"
)

// CreateDatabase creates a database. The name must be unique within the
// account; a conflict surfaces as *api.ServiceError with code
// ServerCodeDBAlreadyExist unless WithIfNotExists is given.
func (c *Client) CreateDatabase(ctx context.Context, database string, opts ...CreateOption) error {
	if database == "" {
		return &api.ValidationError{Op: "CreateDatabase", Reason: "database must not be empty"}
	}
	o := applyCreateOptions(opts)

	args := &api.CreateDatabaseArgs{Database: database}
	var err error
	if o.ifNotExists {
		err = c.doIdempotent(ctx, http.MethodPost, c.apiPath("database"), "create", args, nil)
		err = swallowCode(err, api.ServerCodeDBAlreadyExist)
	} else {
		err = c.do(ctx, http.MethodPost, c.apiPath("database"), "create", args, nil)
	}
	return err
}

// DropDatabase drops a database. All tables in it must be dropped first.
func (c *Client) DropDatabase(ctx context.Context, database string, opts ...DropOption) error {
	if database == "" {
		return &api.ValidationError{Op: "DropDatabase", Reason: "database must not be empty"}
	}
	o := applyDropOptions(opts)

	args := &api.DropDatabaseArgs{Database: database}
	err := c.do(ctx, http.MethodDelete, c.apiPath("database"), "", args, nil)
	if o.ignoreMissing {
		err = swallowCode(err, api.ServerCodeDBNotExist)
	}
	return err
}

// ListDatabases returns the names of all databases in the account.
func (c *Client) ListDatabases(ctx context.Context) ([]string, error) {
	var resp api.ListDatabasesResponse
	if err := c.doIdempotent(ctx, http.MethodPost, c.apiPath("database"), "list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Databases, nil
}

// HasDatabase reports whether a database with the given name exists.
func (c *Client) HasDatabase(ctx context.Context, database string) (bool, error) {
	names, err := c.ListDatabases(ctx)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if name == database {
			return true, nil
		}
	}
	return false, nil
}
