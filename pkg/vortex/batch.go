package vortex

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/vortexdb/vortex-go/pkg/api"
)

// UpsertInBatches splits rows into chunks of at most api.MaxRowsPerBatch and
// upserts them with at most concurrency requests in flight. Chunks are
// independent on the service side, so they run in any order; the returned
// count sums the affected counts of the chunks that completed. On error the
// remaining chunks are cancelled and the first error is returned.
func (c *Client) UpsertInBatches(ctx context.Context, database, table string, rows []any, concurrency int) (int32, error) {
	if err := (&api.UpsertRowsArgs{Database: database, Table: table, Rows: clampBatch(rows)}).Validate(); err != nil {
		return 0, err
	}
	if concurrency < 1 {
		concurrency = 1
	}

	var total atomic.Int32
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for start := 0; start < len(rows); start += api.MaxRowsPerBatch {
		end := min(start+api.MaxRowsPerBatch, len(rows))
		chunk := rows[start:end]
		g.Go(func() error {
			n, err := c.UpsertRows(ctx, &api.UpsertRowsArgs{
				Database: database,
				Table:    table,
				Rows:     chunk,
			})
			if err != nil {
				return err
			}
			total.Add(n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return total.Load(), err
	}
	return total.Load(), nil
}

// clampBatch caps the slice so batch validation checks emptiness, not the
// per-request limit the chunking itself enforces.
func clampBatch(rows []any) []any {
	if len(rows) > api.MaxRowsPerBatch {
		return rows[:api.MaxRowsPerBatch]
	}
	return rows
}
