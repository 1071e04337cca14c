package vortex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vortexdb/vortex-go/pkg/api"
)

// fakeService records requests and serves canned responses keyed by
// "METHOD path?query".
type fakeService struct {
	mu       sync.Mutex
	requests []recordedRequest
	handlers map[string]http.HandlerFunc
	srv      *httptest.Server
}

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()
	f := &fakeService{handlers: map[string]http.HandlerFunc{}}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: body,
		})
		h := f.handlers[r.Method+" "+r.URL.Path+"?"+r.URL.RawQuery]
		f.mu.Unlock()
		if h == nil {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":2,"msg":"no handler"}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeService) on(key string, h http.HandlerFunc) {
	f.mu.Lock()
	f.handlers[key] = h
	f.mu.Unlock()
}

func (f *fakeService) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeService) client(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(NewConfig("tester", "sekret", f.srv.URL).WithMaxRetries(0))
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func respondJSON(code int32, msg string, extra string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := fmt.Sprintf(`{"code":%d,"msg":%q`, code, msg)
		if extra != "" {
			body += "," + extra
		}
		body += "}"
		_, _ = w.Write([]byte(body))
	}
}

func respondError(status int, code int32, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Request-Id", "req-test")
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"code":%d,"msg":%q}`, code, msg)
	}
}

func TestCreateDatabase(t *testing.T) {
	f := newFakeService(t)
	f.on("POST /v1/database?create", respondJSON(0, "Success", ""))

	client := f.client(t)
	require.NoError(t, client.CreateDatabase(context.Background(), "book"))

	f.mu.Lock()
	defer f.mu.Unlock()
	require.Len(t, f.requests, 1)
	assert.JSONEq(t, `{"database":"book"}`, string(f.requests[0].Body))
}

func TestCreateDatabaseConflict(t *testing.T) {
	f := newFakeService(t)
	f.on("POST /v1/database?create", respondError(400, int32(api.ServerCodeDBAlreadyExist), "database already exist"))

	client := f.client(t)
	err := client.CreateDatabase(context.Background(), "book")
	require.Error(t, err)

	serr, ok := AsServiceError(err)
	require.True(t, ok, "expected service error, got %T", err)
	assert.True(t, serr.IsCode(api.ServerCodeDBAlreadyExist))
	assert.Equal(t, "req-test", serr.RequestID)
	assert.Equal(t, 400, serr.HTTPStatus)
}

func TestCreateDatabaseIfNotExists(t *testing.T) {
	f := newFakeService(t)
	f.on("POST /v1/database?create", respondError(400, int32(api.ServerCodeDBAlreadyExist), "database already exist"))

	client := f.client(t)
	err := client.CreateDatabase(context.Background(), "book", WithIfNotExists())
	assert.NoError(t, err, "ALREADY_EXIST must read as success with WithIfNotExists")
}

func TestCreateDatabaseEmptyNameNoNetworkCall(t *testing.T) {
	f := newFakeService(t)
	client := f.client(t)

	err := client.CreateDatabase(context.Background(), "")
	var verr *api.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, f.requestCount())
}

func TestDropDatabaseIgnoreMissing(t *testing.T) {
	f := newFakeService(t)
	f.on("DELETE /v1/database?", respondError(400, int32(api.ServerCodeDBNotExist), "database not exist"))

	client := f.client(t)
	require.Error(t, client.DropDatabase(context.Background(), "book"))
	assert.NoError(t, client.DropDatabase(context.Background(), "book", WithIgnoreMissing()))
}

func TestListAndHasDatabase(t *testing.T) {
	f := newFakeService(t)
	f.on("POST /v1/database?list", respondJSON(0, "Success", `"databases":["book","film"]`))

	client := f.client(t)
	names, err := client.ListDatabases(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"book", "film"}, names)

	ok, err := client.HasDatabase(context.Background(), "film")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.HasDatabase(context.Background(), "music")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateIndexesUnsupportedTypeFailsLocally(t *testing.T) {
	f := newFakeService(t)
	client := f.client(t)

	err := client.CreateIndexes(context.Background(), &api.CreateIndexArgs{
		Database: "book",
		Table:    "chapters",
		Indexes: []api.IndexSchema{{
			IndexName: "vec_idx", IndexType: "IVF_FLAT", MetricType: api.MetricTypeL2, Field: "vector",
		}},
	})
	var verr *api.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, f.requestCount(), "invalid args must not reach the network")
}

func TestSearchRowsPreservesRanking(t *testing.T) {
	f := newFakeService(t)
	f.on("POST /v1/row?search", respondJSON(0, "Success",
		`"rows":[
			{"row":{"id":"r3"},"distance":0.1,"score":0.99},
			{"row":{"id":"r1"},"distance":0.2,"score":0.95},
			{"row":{"id":"r5"},"distance":0.3,"score":0.90},
			{"row":{"id":"r2"},"distance":0.4,"score":0.80},
			{"row":{"id":"r4"},"distance":0.5,"score":0.70}
		]`))

	client := f.client(t)
	resp, err := client.SearchRows(context.Background(), &api.SearchRowsArgs{
		Database: "book",
		Table:    "chapters",
		ANNS: api.AnnsSearchParams{
			VectorField:  "vector",
			VectorFloats: []float64{0.1, 0.2, 0.3},
			Params:       api.HNSWSearchParams{Ef: 200, Limit: 5},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 5)

	wantOrder := []string{"r3", "r1", "r5", "r2", "r4"}
	for i, hit := range resp.Rows {
		var row struct {
			ID string `json:"id"`
		}
		require.NoError(t, hit.DecodeRow(&row))
		assert.Equal(t, wantOrder[i], row.ID, "rank %d", i)
	}
	assert.True(t, sort.SliceIsSorted(resp.Rows, func(i, j int) bool {
		return resp.Rows[i].Distance < resp.Rows[j].Distance
	}), "distances arrive in the service's order")
}

func TestQueryRowDecode(t *testing.T) {
	f := newFakeService(t)
	f.on("POST /v1/row?query", respondJSON(0, "Success", `"row":{"id":"b1","title":"Dune"}`))

	client := f.client(t)
	resp, err := client.QueryRow(context.Background(), &api.QueryRowArgs{
		Database:   "book",
		Table:      "books",
		PrimaryKey: map[string]any{"id": "b1"},
	})
	require.NoError(t, err)

	var row struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, resp.DecodeRow(&row))
	assert.Equal(t, "Dune", row.Title)
}

func TestInsertRowsAffectedCount(t *testing.T) {
	f := newFakeService(t)
	f.on("POST /v1/row?insert", respondJSON(0, "Success", `"affectedCount":2`))

	client := f.client(t)
	n, err := client.InsertRows(context.Background(), &api.InsertRowsArgs{
		Database: "book",
		Table:    "books",
		Rows:     []any{map[string]any{"id": "b1"}, map[string]any{"id": "b2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2), n)
}

func TestInsertRowsBatchLimit(t *testing.T) {
	f := newFakeService(t)
	client := f.client(t)

	rows := make([]any, api.MaxRowsPerBatch+1)
	for i := range rows {
		rows[i] = map[string]any{"id": i}
	}
	_, err := client.InsertRows(context.Background(), &api.InsertRowsArgs{
		Database: "book", Table: "books", Rows: rows,
	})
	var verr *api.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, f.requestCount())
}

func TestUpsertInBatches(t *testing.T) {
	f := newFakeService(t)
	var batchSizes sync.Map
	var seq atomic.Int32
	f.on("POST /v1/row?upsert", func(w http.ResponseWriter, r *http.Request) {
		var args api.UpsertRowsArgs
		_ = json.NewDecoder(r.Body).Decode(&args)
		batchSizes.Store(seq.Add(1), len(args.Rows))
		fmt.Fprintf(w, `{"code":0,"msg":"Success","affectedCount":%d}`, len(args.Rows))
	})

	client := f.client(t)
	rows := make([]any, 2500)
	for i := range rows {
		rows[i] = map[string]any{"id": i}
	}
	total, err := client.UpsertInBatches(context.Background(), "book", "books", rows, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(2500), total)

	var sizes []int
	batchSizes.Range(func(_, v any) bool {
		sizes = append(sizes, v.(int))
		return true
	})
	sort.Ints(sizes)
	assert.Equal(t, []int{500, 1000, 1000}, sizes)
}

func TestSelectRowsPagination(t *testing.T) {
	f := newFakeService(t)
	f.on("POST /v1/row?select", respondJSON(0, "Success",
		`"rows":[{"id":"b1"},{"id":"b2"}],"isTruncated":true,"nextMarker":{"id":"b2"}`))

	client := f.client(t)
	resp, err := client.SelectRows(context.Background(), &api.SelectRowsArgs{
		Database: "book", Table: "books", Filter: "year > 1960", Limit: 2,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsTruncated)
	require.NotNil(t, resp.NextMarker)

	var rows []struct {
		ID string `json:"id"`
	}
	require.NoError(t, resp.DecodeRows(&rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "b1", rows[0].ID)
}

func TestBatchSearchRows(t *testing.T) {
	f := newFakeService(t)
	f.on("POST /v1/row?batchSearch", respondJSON(0, "Success",
		`"results":[
			{"searchVectorFloats":[0.1,0.2],"rows":[{"row":{"id":"a"},"distance":0.1,"score":0.9}]},
			{"searchVectorFloats":[0.3,0.4],"rows":[{"row":{"id":"b"},"distance":0.2,"score":0.8}]}
		]`))

	client := f.client(t)
	resp, err := client.BatchSearchRows(context.Background(), &api.BatchSearchRowsArgs{
		Database: "book",
		Table:    "chapters",
		ANNS: api.BatchAnnsSearchParams{
			VectorField:  "vector",
			VectorFloats: [][]float64{{0.1, 0.2}, {0.3, 0.4}},
			Params:       api.HNSWSearchParams{Ef: 100, Limit: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, []float64{0.1, 0.2}, resp.Results[0].SearchVectorFloats)
}

func TestTableOperations(t *testing.T) {
	f := newFakeService(t)
	f.on("POST /v1/table?list", respondJSON(0, "Success", `"tables":["books"]`))
	f.on("POST /v1/table?stats", respondJSON(0, "Success", `"rowCount":42,"memorySizeInByte":1024,"diskSizeInByte":4096`))
	f.on("POST /v1/table?alias", respondJSON(0, "Success", ""))

	client := f.client(t)

	tables, err := client.ListTables(context.Background(), "book")
	require.NoError(t, err)
	assert.Equal(t, []string{"books"}, tables)

	ok, err := client.HasTable(context.Background(), "book", "books")
	require.NoError(t, err)
	assert.True(t, ok)

	stats, err := client.TableStats(context.Background(), "book", "books")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), stats.RowCount)

	require.NoError(t, client.AliasTable(context.Background(), "book", "books", "current"))
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  *Config
		kind ConfigErrorKind
	}{
		{"missing account", NewConfig("", "key", "http://localhost:5287"), MissingField},
		{"missing api key", NewConfig("acct", "", "http://localhost:5287"), MissingField},
		{"missing endpoint", NewConfig("acct", "key", ""), MissingField},
		{"garbage endpoint", NewConfig("acct", "key", "http://\x7f"), InvalidEndpoint},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewClient(tc.cfg)
			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tc.kind, cerr.Kind)
		})
	}
}

func TestConfigEndpointNormalization(t *testing.T) {
	cfg := NewConfig("acct", "key", "127.0.0.1:5287")
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://127.0.0.1:5287", cfg.Endpoint)

	cfg = NewConfig("acct", "key", "https://vortex.example.com/")
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://vortex.example.com", cfg.Endpoint)
}

func TestConfigDefaults(t *testing.T) {
	cfg := NewConfig("acct", "key", "http://localhost:5287")
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, DefaultConnectTimeout, cfg.ConnectTimeout)
	assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, DefaultBackoffBase, cfg.BackoffBase)
	assert.Equal(t, DefaultBackoffMultiplier, cfg.BackoffMultiplier)
	assert.Equal(t, DefaultBackoffMaxDelay, cfg.BackoffMaxDelay)
	assert.Equal(t, DefaultRetryStatuses(), cfg.RetryStatuses)
	assert.Equal(t, "v1", cfg.APIVersion)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
}

func TestConfigRetriesDisabled(t *testing.T) {
	cfg := NewConfig("acct", "key", "http://localhost:5287").WithMaxRetries(0)
	require.NoError(t, cfg.Validate())
	assert.Zero(t, cfg.MaxRetries)
}

func TestConfigBuilderHelpers(t *testing.T) {
	cfg := NewConfig("acct", "key", "http://localhost:5287").
		WithRequestTimeout(5 * time.Second).
		WithConnectTimeout(time.Second).
		WithOverallTimeout(time.Minute).
		WithMaxRetries(7).
		WithBackoff(50*time.Millisecond, 3.0, 2*time.Second).
		WithRetryStatuses(502, 503)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.OverallTimeout)
	assert.Equal(t, 7, cfg.MaxRetries)
	assert.Equal(t, 3.0, cfg.BackoffMultiplier)
	assert.Equal(t, []int{502, 503}, cfg.RetryStatuses)
}

func TestCredentialsRedacted(t *testing.T) {
	creds, err := NewCredentials("tester", "sekret")
	require.NoError(t, err)

	for _, formatted := range []string{
		fmt.Sprintf("%v", creds),
		fmt.Sprintf("%s", creds),
		fmt.Sprintf("%#v", creds),
	} {
		assert.NotContains(t, formatted, "sekret")
		assert.Contains(t, formatted, "tester")
	}
}

func TestValidationBeforeNetwork(t *testing.T) {
	f := newFakeService(t)
	client := f.client(t)
	ctx := context.Background()

	calls := []func() error{
		func() error { return client.DropTable(ctx, "", "books") },
		func() error { _, err := client.ListTables(ctx, ""); return err },
		func() error { _, err := client.DescribeTable(ctx, "book", ""); return err },
		func() error { return client.UpdateRow(ctx, &api.UpdateRowArgs{Database: "book", Table: "books"}) },
		func() error { return client.DeleteRows(ctx, &api.DeleteRowsArgs{Database: "book", Table: "books"}) },
		func() error {
			_, err := client.SearchRows(ctx, &api.SearchRowsArgs{Database: "book", Table: "books"})
			return err
		},
		func() error { return client.RebuildIndex(ctx, "book", "books", "") },
	}
	for i, call := range calls {
		err := call()
		var verr *api.ValidationError
		assert.ErrorAs(t, err, &verr, "call %d", i)
	}
	assert.Zero(t, f.requestCount())
}
