package odata

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"odatatable/internal/model"
	"odatatable/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `{
  "@odata.context": "http://example.com/$metadata#People",
  "@odata.count": 20,
  "value": [
    {"UserName": "russellwhyte", "FirstName": "Russell", "LastName": "Whyte", "MiddleName": null, "Gender": "Male", "Age": null},
    {"UserName": "scottketchum", "FirstName": "Scott", "LastName": "Ketchum", "Gender": "Male", "Age": 34}
  ]
}`

func TestFetchPeopleDecodesPage(t *testing.T) {
	var gotQuery string
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/People", time.Second, nil)
	assert.Equal(t, srv.URL+"/People", client.Endpoint())
	req := query.Build(
		model.PageState{CurrentPage: 2, ItemsPerPage: 5},
		[]model.SortCriterion{{Field: model.FieldAge, Direction: model.DirectionDesc}},
		nil,
	)

	page, err := client.FetchPeople(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 20, page.Count)
	require.Len(t, page.Value, 2)
	assert.Equal(t, "russellwhyte", page.Value[0].UserName)
	assert.Empty(t, page.Value[0].MiddleName)
	assert.Nil(t, page.Value[0].Age)
	require.NotNil(t, page.Value[1].Age)
	assert.Equal(t, int64(34), *page.Value[1].Age)

	assert.Equal(t, req.Encode(), gotQuery)
	assert.Equal(t, "application/json", gotHeaders.Get("Accept"))
	assert.NotEmpty(t, gotHeaders.Get("X-Request-ID"))
}

func TestFetchPeopleIssuesSingleRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	_, err := client.FetchPeople(context.Background(), query.Build(model.PageState{CurrentPage: 1, ItemsPerPage: 10}, nil, nil))

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchPeopleMissingCountAndValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	page, err := NewClient(srv.URL, time.Second, nil).
		FetchPeople(context.Background(), query.Build(model.PageState{CurrentPage: 1, ItemsPerPage: 10}, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 0, page.Count)
	assert.NotNil(t, page.Value)
	assert.Empty(t, page.Value)
}

func TestFetchPeopleBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"value": [`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, nil).
		FetchPeople(context.Background(), query.Build(model.PageState{CurrentPage: 1, ItemsPerPage: 10}, nil, nil))
	assert.ErrorContains(t, err, "JSON decode error")
}

func TestFetchPeopleCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, time.Second, nil).
		FetchPeople(ctx, query.Build(model.PageState{CurrentPage: 1, ItemsPerPage: 10}, nil, nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchPeopleLogging(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	req := query.Build(model.PageState{CurrentPage: 1, ItemsPerPage: 10}, nil, nil)

	t.Run("Cancelled requests are not errors", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewClient(srv.URL, time.Second, logger).FetchPeople(ctx, req)
		require.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, buf.String(), "fetch cancelled")
		assert.NotContains(t, buf.String(), "level=ERROR")
	})

	t.Run("Server failures are errors", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		_, err := NewClient(srv.URL, time.Second, logger).FetchPeople(context.Background(), req)
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "fetch failed")
	})
}
