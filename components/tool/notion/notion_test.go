package notion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favbox/lfx/components"
)

func TestNewSearchValidation(t *testing.T) {
	ctx := context.Background()

	_, err := NewSearch(ctx, nil)
	assert.True(t, components.IsConfigError(err))

	_, err = NewSearch(ctx, &Config{Token: "  "})
	assert.True(t, components.IsConfigError(err))
	assert.Contains(t, err.Error(), "token")
}

func TestSearchPages(t *testing.T) {
	var gotReq searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pathSearch, r.URL.Path)
		assert.Equal(t, "Bearer ntn-test", r.Header.Get("Authorization"))
		assert.Equal(t, notionVersion, r.Header.Get("Notion-Version"))
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&gotReq))

		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{
					"id":               "page-1",
					"object":           "page",
					"url":              "https://notion.so/page-1",
					"created_time":     "2024-01-02T03:04:05.000Z",
					"last_edited_time": "2024-02-03T04:05:06.000Z",
					"properties": map[string]any{
						"Name": map[string]any{
							"title": []any{
								map[string]any{"plain_text": "Meeting "},
								map[string]any{"plain_text": "Notes"},
							},
						},
					},
				},
				{
					"id":         "db-1",
					"object":     "database",
					"properties": map[string]any{},
				},
			},
		})
	}))
	defer srv.Close()

	s, err := NewSearch(context.Background(), &Config{
		Token:      "ntn-test",
		BaseURL:    srv.URL,
		FilterType: "page",
	})
	require.NoError(t, err)

	results, err := s.SearchPages(context.Background(), "meeting")
	require.NoError(t, err)

	assert.Equal(t, "meeting", gotReq.Query)
	require.NotNil(t, gotReq.Filter)
	assert.Equal(t, "page", gotReq.Filter.Value)
	assert.Equal(t, "object", gotReq.Filter.Property)

	require.Len(t, results, 2)
	assert.Equal(t, "page-1", results[0].Payload["id"])
	assert.Equal(t, "Meeting Notes", results[0].Payload["title"])
	assert.Equal(t, "https://notion.so/page-1", results[0].Payload["url"])
	assert.Equal(t, "", results[1].Payload["title"])
}

func TestInvokableRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"id": "p", "object": "page"}},
		})
	}))
	defer srv.Close()

	s, err := NewSearch(context.Background(), &Config{Token: "ntn-test", BaseURL: srv.URL})
	require.NoError(t, err)

	data, err := s.InvokableRun(context.Background(), `{"query": "roadmap"}`)
	require.NoError(t, err)
	assert.Equal(t, "roadmap", data.Payload["query"])
	assert.Len(t, data.Payload["results"], 1)
}

func TestInvokableRunFailuresReturnData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s, err := NewSearch(context.Background(), &Config{Token: "ntn-bad", BaseURL: srv.URL})
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("空查询", func(t *testing.T) {
		data, err := s.InvokableRun(ctx, `{"query": ""}`)
		require.NoError(t, err)
		assert.Equal(t, "empty query", data.Payload["error"])
	})

	t.Run("非法参数", func(t *testing.T) {
		data, err := s.InvokableRun(ctx, `{broken`)
		require.NoError(t, err)
		assert.Contains(t, data.Payload["error"], "invalid arguments")
	})

	t.Run("接口报错", func(t *testing.T) {
		data, err := s.InvokableRun(ctx, `{"query": "x"}`)
		require.NoError(t, err)
		assert.Contains(t, data.Payload["error"], "401")
	})
}

func TestTitleOf(t *testing.T) {
	assert.Equal(t, "", titleOf(nil))
	assert.Equal(t, "", titleOf(map[string]any{"Status": map[string]any{"select": "done"}}))
	assert.Equal(t, "Hello", titleOf(map[string]any{
		"Name": map[string]any{"title": []any{map[string]any{"plain_text": "Hello"}}},
	}))
}
