package fetchgh

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/evalcorpus/corpus"
)

type fakeRepo struct {
	FullName    string   `json:"full_name"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

func makeFakeRepo(owner, name, desc string, topics ...string) fakeRepo {
	r := fakeRepo{
		FullName:    owner + "/" + name,
		Name:        name,
		Description: desc,
		Topics:      topics,
	}
	r.Owner.Login = owner
	return r
}

// fakeGitHub serves the two endpoints the client touches: repository
// search (paginated via Link headers) and per-repo readme.
func fakeGitHub(t *testing.T, pages [][]fakeRepo, readmes map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	total := 0
	for _, p := range pages {
		total += len(p)
	}

	mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			fmt.Sscanf(p, "%d", &page)
		}
		require.LessOrEqual(t, page, len(pages), "requested page beyond fixture")

		if page < len(pages) {
			next := fmt.Sprintf(`<%s?page=%d>; rel="next"`, "http://"+r.Host+r.URL.Path, page+1)
			w.Header().Set("Link", next)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"total_count":        total,
			"incomplete_results": false,
			"items":              pages[page-1],
		})
	})

	mux.HandleFunc("/repos/", func(w http.ResponseWriter, r *http.Request) {
		repo := r.URL.Path[len("/repos/"):]
		repo = repo[:len(repo)-len("/readme")]
		body, ok := readmes[repo]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"type":     "file",
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString([]byte(body)),
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testClient(t *testing.T, srv *httptest.Server, opts Options) *Client {
	t.Helper()
	gh := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = base
	return NewWithClient(gh, opts)
}

func TestSearchRepositories_MapsRepoToItem(t *testing.T) {
	srv := fakeGitHub(t, [][]fakeRepo{{
		makeFakeRepo("consul", "registry", "Service registry with health checking.", "discovery", "raft"),
	}}, nil)
	c := testClient(t, srv, Options{})

	items, err := c.SearchRepositories(context.Background(), "service discovery", 10)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "consul/registry", items[0].ID)
	assert.Equal(t, "consul", items[0].Category)
	assert.Equal(t, "Service registry with health checking.", items[0].Description)
	assert.Equal(t, []string{"discovery", "raft"}, items[0].Tags)
	assert.Empty(t, items[0].Body)
}

func TestSearchRepositories_Paginates(t *testing.T) {
	pages := [][]fakeRepo{
		{makeFakeRepo("a", "one", "first page repo"), makeFakeRepo("b", "two", "first page repo")},
		{makeFakeRepo("c", "three", "second page repo")},
	}
	srv := fakeGitHub(t, pages, nil)
	c := testClient(t, srv, Options{})

	items, err := c.SearchRepositories(context.Background(), "anything", 10)

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "c/three", items[2].ID)
}

func TestSearchRepositories_StopsAtMax(t *testing.T) {
	pages := [][]fakeRepo{
		{makeFakeRepo("a", "one", "x"), makeFakeRepo("b", "two", "x"), makeFakeRepo("c", "three", "x")},
	}
	srv := fakeGitHub(t, pages, nil)
	c := testClient(t, srv, Options{})

	items, err := c.SearchRepositories(context.Background(), "anything", 2)

	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSearchRepositories_FetchesReadmes(t *testing.T) {
	srv := fakeGitHub(t,
		[][]fakeRepo{{
			makeFakeRepo("a", "one", "has a readme"),
			makeFakeRepo("b", "two", "readme missing"),
		}},
		map[string]string{"a/one": "# one\n\nLong form documentation body."},
	)
	c := testClient(t, srv, Options{FetchReadmes: true})

	items, err := c.SearchRepositories(context.Background(), "anything", 10)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "# one\n\nLong form documentation body.", items[0].Body)
	assert.Empty(t, items[1].Body)
}

func TestSearchRepositories_ContextCancelled(t *testing.T) {
	srv := fakeGitHub(t, [][]fakeRepo{{makeFakeRepo("a", "one", "x")}}, nil)
	c := testClient(t, srv, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SearchRepositories(ctx, "anything", 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteItems_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	items := []corpus.Item{
		{ID: "a/one", Category: "a", Description: "first fetched repository", Tags: []string{"x"}},
		{ID: "b/two", Category: "b", Description: "second fetched repository"},
	}

	require.NoError(t, WriteItems(path, items))

	loaded, err := corpus.Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "a/one", loaded[0].ID)
	assert.Equal(t, []string{"x"}, loaded[0].Tags)
}
