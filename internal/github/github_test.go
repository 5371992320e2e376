package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoSlug(t *testing.T) {
	tests := map[string]struct {
		url     string
		want    string
		wantErr bool
	}{
		"plain":          {url: "https://github.com/dhenkel/clog", want: "dhenkel/clog"},
		"trailing slash": {url: "https://github.com/dhenkel/clog/", want: "dhenkel/clog"},
		"dotted name":    {url: "https://github.com/foo/bar.baz", want: "foo/bar.baz"},
		"not github":     {url: "https://gitlab.com/foo/bar", wantErr: true},
		"extra path":     {url: "https://github.com/foo/bar/pulls", wantErr: true},
		"empty":          {url: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := RepoSlug(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenPRs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/dhenkel/clog/pulls", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("state"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		switch page {
		case 1:
			fmt.Fprint(w, `[{"number": 12}, {"number": 15}]`)
		default:
			fmt.Fprint(w, `[]`)
		}
	}))
	defer srv.Close()

	c := NewClient("")
	c.APIBase = srv.URL

	set, err := c.OpenPRs(context.Background(), "https://github.com/dhenkel/clog")
	require.NoError(t, err)
	assert.True(t, set.Contains(12))
	assert.True(t, set.Contains(15))
	assert.False(t, set.Contains(13))
	assert.Equal(t, 15, set.Max())
}

func TestOpenPRs_TokenHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := NewClient("sekrit")
	c.APIBase = srv.URL

	_, err := c.OpenPRs(context.Background(), "https://github.com/dhenkel/clog")
	require.NoError(t, err)
}

func TestOpenPRs_Errors(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		c := NewClient("")
		c.APIBase = srv.URL

		_, err := c.OpenPRs(context.Background(), "https://github.com/dhenkel/clog")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("bad repository url", func(t *testing.T) {
		c := NewClient("")
		_, err := c.OpenPRs(context.Background(), "not-a-url")
		require.Error(t, err)
	})

	t.Run("garbage body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not json`)
		}))
		defer srv.Close()

		c := NewClient("")
		c.APIBase = srv.URL

		_, err := c.OpenPRs(context.Background(), "https://github.com/dhenkel/clog")
		require.Error(t, err)
	})
}

func TestOpenPRSet_NilSafe(t *testing.T) {
	var s OpenPRSet
	assert.False(t, s.Contains(1))
	assert.Equal(t, 0, s.Max())
}
