package codes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hoyosweep/internal/game"
)

func TestActive(t *testing.T) {
	t.Run("string list shape", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/genshin/active.json", r.URL.Path)
			fmt.Fprint(w, `["GENSHINGIFT","AAAA1111"]`)
		}))
		defer srv.Close()

		f := NewFeed(srv.URL+"/", time.Second, zap.NewNop())
		codes, err := f.Active(context.Background(), game.Genshin)
		require.NoError(t, err)
		assert.Equal(t, []string{"GENSHINGIFT", "AAAA1111"}, codes)
	})

	t.Run("object list shape", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"code":"STARRAILGIFT","rewards":"x"},{"code":""},{"note":"no code key"}]`)
		}))
		defer srv.Close()

		f := NewFeed(srv.URL+"/", time.Second, zap.NewNop())
		codes, err := f.Active(context.Background(), game.StarRail)
		require.NoError(t, err)
		assert.Equal(t, []string{"STARRAILGIFT"}, codes)
	})

	t.Run("missing feed is an error for that game only", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/zzz/active.json" {
				http.NotFound(w, r)
				return
			}
			fmt.Fprint(w, `["OK1"]`)
		}))
		defer srv.Close()

		f := NewFeed(srv.URL+"/", time.Second, zap.NewNop())
		_, err := f.Active(context.Background(), game.ZZZ)
		assert.Error(t, err)

		codes, err := f.Active(context.Background(), game.Genshin)
		require.NoError(t, err)
		assert.Equal(t, []string{"OK1"}, codes)
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"not":"a list"}`)
		}))
		defer srv.Close()

		f := NewFeed(srv.URL+"/", time.Second, zap.NewNop())
		_, err := f.Active(context.Background(), game.Genshin)
		assert.Error(t, err)
	})
}
