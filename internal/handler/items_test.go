package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TactasRNG_Go/internal/domain"
)

func TestItemRoutes(t *testing.T) {
	env := newTestEnv(t,
		domain.Item{Name: "laser pointer", Rarity: domain.RarityCommon},
		domain.Item{Name: "pocket watch", Rarity: domain.RarityDivine},
	)

	t.Run("list", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/items", nil)
		require.Equal(t, http.StatusOK, w.Code)
		res := decode[ItemsResponse](t, w)
		require.Len(t, res.Items, 2)
		assert.Equal(t, "laser pointer", res.Items[0].Name)
	})

	t.Run("get is case-insensitive and unescapes", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/items/Pocket%20Watch", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.RarityDivine, decode[domain.Item](t, w).Rarity)
	})

	t.Run("unknown item suggests names", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/items/pckt", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		res := decode[ErrorResponse](t, w)
		assert.Equal(t, ErrMsgItemNotFoundError, res.Error)
		assert.Contains(t, res.Suggestions, "pocket watch")
	})

	t.Run("search", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/items/search?q=lsr", nil)
		require.Equal(t, http.StatusOK, w.Code)
		res := decode[SearchResponse](t, w)
		assert.Equal(t, []string{"laser pointer"}, res.Matches)

		w = env.do(t, http.MethodGet, "/items/search", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestItemRoutes_EscapedNames(t *testing.T) {
	names := []string{"100% juice", "a%41", "left/right"}
	env := newTestEnv(t)
	for _, name := range names {
		w := env.do(t, http.MethodPost, "/admin/items", AddItemRequest{Name: name, Rarity: "rare"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			escaped := url.PathEscape(name)

			w := env.do(t, http.MethodGet, "/items/"+escaped, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, name, decode[domain.Item](t, w).Name)

			w = env.do(t, http.MethodPut, "/admin/items/"+escaped+"/rarity", SetRarityRequest{Rarity: "legendary"})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			w = env.do(t, http.MethodGet, "/items/"+escaped, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, domain.RarityLegendary, decode[domain.Item](t, w).Rarity)

			w = env.do(t, http.MethodDelete, "/admin/items/"+escaped, nil)
			require.Equal(t, http.StatusOK, w.Code)
			w = env.do(t, http.MethodGet, "/items/"+escaped, nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}
