package discord

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/handler"
)

func autocompleteInteraction(command, typed string) *discordgo.InteractionCreate {
	i := newInteraction(command, &discordgo.ApplicationCommandInteractionDataOption{
		Name:    OptItem,
		Type:    discordgo.ApplicationCommandOptionString,
		Value:   typed,
		Focused: true,
	})
	i.Type = discordgo.InteractionApplicationCommandAutocomplete
	return i
}

func TestHandleAutocomplete_Search(t *testing.T) {
	ctx := SetupTestContext(t)
	ctx.Mux.HandleFunc("GET /api/v1/items/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ham", r.URL.Query().Get("q"))
		WriteJSON(w, http.StatusOK, handler.SearchResponse{Query: "ham", Matches: []string{"hammer"}})
	})

	HandleAutocomplete(ctx.Session, autocompleteInteraction(CmdItemInfo, "ham"), ctx.APIClient)

	resp := ctx.LastCallback(t)
	assert.Equal(t, discordgo.InteractionApplicationCommandAutocompleteResult, resp.Type)
	require.Len(t, resp.Data.Choices, 1)
	assert.Equal(t, "hammer", resp.Data.Choices[0].Name)
}

func TestHandleAutocomplete_EmptyQueryListsCatalog(t *testing.T) {
	ctx := SetupTestContext(t)
	items := make([]domain.Item, 30)
	for n := range items {
		items[n] = domain.Item{Name: fmt.Sprintf("item %02d", n), Rarity: domain.RarityCommon}
	}
	ctx.Mux.HandleFunc("GET /api/v1/items", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, handler.ItemsResponse{Items: items})
	})

	HandleAutocomplete(ctx.Session, autocompleteInteraction(CmdRemoveItem, ""), ctx.APIClient)

	resp := ctx.LastCallback(t)
	assert.Len(t, resp.Data.Choices, maxAutocompleteChoices)
	assert.Equal(t, "item 00", resp.Data.Choices[0].Name)
}

func TestHandleAutocomplete_IgnoresOtherCommands(t *testing.T) {
	ctx := SetupTestContext(t)
	HandleAutocomplete(ctx.Session, autocompleteInteraction(CmdPull, "x"), ctx.APIClient)
	assert.Empty(t, ctx.Calls())
}
