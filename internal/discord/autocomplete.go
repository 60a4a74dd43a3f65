package discord

import (
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// itemAutocompleteCommands take an autocompleted item option
var itemAutocompleteCommands = map[string]bool{
	CmdItemInfo:            true,
	CmdRemoveItem:          true,
	CmdEditItemRarity:      true,
	CmdEditItemDescription: true,
	CmdEditItemImage:       true,
	CmdAdminGiveItem:       true,
}

// HandleAutocomplete routes autocomplete interactions to the appropriate handler
func HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	data := i.ApplicationCommandData()
	if !itemAutocompleteCommands[data.Name] {
		slog.Warn("Unhandled autocomplete command", "command", data.Name)
		return
	}

	choices := itemChoices(client, focusedValue(data.Options))
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	}); err != nil {
		slog.Warn("Failed to send autocomplete", "error", err)
	}
}

func focusedValue(opts []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, opt := range opts {
		if opt.Focused {
			return strings.TrimSpace(opt.StringValue())
		}
	}
	return ""
}

// itemChoices ranks catalog names against the typed prefix using the API's
// fuzzy search; an empty query lists the catalog in order.
func itemChoices(client *APIClient, query string) []*discordgo.ApplicationCommandOptionChoice {
	var names []string
	if query == "" {
		items, err := client.ListItems()
		if err != nil {
			slog.Error("Failed to list items for autocomplete", "error", err)
		}
		for _, it := range items {
			names = append(names, it.Name)
		}
	} else {
		matches, err := client.SearchItems(query)
		if err != nil {
			slog.Error("Failed to search items for autocomplete", "error", err)
		}
		names = matches
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, min(len(names), maxAutocompleteChoices))
	for _, name := range names {
		if len(choices) == maxAutocompleteChoices {
			break
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
	}
	return choices
}
