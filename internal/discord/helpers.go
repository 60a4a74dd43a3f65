package discord

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/TactasRNG_Go/internal/domain"
)

// deferResponse acknowledges an interaction with a deferred message.
// Required before any API call that might take longer than 3 seconds.
// Returns false if deferral failed (should return early from handler).
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// respondError edits the deferred response with a plain message
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

// respondEphemeral answers immediately with a message only the caller sees
func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		slog.Error("Failed to send ephemeral response", "error", err)
	}
}

// respondFriendlyError logs err and edits the deferred response with a readable message
func respondFriendlyError(s *discordgo.Session, i *discordgo.InteractionCreate, op string, err error) {
	slog.Error("Command failed", "command", op, "error", err)
	respondError(s, i, formatFriendlyError(err))
}

// formatFriendlyError maps API failures to player-facing messages
func formatFriendlyError(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return MsgServerError
	}

	switch apiErr.Status {
	case http.StatusNotFound:
		if strings.Contains(strings.ToLower(apiErr.Message), domain.ErrMsgUserNotFound) {
			return MsgUserNotFound
		}
		msg := MsgItemNotFound
		if len(apiErr.Suggestions) > 0 {
			msg += "\n" + fmt.Sprintf(MsgDidYouMean, "**"+strings.Join(apiErr.Suggestions, "**, **")+"**")
		}
		return msg
	case http.StatusConflict:
		if strings.Contains(strings.ToLower(apiErr.Message), "claimed") {
			return MsgAlreadyClaimed
		}
		return MsgDuplicateItem
	case http.StatusBadRequest:
		if strings.Contains(strings.ToLower(apiErr.Message), "no items") {
			return MsgEmptyCatalog
		}
		return "⚠️ " + apiErr.Message
	case http.StatusUnauthorized, http.StatusForbidden:
		return MsgServerError
	}
	return MsgGenericError
}

// sendEmbed edits the deferred response with an embed
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error("Failed to send response", "error", err)
	}
}

// createEmbed creates a standard embed; an empty footer defaults to FooterBot
func createEmbed(title, description string, color int, footerText string) *discordgo.MessageEmbed {
	if footerText == "" {
		footerText = FooterBot
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
	}
}

// getInteractionUser extracts the user from an interaction.
// Handles both guild (i.Member.User) and DM (i.User) contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// displayName prefers the global display name over the account handle
func displayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// optionMap indexes the top-level command options by name
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

func stringOpt(m map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := m[name]; ok {
		return strings.TrimSpace(opt.StringValue())
	}
	return ""
}

func intOpt(m map[string]*discordgo.ApplicationCommandInteractionDataOption, name string, def int64) int64 {
	if opt, ok := m[name]; ok {
		return opt.IntValue()
	}
	return def
}

// userOpt returns the target user's id; no session lookup is needed for the id alone
func userOpt(m map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := m[name]; ok {
		return opt.UserValue(nil).ID
	}
	return ""
}

// itemOption is a required string option with autocomplete
func itemOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         name,
		Description:  description,
		Required:     true,
		Autocomplete: true,
	}
}

// rarityChoices offers the weighted rarities. Unweighted labels go through the HTTP API.
func rarityChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.KnownRarities))
	for _, r := range domain.KnownRarities {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  rarityLabel(r),
			Value: string(r),
		})
	}
	return choices
}

// resetConfirmation must be typed into /admin_reset_data
const resetConfirmation = "RESET"

func domainRarity(s string) domain.Rarity {
	r, err := domain.ParseRarity(s)
	if err != nil {
		return domain.Rarity(s)
	}
	return r
}
