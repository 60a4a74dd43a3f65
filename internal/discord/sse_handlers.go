package discord

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/TactasRNG_Go/internal/sse"
)

// SSENotifier posts API events to a Discord channel
type SSENotifier struct {
	session            *discordgo.Session
	notificationChanID string
}

// NewSSENotifier creates a new SSE notifier
func NewSSENotifier(session *discordgo.Session, notificationChanID string) *SSENotifier {
	return &SSENotifier{
		session:            session,
		notificationChanID: notificationChanID,
	}
}

// RegisterHandlers registers all SSE event handlers with the client
func (n *SSENotifier) RegisterHandlers(client *SSEClient) {
	client.OnEvent(SSEEventTypeJackpotPull, n.handleJackpot)
	client.OnEvent(SSEEventTypeAchievementUnlocked, n.handleAchievement)
}

func (n *SSENotifier) handleJackpot(event SSEEvent) error {
	var p sse.JackpotPayload
	if err := json.Unmarshal(event.Payload, &p); err != nil {
		return fmt.Errorf("failed to parse jackpot payload: %w", err)
	}

	embed := createEmbed("🌟 Jackpot!",
		fmt.Sprintf("%s pulled **%s** (%s)!", mentionOrName(p.UserID, p.Username), p.ItemName, rarityBadge(p.Rarity)),
		ColorJackpot, "")
	if p.Image != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: p.Image}
	}
	return n.send(event, embed)
}

func (n *SSENotifier) handleAchievement(event SSEEvent) error {
	var p sse.AchievementPayload
	if err := json.Unmarshal(event.Payload, &p); err != nil {
		return fmt.Errorf("failed to parse achievement payload: %w", err)
	}

	embed := createEmbed("🏅 Achievement Unlocked",
		fmt.Sprintf("%s earned **%s**\n%s", mentionOrName(p.UserID, p.Username), p.Name, p.Description),
		ColorAchievement, "")
	return n.send(event, embed)
}

func (n *SSENotifier) send(event SSEEvent, embed *discordgo.MessageEmbed) error {
	if _, err := n.session.ChannelMessageSendEmbed(n.notificationChanID, embed); err != nil {
		slog.Error(sseLogMsgNotificationError, "event_type", event.Type, "error", err)
		return err
	}
	slog.Info(sseLogMsgNotificationSent, "event_type", event.Type, "channel_id", n.notificationChanID)
	return nil
}

// mentionOrName mentions Discord users by id; other platforms' ids fall back to the display name
func mentionOrName(userID, username string) string {
	if isSnowflake(userID) {
		return "<@" + userID + ">"
	}
	if username != "" {
		return "**" + username + "**"
	}
	return "**" + userID + "**"
}

func isSnowflake(id string) bool {
	if len(id) < 15 || len(id) > 20 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
