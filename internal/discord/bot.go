package discord

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	Client   *APIClient
	AppID    string
	Registry *CommandRegistry

	admins          map[string]bool
	notifyChannelID string
	sseClient       *SSEClient
	cancel          context.CancelFunc
}

// Config holds the bot configuration
type Config struct {
	Token           string
	AppID           string
	APIURL          string
	APIKey          string
	AdminIDs        []string
	NotifyChannelID string
	HealthPort      string
}

// New creates a new Discord bot
func New(cfg Config) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages

	admins := make(map[string]bool, len(cfg.AdminIDs))
	for _, id := range cfg.AdminIDs {
		admins[id] = true
	}

	return &Bot{
		Session:         s,
		Client:          NewAPIClient(cfg.APIURL, cfg.APIKey),
		AppID:           cfg.AppID,
		Registry:        NewCommandRegistry(),
		admins:          admins,
		notifyChannelID: cfg.NotifyChannelID,
	}, nil
}

// IsAdmin reports whether the Discord user id is listed in DISCORD_ADMIN_IDS
func (b *Bot) IsAdmin(userID string) bool {
	return b.admins[userID]
}

// Start opens the gateway connection and, when a notification channel is
// configured, starts relaying API events to it.
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)
	b.Session.AddHandler(b.messageCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	if b.notifyChannelID != "" {
		ctx, cancel := context.WithCancel(context.Background())
		b.cancel = cancel
		b.sseClient = NewSSEClient(b.Client.BaseURL, b.Client.APIKey,
			[]string{SSEEventTypeJackpotPull, SSEEventTypeAchievementUnlocked})
		NewSSENotifier(b.Session, b.notifyChannelID).RegisterHandlers(b.sseClient)
		b.sseClient.Start(ctx)
		slog.Info("SSE notifications enabled", "channel_id", b.notifyChannelID)
	}

	slog.Info("Discord bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() {
	if b.sseClient != nil {
		b.cancel()
		b.sseClient.Stop()
	}
	if err := b.Session.Close(); err != nil {
		slog.Warn("Failed to close Discord session", "error", err)
	}
}

// Run runs the bot until a signal is received
func (b *Bot) Run() error {
	if err := b.Start(); err != nil {
		return err
	}
	defer b.Stop()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	return nil
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Bot is ready", "user", r.User.Username)
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommandAutocomplete:
		HandleAutocomplete(s, i, b.Client)
	case discordgo.InteractionApplicationCommand:
		b.Registry.Handle(s, i, b.Client, b.IsAdmin)
	}
}

// messageCreate answers direct messages with the command list
func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID != "" {
		return
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, helpEmbed(b.IsAdmin(m.Author.ID))); err != nil {
		slog.Error("Failed to send DM help", "error", err, "user_id", m.Author.ID)
	}
}
