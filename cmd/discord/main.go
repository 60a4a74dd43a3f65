package main

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/osse101/TactasRNG_Go/internal/discord"
	"github.com/osse101/TactasRNG_Go/internal/logger"
)

// CommandFactory creates a Discord command and its handler.
// Used to register all available commands in one place.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	// Load .env file
	_ = godotenv.Load()

	setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bot, err := discord.New(cfg)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	httpServer := discord.NewHTTPServer(cfg.HealthPort, bot)
	httpServer.Start()
	defer httpServer.Stop()

	registerCommands(bot, playerCommandFactories(bot), adminCommandFactories())

	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if forceUpdate {
		slog.Info("Force command update enabled via environment variable")
	}

	if err := bot.RegisterCommands(bot.Registry, forceUpdate); err != nil {
		slog.Error("Failed to register commands", "error", err)
		// Don't exit - bot can still run if commands are already registered
	}

	if err := bot.Run(); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

// setupLogger configures structured logging to stdout.
func setupLogger() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	logger.InitLogger(logger.NewConfig(level, os.Getenv("LOG_FORMAT"), "tactasrng-discord", "", os.Getenv("ENVIRONMENT"), false))
}

// loadConfig loads and validates Discord bot configuration from environment variables.
// Returns error if required variables are missing.
func loadConfig() (discord.Config, error) {
	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return discord.Config{}, errors.New("DISCORD_TOKEN is required")
	}

	appID := os.Getenv("DISCORD_APP_ID")
	if appID == "" {
		return discord.Config{}, errors.New("DISCORD_APP_ID is required")
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = discord.DefaultAPIURL
	}
	slog.Info("Configured API URL", "url", apiURL)

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		slog.Warn("API_KEY not set, discord bot requests may fail")
	}

	healthPort := os.Getenv("DISCORD_HEALTH_PORT")
	if healthPort == "" {
		healthPort = discord.DefaultHealthPort
	}

	var adminIDs []string
	for _, id := range strings.Split(os.Getenv("DISCORD_ADMIN_IDS"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			adminIDs = append(adminIDs, id)
		}
	}
	if len(adminIDs) == 0 {
		slog.Warn("DISCORD_ADMIN_IDS not set, admin commands are disabled")
	}

	notifyChannelID := os.Getenv("DISCORD_NOTIFY_CHANNEL_ID")
	if notifyChannelID != "" {
		slog.Info("SSE notifications enabled", "channel_id", notifyChannelID)
	}

	return discord.Config{
		Token:           token,
		AppID:           appID,
		APIURL:          apiURL,
		APIKey:          apiKey,
		AdminIDs:        adminIDs,
		NotifyChannelID: notifyChannelID,
		HealthPort:      healthPort,
	}, nil
}

// playerCommandFactories returns the commands open to every user.
// HelpCommand needs the bot's admin check, so it is wrapped here.
func playerCommandFactories(bot *discord.Bot) []CommandFactory {
	return []CommandFactory{
		discord.PullCommand,
		discord.InventoryCommand,
		discord.AchievementsCommand,
		discord.DailyCommand,
		discord.WeeklyCommand,
		discord.StatsCommand,
		discord.LeaderboardCommand,
		discord.ItemInfoCommand,
		func() (*discordgo.ApplicationCommand, discord.CommandHandler) {
			return discord.HelpCommand(bot.IsAdmin)
		},
	}
}

// adminCommandFactories returns the commands gated on DISCORD_ADMIN_IDS
func adminCommandFactories() []CommandFactory {
	return []CommandFactory{
		discord.AddItemCommand,
		discord.RemoveItemCommand,
		discord.EditItemRarityCommand,
		discord.EditItemDescriptionCommand,
		discord.EditItemImageCommand,
		discord.AdminGiveItemCommand,
		discord.AdminSetPullsCommand,
		discord.AdminResetDataCommand,
	}
}

// registerCommands registers all provided command factories with the bot's registry.
func registerCommands(bot *discord.Bot, player, admin []CommandFactory) {
	for _, factory := range player {
		cmd, handler := factory()
		bot.Registry.Register(cmd, handler)
	}
	for _, factory := range admin {
		cmd, handler := factory()
		bot.Registry.RegisterAdmin(cmd, handler)
	}
}
