package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/TactasRNG_Go/internal/gacha"
)

// PullCommand draws one item
func PullCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdPull,
		Description: "Pull a random item from the pool",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		user := getInteractionUser(i)
		res, err := client.Pull(user.ID, displayName(user))
		if err != nil {
			respondFriendlyError(s, i, CmdPull, err)
			return
		}
		sendEmbed(s, i, pullEmbed(displayName(user), res))
	}

	return cmd, handler
}

// InventoryCommand lists the caller's items
func InventoryCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdInventory,
		Description: "View the items you own",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		user := getInteractionUser(i)
		items, err := client.Inventory(user.ID)
		if err != nil {
			respondFriendlyError(s, i, CmdInventory, err)
			return
		}
		sendEmbed(s, i, createEmbed("🎒 "+displayName(user)+"'s Inventory", formatInventory(items), ColorInfo, ""))
	}

	return cmd, handler
}

// AchievementsCommand lists the caller's achievements
func AchievementsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdAchievements,
		Description: "View your achievements",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		user := getInteractionUser(i)
		list, err := client.Achievements(user.ID)
		if err != nil {
			respondFriendlyError(s, i, CmdAchievements, err)
			return
		}
		sendEmbed(s, i, createEmbed("🏆 "+displayName(user)+"'s Achievements", formatAchievements(list), ColorAchievement, ""))
	}

	return cmd, handler
}

// DailyCommand claims the daily coin reward
func DailyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return claimCommand(CmdDaily, "Claim your daily coins", "📅 Daily Reward", (*APIClient).ClaimDaily)
}

// WeeklyCommand claims the weekly coin reward
func WeeklyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return claimCommand(CmdWeekly, "Claim your weekly coins", "🗓️ Weekly Reward", (*APIClient).ClaimWeekly)
}

func claimCommand(name, description, title string, claim func(*APIClient, string, string) (*gacha.ClaimResult, error)) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        name,
		Description: description,
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		user := getInteractionUser(i)
		res, err := claim(client, user.ID, displayName(user))
		if err != nil {
			respondFriendlyError(s, i, name, err)
			return
		}
		sendEmbed(s, i, createEmbed(title, formatClaim(res), ColorReward, ""))
	}

	return cmd, handler
}

// StatsCommand shows the caller's summary
func StatsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdStats,
		Description: "View your pull statistics",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		user := getInteractionUser(i)
		st, err := client.Stats(user.ID)
		if err != nil {
			respondFriendlyError(s, i, CmdStats, err)
			return
		}
		sendEmbed(s, i, createEmbed("📊 "+displayName(user)+"'s Stats", formatStats(st), ColorInfo, ""))
	}

	return cmd, handler
}

// LeaderboardCommand shows the top users by pulls
func LeaderboardCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdLeaderboard,
		Description: "View the top pullers",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        OptLimit,
				Description: fmt.Sprintf("Number of players to show (default: %d)", defaultLeaderboardLimit),
				Required:    false,
				MinValue:    &[]float64{1}[0],
				MaxValue:    100,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		limit := intOpt(optionMap(i), OptLimit, defaultLeaderboardLimit)
		entries, err := client.Leaderboard(int(limit))
		if err != nil {
			respondFriendlyError(s, i, CmdLeaderboard, err)
			return
		}
		sendEmbed(s, i, createEmbed("🏆 Leaderboard", formatLeaderboard(entries), ColorInfo, ""))
	}

	return cmd, handler
}

// ItemInfoCommand shows one catalog item with fuzzy "did you mean" on misses
func ItemInfoCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdItemInfo,
		Description: "Look up an item's rarity, description and image",
		Options: []*discordgo.ApplicationCommandOption{
			itemOption(OptItem, "Item name"),
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		item, err := client.GetItem(stringOpt(optionMap(i), OptItem))
		if err != nil {
			respondFriendlyError(s, i, CmdItemInfo, err)
			return
		}
		sendEmbed(s, i, itemEmbed(item))
	}

	return cmd, handler
}

// HelpCommand lists the commands the caller can use
func HelpCommand(isAdmin func(userID string) bool) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        CmdHelp,
		Description: "List the bot's commands",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, _ *APIClient) {
		user := getInteractionUser(i)
		admin := user != nil && isAdmin != nil && isAdmin(user.ID)
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Embeds: []*discordgo.MessageEmbed{helpEmbed(admin)},
				Flags:  discordgo.MessageFlagsEphemeral,
			},
		}); err != nil {
			slog.Error("Failed to send help", "error", err)
		}
	}

	return cmd, handler
}
