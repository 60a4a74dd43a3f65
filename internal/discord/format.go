package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/TactasRNG_Go/internal/domain"
	"github.com/osse101/TactasRNG_Go/internal/gacha"
)

var titleCaser = cases.Title(language.English)

var rarityEmoji = map[domain.Rarity]string{
	domain.RarityCommon:    "⚪",
	domain.RarityUncommon:  "🟢",
	domain.RarityRare:      "🔵",
	domain.RarityEpic:      "🟣",
	domain.RarityLegendary: "🟡",
	domain.RarityMythic:    "🔴",
	domain.RarityDivine:    "✨",
	domain.RaritySecret:    "❔",
}

// rarityLabel renders "legendary" as "Legendary"
func rarityLabel(r domain.Rarity) string {
	return titleCaser.String(string(r))
}

func rarityBadge(r domain.Rarity) string {
	emoji, ok := rarityEmoji[r]
	if !ok {
		emoji = "▫️"
	}
	return emoji + " " + rarityLabel(r)
}

func formatAchievementLines(list []domain.Achievement) string {
	var b strings.Builder
	for _, a := range list {
		fmt.Fprintf(&b, "🏅 **%s**: %s\n", a.Name, a.Description)
	}
	return b.String()
}

func pullEmbed(who string, res *gacha.PullResult) *discordgo.MessageEmbed {
	title := "🎲 Pull"
	color := ColorPull
	if res.Rarity.IsLegendaryTier() {
		title = "🌟 Jackpot!"
		color = ColorJackpot
	}
	desc := fmt.Sprintf("%s pulled **%s** (%s)", who, res.Item, rarityBadge(res.Rarity))
	if res.Description != "" {
		desc += "\n_" + res.Description + "_"
	}
	desc += fmt.Sprintf("\nTotal pulls: **%d**", res.Pulls)
	if len(res.NewAchievements) > 0 {
		desc += "\n\n**New achievements**\n" + formatAchievementLines(res.NewAchievements)
	}
	embed := createEmbed(title, desc, color, "")
	if res.Image != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: res.Image}
	}
	return embed
}

func formatInventory(items []domain.InventoryEntry) string {
	if len(items) == 0 {
		return MsgNoItems
	}
	var b strings.Builder
	for n, it := range items {
		if n == maxEmbedLines {
			fmt.Fprintf(&b, "…and %d more", len(items)-n)
			break
		}
		fmt.Fprintf(&b, "%s **%s** ×%d\n", rarityEmojiOrDefault(it.Rarity), it.ItemName, it.Amount)
	}
	return b.String()
}

func rarityEmojiOrDefault(r domain.Rarity) string {
	if emoji, ok := rarityEmoji[r]; ok {
		return emoji
	}
	return "▫️"
}

func formatAchievements(list []domain.Achievement) string {
	if len(list) == 0 {
		return MsgNoAchievements
	}
	return formatAchievementLines(list)
}

func formatClaim(res *gacha.ClaimResult) string {
	return fmt.Sprintf("You claimed **%d** coins for %s `%s`.\nBalance: **%d** coins",
		res.Amount, res.Period, res.Key, res.Coins)
}

func formatStats(st *domain.UserStats) string {
	return fmt.Sprintf("Pulls: **%d**\nCoins: **%d**\nDistinct items: **%d**\nTotal items: **%d**\nAchievements: **%d**",
		st.Pulls, st.Coins, st.DistinctItems, st.TotalItems, st.Achievements)
}

func formatLeaderboard(entries []domain.LeaderboardEntry) string {
	if len(entries) == 0 {
		return MsgNoLeaderboard
	}
	medals := []string{"🥇", "🥈", "🥉"}
	var b strings.Builder
	for n, e := range entries {
		rank := fmt.Sprintf("`#%d`", n+1)
		if n < len(medals) {
			rank = medals[n]
		}
		name := e.Username
		if name == "" {
			name = "<@" + e.UserID + ">"
		}
		fmt.Fprintf(&b, "%s %s: **%d** pulls\n", rank, name, e.Pulls)
	}
	return b.String()
}

func itemEmbed(item *domain.Item) *discordgo.MessageEmbed {
	desc := "Rarity: " + rarityBadge(item.Rarity)
	if item.Description != "" {
		desc += "\n\n" + item.Description
	}
	embed := createEmbed("📦 "+item.Name, desc, ColorInfo, "")
	if item.Image != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: item.Image}
	}
	return embed
}

// helpEmbed lists the player commands, plus admin commands for admins
func helpEmbed(admin bool) *discordgo.MessageEmbed {
	var b strings.Builder
	b.WriteString("`/pull` draw a random item\n")
	b.WriteString("`/inventory` see your items\n")
	b.WriteString("`/achievements` see your achievements\n")
	b.WriteString("`/daily` claim 100 coins once a day\n")
	b.WriteString("`/weekly` claim 600 coins once a week\n")
	b.WriteString("`/stats` your pull summary\n")
	b.WriteString("`/leaderboard` top pullers\n")
	b.WriteString("`/iteminfo` look up an item\n")
	if admin {
		b.WriteString("\n**Admin**\n")
		b.WriteString("`/add_item` `/remove_item` `/edit_item_rarity` `/edit_item_description` `/edit_item_image`\n")
		b.WriteString("`/admin_give_item` `/admin_set_pulls` `/admin_reset_data`\n")
	}
	return createEmbed("📖 Commands", b.String(), ColorInfo, "")
}
