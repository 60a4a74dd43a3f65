package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var adminPermission = &[]int64{discordgo.PermissionAdministrator}[0]

// adminCommand wires a deferred admin handler whose action returns the embed text
func adminCommand(cmd *discordgo.ApplicationCommand, title string, action func(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, client *APIClient) (string, error)) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd.DefaultMemberPermissions = adminPermission

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}
		msg, err := action(optionMap(i), client)
		if err != nil {
			respondFriendlyError(s, i, cmd.Name, err)
			return
		}
		sendEmbed(s, i, createEmbed(title, msg, ColorAdmin, FooterBotAdmin))
	}

	return cmd, handler
}

// AddItemCommand adds an item to the pool
func AddItemCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return adminCommand(&discordgo.ApplicationCommand{
		Name:        CmdAddItem,
		Description: "[ADMIN] Add an item to the pull pool",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: OptName, Description: "Item name", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: OptRarity, Description: "Rarity", Required: true, Choices: rarityChoices()},
		},
	}, "➕ Item Added", func(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, client *APIClient) (string, error) {
		item, err := client.AddItem(stringOpt(opts, OptName), stringOpt(opts, OptRarity))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("**%s** (%s) is now in the pool.", item.Name, rarityBadge(item.Rarity)), nil
	})
}

// RemoveItemCommand removes an item from the pool
func RemoveItemCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return adminCommand(&discordgo.ApplicationCommand{
		Name:        CmdRemoveItem,
		Description: "[ADMIN] Remove an item from the pull pool",
		Options: []*discordgo.ApplicationCommandOption{
			itemOption(OptItem, "Item to remove"),
		},
	}, "➖ Item Removed", func(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, client *APIClient) (string, error) {
		name := stringOpt(opts, OptItem)
		if err := client.RemoveItem(name); err != nil {
			return "", err
		}
		return fmt.Sprintf("**%s** is no longer in the pool. Owned copies are kept.", name), nil
	})
}

// EditItemRarityCommand changes an item's rarity
func EditItemRarityCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return adminCommand(&discordgo.ApplicationCommand{
		Name:        CmdEditItemRarity,
		Description: "[ADMIN] Change an item's rarity",
		Options: []*discordgo.ApplicationCommandOption{
			itemOption(OptItem, "Item to edit"),
			{Type: discordgo.ApplicationCommandOptionString, Name: OptRarity, Description: "New rarity", Required: true, Choices: rarityChoices()},
		},
	}, "✏️ Item Updated", func(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, client *APIClient) (string, error) {
		name, rarity := stringOpt(opts, OptItem), stringOpt(opts, OptRarity)
		if err := client.SetRarity(name, rarity); err != nil {
			return "", err
		}
		return fmt.Sprintf("**%s** is now %s.", name, rarityLabel(domainRarity(rarity))), nil
	})
}

// EditItemDescriptionCommand changes an item's description
func EditItemDescriptionCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return adminCommand(&discordgo.ApplicationCommand{
		Name:        CmdEditItemDescription,
		Description: "[ADMIN] Change an item's description",
		Options: []*discordgo.ApplicationCommandOption{
			itemOption(OptItem, "Item to edit"),
			{Type: discordgo.ApplicationCommandOptionString, Name: OptDescription, Description: "New description (empty clears it)", Required: false, MaxLength: 1000},
		},
	}, "✏️ Item Updated", func(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, client *APIClient) (string, error) {
		name := stringOpt(opts, OptItem)
		if err := client.SetDescription(name, stringOpt(opts, OptDescription)); err != nil {
			return "", err
		}
		return fmt.Sprintf("Description of **%s** updated.", name), nil
	})
}

// EditItemImageCommand changes an item's image reference
func EditItemImageCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return adminCommand(&discordgo.ApplicationCommand{
		Name:        CmdEditItemImage,
		Description: "[ADMIN] Change an item's image",
		Options: []*discordgo.ApplicationCommandOption{
			itemOption(OptItem, "Item to edit"),
			{Type: discordgo.ApplicationCommandOptionString, Name: OptImage, Description: "Image URL (empty clears it)", Required: false, MaxLength: 500},
		},
	}, "✏️ Item Updated", func(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, client *APIClient) (string, error) {
		name := stringOpt(opts, OptItem)
		if err := client.SetImage(name, stringOpt(opts, OptImage)); err != nil {
			return "", err
		}
		return fmt.Sprintf("Image of **%s** updated.", name), nil
	})
}

// AdminGiveItemCommand grants copies of an item to a user
func AdminGiveItemCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return adminCommand(&discordgo.ApplicationCommand{
		Name:        CmdAdminGiveItem,
		Description: "[ADMIN] Give items to a user",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: OptUser, Description: "Recipient", Required: true},
			itemOption(OptItem, "Item to give"),
			{Type: discordgo.ApplicationCommandOptionInteger, Name: OptAmount, Description: "Copies to give (default: 1)", Required: false, MinValue: &[]float64{1}[0], MaxValue: 10000},
		},
	}, "🎁 Item Given", func(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, client *APIClient) (string, error) {
		userID := userOpt(opts, OptUser)
		res, err := client.GiveItem(userID, stringOpt(opts, OptItem), intOpt(opts, OptAmount, 1))
		if err != nil {
			return "", err
		}
		msg := fmt.Sprintf("<@%s> now has **%d** × **%s** (%s).", userID, res.NewAmount, res.Item, rarityBadge(res.Rarity))
		if len(res.NewAchievements) > 0 {
			msg += "\n\n**New achievements**\n" + formatAchievementLines(res.NewAchievements)
		}
		return msg, nil
	})
}

// AdminSetPullsCommand overwrites a user's pull counter
func AdminSetPullsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return adminCommand(&discordgo.ApplicationCommand{
		Name:        CmdAdminSetPulls,
		Description: "[ADMIN] Set a user's pull count",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: OptUser, Description: "User", Required: true},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: OptPulls, Description: "New pull count", Required: true, MinValue: &[]float64{0}[0]},
		},
	}, "🔢 Pulls Updated", func(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, client *APIClient) (string, error) {
		userID := userOpt(opts, OptUser)
		res, err := client.SetPulls(userID, intOpt(opts, OptPulls, 0))
		if err != nil {
			return "", err
		}
		msg := fmt.Sprintf("<@%s> now has **%d** pulls.", userID, res.Pulls)
		if len(res.NewAchievements) > 0 {
			msg += "\n\n**New achievements**\n" + formatAchievementLines(res.NewAchievements)
		}
		return msg, nil
	})
}

// AdminResetDataCommand wipes all progress; the confirm option must read RESET
func AdminResetDataCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	return adminCommand(&discordgo.ApplicationCommand{
		Name:        CmdAdminResetData,
		Description: "[ADMIN] Reset all pulls, coins, claims and inventories",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: OptConfirm, Description: "Type RESET to confirm", Required: true},
		},
	}, "🧹 Data Reset", func(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, client *APIClient) (string, error) {
		if stringOpt(opts, OptConfirm) != resetConfirmation {
			return MsgResetNotConfirm, nil
		}
		if err := client.ResetAll(); err != nil {
			return "", err
		}
		return MsgResetDone, nil
	})
}
