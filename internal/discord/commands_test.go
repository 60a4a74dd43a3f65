package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRegistry_AdminGating(t *testing.T) {
	ctx := SetupTestContext(t)
	registry := NewCommandRegistry()

	var ran int
	registry.RegisterAdmin(&discordgo.ApplicationCommand{Name: CmdAdminResetData}, func(*discordgo.Session, *discordgo.InteractionCreate, *APIClient) {
		ran++
	})
	isAdmin := func(id string) bool { return id == "admin-1" }

	registry.Handle(ctx.Session, newInteraction(CmdAdminResetData), ctx.APIClient, isAdmin)
	assert.Zero(t, ran)
	resp := ctx.LastCallback(t)
	require.NotNil(t, resp.Data)
	assert.Equal(t, MsgNotAdmin, resp.Data.Content)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)

	i := newInteraction(CmdAdminResetData)
	i.Member.User.ID = "admin-1"
	registry.Handle(ctx.Session, i, ctx.APIClient, isAdmin)
	assert.Equal(t, 1, ran)
}

func TestCommandRegistry_PlayerCommandsOpen(t *testing.T) {
	ctx := SetupTestContext(t)
	registry := NewCommandRegistry()
	var ran bool
	registry.Register(&discordgo.ApplicationCommand{Name: CmdPull}, func(*discordgo.Session, *discordgo.InteractionCreate, *APIClient) {
		ran = true
	})

	registry.Handle(ctx.Session, newInteraction(CmdPull), ctx.APIClient, nil)
	assert.True(t, ran)
}

func TestCommandsEqual(t *testing.T) {
	a, _ := LeaderboardCommand()
	b, _ := LeaderboardCommand()
	assert.True(t, commandsEqual([]*discordgo.ApplicationCommand{a}, []*discordgo.ApplicationCommand{b}))

	c, _ := LeaderboardCommand()
	c.Description = "changed"
	assert.False(t, commandsEqual([]*discordgo.ApplicationCommand{a}, []*discordgo.ApplicationCommand{c}))

	d, _ := AddItemCommand()
	assert.False(t, commandsEqual([]*discordgo.ApplicationCommand{a}, []*discordgo.ApplicationCommand{d}))
}

func TestRegistrySorted(t *testing.T) {
	registry := NewCommandRegistry()
	for _, f := range []func() (*discordgo.ApplicationCommand, CommandHandler){PullCommand, DailyCommand, AddItemCommand} {
		cmd, h := f()
		registry.Register(cmd, h)
	}
	var names []string
	for _, cmd := range registry.Sorted() {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{CmdAddItem, CmdDaily, CmdPull}, names)
}

func TestAdminCommandsRequireAdministrator(t *testing.T) {
	for _, f := range []func() (*discordgo.ApplicationCommand, CommandHandler){
		AddItemCommand, RemoveItemCommand, EditItemRarityCommand, EditItemDescriptionCommand,
		EditItemImageCommand, AdminGiveItemCommand, AdminSetPullsCommand, AdminResetDataCommand,
	} {
		cmd, _ := f()
		require.NotNil(t, cmd.DefaultMemberPermissions, cmd.Name)
		assert.Equal(t, int64(discordgo.PermissionAdministrator), *cmd.DefaultMemberPermissions, cmd.Name)
	}
}

func TestHelpCommand_ShowsAdminSection(t *testing.T) {
	ctx := SetupTestContext(t)
	_, h := HelpCommand(func(id string) bool { return id == "42" })
	h(ctx.Session, newInteraction(CmdHelp), ctx.APIClient)

	resp := ctx.LastCallback(t)
	require.NotNil(t, resp.Data)
	require.Len(t, resp.Data.Embeds, 1)
	assert.Contains(t, resp.Data.Embeds[0].Description, "/admin_reset_data")

	_, h = HelpCommand(func(string) bool { return false })
	h(ctx.Session, newInteraction(CmdHelp), ctx.APIClient)
	resp = ctx.LastCallback(t)
	assert.NotContains(t, resp.Data.Embeds[0].Description, "/admin_reset_data")
}
