package commands

import (
	"context"
	"testing"

	"guildbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	cmd := Ping(keyLocalizer{})

	bag, err := domain.NewBag(
		domain.CtxValue(&domain.Ctx{EventID: "ev1", Locale: "en-US"}),
	).Narrow(cmd.Kinds)
	require.NoError(t, err)

	resp, err := cmd.Run(context.Background(), bag)
	require.NoError(t, err)
	assert.Equal(t, domain.ResponseText, resp.Kind)
	assert.Equal(t, "commands.ping.response", resp.Text)
}

func TestHelpListsRegisteredCommands(t *testing.T) {
	registry := &domain.Registry{}
	require.NoError(t, registry.RegisterCommand(Ping(keyLocalizer{})))

	help := Help(registry, keyLocalizer{})
	require.NoError(t, registry.RegisterCommand(help))

	bag, err := domain.NewBag(
		domain.CtxValue(&domain.Ctx{Locale: "en-US"}),
	).Narrow(help.Kinds)
	require.NoError(t, err)

	resp, err := help.Run(context.Background(), bag)
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "commands.help.header")
	assert.Contains(t, resp.Text, "/ping")
	assert.Contains(t, resp.Text, "/help")
}

func languageBag(t *testing.T, cmd *domain.Command, options ...domain.Option) *domain.Bag {
	t.Helper()
	bag, err := domain.NewBag(
		domain.CtxValue(&domain.Ctx{Locale: "en-US"}),
		domain.GuildValue(&domain.Guild{ID: "g1"}),
		domain.OptionsValue(options),
	).Narrow(cmd.Kinds)
	require.NoError(t, err)
	return bag
}

func TestLanguagePersistsGuildLocale(t *testing.T) {
	guilds := NewMemoryGuildStore()
	cmd := Language(guilds, keyLocalizer{})

	resp, err := cmd.Run(context.Background(),
		languageBag(t, cmd, domain.Option{Name: "locale", Value: "pt-BR"}))
	require.NoError(t, err)
	assert.Equal(t, "commands.language.applied", resp.Text)

	locale, err := guilds.Locale(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "pt-BR", locale)
}

func TestLanguageRejectsUnsupportedLocale(t *testing.T) {
	guilds := NewMemoryGuildStore()
	cmd := Language(guilds, keyLocalizer{})

	resp, err := cmd.Run(context.Background(),
		languageBag(t, cmd, domain.Option{Name: "locale", Value: "xx-XX"}))
	require.NoError(t, err)
	assert.Equal(t, "commands.language.unsupported", resp.Text)

	locale, err := guilds.Locale(context.Background(), "g1")
	require.NoError(t, err)
	assert.Empty(t, locale)
}

func TestLanguageRequiresOption(t *testing.T) {
	cmd := Language(NewMemoryGuildStore(), keyLocalizer{})

	resp, err := cmd.Run(context.Background(), languageBag(t, cmd))
	require.NoError(t, err)
	assert.Equal(t, "commands.language.missing", resp.Text)
}

func TestLanguageFingerprintOffersEveryLocale(t *testing.T) {
	cmd := Language(NewMemoryGuildStore(), keyLocalizer{})

	require.NotNil(t, cmd.Fingerprint)
	require.Len(t, cmd.Fingerprint.Options, 1)
	assert.Len(t, cmd.Fingerprint.Options[0].Choices, 2)
}
