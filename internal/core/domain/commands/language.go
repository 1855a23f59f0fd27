package commands

import (
	"context"
	"fmt"

	"guildbot/internal/core/domain"
	"guildbot/internal/core/port"
)

// Language sets the guild's preferred locale. The preference is persisted
// and resolved per guild on every subsequent dispatch.
func Language(guilds port.GuildStore, loc port.Localizer) *domain.Command {
	choices := make([]domain.FingerprintChoice, 0, len(loc.Locales()))
	for _, locale := range loc.Locales() {
		choices = append(choices, domain.FingerprintChoice{Name: locale, Value: locale})
	}

	return &domain.Command{
		Name:        "language",
		Description: "Set the bot language for this server",
		Scope:       domain.ScopeGuild,
		Kinds:       []domain.ArgKind{domain.KindOptions, domain.KindContext, domain.KindGuild},
		Run: func(ctx context.Context, bag *domain.Bag) (*domain.Response, error) {
			c, err := bag.Ctx()
			if err != nil {
				return nil, err
			}
			guild, err := bag.Guild()
			if err != nil {
				return nil, err
			}
			options, err := bag.Options()
			if err != nil {
				return nil, err
			}

			opt := domain.FindOption(options, "locale")
			if opt == nil {
				return domain.TextResponse(loc.Translate("commands.language.missing", c.Locale, nil)), nil
			}

			supported := false
			for _, locale := range loc.Locales() {
				if locale == opt.Value {
					supported = true
					break
				}
			}
			if !supported {
				return domain.TextResponse(loc.Translate("commands.language.unsupported", c.Locale,
					map[string]string{"locale": opt.Value})), nil
			}

			if err := guilds.SetLocale(ctx, guild.ID, opt.Value); err != nil {
				return nil, fmt.Errorf("failed to save guild locale: %w", err)
			}

			return domain.TextResponse(loc.Translate("commands.language.applied", opt.Value,
				map[string]string{"locale": opt.Value})), nil
		},
		Fingerprint: &domain.Fingerprint{
			Name:        "language",
			Description: "Set the bot language for this server",
			Options: []domain.FingerprintOption{{
				Name:        "locale",
				Description: "The locale to use",
				Type:        domain.OptionString,
				Required:    true,
				Choices:     choices,
			}},
		},
	}
}
