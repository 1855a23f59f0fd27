package commands

import (
	"context"

	"guildbot/internal/core/domain"
	"guildbot/internal/core/port"
)

// Ping is the liveness check command.
func Ping(loc port.Localizer) *domain.Command {
	return &domain.Command{
		Name:        "ping",
		Description: "A ping command",
		Scope:       domain.ScopeGlobal,
		Kinds:       []domain.ArgKind{domain.KindContext},
		Run: func(_ context.Context, bag *domain.Bag) (*domain.Response, error) {
			c, err := bag.Ctx()
			if err != nil {
				return nil, err
			}

			return domain.TextResponse(loc.Translate("commands.ping.response", c.Locale, nil)), nil
		},
		Fingerprint: &domain.Fingerprint{
			Name:        "ping",
			Description: "A ping command",
		},
	}
}
