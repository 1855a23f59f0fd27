package commands

import (
	"context"
	"fmt"
	"strings"

	"guildbot/internal/core/domain"
	"guildbot/internal/core/port"
)

// Help lists every registered command. The registry is populated before the
// first dispatch, so reading it here needs no synchronization.
func Help(registry *domain.Registry, loc port.Localizer) *domain.Command {
	return &domain.Command{
		Name:        "help",
		Description: "List available commands",
		Scope:       domain.ScopeGlobal,
		Kinds:       []domain.ArgKind{domain.KindContext},
		Run: func(_ context.Context, bag *domain.Bag) (*domain.Response, error) {
			c, err := bag.Ctx()
			if err != nil {
				return nil, err
			}

			sb := &strings.Builder{}
			sb.WriteString(loc.Translate("commands.help.header", c.Locale, nil))
			sb.WriteString("\n```\n")

			for _, cmd := range registry.Commands() {
				fmt.Fprintf(sb, "/%s  %s\n", cmd.Name, cmd.Description)
			}

			sb.WriteString("```")

			return domain.TextResponse(sb.String()), nil
		},
		Fingerprint: &domain.Fingerprint{
			Name:        "help",
			Description: "List available commands",
		},
	}
}
