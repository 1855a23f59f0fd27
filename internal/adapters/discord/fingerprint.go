package discord

import (
	"guildbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

func toApplicationCommands(fingerprints []*domain.Fingerprint) []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(fingerprints))
	for _, fp := range fingerprints {
		out = append(out, &discordgo.ApplicationCommand{
			Name:        fp.Name,
			Description: fp.Description,
			Options:     toCommandOptions(fp.Options),
		})
	}

	return out
}

func toCommandOptions(options []domain.FingerprintOption) []*discordgo.ApplicationCommandOption {
	if len(options) == 0 {
		return nil
	}

	out := make([]*discordgo.ApplicationCommandOption, 0, len(options))
	for _, opt := range options {
		converted := &discordgo.ApplicationCommandOption{
			Name:        opt.Name,
			Description: opt.Description,
			Type:        toOptionType(opt.Type),
			Required:    opt.Required,
			Options:     toCommandOptions(opt.Options),
		}

		for _, choice := range opt.Choices {
			converted.Choices = append(converted.Choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  choice.Name,
				Value: choice.Value,
			})
		}

		out = append(out, converted)
	}

	return out
}

func toOptionType(t domain.OptionType) discordgo.ApplicationCommandOptionType {
	switch t {
	case domain.OptionInteger:
		return discordgo.ApplicationCommandOptionInteger
	case domain.OptionSubCommand:
		return discordgo.ApplicationCommandOptionSubCommand
	default:
		return discordgo.ApplicationCommandOptionString
	}
}
