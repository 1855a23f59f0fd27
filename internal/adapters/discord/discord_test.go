package discord

import (
	"testing"

	"guildbot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToApplicationCommands(t *testing.T) {
	converted := toApplicationCommands([]*domain.Fingerprint{{
		Name:        "poll",
		Description: "Create and run polls",
		Options: []domain.FingerprintOption{{
			Name:        "create",
			Description: "Create a poll",
			Type:        domain.OptionSubCommand,
			Options: []domain.FingerprintOption{
				{
					Name:        "name",
					Description: "The name of the poll",
					Type:        domain.OptionString,
					Required:    true,
				},
				{
					Name:        "kind",
					Description: "The kind of poll",
					Type:        domain.OptionString,
					Choices: []domain.FingerprintChoice{
						{Name: "Single choice", Value: "single_choice"},
					},
				},
			},
		}},
	}})

	require.Len(t, converted, 1)
	assert.Equal(t, "poll", converted[0].Name)
	require.Len(t, converted[0].Options, 1)

	create := converted[0].Options[0]
	assert.Equal(t, discordgo.ApplicationCommandOptionSubCommand, create.Type)
	require.Len(t, create.Options, 2)
	assert.Equal(t, discordgo.ApplicationCommandOptionString, create.Options[0].Type)
	assert.True(t, create.Options[0].Required)
	require.Len(t, create.Options[1].Choices, 1)
	assert.Equal(t, "single_choice", create.Options[1].Choices[0].Value)
}

func TestToOptionType(t *testing.T) {
	assert.Equal(t, discordgo.ApplicationCommandOptionString, toOptionType(domain.OptionString))
	assert.Equal(t, discordgo.ApplicationCommandOptionInteger, toOptionType(domain.OptionInteger))
	assert.Equal(t, discordgo.ApplicationCommandOptionSubCommand, toOptionType(domain.OptionSubCommand))
}

func TestToUser(t *testing.T) {
	assert.Nil(t, toUser(nil))

	user := toUser(&discordgo.User{ID: "u1", Username: "tester", Bot: true})
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "tester", user.Username)
	assert.True(t, user.Bot)
}

func TestInteractionUserPrefersMember(t *testing.T) {
	memberUser := &discordgo.User{ID: "member"}
	directUser := &discordgo.User{ID: "direct"}

	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: memberUser},
		User:   directUser,
	}}
	assert.Equal(t, memberUser, interactionUser(i))

	i = &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{User: directUser}}
	assert.Equal(t, directUser, interactionUser(i))
}

func TestModalFields(t *testing.T) {
	fields := modalFields([]discordgo.MessageComponent{
		&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.TextInput{CustomID: "option_label", Value: "Pizza"},
		}},
		&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.TextInput{CustomID: "option_description", Value: "with cheese"},
		}},
	})

	assert.Equal(t, map[string]string{
		"option_label":       "Pizza",
		"option_description": "with cheese",
	}, fields)
}
