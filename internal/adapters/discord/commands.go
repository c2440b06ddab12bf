package discord

import "github.com/bwmarrin/discordgo"

func f64(v float64) *float64 {
	return &v
}

var commandDefinitions = []*discordgo.ApplicationCommand{
	{
		Name:        "hello",
		Description: "Says hello to you!",
	},
	{
		Name:        "ask",
		Description: "Ask Ngubot a question",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "question",
				Description: "Your question for Ngubot",
				Required:    true,
			},
		},
	},
	{
		Name:        "roll",
		Description: "Roll dice",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "dice",
				Description: "Number of dice (1-20, default: 1)",
				MinValue:    f64(1),
				MaxValue:    20,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "sides",
				Description: "Number of sides (2-100, default: 6)",
				MinValue:    f64(2),
				MaxValue:    100,
			},
		},
	},
	{
		Name:        "members",
		Description: "List all server members",
	},
	{
		Name:        "dm",
		Description: "Send a direct message to a user",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user to send a DM to",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "message",
				Description: "The message to send",
				Required:    true,
			},
		},
	},
	{
		Name:        "setchannel",
		Description: "Set current channel as Ngubot's dedicated channel",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "enable",
				Description: "Enable/disable this channel as Ngubot channel",
				Required:    true,
			},
		},
	},
}
