package presentation

import "github.com/bwmarrin/discordgo"

// Commands returns all slash commands for the music module.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "play",
			Description: "Searches the query on YouTube, or adds the URL to the queue",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "query",
					Description:  "URL or search term",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		{
			Name:        "join",
			Description: "Joins the voice channel you are in",
		},
		{
			Name:        "leave",
			Description: "Leaves the voice channel the bot is in, clearing the queue",
		},
		{
			Name:        "stop",
			Description: "Stops the current song and clears the queue",
		},
		{
			Name:        "skip",
			Description: "Skips the current song",
		},
		{
			Name:        "pause",
			Description: "Pauses the current song",
		},
		{
			Name:        "resume",
			Description: "Resumes playing the current song",
		},
		{
			Name:        "queue",
			Description: "Shows the next 10 songs in the queue",
		},
		{
			Name:        "chill",
			Description: "Play a random song from the chill playlist",
		},
	}
}
