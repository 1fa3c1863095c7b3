package presentation

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/ntvinh11/chillbot/internal/modules/music/application/ports"
)

// suggestTimeout bounds the external lookup; Discord expects autocomplete
// responses within three seconds.
const suggestTimeout = 2 * time.Second

// minQueryLength is the minimum query length before suggestions are fetched.
const minQueryLength = 3

// AutocompleteHandler serves /play query autocomplete.
type AutocompleteHandler struct {
	suggester ports.SearchSuggester
}

// NewAutocompleteHandler creates a new AutocompleteHandler.
func NewAutocompleteHandler(suggester ports.SearchSuggester) *AutocompleteHandler {
	return &AutocompleteHandler{suggester: suggester}
}

// HandlePlay responds with search suggestions for the focused query option.
func (h *AutocompleteHandler) HandlePlay(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
) {
	var query string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "query" && opt.Focused {
			query = opt.StringValue()
		}
	}

	choices := []*discordgo.ApplicationCommandOptionChoice{}
	if len(query) >= minQueryLength {
		ctx, cancel := context.WithTimeout(context.Background(), suggestTimeout)
		defer cancel()

		suggestions, err := h.suggester.Suggest(ctx, query)
		if err != nil {
			slog.Debug("failed to fetch search suggestions", "error", err)
		}
		for _, suggestion := range suggestions {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  truncate(suggestion.Title, 100),
				Value: suggestion.URL,
			})
		}
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		slog.Debug("failed to send autocomplete response", "error", err)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
