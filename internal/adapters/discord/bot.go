package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/jngu/ngubot/internal/application"
	"github.com/jngu/ngubot/internal/domain"
	"github.com/jngu/ngubot/internal/ports"
)

// Bot binds the gateway events to the orchestrator: slash-command
// interactions and plain messages come in, replies go out. It owns no
// conversation state of its own; everything is injected.
type Bot struct {
	gateway   *Gateway
	responder *application.Responder
	history   *application.HistoryStore
	actions   *application.ActionLog
	channels  *application.ChannelTable
	clock     ports.Clock
	log       zerolog.Logger
}

type Deps struct {
	Responder *application.Responder
	History   *application.HistoryStore
	Actions   *application.ActionLog
	Channels  *application.ChannelTable
	Clock     ports.Clock
	Log       zerolog.Logger
}

func NewBot(gateway *Gateway, deps Deps) *Bot {
	clock := deps.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	b := &Bot{
		gateway:   gateway,
		responder: deps.Responder,
		history:   deps.History,
		actions:   deps.Actions,
		channels:  deps.Channels,
		clock:     clock,
		log:       deps.Log.With().Str("component", "bot").Logger(),
	}

	gateway.session.AddHandler(b.onReady)
	gateway.session.AddHandler(b.onInteraction)
	gateway.session.AddHandler(b.onMessage)

	return b
}

// Open connects to the gateway and registers the slash commands globally.
func (b *Bot) Open() error {
	if err := b.gateway.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	appID := b.gateway.session.State.User.ID
	if _, err := b.gateway.session.ApplicationCommandBulkOverwrite(appID, "", commandDefinitions); err != nil {
		closeErr := b.gateway.session.Close()

		return fmt.Errorf("register application commands: %w", errors.Join(err, closeErr))
	}

	return nil
}

func (b *Bot) Close() error {
	return b.gateway.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.log.Info().Str("user", r.User.Username).Msg("logged in")
}

// selfUserID is the bot's own account id, known once the session is ready.
func (b *Bot) selfUserID() string {
	if b.gateway.session.State.User == nil {
		return ""
	}

	return b.gateway.session.State.User.ID
}

// interactionExpired recognizes the gateway's "unknown interaction" signal:
// the triggering interaction token lapsed before we replied. A second reply
// attempt would fail the same way, so callers must give up quietly.
func interactionExpired(err error) bool {
	if errors.Is(err, domain.ErrInteractionExpired) {
		return true
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		return restErr.Message.Code == discordgo.ErrCodeUnknownInteraction
	}

	return false
}
