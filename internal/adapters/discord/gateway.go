package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/jngu/ngubot/internal/domain"
	"github.com/jngu/ngubot/internal/ports"
)

const rosterPageSize = 1000

// Gateway wraps the discordgo session behind the ports the orchestrator
// needs: fetching a live roster snapshot and sending direct messages. The
// configured alias table is joined into every snapshot here, so the rest of
// the system only ever sees resolved identities.
type Gateway struct {
	session *discordgo.Session
	aliases domain.AliasTable
	log     zerolog.Logger
}

var (
	_ ports.DirectMessenger = (*Gateway)(nil)
	_ ports.RosterProvider  = (*Gateway)(nil)
)

func NewGateway(token string, aliases domain.AliasTable, log zerolog.Logger) (*Gateway, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent |
		discordgo.IntentGuildMessageReactions |
		discordgo.IntentGuildPresences |
		discordgo.IntentGuildMembers |
		discordgo.IntentDirectMessages

	return &Gateway{
		session: session,
		aliases: aliases,
		log:     log.With().Str("component", "discord").Logger(),
	}, nil
}

// Roster returns the guild's current non-bot members. The gateway state
// cache is preferred; an empty cache falls back to the REST endpoint so a
// fresh process still sees the membership.
func (g *Gateway) Roster(ctx context.Context, guildID string) ([]domain.Identity, error) {
	if guildID == "" {
		return nil, nil
	}

	var members []*discordgo.Member
	if guild, err := g.session.State.Guild(guildID); err == nil && len(guild.Members) > 0 {
		members = guild.Members
	} else {
		fetched, err := fetchAllMembers(func(after string, limit int) ([]*discordgo.Member, error) {
			return g.session.GuildMembers(guildID, after, limit, discordgo.WithContext(ctx))
		})
		if err != nil {
			return nil, fmt.Errorf("fetch guild members: %w", err)
		}
		members = fetched
	}

	roster := make([]domain.Identity, 0, len(members))
	for _, member := range members {
		if member.User == nil || member.User.Bot {
			continue
		}
		roster = append(roster, g.identityFor(member.User, member.Nick))
	}

	return roster, nil
}

// memberPager fetches one page of guild members starting after the given
// member ID.
type memberPager func(after string, limit int) ([]*discordgo.Member, error)

// fetchAllMembers walks the member list endpoint page by page. The endpoint
// caps each page at rosterPageSize; guilds above that size need the cursor
// walk to see the full membership.
func fetchAllMembers(fetch memberPager) ([]*discordgo.Member, error) {
	var members []*discordgo.Member
	after := ""
	for {
		page, err := fetch(after, rosterPageSize)
		if err != nil {
			return nil, err
		}
		members = append(members, page...)
		if len(page) < rosterPageSize {
			return members, nil
		}
		last := page[len(page)-1]
		if last.User == nil {
			return members, nil
		}
		after = last.User.ID
	}
}

// SendDirectMessage opens (or reuses) the DM channel with the recipient and
// delivers the text. Discord rejects the send when the recipient has DMs
// disabled; that comes back as a plain error for the caller to record.
func (g *Gateway) SendDirectMessage(ctx context.Context, recipient domain.Identity, text string) error {
	if recipient.ID == "" {
		return errors.New("recipient has no platform id")
	}

	channel, err := g.session.UserChannelCreate(recipient.ID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("open dm channel with %s: %w", recipient.Handle, err)
	}
	if _, err := g.session.ChannelMessageSend(channel.ID, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send dm to %s: %w", recipient.Handle, err)
	}

	return nil
}

func (g *Gateway) identityFor(user *discordgo.User, nick string) domain.Identity {
	display := nick
	if display == "" {
		display = user.GlobalName
	}
	if display == "" {
		display = user.Username
	}

	return domain.Identity{
		ID:          user.ID,
		Handle:      user.Username,
		DisplayName: display,
		Nickname:    nick,
		Aliases:     g.aliases.AliasesFor(user.Username),
	}
}
