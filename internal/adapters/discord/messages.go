package discord

import (
	"context"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jngu/ngubot/internal/application"
	"github.com/jngu/ngubot/internal/domain"
)

var mentionMarkup = regexp.MustCompile(`<@!?\d+>`)

// keyword reactions, best effort: failures are swallowed.
var keywordReactions = []struct {
	keyword string
	emoji   string
}{
	{"ice", "🥶"},
	{"งู", "🐍"},
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Any("panic", r).Str("channel", m.ChannelID).Msg("message handler panicked")
			b.reply(s, m, application.ReplyModelError)
		}
	}()

	key := domain.ConversationKey(m.ChannelID)
	isPrivate := m.GuildID == ""
	lowered := strings.ToLower(m.Content)

	for _, r := range keywordReactions {
		if strings.Contains(lowered, r.keyword) {
			_ = s.MessageReactionAdd(m.ChannelID, m.ID, r.emoji)
		}
	}

	if strings.EqualFold(strings.TrimSpace(m.Content), "!help") {
		b.replyHelp(s, m, key)
		return
	}

	tag, engage := b.responder.ShouldEngage(application.InboundMessage{
		Key:       key,
		GuildID:   m.GuildID,
		Text:      m.Content,
		Mentioned: mentionsUser(m.Mentions, b.selfUserID()),
		IsPrivate: isPrivate,
	})
	if !engage {
		// Passive listening: the turn still enters history with speaker
		// attribution so later engaged turns have the full conversation.
		b.history.Ensure(key, isPrivate)
		b.history.Append(key, domain.Turn{
			Role:    domain.RoleUser,
			Content: m.Content,
			Speaker: b.messageAuthor(m).DisplayName,
		})
		return
	}

	b.log.Debug().Str("rule", tag).Str("channel", m.ChannelID).Msg("engaging")
	_ = s.ChannelTyping(m.ChannelID)

	ctx := context.Background()
	var roster []domain.Identity
	if !isPrivate {
		snapshot, err := b.gateway.Roster(ctx, m.GuildID)
		if err != nil {
			b.log.Warn().Err(err).Str("guild", m.GuildID).Msg("roster fetch failed")
		} else {
			roster = snapshot
		}
	}

	reply := b.responder.Respond(ctx, application.Prompt{
		Key:       key,
		Text:      mentionMarkup.ReplaceAllString(m.Content, ""),
		Author:    b.messageAuthor(m),
		IsPrivate: isPrivate,
		Roster:    roster,
	})

	b.reply(s, m, reply)
}

func (b *Bot) replyHelp(s *discordgo.Session, m *discordgo.MessageCreate, key domain.ConversationKey) {
	suffix := "mention @Ngubot with your question!"
	if b.channels.IsDedicated(m.GuildID, key) {
		suffix = "or just chat normally!"
	}
	b.reply(s, m, "Use slash commands: `/hello`, `/ask`, `/roll`, `/members`, `/dm`, `/setchannel`, "+suffix)
}

func (b *Bot) reply(s *discordgo.Session, m *discordgo.MessageCreate, text string) {
	if _, err := s.ChannelMessageSendReply(m.ChannelID, text, m.Reference()); err != nil {
		b.log.Error().Err(err).Str("channel", m.ChannelID).Msg("message reply failed")
	}
}

func (b *Bot) messageAuthor(m *discordgo.MessageCreate) domain.Identity {
	nick := ""
	if m.Member != nil {
		nick = m.Member.Nick
	}

	return b.gateway.identityFor(m.Author, nick)
}

func mentionsUser(mentions []*discordgo.User, userID string) bool {
	if userID == "" {
		return false
	}
	for _, user := range mentions {
		if user != nil && user.ID == userID {
			return true
		}
	}

	return false
}
