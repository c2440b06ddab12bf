package discord

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/jngu/ngubot/internal/application"
	"github.com/jngu/ngubot/internal/domain"
)

const listTruncationMarker = "\n\n*List truncated*"

func (b *Bot) onInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	log := b.log.With().Str("command", data.Name).Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Msg("command handler panicked")
			b.respond(i, application.ReplyModelError)
		}
	}()

	switch data.Name {
	case "hello":
		b.handleHello(i)
	case "ask":
		b.handleAsk(i, data)
	case "roll":
		b.handleRoll(i, data)
	case "members":
		b.handleMembers(i)
	case "dm":
		b.handleDM(i, data)
	case "setchannel":
		b.handleSetChannel(i, data)
	default:
		log.Warn().Msg("unknown command")
	}
}

func (b *Bot) handleHello(i *discordgo.InteractionCreate) {
	author := b.interactionAuthor(i)
	b.respond(i, fmt.Sprintf("Hello %s! 👋", author.Handle))
}

// handleAsk runs the full orchestration for an explicit /ask. Commands
// always engage; the engagement heuristics are for plain messages only.
func (b *Bot) handleAsk(i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	question := stringOption(data.Options, "question")

	// The model call can outlive the three-second interaction window, so
	// acknowledge first and edit the reply once the turn completes.
	if !b.deferReply(i, false) {
		return
	}

	ctx := context.Background()
	isPrivate := i.GuildID == ""

	var roster []domain.Identity
	if !isPrivate {
		snapshot, err := b.gateway.Roster(ctx, i.GuildID)
		if err != nil {
			b.log.Warn().Err(err).Str("guild", i.GuildID).Msg("roster fetch failed")
		} else {
			roster = snapshot
		}
	}

	reply := b.responder.Respond(ctx, application.Prompt{
		Key:       domain.ConversationKey(i.ChannelID),
		Text:      question,
		Author:    b.interactionAuthor(i),
		IsPrivate: isPrivate,
		Roster:    roster,
	})

	b.editReply(i, fmt.Sprintf("**Question:** %s\n\n**Ngubot:** %s", question, reply))
}

func (b *Bot) handleRoll(i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	dice := int(integerOption(data.Options, "dice", 1))
	sides := int(integerOption(data.Options, "sides", 6))

	results := make([]string, dice)
	total := 0
	for n := range dice {
		roll := rand.IntN(sides) + 1
		total += roll
		results[n] = fmt.Sprintf("%d", roll)
	}

	var detail string
	if dice == 1 {
		detail = fmt.Sprintf("**Result:** %s", results[0])
	} else {
		detail = fmt.Sprintf("**Rolls:** [%s]\n**Total:** %d", strings.Join(results, ", "), total)
	}
	b.respond(i, fmt.Sprintf("🎲 Rolling %dd%d:\n%s", dice, sides, detail))
}

func (b *Bot) handleMembers(i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		b.respond(i, "This command only works in a server!")
		return
	}

	roster, err := b.gateway.Roster(context.Background(), i.GuildID)
	if err != nil {
		b.log.Error().Err(err).Str("guild", i.GuildID).Msg("roster fetch failed")
		b.respond(i, application.ReplyModelError)
		return
	}

	entries := make([]string, 0, len(roster))
	for _, member := range roster {
		entry := "**" + member.DisplayName + "**"
		if member.Nickname != "" && !strings.EqualFold(member.Nickname, member.Handle) {
			entry += " (" + member.Handle + ")"
		}
		entries = append(entries, entry)
	}

	listing := fmt.Sprintf("**Server Members (%d):**\n%s", len(entries), strings.Join(entries, "\n"))
	if runes := []rune(listing); len(runes) > application.DefaultReplyLimit {
		listing = string(runes[:application.DefaultReplyLimit]) + listTruncationMarker
	}
	b.respond(i, listing)
}

// handleDM relays a user-authored direct message through the bot. The send
// is recorded in the action log so the model's situational memory covers
// manually relayed messages too.
func (b *Bot) handleDM(i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	author := b.interactionAuthor(i)
	targetUser := userOption(data.Options, "user", b.gateway.session)
	text := stringOption(data.Options, "message")

	if targetUser == nil {
		b.respond(i, application.ReplyModelError)
		return
	}
	if targetUser.ID == author.ID || targetUser.ID == b.selfUserID() {
		b.respond(i, "You can't DM yourself through me! 😄")
		return
	}

	if !b.deferReply(i, true) {
		return
	}

	recipient := b.gateway.identityFor(targetUser, "")
	wrapped := fmt.Sprintf("📩 **Message from %s:**\n%s\n\n*Sent via Ngubot*", speakerName(author), text)

	err := b.gateway.SendDirectMessage(context.Background(), recipient, wrapped)
	rec := domain.ActionRecord{
		ID:        uuid.NewString(),
		Recipient: recipient.Label(),
		Content:   text,
		Timestamp: b.clock.Now(),
		Outcome:   domain.ActionSuccess,
	}
	if err != nil {
		rec.Outcome = domain.ActionFailure
		rec.ErrorDetail = err.Error()
	}
	b.actions.Record(rec)

	if err != nil {
		b.log.Warn().Err(err).Str("recipient", recipient.Handle).Msg("relayed dm failed")
		b.editReply(i, fmt.Sprintf("❌ Failed to send message to %s.", recipient.DisplayName))
		return
	}
	b.editReply(i, fmt.Sprintf("✅ Successfully sent your message to %s!", recipient.DisplayName))
}

func (b *Bot) handleSetChannel(i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	if i.GuildID == "" {
		b.respond(i, "This command only works in a server!")
		return
	}

	if boolOption(data.Options, "enable") {
		b.channels.Designate(i.GuildID, domain.ConversationKey(i.ChannelID))
		b.respond(i, "✅ **Ngubot Channel Set!**\nThis channel is now my dedicated channel.")
		return
	}

	b.channels.Clear(i.GuildID)
	b.respond(i, "❌ **Ngubot Channel Disabled!**")
}

func (b *Bot) interactionAuthor(i *discordgo.InteractionCreate) domain.Identity {
	if i.Member != nil && i.Member.User != nil {
		return b.gateway.identityFor(i.Member.User, i.Member.Nick)
	}
	if i.User != nil {
		return b.gateway.identityFor(i.User, "")
	}

	return domain.Identity{}
}

func (b *Bot) respond(i *discordgo.InteractionCreate, text string) {
	err := b.gateway.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: text},
	})
	if err != nil && !interactionExpired(err) {
		b.log.Error().Err(err).Msg("interaction reply failed")
	}
}

func (b *Bot) deferReply(i *discordgo.InteractionCreate, ephemeral bool) bool {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := b.gateway.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		if !interactionExpired(err) {
			b.log.Error().Err(err).Msg("interaction defer failed")
		}
		return false
	}

	return true
}

func (b *Bot) editReply(i *discordgo.InteractionCreate, text string) {
	_, err := b.gateway.session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &text})
	if err != nil && !interactionExpired(err) {
		b.log.Error().Err(err).Msg("interaction edit failed")
	}
}

func speakerName(id domain.Identity) string {
	if id.DisplayName != "" {
		return id.DisplayName
	}

	return id.Handle
}

func stringOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}

	return ""
}

func integerOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string, fallback int64) int64 {
	for _, opt := range options {
		if opt.Name == name {
			return opt.IntValue()
		}
	}

	return fallback
}

func boolOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) bool {
	for _, opt := range options {
		if opt.Name == name {
			return opt.BoolValue()
		}
	}

	return false
}

func userOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string, s *discordgo.Session) *discordgo.User {
	for _, opt := range options {
		if opt.Name == name {
			return opt.UserValue(s)
		}
	}

	return nil
}
