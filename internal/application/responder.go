package application

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jngu/ngubot/internal/domain"
	"github.com/jngu/ngubot/internal/ports"
)

const DefaultReplyLimit = 1900

// Canned user-visible replies. Failures always surface as one of these,
// never as silence or a raw error.
const (
	ReplyPromptForInput = "Hi! Ask me anything!"
	ReplyNotConfigured  = "❌ OpenRouter API key not configured!"
	ReplyTryAgain       = "🤔 I got a bit confused there. Could you try asking again?"
	ReplyModelError     = "❌ Sorry, I encountered an error while processing your request."
	ReplyDMSent         = "📩 I sent you a DM!"
	ReplyDMFailed       = "❌ Couldn't send you a DM - you might have them disabled."
)

var nameMentionPattern = regexp.MustCompile(`(ngubot|งูบอท)`)

// Responder is the per-event policy: it decides whether to engage, drives
// context assembly, invokes the completion service, executes any extracted
// DM directive, commits the turn, and produces the final user-visible text.
// All state it touches is injected at construction.
type Responder struct {
	history    *HistoryStore
	actions    *ActionLog
	assembler  *ContextAssembler
	channels   *ChannelTable
	completer  ports.Completer
	messenger  ports.DirectMessenger
	clock      ports.Clock
	replyLimit int
	log        zerolog.Logger
}

func NewResponder(
	history *HistoryStore,
	actions *ActionLog,
	channels *ChannelTable,
	completer ports.Completer,
	messenger ports.DirectMessenger,
	clock ports.Clock,
	replyLimit int,
	log zerolog.Logger,
) *Responder {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if replyLimit <= 0 {
		replyLimit = DefaultReplyLimit
	}

	return &Responder{
		history:    history,
		actions:    actions,
		assembler:  NewContextAssembler(history, actions),
		channels:   channels,
		completer:  completer,
		messenger:  messenger,
		clock:      clock,
		replyLimit: replyLimit,
		log:        log.With().Str("component", "responder").Logger(),
	}
}

// InboundMessage is a plain (non-command) message as seen by the engagement
// decision. Text carries the raw content; Mentioned is whether the bot was
// explicitly pinged.
type InboundMessage struct {
	Key       domain.ConversationKey
	GuildID   string
	Text      string
	Mentioned bool
	IsPrivate bool
}

// ShouldEngage decides whether a plain message warrants a model call and
// returns the tag of the rule that decided, for logging. Command
// invocations never pass through here; they always engage.
//
// Private surfaces always engage. In a guild's dedicated channel the
// directed-at-bot and wants-DM heuristics both apply; elsewhere only an
// explicit mention (ping or bot name) or a wants-DM match engages. The two
// heuristic sets are independent and both are evaluated.
func (r *Responder) ShouldEngage(msg InboundMessage) (string, bool) {
	lowered := strings.ToLower(strings.TrimSpace(msg.Text))
	if lowered == "" && !msg.Mentioned {
		return "", false
	}

	if msg.IsPrivate {
		return "private-surface", true
	}

	if msg.Mentioned {
		return "mention", true
	}

	if r.channels.IsDedicated(msg.GuildID, msg.Key) {
		if tag, ok := matchAny(directedAtBotRules, lowered); ok {
			return tag, true
		}
		if tag, ok := matchAny(wantsDMRules, lowered); ok {
			return tag, true
		}

		return "", false
	}

	if nameMentionPattern.MatchString(lowered) {
		return "bot-name", true
	}
	if tag, ok := matchAny(wantsDMRules, lowered); ok {
		return tag, true
	}

	return "", false
}

// Prompt is one engaged conversational turn. Text has any mention markup
// already stripped by the gateway adapter; Roster is nil on private
// surfaces and the live snapshot on shared ones.
type Prompt struct {
	Key       domain.ConversationKey
	Text      string
	Author    domain.Identity
	IsPrivate bool
	Roster    []domain.Identity
}

// Respond runs one full turn and returns the user-visible reply, already
// truncated to the platform ceiling. Failures degrade to canned replies;
// the process never sees an error from a single turn. A failed model call
// leaves the committed user turn in place and adds no assistant turn.
func (r *Responder) Respond(ctx context.Context, p Prompt) string {
	question := strings.TrimSpace(p.Text)
	if question == "" {
		return ReplyPromptForInput
	}

	r.history.Ensure(p.Key, p.IsPrivate)
	r.history.Append(p.Key, domain.Turn{
		Role:    domain.RoleUser,
		Content: question,
		Speaker: speakerLabel(p.Author),
	})

	turns := r.assembler.Build(p.Key, p.Roster)

	raw, err := r.completer.Complete(ctx, turns)
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			return ReplyNotConfigured
		}
		r.log.Error().Err(err).Str("conversation", string(p.Key)).Msg("completion call failed")
		if errors.Is(err, domain.ErrEmptyCompletion) {
			return ReplyTryAgain
		}

		return ReplyModelError
	}

	directive, cleaned := domain.ExtractDirective(raw)
	if directive != nil && !p.IsPrivate && len(p.Roster) > 0 {
		cleaned = r.executeDirective(ctx, p, directive, cleaned)
	}

	final := strings.TrimSpace(cleaned)
	if final == "" {
		r.log.Warn().Str("conversation", string(p.Key)).Msg("model produced an empty reply")
		return ReplyTryAgain
	}

	r.history.Append(p.Key, domain.Turn{Role: domain.RoleAssistant, Content: final})

	return TruncateReply(final, r.replyLimit)
}

// executeDirective resolves the directive target, attempts the send,
// records the outcome, and appends a system note so the model knows what
// happened. The special target "me" resolves to the triggering user before
// any roster lookup, since the resolver has no notion of a current speaker.
func (r *Responder) executeDirective(ctx context.Context, p Prompt, d *domain.Directive, cleaned string) string {
	recipient, resolveErr := r.resolveTarget(p, d.Target)

	sendErr := resolveErr
	recipientLabel := d.Target
	if resolveErr == nil {
		recipientLabel = recipient.Label()
		sendErr = r.messenger.SendDirectMessage(ctx, recipient, d.Payload)
	}

	rec := domain.ActionRecord{
		ID:        uuid.NewString(),
		Recipient: recipientLabel,
		Content:   d.Payload,
		Timestamp: r.clock.Now(),
		Outcome:   domain.ActionSuccess,
	}
	note := fmt.Sprintf("[DM_SUCCESS: Message %q sent to %s]", d.Payload, d.Target)
	if sendErr != nil {
		rec.Outcome = domain.ActionFailure
		rec.ErrorDetail = sendErr.Error()
		note = fmt.Sprintf("[DM_FAILED: Could not send message to %s (user not found or DMs disabled)]", d.Target)
		r.log.Warn().Err(sendErr).Str("target", d.Target).Msg("directive send failed")
	} else {
		r.log.Info().Str("target", d.Target).Msg("directive DM sent")
	}
	r.actions.Record(rec)
	r.history.Append(p.Key, domain.Turn{Role: domain.RoleSystem, Content: note})

	if strings.TrimSpace(cleaned) == "" {
		if sendErr != nil {
			return ReplyDMFailed
		}

		return ReplyDMSent
	}

	return cleaned
}

func (r *Responder) resolveTarget(p Prompt, target string) (domain.Identity, error) {
	if strings.EqualFold(strings.TrimSpace(target), "me") && p.Author.ID != "" {
		return p.Author, nil
	}

	return domain.FindMember(p.Roster, target)
}

func speakerLabel(author domain.Identity) string {
	if author.DisplayName != "" {
		return author.DisplayName
	}

	return author.Handle
}

const truncationMarker = "..."

// TruncateReply bounds outbound text to the platform ceiling, counting in
// runes so multi-byte text is never split mid-character. The marker counts
// against the limit, so the result never exceeds it.
func TruncateReply(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	cut := limit - len([]rune(truncationMarker))
	if cut < 0 {
		cut = 0
	}

	return string(runes[:cut]) + truncationMarker
}
