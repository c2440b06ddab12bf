package application

import "regexp"

// engagementRule is one inspectable intent predicate: a tag naming what it
// detects and the pattern that detects it. Rules run against the lowercased
// message text in order; the first hit decides.
type engagementRule struct {
	tag     string
	pattern *regexp.Regexp
}

// directedAtBotRules answers "does this message expect the bot to reply".
// It applies only inside the dedicated channel, where the bar for engaging
// is deliberately low.
var directedAtBotRules = []engagementRule{
	{"question-opener", regexp.MustCompile(`^(what|how|when|where|why|who|can you|could you|do you|are you|will you|you)\b`)},
	{"question-mark", regexp.MustCompile(`\?$`)},
	{"imperative", regexp.MustCompile(`^(tell me|explain|help|answer)\b`)},
	{"bot-name", regexp.MustCompile(`(ngubot|งูบอท)`)},
	// \b is ASCII-only, so the Thai greeting sits outside the boundary check
	{"greeting", regexp.MustCompile(`^((hey|hi|hello|yo|sup)\b|สวัสดี)`)},
	{"thanks", regexp.MustCompile(`^(thanks|thank you|thx)\b`)},
	{"praise", regexp.MustCompile(`^(good|nice|cool|awesome|great)\b`)},
	{"exclamation", regexp.MustCompile(`^(wtf|what the|omg|lol|lmao)\b`)},
	{"first-person", regexp.MustCompile(`^(i think|i feel|i want|i need|i have)\b`)},
	{"opinion-request", regexp.MustCompile(`(what do you think|your opinion|do you agree)`)},
}

// wantsDMRules answers "does this message ask the bot to deliver a DM".
// This set is independent of directedAtBotRules: a DM request engages the
// bot on any shared surface, dedicated channel or not.
var wantsDMRules = []engagementRule{
	{"dm-to-me", regexp.MustCompile(`\b(dm me|message me|send me a (dm|message))\b`)},
	{"dm-to-other", regexp.MustCompile(`\bsend (a )?(dm|message) to\b`)},
	{"dm-verb", regexp.MustCompile(`\bdm \S+`)},
}

func matchAny(rules []engagementRule, lowered string) (string, bool) {
	for _, rule := range rules {
		if rule.pattern.MatchString(lowered) {
			return rule.tag, true
		}
	}

	return "", false
}
