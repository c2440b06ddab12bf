package domain

import "strings"

// Identity is one resolved member of a conversation surface. Handle is the
// platform account name, DisplayName the name shown in the guild, Nickname
// an optional per-guild override. Aliases come from the configured alias
// table, joined in when the roster snapshot is built.
type Identity struct {
	ID          string
	Handle      string
	DisplayName string
	Nickname    string
	Aliases     []string
}

// Label formats the identity the way it is presented to the model and in
// member listings: display name, with the handle parenthesized when it
// differs.
func (id Identity) Label() string {
	name := id.DisplayName
	if name == "" {
		name = id.Handle
	}
	if id.Handle != "" && !strings.EqualFold(name, id.Handle) {
		name += " (" + id.Handle + ")"
	}

	return name
}

// AliasTable maps a platform handle to the human names its owner goes by,
// in any language. It is immutable configuration.
type AliasTable map[string][]string

// AliasesFor looks the handle up case-insensitively.
func (t AliasTable) AliasesFor(handle string) []string {
	if aliases, ok := t[handle]; ok {
		return aliases
	}
	for owner, aliases := range t {
		if strings.EqualFold(owner, handle) {
			return aliases
		}
	}

	return nil
}

// FindMember resolves a free-text name from model output or a command
// argument against a roster snapshot. Resolution order, first match wins,
// case-insensitive:
//
//  1. exact match on handle, display name, or nickname
//  2. exact match on a configured alias of the member
//  3. substring match (either direction) on handle, display name, or
//     nickname, tolerating minor misspellings in model output
//
// A miss returns ErrMemberNotFound; callers treat that as a normal outcome.
func FindMember(roster []Identity, rawName string) (Identity, error) {
	name := strings.ToLower(strings.TrimSpace(rawName))
	if name == "" || len(roster) == 0 {
		return Identity{}, ErrMemberNotFound
	}

	for _, member := range roster {
		if matchesExact(member, name) {
			return member, nil
		}
	}

	for _, member := range roster {
		for _, alias := range member.Aliases {
			if strings.ToLower(alias) == name {
				return member, nil
			}
		}
	}

	for _, member := range roster {
		if matchesSubstring(member, name) {
			return member, nil
		}
	}

	return Identity{}, ErrMemberNotFound
}

func matchesExact(member Identity, lowered string) bool {
	for _, candidate := range []string{member.Handle, member.DisplayName, member.Nickname} {
		if candidate != "" && strings.ToLower(candidate) == lowered {
			return true
		}
	}

	return false
}

func matchesSubstring(member Identity, lowered string) bool {
	for _, candidate := range []string{member.Handle, member.DisplayName, member.Nickname} {
		if candidate == "" {
			continue
		}
		c := strings.ToLower(candidate)
		if strings.Contains(c, lowered) || strings.Contains(lowered, c) {
			return true
		}
	}

	return false
}
