package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoster() []Identity {
	return []Identity{
		{ID: "1", Handle: "alice", DisplayName: "Alice", Aliases: []string{"Wonder"}},
		{ID: "2", Handle: "keyfungus", DisplayName: "Key", Nickname: "keymaster", Aliases: []string{"Ngu", "งู"}},
		{ID: "3", Handle: "padkapaow", DisplayName: "padkapaow"},
	}
}

func TestFindMemberByHandleAndAliasResolveSameIdentity(t *testing.T) {
	roster := testRoster()

	byHandle, err := FindMember(roster, "alice")
	require.NoError(t, err)

	byAlias, err := FindMember(roster, "Wonder")
	require.NoError(t, err)

	assert.Equal(t, byHandle, byAlias)
	assert.Equal(t, "1", byHandle.ID)
}

func TestFindMemberPrefersExactOverAlias(t *testing.T) {
	roster := []Identity{
		{ID: "1", Handle: "boss", DisplayName: "The Boss"},
		{ID: "2", Handle: "HappyBT", DisplayName: "BT", Aliases: []string{"Boss"}},
	}

	found, err := FindMember(roster, "boss")
	require.NoError(t, err)
	assert.Equal(t, "1", found.ID)
}

func TestFindMemberMatchesNicknameCaseInsensitive(t *testing.T) {
	found, err := FindMember(testRoster(), "KEYMASTER")
	require.NoError(t, err)
	assert.Equal(t, "2", found.ID)
}

func TestFindMemberThaiAlias(t *testing.T) {
	found, err := FindMember(testRoster(), "งู")
	require.NoError(t, err)
	assert.Equal(t, "keyfungus", found.Handle)
}

func TestFindMemberSubstringFallbackResolvesPartialNames(t *testing.T) {
	found, err := FindMember(testRoster(), "padka")
	require.NoError(t, err)
	assert.Equal(t, "3", found.ID)

	// either direction: the raw name may also contain the handle
	found, err = FindMember(testRoster(), "alice smith")
	require.NoError(t, err)
	assert.Equal(t, "1", found.ID)
}

func TestFindMemberMissReturnsNotFound(t *testing.T) {
	_, err := FindMember(testRoster(), "nonexistent")
	assert.ErrorIs(t, err, ErrMemberNotFound)

	_, err = FindMember(nil, "alice")
	assert.ErrorIs(t, err, ErrMemberNotFound)

	_, err = FindMember(testRoster(), "   ")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestIdentityLabelParenthesizesDifferingHandle(t *testing.T) {
	assert.Equal(t, "Key (keyfungus)", Identity{Handle: "keyfungus", DisplayName: "Key"}.Label())
	assert.Equal(t, "padkapaow", Identity{Handle: "padkapaow", DisplayName: "padkapaow"}.Label())
	assert.Equal(t, "ghost", Identity{Handle: "ghost"}.Label())
}

func TestAliasTableLookupIsCaseInsensitive(t *testing.T) {
	table := AliasTable{"HappyBT": {"Boss"}}

	assert.Equal(t, []string{"Boss"}, table.AliasesFor("HappyBT"))
	assert.Equal(t, []string{"Boss"}, table.AliasesFor("happybt"))
	assert.Nil(t, table.AliasesFor("orengipratuu"))
}
