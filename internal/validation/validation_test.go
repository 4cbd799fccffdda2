package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	require.NoError(t, Email("user@example.com"))
	require.NoError(t, Email("first.last+tag@sub.example.co"))

	require.Error(t, Email(""))
	require.Error(t, Email("not-an-email"))
	require.Error(t, Email("missing@tld"))
	require.Error(t, Email("@example.com"))
}

func TestUsername(t *testing.T) {
	require.NoError(t, Username("abc"))
	require.NoError(t, Username("user_name-42"))
	require.NoError(t, Username(strings.Repeat("a", 20)))

	require.Error(t, Username(""))
	require.Error(t, Username("ab"))
	require.Error(t, Username(strings.Repeat("a", 21)))
	require.Error(t, Username("has space"))
	require.Error(t, Username("has.dot"))
}

func TestPassword(t *testing.T) {
	require.NoError(t, Password("Sup3rsecret!"))

	require.Error(t, Password(""))
	require.Error(t, Password("Sh0rt!a"))
	require.Error(t, Password("alllowercase1!"))
	require.Error(t, Password("ALLUPPERCASE1!"))
	require.Error(t, Password("NoDigitsHere!"))
	require.Error(t, Password("NoSpecials123"))
}

func TestFullName(t *testing.T) {
	require.NoError(t, FullName("Jo"))
	require.Error(t, FullName(""))
	require.Error(t, FullName("J"))
}

func TestProjectTitle(t *testing.T) {
	require.NoError(t, ProjectTitle("abc"))
	require.NoError(t, ProjectTitle(strings.Repeat("a", 100)))

	require.Error(t, ProjectTitle(""))
	require.Error(t, ProjectTitle("ab"))
	require.Error(t, ProjectTitle(strings.Repeat("a", 101)))
}

func TestProjectDescription(t *testing.T) {
	require.NoError(t, ProjectDescription("long enough"))
	require.Error(t, ProjectDescription(""))
	require.Error(t, ProjectDescription("too short"))
	require.Error(t, ProjectDescription(strings.Repeat("a", 2001)))
}

func TestReviewText(t *testing.T) {
	require.NoError(t, ReviewText("ok"))
	require.Error(t, ReviewText(""))
	require.Error(t, ReviewText("   "))
	require.Error(t, ReviewText(strings.Repeat("a", 1001)))
}

func TestRating(t *testing.T) {
	for _, s := range []string{"1", "2", "3", "4", "5"} {
		value, err := Rating(s)
		require.NoError(t, err)
		require.GreaterOrEqual(t, value, 1)
		require.LessOrEqual(t, value, 5)
	}

	for _, s := range []string{"", "0", "6", "-1", "3.5", "five"} {
		_, err := Rating(s)
		require.Error(t, err, "rating %q should be rejected", s)
	}
}
