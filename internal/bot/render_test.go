package bot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rx3lixir/fonoteka/internal/catalog"
)

func TestShowMoreLabelRoundTrip(t *testing.T) {
	page := &catalog.Page{
		Query:      "summer of haze",
		Number:     2,
		TotalPages: 3,
		ShowMore:   true,
	}

	query, nextPage, ok := ParseShowMore(ShowMoreLabel(page))

	require.True(t, ok)
	require.Equal(t, "summer of haze", query)
	require.Equal(t, 3, nextPage)
}

func TestParseShowMoreKeepsQuotedQueries(t *testing.T) {
	query, nextPage, ok := ParseShowMore(`(1/4) Show more for ""aes dana" "haze""`)

	require.True(t, ok)
	require.Equal(t, `"aes dana" "haze"`, query)
	require.Equal(t, 2, nextPage)
}

func TestParseShowMoreRejectsPlainText(t *testing.T) {
	for _, text := range []string{
		"summer of haze",
		"Show more",
		`(x/3) Show more for "haze"`,
		"",
	} {
		_, _, ok := ParseShowMore(text)
		require.False(t, ok, "text=%q", text)
	}
}

func TestResultMarkup(t *testing.T) {
	more := resultMarkup(&catalog.Page{Query: "haze", Number: 1, TotalPages: 3, ShowMore: true})
	require.Len(t, more.ReplyKeyboard, 1)
	require.Equal(t, `(1/3) Show more for "haze"`, more.ReplyKeyboard[0][0].Text)
	require.False(t, more.RemoveKeyboard)

	last := resultMarkup(&catalog.Page{Query: "haze", Number: 3, TotalPages: 3, ShowMore: false})
	require.True(t, last.RemoveKeyboard)
	require.Empty(t, last.ReplyKeyboard)
}
