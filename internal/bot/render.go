package bot

import (
	"fmt"
	"regexp"
	"strconv"

	tele "gopkg.in/telebot.v3"

	"github.com/rx3lixir/fonoteka/internal/catalog"
)

// The show-more affordance is a reply-keyboard button whose label encodes
// the whole continuation: current page, page count and the query. The next
// request is derived entirely from the echoed label, no state is held here.
var showMoreRe = regexp.MustCompile(`^\((\d+)/\d+\) Show more for "(.+)"$`)

// ShowMoreLabel encodes a page's continuation metadata into a button label.
func ShowMoreLabel(page *catalog.Page) string {
	return fmt.Sprintf(`(%d/%d) Show more for "%s"`, page.Number, page.TotalPages, page.Query)
}

// ParseShowMore recognizes an echoed show-more label and returns the query
// together with the number of the page to fetch next.
func ParseShowMore(text string) (query string, nextPage int, ok bool) {
	m := showMoreRe.FindStringSubmatch(text)
	if m == nil {
		return "", 0, false
	}

	page, err := strconv.Atoi(m[1])
	if err != nil {
		return "", 0, false
	}

	return m[2], page + 1, true
}

// resultMarkup builds the reply markup sent along with every track of a
// page: a show-more button while more results exist, otherwise a keyboard
// removal so a stale continuation doesn't linger in the chat.
func resultMarkup(page *catalog.Page) *tele.ReplyMarkup {
	if !page.ShowMore {
		return &tele.ReplyMarkup{RemoveKeyboard: true}
	}

	return &tele.ReplyMarkup{
		ResizeKeyboard: true,
		ReplyKeyboard: [][]tele.ReplyButton{
			{{Text: ShowMoreLabel(page)}},
		},
	}
}
