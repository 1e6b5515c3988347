package rssfeed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/preston-bernstein/free-games-service/internal/domain/games"
)

// ToFreeGame normalizes a feed deal. An unparsable publish date is carried through
// raw so time windows drop the deal instead of treating it as new.
func ToFreeGame(g games.RSSGame) games.FreeGame {
	release := strings.TrimSpace(g.PubDate)
	if t, ok := games.ParseReleaseDate(release); ok {
		release = t.UTC().Format(games.DateLayout)
	}

	return games.FreeGame{
		ID:               g.ID,
		Title:            g.Title,
		Thumbnail:        games.ResolveThumbnail(g.Thumbnail),
		ShortDescription: plainText(g.Description),
		GameURL:          g.URL,
		Genre:            g.Category,
		Platform:         g.Platform,
		Publisher:        g.Developer,
		Developer:        g.Developer,
		ReleaseDate:      release,
		ProfileURL:       g.URL,
	}
}

// ToFreeGames maps a feed listing, preserving order.
func ToFreeGames(list []games.RSSGame) []games.FreeGame {
	out := make([]games.FreeGame, 0, len(list))
	for _, g := range list {
		out = append(out, ToFreeGame(g))
	}
	return out
}

// plainText flattens description markup into single-spaced text.
func plainText(markup string) string {
	if !strings.Contains(markup, "<") {
		return strings.TrimSpace(spaceRe.ReplaceAllString(markup, " "))
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strings.TrimSpace(markup)
	}
	return strings.TrimSpace(spaceRe.ReplaceAllString(doc.Text(), " "))
}
