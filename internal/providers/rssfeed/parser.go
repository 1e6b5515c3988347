package rssfeed

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/preston-bernstein/free-games-service/internal/domain/games"
	"github.com/preston-bernstein/free-games-service/internal/logging"
)

const (
	sourceName       = "rss"
	defaultPrice     = "$4.99"
	defaultDeveloper = "Unknown"
	defaultCategory  = "Game"
	defaultDiscount  = "100%"
)

var (
	itemRe        = regexp.MustCompile(`(?s)<item>(.*?)</item>`)
	discountTitle = regexp.MustCompile(`^\s*\[(\d+%)\]\s*(.+?)\s+–`)
	groupRe       = regexp.MustCompile(`\[.*?\]|\(.*?\)`)
	spaceRe       = regexp.MustCompile(`\s+`)
)

// errIncompleteItem marks items the feed publishes without a usable name or link.
var errIncompleteItem = errors.New("item has no name or url")

var tagPatterns = map[string][2]*regexp.Regexp{}

func init() {
	for _, tag := range []string{"title", "link", "description", "category", "pubDate"} {
		tagPatterns[tag] = [2]*regexp.Regexp{
			regexp.MustCompile(`(?s)<` + tag + `[^>]*>\s*<!\[CDATA\[(.*?)\]\]>\s*</` + tag + `>`),
			regexp.MustCompile(`(?s)<` + tag + `[^>]*>(.*?)</` + tag + `>`),
		}
	}
}

// ParseStats reports one parse. Skipped counts extraction failures; Dropped counts
// items that were well-formed but carried no name or URL.
type ParseStats struct {
	Items   int
	Skipped int
	Dropped int
}

// Parser turns feed XML into RSSGame records.
type Parser struct {
	extractor Extractor
	logger    *slog.Logger
	now       func() time.Time
}

// NewParser builds a parser around an extractor. A nil extractor falls back to the pattern variant.
func NewParser(extractor Extractor, logger *slog.Logger) *Parser {
	if extractor == nil {
		extractor = PatternExtractor{}
	}
	return &Parser{
		extractor: extractor,
		logger:    logger,
		now:       time.Now,
	}
}

// Parse extracts every well-formed item. Items that fail extraction are skipped
// with a warning, items without a name or URL are dropped quietly, and the rest
// are returned in feed order.
func (p *Parser) Parse(ctx context.Context, xmlText string, platform games.Platform) ([]games.RSSGame, ParseStats) {
	logger := logging.FromContext(ctx, p.logger)
	out := make([]games.RSSGame, 0)
	var stats ParseStats

	for i, m := range itemRe.FindAllStringSubmatch(xmlText, -1) {
		game, err := p.parseItem(m[1], platform, i)
		if errors.Is(err, errIncompleteItem) {
			stats.Dropped++
			logging.Debug(logger, "dropping incomplete feed item",
				logging.FieldPlatform, string(platform),
				"index", i,
			)
			continue
		}
		if err != nil {
			stats.Skipped++
			logging.Warn(logger, "skipping feed item",
				logging.FieldPlatform, string(platform),
				"index", i,
				"error", err,
			)
			continue
		}
		out = append(out, game)
		stats.Items++
	}
	return out, stats
}

func (p *Parser) parseItem(block string, platform games.Platform, index int) (games.RSSGame, error) {
	title := readTag(block, "title")
	link := strings.TrimSpace(readTag(block, "link"))
	description := readTag(block, "description")
	category := strings.TrimSpace(readTag(block, "category"))
	pubDate := strings.TrimSpace(readTag(block, "pubDate"))

	if category == "" {
		category = defaultCategory
	}
	if pubDate == "" {
		pubDate = p.now().UTC().Format(time.RFC1123Z)
	}

	name, discount := SplitTitle(title)

	fields, err := p.extractor.Extract(description, platform)
	if err != nil {
		return games.RSSGame{}, fmt.Errorf("%s extractor: %w", p.extractor.Name(), err)
	}

	url := fields.StoreURL
	if url == "" {
		url = link
	}
	if name == "" || url == "" {
		return games.RSSGame{}, errIncompleteItem
	}

	price := fields.Price
	if price == "" {
		price = defaultPrice
	}
	developer := fields.Developer
	if developer == "" {
		developer = defaultDeveloper
	}

	return games.RSSGame{
		ID:            fmt.Sprintf("%s-%s-%d", sourceName, platform, index),
		Title:         name,
		Thumbnail:     games.ResolveThumbnail(fields.Thumbnail),
		Description:   description,
		URL:           url,
		Developer:     developer,
		Category:      category,
		OriginalPrice: price,
		CurrentPrice:  games.CurrentPriceFree,
		Discount:      discount,
		Platform:      platform.Label(),
		PubDate:       pubDate,
	}, nil
}

// SplitTitle separates a "[50%] Name – Store" title into name and discount. Only the
// en dash separates the store, so hyphenated names stay whole.
// Titles without that shape lose their bracket and parenthesis groups and get a 100% discount.
func SplitTitle(raw string) (name, discount string) {
	if m := discountTitle.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[2]), m[1]
	}
	stripped := groupRe.ReplaceAllString(raw, "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(stripped, " ")), defaultDiscount
}

// readTag prefers the CDATA form of a field over its plain form.
func readTag(block, tag string) string {
	patterns := tagPatterns[tag]
	if m := patterns[0].FindStringSubmatch(block); m != nil {
		return m[1]
	}
	if m := patterns[1].FindStringSubmatch(block); m != nil {
		return html.UnescapeString(m[1])
	}
	return ""
}
