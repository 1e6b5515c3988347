package rssfeed

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/preston-bernstein/free-games-service/internal/domain/games"
)

const (
	ExtractorPattern = "pattern"
	ExtractorMarkup  = "markup"
)

// Fields are the values pulled out of an item description. Empty means not found;
// defaults are applied by the parser.
type Fields struct {
	Price     string
	Developer string
	Thumbnail string
	StoreURL  string
}

// Extractor reads deal fields from the HTML embedded in a feed item description.
// Each implementation targets one known feed shape.
type Extractor interface {
	Name() string
	Extract(description string, platform games.Platform) (Fields, error)
}

// NewExtractor returns the extractor registered under name.
func NewExtractor(name string) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ExtractorPattern:
		return PatternExtractor{}, nil
	case ExtractorMarkup:
		return MarkupExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown feed extractor %q", name)
	}
}

var (
	priceRe     = regexp.MustCompile(`(?i)<b>\s*Price:\s*</b>\s*(\$[\d.,]+)`)
	developerRe = regexp.MustCompile(`(?is)<b>\s*By:\s*</b>\s*<a[^>]*>(.*?)</a>`)
	srcRe       = regexp.MustCompile(`src="([^"]*)"`)
	dollarRe    = regexp.MustCompile(`\$[\d.,]+`)
	androidRe   = regexp.MustCompile(`https?://play\.google\.com/[^\s"'<>]+`)
	iosRe       = regexp.MustCompile(`https?://(?:apps|itunes)\.apple\.com/[^\s"'<>]+`)
)

// PatternExtractor matches fields with regular expressions over the raw markup.
type PatternExtractor struct{}

func (PatternExtractor) Name() string { return ExtractorPattern }

func (PatternExtractor) Extract(description string, platform games.Platform) (Fields, error) {
	var f Fields
	if m := priceRe.FindStringSubmatch(description); m != nil {
		f.Price = m[1]
	}
	if m := developerRe.FindStringSubmatch(description); m != nil {
		f.Developer = strings.TrimSpace(html.UnescapeString(m[1]))
	}
	if m := srcRe.FindStringSubmatch(description); m != nil {
		f.Thumbnail = html.UnescapeString(m[1])
	}
	f.StoreURL = findStoreURL(description, platform)
	return f, nil
}

// MarkupExtractor walks the description as an HTML document.
type MarkupExtractor struct{}

func (MarkupExtractor) Name() string { return ExtractorMarkup }

func (MarkupExtractor) Extract(description string, platform games.Platform) (Fields, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return Fields{}, fmt.Errorf("parse description: %w", err)
	}

	var f Fields
	doc.Find("b, strong").EachWithBreak(func(_ int, label *goquery.Selection) bool {
		switch labelText(label) {
		case "price":
			if f.Price == "" {
				f.Price = dollarRe.FindString(followingText(label))
			}
		case "by":
			if f.Developer == "" {
				f.Developer = strings.TrimSpace(label.NextAllFiltered("a").First().Text())
			}
		}
		return f.Price == "" || f.Developer == ""
	})

	if src, ok := doc.Find("[src]").First().Attr("src"); ok {
		f.Thumbnail = src
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if isStoreURL(href, platform) {
			f.StoreURL = href
			return false
		}
		return true
	})
	if f.StoreURL == "" {
		f.StoreURL = findStoreURL(description, platform)
	}
	return f, nil
}

func labelText(s *goquery.Selection) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s.Text()), ":"))
}

// followingText returns the text of the node right after s among its parent's children.
func followingText(s *goquery.Selection) string {
	if len(s.Nodes) == 0 {
		return ""
	}
	target := s.Nodes[0]
	var out string
	found := false
	s.Parent().Contents().EachWithBreak(func(_ int, c *goquery.Selection) bool {
		if found {
			out = c.Text()
			return false
		}
		found = len(c.Nodes) > 0 && c.Nodes[0] == target
		return true
	})
	return out
}

func storePattern(platform games.Platform) *regexp.Regexp {
	switch platform {
	case games.PlatformAndroid:
		return androidRe
	case games.PlatformIOS:
		return iosRe
	default:
		return nil
	}
}

func findStoreURL(description string, platform games.Platform) string {
	re := storePattern(platform)
	if re == nil {
		return ""
	}
	return html.UnescapeString(re.FindString(description))
}

func isStoreURL(href string, platform games.Platform) bool {
	re := storePattern(platform)
	return re != nil && re.MatchString(href)
}
