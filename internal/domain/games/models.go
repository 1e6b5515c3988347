package games

// PlaceholderThumbnail replaces any missing or unusable source image.
const PlaceholderThumbnail = "https://placehold.co/600x400?text=Free+Game"

// CurrentPriceFree is the price marker carried by every feed deal.
const CurrentPriceFree = "Free"

// FreeGame is the canonical free-game shape exposed by the service.
// IDs are scoped to their source and are not unique across sources.
type FreeGame struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Thumbnail        string `json:"thumbnail"`
	ShortDescription string `json:"short_description"`
	GameURL          string `json:"game_url"`
	Genre            string `json:"genre"`
	Platform         string `json:"platform"`
	Publisher        string `json:"publisher"`
	Developer        string `json:"developer"`
	ReleaseDate      string `json:"release_date"`
	ProfileURL       string `json:"profile_url"`
}

// RSSGame is a deal extracted from a mobile feed before normalization.
// IDs follow source-platform-index and are not stable across fetches.
type RSSGame struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Thumbnail     string `json:"thumbnail"`
	Description   string `json:"description"`
	URL           string `json:"url"`
	Developer     string `json:"developer"`
	Category      string `json:"category"`
	OriginalPrice string `json:"originalPrice"`
	CurrentPrice  string `json:"currentPrice"`
	Discount      string `json:"discount"`
	Platform      string `json:"platform"`
	PubDate       string `json:"pubDate"`
}

// ResolveThumbnail returns the first usable image URL, or the placeholder.
func ResolveThumbnail(candidates ...string) string {
	for _, c := range candidates {
		if usableImage(c) {
			return c
		}
	}
	return PlaceholderThumbnail
}

func usableImage(raw string) bool {
	switch raw {
	case "", "undefined", "null":
		return false
	}
	return true
}
