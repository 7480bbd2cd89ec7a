// Package domain holds the core types shared by the list API and the
// export pipeline.
package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ListItem is a single saved item in a user's shareable list.
// ID is the primary key and the ascending ordering key used by exports.
type ListItem struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	ListExternalID string    `json:"list_external_id"`
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Excerpt        string    `json:"excerpt,omitempty"`
	Note           string    `json:"note,omitempty"`
	SortOrder      int       `json:"sort_order"`
	CreatedAt      time.Time `json:"created_at"`
}

// Highlight is a user annotation attached to a list item. Highlights for a
// single item are assumed to fit in memory when an export enriches that item.
type Highlight struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	Quote     string    `json:"quote"`
	CreatedAt time.Time `json:"created_at"`
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives a stable, URL-safe object name for the item. Falls back to an
// id-based name when the title slugifies to nothing.
func (i ListItem) Slug() string {
	s := strings.ToLower(i.Title)
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "item-" + strconv.FormatInt(i.ID, 10)
	}
	return s
}
