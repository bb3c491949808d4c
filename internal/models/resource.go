package models

import "time"

// Resource represents a single saved reference to a web page,
// categorized by its type.
type Resource struct {
	// ID is the unique identifier assigned by the store at creation.
	// Identifiers grow monotonically and are never reused, even after deletion.
	ID int64
	// Title is the page title captured by the client.
	Title string
	// URL is the address of the saved page. The store keeps it as given,
	// without canonicalization, and enforces its uniqueness across the catalog.
	URL string
	// Type is the category tag of the resource. It is either one of the
	// built-in categories (article, youtube, tool) or an arbitrary
	// client-defined slug; the store treats it as an opaque string.
	Type string
	// CreatedAt is the timestamp assigned by the store at insert time.
	CreatedAt time.Time
}

// Built-in resource categories. The capture client may also send
// user-defined labels, which the catalog accepts as-is unless strict
// type validation is enabled.
const (
	TypeArticle = "article"
	TypeYouTube = "youtube"
	TypeTool    = "tool"
)
