package domain

import "context"

// FeedFetcher retrieves event candidates from an external calendar feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]CreateEventInput, error)
}
