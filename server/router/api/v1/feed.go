package v1

import (
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
)

const maxFeedItems = 20

// GetMemoFeed serves an RSS feed of the most recent memos.
func (s *APIV1Service) GetMemoFeed(c echo.Context) error {
	instanceURL := s.Profile.InstanceURL
	if instanceURL == "" {
		instanceURL = "http://localhost"
	}

	feed := &feeds.Feed{
		Title:       "memoflow",
		Link:        &feeds.Link{Href: instanceURL},
		Description: "Recent memos",
		Created:     time.Now(),
	}

	memos := s.Store.ListMemos(c.Request().Context())
	if len(memos) > maxFeedItems {
		memos = memos[:maxFeedItems]
	}
	for _, memo := range memos {
		description := memo.Content
		if memo.Summary != nil && *memo.Summary != "" {
			description = *memo.Summary
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          memo.ID,
			Title:       memo.Title,
			Link:        &feeds.Link{Href: instanceURL + "/api/v1/memos/" + memo.ID},
			Description: description,
			Created:     memo.CreatedAt,
			Updated:     memo.UpdatedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "failed to build feed")
	}
	return c.Blob(http.StatusOK, "application/rss+xml", []byte(rss))
}
