// Package rss serves an RSS feed of recently published public posts.
package rss

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
	"github.com/yuin/goldmark"

	"github.com/Jessyabc/publicbusiness/internal/profile"
	"github.com/Jessyabc/publicbusiness/server/service/lineage"
	"github.com/Jessyabc/publicbusiness/store"
)

const maxRSSItemCount = 100

type RSSService struct {
	Profile *profile.Profile
	Store   *store.Store

	markdown goldmark.Markdown
}

func NewRSSService(profile *profile.Profile, store *store.Store) *RSSService {
	return &RSSService{
		Profile:  profile,
		Store:    store,
		markdown: goldmark.New(),
	}
}

// RegisterRoutes registers the RSS routes with the given Echo instance.
func (s *RSSService) RegisterRoutes(e *echo.Echo) {
	e.GET("/explore/rss.xml", s.getExploreRSS)
}

func (s *RSSService) getExploreRSS(c echo.Context) error {
	ctx := c.Request().Context()

	visibility := store.Public
	rowStatus := store.Normal
	limit := maxRSSItemCount
	posts, err := s.Store.ListPosts(ctx, &store.FindPost{
		Visibility: &visibility,
		RowStatus:  &rowStatus,
		Limit:      &limit,
	})
	if err != nil {
		return err
	}

	baseURL := s.Profile.InstanceURL
	feed := &feeds.Feed{
		Title:       "Public Business",
		Link:        &feeds.Link{Href: baseURL},
		Description: "Open ideas, sparks and insights",
		Created:     time.Now(),
	}

	for _, post := range posts {
		var body bytes.Buffer
		if err := s.markdown.Convert([]byte(post.Content), &body); err != nil {
			return err
		}
		title := post.Title
		if title == "" {
			title = lineage.PlainTextExcerpt(post.Content, 60)
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/p/%s", baseURL, post.UID)},
			Description: body.String(),
			Created:     time.Unix(post.CreatedTs, 0),
			Id:          post.UID,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml", []byte(rss))
}
