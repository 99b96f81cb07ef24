package lineage

import (
	"context"

	"github.com/Jessyabc/publicbusiness/store"
)

// Breadcrumb is one entry of the navigational path from a thread's root down
// to a given post.
type Breadcrumb struct {
	PostID    int32
	UID       string
	Title     string
	Excerpt   string
	CreatedTs int64
}

// BuildBreadcrumbs walks from the given post up to its thread root and
// returns the ordered path, root first, queried post last. It shares the
// cycle guard of FindRoot. Posts on the path that can no longer be loaded
// are skipped rather than failing the trail.
func (s *Service) BuildBreadcrumbs(ctx context.Context, postID int32) ([]*Breadcrumb, error) {
	path, err := s.walkToRoot(ctx, postID)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListPosts(ctx, &store.FindPost{IDs: path, RowStatus: rowStatusPtr(store.Normal)})
	if err != nil {
		return nil, err
	}
	postByID := make(map[int32]*store.Post, len(posts))
	for _, post := range posts {
		postByID[post.ID] = post
	}

	// path is walk-ordered (post first); breadcrumbs read root first.
	crumbs := make([]*Breadcrumb, 0, len(path))
	for i := len(path) - 1; i >= 0; i-- {
		post := postByID[path[i]]
		if post == nil {
			continue
		}
		crumbs = append(crumbs, &Breadcrumb{
			PostID:    post.ID,
			UID:       post.UID,
			Title:     post.Title,
			Excerpt:   PlainTextExcerpt(post.Content, s.config.ExcerptRunes),
			CreatedTs: post.CreatedTs,
		})
	}
	return crumbs, nil
}
