package store

import (
	"context"

	"github.com/lithammer/shortuuid/v4"

	pberrors "github.com/Jessyabc/publicbusiness/internal/errors"
)

// PostType is the content discriminator of a post.
type PostType string

const (
	// PostTypeOpenIdea is a short public prompt inviting sparks.
	PostTypeOpenIdea PostType = "OPEN_IDEA"
	// PostTypeSpark is a brainstorm continuing an idea or another spark.
	PostTypeSpark PostType = "SPARK"
	// PostTypeInsight is a published organization insight.
	PostTypeInsight PostType = "INSIGHT"
	// PostTypeBusinessInsight is an insight scoped to a business audience.
	PostTypeBusinessInsight PostType = "BUSINESS_INSIGHT"
	// PostTypeWhitePaper is a long-form report.
	PostTypeWhitePaper PostType = "WHITE_PAPER"
)

// NormalizePostType maps legacy post type aliases to canonical types.
// "brainstorm" is the historical name for a spark.
func NormalizePostType(raw string) (PostType, bool) {
	switch raw {
	case "open_idea", "OPEN_IDEA":
		return PostTypeOpenIdea, true
	case "spark", "SPARK", "brainstorm", "BRAINSTORM":
		return PostTypeSpark, true
	case "insight", "INSIGHT":
		return PostTypeInsight, true
	case "business_insight", "BUSINESS_INSIGHT":
		return PostTypeBusinessInsight, true
	case "white_paper", "WHITE_PAPER":
		return PostTypeWhitePaper, true
	}
	return "", false
}

// Visibility governs who may read a post. Enforcement lives in the caller;
// the store only filters on request.
type Visibility string

const (
	// Public posts are readable by anyone.
	Public Visibility = "PUBLIC"
	// Private posts are readable only by their creator.
	Private Visibility = "PRIVATE"
	// MyBusiness posts are readable by the creator's business members.
	MyBusiness Visibility = "MY_BUSINESS"
)

// Post is the object representing a content node.
type Post struct {
	ID        int32
	UID       string
	CreatorID int32
	RowStatus RowStatus
	CreatedTs int64
	UpdatedTs int64

	Type       PostType
	Title      string
	Content    string
	Visibility Visibility

	// Interaction counters. Informational only; traversal never reads them.
	LikesCount    int32
	CommentsCount int32
	ViewsCount    int32
}

// FindPost is the find condition for post.
type FindPost struct {
	ID        *int32
	IDs       []int32
	UID       *string
	CreatorID *int32

	RowStatus  *RowStatus
	Type       *PostType
	Visibility *Visibility

	Limit  *int
	Offset *int
}

// UpdatePost is the update request for post.
type UpdatePost struct {
	ID         int32
	UpdatedTs  *int64
	RowStatus  *RowStatus
	Title      *string
	Content    *string
	Visibility *Visibility

	LikesCount    *int32
	CommentsCount *int32
	ViewsCount    *int32
}

// DeletePost is the delete request for post. Posts are archived by default;
// Force removes the row and cascades its relations.
type DeletePost struct {
	ID    int32
	Force bool
}

// CreatePost creates a new post. A UID is generated when absent.
func (s *Store) CreatePost(ctx context.Context, create *Post) (*Post, error) {
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	if create.Type == "" {
		return nil, pberrors.NewValidation("post type is required")
	}
	if create.RowStatus == "" {
		create.RowStatus = Normal
	}
	if create.Visibility == "" {
		create.Visibility = Private
	}

	post, err := s.driver.CreatePost(ctx, create)
	if err != nil {
		return nil, err
	}
	s.postCache.Set(ctx, post.ID, post)
	return post, nil
}

// ListPosts lists posts with filter.
func (s *Store) ListPosts(ctx context.Context, find *FindPost) ([]*Post, error) {
	return s.driver.ListPosts(ctx, find)
}

// GetPost gets a single post with filter. Returns nil when absent.
func (s *Store) GetPost(ctx context.Context, find *FindPost) (*Post, error) {
	if find.ID != nil && len(find.IDs) == 0 && find.UID == nil && find.RowStatus == nil {
		if post, ok := s.postCache.Get(ctx, *find.ID); ok {
			return post, nil
		}
	}

	list, err := s.driver.ListPosts(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	post := list[0]
	s.postCache.Set(ctx, post.ID, post)
	return post, nil
}

// GetPostsByIDs batch-fetches active posts by id. Missing or non-active ids
// are silently omitted; callers must tolerate partial results.
func (s *Store) GetPostsByIDs(ctx context.Context, ids []int32) ([]*Post, error) {
	if len(ids) == 0 {
		return []*Post{}, nil
	}
	rowStatus := Normal
	return s.driver.ListPosts(ctx, &FindPost{IDs: ids, RowStatus: &rowStatus})
}

// UpdatePost updates a post.
func (s *Store) UpdatePost(ctx context.Context, update *UpdatePost) error {
	if err := s.driver.UpdatePost(ctx, update); err != nil {
		return err
	}
	s.postCache.Delete(ctx, update.ID)
	return nil
}

// DeletePost archives a post, or removes it entirely when Force is set.
func (s *Store) DeletePost(ctx context.Context, delete *DeletePost) error {
	if !delete.Force {
		archived := Archived
		return s.UpdatePost(ctx, &UpdatePost{ID: delete.ID, RowStatus: &archived})
	}
	if err := s.driver.DeletePost(ctx, delete); err != nil {
		return err
	}
	s.postCache.Delete(ctx, delete.ID)
	return nil
}
