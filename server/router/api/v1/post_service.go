package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	pberrors "github.com/Jessyabc/publicbusiness/internal/errors"
	"github.com/Jessyabc/publicbusiness/store"
)

// Post is the wire representation of a post.
type Post struct {
	UID           string `json:"uid"`
	CreatorID     int32  `json:"creator_id"`
	Type          string `json:"type"`
	Title         string `json:"title,omitempty"`
	Content       string `json:"content"`
	Visibility    string `json:"visibility"`
	RowStatus     string `json:"row_status"`
	CreatedTs     int64  `json:"created_ts"`
	UpdatedTs     int64  `json:"updated_ts"`
	LikesCount    int32  `json:"likes_count"`
	CommentsCount int32  `json:"comments_count"`
	ViewsCount    int32  `json:"views_count"`
}

func convertPost(post *store.Post) *Post {
	return &Post{
		UID:           post.UID,
		CreatorID:     post.CreatorID,
		Type:          string(post.Type),
		Title:         post.Title,
		Content:       post.Content,
		Visibility:    string(post.Visibility),
		RowStatus:     string(post.RowStatus),
		CreatedTs:     post.CreatedTs,
		UpdatedTs:     post.UpdatedTs,
		LikesCount:    post.LikesCount,
		CommentsCount: post.CommentsCount,
		ViewsCount:    post.ViewsCount,
	}
}

type createPostRequest struct {
	CreatorID  int32  `json:"creator_id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Visibility string `json:"visibility"`
}

func (s *APIV1Service) createPost(c echo.Context) error {
	ctx := c.Request().Context()

	request := &createPostRequest{}
	if err := c.Bind(request); err != nil {
		return replyError(c, pberrors.NewValidation("malformed request body"))
	}

	postType, ok := store.NormalizePostType(request.Type)
	if !ok {
		return replyError(c, pberrors.NewValidation("unknown post type %q", request.Type))
	}

	create := &store.Post{
		CreatorID: request.CreatorID,
		Type:      postType,
		Title:     request.Title,
		Content:   request.Content,
	}
	if request.Visibility != "" {
		create.Visibility = store.Visibility(request.Visibility)
	}

	post, err := s.Store.CreatePost(ctx, create)
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(http.StatusCreated, convertPost(post))
}

func (s *APIV1Service) listPosts(c echo.Context) error {
	ctx := c.Request().Context()

	rowStatus := store.Normal
	find := &store.FindPost{RowStatus: &rowStatus}

	if v := c.QueryParam("creator_id"); v != "" {
		creatorID, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return replyError(c, pberrors.NewValidation("invalid creator_id %q", v))
		}
		id := int32(creatorID)
		find.CreatorID = &id
	}
	if v := c.QueryParam("type"); v != "" {
		postType, ok := store.NormalizePostType(v)
		if !ok {
			return replyError(c, pberrors.NewValidation("unknown post type %q", v))
		}
		find.Type = &postType
	}
	if v := c.QueryParam("visibility"); v != "" {
		visibility := store.Visibility(v)
		find.Visibility = &visibility
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return replyError(c, pberrors.NewValidation("invalid limit %q", v))
		}
		find.Limit = &limit
		if v := c.QueryParam("offset"); v != "" {
			offset, err := strconv.Atoi(v)
			if err != nil || offset < 0 {
				return replyError(c, pberrors.NewValidation("invalid offset %q", v))
			}
			find.Offset = &offset
		}
	}

	posts, err := s.Store.ListPosts(ctx, find)
	if err != nil {
		return replyError(c, err)
	}

	list := make([]*Post, 0, len(posts))
	for _, post := range posts {
		list = append(list, convertPost(post))
	}
	return c.JSON(http.StatusOK, list)
}

func (s *APIV1Service) getPost(c echo.Context) error {
	post, err := s.getPostByUID(c, c.Param("uid"))
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(http.StatusOK, convertPost(post))
}

type updatePostRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Visibility *string `json:"visibility"`
	RowStatus  *string `json:"row_status"`
}

func (s *APIV1Service) updatePost(c echo.Context) error {
	ctx := c.Request().Context()

	post, err := s.getPostByUID(c, c.Param("uid"))
	if err != nil {
		return replyError(c, err)
	}

	request := &updatePostRequest{}
	if err := c.Bind(request); err != nil {
		return replyError(c, pberrors.NewValidation("malformed request body"))
	}

	update := &store.UpdatePost{
		ID:      post.ID,
		Title:   request.Title,
		Content: request.Content,
	}
	if request.Visibility != nil {
		visibility := store.Visibility(*request.Visibility)
		update.Visibility = &visibility
	}
	if request.RowStatus != nil {
		rowStatus := store.RowStatus(*request.RowStatus)
		update.RowStatus = &rowStatus
	}

	if err := s.Store.UpdatePost(ctx, update); err != nil {
		return replyError(c, err)
	}

	updated, err := s.Store.GetPost(ctx, &store.FindPost{ID: &post.ID})
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(http.StatusOK, convertPost(updated))
}

func (s *APIV1Service) deletePost(c echo.Context) error {
	ctx := c.Request().Context()

	post, err := s.getPostByUID(c, c.Param("uid"))
	if err != nil {
		return replyError(c, err)
	}

	force := c.QueryParam("force") == "true"
	if err := s.Store.DeletePost(ctx, &store.DeletePost{ID: post.ID, Force: force}); err != nil {
		return replyError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
