package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	pberrors "github.com/Jessyabc/publicbusiness/internal/errors"
	"github.com/Jessyabc/publicbusiness/store"
)

// Relation is the wire representation of a typed post relation.
type Relation struct {
	ID        int32  `json:"id"`
	ParentUID string `json:"parent_uid"`
	ChildUID  string `json:"child_uid"`
	Type      string `json:"type"`
	CreatedTs int64  `json:"created_ts"`
}

type createRelationRequest struct {
	ParentUID string `json:"parent_uid"`
	ChildUID  string `json:"child_uid"`
	Type      string `json:"type"`
}

func (s *APIV1Service) createRelation(c echo.Context) error {
	ctx := c.Request().Context()

	request := &createRelationRequest{}
	if err := c.Bind(request); err != nil {
		return replyError(c, pberrors.NewValidation("malformed request body"))
	}

	parent, err := s.getPostByUID(c, request.ParentUID)
	if err != nil {
		return replyError(c, err)
	}
	child, err := s.getPostByUID(c, request.ChildUID)
	if err != nil {
		return replyError(c, err)
	}

	relation, err := s.Store.CreatePostRelation(ctx, &store.PostRelation{
		ParentPostID: parent.ID,
		ChildPostID:  child.ID,
		Type:         store.RelationType(request.Type),
	})
	if err != nil {
		return replyError(c, err)
	}

	return c.JSON(http.StatusCreated, &Relation{
		ID:        relation.ID,
		ParentUID: parent.UID,
		ChildUID:  child.UID,
		Type:      string(relation.Type),
		CreatedTs: relation.CreatedTs,
	})
}

func (s *APIV1Service) deleteRelation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return replyError(c, pberrors.NewValidation("invalid relation id %q", c.Param("id")))
	}

	// Ownership of one of the connected posts is checked by the auth layer in
	// front of this API; the store hands back the relation for that purpose.
	if _, err := s.Store.DeletePostRelation(ctx, &store.DeletePostRelation{ID: int32(id)}); err != nil {
		return replyError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) listPostRelations(c echo.Context) error {
	ctx := c.Request().Context()

	post, err := s.getPostByUID(c, c.Param("uid"))
	if err != nil {
		return replyError(c, err)
	}

	relations, err := s.Store.ListPostRelations(ctx, &store.FindPostRelation{PostID: &post.ID})
	if err != nil {
		return replyError(c, err)
	}

	// Relations carry numeric post ids; resolve both sides to UIDs in one
	// batch instead of a lookup per edge.
	ids := make([]int32, 0, len(relations)*2)
	for _, relation := range relations {
		ids = append(ids, relation.ParentPostID, relation.ChildPostID)
	}
	posts, err := s.Store.GetPostsByIDs(ctx, ids)
	if err != nil {
		return replyError(c, err)
	}
	uidByID := make(map[int32]string, len(posts))
	for _, p := range posts {
		uidByID[p.ID] = p.UID
	}

	list := make([]*Relation, 0, len(relations))
	for _, relation := range relations {
		parentUID, ok := uidByID[relation.ParentPostID]
		if !ok {
			continue
		}
		childUID, ok := uidByID[relation.ChildPostID]
		if !ok {
			continue
		}
		list = append(list, &Relation{
			ID:        relation.ID,
			ParentUID: parentUID,
			ChildUID:  childUID,
			Type:      string(relation.Type),
			CreatedTs: relation.CreatedTs,
		})
	}
	return c.JSON(http.StatusOK, list)
}

type createCrossLinksRequest struct {
	ChildUIDs []string `json:"child_uids"`
}

func (s *APIV1Service) createCrossLinks(c echo.Context) error {
	ctx := c.Request().Context()

	parent, err := s.getPostByUID(c, c.Param("uid"))
	if err != nil {
		return replyError(c, err)
	}

	request := &createCrossLinksRequest{}
	if err := c.Bind(request); err != nil {
		return replyError(c, pberrors.NewValidation("malformed request body"))
	}

	childIDs := make([]int32, 0, len(request.ChildUIDs))
	for _, uid := range request.ChildUIDs {
		child, err := s.getPostByUID(c, uid)
		if err != nil {
			return replyError(c, err)
		}
		childIDs = append(childIDs, child.ID)
	}

	if err := s.Store.CreateCrossLinks(ctx, parent.ID, childIDs); err != nil {
		return replyError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
