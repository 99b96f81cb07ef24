package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Jessyabc/publicbusiness/server/service/lineage"
	"github.com/Jessyabc/publicbusiness/store"
)

// ThreadNode is the wire representation of one post in a thread tree.
type ThreadNode struct {
	Post      *Post         `json:"post"`
	ParentUID string        `json:"parent_uid,omitempty"`
	Depth     int           `json:"depth"`
	Children  []*ThreadNode `json:"children,omitempty"`
}

// Thread is the wire representation of a full conversation tree.
type Thread struct {
	Root      *ThreadNode `json:"root"`
	NodeCount int         `json:"node_count"`
	Truncated bool        `json:"truncated"`
}

// Breadcrumb is one entry of the root-first navigational path.
type Breadcrumb struct {
	UID       string `json:"uid"`
	Title     string `json:"title,omitempty"`
	Excerpt   string `json:"excerpt"`
	CreatedTs int64  `json:"created_ts"`
}

// OrbitEntry is one neighbor of a post, labeled with its concrete relation type.
type OrbitEntry struct {
	Post         *Post  `json:"post"`
	RelationID   int32  `json:"relation_id"`
	RelationType string `json:"relation_type"`
	CreatedTs    int64  `json:"created_ts"`
}

// Orbit is the categorized neighborhood of a post.
type Orbit struct {
	HardParents  []*OrbitEntry `json:"hard_parents"`
	HardChildren []*OrbitEntry `json:"hard_children"`
	SoftParents  []*OrbitEntry `json:"soft_parents"`
	SoftChildren []*OrbitEntry `json:"soft_children"`
}

func (s *APIV1Service) getThreadRoot(c echo.Context) error {
	ctx := c.Request().Context()

	post, err := s.getPostByUID(c, c.Param("uid"))
	if err != nil {
		return replyError(c, err)
	}

	rootID, err := s.Lineage.FindRoot(ctx, post.ID)
	if err != nil {
		return replyError(c, err)
	}

	rowStatus := store.Normal
	root, err := s.Store.GetPost(ctx, &store.FindPost{ID: &rootID, RowStatus: &rowStatus})
	if err != nil {
		return replyError(c, err)
	}
	if root == nil {
		// The resolved root is archived or gone; degrade to the queried post,
		// matching the thread builder.
		root = post
	}
	return c.JSON(http.StatusOK, convertPost(root))
}

func (s *APIV1Service) getThread(c echo.Context) error {
	ctx := c.Request().Context()

	post, err := s.getPostByUID(c, c.Param("uid"))
	if err != nil {
		return replyError(c, err)
	}

	thread, err := s.Lineage.BuildThread(ctx, post.ID)
	if err != nil {
		return replyError(c, err)
	}

	if c.QueryParam("flat") == "true" {
		flat := lineage.Flatten(thread)
		// The numeric ParentID never leaves the server; resolve it to a UID
		// through the flattened nodes themselves.
		uidByID := make(map[int32]string, len(flat))
		for _, node := range flat {
			uidByID[node.Post.ID] = node.Post.UID
		}
		list := make([]*ThreadNode, 0, len(flat))
		for _, node := range flat {
			list = append(list, &ThreadNode{
				Post:      convertPost(node.Post),
				ParentUID: uidByID[node.ParentID],
				Depth:     node.Depth,
			})
		}
		return c.JSON(http.StatusOK, list)
	}

	return c.JSON(http.StatusOK, &Thread{
		Root:      convertThreadNode(thread.Root, ""),
		NodeCount: thread.NodeCount,
		Truncated: thread.Truncated,
	})
}

func convertThreadNode(node *lineage.ThreadNode, parentUID string) *ThreadNode {
	converted := &ThreadNode{
		Post:      convertPost(node.Post),
		ParentUID: parentUID,
		Depth:     node.Depth,
	}
	for _, child := range node.Children {
		converted.Children = append(converted.Children, convertThreadNode(child, node.Post.UID))
	}
	return converted
}

func (s *APIV1Service) getBreadcrumbs(c echo.Context) error {
	ctx := c.Request().Context()

	post, err := s.getPostByUID(c, c.Param("uid"))
	if err != nil {
		return replyError(c, err)
	}

	crumbs, err := s.Lineage.BuildBreadcrumbs(ctx, post.ID)
	if err != nil {
		return replyError(c, err)
	}

	list := make([]*Breadcrumb, 0, len(crumbs))
	for _, crumb := range crumbs {
		list = append(list, &Breadcrumb{
			UID:       crumb.UID,
			Title:     crumb.Title,
			Excerpt:   crumb.Excerpt,
			CreatedTs: crumb.CreatedTs,
		})
	}
	return c.JSON(http.StatusOK, list)
}

func (s *APIV1Service) getOrbit(c echo.Context) error {
	ctx := c.Request().Context()

	post, err := s.getPostByUID(c, c.Param("uid"))
	if err != nil {
		return replyError(c, err)
	}

	orbit, err := s.Lineage.FindRelatedPosts(ctx, post.ID)
	if err != nil {
		return replyError(c, err)
	}

	return c.JSON(http.StatusOK, &Orbit{
		HardParents:  convertOrbitEntries(orbit.HardParents),
		HardChildren: convertOrbitEntries(orbit.HardChildren),
		SoftParents:  convertOrbitEntries(orbit.SoftParents),
		SoftChildren: convertOrbitEntries(orbit.SoftChildren),
	})
}

func convertOrbitEntries(entries []*lineage.OrbitEntry) []*OrbitEntry {
	list := make([]*OrbitEntry, 0, len(entries))
	for _, entry := range entries {
		list = append(list, &OrbitEntry{
			Post:         convertPost(entry.Post),
			RelationID:   entry.RelationID,
			RelationType: string(entry.RelationType),
			CreatedTs:    entry.CreatedTs,
		})
	}
	return list
}
