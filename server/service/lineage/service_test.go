package lineage

import (
	"context"
	"fmt"
	"sort"

	"github.com/Jessyabc/publicbusiness/store"
)

// fakeGraph is an in-memory PostStore and RelationStore. It mirrors the real
// store's read semantics: filters behave like the SQL drivers and relations
// list newest first.
type fakeGraph struct {
	posts     map[int32]*store.Post
	relations []*store.PostRelation

	nextRelationID int32
	clock          int64
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		posts: make(map[int32]*store.Post),
		clock: 1000,
	}
}

func (g *fakeGraph) addPost(id int32, content string) *store.Post {
	g.clock++
	post := &store.Post{
		ID:        id,
		UID:       fmt.Sprintf("uid-%d", id),
		CreatorID: 1,
		RowStatus: store.Normal,
		CreatedTs: g.clock,
		UpdatedTs: g.clock,
		Type:      store.PostTypeSpark,
		Content:   content,
	}
	g.posts[id] = post
	return post
}

func (g *fakeGraph) archivePost(id int32) {
	g.posts[id].RowStatus = store.Archived
}

func (g *fakeGraph) removePost(id int32) {
	delete(g.posts, id)
}

func (g *fakeGraph) relate(parentID, childID int32, relationType store.RelationType) *store.PostRelation {
	g.nextRelationID++
	g.clock++
	relation := &store.PostRelation{
		ID:           g.nextRelationID,
		ParentPostID: parentID,
		ChildPostID:  childID,
		Type:         relationType,
		CreatedTs:    g.clock,
	}
	g.relations = append(g.relations, relation)
	return relation
}

func (g *fakeGraph) GetPost(_ context.Context, find *store.FindPost) (*store.Post, error) {
	list, err := g.ListPosts(context.Background(), find)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (g *fakeGraph) ListPosts(_ context.Context, find *store.FindPost) ([]*store.Post, error) {
	list := []*store.Post{}
	for _, post := range g.posts {
		if v := find.ID; v != nil && post.ID != *v {
			continue
		}
		if v := find.IDs; len(v) != 0 && !containsID(v, post.ID) {
			continue
		}
		if v := find.RowStatus; v != nil && post.RowStatus != *v {
			continue
		}
		list = append(list, post)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (g *fakeGraph) ListPostRelations(_ context.Context, find *store.FindPostRelation) ([]*store.PostRelation, error) {
	list := []*store.PostRelation{}
	for _, relation := range g.relations {
		if v := find.ID; v != nil && relation.ID != *v {
			continue
		}
		if v := find.ParentPostID; v != nil && relation.ParentPostID != *v {
			continue
		}
		if v := find.ChildPostID; v != nil && relation.ChildPostID != *v {
			continue
		}
		if v := find.Type; v != nil && relation.Type != *v {
			continue
		}
		if v := find.PostID; v != nil && relation.ParentPostID != *v && relation.ChildPostID != *v {
			continue
		}
		list = append(list, relation)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedTs > list[j].CreatedTs })
	return list, nil
}

func containsID(ids []int32, id int32) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func newTestService(graph *fakeGraph, config Config) *Service {
	return NewService(graph, graph, config)
}
