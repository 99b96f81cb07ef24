package lineage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Jessyabc/publicbusiness/store"
)

func TestBuildBreadcrumbs(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	graph.addPost(1, "the root idea")
	graph.addPost(2, "a continuation")
	graph.addPost(3, "the deepest spark")
	graph.relate(1, 2, store.RelationReply)
	graph.relate(2, 3, store.RelationReply)

	service := newTestService(graph, DefaultConfig())

	crumbs, err := service.BuildBreadcrumbs(ctx, 3)
	require.NoError(t, err)
	require.Len(t, crumbs, 3)

	// Root first, queried post last.
	require.Equal(t, int32(1), crumbs[0].PostID)
	require.Equal(t, int32(2), crumbs[1].PostID)
	require.Equal(t, int32(3), crumbs[2].PostID)
	require.Equal(t, "the root idea", crumbs[0].Excerpt)
	require.Equal(t, "uid-1", crumbs[0].UID)
}

func TestBuildBreadcrumbsOfRoot(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	graph.addPost(1, "root")
	graph.addPost(2, "child")
	graph.relate(1, 2, store.RelationReply)

	service := newTestService(graph, DefaultConfig())

	crumbs, err := service.BuildBreadcrumbs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, crumbs, 1)
	require.Equal(t, int32(1), crumbs[0].PostID)
}

func TestBuildBreadcrumbsSkipsMissingPosts(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	graph.addPost(1, "root")
	graph.addPost(2, "archived middle")
	graph.addPost(3, "leaf")
	graph.relate(1, 2, store.RelationReply)
	graph.relate(2, 3, store.RelationReply)
	graph.archivePost(2)

	service := newTestService(graph, DefaultConfig())

	// The archived post drops out of the trail; the rest stays ordered.
	crumbs, err := service.BuildBreadcrumbs(ctx, 3)
	require.NoError(t, err)
	require.Len(t, crumbs, 2)
	require.Equal(t, int32(1), crumbs[0].PostID)
	require.Equal(t, int32(3), crumbs[1].PostID)
}

func TestBuildBreadcrumbsTruncatesExcerpts(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	graph.addPost(1, "a very long piece of content that keeps going")

	service := newTestService(graph, Config{MaxNodes: 500, MaxDepth: 50, ExcerptRunes: 10})

	crumbs, err := service.BuildBreadcrumbs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, crumbs, 1)
	require.Equal(t, "a very lon...", crumbs[0].Excerpt)
}
