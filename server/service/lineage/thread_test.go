package lineage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Jessyabc/publicbusiness/store"
)

func TestBuildThread(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	graph.addPost(1, "root")
	graph.addPost(2, "a")
	graph.addPost(3, "b")
	graph.addPost(4, "c")
	graph.relate(1, 2, store.RelationReply) // root -> a
	graph.relate(2, 3, store.RelationReply) // a -> b
	graph.relate(1, 4, store.RelationReply) // root -> c

	service := newTestService(graph, DefaultConfig())

	// Any post of the thread reconstructs the same tree.
	for _, startID := range []int32{1, 3, 4} {
		thread, err := service.BuildThread(ctx, startID)
		require.NoError(t, err)
		require.Equal(t, 4, thread.NodeCount, "from post %d", startID)
		require.False(t, thread.Truncated)

		root := thread.Root
		require.Equal(t, int32(1), root.Post.ID)
		require.Equal(t, 0, root.Depth)
		require.Len(t, root.Children, 2)
		// Siblings in edge-creation order.
		require.Equal(t, int32(2), root.Children[0].Post.ID)
		require.Equal(t, int32(4), root.Children[1].Post.ID)
		require.Equal(t, 1, root.Children[0].Depth)

		require.Len(t, root.Children[0].Children, 1)
		require.Equal(t, int32(3), root.Children[0].Children[0].Post.ID)
		require.Equal(t, 2, root.Children[0].Children[0].Depth)
		require.Equal(t, int32(2), root.Children[0].Children[0].ParentID)
	}
}

func TestBuildThreadSingleNode(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	graph.addPost(1, "alone")

	service := newTestService(graph, DefaultConfig())

	thread, err := service.BuildThread(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, thread.NodeCount)
	require.Equal(t, int32(1), thread.Root.Post.ID)
	require.Empty(t, thread.Root.Children)
}

func TestBuildThreadPrunesMissingPosts(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	graph.addPost(1, "root")
	graph.addPost(2, "gone")
	graph.addPost(3, "grandchild")
	graph.addPost(4, "kept")
	graph.relate(1, 2, store.RelationReply)
	graph.relate(2, 3, store.RelationReply)
	graph.relate(1, 4, store.RelationReply)
	graph.archivePost(2)

	service := newTestService(graph, DefaultConfig())

	// The archived post prunes its whole branch, including the reachable
	// grandchild, without failing the build.
	thread, err := service.BuildThread(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, thread.NodeCount)
	require.Len(t, thread.Root.Children, 1)
	require.Equal(t, int32(4), thread.Root.Children[0].Post.ID)
}

func TestBuildThreadDegradesWhenRootMissing(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	graph.addPost(1, "root")
	graph.addPost(2, "child")
	graph.relate(1, 2, store.RelationReply)
	graph.removePost(1)

	service := newTestService(graph, DefaultConfig())

	thread, err := service.BuildThread(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 1, thread.NodeCount)
	require.Equal(t, int32(2), thread.Root.Post.ID)
}

func TestBuildThreadNotFound(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()

	service := newTestService(graph, DefaultConfig())

	_, err := service.BuildThread(ctx, 99)
	require.Error(t, err)
}

func TestBuildThreadTruncatesAtNodeBound(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	graph.addPost(1, "root")
	for id := int32(2); id <= 10; id++ {
		graph.addPost(id, "spark")
		graph.relate(1, id, store.RelationReply)
	}

	service := newTestService(graph, Config{MaxNodes: 5, MaxDepth: 50})

	thread, err := service.BuildThread(ctx, 1)
	require.NoError(t, err)
	require.True(t, thread.Truncated)
	require.Equal(t, 5, thread.NodeCount)
}

func TestBuildThreadTruncatesAtDepthBound(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	// Chain of depth 6: 1 -> 2 -> ... -> 7.
	graph.addPost(1, "root")
	for id := int32(2); id <= 7; id++ {
		graph.addPost(id, "spark")
		graph.relate(id-1, id, store.RelationReply)
	}

	service := newTestService(graph, Config{MaxNodes: 500, MaxDepth: 3})

	thread, err := service.BuildThread(ctx, 1)
	require.NoError(t, err)
	require.True(t, thread.Truncated)
	// Root plus three levels.
	require.Equal(t, 4, thread.NodeCount)
}

func TestBuildThreadTerminatesOnReplyCycle(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	graph.addPost(1, "a")
	graph.addPost(2, "b")
	graph.addPost(3, "c")
	// A reply cycle satisfies the single-reply-parent index (each child has
	// exactly one incoming reply edge) but is corrupt data; the build must
	// still terminate with a partial, acyclic tree.
	graph.relate(1, 2, store.RelationReply)
	graph.relate(2, 3, store.RelationReply)
	graph.relate(3, 1, store.RelationReply)

	service := newTestService(graph, DefaultConfig())

	thread, err := service.BuildThread(ctx, 2)
	require.NoError(t, err)
	require.True(t, thread.Truncated)
	require.Equal(t, 3, thread.NodeCount)

	// Root resolution from 2 walks 2 -> 1 -> 3 and stops at the revisit, so 3
	// is the root; the cycle-closing edge back into the tree is dropped.
	require.Equal(t, int32(3), thread.Root.Post.ID)
	flat := Flatten(thread)
	seen := map[int32]bool{}
	for _, node := range flat {
		require.False(t, seen[node.Post.ID], "post %d appears twice", node.Post.ID)
		seen[node.Post.ID] = true
	}
}

func TestFlatten(t *testing.T) {
	ctx := context.Background()
	graph := newFakeGraph()
	graph.addPost(1, "root")
	graph.addPost(2, "a")
	graph.addPost(3, "b")
	graph.addPost(4, "c")
	graph.relate(1, 2, store.RelationReply)
	graph.relate(2, 3, store.RelationReply)
	graph.relate(1, 4, store.RelationReply)

	service := newTestService(graph, DefaultConfig())

	thread, err := service.BuildThread(ctx, 1)
	require.NoError(t, err)

	flat := Flatten(thread)
	require.Len(t, flat, thread.NodeCount)

	// Pre-order: each node before its children, siblings in creation order.
	ids := make([]int32, 0, len(flat))
	for _, node := range flat {
		ids = append(ids, node.Post.ID)
	}
	require.Equal(t, []int32{1, 2, 3, 4}, ids)
	require.Equal(t, []int{0, 1, 2, 1}, []int{flat[0].Depth, flat[1].Depth, flat[2].Depth, flat[3].Depth})
}

func TestFlattenEmpty(t *testing.T) {
	require.Empty(t, Flatten(nil))
	require.Empty(t, Flatten(&Thread{}))
}
