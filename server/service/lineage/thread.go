package lineage

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	pberrors "github.com/Jessyabc/publicbusiness/internal/errors"
	"github.com/Jessyabc/publicbusiness/store"
)

// ThreadNode is one post in a reconstructed thread tree.
type ThreadNode struct {
	Post     *store.Post
	ParentID int32 // 0 for the root
	Depth    int   // root = 0
	Children []*ThreadNode
}

// Thread is a fully assembled conversation tree.
type Thread struct {
	Root      *ThreadNode
	NodeCount int
	// Truncated is set when the build hit its node or depth bound and the
	// tree is a partial result.
	Truncated bool
}

// BuildThread reconstructs the full thread tree containing the given post.
// Any post of the thread may be passed; the true root is resolved first.
//
// Children are ordered by edge creation (oldest continuation first). Posts
// referenced by an edge but missing from the store (archived, deleted) prune
// their branch without failing the build. A root with no reply edges yields a
// single-node tree. If the resolved root itself cannot be loaded, the build
// degrades to a single-node tree of the queried post.
func (s *Service) BuildThread(ctx context.Context, postID int32) (*Thread, error) {
	var rootID int32
	var replies []*store.PostRelation

	// Root resolution and the bulk reply-edge load are independent reads.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		id, err := s.FindRoot(gctx, postID)
		if err != nil {
			return err
		}
		rootID = id
		return nil
	})
	g.Go(func() error {
		replyType := store.RelationReply
		list, err := s.relations.ListPostRelations(gctx, &store.FindPostRelation{Type: &replyType})
		if err != nil {
			return err
		}
		replies = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	childrenByParent := make(map[int32][]*store.PostRelation)
	for _, relation := range replies {
		childrenByParent[relation.ParentPostID] = append(childrenByParent[relation.ParentPostID], relation)
	}
	for _, children := range childrenByParent {
		sort.SliceStable(children, func(i, j int) bool {
			if children[i].CreatedTs != children[j].CreatedTs {
				return children[i].CreatedTs < children[j].CreatedTs
			}
			return children[i].ID < children[j].ID
		})
	}

	componentIDs, truncated := s.collectComponent(rootID, childrenByParent)

	posts, err := s.posts.ListPosts(ctx, &store.FindPost{IDs: componentIDs, RowStatus: rowStatusPtr(store.Normal)})
	if err != nil {
		return nil, err
	}
	postByID := make(map[int32]*store.Post, len(posts))
	for _, post := range posts {
		postByID[post.ID] = post
	}

	if postByID[rootID] == nil {
		return s.singlePostThread(ctx, postID)
	}

	inComponent := make(map[int32]bool, len(componentIDs))
	for _, id := range componentIDs {
		inComponent[id] = true
	}

	root := &ThreadNode{Post: postByID[rootID], Depth: 0}
	nodeCount := 1
	attached := map[int32]bool{rootID: true}
	stack := []*ThreadNode{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, relation := range childrenByParent[node.Post.ID] {
			if !inComponent[relation.ChildPostID] {
				continue
			}
			if attached[relation.ChildPostID] {
				// A reply edge back into the tree means a cycle, which the
				// single-reply-parent invariant forbids. Keep the tree acyclic
				// and surface the corrupt data instead of looping.
				slog.Error("reply cycle detected while assembling thread",
					slog.String("violation", "integrity_violation"),
					slog.Int("parent_post_id", int(node.Post.ID)),
					slog.Int("revisited_post_id", int(relation.ChildPostID)))
				truncated = true
				continue
			}
			childPost := postByID[relation.ChildPostID]
			if childPost == nil {
				// Missing post prunes the branch, not the build.
				continue
			}
			attached[relation.ChildPostID] = true
			child := &ThreadNode{
				Post:     childPost,
				ParentID: node.Post.ID,
				Depth:    node.Depth + 1,
			}
			node.Children = append(node.Children, child)
			stack = append(stack, child)
			nodeCount++
		}
	}

	return &Thread{Root: root, NodeCount: nodeCount, Truncated: truncated}, nil
}

// collectComponent BFS-expands reply edges from the root and returns the ids
// of the connected component, bounded by MaxNodes and MaxDepth. The visited
// set doubles as cycle protection for corrupt edge sets.
func (s *Service) collectComponent(rootID int32, childrenByParent map[int32][]*store.PostRelation) ([]int32, bool) {
	type frontierEntry struct {
		id    int32
		depth int
	}

	visited := map[int32]bool{rootID: true}
	ids := []int32{rootID}
	queue := []frontierEntry{{id: rootID, depth: 0}}
	truncated := false

	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]

		if entry.depth >= s.config.MaxDepth {
			if len(childrenByParent[entry.id]) > 0 {
				truncated = true
			}
			continue
		}
		for _, relation := range childrenByParent[entry.id] {
			childID := relation.ChildPostID
			if visited[childID] {
				continue
			}
			if len(ids) >= s.config.MaxNodes {
				truncated = true
				return ids, truncated
			}
			visited[childID] = true
			ids = append(ids, childID)
			queue = append(queue, frontierEntry{id: childID, depth: entry.depth + 1})
		}
	}

	return ids, truncated
}

// singlePostThread degrades a failed tree assembly to just the queried post.
func (s *Service) singlePostThread(ctx context.Context, postID int32) (*Thread, error) {
	post, err := s.posts.GetPost(ctx, &store.FindPost{ID: &postID, RowStatus: rowStatusPtr(store.Normal)})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, pberrors.NewNotFound("post %d not found", postID)
	}
	return &Thread{
		Root:      &ThreadNode{Post: post, Depth: 0},
		NodeCount: 1,
	}, nil
}

// Flatten produces the pre-order traversal of a thread: each node before its
// children, siblings in edge-creation order. It is a pure function of the
// tree and never mutates it.
func Flatten(thread *Thread) []*ThreadNode {
	if thread == nil || thread.Root == nil {
		return []*ThreadNode{}
	}
	flat := make([]*ThreadNode, 0, thread.NodeCount)
	var walk func(node *ThreadNode)
	walk = func(node *ThreadNode) {
		flat = append(flat, node)
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(thread.Root)
	return flat
}

func rowStatusPtr(status store.RowStatus) *store.RowStatus {
	return &status
}
