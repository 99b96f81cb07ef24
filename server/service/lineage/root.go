package lineage

import (
	"context"
	"log/slog"

	"github.com/Jessyabc/publicbusiness/store"
)

// FindRoot walks incoming reply edges upward from the given post until no
// parent exists and returns the thread's origin. Because a post has at most
// one reply parent, this is a single deterministic walk, O(depth) lookups.
func (s *Service) FindRoot(ctx context.Context, postID int32) (int32, error) {
	path, err := s.walkToRoot(ctx, postID)
	if err != nil {
		return 0, err
	}
	return path[len(path)-1], nil
}

// walkToRoot returns the reply chain from the given post up to its root, in
// walk order (post first, root last).
//
// A visited set guards against reply cycles. A cycle cannot exist when the
// single-reply-parent invariant holds, so hitting one is recovered from
// defensively: the walk stops and the last node reached is treated as root,
// with the violation logged loudly so the store-layer bug stays observable.
func (s *Service) walkToRoot(ctx context.Context, postID int32) ([]int32, error) {
	current := postID
	visited := map[int32]bool{current: true}
	path := []int32{current}

	for {
		parent, err := s.replyParent(ctx, current)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return path, nil
		}

		next := parent.ParentPostID
		if visited[next] {
			slog.Error("reply cycle detected while resolving thread root",
				slog.String("violation", "integrity_violation"),
				slog.Int("start_post_id", int(postID)),
				slog.Int("revisited_post_id", int(next)))
			return path, nil
		}
		visited[next] = true
		path = append(path, next)
		current = next
	}
}

// replyParent returns the incoming reply edge of the given post, or nil when
// the post is a thread root.
func (s *Service) replyParent(ctx context.Context, postID int32) (*store.PostRelation, error) {
	replyType := store.RelationReply
	list, err := s.relations.ListPostRelations(ctx, &store.FindPostRelation{
		ChildPostID: &postID,
		Type:        &replyType,
	})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
