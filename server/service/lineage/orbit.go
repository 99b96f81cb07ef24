package lineage

import (
	"context"

	"github.com/Jessyabc/publicbusiness/store"
)

// OrbitEntry is one neighbor in a post's immediate relational neighborhood.
// RelationType keeps the concrete edge kind so list views can label entries
// even though orbit buckets collapse kinds into hard/soft classes.
type OrbitEntry struct {
	Post         *store.Post
	RelationID   int32
	RelationType store.RelationType
	CreatedTs    int64
}

// Orbit is the categorized neighborhood of a post.
//
// The hard class is reply (continuation semantics). The soft class collapses
// origin, quote and cross_link into reference semantics for display; the
// distinction between those three is intentionally lost at the bucket level
// and only retained per entry.
type Orbit struct {
	HardParents  []*OrbitEntry
	HardChildren []*OrbitEntry
	SoftParents  []*OrbitEntry
	SoftChildren []*OrbitEntry
}

// Size returns the total number of neighbors across all buckets.
func (o *Orbit) Size() int {
	return len(o.HardParents) + len(o.HardChildren) + len(o.SoftParents) + len(o.SoftChildren)
}

// FindRelatedPosts resolves the immediate relational neighborhood of a post
// for orbit views and cross-link feeds.
//
// Each neighbor appears at most once in the whole orbit: reply edges take
// precedence over soft edges, and within a class the newest relation wins.
// Neighbors whose post cannot be loaded (archived, deleted) are dropped.
func (s *Service) FindRelatedPosts(ctx context.Context, postID int32) (*Orbit, error) {
	relations, err := s.relations.ListPostRelations(ctx, &store.FindPostRelation{PostID: &postID})
	if err != nil {
		return nil, err
	}
	if len(relations) == 0 {
		return &Orbit{}, nil
	}

	neighborIDs := make([]int32, 0, len(relations))
	seenID := make(map[int32]bool, len(relations))
	for _, relation := range relations {
		neighborID := otherSide(relation, postID)
		if neighborID == postID || seenID[neighborID] {
			continue
		}
		seenID[neighborID] = true
		neighborIDs = append(neighborIDs, neighborID)
	}

	posts, err := s.posts.ListPosts(ctx, &store.FindPost{IDs: neighborIDs, RowStatus: rowStatusPtr(store.Normal)})
	if err != nil {
		return nil, err
	}
	postByID := make(map[int32]*store.Post, len(posts))
	for _, post := range posts {
		postByID[post.ID] = post
	}

	// Two passes: hard relations claim their neighbors first so a post linked
	// by both a reply and a cross_link lands in a hard bucket exactly once.
	orbit := &Orbit{}
	placed := make(map[int32]bool, len(neighborIDs))
	for _, pass := range []bool{true, false} {
		for _, relation := range relations {
			if relation.Type.IsHard() != pass {
				continue
			}
			neighborID := otherSide(relation, postID)
			if neighborID == postID || placed[neighborID] {
				continue
			}
			post := postByID[neighborID]
			if post == nil {
				continue
			}
			placed[neighborID] = true

			entry := &OrbitEntry{
				Post:         post,
				RelationID:   relation.ID,
				RelationType: relation.Type,
				CreatedTs:    relation.CreatedTs,
			}
			isChild := relation.ParentPostID == postID
			switch {
			case pass && isChild:
				orbit.HardChildren = append(orbit.HardChildren, entry)
			case pass && !isChild:
				orbit.HardParents = append(orbit.HardParents, entry)
			case !pass && isChild:
				orbit.SoftChildren = append(orbit.SoftChildren, entry)
			default:
				orbit.SoftParents = append(orbit.SoftParents, entry)
			}
		}
	}

	return orbit, nil
}

func otherSide(relation *store.PostRelation, postID int32) int32 {
	if relation.ParentPostID == postID {
		return relation.ChildPostID
	}
	return relation.ParentPostID
}
