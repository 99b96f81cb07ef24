package store

import (
	"context"

	pberrors "github.com/Jessyabc/publicbusiness/internal/errors"
)

// RelationType is the canonical kind of a directed post relation.
type RelationType string

const (
	// RelationOrigin marks the child as originating from the parent,
	// e.g. an idea and the first spark written on it.
	RelationOrigin RelationType = "origin"
	// RelationReply marks the child as the continuation of the parent.
	// Reply edges form the thread tree: a child has at most one reply parent.
	RelationReply RelationType = "reply"
	// RelationQuote marks the child as quoting the parent's content.
	RelationQuote RelationType = "quote"
	// RelationCrossLink is a soft "related" association, directed in storage
	// but symmetric in intent.
	RelationCrossLink RelationType = "cross_link"
)

// NormalizeRelationType maps legacy aliases to canonical relation types.
// "hard" and "soft" are historical names for reply and cross_link; nothing
// downstream of the write boundary ever sees them.
func NormalizeRelationType(raw string) (RelationType, bool) {
	switch raw {
	case "origin":
		return RelationOrigin, true
	case "reply", "hard":
		return RelationReply, true
	case "quote":
		return RelationQuote, true
	case "cross_link", "soft":
		return RelationCrossLink, true
	}
	return "", false
}

// IsHard reports whether the relation carries continuation semantics.
func (t RelationType) IsHard() bool {
	return t == RelationReply
}

// PostRelation is a directed, typed edge between two posts.
type PostRelation struct {
	ID           int32
	ParentPostID int32
	ChildPostID  int32
	Type         RelationType
	CreatedTs    int64
}

// FindPostRelation is the find condition for post relation.
type FindPostRelation struct {
	ID           *int32
	ParentPostID *int32
	ChildPostID  *int32
	Type         *RelationType

	// PostID matches relations where the post is parent OR child.
	PostID *int32
}

// DeletePostRelation is the delete request for post relation.
type DeletePostRelation struct {
	ID int32
}

// CreatePostRelation creates a typed edge between two posts after
// normalizing legacy aliases. Self-loops and second incoming reply edges are
// rejected with a validation error. Re-creating an existing
// (parent, child, type) triple is an idempotent no-op returning the existing
// row; the database unique index keeps that guarantee under concurrency.
func (s *Store) CreatePostRelation(ctx context.Context, create *PostRelation) (*PostRelation, error) {
	relationType, ok := NormalizeRelationType(string(create.Type))
	if !ok {
		return nil, pberrors.NewValidation("unknown relation type %q", create.Type)
	}
	create.Type = relationType

	if create.ParentPostID == create.ChildPostID {
		return nil, pberrors.NewValidation("relation must connect two distinct posts")
	}

	if existing, err := s.findExistingRelation(ctx, create); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	if relationType == RelationReply {
		parents, err := s.driver.ListPostRelations(ctx, &FindPostRelation{
			ChildPostID: &create.ChildPostID,
			Type:        &relationType,
		})
		if err != nil {
			return nil, err
		}
		if len(parents) > 0 {
			return nil, pberrors.NewValidation("post %d already continues from post %d", create.ChildPostID, parents[0].ParentPostID)
		}
	}

	relation, err := s.driver.CreatePostRelation(ctx, create)
	if err != nil {
		// The pre-checks above race against concurrent writers; the unique
		// indexes are the authority. Resolve constraint rejections here.
		if pberrors.IsAlreadyExists(err) {
			if existing, findErr := s.findExistingRelation(ctx, create); findErr == nil && existing != nil {
				return existing, nil
			}
			return nil, pberrors.NewValidation("post %d already has a reply parent", create.ChildPostID)
		}
		return nil, err
	}
	return relation, nil
}

func (s *Store) findExistingRelation(ctx context.Context, create *PostRelation) (*PostRelation, error) {
	list, err := s.driver.ListPostRelations(ctx, &FindPostRelation{
		ParentPostID: &create.ParentPostID,
		ChildPostID:  &create.ChildPostID,
		Type:         &create.Type,
	})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// CreateCrossLinks creates a cross_link edge from the parent to each child.
// Empty input is a no-op and a child equal to the parent fails the batch.
// Duplicates follow the same idempotent policy as CreatePostRelation: children
// already linked to the parent are skipped, so retrying a partially applied
// intent converges. The genuinely new edges go into a single transaction,
// all-or-nothing. A concurrent duplicate insert rolls the batch back with
// ALREADY_EXISTS; a retry then skips the settled edge and succeeds.
func (s *Store) CreateCrossLinks(ctx context.Context, parentID int32, childIDs []int32) error {
	if len(childIDs) == 0 {
		return nil
	}

	relationType := RelationCrossLink
	existing, err := s.driver.ListPostRelations(ctx, &FindPostRelation{
		ParentPostID: &parentID,
		Type:         &relationType,
	})
	if err != nil {
		return err
	}
	linked := make(map[int32]bool, len(existing)+len(childIDs))
	for _, relation := range existing {
		linked[relation.ChildPostID] = true
	}

	creates := make([]*PostRelation, 0, len(childIDs))
	for _, childID := range childIDs {
		if childID == parentID {
			return pberrors.NewValidation("cross-link must connect two distinct posts")
		}
		if linked[childID] {
			continue
		}
		linked[childID] = true
		creates = append(creates, &PostRelation{
			ParentPostID: parentID,
			ChildPostID:  childID,
			Type:         RelationCrossLink,
		})
	}
	if len(creates) == 0 {
		return nil
	}

	if _, err := s.driver.CreatePostRelations(ctx, creates); err != nil {
		return err
	}
	return nil
}

// ListPostRelations lists relations with filter. Results are ordered newest
// first so a post's relational neighborhood reads in reverse chronology.
func (s *Store) ListPostRelations(ctx context.Context, find *FindPostRelation) ([]*PostRelation, error) {
	return s.driver.ListPostRelations(ctx, find)
}

// GetPostRelation gets a single relation with filter. Returns nil when absent.
func (s *Store) GetPostRelation(ctx context.Context, find *FindPostRelation) (*PostRelation, error) {
	list, err := s.driver.ListPostRelations(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// DeletePostRelation removes an edge by id, returning the removed relation so
// the caller can run its ownership check against the connected posts.
func (s *Store) DeletePostRelation(ctx context.Context, delete *DeletePostRelation) (*PostRelation, error) {
	relation, err := s.GetPostRelation(ctx, &FindPostRelation{ID: &delete.ID})
	if err != nil {
		return nil, err
	}
	if relation == nil {
		return nil, pberrors.NewNotFound("relation %d not found", delete.ID)
	}
	if err := s.driver.DeletePostRelation(ctx, delete); err != nil {
		return nil, err
	}
	return relation, nil
}
