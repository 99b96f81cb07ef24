// Package lineage implements the read-only traversal core over the post
// relation graph: root resolution, thread tree assembly, breadcrumb paths and
// orbit (immediate neighborhood) discovery.
//
// All operations are pure readers. They re-derive the graph from store state
// on every call and never cache structure across calls.
package lineage

import (
	"context"

	"github.com/Jessyabc/publicbusiness/store"
)

// PostStore is the post access the traversal core consumes.
// *store.Store satisfies it; tests substitute in-memory fakes.
type PostStore interface {
	GetPost(ctx context.Context, find *store.FindPost) (*store.Post, error)
	ListPosts(ctx context.Context, find *store.FindPost) ([]*store.Post, error)
}

// RelationStore is the relation access the traversal core consumes.
type RelationStore interface {
	ListPostRelations(ctx context.Context, find *store.FindPostRelation) ([]*store.PostRelation, error)
}

// Config bounds traversal work so pathological or corrupted graphs produce a
// partial result instead of hanging.
type Config struct {
	// MaxNodes bounds how many posts a single thread build may include.
	MaxNodes int
	// MaxDepth bounds the thread tree depth (root = 0).
	MaxDepth int
	// ExcerptRunes bounds breadcrumb excerpt length.
	ExcerptRunes int
}

// DefaultConfig returns default traversal bounds.
func DefaultConfig() Config {
	return Config{
		MaxNodes:     500,
		MaxDepth:     50,
		ExcerptRunes: 120,
	}
}

// Service provides lineage traversal over injected stores.
type Service struct {
	posts     PostStore
	relations RelationStore
	config    Config
}

// NewService creates a lineage service.
func NewService(posts PostStore, relations RelationStore, config Config) *Service {
	if config.MaxNodes <= 0 {
		config.MaxNodes = DefaultConfig().MaxNodes
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultConfig().MaxDepth
	}
	if config.ExcerptRunes <= 0 {
		config.ExcerptRunes = DefaultConfig().ExcerptRunes
	}
	return &Service{
		posts:     posts,
		relations: relations,
		config:    config,
	}
}
