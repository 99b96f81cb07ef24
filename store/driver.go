package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Post model related methods.
	CreatePost(ctx context.Context, create *Post) (*Post, error)
	ListPosts(ctx context.Context, find *FindPost) ([]*Post, error)
	UpdatePost(ctx context.Context, update *UpdatePost) error
	DeletePost(ctx context.Context, delete *DeletePost) error

	// PostRelation model related methods. CreatePostRelation must surface
	// unique-index rejections as ALREADY_EXISTS so the store can keep
	// duplicate creates idempotent under concurrency. CreatePostRelations
	// applies the whole batch in one transaction.
	CreatePostRelation(ctx context.Context, create *PostRelation) (*PostRelation, error)
	CreatePostRelations(ctx context.Context, creates []*PostRelation) ([]*PostRelation, error)
	ListPostRelations(ctx context.Context, find *FindPostRelation) ([]*PostRelation, error)
	DeletePostRelation(ctx context.Context, delete *DeletePostRelation) error
}
