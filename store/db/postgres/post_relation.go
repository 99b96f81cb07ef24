package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Jessyabc/publicbusiness/store"
)

func (d *DB) CreatePostRelation(ctx context.Context, create *store.PostRelation) (*store.PostRelation, error) {
	return createPostRelation(ctx, d.db, create)
}

// CreatePostRelations inserts the whole batch in one transaction so callers
// never observe a half-applied batch.
func (d *DB) CreatePostRelations(ctx context.Context, creates []*store.PostRelation) ([]*store.PostRelation, error) {
	if len(creates) == 0 {
		return []*store.PostRelation{}, nil
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	list := make([]*store.PostRelation, 0, len(creates))
	for _, create := range creates {
		relation, err := createPostRelation(ctx, tx, create)
		if err != nil {
			return nil, err
		}
		list = append(list, relation)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return list, nil
}

type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func createPostRelation(ctx context.Context, db execer, create *store.PostRelation) (*store.PostRelation, error) {
	fields := []string{"parent_post_id", "child_post_id", "type"}
	placeholderValues := []any{create.ParentPostID, create.ChildPostID, create.Type}

	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		placeholderValues = append(placeholderValues, create.CreatedTs)
	}

	stmt := `INSERT INTO post_relation (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts`

	if err := db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create post relation: %w", mapConstraintError(err))
	}

	return create, nil
}

func (d *DB) ListPostRelations(ctx context.Context, find *store.FindPostRelation) ([]*store.PostRelation, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "post_relation.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.ParentPostID; v != nil {
		where, args = append(where, "post_relation.parent_post_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.ChildPostID; v != nil {
		where, args = append(where, "post_relation.child_post_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Type; v != nil {
		where, args = append(where, "post_relation.type = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.PostID; v != nil {
		where = append(where, fmt.Sprintf("(post_relation.parent_post_id = %s OR post_relation.child_post_id = %s)",
			placeholder(len(args)+1), placeholder(len(args)+2)))
		args = append(args, *v, *v)
	}

	query := `
		SELECT id, parent_post_id, child_post_id, type, created_ts
		FROM post_relation
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY post_relation.created_ts DESC, post_relation.id DESC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query post relations: %w", err)
	}
	defer rows.Close()

	list := make([]*store.PostRelation, 0)
	for rows.Next() {
		var relation store.PostRelation
		if err := rows.Scan(
			&relation.ID,
			&relation.ParentPostID,
			&relation.ChildPostID,
			&relation.Type,
			&relation.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post relation: %w", err)
		}
		list = append(list, &relation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate post relations: %w", err)
	}

	return list, nil
}

func (d *DB) DeletePostRelation(ctx context.Context, delete *store.DeletePostRelation) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM post_relation WHERE id = $1", delete.ID); err != nil {
		return fmt.Errorf("failed to delete post relation: %w", err)
	}
	return nil
}
