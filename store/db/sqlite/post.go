package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jessyabc/publicbusiness/store"
)

func (d *DB) CreatePost(ctx context.Context, create *store.Post) (*store.Post, error) {
	fields := []string{"uid", "creator_id", "row_status", "type", "title", "content", "visibility"}
	placeholderValues := []any{
		create.UID, create.CreatorID, create.RowStatus, create.Type,
		create.Title, create.Content, create.Visibility,
	}

	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		placeholderValues = append(placeholderValues, create.CreatedTs)
	}
	if create.UpdatedTs != 0 {
		fields = append(fields, "updated_ts")
		placeholderValues = append(placeholderValues, create.UpdatedTs)
	}

	stmt := `INSERT INTO post (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", mapConstraintError(err))
	}

	return create, nil
}

func (d *DB) ListPosts(ctx context.Context, find *store.FindPost) ([]*store.Post, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "post.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.IDs; len(v) != 0 {
		list := []string{}
		for _, id := range v {
			list = append(list, placeholder(len(args)+1))
			args = append(args, id)
		}
		where = append(where, fmt.Sprintf("post.id IN (%s)", strings.Join(list, ", ")))
	}
	if v := find.UID; v != nil {
		where, args = append(where, "post.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.CreatorID; v != nil {
		where, args = append(where, "post.creator_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.RowStatus; v != nil {
		where, args = append(where, "post.row_status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Type; v != nil {
		where, args = append(where, "post.type = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Visibility; v != nil {
		where, args = append(where, "post.visibility = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT
			id, uid, creator_id, created_ts, updated_ts, row_status,
			type, title, content, visibility,
			likes_count, comments_count, views_count
		FROM post
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY post.created_ts DESC, post.id DESC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Post, 0)
	for rows.Next() {
		var post store.Post
		if err := rows.Scan(
			&post.ID,
			&post.UID,
			&post.CreatorID,
			&post.CreatedTs,
			&post.UpdatedTs,
			&post.RowStatus,
			&post.Type,
			&post.Title,
			&post.Content,
			&post.Visibility,
			&post.LikesCount,
			&post.CommentsCount,
			&post.ViewsCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		list = append(list, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return list, nil
}

func (d *DB) UpdatePost(ctx context.Context, update *store.UpdatePost) error {
	set, args := []string{}, []any{}

	if v := update.UpdatedTs; v != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *v)
	} else {
		set = append(set, "updated_ts = (strftime('%s', 'now'))")
	}
	if v := update.RowStatus; v != nil {
		set, args = append(set, "row_status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Title; v != nil {
		set, args = append(set, "title = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Content; v != nil {
		set, args = append(set, "content = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Visibility; v != nil {
		set, args = append(set, "visibility = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.LikesCount; v != nil {
		set, args = append(set, "likes_count = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.CommentsCount; v != nil {
		set, args = append(set, "comments_count = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.ViewsCount; v != nil {
		set, args = append(set, "views_count = "+placeholder(len(args)+1)), append(args, *v)
	}

	stmt := `UPDATE post SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args)+1)
	args = append(args, update.ID)

	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

func (d *DB) DeletePost(ctx context.Context, delete *store.DeletePost) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM post WHERE id = ?", delete.ID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}
