package store

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	pberrors "github.com/Jessyabc/publicbusiness/internal/errors"
	"github.com/Jessyabc/publicbusiness/internal/profile"
)

// fakeDriver is an in-memory Driver used by store tests. It enforces the same
// uniqueness rules as the real schemas (duplicate triple, single reply
// parent) so the store's constraint-resolution paths are exercised without a
// live database.
type fakeDriver struct {
	mu sync.Mutex

	posts     map[int32]*Post
	relations map[int32]*PostRelation

	nextPostID     int32
	nextRelationID int32
	clock          int64
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		posts:     make(map[int32]*Post),
		relations: make(map[int32]*PostRelation),
		clock:     1000,
	}
}

func newTestStore() (*Store, *fakeDriver) {
	driver := newFakeDriver()
	return New(driver, &profile.Profile{Mode: "dev", Driver: "fake"}), driver
}

func (d *fakeDriver) GetDB() *sql.DB { return nil }
func (d *fakeDriver) Close() error   { return nil }

func (d *fakeDriver) IsInitialized(context.Context) (bool, error) { return true, nil }

func (d *fakeDriver) tick() int64 {
	d.clock++
	return d.clock
}

func (d *fakeDriver) CreatePost(_ context.Context, create *Post) (*Post, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextPostID++
	create.ID = d.nextPostID
	if create.CreatedTs == 0 {
		create.CreatedTs = d.tick()
	}
	if create.UpdatedTs == 0 {
		create.UpdatedTs = create.CreatedTs
	}
	clone := *create
	d.posts[create.ID] = &clone
	return create, nil
}

func (d *fakeDriver) ListPosts(_ context.Context, find *FindPost) ([]*Post, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	list := []*Post{}
	for _, post := range d.posts {
		if v := find.ID; v != nil && post.ID != *v {
			continue
		}
		if v := find.IDs; len(v) != 0 && !containsID(v, post.ID) {
			continue
		}
		if v := find.UID; v != nil && post.UID != *v {
			continue
		}
		if v := find.CreatorID; v != nil && post.CreatorID != *v {
			continue
		}
		if v := find.RowStatus; v != nil && post.RowStatus != *v {
			continue
		}
		if v := find.Type; v != nil && post.Type != *v {
			continue
		}
		if v := find.Visibility; v != nil && post.Visibility != *v {
			continue
		}
		clone := *post
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedTs != list[j].CreatedTs {
			return list[i].CreatedTs > list[j].CreatedTs
		}
		return list[i].ID > list[j].ID
	})
	if find.Limit != nil && len(list) > *find.Limit {
		list = list[:*find.Limit]
	}
	return list, nil
}

func (d *fakeDriver) UpdatePost(_ context.Context, update *UpdatePost) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	post, ok := d.posts[update.ID]
	if !ok {
		return nil
	}
	if v := update.RowStatus; v != nil {
		post.RowStatus = *v
	}
	if v := update.Title; v != nil {
		post.Title = *v
	}
	if v := update.Content; v != nil {
		post.Content = *v
	}
	if v := update.Visibility; v != nil {
		post.Visibility = *v
	}
	if v := update.LikesCount; v != nil {
		post.LikesCount = *v
	}
	if v := update.CommentsCount; v != nil {
		post.CommentsCount = *v
	}
	if v := update.ViewsCount; v != nil {
		post.ViewsCount = *v
	}
	post.UpdatedTs = d.tick()
	return nil
}

func (d *fakeDriver) DeletePost(_ context.Context, del *DeletePost) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	orphaned := make([]int32, 0)
	for id, relation := range d.relations {
		if relation.ParentPostID == del.ID || relation.ChildPostID == del.ID {
			orphaned = append(orphaned, id)
		}
	}
	for _, id := range orphaned {
		delete(d.relations, id)
	}
	delete(d.posts, del.ID)
	return nil
}

func (d *fakeDriver) CreatePostRelation(_ context.Context, create *PostRelation) (*PostRelation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.insertRelationLocked(create)
}

func (d *fakeDriver) CreatePostRelations(_ context.Context, creates []*PostRelation) ([]*PostRelation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// All-or-nothing: validate the whole batch before applying any of it.
	staged := make(map[int32]*PostRelation, len(d.relations))
	for id, relation := range d.relations {
		staged[id] = relation
	}
	list := make([]*PostRelation, 0, len(creates))
	for _, create := range creates {
		if err := checkRelationConstraints(staged, create); err != nil {
			return nil, err
		}
		d.nextRelationID++
		clone := *create
		clone.ID = d.nextRelationID
		if clone.CreatedTs == 0 {
			clone.CreatedTs = d.tick()
		}
		staged[clone.ID] = &clone
		list = append(list, &clone)
	}
	d.relations = staged
	return list, nil
}

func (d *fakeDriver) insertRelationLocked(create *PostRelation) (*PostRelation, error) {
	if err := checkRelationConstraints(d.relations, create); err != nil {
		return nil, err
	}
	d.nextRelationID++
	create.ID = d.nextRelationID
	if create.CreatedTs == 0 {
		create.CreatedTs = d.tick()
	}
	clone := *create
	d.relations[create.ID] = &clone
	return create, nil
}

func checkRelationConstraints(relations map[int32]*PostRelation, create *PostRelation) error {
	for _, existing := range relations {
		if existing.ParentPostID == create.ParentPostID &&
			existing.ChildPostID == create.ChildPostID &&
			existing.Type == create.Type {
			return pberrors.NewAlreadyExists("duplicate relation")
		}
		if create.Type == RelationReply && existing.Type == RelationReply &&
			existing.ChildPostID == create.ChildPostID {
			return pberrors.NewAlreadyExists("reply parent already exists")
		}
	}
	return nil
}

func (d *fakeDriver) ListPostRelations(_ context.Context, find *FindPostRelation) ([]*PostRelation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	list := []*PostRelation{}
	for _, relation := range d.relations {
		if v := find.ID; v != nil && relation.ID != *v {
			continue
		}
		if v := find.ParentPostID; v != nil && relation.ParentPostID != *v {
			continue
		}
		if v := find.ChildPostID; v != nil && relation.ChildPostID != *v {
			continue
		}
		if v := find.Type; v != nil && relation.Type != *v {
			continue
		}
		if v := find.PostID; v != nil && relation.ParentPostID != *v && relation.ChildPostID != *v {
			continue
		}
		clone := *relation
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedTs != list[j].CreatedTs {
			return list[i].CreatedTs > list[j].CreatedTs
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (d *fakeDriver) DeletePostRelation(_ context.Context, del *DeletePostRelation) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.relations, del.ID)
	return nil
}

func containsID(ids []int32, id int32) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
