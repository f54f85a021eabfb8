package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

const (
	menuItemsCollection     = "menu_items"
	accessEntriesCollection = "access_entries"
	rolesCollection         = "roles"
)

// MenuRepository stores the navigation catalog. Catalog order is id order.
type MenuRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{db: db, coll: db.Collection(menuItemsCollection)}
}

func (r *MenuRepository) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return decodeAll[domain.MenuItem](ctx, cur)
}

func (r *MenuRepository) FindItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var item domain.MenuItem
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("find menu item: %w", err)
	}
	return &item, nil
}

func (r *MenuRepository) CreateItem(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, menuItemsCollection)
	if err != nil {
		return nil, err
	}
	doc := *item
	doc.ID = id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert menu item: %w", err)
	}
	return &doc, nil
}

func (r *MenuRepository) UpdateItem(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrMenuItemNotFound
	}
	out := *item
	return &out, nil
}

// AccessRepository stores per-role access entries.
type AccessRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewAccessRepository(db *mongo.Database) *AccessRepository {
	return &AccessRepository{db: db, coll: db.Collection(accessEntriesCollection)}
}

func (r *AccessRepository) ListByRole(ctx context.Context, roleID int64) ([]domain.AccessEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "menu_item_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"role_id": roleID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list access entries: %w", err)
	}
	return decodeAll[domain.AccessEntry](ctx, cur)
}

func (r *AccessRepository) FindByID(ctx context.Context, id int64) (*domain.AccessEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.AccessEntry
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find access entry: %w", err)
	}
	return &e, nil
}

func (r *AccessRepository) SetState(ctx context.Context, id int64, state domain.AccessState) (*domain.AccessEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var e domain.AccessEntry
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"state": state}}, opts).Decode(&e)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update access entry: %w", err)
	}
	return &e, nil
}

// Seed inserts a disabled entry for every (role, item) pair that lacks one.
// Pairs inserted concurrently by another writer are skipped through the
// unique (role_id, menu_item_id) index.
func (r *AccessRepository) Seed(ctx context.Context, roleIDs, itemIDs []int64) error {
	if len(roleIDs) == 0 || len(itemIDs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"role_id": bson.M{"$in": roleIDs}, "menu_item_id": bson.M{"$in": itemIDs}}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"role_id": 1, "menu_item_id": 1}))
	if err != nil {
		return fmt.Errorf("seed access entries: %w", err)
	}
	existing, err := decodeAll[domain.AccessEntry](ctx, cur)
	if err != nil {
		return fmt.Errorf("seed access entries: %w", err)
	}
	have := make(map[[2]int64]bool, len(existing))
	for _, e := range existing {
		have[[2]int64{e.RoleID, e.MenuItemID}] = true
	}

	var missing [][2]int64
	for _, role := range roleIDs {
		for _, item := range itemIDs {
			if !have[[2]int64{role, item}] {
				missing = append(missing, [2]int64{role, item})
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	first, err := nextIDs(ctx, r.db, accessEntriesCollection, int64(len(missing)))
	if err != nil {
		return err
	}
	docs := make([]interface{}, 0, len(missing))
	for i, pair := range missing {
		docs = append(docs, domain.AccessEntry{
			ID:         first + int64(i),
			RoleID:     pair[0],
			MenuItemID: pair[1],
			State:      domain.StateDisabled,
		})
	}

	_, err = r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("seed access entries: %w", err)
	}
	return nil
}

// EnsureIndexes enforces one entry per (role, menu item).
func (r *AccessRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "role_id", Value: 1}, {Key: "menu_item_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

type RoleRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{db: db, coll: db.Collection(rolesCollection)}
}

func (r *RoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return decodeAll[domain.Role](ctx, cur)
}

func (r *RoleRepository) FindByID(ctx context.Context, id int64) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var role domain.Role
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&role); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &role, nil
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, rolesCollection)
	if err != nil {
		return nil, err
	}
	doc := *role
	doc.ID = id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert role: %w", err)
	}
	return &doc, nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": role.ID}, role)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrRoleNotFound
	}
	out := *role
	return &out, nil
}
