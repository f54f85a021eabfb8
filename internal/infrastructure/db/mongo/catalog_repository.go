package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

const areasCollection = "areas"

// CatalogRepository keeps every reference table in its own collection, named
// after the catalog kind, with its own id sequence.
type CatalogRepository struct {
	db *mongo.Database
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) coll(kind domain.CatalogKind) *mongo.Collection {
	return r.db.Collection(string(kind))
}

func (r *CatalogRepository) List(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll(kind).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	return decodeAll[domain.CatalogEntry](ctx, cur)
}

func (r *CatalogRepository) FindByID(ctx context.Context, kind domain.CatalogKind, id int64) (*domain.CatalogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.CatalogEntry
	if err := r.coll(kind).FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", kind, err)
	}
	return &e, nil
}

func (r *CatalogRepository) Create(ctx context.Context, entry *domain.CatalogEntry) (*domain.CatalogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, string(entry.Kind))
	if err != nil {
		return nil, err
	}
	doc := *entry
	doc.ID = id
	if _, err := r.coll(entry.Kind).InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert %s: %w", entry.Kind, err)
	}
	return &doc, nil
}

func (r *CatalogRepository) Update(ctx context.Context, entry *domain.CatalogEntry) (*domain.CatalogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll(entry.Kind).ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", entry.Kind, err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	out := *entry
	return &out, nil
}

type AreaRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewAreaRepository(db *mongo.Database) *AreaRepository {
	return &AreaRepository{db: db, coll: db.Collection(areasCollection)}
}

func (r *AreaRepository) List(ctx context.Context) ([]domain.Area, error) {
	return r.find(ctx, bson.M{})
}

func (r *AreaRepository) ListByEntity(ctx context.Context, entityID int64) ([]domain.Area, error) {
	return r.find(ctx, bson.M{"entity_id": entityID})
}

func (r *AreaRepository) find(ctx context.Context, filter bson.M) ([]domain.Area, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	return decodeAll[domain.Area](ctx, cur)
}

func (r *AreaRepository) FindByID(ctx context.Context, id int64) (*domain.Area, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Area
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrAreaNotFound
		}
		return nil, fmt.Errorf("find area: %w", err)
	}
	return &a, nil
}

func (r *AreaRepository) Create(ctx context.Context, area *domain.Area) (*domain.Area, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, areasCollection)
	if err != nil {
		return nil, err
	}
	doc := *area
	doc.ID = id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert area: %w", err)
	}
	return &doc, nil
}

func (r *AreaRepository) Update(ctx context.Context, area *domain.Area) (*domain.Area, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": area.ID}, area)
	if err != nil {
		return nil, fmt.Errorf("update area: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrAreaNotFound
	}
	out := *area
	return &out, nil
}

func (r *AreaRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete area: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAreaNotFound
	}
	return nil
}

func (r *AreaRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "entity_id", Value: 1}}})
	return err
}
