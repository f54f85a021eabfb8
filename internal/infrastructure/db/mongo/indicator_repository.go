package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

const indicatorsCollection = "indicators"

type IndicatorRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewIndicatorRepository(db *mongo.Database) *IndicatorRepository {
	return &IndicatorRepository{db: db, coll: db.Collection(indicatorsCollection)}
}

func (r *IndicatorRepository) List(ctx context.Context) ([]domain.Indicator, error) {
	return r.find(ctx, bson.M{})
}

// ListByArea returns the indicators of an area in id order, so the first one
// is the oldest.
func (r *IndicatorRepository) ListByArea(ctx context.Context, areaID int64) ([]domain.Indicator, error) {
	return r.find(ctx, bson.M{"area_id": areaID})
}

func (r *IndicatorRepository) find(ctx context.Context, filter bson.M) ([]domain.Indicator, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list indicators: %w", err)
	}
	return decodeAll[domain.Indicator](ctx, cur)
}

func (r *IndicatorRepository) Create(ctx context.Context, ind *domain.Indicator) (*domain.Indicator, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, indicatorsCollection)
	if err != nil {
		return nil, err
	}
	doc := *ind
	doc.ID = id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert indicator: %w", err)
	}
	return &doc, nil
}

func (r *IndicatorRepository) Update(ctx context.Context, ind *domain.Indicator) (*domain.Indicator, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": ind.ID}, ind)
	if err != nil {
		return nil, fmt.Errorf("update indicator: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	out := *ind
	return &out, nil
}

func (r *IndicatorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "area_id", Value: 1}}},
		{Keys: bson.D{{Key: "sector_id", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
