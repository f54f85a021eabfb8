package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

const trackingCollection = "rendiciones"

// TrackingRepository stores one record per (indicator, year).
type TrackingRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewTrackingRepository(db *mongo.Database) *TrackingRepository {
	return &TrackingRepository{db: db, coll: db.Collection(trackingCollection)}
}

func (r *TrackingRepository) Find(ctx context.Context, indicatorID int64, year int) (*domain.TrackingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec domain.TrackingRecord
	err := r.coll.FindOne(ctx, bson.M{"indicator_id": indicatorID, "year": year}).Decode(&rec)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find tracking record: %w", err)
	}
	return &rec, nil
}

func (r *TrackingRepository) Save(ctx context.Context, rec *domain.TrackingRecord) (*domain.TrackingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *rec
	doc.Version = rec.Version + 1
	if doc.ID == 0 {
		id, err := nextID(ctx, r.db, trackingCollection)
		if err != nil {
			return nil, err
		}
		doc.ID = id
		if _, err := r.coll.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, fmt.Errorf("insert tracking record for indicator %d year %d: %w", doc.IndicatorID, doc.Year, domain.ErrConflict)
			}
			return nil, fmt.Errorf("insert tracking record: %w", err)
		}
		return &doc, nil
	}

	res, err := r.coll.ReplaceOne(ctx, versionFilter(doc.ID, rec.Version), doc)
	if err != nil {
		return nil, fmt.Errorf("update tracking record: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("update tracking record %d: %w", doc.ID, domain.ErrConflict)
	}
	return &doc, nil
}

// versionFilter matches a record only at the version it was read with.
// Records written before versioning have no version field and count as 0.
func versionFilter(id, version int64) bson.M {
	if version == 0 {
		return bson.M{"_id": id, "version": bson.M{"$in": bson.A{int64(0), nil}}}
	}
	return bson.M{"_id": id, "version": version}
}

func (r *TrackingRepository) ListByYear(ctx context.Context, year int) ([]domain.TrackingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"year": year})
	if err != nil {
		return nil, fmt.Errorf("list tracking records: %w", err)
	}
	return decodeAll[domain.TrackingRecord](ctx, cur)
}

// EnsureIndexes enforces a single record per indicator and year.
func (r *TrackingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "indicator_id", Value: 1}, {Key: "year", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "year", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
