package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

const attachmentsCollection = "attachments"

type AttachmentRepository struct {
	coll *mongo.Collection
}

func NewAttachmentRepository(db *mongo.Database) *AttachmentRepository {
	return &AttachmentRepository{coll: db.Collection(attachmentsCollection)}
}

func (r *AttachmentRepository) List(ctx context.Context, indicatorID int64, year int) ([]domain.Attachment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"indicator_id": indicatorID, "year": year}, opts)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return decodeAll[domain.Attachment](ctx, cur)
}

func (r *AttachmentRepository) FindByID(ctx context.Context, id string) (*domain.Attachment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Attachment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("find attachment: %w", err)
	}
	return &a, nil
}

func (r *AttachmentRepository) Insert(ctx context.Context, a *domain.Attachment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert attachment: %w", err)
	}
	return nil
}

func (r *AttachmentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAttachmentNotFound
	}
	return nil
}

func (r *AttachmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "indicator_id", Value: 1}, {Key: "year", Value: 1}},
	})
	return err
}

func (r *AttachmentRepository) StoredNames(ctx context.Context) (map[string]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"stored_name": 1}))
	if err != nil {
		return nil, fmt.Errorf("list stored names: %w", err)
	}
	docs, err := decodeAll[domain.Attachment](ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("list stored names: %w", err)
	}
	names := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		names[d.StoredName] = struct{}{}
	}
	return names, nil
}
