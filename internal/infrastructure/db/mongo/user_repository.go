package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

const usersCollection = "users"

type UserRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db, coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID           int64     `bson:"_id"`
	DocumentNo   string    `bson:"document_no,omitempty"`
	Name         string    `bson:"name"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"password_hash"`
	AreaID       *int64    `bson:"area_id,omitempty"`
	RoleID       *int64    `bson:"role_id,omitempty"`
	Status       string    `bson:"status"`
	CreatedAt    time.Time `bson:"created_at"`

	// Filled in by the lookup stages, never stored.
	AreaName string `bson:"area_name,omitempty"`
	RoleName string `bson:"role_name,omitempty"`
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID,
		DocumentNo:   mu.DocumentNo,
		Name:         mu.Name,
		Username:     mu.Username,
		PasswordHash: mu.PasswordHash,
		AreaID:       mu.AreaID,
		AreaName:     mu.AreaName,
		RoleID:       mu.RoleID,
		RoleName:     mu.RoleName,
		Status:       domain.Status(mu.Status),
		CreatedAt:    mu.CreatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, usersCollection)
	if err != nil {
		return nil, err
	}
	doc := mongoUser{
		ID:           id,
		DocumentNo:   user.DocumentNo,
		Name:         user.Name,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		AreaID:       user.AreaID,
		RoleID:       user.RoleID,
		Status:       string(user.Status),
		CreatedAt:    user.CreatedAt.UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	// fetch back to get area and role names
	return r.FindByID(ctx, id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, err := r.aggregate(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"document_no": user.DocumentNo,
		"name":        user.Name,
		"username":    user.Username,
		"area_id":     user.AreaID,
		"role_id":     user.RoleID,
		"status":      string(user.Status),
	}
	if user.PasswordHash != "" {
		set["password_hash"] = user.PasswordHash
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"password_hash": hash}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique username index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *UserRepository) findOne(ctx context.Context, match bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, err := r.aggregate(ctx, match)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return docs[0].toDomain(), nil
}

// aggregate returns the users matching match with their area and role names
// joined in.
func (r *UserRepository) aggregate(ctx context.Context, match bson.M) ([]mongoUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{"from": areasCollection, "localField": "area_id", "foreignField": "_id", "as": "area"}}},
		{{Key: "$lookup", Value: bson.M{"from": rolesCollection, "localField": "role_id", "foreignField": "_id", "as": "role"}}},
		{{Key: "$set", Value: bson.M{
			"area_name": bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$area.name", 0}}, ""}},
			"role_name": bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$role.name", 0}}, ""}},
		}}},
		{{Key: "$project", Value: bson.M{"area": 0, "role": 0}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	docs, err := decodeAll[mongoUser](ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return docs, nil
}
