package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/karmakarsharmila40/idea-publishing-platform/models"
)

// UserRepository handles user documents in the "users" collection.
type UserRepository struct {
	users *mongo.Collection
}

// NewUserRepository creates a repository bound to the given database.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{users: db.Collection("users")}
}

// Create inserts a new user. Username and email must both be unused.
func (r *UserRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	taken, err := r.users.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"email": u.Email},
		bson.M{"username": u.Username},
	}})
	if err != nil {
		return models.User{}, err
	}
	if taken > 0 {
		return models.User{}, ErrDuplicateUser
	}

	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	if _, err := r.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail loads a user by exact email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID loads a user by ObjectID.
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
