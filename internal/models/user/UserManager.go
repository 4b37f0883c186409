// This file contains the UserManager implementation, which is responsible for interacting with the MongoDB users collection.
// The UserManager struct contains a pointer to the userdb.users MongoDB collection and a logger. Interaction with users
// is by ID or by email; the collection carries a unique index on email, which is the backstop for concurrent
// registrations racing past the existence check.

package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/UserHive/go-user-server/internal/log"
)

type UserManager struct {
	collection *mongo.Collection
	logger     *log.Logger
}

// NewUserManager creates a new instance of UserManager and ensures the
// unique-email index exists.
func NewUserManager(ctx context.Context, client *mongo.Client, logger *log.Logger) (*UserManager, error) {
	db := client.Database("userdb")
	um := &UserManager{
		collection: db.Collection("users"),
		logger:     logger,
	}

	_, err := um.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return um, nil
}

// FindAll retrieves every user from the database.
func (um *UserManager) FindAll(ctx context.Context) ([]User, error) {
	cursor, err := um.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByEmail retrieves a user from the database based on the given email.
func (um *UserManager) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := um.collection.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user from the database based on the given ID.
func (um *UserManager) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var u User
	err := um.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user document. A duplicate-key failure on the email
// index is reported as ErrEmailTaken so the controller can answer with a
// conflict instead of an internal error.
func (um *UserManager) Create(ctx context.Context, u *User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := um.collection.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// Save updates an existing user document in the database.
func (um *UserManager) Save(ctx context.Context, u *User) error {
	result, err := um.collection.UpdateOne(
		ctx,
		bson.M{"_id": u.ID},
		bson.M{"$set": bson.M{"email": u.Email, "password": u.Password}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes the user document with the given ID.
func (um *UserManager) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := um.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
