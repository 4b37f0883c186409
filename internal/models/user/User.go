package user

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user account. The Password field always holds the bcrypt
// hash, never the plaintext. The hash is part of the API surface on register
// and list responses, which the client test-suite relies on.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"password"`
}
