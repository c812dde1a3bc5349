package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID returns a fresh entity identifier: a 24-character lowercase hex ObjectID.
// Both storage backends use the same identifier format.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id is a well-formed 24-character hex ObjectID.
func IsValidID(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
