package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// NoteTypes lists the clinical note kinds accepted by the notes collection
var NoteTypes = []string{
	"general",
	"intake",
	"progress",
	"medication",
	"lab",
	"imaging",
	"referral",
	"discharge",
	"follow-up",
	"billing",
	"administrative",
}

// ValidNoteType reports whether t is one of the accepted note kinds
func ValidNoteType(t string) bool {
	for _, known := range NoteTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Note holds the structure for the notes collection in mongo
type Note struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Type      string             `json:"type" bson:"type"`
	Content   string             `json:"content" bson:"content"`
	CreatedBy primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
