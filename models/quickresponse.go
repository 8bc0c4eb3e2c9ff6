package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// QuickResponse holds the structure for the quickresponses collection in
// mongo. Content is rich text authored by clinical staff.
type QuickResponse struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	Category  string             `json:"category" bson:"category"`
	CreatedBy primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
