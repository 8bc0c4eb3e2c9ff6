package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category holds the structure for the categories collection in mongo.
// Survey questions reference a category by id.
type Category struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Order       int                `json:"order" bson:"order"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
