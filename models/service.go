package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Service holds the structure for the services collection in mongo
type Service struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description" bson:"description"`
	Image        string             `json:"image" bson:"image"`
	Order        int                `json:"order" bson:"order"`
	IsActive     bool               `json:"isActive" bson:"isActive"`
	IsComingSoon bool               `json:"isComingSoon" bson:"isComingSoon"`
	IsAvailable  bool               `json:"isAvailable" bson:"isAvailable"`
	CreatedAt    primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt    primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
