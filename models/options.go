package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MedicationOption is a reference-list entry for clinical forms
type MedicationOption struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Order       int                `json:"order" bson:"order"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// TreatmentOption is a reference-list entry that may point at the medications
// it involves
type TreatmentOption struct {
	ID                  primitive.ObjectID   `json:"_id" bson:"_id"`
	Name                string               `json:"name" bson:"name"`
	Description         string               `json:"description" bson:"description"`
	MedicationOptionIDs []primitive.ObjectID `json:"medicationOptionIds" bson:"medicationOptionIds"`
	Order               int                  `json:"order" bson:"order"`
	IsActive            bool                 `json:"isActive" bson:"isActive"`
	CreatedAt           primitive.DateTime   `json:"createdAt" bson:"createdAt"`
	UpdatedAt           primitive.DateTime   `json:"updatedAt" bson:"updatedAt"`
}

// FollowUpOption is a reference-list entry for clinical forms
type FollowUpOption struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Order       int                `json:"order" bson:"order"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// RefillReminderOption is a reference-list entry carrying the reminder window
// in days
type RefillReminderOption struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Days        int                `json:"days" bson:"days"`
	Order       int                `json:"order" bson:"order"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt   primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
