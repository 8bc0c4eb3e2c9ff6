package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// VitalsChange is one entry in the append-only audit log embedded in a vitals
// document
type VitalsChange struct {
	Field     string             `json:"field" bson:"field"`
	OldValue  string             `json:"oldValue" bson:"oldValue"`
	NewValue  string             `json:"newValue" bson:"newValue"`
	ChangedBy primitive.ObjectID `json:"changedBy,omitempty" bson:"changedBy,omitempty"`
	ChangedAt primitive.DateTime `json:"changedAt" bson:"changedAt"`
}

// Vitals holds the structure for the vitals collection in mongo. Measurements
// are stored as text so the original input formatting survives round-trips.
type Vitals struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id"`
	UserID            primitive.ObjectID `json:"userId" bson:"userId"`
	Weight            string             `json:"weight" bson:"weight"`
	Height            string             `json:"height" bson:"height"`
	Temperature       string             `json:"temperature" bson:"temperature"`
	BMI               string             `json:"bmi" bson:"bmi"`
	BloodPressure     string             `json:"bloodPressure" bson:"bloodPressure"`
	RespiratoryRate   string             `json:"respiratoryRate" bson:"respiratoryRate"`
	Pulse             string             `json:"pulse" bson:"pulse"`
	BloodSugar        string             `json:"bloodSugar" bson:"bloodSugar"`
	FastingBloodSugar bool               `json:"fastingBloodSugar" bson:"fastingBloodSugar"`
	OxygenSaturation  string             `json:"oxygenSaturation" bson:"oxygenSaturation"`
	Notes             string             `json:"notes" bson:"notes"`
	ChangeHistory     []VitalsChange     `json:"changeHistory" bson:"changeHistory"`
	CreatedBy         primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	UpdatedBy         primitive.ObjectID `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	CreatedAt         primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt         primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
