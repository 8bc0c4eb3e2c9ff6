package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles assignable to a user. The role claim in the session token drives
// authorization on the routes that enforce it.
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// User holds the structure for the users collection in mongo
type User struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id"`
	Email            string             `json:"email" bson:"email"`
	Password         string             `json:"password,omitempty" bson:"password"`
	FirstName        string             `json:"firstName" bson:"firstName"`
	LastName         string             `json:"lastName" bson:"lastName"`
	Role             string             `json:"role" bson:"role"`
	SurveyResponseID primitive.ObjectID `json:"surveyResponseId,omitempty" bson:"surveyResponseId,omitempty"`
	IsActive         bool               `json:"isActive" bson:"isActive"`
	CreatedAt        primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt        primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Sanitized returns a copy of the user with the password hash stripped
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
