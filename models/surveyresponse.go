package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Survey response review states
const (
	ResponseStatusNew      = "new"
	ResponseStatusReviewed = "reviewed"
	ResponseStatusArchived = "archived"
)

// ResponseStatuses lists every valid survey response status
var ResponseStatuses = []string{
	ResponseStatusNew,
	ResponseStatusReviewed,
	ResponseStatusArchived,
}

// UserInfo is the contact record embedded in a survey response
type UserInfo struct {
	FirstName   string `json:"firstName" bson:"firstName"`
	LastName    string `json:"lastName" bson:"lastName"`
	Email       string `json:"email" bson:"email"`
	Phone       string `json:"phone" bson:"phone"`
	DateOfBirth string `json:"dateOfBirth" bson:"dateOfBirth"`
	Gender      string `json:"gender" bson:"gender"`
	Address     string `json:"address" bson:"address"`
}

// SurveyAnswer is a single answer embedded in a survey response. The question
// text is snapshotted at submission time so historical responses stay readable
// after the question changes.
type SurveyAnswer struct {
	QuestionID   primitive.ObjectID `json:"questionId" bson:"questionId"`
	CategoryID   primitive.ObjectID `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	QuestionText string             `json:"questionText" bson:"questionText"`
	Answer       AnswerValue        `json:"answer" bson:"answer"`
}

// SurveyResponse holds the structure for the surveyresponses collection in mongo
type SurveyResponse struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	UserInfo  UserInfo           `json:"userInfo" bson:"userInfo"`
	ServiceID primitive.ObjectID `json:"serviceId,omitempty" bson:"serviceId,omitempty"`
	UserID    primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	Answers   []SurveyAnswer     `json:"answers" bson:"answers"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// ServiceSummary is the partial service embedded in survey response reads
type ServiceSummary struct {
	Name  string `json:"name" bson:"name"`
	Image string `json:"image" bson:"image"`
}

// UserSummary is the partial user embedded in survey response reads
type UserSummary struct {
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
	Email     string `json:"email" bson:"email"`
}

// SurveyResponseDetail is a survey response with its reference fields resolved
// into partial embedded summaries
type SurveyResponseDetail struct {
	SurveyResponse `bson:",inline"`
	Service        *ServiceSummary `json:"service,omitempty" bson:"service,omitempty"`
	User           *UserSummary    `json:"user,omitempty" bson:"user,omitempty"`
}
