package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Question input types supported by the survey builder
const (
	QuestionTypeText     = "text"
	QuestionTypeTextarea = "textarea"
	QuestionTypeSelect   = "select"
	QuestionTypeRadio    = "radio"
	QuestionTypeCheckbox = "checkbox"
)

// QuestionTypes lists every valid survey question type
var QuestionTypes = []string{
	QuestionTypeText,
	QuestionTypeTextarea,
	QuestionTypeSelect,
	QuestionTypeRadio,
	QuestionTypeCheckbox,
}

// ValidQuestionType reports whether t is one of the supported question types
func ValidQuestionType(t string) bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// SurveyQuestion holds the structure for the surveyquestions collection in mongo
type SurveyQuestion struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	QuestionText string             `json:"questionText" bson:"questionText"`
	Type         string             `json:"type" bson:"type"`
	Options      []string           `json:"options" bson:"options"`
	CategoryID   primitive.ObjectID `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	ServiceID    primitive.ObjectID `json:"serviceId,omitempty" bson:"serviceId,omitempty"`
	Order        int                `json:"order" bson:"order"`
	IsActive     bool               `json:"isActive" bson:"isActive"`
	Required     bool               `json:"required" bson:"required"`
	CreatedAt    primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt    primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
