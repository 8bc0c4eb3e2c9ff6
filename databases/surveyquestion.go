package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinehq/telehealth-api/models"
)

const surveyQuestionName = "surveyquestions"

// SurveyQuestionDatabase contains the methods to use with the survey question
// collection
type SurveyQuestionDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.SurveyQuestion, error)
	Find(context.Context, interface{}, ...*options.FindOptions) ([]models.SurveyQuestion, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	FindOneAndUpdate(context.Context, interface{}, interface{}, ...*options.FindOneAndUpdateOptions) (*models.SurveyQuestion, error)
}

type surveyQuestionDatabase struct {
	db DatabaseHelper
}

// NewSurveyQuestionDatabase initializes a new instance of survey question
// database with the provided db connection
func NewSurveyQuestionDatabase(db DatabaseHelper) SurveyQuestionDatabase {
	return &surveyQuestionDatabase{
		db: db,
	}
}

func (s *surveyQuestionDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.SurveyQuestion, error) {
	question := &models.SurveyQuestion{}
	err := s.db.Collection(surveyQuestionName).FindOne(ctx, filter, opts...).Decode(&question)
	if err != nil {
		return nil, err
	}
	return question, nil
}

func (s *surveyQuestionDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.SurveyQuestion, error) {
	var questions []models.SurveyQuestion
	cur, err := s.db.Collection(surveyQuestionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&questions)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *surveyQuestionDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return s.db.Collection(surveyQuestionName).InsertOne(ctx, document, opts...)
}

func (s *surveyQuestionDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.SurveyQuestion, error) {
	question := &models.SurveyQuestion{}
	err := s.db.Collection(surveyQuestionName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&question)
	if err != nil {
		return nil, err
	}
	return question, nil
}
