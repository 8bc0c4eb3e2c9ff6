package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinehq/telehealth-api/models"
)

const surveyResponseName = "surveyresponses"

// SurveyResponseDatabase contains the methods to use with the survey response
// collection
type SurveyResponseDatabase interface {
	FindOne(context.Context, interface{}, ...*options.FindOneOptions) (*models.SurveyResponse, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	FindOneAndUpdate(context.Context, interface{}, interface{}, ...*options.FindOneAndUpdateOptions) (*models.SurveyResponse, error)
	FindDetailed(context.Context, interface{}, ...*options.AggregateOptions) ([]models.SurveyResponseDetail, error)
	FindOneDetailed(context.Context, interface{}) (*models.SurveyResponseDetail, error)
}

type surveyResponseDatabase struct {
	db DatabaseHelper
}

// NewSurveyResponseDatabase initializes a new instance of survey response
// database with the provided db connection
func NewSurveyResponseDatabase(db DatabaseHelper) SurveyResponseDatabase {
	return &surveyResponseDatabase{
		db: db,
	}
}

func (s *surveyResponseDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.SurveyResponse, error) {
	response := &models.SurveyResponse{}
	err := s.db.Collection(surveyResponseName).FindOne(ctx, filter, opts...).Decode(&response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (s *surveyResponseDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return s.db.Collection(surveyResponseName).InsertOne(ctx, document, opts...)
}

func (s *surveyResponseDatabase) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) (*models.SurveyResponse, error) {
	response := &models.SurveyResponse{}
	err := s.db.Collection(surveyResponseName).FindOneAndUpdate(ctx, filter, update, opts...).Decode(&response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// FindDetailed runs the lookup pipeline that resolves the service and user
// references into partial embedded summaries, newest responses first.
func (s *surveyResponseDatabase) FindDetailed(ctx context.Context, filter interface{}, opts ...*options.AggregateOptions) ([]models.SurveyResponseDetail, error) {
	cur, err := s.db.Collection(surveyResponseName).Aggregate(ctx, detailPipeline(filter), opts...)
	if err != nil {
		return nil, err
	}
	var responses []models.SurveyResponseDetail
	err = cur.Decode(&responses)
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *surveyResponseDatabase) FindOneDetailed(ctx context.Context, filter interface{}) (*models.SurveyResponseDetail, error) {
	responses, err := s.FindDetailed(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(responses) == 0 {
		return nil, ErrNoDocuments
	}
	return &responses[0], nil
}

func detailPipeline(filter interface{}) []map[string]interface{} {
	return []map[string]interface{}{
		{"$match": filter},
		{"$sort": map[string]interface{}{"createdAt": -1}},
		{"$lookup": map[string]interface{}{
			"from":         serviceName,
			"localField":   "serviceId",
			"foreignField": "_id",
			"as":           "service",
		}},
		{"$unwind": map[string]interface{}{"path": "$service", "preserveNullAndEmptyArrays": true}},
		{"$lookup": map[string]interface{}{
			"from":         userName,
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "user",
		}},
		{"$unwind": map[string]interface{}{"path": "$user", "preserveNullAndEmptyArrays": true}},
		{"$addFields": map[string]interface{}{
			"service": map[string]interface{}{
				"name":  "$service.name",
				"image": "$service.image",
			},
			"user": map[string]interface{}{
				"firstName": "$user.firstName",
				"lastName":  "$user.lastName",
				"email":     "$user.email",
			},
		}},
	}
}
