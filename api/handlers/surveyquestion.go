package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carelinehq/telehealth-api/api"
	"github.com/carelinehq/telehealth-api/config"
	"github.com/carelinehq/telehealth-api/databases"
	"github.com/carelinehq/telehealth-api/models"
)

var errOptionsRequired = errors.New("options are required for select, radio and checkbox questions")

// SurveyQuestion exported for testing purposes
type SurveyQuestion struct {
	DB databases.SurveyQuestionDatabase
}

type surveyQuestionRequest struct {
	QuestionText string   `json:"questionText" validate:"required"`
	Type         string   `json:"type" validate:"required,oneof=text textarea select radio checkbox"`
	Options      []string `json:"options"`
	CategoryID   string   `json:"categoryId"`
	ServiceID    string   `json:"serviceId"`
	Order        int      `json:"order"`
	IsActive     *bool    `json:"isActive"`
	Required     bool     `json:"required"`
}

// SurveyQuestionHandler returns survey questions in display order, optionally
// scoped to a service, a category and the active flag
func (s SurveyQuestion) SurveyQuestionHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if v := r.URL.Query().Get("serviceId"); v != "" {
		sID, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		filter["serviceId"] = sID
	}
	if v := r.URL.Query().Get("categoryId"); v != "" {
		cID, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		filter["categoryId"] = cID
	}
	if r.URL.Query().Get("active") == "true" {
		filter["isActive"] = true
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := s.DB.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		config.ErrorStatus("failed to get survey questions", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.SurveyQuestion{}
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// CreateSurveyQuestionHandler creates a survey question. Choice based types
// must ship at least one option, free text types ignore options.
func (s SurveyQuestion) CreateSurveyQuestionHandler(w http.ResponseWriter, r *http.Request) {
	var req surveyQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("validation failed", http.StatusBadRequest, w, err)
		return
	}

	switch req.Type {
	case models.QuestionTypeSelect, models.QuestionTypeRadio, models.QuestionTypeCheckbox:
		if len(req.Options) == 0 {
			config.ErrorStatus("validation failed", http.StatusBadRequest, w, errOptionsRequired)
			return
		}
	default:
		req.Options = nil
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	question := models.SurveyQuestion{
		ID:           primitive.NewObjectID(),
		QuestionText: req.QuestionText,
		Type:         req.Type,
		Options:      req.Options,
		Order:        req.Order,
		IsActive:     true,
		Required:     req.Required,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}
	if req.CategoryID != "" {
		cID, err := primitive.ObjectIDFromHex(req.CategoryID)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		question.CategoryID = cID
	}
	if req.ServiceID != "" {
		sID, err := primitive.ObjectIDFromHex(req.ServiceID)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		question.ServiceID = sID
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := s.DB.InsertOne(ctx, question); err != nil {
		config.ErrorStatus("failed to create survey question", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, question)
}

// UpdateSurveyQuestionHandler applies the supplied fields and returns the
// updated survey question
func (s SurveyQuestion) UpdateSurveyQuestionHandler(w http.ResponseWriter, r *http.Request) {
	qID, err := objectIDFromVar(r, "question_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if raw, ok := fields["type"]; ok {
		qType, isString := raw.(string)
		if !isString || !models.ValidQuestionType(qType) {
			config.ErrorStatus("validation failed", http.StatusBadRequest, w,
				fmt.Errorf("unknown question type %v", raw))
			return
		}
		switch qType {
		case models.QuestionTypeSelect, models.QuestionTypeRadio, models.QuestionTypeCheckbox:
			if opts, ok := fields["options"].([]interface{}); ok && len(opts) == 0 {
				config.ErrorStatus("validation failed", http.StatusBadRequest, w, errOptionsRequired)
				return
			}
		default:
			fields["options"] = nil
		}
	}

	// reference fields arrive as hex strings but are stored as ObjectIDs,
	// same as on create, so the list filters keep matching
	for _, key := range []string{"categoryId", "serviceId"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		hex, isString := raw.(string)
		if !isString {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w,
				fmt.Errorf("%s must be a hex string, got %T", key, raw))
			return
		}
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		fields[key] = id
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := s.DB.FindOneAndUpdate(ctx, bson.M{"_id": qID}, updateDocument(fields),
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if isNotFound(err) {
			config.ErrorStatus("survey question not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to update survey question", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusOK, dbResp)
}
