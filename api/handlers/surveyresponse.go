package handlers

import (
	"encoding/json"
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

// SurveyResponse exported for testing purposes
type SurveyResponse struct {
	DB  databases.SurveyResponseDatabase
	QDB databases.SurveyQuestionDatabase
}

type surveyAnswerRequest struct {
	QuestionID string             `json:"questionId" validate:"required"`
	CategoryID string             `json:"categoryId"`
	Answer     models.AnswerValue `json:"answer"`
}

type surveyResponseRequest struct {
	UserInfo  models.UserInfo       `json:"userInfo"`
	ServiceID string                `json:"serviceId"`
	UserID    string                `json:"userId"`
	Answers   []surveyAnswerRequest `json:"answers" validate:"required,min=1"`
}

type surveyResponseStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new reviewed archived"`
}

// SurveyResponseHandler returns survey responses newest first with the
// service and user references resolved into partial summaries
func (s SurveyResponse) SurveyResponseHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if v := r.URL.Query().Get("userId"); v != "" {
		uID, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		filter["userId"] = uID
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter["status"] = v
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := s.DB.FindDetailed(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to get survey responses", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.SurveyResponseDetail{}
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// SurveyResponseByIDHandler returns one survey response with its references
// resolved
func (s SurveyResponse) SurveyResponseByIDHandler(w http.ResponseWriter, r *http.Request) {
	rID, err := objectIDFromVar(r, "response_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := s.DB.FindOneDetailed(ctx, bson.M{"_id": rID})
	if err != nil {
		if isNotFound(err) {
			config.ErrorStatus("survey response not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get survey response by ID", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// CreateSurveyResponseHandler stores a submitted survey. Each answer is
// checked against the live question so the stored value matches the question
// type, and the question text is snapshotted into the response.
func (s SurveyResponse) CreateSurveyResponseHandler(w http.ResponseWriter, r *http.Request) {
	var req surveyResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("validation failed", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	answers := make([]models.SurveyAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		qID, err := primitive.ObjectIDFromHex(a.QuestionID)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}

		question, err := s.QDB.FindOne(ctx, bson.M{"_id": qID})
		if err != nil {
			if isNotFound(err) {
				config.ErrorStatus("survey question not found", http.StatusBadRequest, w, err)
				return
			}
			config.ErrorStatus("failed to get survey question", http.StatusInternalServerError, w, err)
			return
		}
		if !a.Answer.ValidForType(question.Type) {
			config.ErrorStatus("answer does not match question type", http.StatusBadRequest, w,
				fmt.Errorf("question %s expects a %s answer", qID.Hex(), question.Type))
			return
		}

		answer := models.SurveyAnswer{
			QuestionID:   qID,
			CategoryID:   question.CategoryID,
			QuestionText: question.QuestionText,
			Answer:       a.Answer,
		}
		if a.CategoryID != "" {
			cID, err := primitive.ObjectIDFromHex(a.CategoryID)
			if err != nil {
				config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
				return
			}
			answer.CategoryID = cID
		}
		answers = append(answers, answer)
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	response := models.SurveyResponse{
		ID:        primitive.NewObjectID(),
		UserInfo:  req.UserInfo,
		Answers:   answers,
		Status:    models.ResponseStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.ServiceID != "" {
		sID, err := primitive.ObjectIDFromHex(req.ServiceID)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		response.ServiceID = sID
	}
	if req.UserID != "" {
		uID, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		response.UserID = uID
	}

	if _, err := s.DB.InsertOne(ctx, response); err != nil {
		config.ErrorStatus("failed to create survey response", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, response)
}

// UpdateSurveyResponseStatusHandler moves a response through the review
// workflow, only the status field is writable
func (s SurveyResponse) UpdateSurveyResponseStatusHandler(w http.ResponseWriter, r *http.Request) {
	rID, err := objectIDFromVar(r, "response_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req surveyResponseStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("validation failed", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := s.DB.FindOneAndUpdate(ctx, bson.M{"_id": rID},
		bson.M{"$set": bson.M{"status": req.Status, "updatedAt": primitive.NewDateTimeFromTime(time.Now())}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if isNotFound(err) {
			config.ErrorStatus("survey response not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to update survey response", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusOK, dbResp)
}
