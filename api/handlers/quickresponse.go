package handlers

import (
	"encoding/json"
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

// QuickResponse exported for testing purposes
type QuickResponse struct {
	DB databases.QuickResponseDatabase
}

type quickResponseRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category"`
}

// QuickResponseHandler returns all quick responses newest first
func (q QuickResponse) QuickResponseHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if v := r.URL.Query().Get("category"); v != "" {
		filter["category"] = v
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := q.DB.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		config.ErrorStatus("failed to get quick responses", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.QuickResponse{}
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// CreateQuickResponseHandler creates a canned reply attributed to the staff
// member behind the session
func (q QuickResponse) CreateQuickResponseHandler(w http.ResponseWriter, r *http.Request) {
	var req quickResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("validation failed", http.StatusBadRequest, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	quickResponse := models.QuickResponse{
		ID:        primitive.NewObjectID(),
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if identity, ok := api.IdentityFromContext(r.Context()); ok {
		if uID, err := primitive.ObjectIDFromHex(identity.UserID); err == nil {
			quickResponse.CreatedBy = uID
		}
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := q.DB.InsertOne(ctx, quickResponse); err != nil {
		config.ErrorStatus("failed to create quick response", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, quickResponse)
}

// UpdateQuickResponseHandler applies the supplied fields and returns the
// updated quick response
func (q QuickResponse) UpdateQuickResponseHandler(w http.ResponseWriter, r *http.Request) {
	qID, err := objectIDFromVar(r, "quick_response_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	delete(fields, "createdBy")

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := q.DB.FindOneAndUpdate(ctx, bson.M{"_id": qID}, updateDocument(fields),
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if isNotFound(err) {
			config.ErrorStatus("quick response not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to update quick response", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// DeleteQuickResponseHandler removes a quick response by ID
func (q QuickResponse) DeleteQuickResponseHandler(w http.ResponseWriter, r *http.Request) {
	qID, err := objectIDFromVar(r, "quick_response_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := q.DB.DeleteOne(ctx, bson.M{"_id": qID})
	if err != nil {
		config.ErrorStatus("failed to delete quick response", http.StatusInternalServerError, w, err)
		return
	}
	if count == 0 {
		config.ErrorStatus("quick response not found", http.StatusNotFound, w, databases.ErrNoDocuments)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
