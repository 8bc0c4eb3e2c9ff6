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

// Service exported for testing purposes
type Service struct {
	DB databases.ServiceDatabase
}

type serviceRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	Image        string `json:"image" validate:"required"`
	Order        int    `json:"order"`
	IsActive     *bool  `json:"isActive"`
	IsComingSoon bool   `json:"isComingSoon"`
	IsAvailable  *bool  `json:"isAvailable"`
}

// ServiceHandler returns all services in display order, the active query
// param filters both ways so admin screens can list disabled services
func (s Service) ServiceHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	switch r.URL.Query().Get("active") {
	case "true":
		filter["isActive"] = true
	case "false":
		filter["isActive"] = false
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := s.DB.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		config.ErrorStatus("failed to get services", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Service{}
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// ServiceByIDHandler returns a service by ID
func (s Service) ServiceByIDHandler(w http.ResponseWriter, r *http.Request) {
	sID, err := objectIDFromVar(r, "service_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := s.DB.FindOne(ctx, bson.M{"_id": sID})
	if err != nil {
		config.ErrorStatus("failed to get service by ID", http.StatusNotFound, w, err)
		return
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// CreateServiceHandler creates a service card, name and image are required
func (s Service) CreateServiceHandler(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("validation failed", http.StatusBadRequest, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	service := models.Service{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		Order:        req.Order,
		IsActive:     true,
		IsComingSoon: req.IsComingSoon,
		IsAvailable:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	if req.IsAvailable != nil {
		service.IsAvailable = *req.IsAvailable
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := s.DB.InsertOne(ctx, service); err != nil {
		if isDuplicate(err) {
			config.ErrorStatus("service already exists", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to create service", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, service)
}

// UpdateServiceHandler applies the supplied fields and returns the updated
// service
func (s Service) UpdateServiceHandler(w http.ResponseWriter, r *http.Request) {
	sID, err := objectIDFromVar(r, "service_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := s.DB.FindOneAndUpdate(ctx, bson.M{"_id": sID}, updateDocument(fields),
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if isNotFound(err) {
			config.ErrorStatus("service not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to update service", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusOK, dbResp)
}
