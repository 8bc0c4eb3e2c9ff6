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

// Category exported for testing purposes
type Category struct {
	DB databases.CategoryDatabase
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	IsActive    *bool  `json:"isActive"`
}

// CategoryHandler returns all categories in display order
func (c Category) CategoryHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if r.URL.Query().Get("active") == "true" {
		filter["isActive"] = true
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.DB.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		config.ErrorStatus("failed to get categories", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Category{}
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// CategoryByIDHandler returns a category by ID
func (c Category) CategoryByIDHandler(w http.ResponseWriter, r *http.Request) {
	cID, err := objectIDFromVar(r, "category_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.DB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to get category by ID", http.StatusNotFound, w, err)
		return
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// CreateCategoryHandler creates a category, names are unique
func (c Category) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
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

	count, err := c.DB.CountDocuments(ctx, bson.M{"name": req.Name})
	if err != nil {
		config.ErrorStatus("failed to check for existing category", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("category already exists", http.StatusBadRequest, w, errAlreadyExists)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	category := models.Category{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if _, err := c.DB.InsertOne(ctx, category); err != nil {
		if isDuplicate(err) {
			config.ErrorStatus("category already exists", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to create category", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

// UpdateCategoryHandler applies the supplied fields and returns the updated
// category
func (c Category) UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	cID, err := objectIDFromVar(r, "category_id")
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

	if raw, ok := fields["name"]; ok {
		name, isString := raw.(string)
		if !isString || name == "" {
			config.ErrorStatus("validation failed", http.StatusBadRequest, w, errNameRequired)
			return
		}
		count, err := c.DB.CountDocuments(ctx, bson.M{"name": name, "_id": bson.M{"$ne": cID}})
		if err != nil {
			config.ErrorStatus("failed to check for existing category", http.StatusInternalServerError, w, err)
			return
		}
		if count > 0 {
			config.ErrorStatus("category already exists", http.StatusBadRequest, w, errAlreadyExists)
			return
		}
	}

	dbResp, err := c.DB.FindOneAndUpdate(ctx, bson.M{"_id": cID}, updateDocument(fields),
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if isNotFound(err) {
			config.ErrorStatus("category not found", http.StatusNotFound, w, err)
			return
		}
		if isDuplicate(err) {
			config.ErrorStatus("category already exists", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to update category", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusOK, dbResp)
}
