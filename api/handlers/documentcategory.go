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

// DocumentCategory exported for testing purposes
type DocumentCategory struct {
	DB databases.DocumentCategoryDatabase
}

type documentCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	IsActive    *bool  `json:"isActive"`
}

// DocumentCategoryHandler returns all document categories in display order
func (d DocumentCategory) DocumentCategoryHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if r.URL.Query().Get("active") == "true" {
		filter["isActive"] = true
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := d.DB.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		config.ErrorStatus("failed to get document categories", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.DocumentCategory{}
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// DocumentCategoryByIDHandler returns a document category by ID
func (d DocumentCategory) DocumentCategoryByIDHandler(w http.ResponseWriter, r *http.Request) {
	dID, err := objectIDFromVar(r, "document_category_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := d.DB.FindOne(ctx, bson.M{"_id": dID})
	if err != nil {
		config.ErrorStatus("failed to get document category by ID", http.StatusNotFound, w, err)
		return
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// CreateDocumentCategoryHandler creates a document category, names are unique
func (d DocumentCategory) CreateDocumentCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req documentCategoryRequest
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

	count, err := d.DB.CountDocuments(ctx, bson.M{"name": req.Name})
	if err != nil {
		config.ErrorStatus("failed to check for existing document category", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("document category already exists", http.StatusBadRequest, w, errAlreadyExists)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	documentCategory := models.DocumentCategory{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsActive != nil {
		documentCategory.IsActive = *req.IsActive
	}

	if _, err := d.DB.InsertOne(ctx, documentCategory); err != nil {
		if isDuplicate(err) {
			config.ErrorStatus("document category already exists", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to create document category", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, documentCategory)
}

// UpdateDocumentCategoryHandler applies the supplied fields and returns the
// updated document category
func (d DocumentCategory) UpdateDocumentCategoryHandler(w http.ResponseWriter, r *http.Request) {
	dID, err := objectIDFromVar(r, "document_category_id")
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
		count, err := d.DB.CountDocuments(ctx, bson.M{"name": name, "_id": bson.M{"$ne": dID}})
		if err != nil {
			config.ErrorStatus("failed to check for existing document category", http.StatusInternalServerError, w, err)
			return
		}
		if count > 0 {
			config.ErrorStatus("document category already exists", http.StatusBadRequest, w, errAlreadyExists)
			return
		}
	}

	dbResp, err := d.DB.FindOneAndUpdate(ctx, bson.M{"_id": dID}, updateDocument(fields),
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if isNotFound(err) {
			config.ErrorStatus("document category not found", http.StatusNotFound, w, err)
			return
		}
		if isDuplicate(err) {
			config.ErrorStatus("document category already exists", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to update document category", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// DeleteDocumentCategoryHandler removes a document category by ID
func (d DocumentCategory) DeleteDocumentCategoryHandler(w http.ResponseWriter, r *http.Request) {
	dID, err := objectIDFromVar(r, "document_category_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := d.DB.DeleteOne(ctx, bson.M{"_id": dID})
	if err != nil {
		config.ErrorStatus("failed to delete document category", http.StatusInternalServerError, w, err)
		return
	}
	if count == 0 {
		config.ErrorStatus("document category not found", http.StatusNotFound, w, databases.ErrNoDocuments)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
