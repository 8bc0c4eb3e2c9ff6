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

// The four clinical reference lists share one request shape plus per-list
// extras, so each gets its own thin handler over the same flow.

type optionRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	IsActive    *bool  `json:"isActive"`
}

func optionListFilter(r *http.Request) bson.M {
	filter := bson.M{}
	if r.URL.Query().Get("active") == "true" {
		filter["isActive"] = true
	}
	return filter
}

// MedicationOption exported for testing purposes
type MedicationOption struct {
	DB databases.MedicationOptionDatabase
}

// MedicationOptionHandler returns all medication options in display order
func (m MedicationOption) MedicationOptionHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := m.DB.Find(ctx, optionListFilter(r), options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		config.ErrorStatus("failed to get medication options", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.MedicationOption{}
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// CreateMedicationOptionHandler creates a medication option, names are unique
func (m MedicationOption) CreateMedicationOptionHandler(w http.ResponseWriter, r *http.Request) {
	var req optionRequest
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

	count, err := m.DB.CountDocuments(ctx, bson.M{"name": req.Name})
	if err != nil {
		config.ErrorStatus("failed to check for existing medication option", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("medication option already exists", http.StatusBadRequest, w, errAlreadyExists)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	option := models.MedicationOption{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsActive != nil {
		option.IsActive = *req.IsActive
	}

	if _, err := m.DB.InsertOne(ctx, option); err != nil {
		if isDuplicate(err) {
			config.ErrorStatus("medication option already exists", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to create medication option", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, option)
}

// UpdateMedicationOptionHandler applies the supplied fields and returns the
// updated medication option
func (m MedicationOption) UpdateMedicationOptionHandler(w http.ResponseWriter, r *http.Request) {
	oID, err := objectIDFromVar(r, "option_id")
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
		count, err := m.DB.CountDocuments(ctx, bson.M{"name": name, "_id": bson.M{"$ne": oID}})
		if err != nil {
			config.ErrorStatus("failed to check for existing medication option", http.StatusInternalServerError, w, err)
			return
		}
		if count > 0 {
			config.ErrorStatus("medication option already exists", http.StatusBadRequest, w, errAlreadyExists)
			return
		}
	}

	dbResp, err := m.DB.FindOneAndUpdate(ctx, bson.M{"_id": oID}, updateDocument(fields),
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if isNotFound(err) {
			config.ErrorStatus("medication option not found", http.StatusNotFound, w, err)
			return
		}
		if isDuplicate(err) {
			config.ErrorStatus("medication option already exists", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to update medication option", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// TreatmentOption exported for testing purposes
type TreatmentOption struct {
	DB databases.TreatmentOptionDatabase
}

type treatmentOptionRequest struct {
	optionRequest
	MedicationOptionIDs []string `json:"medicationOptionIds"`
}

// TreatmentOptionHandler returns all treatment options in display order
func (t TreatmentOption) TreatmentOptionHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := t.DB.Find(ctx, optionListFilter(r), options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		config.ErrorStatus("failed to get treatment options", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.TreatmentOption{}
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// CreateTreatmentOptionHandler creates a treatment option that may reference
// the medications it involves, names are unique
func (t TreatmentOption) CreateTreatmentOptionHandler(w http.ResponseWriter, r *http.Request) {
	var req treatmentOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("validation failed", http.StatusBadRequest, w, err)
		return
	}

	medicationIDs := make([]primitive.ObjectID, 0, len(req.MedicationOptionIDs))
	for _, raw := range req.MedicationOptionIDs {
		mID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		medicationIDs = append(medicationIDs, mID)
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := t.DB.CountDocuments(ctx, bson.M{"name": req.Name})
	if err != nil {
		config.ErrorStatus("failed to check for existing treatment option", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("treatment option already exists", http.StatusBadRequest, w, errAlreadyExists)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	option := models.TreatmentOption{
		ID:                  primitive.NewObjectID(),
		Name:                req.Name,
		Description:         req.Description,
		MedicationOptionIDs: medicationIDs,
		Order:               req.Order,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if req.IsActive != nil {
		option.IsActive = *req.IsActive
	}

	if _, err := t.DB.InsertOne(ctx, option); err != nil {
		if isDuplicate(err) {
			config.ErrorStatus("treatment option already exists", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to create treatment option", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, option)
}

// UpdateTreatmentOptionHandler applies the supplied fields and returns the
// updated treatment option
func (t TreatmentOption) UpdateTreatmentOptionHandler(w http.ResponseWriter, r *http.Request) {
	oID, err := objectIDFromVar(r, "option_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if raw, ok := fields["medicationOptionIds"].([]interface{}); ok {
		medicationIDs := make([]primitive.ObjectID, 0, len(raw))
		for _, entry := range raw {
			hex, ok := entry.(string)
			if !ok {
				config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w,
					fmt.Errorf("medicationOptionIds entries must be hex strings, got %T", entry))
				return
			}
			mID, err := primitive.ObjectIDFromHex(hex)
			if err != nil {
				config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
				return
			}
			medicationIDs = append(medicationIDs, mID)
		}
		fields["medicationOptionIds"] = medicationIDs
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if raw, ok := fields["name"]; ok {
		name, isString := raw.(string)
		if !isString || name == "" {
			config.ErrorStatus("validation failed", http.StatusBadRequest, w, errNameRequired)
			return
		}
		count, err := t.DB.CountDocuments(ctx, bson.M{"name": name, "_id": bson.M{"$ne": oID}})
		if err != nil {
			config.ErrorStatus("failed to check for existing treatment option", http.StatusInternalServerError, w, err)
			return
		}
		if count > 0 {
			config.ErrorStatus("treatment option already exists", http.StatusBadRequest, w, errAlreadyExists)
			return
		}
	}

	dbResp, err := t.DB.FindOneAndUpdate(ctx, bson.M{"_id": oID}, updateDocument(fields),
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if isNotFound(err) {
			config.ErrorStatus("treatment option not found", http.StatusNotFound, w, err)
			return
		}
		if isDuplicate(err) {
			config.ErrorStatus("treatment option already exists", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to update treatment option", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// FollowUpOption exported for testing purposes
type FollowUpOption struct {
	DB databases.FollowUpOptionDatabase
}

// FollowUpOptionHandler returns all follow-up options in display order
func (f FollowUpOption) FollowUpOptionHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := f.DB.Find(ctx, optionListFilter(r), options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		config.ErrorStatus("failed to get follow-up options", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.FollowUpOption{}
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// CreateFollowUpOptionHandler creates a follow-up option, names are unique
func (f FollowUpOption) CreateFollowUpOptionHandler(w http.ResponseWriter, r *http.Request) {
	var req optionRequest
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

	count, err := f.DB.CountDocuments(ctx, bson.M{"name": req.Name})
	if err != nil {
		config.ErrorStatus("failed to check for existing follow-up option", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("follow-up option already exists", http.StatusBadRequest, w, errAlreadyExists)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	option := models.FollowUpOption{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsActive != nil {
		option.IsActive = *req.IsActive
	}

	if _, err := f.DB.InsertOne(ctx, option); err != nil {
		if isDuplicate(err) {
			config.ErrorStatus("follow-up option already exists", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to create follow-up option", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, option)
}

// UpdateFollowUpOptionHandler applies the supplied fields and returns the
// updated follow-up option
func (f FollowUpOption) UpdateFollowUpOptionHandler(w http.ResponseWriter, r *http.Request) {
	oID, err := objectIDFromVar(r, "option_id")
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
		count, err := f.DB.CountDocuments(ctx, bson.M{"name": name, "_id": bson.M{"$ne": oID}})
		if err != nil {
			config.ErrorStatus("failed to check for existing follow-up option", http.StatusInternalServerError, w, err)
			return
		}
		if count > 0 {
			config.ErrorStatus("follow-up option already exists", http.StatusBadRequest, w, errAlreadyExists)
			return
		}
	}

	dbResp, err := f.DB.FindOneAndUpdate(ctx, bson.M{"_id": oID}, updateDocument(fields),
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if isNotFound(err) {
			config.ErrorStatus("follow-up option not found", http.StatusNotFound, w, err)
			return
		}
		if isDuplicate(err) {
			config.ErrorStatus("follow-up option already exists", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to update follow-up option", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// RefillReminderOption exported for testing purposes
type RefillReminderOption struct {
	DB databases.RefillReminderOptionDatabase
}

type refillReminderOptionRequest struct {
	optionRequest
	Days int `json:"days" validate:"gte=0"`
}

// RefillReminderOptionHandler returns all refill reminder options in display
// order
func (o RefillReminderOption) RefillReminderOptionHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := o.DB.Find(ctx, optionListFilter(r), options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		config.ErrorStatus("failed to get refill reminder options", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.RefillReminderOption{}
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// CreateRefillReminderOptionHandler creates a refill reminder option carrying
// the reminder window in days, names are unique
func (o RefillReminderOption) CreateRefillReminderOptionHandler(w http.ResponseWriter, r *http.Request) {
	var req refillReminderOptionRequest
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

	count, err := o.DB.CountDocuments(ctx, bson.M{"name": req.Name})
	if err != nil {
		config.ErrorStatus("failed to check for existing refill reminder option", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("refill reminder option already exists", http.StatusBadRequest, w, errAlreadyExists)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	option := models.RefillReminderOption{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		Days:        req.Days,
		Order:       req.Order,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsActive != nil {
		option.IsActive = *req.IsActive
	}

	if _, err := o.DB.InsertOne(ctx, option); err != nil {
		if isDuplicate(err) {
			config.ErrorStatus("refill reminder option already exists", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to create refill reminder option", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, option)
}

// UpdateRefillReminderOptionHandler applies the supplied fields and returns
// the updated refill reminder option
func (o RefillReminderOption) UpdateRefillReminderOptionHandler(w http.ResponseWriter, r *http.Request) {
	oID, err := objectIDFromVar(r, "option_id")
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
		count, err := o.DB.CountDocuments(ctx, bson.M{"name": name, "_id": bson.M{"$ne": oID}})
		if err != nil {
			config.ErrorStatus("failed to check for existing refill reminder option", http.StatusInternalServerError, w, err)
			return
		}
		if count > 0 {
			config.ErrorStatus("refill reminder option already exists", http.StatusBadRequest, w, errAlreadyExists)
			return
		}
	}

	dbResp, err := o.DB.FindOneAndUpdate(ctx, bson.M{"_id": oID}, updateDocument(fields),
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if isNotFound(err) {
			config.ErrorStatus("refill reminder option not found", http.StatusNotFound, w, err)
			return
		}
		if isDuplicate(err) {
			config.ErrorStatus("refill reminder option already exists", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to update refill reminder option", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusOK, dbResp)
}
