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

// Measurement fields that feed the change history when edited
var trackedVitalFields = []string{
	"weight",
	"height",
	"temperature",
	"bmi",
	"bloodPressure",
	"respiratoryRate",
	"pulse",
	"bloodSugar",
	"fastingBloodSugar",
	"oxygenSaturation",
	"notes",
}

// Vitals exported for testing purposes
type Vitals struct {
	DB databases.VitalsDatabase
}

type vitalsRequest struct {
	UserID            string `json:"userId" validate:"required"`
	Weight            string `json:"weight"`
	Height            string `json:"height"`
	Temperature       string `json:"temperature"`
	BMI               string `json:"bmi"`
	BloodPressure     string `json:"bloodPressure"`
	RespiratoryRate   string `json:"respiratoryRate"`
	Pulse             string `json:"pulse"`
	BloodSugar        string `json:"bloodSugar"`
	FastingBloodSugar bool   `json:"fastingBloodSugar"`
	OxygenSaturation  string `json:"oxygenSaturation"`
	Notes             string `json:"notes"`
}

// VitalsHandler returns vitals records newest first, optionally scoped to a
// patient
func (v Vitals) VitalsHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if q := r.URL.Query().Get("userId"); q != "" {
		uID, err := primitive.ObjectIDFromHex(q)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		filter["userId"] = uID
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := v.DB.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		config.ErrorStatus("failed to get vitals", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Vitals{}
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// CreateVitalsHandler records a new vitals snapshot with an empty change
// history
func (v Vitals) CreateVitalsHandler(w http.ResponseWriter, r *http.Request) {
	var req vitalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("validation failed", http.StatusBadRequest, w, err)
		return
	}

	uID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	vitals := models.Vitals{
		ID:                primitive.NewObjectID(),
		UserID:            uID,
		Weight:            req.Weight,
		Height:            req.Height,
		Temperature:       req.Temperature,
		BMI:               req.BMI,
		BloodPressure:     req.BloodPressure,
		RespiratoryRate:   req.RespiratoryRate,
		Pulse:             req.Pulse,
		BloodSugar:        req.BloodSugar,
		FastingBloodSugar: req.FastingBloodSugar,
		OxygenSaturation:  req.OxygenSaturation,
		Notes:             req.Notes,
		ChangeHistory:     []models.VitalsChange{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if identity, ok := api.IdentityFromContext(r.Context()); ok {
		if staffID, err := primitive.ObjectIDFromHex(identity.UserID); err == nil {
			vitals.CreatedBy = staffID
		}
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := v.DB.InsertOne(ctx, vitals); err != nil {
		config.ErrorStatus("failed to create vitals", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, vitals)
}

// UpdateVitalsHandler applies the edited measurement fields and appends one
// change history entry per field that actually changed, in the same write.
// History is append only, the client cannot touch it.
func (v Vitals) UpdateVitalsHandler(w http.ResponseWriter, r *http.Request) {
	vID, err := objectIDFromVar(r, "vitals_id")
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

	existing, err := v.DB.FindOne(ctx, bson.M{"_id": vID})
	if err != nil {
		if isNotFound(err) {
			config.ErrorStatus("vitals not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get vitals", http.StatusInternalServerError, w, err)
		return
	}

	identity, _ := api.IdentityFromContext(r.Context())
	staffID := primitive.NilObjectID
	if identity != nil {
		if id, err := primitive.ObjectIDFromHex(identity.UserID); err == nil {
			staffID = id
		}
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	set := bson.M{"updatedAt": now}
	if !staffID.IsZero() {
		set["updatedBy"] = staffID
	}

	var history []models.VitalsChange
	for _, field := range trackedVitalFields {
		raw, ok := fields[field]
		if !ok {
			continue
		}
		newValue := vitalString(raw)
		oldValue := trackedVitalValue(existing, field)
		if newValue == oldValue {
			continue
		}
		// stored measurements are strings whatever JSON type the client
		// sent, the fasting flag is the lone boolean
		if field == "fastingBloodSugar" {
			set[field] = newValue == "true"
		} else {
			set[field] = newValue
		}
		history = append(history, models.VitalsChange{
			Field:     field,
			OldValue:  oldValue,
			NewValue:  newValue,
			ChangedBy: staffID,
			ChangedAt: now,
		})
	}

	update := bson.M{"$set": set}
	if len(history) > 0 {
		update["$push"] = bson.M{"changeHistory": bson.M{"$each": history}}
	}

	dbResp, err := v.DB.FindOneAndUpdate(ctx, bson.M{"_id": vID}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if isNotFound(err) {
			config.ErrorStatus("vitals not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to update vitals", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// trackedVitalValue reads the stored value of a tracked field as the string
// that goes into the history entry
func trackedVitalValue(v *models.Vitals, field string) string {
	switch field {
	case "weight":
		return v.Weight
	case "height":
		return v.Height
	case "temperature":
		return v.Temperature
	case "bmi":
		return v.BMI
	case "bloodPressure":
		return v.BloodPressure
	case "respiratoryRate":
		return v.RespiratoryRate
	case "pulse":
		return v.Pulse
	case "bloodSugar":
		return v.BloodSugar
	case "fastingBloodSugar":
		return fmt.Sprintf("%t", v.FastingBloodSugar)
	case "oxygenSaturation":
		return v.OxygenSaturation
	case "notes":
		return v.Notes
	}
	return ""
}

// vitalString renders a client supplied value the same way the stored values
// are rendered so the diff compares like with like
func vitalString(raw interface{}) string {
	switch val := raw.(type) {
	case string:
		return val
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
