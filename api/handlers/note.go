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

// Note exported for testing purposes
type Note struct {
	DB databases.NoteDatabase
}

type noteRequest struct {
	UserID  string `json:"userId" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=general intake progress medication lab imaging referral discharge follow-up billing administrative"`
	Content string `json:"content" validate:"required"`
}

// NoteHandler returns clinical notes newest first, optionally scoped to a
// patient and a note type
func (n Note) NoteHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if v := r.URL.Query().Get("userId"); v != "" {
		uID, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		filter["userId"] = uID
	}
	if v := r.URL.Query().Get("type"); v != "" {
		filter["type"] = v
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := n.DB.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		config.ErrorStatus("failed to get notes", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Note{}
	}
	respondJSON(w, http.StatusOK, dbResp)
}

// CreateNoteHandler creates a clinical note attributed to the staff member
// behind the session
func (n Note) CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
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
	note := models.Note{
		ID:        primitive.NewObjectID(),
		UserID:    uID,
		Type:      req.Type,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if identity, ok := api.IdentityFromContext(r.Context()); ok {
		if staffID, err := primitive.ObjectIDFromHex(identity.UserID); err == nil {
			note.CreatedBy = staffID
		}
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := n.DB.InsertOne(ctx, note); err != nil {
		config.ErrorStatus("failed to create note", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

// UpdateNoteHandler applies the supplied fields and returns the updated note
func (n Note) UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	nID, err := objectIDFromVar(r, "note_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	delete(fields, "userId")
	delete(fields, "createdBy")

	if raw, ok := fields["type"]; ok {
		noteType, isString := raw.(string)
		if !isString || !models.ValidNoteType(noteType) {
			config.ErrorStatus("validation failed", http.StatusBadRequest, w,
				fmt.Errorf("unknown note type %v", raw))
			return
		}
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := n.DB.FindOneAndUpdate(ctx, bson.M{"_id": nID}, updateDocument(fields),
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if isNotFound(err) {
			config.ErrorStatus("note not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to update note", http.StatusInternalServerError, w, err)
		return
	}
	respondJSON(w, http.StatusOK, dbResp)
}
