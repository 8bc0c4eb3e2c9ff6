package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carelinehq/telehealth-api/config"
	"github.com/carelinehq/telehealth-api/databases"
	"github.com/carelinehq/telehealth-api/models"
)

var validate = validator.New()

var (
	errAlreadyExists      = errors.New("a document with that name already exists")
	errNameRequired       = errors.New("name must be a non-empty string")
	errInvalidCredentials = errors.New("email or password is incorrect")
	errNoSession          = errors.New("no valid session cookie")
)

// respondJSON writes the success envelope with the given status and payload
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	b, err := json.Marshal(models.Response{Success: true, Data: data})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

// objectIDFromVar pulls a path variable and converts it to an ObjectID
func objectIDFromVar(r *http.Request, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(mux.Vars(r)[name])
}

// updateDocument builds a $set update from the client supplied fields and
// drops the keys a client must never write
func updateDocument(fields map[string]interface{}) bson.M {
	delete(fields, "_id")
	delete(fields, "createdAt")
	delete(fields, "updatedAt")
	fields["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())
	return bson.M{"$set": fields}
}

// isNotFound reports whether err means the id did not resolve to a document
func isNotFound(err error) bool {
	return errors.Is(err, databases.ErrNoDocuments)
}

// isDuplicate reports whether err is a unique index violation
func isDuplicate(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
