package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carelinehq/telehealth-api/api"
	"github.com/carelinehq/telehealth-api/api/handlers"
	"github.com/carelinehq/telehealth-api/databases"
	"github.com/carelinehq/telehealth-api/databases/mocks"
	"github.com/carelinehq/telehealth-api/models"
)

func TestVitals_CreateVitalsHandler(t *testing.T) {
	uID := primitive.NewObjectID()
	staffID := primitive.NewObjectID()
	req, err := http.NewRequest("POST", "/api/vitals",
		strings.NewReader(`{"userId":"`+uID.Hex()+`","weight":"150 lbs","bloodPressure":"120/80","fastingBloodSugar":true}`))
	if err != nil {
		t.Fatal(err)
	}
	req = req.WithContext(api.WithIdentity(req.Context(),
		&api.Identity{UserID: staffID.Hex(), Role: models.RoleDoctor}))

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("InsertOne", mock.Anything, mock.MatchedBy(func(doc interface{}) bool {
		vitals, ok := doc.(models.Vitals)
		return ok && vitals.UserID == uID &&
			vitals.Weight == "150 lbs" &&
			vitals.FastingBloodSugar &&
			vitals.CreatedBy == staffID &&
			len(vitals.ChangeHistory) == 0 &&
			vitals.ChangeHistory != nil
	})).Return(nil, nil)
	db.On("Collection", "vitals").Return(conn)

	u := handlers.Vitals{DB: databases.NewVitalsDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.CreateVitalsHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	conn.AssertExpectations(t)
}

func TestVitals_UpdateVitalsHandlerRecordsHistory(t *testing.T) {
	vID := primitive.NewObjectID()
	staffID := primitive.NewObjectID()
	req, err := http.NewRequest("PUT", "/api/vitals/"+vID.Hex(),
		strings.NewReader(`{"weight":"145 lbs","bloodPressure":"120/80","changeHistory":[]}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"vitals_id": vID.Hex()})
	req = req.WithContext(api.WithIdentity(req.Context(),
		&api.Identity{UserID: staffID.Hex(), Role: models.RoleDoctor}))

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	findResult := &mocks.SingleResultHelper{}
	updateResult := &mocks.SingleResultHelper{}

	findResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Vitals)
		(*arg).ID = vID
		(*arg).Weight = "150 lbs"
		(*arg).BloodPressure = "120/80"
	})
	updateResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Vitals)
		(*arg).ID = vID
		(*arg).Weight = "145 lbs"
		(*arg).BloodPressure = "120/80"
		(*arg).ChangeHistory = []models.VitalsChange{
			{Field: "weight", OldValue: "150 lbs", NewValue: "145 lbs", ChangedBy: staffID},
		}
	})
	conn.On("FindOne", mock.Anything, mock.Anything).Return(findResult)
	conn.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.MatchedBy(func(update interface{}) bool {
		u, ok := update.(bson.M)
		if !ok {
			return false
		}
		set, ok := u["$set"].(bson.M)
		if !ok {
			return false
		}
		// only the edited weight lands in $set, the unchanged blood
		// pressure does not, and exactly one history entry is pushed
		if set["weight"] != "145 lbs" {
			return false
		}
		if _, hasBP := set["bloodPressure"]; hasBP {
			return false
		}
		push, ok := u["$push"].(bson.M)
		if !ok {
			return false
		}
		each, ok := push["changeHistory"].(bson.M)
		if !ok {
			return false
		}
		history, ok := each["$each"].([]models.VitalsChange)
		if !ok || len(history) != 1 {
			return false
		}
		return history[0].Field == "weight" &&
			history[0].OldValue == "150 lbs" &&
			history[0].NewValue == "145 lbs" &&
			history[0].ChangedBy == staffID
	}), mock.Anything).Return(updateResult)
	db.On("Collection", "vitals").Return(conn)

	u := handlers.Vitals{DB: databases.NewVitalsDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UpdateVitalsHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "145 lbs")
	conn.AssertExpectations(t)
}

func TestVitals_UpdateVitalsHandlerStoresMeasurementsAsStrings(t *testing.T) {
	vID := primitive.NewObjectID()
	staffID := primitive.NewObjectID()
	req, err := http.NewRequest("PUT", "/api/vitals/"+vID.Hex(),
		strings.NewReader(`{"weight":81.5,"fastingBloodSugar":true}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"vitals_id": vID.Hex()})
	req = req.WithContext(api.WithIdentity(req.Context(),
		&api.Identity{UserID: staffID.Hex(), Role: models.RoleDoctor}))

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	findResult := &mocks.SingleResultHelper{}
	updateResult := &mocks.SingleResultHelper{}

	findResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Vitals)
		(*arg).ID = vID
		(*arg).Weight = "80"
	})
	updateResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Vitals)
		(*arg).ID = vID
		(*arg).Weight = "81.5"
		(*arg).FastingBloodSugar = true
	})
	conn.On("FindOne", mock.Anything, mock.Anything).Return(findResult)
	conn.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.MatchedBy(func(update interface{}) bool {
		u, ok := update.(bson.M)
		if !ok {
			return false
		}
		set, ok := u["$set"].(bson.M)
		if !ok {
			return false
		}
		// a numeric weight lands as the string "81.5", never as a double,
		// while the fasting flag stays a boolean
		weight, isString := set["weight"].(string)
		if !isString || weight != "81.5" {
			return false
		}
		fasting, isBool := set["fastingBloodSugar"].(bool)
		if !isBool || !fasting {
			return false
		}
		push, ok := u["$push"].(bson.M)
		if !ok {
			return false
		}
		each, ok := push["changeHistory"].(bson.M)
		if !ok {
			return false
		}
		history, ok := each["$each"].([]models.VitalsChange)
		if !ok || len(history) != 2 {
			return false
		}
		return history[0].Field == "weight" &&
			history[0].OldValue == "80" &&
			history[0].NewValue == "81.5"
	}), mock.Anything).Return(updateResult)
	db.On("Collection", "vitals").Return(conn)

	u := handlers.Vitals{DB: databases.NewVitalsDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UpdateVitalsHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	conn.AssertExpectations(t)
}

func TestVitals_UpdateVitalsHandlerNotFound(t *testing.T) {
	vID := primitive.NewObjectID()
	req, err := http.NewRequest("PUT", "/api/vitals/"+vID.Hex(), strings.NewReader(`{"weight":"145 lbs"}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"vitals_id": vID.Hex()})

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	findResult := &mocks.SingleResultHelper{}

	findResult.On("Decode", mock.Anything).Return(databases.ErrNoDocuments)
	conn.On("FindOne", mock.Anything, mock.Anything).Return(findResult)
	db.On("Collection", "vitals").Return(conn)

	u := handlers.Vitals{DB: databases.NewVitalsDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UpdateVitalsHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "vitals not found")
	conn.AssertNotCalled(t, "FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
