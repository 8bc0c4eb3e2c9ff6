package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/carelinehq/telehealth-api/api/handlers"
	"github.com/carelinehq/telehealth-api/databases"
	"github.com/carelinehq/telehealth-api/databases/mocks"
	"github.com/carelinehq/telehealth-api/models"
)

func TestService_ServiceHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/services", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Service)
		*arg = []models.Service{
			{Name: "Weight Loss", Order: 1, IsActive: true},
			{Name: "Hair Restoration", Order: 2, IsActive: true},
		}
	})
	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursorHelper, nil)
	db.On("Collection", "services").Return(conn)

	u := handlers.Service{DB: databases.NewServiceDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.ServiceHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Weight Loss")
	assert.Contains(t, rr.Body.String(), "Hair Restoration")
}

func TestService_ServiceHandlerInactiveFilter(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/services?active=false", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("Decode", mock.Anything).Return(nil)
	conn.On("Find", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		m, ok := filter.(bson.M)
		return ok && m["isActive"] == false
	}), mock.Anything).Return(cursorHelper, nil)
	db.On("Collection", "services").Return(conn)

	u := handlers.Service{DB: databases.NewServiceDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.ServiceHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	conn.AssertExpectations(t)
}

func TestService_CreateServiceHandlerMissingImage(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/services", strings.NewReader(`{"name":"Weight Loss"}`))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}

	u := handlers.Service{DB: databases.NewServiceDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.CreateServiceHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	db.AssertNotCalled(t, "Collection", "services")
}

func TestService_CreateServiceHandler(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/services",
		strings.NewReader(`{"name":"Weight Loss","image":"https://img.example.com/wl.png","isComingSoon":true}`))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("InsertOne", mock.Anything, mock.MatchedBy(func(doc interface{}) bool {
		service, ok := doc.(models.Service)
		return ok && service.Name == "Weight Loss" && service.IsComingSoon && service.IsActive && service.IsAvailable
	})).Return(nil, nil)
	db.On("Collection", "services").Return(conn)

	u := handlers.Service{DB: databases.NewServiceDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.CreateServiceHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	conn.AssertExpectations(t)
}
