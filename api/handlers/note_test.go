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

func TestNote_NoteHandlerUserFilter(t *testing.T) {
	uID := primitive.NewObjectID()
	req, err := http.NewRequest("GET", "/api/notes?userId="+uID.Hex()+"&type=progress", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("Decode", mock.Anything).Return(nil)
	conn.On("Find", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		m, ok := filter.(bson.M)
		return ok && m["userId"] == uID && m["type"] == "progress"
	}), mock.Anything).Return(cursorHelper, nil)
	db.On("Collection", "notes").Return(conn)

	u := handlers.Note{DB: databases.NewNoteDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.NoteHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	conn.AssertExpectations(t)
}

func TestNote_CreateNoteHandlerUnknownType(t *testing.T) {
	uID := primitive.NewObjectID()
	req, err := http.NewRequest("POST", "/api/notes",
		strings.NewReader(`{"userId":"`+uID.Hex()+`","type":"gossip","content":"nope"}`))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}

	u := handlers.Note{DB: databases.NewNoteDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.CreateNoteHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	db.AssertNotCalled(t, "Collection", "notes")
}

func TestNote_UpdateNoteHandlerUnknownType(t *testing.T) {
	nID := primitive.NewObjectID()
	req, err := http.NewRequest("PUT", "/api/notes/"+nID.Hex(),
		strings.NewReader(`{"type":"gossip"}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"note_id": nID.Hex()})

	db := &MockDatabaseHelper{}

	u := handlers.Note{DB: databases.NewNoteDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UpdateNoteHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unknown note type")
	db.AssertNotCalled(t, "Collection", "notes")
}

func TestNote_CreateNoteHandler(t *testing.T) {
	uID := primitive.NewObjectID()
	staffID := primitive.NewObjectID()
	req, err := http.NewRequest("POST", "/api/notes",
		strings.NewReader(`{"userId":"`+uID.Hex()+`","type":"follow-up","content":"Check in after two weeks."}`))
	if err != nil {
		t.Fatal(err)
	}
	req = req.WithContext(api.WithIdentity(req.Context(),
		&api.Identity{UserID: staffID.Hex(), Role: models.RoleDoctor}))

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("InsertOne", mock.Anything, mock.MatchedBy(func(doc interface{}) bool {
		note, ok := doc.(models.Note)
		return ok && note.UserID == uID && note.Type == "follow-up" && note.CreatedBy == staffID
	})).Return(nil, nil)
	db.On("Collection", "notes").Return(conn)

	u := handlers.Note{DB: databases.NewNoteDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.CreateNoteHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	conn.AssertExpectations(t)
}
