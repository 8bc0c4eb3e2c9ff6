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

	"github.com/carelinehq/telehealth-api/api/handlers"
	"github.com/carelinehq/telehealth-api/databases"
	"github.com/carelinehq/telehealth-api/databases/mocks"
	"github.com/carelinehq/telehealth-api/models"
)

func TestSurveyQuestion_SurveyQuestionHandlerServiceFilter(t *testing.T) {
	sID := primitive.NewObjectID()
	req, err := http.NewRequest("GET", "/api/survey/questions?serviceId="+sID.Hex()+"&active=true", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("Decode", mock.Anything).Return(nil)
	conn.On("Find", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		m, ok := filter.(bson.M)
		return ok && m["serviceId"] == sID && m["isActive"] == true
	}), mock.Anything).Return(cursorHelper, nil)
	db.On("Collection", "surveyquestions").Return(conn)

	u := handlers.SurveyQuestion{DB: databases.NewSurveyQuestionDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.SurveyQuestionHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	conn.AssertExpectations(t)
}

func TestSurveyQuestion_SurveyQuestionHandlerBadServiceID(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/survey/questions?serviceId=1234", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}

	u := handlers.SurveyQuestion{DB: databases.NewSurveyQuestionDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.SurveyQuestionHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	db.AssertNotCalled(t, "Collection", "surveyquestions")
}

func TestSurveyQuestion_CreateSurveyQuestionHandlerSelectWithoutOptions(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/survey/questions",
		strings.NewReader(`{"questionText":"Which plan?","type":"select"}`))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}

	u := handlers.SurveyQuestion{DB: databases.NewSurveyQuestionDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.CreateSurveyQuestionHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "options are required")
	db.AssertNotCalled(t, "Collection", "surveyquestions")
}

func TestSurveyQuestion_CreateSurveyQuestionHandlerUnknownType(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/survey/questions",
		strings.NewReader(`{"questionText":"Which plan?","type":"dropdown"}`))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}

	u := handlers.SurveyQuestion{DB: databases.NewSurveyQuestionDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.CreateSurveyQuestionHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	db.AssertNotCalled(t, "Collection", "surveyquestions")
}

func TestSurveyQuestion_CreateSurveyQuestionHandlerTextDropsOptions(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/survey/questions",
		strings.NewReader(`{"questionText":"Anything else?","type":"textarea","options":["stale"],"required":true}`))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("InsertOne", mock.Anything, mock.MatchedBy(func(doc interface{}) bool {
		question, ok := doc.(models.SurveyQuestion)
		return ok && question.Type == models.QuestionTypeTextarea && len(question.Options) == 0 && question.Required
	})).Return(nil, nil)
	db.On("Collection", "surveyquestions").Return(conn)

	u := handlers.SurveyQuestion{DB: databases.NewSurveyQuestionDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.CreateSurveyQuestionHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	conn.AssertExpectations(t)
}

func TestSurveyQuestion_UpdateSurveyQuestionHandlerConvertsReferenceIDs(t *testing.T) {
	qID := primitive.NewObjectID()
	sID := primitive.NewObjectID()
	cID := primitive.NewObjectID()
	req, err := http.NewRequest("PUT", "/api/survey/questions/"+qID.Hex(),
		strings.NewReader(`{"serviceId":"`+sID.Hex()+`","categoryId":"`+cID.Hex()+`"}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"question_id": qID.Hex()})

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.SurveyQuestion)
		(*arg).ID = qID
		(*arg).ServiceID = sID
		(*arg).CategoryID = cID
	})
	conn.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.MatchedBy(func(update interface{}) bool {
		u, ok := update.(bson.M)
		if !ok {
			return false
		}
		set, ok := u["$set"].(map[string]interface{})
		if !ok {
			return false
		}
		// reference fields are stored as ObjectIDs so the list filters,
		// which query with ObjectIDs, keep matching after an update
		return set["serviceId"] == sID && set["categoryId"] == cID
	}), mock.Anything).Return(singleResultHelper)
	db.On("Collection", "surveyquestions").Return(conn)

	u := handlers.SurveyQuestion{DB: databases.NewSurveyQuestionDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UpdateSurveyQuestionHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	conn.AssertExpectations(t)
}

func TestSurveyQuestion_UpdateSurveyQuestionHandlerBadServiceID(t *testing.T) {
	qID := primitive.NewObjectID()
	req, err := http.NewRequest("PUT", "/api/survey/questions/"+qID.Hex(),
		strings.NewReader(`{"serviceId":"not-hex"}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"question_id": qID.Hex()})

	db := &MockDatabaseHelper{}

	u := handlers.SurveyQuestion{DB: databases.NewSurveyQuestionDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UpdateSurveyQuestionHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	db.AssertNotCalled(t, "Collection", "surveyquestions")
}

func TestSurveyQuestion_UpdateSurveyQuestionHandlerUnknownType(t *testing.T) {
	qID := primitive.NewObjectID()
	req, err := http.NewRequest("PUT", "/api/survey/questions/"+qID.Hex(),
		strings.NewReader(`{"type":"dropdown"}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"question_id": qID.Hex()})

	db := &MockDatabaseHelper{}

	u := handlers.SurveyQuestion{DB: databases.NewSurveyQuestionDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UpdateSurveyQuestionHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	db.AssertNotCalled(t, "Collection", "surveyquestions")
}

func TestSurveyQuestion_CreateSurveyQuestionHandlerCheckbox(t *testing.T) {
	cID := primitive.NewObjectID()
	req, err := http.NewRequest("POST", "/api/survey/questions",
		strings.NewReader(`{"questionText":"Symptoms?","type":"checkbox","options":["fatigue","headache"],"categoryId":"`+cID.Hex()+`"}`))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("InsertOne", mock.Anything, mock.MatchedBy(func(doc interface{}) bool {
		question, ok := doc.(models.SurveyQuestion)
		return ok && question.Type == models.QuestionTypeCheckbox && len(question.Options) == 2 && question.CategoryID == cID
	})).Return(nil, nil)
	db.On("Collection", "surveyquestions").Return(conn)

	u := handlers.SurveyQuestion{DB: databases.NewSurveyQuestionDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.CreateSurveyQuestionHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	conn.AssertExpectations(t)
}
