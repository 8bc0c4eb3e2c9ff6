package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carelinehq/telehealth-api/api/handlers"
	"github.com/carelinehq/telehealth-api/databases"
	"github.com/carelinehq/telehealth-api/databases/mocks"
	"github.com/carelinehq/telehealth-api/models"
)

func TestSurveyResponse_SurveyResponseHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/survey/responses", nil)
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.SurveyResponseDetail)
		*arg = []models.SurveyResponseDetail{
			{
				SurveyResponse: models.SurveyResponse{Status: models.ResponseStatusNew},
				Service:        &models.ServiceSummary{Name: "Weight Loss"},
			},
		}
	})
	conn.On("Aggregate", mock.Anything, mock.Anything).Return(cursorHelper, nil)
	db.On("Collection", "surveyresponses").Return(conn)

	u := handlers.SurveyResponse{DB: databases.NewSurveyResponseDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.SurveyResponseHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Weight Loss")
}

func TestSurveyResponse_SurveyResponseByIDHandlerNotFound(t *testing.T) {
	rID := primitive.NewObjectID()
	req, err := http.NewRequest("GET", "/api/survey/responses/"+rID.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"response_id": rID.Hex()})

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("Decode", mock.Anything).Return(nil)
	conn.On("Aggregate", mock.Anything, mock.Anything).Return(cursorHelper, nil)
	db.On("Collection", "surveyresponses").Return(conn)

	u := handlers.SurveyResponse{DB: databases.NewSurveyResponseDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.SurveyResponseByIDHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "survey response not found")
}

func TestSurveyResponse_CreateSurveyResponseHandlerTypeMismatch(t *testing.T) {
	qID := primitive.NewObjectID()
	req, err := http.NewRequest("POST", "/api/survey/responses",
		strings.NewReader(`{"answers":[{"questionId":"`+qID.Hex()+`","answer":"just one"}]}`))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	questions := &mocks.CollectionHelper{}
	responses := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.SurveyQuestion)
		(*arg).ID = qID
		(*arg).QuestionText = "Symptoms?"
		(*arg).Type = models.QuestionTypeCheckbox
		(*arg).Options = []string{"fatigue", "headache"}
	})
	questions.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "surveyquestions").Return(questions)
	db.On("Collection", "surveyresponses").Return(responses)

	u := handlers.SurveyResponse{
		DB:  databases.NewSurveyResponseDatabase(db),
		QDB: databases.NewSurveyQuestionDatabase(db),
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.CreateSurveyResponseHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "answer does not match question type")
	responses.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestSurveyResponse_CreateSurveyResponseHandlerUnknownQuestion(t *testing.T) {
	qID := primitive.NewObjectID()
	req, err := http.NewRequest("POST", "/api/survey/responses",
		strings.NewReader(`{"answers":[{"questionId":"`+qID.Hex()+`","answer":"yes"}]}`))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	questions := &mocks.CollectionHelper{}
	responses := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(databases.ErrNoDocuments)
	questions.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "surveyquestions").Return(questions)
	db.On("Collection", "surveyresponses").Return(responses)

	u := handlers.SurveyResponse{
		DB:  databases.NewSurveyResponseDatabase(db),
		QDB: databases.NewSurveyQuestionDatabase(db),
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.CreateSurveyResponseHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	responses.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestSurveyResponse_CreateSurveyResponseHandler(t *testing.T) {
	qID := primitive.NewObjectID()
	cID := primitive.NewObjectID()
	req, err := http.NewRequest("POST", "/api/survey/responses",
		strings.NewReader(`{"userInfo":{"firstName":"Jane","email":"jane@example.com"},"answers":[{"questionId":"`+qID.Hex()+`","answer":"180 lbs"}]}`))
	if err != nil {
		t.Fatal(err)
	}

	db := &MockDatabaseHelper{}
	questions := &mocks.CollectionHelper{}
	responses := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.SurveyQuestion)
		(*arg).ID = qID
		(*arg).QuestionText = "Current weight?"
		(*arg).Type = models.QuestionTypeText
		(*arg).CategoryID = cID
	})
	questions.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	responses.On("InsertOne", mock.Anything, mock.MatchedBy(func(doc interface{}) bool {
		response, ok := doc.(models.SurveyResponse)
		if !ok || len(response.Answers) != 1 {
			return false
		}
		answer := response.Answers[0]
		return response.Status == models.ResponseStatusNew &&
			answer.QuestionText == "Current weight?" &&
			answer.CategoryID == cID &&
			answer.Answer.Kind == models.AnswerString
	})).Return(nil, nil)
	db.On("Collection", "surveyquestions").Return(questions)
	db.On("Collection", "surveyresponses").Return(responses)

	u := handlers.SurveyResponse{
		DB:  databases.NewSurveyResponseDatabase(db),
		QDB: databases.NewSurveyQuestionDatabase(db),
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.CreateSurveyResponseHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "Current weight?")
	responses.AssertExpectations(t)
}

func TestSurveyResponse_UpdateSurveyResponseStatusHandlerInvalidStatus(t *testing.T) {
	rID := primitive.NewObjectID()
	req, err := http.NewRequest("PUT", "/api/survey/responses/"+rID.Hex(),
		strings.NewReader(`{"status":"done"}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"response_id": rID.Hex()})

	db := &MockDatabaseHelper{}

	u := handlers.SurveyResponse{DB: databases.NewSurveyResponseDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UpdateSurveyResponseStatusHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	db.AssertNotCalled(t, "Collection", "surveyresponses")
}

func TestSurveyResponse_UpdateSurveyResponseStatusHandler(t *testing.T) {
	rID := primitive.NewObjectID()
	req, err := http.NewRequest("PUT", "/api/survey/responses/"+rID.Hex(),
		strings.NewReader(`{"status":"reviewed"}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"response_id": rID.Hex()})

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResultHelper := &mocks.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.SurveyResponse)
		(*arg).ID = rID
		(*arg).Status = models.ResponseStatusReviewed
	})
	conn.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "surveyresponses").Return(conn)

	u := handlers.SurveyResponse{DB: databases.NewSurveyResponseDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UpdateSurveyResponseStatusHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "reviewed")
}
