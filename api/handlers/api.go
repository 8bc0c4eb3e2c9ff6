package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/carelinehq/telehealth-api/api"
	"github.com/carelinehq/telehealth-api/config"
	"github.com/carelinehq/telehealth-api/databases"
	"github.com/carelinehq/telehealth-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	client   databases.ClientHelper
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	session := api.Session{Secret: a.Config.JWTSecret}

	r := mux.NewRouter()

	auth := Auth{Session: session, UDB: databases.NewUserDatabase(a.dbHelper), RDB: databases.NewSurveyResponseDatabase(a.dbHelper)}
	cat := Category{DB: databases.NewCategoryDatabase(a.dbHelper)}
	doc := DocumentCategory{DB: databases.NewDocumentCategoryDatabase(a.dbHelper)}
	svc := Service{DB: databases.NewServiceDatabase(a.dbHelper)}
	q := SurveyQuestion{DB: databases.NewSurveyQuestionDatabase(a.dbHelper)}
	resp := SurveyResponse{DB: databases.NewSurveyResponseDatabase(a.dbHelper), QDB: databases.NewSurveyQuestionDatabase(a.dbHelper)}
	quick := QuickResponse{DB: databases.NewQuickResponseDatabase(a.dbHelper)}
	note := Note{DB: databases.NewNoteDatabase(a.dbHelper)}
	vitals := Vitals{DB: databases.NewVitalsDatabase(a.dbHelper)}
	med := MedicationOption{DB: databases.NewMedicationOptionDatabase(a.dbHelper)}
	treat := TreatmentOption{DB: databases.NewTreatmentOptionDatabase(a.dbHelper)}
	follow := FollowUpOption{DB: databases.NewFollowUpOptionDatabase(a.dbHelper)}
	refill := RefillReminderOption{DB: databases.NewRefillReminderOptionDatabase(a.dbHelper)}
	upload := Upload{Config: a.Config}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api").Subrouter()
	apiCreate.Use(session.Middleware)
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/auth/login", http.HandlerFunc(auth.LoginHandler)).Methods("POST")
	apiCreate.Handle("/auth/logout", http.HandlerFunc(auth.LogoutHandler)).Methods("POST")
	apiCreate.Handle("/auth/me", http.HandlerFunc(auth.MeHandler)).Methods("GET")

	apiCreate.Handle("/categories", http.HandlerFunc(cat.CategoryHandler)).Methods("GET")
	apiCreate.Handle("/categories", http.HandlerFunc(cat.CreateCategoryHandler)).Methods("POST")
	apiCreate.Handle("/categories/{category_id}", http.HandlerFunc(cat.CategoryByIDHandler)).Methods("GET")
	apiCreate.Handle("/categories/{category_id}", http.HandlerFunc(cat.UpdateCategoryHandler)).Methods("PUT")

	apiCreate.Handle("/document-categories", http.HandlerFunc(doc.DocumentCategoryHandler)).Methods("GET")
	apiCreate.Handle("/document-categories", http.HandlerFunc(doc.CreateDocumentCategoryHandler)).Methods("POST")
	apiCreate.Handle("/document-categories/{document_category_id}", http.HandlerFunc(doc.DocumentCategoryByIDHandler)).Methods("GET")
	apiCreate.Handle("/document-categories/{document_category_id}", http.HandlerFunc(doc.UpdateDocumentCategoryHandler)).Methods("PUT")
	apiCreate.Handle("/document-categories/{document_category_id}", http.HandlerFunc(doc.DeleteDocumentCategoryHandler)).Methods("DELETE")

	apiCreate.Handle("/services", http.HandlerFunc(svc.ServiceHandler)).Methods("GET")
	apiCreate.Handle("/services", http.HandlerFunc(svc.CreateServiceHandler)).Methods("POST")
	apiCreate.Handle("/services/{service_id}", http.HandlerFunc(svc.ServiceByIDHandler)).Methods("GET")
	apiCreate.Handle("/services/{service_id}", http.HandlerFunc(svc.UpdateServiceHandler)).Methods("PUT")

	apiCreate.Handle("/survey/questions", http.HandlerFunc(q.SurveyQuestionHandler)).Methods("GET")
	apiCreate.Handle("/survey/questions", http.HandlerFunc(q.CreateSurveyQuestionHandler)).Methods("POST")
	apiCreate.Handle("/survey/questions/{question_id}", http.HandlerFunc(q.UpdateSurveyQuestionHandler)).Methods("PUT")

	apiCreate.Handle("/survey/responses", http.HandlerFunc(resp.SurveyResponseHandler)).Methods("GET")
	apiCreate.Handle("/survey/responses", http.HandlerFunc(resp.CreateSurveyResponseHandler)).Methods("POST")
	apiCreate.Handle("/survey/responses/{response_id}", http.HandlerFunc(resp.SurveyResponseByIDHandler)).Methods("GET")
	apiCreate.Handle("/survey/responses/{response_id}", http.HandlerFunc(resp.UpdateSurveyResponseStatusHandler)).Methods("PUT")

	// quick responses, notes and vitals are clinical surfaces, writes are
	// restricted to staff roles while the other resources stay open
	apiCreate.Handle("/quick-responses", http.HandlerFunc(quick.QuickResponseHandler)).Methods("GET")
	apiCreate.Handle("/quick-responses", session.RequireRole(http.HandlerFunc(quick.CreateQuickResponseHandler), models.RoleAdmin, models.RoleDoctor)).Methods("POST")
	apiCreate.Handle("/quick-responses/{quick_response_id}", session.RequireRole(http.HandlerFunc(quick.UpdateQuickResponseHandler), models.RoleAdmin, models.RoleDoctor)).Methods("PUT")
	apiCreate.Handle("/quick-responses/{quick_response_id}", session.RequireRole(http.HandlerFunc(quick.DeleteQuickResponseHandler), models.RoleAdmin, models.RoleDoctor)).Methods("DELETE")

	apiCreate.Handle("/notes", http.HandlerFunc(note.NoteHandler)).Methods("GET")
	apiCreate.Handle("/notes", session.RequireRole(http.HandlerFunc(note.CreateNoteHandler), models.RoleAdmin, models.RoleDoctor)).Methods("POST")
	apiCreate.Handle("/notes/{note_id}", session.RequireRole(http.HandlerFunc(note.UpdateNoteHandler), models.RoleAdmin, models.RoleDoctor)).Methods("PUT")

	apiCreate.Handle("/vitals", http.HandlerFunc(vitals.VitalsHandler)).Methods("GET")
	apiCreate.Handle("/vitals", session.RequireRole(http.HandlerFunc(vitals.CreateVitalsHandler), models.RoleAdmin, models.RoleDoctor)).Methods("POST")
	apiCreate.Handle("/vitals/{vitals_id}", session.RequireRole(http.HandlerFunc(vitals.UpdateVitalsHandler), models.RoleAdmin, models.RoleDoctor)).Methods("PUT")

	apiCreate.Handle("/medication-options", http.HandlerFunc(med.MedicationOptionHandler)).Methods("GET")
	apiCreate.Handle("/medication-options", http.HandlerFunc(med.CreateMedicationOptionHandler)).Methods("POST")
	apiCreate.Handle("/medication-options/{option_id}", http.HandlerFunc(med.UpdateMedicationOptionHandler)).Methods("PUT")

	apiCreate.Handle("/treatment-options", http.HandlerFunc(treat.TreatmentOptionHandler)).Methods("GET")
	apiCreate.Handle("/treatment-options", http.HandlerFunc(treat.CreateTreatmentOptionHandler)).Methods("POST")
	apiCreate.Handle("/treatment-options/{option_id}", http.HandlerFunc(treat.UpdateTreatmentOptionHandler)).Methods("PUT")

	apiCreate.Handle("/follow-up-options", http.HandlerFunc(follow.FollowUpOptionHandler)).Methods("GET")
	apiCreate.Handle("/follow-up-options", http.HandlerFunc(follow.CreateFollowUpOptionHandler)).Methods("POST")
	apiCreate.Handle("/follow-up-options/{option_id}", http.HandlerFunc(follow.UpdateFollowUpOptionHandler)).Methods("PUT")

	apiCreate.Handle("/refill-reminder-options", http.HandlerFunc(refill.RefillReminderOptionHandler)).Methods("GET")
	apiCreate.Handle("/refill-reminder-options", http.HandlerFunc(refill.CreateRefillReminderOptionHandler)).Methods("POST")
	apiCreate.Handle("/refill-reminder-options/{option_id}", http.HandlerFunc(refill.UpdateRefillReminderOptionHandler)).Methods("PUT")

	apiCreate.Handle("/upload", http.HandlerFunc(upload.UploadHandler)).Methods("POST")
	apiCreate.Handle("/upload/signature", http.HandlerFunc(upload.SignatureHandler)).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}
	a.client = client

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = client.Connect(ctx)
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("telehealth-api has connected to the database")

	// initialize api router
	a.initializeRoutes()
	return nil
}

// Shutdown releases the shared database connection
func (a *App) Shutdown(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	return a.client.Disconnect(ctx)
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
