package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/carelinehq/telehealth-api/api"
	"github.com/carelinehq/telehealth-api/config"
	"github.com/carelinehq/telehealth-api/databases"
)

// Auth handles the session and identity endpoints
type Auth struct {
	Session api.Session
	UDB     databases.UserDatabase
	RDB     databases.SurveyResponseDatabase
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginHandler verifies email/password and sets the signed session cookie
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("validation failed", http.StatusBadRequest, w, err)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.UDB.FindOne(ctx, bson.M{"email": email, "isActive": true})
	if err != nil {
		// do not leak whether the email exists
		config.ErrorStatus("invalid credentials", http.StatusUnauthorized, w, errInvalidCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		config.ErrorStatus("invalid credentials", http.StatusUnauthorized, w, errInvalidCredentials)
		return
	}

	signed, err := api.SignToken(user.ID.Hex(), user.Role, a.Session.Secret, api.SessionTTL)
	if err != nil {
		config.ErrorStatus("failed to sign session token", http.StatusInternalServerError, w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     api.SessionCookieName,
		Value:    signed,
		Path:     "/",
		Expires:  time.Now().Add(api.SessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": signed,
		"user":  user.Sanitized(),
	})
}

// LogoutHandler clears the session cookie
func (a Auth) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     api.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, nil)
}

// MeHandler returns the sanitized user behind the session cookie with the
// linked survey response attached when one exists
func (a Auth) MeHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := api.IdentityFromContext(r.Context())
	if !ok {
		config.ErrorStatus("authentication required", http.StatusUnauthorized, w, errNoSession)
		return
	}

	uID, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		config.ErrorStatus("authentication required", http.StatusUnauthorized, w, errNoSession)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.UDB.FindOne(ctx, bson.M{"_id": uID})
	if err != nil {
		if isNotFound(err) {
			config.ErrorStatus("user no longer exists", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get user", http.StatusInternalServerError, w, err)
		return
	}

	payload := map[string]interface{}{"user": user.Sanitized()}
	if !user.SurveyResponseID.IsZero() {
		if surveyResponse, err := a.RDB.FindOne(ctx, bson.M{"_id": user.SurveyResponseID}); err == nil {
			payload["surveyResponse"] = surveyResponse
		}
	}
	respondJSON(w, http.StatusOK, payload)
}
