package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	cldapi "github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/carelinehq/telehealth-api/api"
	"github.com/carelinehq/telehealth-api/config"
)

const maxUploadBytes = 10 << 20

var errUploadsNotConfigured = errors.New("image uploads are not configured")

// Upload proxies image uploads to the hosting provider so API credentials
// never reach the browser
type Upload struct {
	Config config.Config
}

type uploadResponse struct {
	URL          string `json:"url"`
	DeleteURL    string `json:"deleteUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// UploadHandler accepts a multipart file field and relays it to the image
// host, returning the hosted URL plus delete and thumbnail variants
func (u Upload) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if u.Config.CloudinaryURL == "" {
		config.ErrorStatus("image uploads are not configured", http.StatusBadRequest, w, errUploadsNotConfigured)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		config.ErrorStatus("file field is required", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()

	cld, err := cloudinary.NewFromURL(u.Config.CloudinaryURL)
	if err != nil {
		config.ErrorStatus("image uploads are not configured", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	resp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:          uuid.NewString(),
		Folder:            "telehealth",
		ReturnDeleteToken: cldapi.Bool(true),
	})
	if err != nil {
		config.ErrorStatus("image host rejected the upload", http.StatusBadGateway, w, err)
		return
	}
	if resp.Error.Message != "" {
		config.ErrorStatus("image host rejected the upload", http.StatusBadGateway, w, errors.New(resp.Error.Message))
		return
	}

	respondJSON(w, http.StatusOK, uploadResponse{
		URL:          resp.SecureURL,
		DeleteURL:    deleteTokenURL(cld.Config.Cloud.CloudName, resp.Response),
		ThumbnailURL: strings.Replace(resp.SecureURL, "/upload/", "/upload/c_thumb,h_200,w_200/", 1),
	})
}

// deleteTokenURL builds the delete_by_token endpoint URL for an upload. The
// typed upload result does not carry the token, it only appears in the raw
// response payload, which the SDK hands over as a pointer to the decoded JSON
// object. Empty when the host sent no token.
func deleteTokenURL(cloudName string, rawResponse interface{}) string {
	raw, ok := rawResponse.(*map[string]interface{})
	if !ok || raw == nil {
		return ""
	}
	token, ok := (*raw)["delete_token"].(string)
	if !ok || token == "" {
		return ""
	}
	return fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/delete_by_token?token=%s", cloudName, token)
}

// SignatureHandler signs an upload request so trusted clients can talk to
// the image host directly
func (u Upload) SignatureHandler(w http.ResponseWriter, r *http.Request) {
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if apiSecret == "" {
		config.ErrorStatus("image uploads are not configured", http.StatusBadRequest, w, errUploadsNotConfigured)
		return
	}
	uploadPreset := os.Getenv("CLOUDINARY_UPLOAD_PRESET")
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	h := hmac.New(sha1.New, []byte(apiSecret))
	h.Write([]byte("timestamp=" + timestamp + "&upload_preset=" + uploadPreset))
	signature := hex.EncodeToString(h.Sum(nil))

	respondJSON(w, http.StatusOK, map[string]string{
		"timestamp": timestamp,
		"signature": signature,
	})
}
