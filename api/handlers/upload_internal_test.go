package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeleteTokenURLReadsTokenFromRawPayload(t *testing.T) {
	raw := map[string]interface{}{
		"public_id":    "telehealth/abc",
		"delete_token": "tok123",
	}

	url := deleteTokenURL("demo", &raw)

	assert.Equal(t, "https://api.cloudinary.com/v1_1/demo/delete_by_token?token=tok123", url)
}

func TestDeleteTokenURLEmptyWithoutToken(t *testing.T) {
	raw := map[string]interface{}{"public_id": "telehealth/abc"}

	assert.Empty(t, deleteTokenURL("demo", &raw))
	assert.Empty(t, deleteTokenURL("demo", nil))
	assert.Empty(t, deleteTokenURL("demo", "not a payload"))
}
