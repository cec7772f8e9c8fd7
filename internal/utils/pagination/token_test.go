package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	sessionDate := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)

	token := EncodeToken(sessionDate, 42)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, sessionDate, decodedDate, "Session date should match after decode")
	assert.Equal(t, int64(42), decodedID, "ID should match after decode")

	// Non-UTC input is normalised to UTC
	local := time.Date(2023, 5, 15, 12, 0, 0, 0, time.FixedZone("X", 3*3600))
	decodedDate, _, err = DecodeToken(EncodeToken(local, 1))
	assert.NoError(t, err)
	assert.True(t, local.Equal(decodedDate))
	assert.Equal(t, time.UTC, decodedDate.Location())
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.URLEncoding.EncodeToString([]byte("notadate|12"))
	_, _, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "session date parse")

	badID := base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z|twelve"))
	_, _, err = DecodeToken(badID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "id parse")
}
