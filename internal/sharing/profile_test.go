package sharing

import (
	"testing"

	apperrors "github.com/savaki/deltashare-deployer/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfile(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		profile, err := ParseProfile([]byte(`{
			"shareCredentialsVersion": 1,
			"endpoint": "https://sharing.example.com/delta-sharing/",
			"bearerToken": "token-123",
			"expirationTime": "2027-01-01T00:00:00Z"
		}`))
		require.NoError(t, err)
		assert.Equal(t, 1, profile.ShareCredentialsVersion)
		assert.Equal(t, "https://sharing.example.com/delta-sharing", profile.Endpoint)
		assert.Equal(t, "token-123", profile.BearerToken)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseProfile(nil)
		assert.ErrorIs(t, err, apperrors.ErrEmptyProfile)
	})

	t.Run("NotJSON", func(t *testing.T) {
		_, err := ParseProfile([]byte("not a profile"))
		assert.Error(t, err)
	})

	t.Run("MissingEndpoint", func(t *testing.T) {
		_, err := ParseProfile([]byte(`{"shareCredentialsVersion":1,"bearerToken":"x"}`))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "endpoint")
	})
}
