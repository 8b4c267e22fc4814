// Package sharing implements the client side of the Delta Sharing REST
// protocol: profile parsing, share/schema/table discovery, table queries, and
// conversion of the returned parquet data files to CSV.
package sharing

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/savaki/deltashare-deployer/internal/errors"
)

// Profile is the contents of a .share credentials file.
type Profile struct {
	ShareCredentialsVersion int    `json:"shareCredentialsVersion"`
	Endpoint                string `json:"endpoint"`
	BearerToken             string `json:"bearerToken"`
	ExpirationTime          string `json:"expirationTime,omitempty"`
}

// ParseProfile parses the raw bytes of a .share file.
func ParseProfile(data []byte) (*Profile, error) {
	if len(data) == 0 {
		return nil, apperrors.ErrEmptyProfile
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse share profile: %w", err)
	}
	if profile.Endpoint == "" {
		return nil, fmt.Errorf("share profile is missing an endpoint")
	}
	profile.Endpoint = strings.TrimSuffix(profile.Endpoint, "/")
	return &profile, nil
}
