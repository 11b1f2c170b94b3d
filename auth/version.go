package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/viant/sfreport/client"
)

// FallbackVersion is used when the versions endpoint cannot be read.
const FallbackVersion = "58.0"

const versionTimeout = 15 * time.Second

// Version is one entry of the /services/data/ listing.
type Version struct {
	Version string `json:"version"`
	Label   string `json:"label"`
	URL     string `json:"url"`
}

// LatestVersion reads the unauthenticated versions listing of an instance and returns the
// version of its last (newest) entry.
func LatestVersion(ctx context.Context, httpClient *client.Client, instanceURL string) (string, error) {
	URL := strings.TrimRight(instanceURL, "/") + "/services/data/"
	resp, err := httpClient.Get(ctx, URL, client.WithRetries(1), client.WithTimeout(versionTimeout))
	if err != nil {
		return "", err
	}
	var versions []Version
	if err = json.Unmarshal(resp.Body, &versions); err != nil {
		return "", fmt.Errorf("failed to decode versions: %w", err)
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("no versions listed at %s", URL)
	}
	latest := strings.TrimPrefix(versions[len(versions)-1].Version, "v")
	if latest == "" {
		return "", fmt.Errorf("empty version listed at %s", URL)
	}
	return latest, nil
}
