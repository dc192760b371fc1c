package images

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	defaultEndpoint = "https://api.imgbb.com/1/upload"
	uploadTimeout   = 30 * time.Second
)

// ExternalStore uploads images to an imgbb-compatible host and keeps only the
// returned public URL. Resolution is a no-op: the URL is already final.
type ExternalStore struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewExternal(apiKey, endpoint string) *ExternalStore {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &ExternalStore{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: uploadTimeout,
		},
	}
}

func (s *ExternalStore) Store(ctx context.Context, path, contentType string) (Stored, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Stored{}, err
	}

	form := url.Values{}
	form.Set("key", s.apiKey)
	form.Set("image", base64.StdEncoding.EncodeToString(data))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Stored{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Stored{}, fmt.Errorf("image host: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Stored{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Stored{}, fmt.Errorf("image host returned %d: %s", resp.StatusCode, truncateBody(body))
	}

	var parsed struct {
		Success bool `json:"success"`
		Data    struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Stored{}, fmt.Errorf("image host response: %w", err)
	}
	if !parsed.Success || parsed.Data.URL == "" {
		return Stored{}, fmt.Errorf("image host rejected upload: %s", truncateBody(body))
	}

	return Stored{URL: parsed.Data.URL, ContentType: contentType}, nil
}

func truncateBody(b []byte) string {
	const max = 256
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
