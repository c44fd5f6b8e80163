// Package hub is a minimal Hugging Face Hub client covering what shardpush
// needs: dataset repo creation and single-commit file uploads via the
// NDJSON commit endpoint.
package hub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public Hub endpoint.
const DefaultBaseURL = "https://huggingface.co"

// Client talks to one Hub endpoint with one token.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient returns a Client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 10 * time.Minute},
	}
}

// CommitFile is one file in a commit: its path inside the repo and its
// raw content.
type CommitFile struct {
	Path    string
	Content []byte
}

// CreateRepo creates the dataset repo repoID ("owner/name"). An already
// existing repo (409) is not an error.
func (c *Client) CreateRepo(ctx context.Context, repoID string) error {
	owner, name, ok := strings.Cut(repoID, "/")
	if !ok {
		return fmt.Errorf("invalid repo id %q", repoID)
	}

	body, err := json.Marshal(map[string]string{
		"type":         "dataset",
		"name":         name,
		"organization": owner,
	})
	if err != nil {
		return err
	}

	resp, err := c.post(ctx, "/api/repos/create", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return nil // repo exists
	}
	return checkStatus(resp, "create repo "+repoID)
}

// Commit uploads files to the main branch of the dataset repo in a single
// commit. The payload is NDJSON: a header line followed by one base64 file
// operation per file.
func (c *Client) Commit(ctx context.Context, repoID, message string, files []CommitFile) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	header := map[string]interface{}{
		"key":   "header",
		"value": map[string]string{"summary": message},
	}
	if err := enc.Encode(header); err != nil {
		return err
	}
	for _, f := range files {
		op := map[string]interface{}{
			"key": "file",
			"value": map[string]string{
				"path":     f.Path,
				"content":  base64.StdEncoding.EncodeToString(f.Content),
				"encoding": "base64",
			},
		}
		if err := enc.Encode(op); err != nil {
			return err
		}
	}

	path := "/api/datasets/" + repoID + "/commit/main"
	resp, err := c.post(ctx, path, "application/x-ndjson", &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp, "commit to "+repoID)
}

// post issues an authenticated POST to BaseURL+path.
func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return c.HTTPClient.Do(req)
}

// checkStatus turns a non-2xx response into an error carrying a snippet of
// the response body for diagnosis.
func checkStatus(resp *http.Response, action string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%s: %s: %s", action, resp.Status, strings.TrimSpace(string(snippet)))
}
