package firestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/nahiid-dev/VoyageCraft/internal/store"
)

// datastoreScope is the OAuth scope required for Firestore document access.
const datastoreScope = "https://www.googleapis.com/auth/datastore"

// defaultBaseURL is the production Firestore REST endpoint.
const defaultBaseURL = "https://firestore.googleapis.com/v1"

// Common construction errors
var (
	ErrNilLogger          = errors.New("logger cannot be nil")
	ErrEmptyCredentials   = errors.New("service account credentials cannot be empty")
	ErrEmptyCollection    = errors.New("collection name cannot be empty")
	ErrMissingProjectID   = errors.New("service account credentials missing project_id")
	ErrInvalidCredentials = errors.New("invalid service account credentials")
)

// Config holds the settings needed to talk to Firestore.
type Config struct {
	// CredentialsJSON is the raw service account key. The GCP project ID is
	// read from this document, the same way the store's own tooling does.
	CredentialsJSON []byte

	// Collection is the collection job documents live in.
	Collection string

	// BaseURL overrides the Firestore endpoint. Leave empty for production;
	// tests point it at a local fake.
	BaseURL string

	// Timeout bounds each store round trip. Zero means 10 seconds.
	Timeout time.Duration
}

// Client issues document create and patch calls against the Firestore REST
// API. It is constructed once per process and injected wherever a
// store.JobStore is needed; there is no lazily initialized global handle.
type Client struct {
	httpClient *http.Client
	baseURL    string
	projectID  string
	collection string
	logger     *slog.Logger
}

// NewClient builds a Client from service account credentials. The returned
// client authenticates every request with a token from the service
// account's JWT token source, scoped to Firestore.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}
	if len(cfg.CredentialsJSON) == 0 {
		return nil, ErrEmptyCredentials
	}
	if cfg.Collection == "" {
		return nil, ErrEmptyCollection
	}

	var account struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(cfg.CredentialsJSON, &account); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	if account.ProjectID == "" {
		return nil, ErrMissingProjectID
	}

	jwtConfig, err := google.JWTConfigFromJSON(cfg.CredentialsJSON, datastoreScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	httpClient := oauth2.NewClient(ctx, jwtConfig.TokenSource(ctx))
	httpClient.Timeout = timeout

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		projectID:  account.ProjectID,
		collection: cfg.Collection,
		logger:     logger.With("component", "firestore_client"),
	}, nil
}

// createDocument inserts a new document at the key derived from id. The
// documentId query parameter makes this a strict insert: Firestore answers
// 409 when the key is occupied, which surfaces as store.ErrJobAlreadyExists.
func (c *Client) createDocument(ctx context.Context, id string, doc map[string]any) error {
	fields, err := EncodeFields(doc)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/projects/%s/databases/(default)/documents/%s?documentId=%s",
		c.baseURL, c.projectID, c.collection, url.QueryEscape(id))

	return c.send(ctx, http.MethodPost, endpoint, fields)
}

// patchDocument updates only the named fields of an existing document. Each
// changed field is listed in the updateMask so everything else, including
// the immutable submission fields, stays untouched. The currentDocument
// precondition makes this a strict update: without it Firestore creates a
// missing document instead of answering 404, and a terminal write after an
// external deletion would plant a phantom partial record. A missing
// document surfaces as store.ErrJobNotFound.
func (c *Client) patchDocument(ctx context.Context, id string, doc map[string]any) error {
	fields, err := EncodeFields(doc)
	if err != nil {
		return err
	}

	mask := make([]string, 0, len(doc))
	for key := range doc {
		mask = append(mask, key)
	}
	sort.Strings(mask)

	params := url.Values{}
	params.Set("currentDocument.exists", "true")
	for _, key := range mask {
		params.Add("updateMask.fieldPaths", key)
	}

	endpoint := fmt.Sprintf("%s/projects/%s/databases/(default)/documents/%s/%s?%s",
		c.baseURL, c.projectID, c.collection, url.PathEscape(id), params.Encode())

	return c.send(ctx, http.MethodPatch, endpoint, fields)
}

func (c *Client) send(ctx context.Context, method, endpoint string, fields map[string]Value) error {
	payload, err := json.Marshal(struct {
		Fields map[string]Value `json:"fields"`
	}{Fields: fields})
	if err != nil {
		return fmt.Errorf("encode document payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build store request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrStoreUnavailable, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close store response body", "error", closeErr)
		}
	}()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	switch resp.StatusCode {
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", store.ErrJobAlreadyExists, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", store.ErrJobNotFound, body)
	default:
		return fmt.Errorf("%w: status %d: %s", store.ErrStoreUnavailable, resp.StatusCode, body)
	}
}
