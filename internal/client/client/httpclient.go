package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/bidscurator/internal/client/models"
	"github.com/dmitrijs2005/bidscurator/internal/common"
)

// maxErrorBody bounds how much of an error response body ends up in errors.
const maxErrorBody = 512

type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		h.http = c
	}
}

// NewHTTPClient builds a client for the platform at host. A host without a
// scheme is reached over https. timeout bounds every single request.
func NewHTTPClient(host, apiKey string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	if host == "" {
		return nil, errors.New("platform host is empty")
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parse host: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api"

	c := &HTTPClient{
		baseURL: u.String(),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) FindProject(ctx context.Context, label string) (*models.Project, error) {
	q := url.Values{}
	q.Set("filter", `label="`+label+`"`)
	q.Set("limit", "1")

	var projects []*models.Project
	if err := c.getJSON(ctx, "/projects", q, &projects); err != nil {
		return nil, err
	}

	for _, p := range projects {
		if p.Label == label {
			return p, nil
		}
	}
	return nil, fmt.Errorf("project %q: %w", label, common.ErrorNotFound)
}

func (c *HTTPClient) ProjectSessions(ctx context.Context, projectID string) ([]*models.Session, error) {
	var sessions []*models.Session
	if err := c.getJSON(ctx, "/projects/"+url.PathEscape(projectID)+"/sessions", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *HTTPClient) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	if err := c.getJSON(ctx, "/sessions/"+url.PathEscape(id), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) GetSubject(ctx context.Context, id string) (*models.Subject, error) {
	var s models.Subject
	if err := c.getJSON(ctx, "/subjects/"+url.PathEscape(id), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) GetAcquisition(ctx context.Context, id string) (*models.Acquisition, error) {
	var a models.Acquisition
	if err := c.getJSON(ctx, "/acquisitions/"+url.PathEscape(id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) SessionAcquisitions(ctx context.Context, sessionID string) ([]*models.Acquisition, error) {
	var acqs []*models.Acquisition
	if err := c.getJSON(ctx, "/sessions/"+url.PathEscape(sessionID)+"/acquisitions", nil, &acqs); err != nil {
		return nil, err
	}
	return acqs, nil
}

func (c *HTTPClient) UpdateFileInfo(ctx context.Context, acquisitionID, fileName string, patch map[string]any) error {
	body, err := json.Marshal(map[string]any{"set": patch})
	if err != nil {
		return fmt.Errorf("encode info patch: %w", err)
	}

	p := "/acquisitions/" + url.PathEscape(acquisitionID) + "/files/" + url.PathEscape(fileName) + "/info"
	return c.do(ctx, http.MethodPost, p, nil, bytes.NewReader(body), "application/json", nil)
}

func (c *HTTPClient) UploadFile(ctx context.Context, ref models.ContainerRef, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := mw.Close(); err != nil {
		return err
	}

	p := "/" + string(ref.Kind) + "/" + url.PathEscape(ref.ID) + "/files"
	return c.do(ctx, http.MethodPost, p, nil, &buf, mw.FormDataContentType(), nil)
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, q, nil, "", out)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, q url.Values, body io.Reader, contentType string, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set(common.AuthorizationHeaderName, common.AuthorizationScheme+" "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapStatus(method, path, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrBadResponse, path, err)
	}
	return nil
}

func (c *HTTPClient) mapStatus(method, path string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail := fmt.Sprintf("%s %s: %s", method, path, resp.Status)

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", detail, ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", detail, common.ErrorNotFound)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%s: %w", detail, ErrUnavailable)
	default:
		return fmt.Errorf("%s; body: %s: %w", detail, strings.TrimSpace(string(b)), ErrBadResponse)
	}
}

func (c *HTTPClient) mapTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
