package funval

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/funval/hs-dashboard/internal/models"
	appErrors "github.com/funval/hs-dashboard/pkg/errors"
)

// CreateServiceRequest is the multipart payload for a new service-hour
// submission. Evidence is optional; when present it must be a PDF.
type CreateServiceRequest struct {
	AmountReported float64
	Description    string
	CategoryID     int
	Evidence       *EvidenceFile
}

// EvidenceFile is an uploaded evidence document forwarded to the backend.
type EvidenceFile struct {
	Filename string
	Content  io.Reader
}

// ReviewRequest is the atomic review payload for PATCH review/{id}. The
// backend encodes the decision as "1" (approve) or "2" (reject).
type ReviewRequest struct {
	AmountApproved float64 `json:"amount_approved"`
	Comment        string  `json:"comment"`
	Status         string  `json:"status"`
}

// Evidence is the downloaded evidence document.
type Evidence struct {
	ContentType string
	Body        []byte
}

// ListServices fetches every service visible to the caller. The backend
// scopes the list by role: students only see their own submissions.
func (c *Client) ListServices(ctx context.Context, auth Auth) ([]models.Service, error) {
	var services []models.Service
	if err := c.getJSON(ctx, auth, "services", &services); err != nil {
		return nil, err
	}
	return services, nil
}

// GetService fetches one submission by id.
func (c *Client) GetService(ctx context.Context, auth Auth, id int) (*models.Service, error) {
	var service models.Service
	if err := c.getJSON(ctx, auth, fmt.Sprintf("services/%d", id), &service); err != nil {
		return nil, err
	}
	return &service, nil
}

// CreateService submits service hours as multipart form data, with the
// evidence file attached when provided.
func (c *Client) CreateService(ctx context.Context, auth Auth, req CreateServiceRequest) error {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	fields := map[string]string{
		"amount_reported": fmt.Sprintf("%g", req.AmountReported),
		"description":     req.Description,
		"category_id":     fmt.Sprintf("%d", req.CategoryID),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode service form")
		}
	}

	if req.Evidence != nil {
		part, err := writer.CreateFormFile("evidence", req.Evidence.Filename)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to attach evidence")
		}
		if _, err := io.Copy(part, req.Evidence.Content); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read evidence")
		}
	}

	if err := writer.Close(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to finish service form")
	}

	resp, err := c.do(ctx, auth, http.MethodPost, "services", buf, writer.FormDataContentType())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.checkStatus(resp)
}

// Review submits the terminal review decision for a pending service.
func (c *Client) Review(ctx context.Context, auth Auth, id int, req ReviewRequest) error {
	return c.sendJSON(ctx, auth, http.MethodPatch, fmt.Sprintf("review/%d", id), req, nil)
}

// DownloadEvidence fetches the evidence PDF for a service.
func (c *Client) DownloadEvidence(ctx context.Context, auth Auth, id int) (*Evidence, error) {
	resp, err := c.do(ctx, auth, http.MethodGet, fmt.Sprintf("evidence/%d", id), nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, "failed to read evidence")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}

	return &Evidence{ContentType: contentType, Body: body}, nil
}
