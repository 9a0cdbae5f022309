package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/funval/hs-dashboard/internal/funval"
	"github.com/funval/hs-dashboard/internal/models"
	"github.com/funval/hs-dashboard/pkg/config"
	appErrors "github.com/funval/hs-dashboard/pkg/errors"
)

// Review decisions as posted by the review form.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// SubmitServiceForm is the student submission form. Evidence is optional and
// restricted to PDF.
type SubmitServiceForm struct {
	AmountReported float64 `form:"amount_reported" validate:"required,gt=0"`
	Description    string  `form:"description" validate:"required"`
	CategoryID     int     `form:"category_id" validate:"required,gt=0"`
}

// ReviewForm is the admin review form. The decision is terminal: comment is
// always mandatory, approved hours must stay within the reported amount, and
// a rejection forces the approved amount to zero.
type ReviewForm struct {
	Decision string  `form:"decision" validate:"required,oneof=approve reject"`
	Hours    float64 `form:"hours"`
	Comment  string  `form:"comment" validate:"required"`
}

// ServiceTotals feeds the summary cards above the services table: hours
// reported and hours approved, aggregated over the caller's full list.
type ServiceTotals struct {
	Reported float64
	Approved float64
}

// RecordService drives the service-hour submission and review workflows.
type RecordService struct {
	client    *funval.Client
	validator *validator.Validate
	logger    *zap.Logger
	uploads   config.UploadConfig
	pageSize  int
}

// NewRecordService creates an instance of RecordService.
func NewRecordService(client *funval.Client, validate *validator.Validate, logger *zap.Logger, uploads config.UploadConfig, pageSize int) *RecordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &RecordService{client: client, validator: validate, logger: logger, uploads: uploads, pageSize: pageSize}
}

func serviceSearchFields(s models.Service) []string {
	return []string{s.CategoryName(), s.ReporterName(), s.Status, s.Description}
}

// List fetches the services visible to the caller and applies the shared
// filter/paginate pattern. The backend already scopes students to their own
// submissions. Totals are computed over the unfiltered list so searching
// never changes the summary numbers.
func (s *RecordService) List(ctx context.Context, auth funval.Auth, q ListQuery) (Listing[models.Service], ServiceTotals, error) {
	services, err := s.client.ListServices(ctx, auth)
	if err != nil {
		return Listing[models.Service]{}, ServiceTotals{}, err
	}
	return buildListing(services, q, s.pageSize, serviceSearchFields), serviceTotals(services), nil
}

func serviceTotals(services []models.Service) ServiceTotals {
	var totals ServiceTotals
	for _, svc := range services {
		totals.Reported += svc.AmountReported
		if svc.Status == models.StatusApproved && svc.AmountApproved != nil {
			totals.Approved += *svc.AmountApproved
		}
	}
	return totals
}

// Get loads one submission for the detail screen.
func (s *RecordService) Get(ctx context.Context, auth funval.Auth, id int) (*models.Service, error) {
	return s.client.GetService(ctx, auth, id)
}

// Submit validates the form and evidence file and posts the submission. The
// file type check runs before anything reaches the network.
func (s *RecordService) Submit(ctx context.Context, auth funval.Auth, form SubmitServiceForm, evidence *multipart.FileHeader) (FieldErrors, error) {
	fe := validateStruct(s.validator, form)
	if fe == nil {
		fe = FieldErrors{}
	}
	if evidence != nil {
		if msg := s.checkEvidence(evidence); msg != "" {
			fe["Evidence"] = msg
		}
	}
	if !fe.Valid() {
		return fe, nil
	}

	req := funval.CreateServiceRequest{
		AmountReported: form.AmountReported,
		Description:    form.Description,
		CategoryID:     form.CategoryID,
	}

	if evidence != nil {
		file, err := evidence.Open()
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open evidence upload")
		}
		defer file.Close()
		req.Evidence = &funval.EvidenceFile{Filename: evidence.Filename, Content: file}
	}

	return nil, s.client.CreateService(ctx, auth, req)
}

// Review validates the terminal decision against the loaded submission and
// sends the atomic PATCH. Out-of-range hours and missing comments never reach
// the backend, and a submission already reviewed is rejected outright.
func (s *RecordService) Review(ctx context.Context, auth funval.Auth, svc *models.Service, form ReviewForm) (FieldErrors, error) {
	if svc.Reviewed() {
		return nil, appErrors.ErrReviewClosed
	}

	fe := validateStruct(s.validator, form)
	if fe == nil {
		fe = FieldErrors{}
	}
	if form.Decision == DecisionApprove {
		if form.Hours <= 0 {
			fe["Hours"] = "approved hours must be a positive number"
		} else if form.Hours > svc.AmountReported {
			fe["Hours"] = fmt.Sprintf("approved hours cannot exceed the %g reported", svc.AmountReported)
		}
	}
	if !fe.Valid() {
		return fe, nil
	}

	req := funval.ReviewRequest{
		Comment: form.Comment,
		Status:  models.ReviewCodeReject,
	}
	if form.Decision == DecisionApprove {
		req.AmountApproved = form.Hours
		req.Status = models.ReviewCodeApprove
	}

	return nil, s.client.Review(ctx, auth, svc.ID, req)
}

// Evidence proxies the evidence download.
func (s *RecordService) Evidence(ctx context.Context, auth funval.Auth, id int) (*funval.Evidence, error) {
	return s.client.DownloadEvidence(ctx, auth, id)
}

// checkEvidence enforces the upload constraints, returning a field message on
// failure.
func (s *RecordService) checkEvidence(header *multipart.FileHeader) string {
	if s.uploads.MaxFileSizeBytes > 0 && header.Size > s.uploads.MaxFileSizeBytes {
		return fmt.Sprintf("file exceeds the %d MB limit", s.uploads.MaxFileSizeBytes/(1024*1024))
	}

	contentType := header.Header.Get("Content-Type")
	allowed := s.uploads.AllowedMIMEs
	if len(allowed) == 0 {
		allowed = []string{"application/pdf"}
	}
	for _, mime := range allowed {
		if strings.EqualFold(contentType, mime) {
			return ""
		}
	}
	// Some browsers omit the part content type; fall back to the extension.
	if contentType == "" && strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		return ""
	}
	return "only PDF files are allowed"
}

// EvidenceFilename is the suggested download name for a service's evidence.
func EvidenceFilename(id int) string {
	return fmt.Sprintf("evidencia_%d.pdf", id)
}
