package handler

import (
	"context"
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/assessment-records/errors"
	recordsDTO "github.com/johnquangdev/assessment-records/internal/adapter/dto/records"
	"github.com/johnquangdev/assessment-records/internal/adapter/presenter"
	"github.com/johnquangdev/assessment-records/internal/domain/entities"
	"github.com/johnquangdev/assessment-records/internal/infrastructure/http/middleware"
)

// RecordsService is the records use case as seen by the HTTP layer
type RecordsService interface {
	List(ctx context.Context, email string) ([]entities.Record, error)
	Refresh(ctx context.Context, email string) ([]entities.Record, error)
	Snapshot(ctx context.Context, email string) ([]entities.Record, error)
	Report(ctx context.Context, email, recordID string) (*entities.Record, *entities.ReportMetrics, error)
	VideoURL(ctx context.Context, email, recordID string) (string, error)
}

// Records handles record-related HTTP requests
type Records struct {
	service RecordsService
	logger  *zap.Logger
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(service RecordsService, logger *zap.Logger) *Records {
	return &Records{
		service: service,
		logger:  logger,
	}
}

// List handles GET /v1/records. The first view of a user fetches from the backend.
func (h *Records) List(c echo.Context) error {
	email := middleware.GetEmail(c)

	recs, err := h.service.List(c.Request().Context(), email)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, "", ""))
	}

	return HandleSuccess(h.logger, c, presenter.ToRecordListResponse(recs))
}

// Refresh handles POST /v1/records/refresh. A refresh overtaken by a newer one
// answers with whatever snapshot is current.
func (h *Records) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	email := middleware.GetEmail(c)

	recs, err := h.service.Refresh(ctx, email)
	if stdErrors.Is(err, entities.ErrRefreshSuperseded) {
		recs, err = h.service.Snapshot(ctx, email)
	}
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, "", ""))
	}

	return HandleSuccess(h.logger, c, presenter.ToRecordListResponse(recs))
}

// Report handles GET /v1/records/:id/report
func (h *Records) Report(c echo.Context) error {
	req, err := h.bindRecordPath(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	_, m, err := h.service.Report(c.Request().Context(), middleware.GetEmail(c), req.ID)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, req.ID, entities.RecordFieldReport))
	}

	return HandleSuccess(h.logger, c, presenter.ToReportResponse(req.ID, m))
}

// Video handles GET /v1/records/:id/video
func (h *Records) Video(c echo.Context) error {
	req, err := h.bindRecordPath(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	link, err := h.service.VideoURL(c.Request().Context(), middleware.GetEmail(c), req.ID)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, req.ID, entities.RecordFieldVideo))
	}

	return HandleSuccess(h.logger, c, presenter.ToVideoResponse(req.ID, link))
}

func (h *Records) bindRecordPath(c echo.Context) (*recordsDTO.RecordPathRequest, error) {
	var req recordsDTO.RecordPathRequest
	if err := c.Bind(&req); err != nil {
		return nil, errors.ErrInvalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return nil, errors.ErrInvalidArgument(err.Error())
	}
	return &req, nil
}
