package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/assessment-records/errors"
	"github.com/johnquangdev/assessment-records/internal/domain/entities"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			log := logger.Warn
			if appErr.HTTPCode >= http.StatusInternalServerError {
				log = logger.Error
			}
			log("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// toAppError maps domain errors from the records use case onto API errors.
// field names the record field a pending error refers to.
func toAppError(err error, recordID, field string) error {
	switch {
	case stdErrors.Is(err, entities.ErrMissingIdentity):
		return errors.ErrUnauthenticated()
	case stdErrors.Is(err, entities.ErrRecordNotFound):
		return errors.ErrRecordNotFound(recordID)
	case stdErrors.Is(err, entities.ErrRecordPending):
		return errors.ErrRecordPending(recordID, field)
	case stdErrors.Is(err, entities.ErrDecode):
		return errors.ErrReportDecodeFailed(recordID, err)
	case stdErrors.Is(err, entities.ErrRefreshSuperseded):
		return errors.ErrRefreshSuperseded()
	case stdErrors.Is(err, entities.ErrStorage):
		return errors.ErrStorageFailed("presign", err).WithDetail("record_id", recordID)
	case stdErrors.Is(err, entities.ErrSnapshotUnavailable):
		return errors.ErrCacheFailed("snapshot", err)
	case stdErrors.Is(err, entities.ErrNetwork), stdErrors.Is(err, entities.ErrMalformedPayload):
		return errors.ErrDownloadFailed(recordID, err)
	default:
		return errors.ErrInternal(err)
	}
}
