package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/logger"
	"expensetracker/internal/middleware"
	"expensetracker/internal/pagination"
)

const dateOnlyLayout = "2006-01-02"

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	id, ok := userID.(uint)
	if !ok || id == 0 {
		return 0, apperrors.ErrUnauthorized
	}
	return id, nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
//
//nolint:unparam // every route names its id "id" today
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// bindPageRequest reads pageNumber and pageSize. Explicit values below 1 are
// rejected; omitted values get defaults and pageSize is clamped.
func bindPageRequest(c *gin.Context) (pagination.PageRequest, error) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		return page, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	if _, ok := c.GetQuery("pageNumber"); ok && page.PageNumber < 1 {
		return page, apperrors.WithMessage(apperrors.ErrInvalidInput, "pageNumber must be at least 1")
	}
	if _, ok := c.GetQuery("pageSize"); ok && page.PageSize < 1 {
		return page, apperrors.WithMessage(apperrors.ErrInvalidInput, "pageSize must be at least 1")
	}
	page.Defaults()
	return page, nil
}

// parseFlexibleTime accepts RFC3339 timestamps or bare YYYY-MM-DD dates.
// The second return reports whether the value was date-only.
func parseFlexibleTime(v string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t.UTC(), false, nil
	}
	t, err := time.Parse(dateOnlyLayout, v)
	if err != nil {
		return time.Time{}, false, errors.New("invalid date format, use RFC3339 or YYYY-MM-DD")
	}
	return t, true, nil
}

// parseDateRange reads startDate and endDate query parameters. Missing bounds
// fall back to the calendar month containing now (UTC). A date-only endDate
// covers the whole day. Database timestamps keep microseconds, so the last
// instant of a day is 23:59:59.999999.
func parseDateRange(c *gin.Context, now time.Time) (time.Time, time.Time, error) {
	now = now.UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := monthStart
	end := monthStart.AddDate(0, 1, 0).Add(-time.Microsecond)

	if v := c.Query("startDate"); v != "" {
		t, _, err := parseFlexibleTime(v)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid startDate: "+err.Error())
		}
		start = t
	}

	if v := c.Query("endDate"); v != "" {
		t, dateOnly, err := parseFlexibleTime(v)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid endDate: "+err.Error())
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1).Add(-time.Microsecond)
		}
		end = t
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Start date must be before end date")
	}
	return start, end, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{
		Error: ErrorDetail{Code: apperrors.ErrInternalServer.Code, Message: apperrors.ErrInternalServer.Message},
	})
}
