package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Procyon/internal/dto"
	"github.com/lshigami/Procyon/internal/service"
)

// ParseID reads a positive integer path parameter.
func ParseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

// RespondError maps service errors onto the HTTP error taxonomy. Timing
// denials return the gate's decision as a machine-readable 403 body.
func RespondError(c *gin.Context, err error) {
	var denied *service.AccessDeniedError
	switch {
	case errors.As(err, &denied):
		c.JSON(http.StatusForbidden, accessDeniedBody(denied))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Resource not found"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid credentials"})
	case errors.Is(err, service.ErrStudentBlocked):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "Account blocked"})
	case errors.Is(err, service.ErrAlreadyCompleted):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "Exam already completed"})
	case errors.Is(err, service.ErrExamLocked):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "Exam can no longer be edited"})
	case errors.Is(err, service.ErrExamInactive):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "Exam is not active"})
	case errors.Is(err, service.ErrAttemptNotStarted):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "Exam attempt has not been started"})
	case errors.Is(err, service.ErrDuplicateTitle):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
	}
}

func accessDeniedBody(denied *service.AccessDeniedError) dto.AccessCheckDTO {
	d := denied.Decision
	return dto.AccessCheckDTO{
		State:            string(d.State),
		Allowed:          false,
		Reason:           d.Reason,
		StartTime:        d.StartTime,
		AvailabilityEnd:  d.AvailabilityEnd,
		MinutesUntilOpen: d.MinutesUntilOpen,
	}
}
