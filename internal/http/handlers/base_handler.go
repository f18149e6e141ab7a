// README: Base handler utilities (JSON helpers, domain error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"packpal/internal/geo"
	"packpal/internal/modules/matching"
	"packpal/internal/modules/parcel"
	"packpal/internal/modules/travel"
	"packpal/internal/modules/user"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// domainErrorStatus maps module sentinel errors to HTTP statuses.
func domainErrorStatus(err error) int {
	switch {
	case errors.Is(err, parcel.ErrIncompleteDraft),
		errors.Is(err, geo.ErrInvalidCoordinate):
		return http.StatusBadRequest
	case errors.Is(err, parcel.ErrNotFound),
		errors.Is(err, travel.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, matching.ErrAlreadyAccepted),
		errors.Is(err, travel.ErrInvalidState),
		errors.Is(err, travel.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError writes the mapped status. Anything unrecognised is a 500
// with a generic message so internals never leak.
func writeDomainError(c *gin.Context, err error) {
	status := domainErrorStatus(err)
	if status == http.StatusInternalServerError {
		writeError(c, status, "internal error")
		return
	}
	writeError(c, status, err.Error())
}
