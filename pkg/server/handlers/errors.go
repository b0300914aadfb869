package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/semagraph/pkg/server/dto"
	"github.com/soundprediction/semagraph/pkg/types"
)

// writeError maps a domain error to its HTTP status and writes the JSON
// error body.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"

	var provErr *types.ProviderError
	switch {
	case errors.Is(err, types.ErrNotFound):
		status = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, types.ErrDuplicateID):
		status = http.StatusConflict
		code = "duplicate_id"
	case errors.Is(err, types.ErrDanglingReference):
		status = http.StatusUnprocessableEntity
		code = "dangling_reference"
	case errors.As(err, &provErr):
		status = http.StatusBadGateway
		code = "embedding_provider_error"
	case errors.Is(err, types.ErrEmptyID),
		errors.Is(err, types.ErrEmptySource),
		errors.Is(err, types.ErrEmptyTarget),
		errors.Is(err, types.ErrEmptyQuery):
		status = http.StatusBadRequest
		code = "invalid_request"
	}

	c.JSON(status, dto.ErrorResponse{Error: code, Message: err.Error(), Code: status})
}

// writeBadRequest writes a 400 with the given message.
func writeBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "invalid_request",
		Message: message,
		Code:    http.StatusBadRequest,
	})
}
