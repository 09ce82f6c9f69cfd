package controllers

import (
	"errors"
	"net/http"

	"restropos-backend/models"
	"restropos-backend/services"
	"restropos-backend/store"
	"restropos-backend/utils"

	"github.com/gin-gonic/gin"
)

// statusForError maps the domain error taxonomy onto HTTP codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrIllegalTransition),
		errors.Is(err, store.ErrAlreadyCheckedIn),
		errors.Is(err, store.ErrNotCheckedIn):
		return http.StatusConflict
	case errors.Is(err, services.ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	utils.RespondWithError(c, statusForError(err), err.Error())
}
