package handlers

import (
	"errors"
	"net/http"

	"campsite/bookingapi"
	"campsite/services"
	"campsite/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps flow errors onto HTTP answers: validation failures are
// the caller's fault, API errors carry the upstream's status and description,
// anything else is opaque.
func respondError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		utils.JSONError(c, http.StatusBadRequest, vErr.Message, "")
		return
	}

	var apiErr *bookingapi.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		utils.JSONError(c, status, apiErr.Description, apiErr.Code)
		return
	}

	utils.JSONError(c, http.StatusInternalServerError,
		"Something went wrong. Please try again later.", err.Error())
}
