package handlers

import (
	"context"
	"net/http"

	"campsite/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContentAPI is the slice of the booking API client the peripheral content
// endpoints need.
type ContentAPI interface {
	Articles(ctx context.Context) ([]models.Article, error)
	InvoicePDF(ctx context.Context, bookingID string) ([]byte, error)
}

// ContentHandler serves the peripheral pages: articles and invoice download.
type ContentHandler struct {
	API    ContentAPI
	Logger *zap.Logger
}

func NewContentHandler(api ContentAPI, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{API: api, Logger: logger}
}

// Articles handles GET /api/articles.
func (h *ContentHandler) Articles(c *gin.Context) {
	articles, err := h.API.Articles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// Invoice handles GET /api/reservations/:bookingID/invoice, proxying the PDF.
func (h *ContentHandler) Invoice(c *gin.Context) {
	bookingID := c.Param("bookingID")
	pdf, err := h.API.InvoicePDF(c.Request.Context(), bookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="invoice-`+bookingID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
