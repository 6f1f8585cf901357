package bookingapi

import (
	"context"
	"net/http"

	"campsite/models"
)

// Articles lists the published marketing articles.
func (c *Client) Articles(ctx context.Context) ([]models.Article, error) {
	var out struct {
		Articles []models.Article `json:"articles"`
	}
	if err := c.do(ctx, http.MethodGet, "/articles", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Articles, nil
}

// InvoicePDF downloads the invoice document for a booking.
func (c *Client) InvoicePDF(ctx context.Context, bookingID string) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, "/reservations/"+bookingID+"/invoice", nil, nil)
}
