package models

// TentPrice is one line of a price quote.
type TentPrice struct {
	ID       string `json:"id"`
	Price    int    `json:"price"`
	Category string `json:"category"`
	Capacity int    `json:"capacity"`
}

// PriceQuote is the booking API's total for a tent set over a date range.
type PriceQuote struct {
	TotalPrice int         `json:"total_price"`
	Tents      []TentPrice `json:"tents"`
}
