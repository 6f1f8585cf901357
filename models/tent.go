package models

// TentStatus is the per-tent availability reported by the booking API.
type TentStatus string

const (
	TentAvailable   TentStatus = "available"
	TentUnavailable TentStatus = "unavailable"
	TentMaintenance TentStatus = "maintenance"
)

// Tent is a bookable unit. WeekdayPrice and WeekendPrice are the advertised
// base prices; APIPrice is the authoritative price for the selected date range
// and stays nil until a price check resolves. Nil means "price unknown",
// which is not the same as a price of zero.
type Tent struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Images       []string   `json:"images,omitempty"`
	Category     string     `json:"category"`
	Capacity     int        `json:"capacity"`
	WeekdayPrice int        `json:"weekday_price"`
	WeekendPrice int        `json:"weekend_price"`
	APIPrice     *int       `json:"api_price,omitempty"`
	Status       TentStatus `json:"status,omitempty"`
}

// Category groups tents that share base pricing (e.g. Standard, VIP).
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Tents       []Tent `json:"tents"`
}
