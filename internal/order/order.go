// Package order holds the order and menu data shapes exchanged with the
// ordering UI, and the resolution step that turns a raw order into its
// notification-ready form.
package order

// Customer is the delivery contact block. It is copied verbatim into
// notifications; nothing here is interpreted.
type Customer struct {
	FullName string `json:"fullName"`
	Company  string `json:"company"`
	Office   string `json:"office"`
	Floor    string `json:"floor"`
	Phone    string `json:"phone"`
}

// Day is one delivery day as submitted by the ordering UI. SelectedDishes
// carries dish ids, not names.
type Day struct {
	Date           string   `json:"date"` // YYYY-MM-DD
	DeliveryTime   string   `json:"deliveryTime"`
	SelectedDishes []string `json:"selectedDishes"`
	Quantity       int      `json:"quantity"`
}

// Order is a confirmed order as received from the ordering flow.
type Order struct {
	Customer  Customer `json:"customer"`
	Days      []Day    `json:"orderDays"`
	Total     int      `json:"total"`
	Timestamp string   `json:"timestamp"` // RFC 3339
}

// Dish is a single menu position.
type Dish struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DayMenu is the menu for one weekday of the current week.
type DayMenu struct {
	Day    int    `json:"day"`
	Dishes []Dish `json:"dishes"`
}

// PriceTier selects a day's meal price by dish count: index 0 for two-dish
// days, index 1 for three or more.
type PriceTier [2]int

// ProcessedDay mirrors Day with dish ids resolved to display names and the
// day price formatted for display. The dish slice keeps the length and
// order of the originating id slice.
type ProcessedDay struct {
	Date         string
	DeliveryTime string
	Dishes       []string
	Quantity     int
	Price        string
}

// Processed is the notification-ready form of an order. It lives for one
// render+dispatch cycle and is never stored.
type Processed struct {
	Customer  Customer
	Days      []ProcessedDay
	Total     int
	Timestamp string
}

// QuantityTotal sums the ordered meal count over all days. Both notification
// renderers report this figure and must agree on it, so it is computed in
// one place.
func (p Processed) QuantityTotal() int {
	total := 0
	for _, d := range p.Days {
		total += d.Quantity
	}
	return total
}
