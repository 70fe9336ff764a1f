package order

import "strconv"

// Placeholder stands in for anything the menu or price table cannot resolve.
// Unresolved values are a display concern, not an error: a row must keep its
// position even when the menu has moved on since the order was placed.
const Placeholder = "—"

// currencySuffix is appended to every formatted day price.
const currencySuffix = " тг"

// Catalog maps dish ids to display names.
type Catalog map[string]string

// NewCatalog scans all days of the weekly menu. The first name seen for an
// id wins, so resolving the same id twice always yields the same name.
func NewCatalog(menu []DayMenu) Catalog {
	c := make(Catalog)
	for _, dm := range menu {
		for _, d := range dm.Dishes {
			if d.ID == "" || d.Name == "" {
				continue
			}
			if _, ok := c[d.ID]; !ok {
				c[d.ID] = d.Name
			}
		}
	}
	return c
}

// Resolve returns the display name for a dish id, or Placeholder when the
// id is not on the menu.
func (c Catalog) Resolve(id string) string {
	if name, ok := c[id]; ok {
		return name
	}
	return Placeholder
}

// DayPrice formats the meal price for a day with the given dish count.
// Exactly two dishes selects the lower tier, anything else the upper one.
// An unset tier renders as the placeholder, still with the currency suffix.
func (t PriceTier) DayPrice(dishCount int) string {
	price := t[1]
	if dishCount == 2 {
		price = t[0]
	}
	if price == 0 {
		return Placeholder + currencySuffix
	}
	return strconv.Itoa(price) + currencySuffix
}

// Process resolves a raw order against the weekly menu and price tier. The
// day sequence is preserved: it determines table row order and date
// grouping downstream.
func Process(o Order, menu []DayMenu, tier PriceTier) Processed {
	catalog := NewCatalog(menu)

	days := make([]ProcessedDay, 0, len(o.Days))
	for _, d := range o.Days {
		names := make([]string, len(d.SelectedDishes))
		for i, id := range d.SelectedDishes {
			names[i] = catalog.Resolve(id)
		}
		days = append(days, ProcessedDay{
			Date:         d.Date,
			DeliveryTime: d.DeliveryTime,
			Dishes:       names,
			Quantity:     d.Quantity,
			Price:        tier.DayPrice(len(d.SelectedDishes)),
		})
	}

	return Processed{
		Customer:  o.Customer,
		Days:      days,
		Total:     o.Total,
		Timestamp: o.Timestamp,
	}
}
