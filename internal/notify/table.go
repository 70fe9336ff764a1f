package notify

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"lunchbot/internal/order"
)

// Column order: delivery date, dishes, quantity, price.
var tableHeader = [2][4]string{
	{"Дата", "Блюда", "Кол-во", "Сумма"},
	{"доставки", "", "", ""},
}

// headerMinWidths are the widths of the widest header cell per column
// ("доставки", "Блюда", "Кол-во", "Сумма").
var headerMinWidths = [4]int{8, 5, 6, 5}

// RenderTable renders the order days as a bordered monospace table. Each day
// contributes one row per dish; only the first dish row of a day carries the
// date, quantity and price, which reads as one visually merged row per day.
// A separator rule follows every day. Empty input renders as a lone newline
// so callers embedding the table never emit a bare border skeleton.
//
// Widths are counted in runes: dish names are Cyrillic and byte lengths
// would misalign every column.
func RenderTable(days []order.ProcessedDay) string {
	if len(days) == 0 {
		return "\n"
	}

	widths := headerMinWidths
	for _, d := range days {
		if w := utf8.RuneCountInString(d.Date); w > widths[0] {
			widths[0] = w
		}
		for _, dish := range d.Dishes {
			if w := utf8.RuneCountInString(dish); w > widths[1] {
				widths[1] = w
			}
		}
		if w := len(strconv.Itoa(d.Quantity)); w > widths[2] {
			widths[2] = w
		}
		if w := utf8.RuneCountInString(d.Price); w > widths[3] {
			widths[3] = w
		}
	}

	var rule strings.Builder
	for _, w := range widths {
		rule.WriteString("+")
		rule.WriteString(strings.Repeat("-", w+2))
	}
	rule.WriteString("+\n")
	headerRule := rule.String()

	innerWidth := 0
	for _, w := range widths {
		innerWidth += w + 3
	}
	// Body rows have no inner column borders, so the day separator is one
	// uninterrupted run of dashes.
	bodyRule := "+" + strings.Repeat("-", innerWidth-1) + "+\n"

	var b strings.Builder
	b.WriteString(headerRule)
	for _, row := range tableHeader {
		b.WriteString("|")
		for col, text := range row {
			n := utf8.RuneCountInString(text)
			left := (widths[col]-n)/2 + 1
			right := widths[col] - left - n + 2
			b.WriteString(strings.Repeat(" ", left))
			b.WriteString(text)
			b.WriteString(strings.Repeat(" ", right))
			b.WriteString("|")
		}
		b.WriteString("\n")
	}
	b.WriteString(headerRule)

	for _, d := range days {
		for i, dish := range d.Dishes {
			date, quantity, price := "", "", ""
			if i == 0 {
				date = d.Date
				quantity = strconv.Itoa(d.Quantity)
				price = d.Price
			}
			b.WriteString("| ")
			b.WriteString(date)
			b.WriteString(strings.Repeat(" ", widths[0]-utf8.RuneCountInString(date)+1))
			b.WriteString("  ")
			b.WriteString(dish)
			b.WriteString(strings.Repeat(" ", widths[1]-utf8.RuneCountInString(dish)+1))
			b.WriteString("  ")
			b.WriteString(strings.Repeat(" ", widths[2]-len(quantity)))
			b.WriteString(quantity)
			b.WriteString(" ")
			b.WriteString("  ")
			b.WriteString(strings.Repeat(" ", widths[3]-utf8.RuneCountInString(price)))
			b.WriteString(price)
			b.WriteString(" |\n")
		}
		b.WriteString(bodyRule)
	}

	return b.String()
}
