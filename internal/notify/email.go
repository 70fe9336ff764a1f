package notify

import (
	"strconv"
	"strings"
	"time"

	"lunchbot/internal/order"
)

// RenderEmail builds the self-contained HTML mail body for a new order.
// Styling is inline only; mail clients strip external stylesheets. Every
// user-controlled value goes through EscapeHTML, static markup does not.
//
// Consecutive days sharing one delivery date are grouped into a single
// <tbody> with a doubled top border, so a date spanning several rows reads
// as one block.
func RenderEmail(id int64, o order.Processed, now time.Time) string {
	rushLine := ""
	if IsRush(o.Days, now) {
		rushLine = `<p style="margin:0 0 0.2em 0"><b>[СРОЧНО]</b></p>`
	}

	var rows strings.Builder
	lastDate := ""
	openGroup := false
	for _, day := range o.Days {
		if !openGroup || day.Date != lastDate {
			if openGroup {
				rows.WriteString("</tbody>")
			}
			rows.WriteString(`<tbody style="border-top:4px double">`)
			openGroup = true
			lastDate = day.Date
		}
		rows.WriteString(`<tr>`)
		rows.WriteString(`<td style="padding:0.2em 0.4em;border:1px solid;text-align:center">` + EscapeHTML(day.Date) + `</td>`)
		rows.WriteString(`<td style="padding:0.2em 0.4em;border:1px solid">` + EscapeHTML(strings.Join(day.Dishes, ", ")) + `</td>`)
		rows.WriteString(`<td style="padding:0.2em 0.4em;border:1px solid;text-align:right">` + strconv.Itoa(day.Quantity) + `</td>`)
		rows.WriteString(`<td style="padding:0.2em 0.4em;border:1px solid;text-align:right">` + EscapeHTML(day.Price) + `</td>`)
		rows.WriteString(`</tr>`)
	}
	if openGroup {
		rows.WriteString("</tbody>")
	}

	orderDate, _, _ := strings.Cut(o.Timestamp, "T")

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head></head>
<body style="font-family:Arial,sans-serif;font-size:12pt">
  <h1 style="font-size:1.6em;font-weight:bolder;margin:0 0 1em 0">Новый заказ</h1>
  <div style="margin:0 0 1em 0">
    <p><b>Номер заказа</b> ` + strconv.FormatInt(id, 10) + `</p>
    <p><b>Дата оформления:</b> ` + EscapeHTML(orderDate) + `</p>
    ` + rushLine + `
  </div>
  <div style="margin:0 0 1em 0">
    <p><b>Данные клиента</b></p>
    <ul>
      <li><b>Имя:</b> ` + EscapeHTML(o.Customer.FullName) + `</li>
      <li><b>Компания:</b> ` + EscapeHTML(o.Customer.Company) + `</li>
      <li><b>Офис:</b> ` + EscapeHTML(o.Customer.Office) + `</li>
      <li><b>Этаж:</b> ` + EscapeHTML(o.Customer.Floor) + `</li>
      <li><b>Телефон:</b> ` + EscapeHTML(o.Customer.Phone) + `</li>
    </ul>
  </div>
  <div style="margin:0 0 1em 0">
    <p><b>Состав заказа</b></p>
    <table style="border-collapse:collapse">
      <thead>
        <tr>
          <th style="padding:0.4em;border:1px solid">Дата доставки</th>
          <th style="padding:0.4em;border:1px solid">Блюда</th>
          <th style="padding:0.4em;border:1px solid">Кол-во</th>
          <th style="padding:0.4em;border:1px solid">Сумма</th>
        </tr>
      </thead>
      ` + rows.String() + `
    </table>
  </div>
  <div>
    <p><b>Итоги по заказу</b></p>
    <ul>
      <li><b>Обедов всего:</b> ` + strconv.Itoa(o.QuantityTotal()) + `</li>
      <li><b>Итоговая сумма:</b> ` + strconv.Itoa(o.Total) + ` тнг</li>
    </ul>
  </div>
</body>
</html>`)
	return b.String()
}
