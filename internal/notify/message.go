package notify

import (
	"strconv"
	"strings"
	"time"

	"lunchbot/internal/order"
)

// RenderMessage builds the MarkdownV2 chat message for a new order. The
// order table goes inside a fenced code block: monospace semantics keep the
// border characters literal, so the block contents are NOT escaped — only
// the metadata around it is.
func RenderMessage(id int64, o order.Processed, now time.Time) string {
	rushLine := ""
	if IsRush(o.Days, now) {
		rushLine = "🚨 *\\[СРОЧНО\\]*\n"
	}

	table := RenderTable(o.Days)
	orderDate, _, _ := strings.Cut(o.Timestamp, "T")

	var b strings.Builder
	b.WriteString("🛒 *Новый заказ*\n")
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	b.WriteString("*Номер заказа* " + EscapeMarkdown(strconv.FormatInt(id, 10)) + "\n")
	b.WriteString("*Дата оформления:* " + EscapeMarkdown(orderDate) + "\n")
	b.WriteString(rushLine)
	b.WriteString("\n🧑 *Данные клиента*\n")
	b.WriteString(" • *Имя:* " + EscapeMarkdown(o.Customer.FullName) + "\n")
	b.WriteString(" • *Компания:* " + EscapeMarkdown(o.Customer.Company) + "\n")
	b.WriteString(" • *Офис:* " + EscapeMarkdown(o.Customer.Office) + "\n")
	b.WriteString(" • *Этаж:* " + EscapeMarkdown(o.Customer.Floor) + "\n")
	b.WriteString(" • *Телефон:* " + EscapeMarkdown(o.Customer.Phone) + "\n")
	b.WriteString("\n🍲 *Состав заказа*\n")
	b.WriteString("```\n" + table + "```\n")
	b.WriteString("\n🧾 *Итоги по заказу*\n")
	b.WriteString(" • *Обедов всего:* " + EscapeMarkdown(strconv.Itoa(o.QuantityTotal())) + "\n")
	b.WriteString(" • *Итоговая сумма:* " + EscapeMarkdown(strconv.Itoa(o.Total)) + " тнг\n")
	return b.String()
}
