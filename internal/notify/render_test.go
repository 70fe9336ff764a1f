package notify

import (
	"strings"
	"testing"
	"time"

	"lunchbot/internal/order"
)

func sampleOrder() order.Processed {
	return order.Processed{
		Customer: order.Customer{
			FullName: "Иван <Иванов>",
			Company:  "Рога & Копыта",
			Office:   "412",
			Floor:    "4",
			Phone:    "+7 777 123-45-67",
		},
		Days: []order.ProcessedDay{
			{Date: "2025-09-03", Dishes: []string{"Борщ", "Плов"}, Quantity: 1, Price: "2690 тг"},
			{Date: "2025-09-04", Dishes: []string{"Лагман", "Манты", "Салат"}, Quantity: 2, Price: "3290 тг"},
		},
		Total:     9270,
		Timestamp: "2025-09-01T10:30:00Z",
	}
}

var quietDay = time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)

func TestRenderEmailEscapesCustomerData(t *testing.T) {
	html := RenderEmail(42, sampleOrder(), quietDay)
	if !strings.Contains(html, "Иван &lt;Иванов&gt;") {
		t.Fatal("customer name not HTML-escaped")
	}
	if !strings.Contains(html, "Рога &amp; Копыта") {
		t.Fatal("company not HTML-escaped")
	}
	if strings.Contains(html, "Иван <Иванов>") {
		t.Fatal("raw customer name leaked into the document")
	}
}

func TestRenderEmailMetadata(t *testing.T) {
	html := RenderEmail(42, sampleOrder(), quietDay)
	if !strings.Contains(html, "<b>Номер заказа</b> 42") {
		t.Fatal("order id missing")
	}
	// Date portion of the timestamp only.
	if !strings.Contains(html, "2025-09-01") || strings.Contains(html, "10:30") {
		t.Fatal("order date must be the date portion of the timestamp")
	}
	if !strings.Contains(html, "<b>Обедов всего:</b> 3") {
		t.Fatal("quantity total missing or wrong")
	}
	if !strings.Contains(html, "<b>Итоговая сумма:</b> 9270 тнг") {
		t.Fatal("grand total missing")
	}
}

func TestRenderEmailRushBanner(t *testing.T) {
	o := sampleOrder()
	rushNow := time.Date(2025, 9, 3, 5, 0, 0, 0, time.UTC)

	if html := RenderEmail(42, o, quietDay); strings.Contains(html, "[СРОЧНО]") {
		t.Fatal("rush banner rendered for a non-rush order")
	}
	if html := RenderEmail(42, o, rushNow); !strings.Contains(html, "[СРОЧНО]") {
		t.Fatal("rush banner missing for a same-day order")
	}
}

func TestRenderEmailGroupsByDate(t *testing.T) {
	o := sampleOrder()
	// Two consecutive days on the same date share one tbody group.
	o.Days = []order.ProcessedDay{
		{Date: "2025-09-03", Dishes: []string{"Борщ"}, Quantity: 1, Price: "2690 тг"},
		{Date: "2025-09-03", Dishes: []string{"Плов"}, Quantity: 1, Price: "2690 тг"},
		{Date: "2025-09-04", Dishes: []string{"Манты"}, Quantity: 2, Price: "2690 тг"},
	}
	html := RenderEmail(42, o, quietDay)
	if got := strings.Count(html, "<tbody"); got != 2 {
		t.Fatalf("tbody groups = %d, want 2", got)
	}
	if got := strings.Count(html, "</tbody>"); got != 2 {
		t.Fatalf("tbody closers = %d, want 2", got)
	}
	if got := strings.Count(html, "<tr>"); got != 3+1 { // 3 data rows + header row
		t.Fatalf("table rows = %d, want 4", got)
	}
}

func TestRenderEmailEmptyOrder(t *testing.T) {
	o := sampleOrder()
	o.Days = nil
	html := RenderEmail(42, o, quietDay)
	if strings.Contains(html, "<tbody") {
		t.Fatal("empty order must not emit tbody groups")
	}
	if !strings.Contains(html, "<b>Обедов всего:</b> 0") {
		t.Fatal("empty order total must be 0")
	}
}

func TestRenderMessageEscapesMetadata(t *testing.T) {
	msg := RenderMessage(42, sampleOrder(), quietDay)
	if !strings.Contains(msg, `\+7 777 123\-45\-67`) {
		t.Fatal("phone not Markdown-escaped")
	}
	if !strings.Contains(msg, "*Номер заказа* 42") {
		t.Fatal("order id missing")
	}
	if !strings.Contains(msg, `2025\-09\-01`) {
		t.Fatal("order date must be escaped date portion of the timestamp")
	}
}

func TestRenderMessageTableBlockNotEscaped(t *testing.T) {
	msg := RenderMessage(42, sampleOrder(), quietDay)
	start := strings.Index(msg, "```")
	end := strings.LastIndex(msg, "```")
	if start < 0 || end <= start {
		t.Fatalf("table must sit in a fenced block:\n%s", msg)
	}
	block := msg[start+3 : end]
	if strings.Contains(block, `\-`) || strings.Contains(block, `\+`) {
		t.Fatal("preformatted block contents must not be escaped")
	}
	if !strings.Contains(block, "2025-09-03") {
		t.Fatal("table rows missing from the fenced block")
	}
}

func TestRenderMessageRushBanner(t *testing.T) {
	o := sampleOrder()
	rushNow := time.Date(2025, 9, 3, 5, 0, 0, 0, time.UTC)
	if msg := RenderMessage(42, o, quietDay); strings.Contains(msg, "СРОЧНО") {
		t.Fatal("rush banner rendered for a non-rush order")
	}
	msg := RenderMessage(42, o, rushNow)
	if !strings.Contains(msg, `🚨 *\[СРОЧНО\]*`) {
		t.Fatalf("rush banner missing or malformed:\n%s", msg)
	}
}

func TestRenderersAgreeOnQuantityTotal(t *testing.T) {
	o := sampleOrder()
	html := RenderEmail(42, o, quietDay)
	msg := RenderMessage(42, o, quietDay)
	if !strings.Contains(html, "<b>Обедов всего:</b> 3") {
		t.Fatal("email quantity total wrong")
	}
	if !strings.Contains(msg, "*Обедов всего:* 3") {
		t.Fatal("message quantity total wrong")
	}
}
