package email

import (
	"fmt"
	"strings"

	"street-eats/internal/models"
)

// BuildOrderReceipt renders the subject, plain-text, and HTML bodies for an
// order receipt email.
func BuildOrderReceipt(order *models.Order) (subject, plainText, html string) {
	subject = fmt.Sprintf("Order #%d (%s)", order.ID, order.Status)

	var text strings.Builder
	fmt.Fprintf(&text, "Order #%d\n", order.ID)
	fmt.Fprintf(&text, "Customer: %s (%s)\n", order.CustomerName, order.CustomerPhone)
	fmt.Fprintf(&text, "Type: %s, payment: %s\n\n", order.Type, order.PaymentMethod)
	for _, item := range order.Items {
		fmt.Fprintf(&text, "  %s x%d - %.2f\n", item.ProductName, item.Qty, item.Total)
	}
	fmt.Fprintf(&text, "\nItems total: %.2f\n", order.ItemsTotal)
	if order.DeliveryPrice > 0 {
		fmt.Fprintf(&text, "Delivery: %.2f\n", order.DeliveryPrice)
	}
	fmt.Fprintf(&text, "Total: %.2f\n", order.TotalPrice)
	if order.Comment != "" {
		fmt.Fprintf(&text, "\nComment: %s\n", order.Comment)
	}
	plainText = text.String()

	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>%.2f</td></tr>", item.ProductName, item.Qty, item.Total)
	}
	html = fmt.Sprintf(`
<h2>Order #%d</h2>
<p>%s (%s), %s, %s</p>
<table border="1" cellpadding="4">
  <tr><th>Item</th><th>Qty</th><th>Total</th></tr>
  %s
</table>
<p><b>Total: %.2f</b> (items %.2f, delivery %.2f)</p>`,
		order.ID, order.CustomerName, order.CustomerPhone, order.Type, order.PaymentMethod,
		rows.String(), order.TotalPrice, order.ItemsTotal, order.DeliveryPrice)

	return subject, plainText, html
}
