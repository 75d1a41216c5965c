package email

import (
	"testing"

	"street-eats/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildOrderReceipt(t *testing.T) {
	t.Parallel()

	order := &models.Order{
		ID:            42,
		Status:        models.OrderStatusNew,
		Type:          "delivery",
		PaymentMethod: "cash",
		CustomerName:  "Ada",
		CustomerPhone: "+995555123456",
		ItemsTotal:    600,
		DeliveryPrice: 150,
		TotalPrice:    750,
		Items: []models.OrderItem{
			{ProductName: "Shawarma", Qty: 2, Price: 300, Total: 600},
		},
	}

	subject, plainText, html := BuildOrderReceipt(order)

	assert.Equal(t, "Order #42 (new)", subject)
	assert.Contains(t, plainText, "Shawarma x2 - 600.00")
	assert.Contains(t, plainText, "Total: 750.00")
	assert.Contains(t, html, "<td>Shawarma</td>")
	assert.Contains(t, html, "Ada (+995555123456), delivery, cash")

	// Receipts must stay plain ASCII so every mail client renders them
	// the same way.
	for _, r := range subject + plainText + html {
		assert.Less(t, r, rune(128))
	}
}
