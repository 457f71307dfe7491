package utils

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"shop_backoffice/internal/models"
)

// SendOrderStatusEmail tells the customer their order moved to a new status.
func (m *Mailer) SendOrderStatusEmail(ctx context.Context, cart models.CartInfo, to string) error {
	err := m.Send(ctx, to, StatusEmailSubject(cart.Status), StatusEmailHTML(cart))
	if err != nil {
		return err
	}
	log.Printf("📧 Status e-mail sent: %s → %s", cart.Status, to)
	return nil
}

func StatusEmailSubject(status string) string {
	switch status {
	case models.StatusDelivery:
		return "📦 Your order is on its way"
	case models.StatusCompleted:
		return "🎉 Your order has been delivered"
	default:
		return "📋 Your order has been updated"
	}
}

func statusMessage(status string) string {
	switch status {
	case models.StatusNewOrder:
		return "We have received your order and are preparing it."
	case models.StatusDelivery:
		return "Good news! Your order has left our warehouse and is on its way to you."
	case models.StatusCompleted:
		return "Your order has been delivered. Thank you for shopping with us!"
	default:
		return "The status of your order has changed."
	}
}

func statusColor(status string) string {
	switch status {
	case models.StatusNewOrder:
		return "#f59e0b" // orange
	case models.StatusDelivery:
		return "#3b82f6" // blue
	case models.StatusCompleted:
		return "#10b981" // green
	default:
		return "#6b7280"
	}
}

// StatusEmailHTML renders the notification body. Customer-provided text is escaped.
func StatusEmailHTML(cart models.CartInfo) string {
	var rows strings.Builder
	for _, d := range cart.CartDetails {
		fmt.Fprintf(&rows, `<tr><td style="padding:6px 0;">%s</td><td style="text-align:right;">%d × %.0f ₫</td></tr>`,
			html.EscapeString(d.ProductName), d.Quantity, d.Price)
	}

	shortID := cart.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Order update</title></head>
<body style="margin:0;padding:20px;font-family:Arial,sans-serif;background-color:#f5f5f5;">
  <div style="max-width:600px;margin:auto;background:#ffffff;border-radius:12px;padding:30px;">
    <h2 style="margin:0 0 10px 0;color:#333333;">Hello %s,</h2>
    <div style="display:inline-block;padding:10px 20px;background-color:%s;color:#ffffff;border-radius:25px;font-weight:600;">%s</div>
    <p style="color:#333333;font-size:16px;line-height:1.6;">%s</p>
    <p style="color:#666666;">Order <strong>#%s</strong> placed on %s</p>
    <table style="width:100%%;border-collapse:collapse;">%s</table>
    <p style="font-weight:600;text-align:right;">Total: %.0f ₫</p>
    <p style="color:#999999;font-size:12px;">This e-mail was sent automatically, please do not reply.</p>
  </div>
</body>
</html>`,
		html.EscapeString(cart.UserName), statusColor(cart.Status), html.EscapeString(cart.Status),
		statusMessage(cart.Status), html.EscapeString(shortID), html.EscapeString(cart.DisplayDate()),
		rows.String(), cart.TotalPrice)
}
