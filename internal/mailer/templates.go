package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type OrderConfirmationData struct {
	ShopName      string
	FullName      string
	OrderID       string
	TotalAmount   float64
	PaymentMethod string
	OrderDate     string
	Year          int
}

// RenderOrderConfirmation builds the HTML body for the customer
// confirmation mail of a freshly placed order.
func RenderOrderConfirmation(shopName, fullName, orderID string, totalAmount float64, paymentMethod string, placedAt time.Time) (string, error) {
	return render("order_confirmation.html", OrderConfirmationData{
		ShopName:      shopName,
		FullName:      fullName,
		OrderID:       orderID,
		TotalAmount:   totalAmount,
		PaymentMethod: paymentMethod,
		OrderDate:     placedAt.Format("02 Jan 2006 15:04 MST"),
		Year:          placedAt.Year(),
	})
}

type ContactNotificationData struct {
	ShopName string
	Name     string
	Email    string
	Message  string
	Time     string
	Year     int
}

// RenderContactNotification builds the HTML body for the admin
// notification of a new contact-form submission.
func RenderContactNotification(shopName, name, email, message string, receivedAt time.Time) (string, error) {
	return render("contact_notification.html", ContactNotificationData{
		ShopName: shopName,
		Name:     name,
		Email:    email,
		Message:  message,
		Time:     receivedAt.Format("02 Jan 2006 15:04 MST"),
		Year:     receivedAt.Year(),
	})
}

type ContactReplyData struct {
	ShopName string
	Message  string
	Time     string
	Year     int
}

// RenderContactReply builds the HTML body for an admin reply to a
// customer.
func RenderContactReply(shopName, message string, sentAt time.Time) (string, error) {
	return render("contact_reply.html", ContactReplyData{
		ShopName: shopName,
		Message:  message,
		Time:     sentAt.Format("02 Jan 2006 15:04 MST"),
		Year:     sentAt.Year(),
	})
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
