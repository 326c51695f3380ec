// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fastr/fastr-backend/internal/config"
	"github.com/fastr/fastr-backend/internal/events"
	"github.com/fastr/fastr-backend/internal/models"
)

// NotificationService turns order events into emails. It is wired behind
// the async dispatcher, so a failed or slow send never affects the
// request that produced the event.
type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

// Handle routes a dispatched event to the matching email. Implements
// events.Handler.
func (s *NotificationService) Handle(event events.Event) error {
	if !s.config.Email.OrderNotifications {
		return nil
	}

	switch e := event.(type) {
	case events.OrderCreated:
		return s.SendOrderCreatedEmail(e.OrderID)
	case events.FulfillmentCreated:
		return s.SendOrderReceivedEmail(e.FulfillmentID)
	case events.FulfillmentStatusChanged:
		return s.SendStatusChangedEmail(e.FulfillmentID, e.NewStatus)
	default:
		return nil
	}
}

// SendOrderCreatedEmail confirms a new order to the buyer who placed it.
func (s *NotificationService) SendOrderCreatedEmail(orderID uuid.UUID) error {
	var order models.Order
	err := s.db.Preload("User").Preload("Lines.Product").First(&order, orderID).Error
	if err != nil {
		return fmt.Errorf("failed to load order %s: %w", orderID, err)
	}

	data := map[string]interface{}{
		"BuyerName": order.User.ShortName(),
		"OrderID":   order.ID,
		"Lines":     order.Lines,
		"Total":     order.Total().StringFixed(2),
		"OrderURL":  fmt.Sprintf("%s/orders/%s", s.config.Frontend.BaseURL, order.ID),
	}

	subject := fmt.Sprintf("Your order %s has been placed", order.ID)
	tmpl := s.getEmailTemplate("order_created")
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(order.User.Email, subject, body)
}

// SendOrderReceivedEmail tells the shop owner that a new fulfillment is
// waiting for them. Only the lines belonging to their shop are included.
func (s *NotificationService) SendOrderReceivedEmail(fulfillmentID uuid.UUID) error {
	var fulfillment models.Fulfillment
	err := s.db.Preload("Shop.User").First(&fulfillment, fulfillmentID).Error
	if err != nil {
		return fmt.Errorf("failed to load fulfillment %s: %w", fulfillmentID, err)
	}

	var lines []models.OrderLine
	err = s.db.
		Select("order_lines.*").
		Joins("JOIN products ON products.id = order_lines.product_id").
		Where("order_lines.order_id = ? AND products.shop_id = ?", fulfillment.OrderID, fulfillment.ShopID).
		Preload("Product").
		Find(&lines).Error
	if err != nil {
		return fmt.Errorf("failed to load order lines: %w", err)
	}

	data := map[string]interface{}{
		"SellerName":     fulfillment.Shop.User.ShortName(),
		"ShopName":       fulfillment.Shop.Name,
		"FulfillmentID":  fulfillment.ID,
		"Lines":          lines,
		"FulfillmentURL": fmt.Sprintf("%s/shop/fulfillments/%s", s.config.Frontend.BaseURL, fulfillment.ID),
	}

	subject := fmt.Sprintf("New order for %s", fulfillment.Shop.Name)
	tmpl := s.getEmailTemplate("order_received")
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(fulfillment.Shop.User.Email, subject, body)
}

// SendStatusChangedEmail tells the buyer their fulfillment moved to a new
// status.
func (s *NotificationService) SendStatusChangedEmail(fulfillmentID uuid.UUID, status models.FulfillmentStatus) error {
	var fulfillment models.Fulfillment
	err := s.db.Preload("Shop").Preload("Order.User").First(&fulfillment, fulfillmentID).Error
	if err != nil {
		return fmt.Errorf("failed to load fulfillment %s: %w", fulfillmentID, err)
	}

	data := map[string]interface{}{
		"BuyerName": fulfillment.Order.User.ShortName(),
		"ShopName":  fulfillment.Shop.Name,
		"Status":    status.String(),
		"OrderURL":  fmt.Sprintf("%s/orders/%s", s.config.Frontend.BaseURL, fulfillment.OrderID),
	}

	subject := fmt.Sprintf("Your order from %s is now %s", fulfillment.Shop.Name, status)
	tmpl := s.getEmailTemplate("status_changed")
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(fulfillment.Order.User.Email, subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email skipped: SMTP not configured")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"order_created": {
			Subject: "Order Placed",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thank you, {{.BuyerName}}!</h2>
	<p>Your order has been placed.</p>
	<ul>
	{{range .Lines}}
		<li>{{.Product.Name}} &times; {{.Quantity}} &mdash; {{.SoldPrice.StringFixed 2}}</li>
	{{end}}
	</ul>
	<p>Total: {{.Total}}</p>
	<a href="{{.OrderURL}}">View Order</a>
	<p>Best regards,<br>FASTR Team</p>
</body>
</html>`,
		},
		"order_received": {
			Subject: "New Order",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.SellerName}},</h2>
	<p>{{.ShopName}} has received a new order.</p>
	<ul>
	{{range .Lines}}
		<li>{{.Product.Name}} &times; {{.Quantity}}</li>
	{{end}}
	</ul>
	<a href="{{.FulfillmentURL}}">View Fulfillment</a>
	<p>Best regards,<br>FASTR Team</p>
</body>
</html>`,
		},
		"status_changed": {
			Subject: "Order Status Update",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.BuyerName}},</h2>
	<p>Your order from {{.ShopName}} is now <strong>{{.Status}}</strong>.</p>
	<a href="{{.OrderURL}}">View Order</a>
	<p>Best regards,<br>FASTR Team</p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
