package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MdShalimSadman/maha-ecommerce/internal/config"
	"github.com/MdShalimSadman/maha-ecommerce/internal/domain"
	"gopkg.in/gomail.v2"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type mailJob struct {
	to      string
	subject string
	html    string
	orderID string
}

// Mailer sends transactional order emails over SMTP through an in-process
// queue. Enqueueing never blocks the caller: a full queue drops the mail
// with a log line instead of stalling a reconciliation response.
type Mailer struct {
	sender     sender
	from       string
	adminEmail string
	queue      chan mailJob
	maxRetries int
	retryDelay time.Duration
}

func NewMailer(cfg config.SMTP) *Mailer {
	return &Mailer{
		sender:     gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:       fmt.Sprintf("\"MAHAA\" <%s>", cfg.Username),
		adminEmail: cfg.AdminEmail,
		queue:      make(chan mailJob, 128),
		maxRetries: 3,
		retryDelay: time.Second,
	}
}

// StartWorker drains the queue until ctx is cancelled. Run it once, from main.
func (m *Mailer) StartWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-m.queue:
			m.send(job)
		}
	}
}

func (m *Mailer) send(job mailJob) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", job.to)
	msg.SetHeader("Subject", job.subject)
	msg.SetBody("text/html", job.html)

	var err error
	for attempt := 1; attempt <= m.maxRetries; attempt++ {
		if err = m.sender.DialAndSend(msg); err == nil {
			slog.Info("email sent", "to", job.to, "subject", job.subject, "order_id", job.orderID)
			return
		}
		if attempt < m.maxRetries {
			time.Sleep(time.Duration(attempt) * m.retryDelay)
		}
	}

	slog.Error("email sending failed", "to", job.to, "order_id", job.orderID, "error", err.Error())
}

func (m *Mailer) enqueue(job mailJob) {
	select {
	case m.queue <- job:
	default:
		slog.Error("mail queue full, dropping email", "to", job.to, "order_id", job.orderID)
	}
}

func (m *Mailer) NotifyCustomer(order *domain.Order) {
	if order.Email == "" {
		slog.Warn("customer email skipped: order has no email", "order_id", order.ID)
		return
	}

	m.enqueue(mailJob{
		to:      order.Email,
		subject: "Order Confirmation",
		html: fmt.Sprintf(
			`<p>Hi %s,</p>
<p>Thank you for your order #%s.</p>
<p>Total: $%.2f</p>`,
			order.FullName, order.ID, order.TotalPrice),
		orderID: order.ID,
	})
}

func (m *Mailer) NotifyAdmin(order *domain.Order) {
	if m.adminEmail == "" {
		slog.Warn("admin email skipped: no admin address configured", "order_id", order.ID)
		return
	}

	m.enqueue(mailJob{
		to:      m.adminEmail,
		subject: "New Order Received",
		html: fmt.Sprintf(
			`<p>New order #%s received.</p>
<p>Name: %s</p>
<p>Email: %s</p>
<p>Phone: %s</p>
<p>Address: %s</p>
<p>Amount: $%.2f</p>
<p>Payment Method: %s</p>`,
			order.ID, order.FullName, order.Email, order.Phone, order.Address,
			order.TotalPrice, strings.ReplaceAll(order.PaymentMethod, "_", " ")),
		orderID: order.ID,
	})
}
