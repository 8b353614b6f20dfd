// Package mailer renders and delivers due-date notification emails.
package mailer

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

//go:embed template.html
var templateHTML string

var bodyTemplate = template.Must(template.New("notification").Parse(templateHTML))

const subject = "\U0001F514 Your bill is due soon!"

// Notification is one rendered-and-sent email about an upcoming due date.
type Notification struct {
	To          string
	Name        string
	Description string
	DueDate     string
	Amount      string
	Type        string
}

// FormatAmount renders a two-decimal currency string, e.g. "R$ 3500.00".
func FormatAmount(amount decimal.Decimal) string {
	return "R$ " + amount.StringFixed(2)
}

// Render fills the HTML template. Kept separate from delivery so it can be
// tested without an SMTP server.
func Render(n Notification) (string, error) {
	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SendFunc delivers assembled messages. Production uses a gomail dialer;
// tests inject their own.
type SendFunc func(m ...*gomail.Message) error

// Mailer assembles notification messages and hands them to its sender.
type Mailer struct {
	from string
	send SendFunc
}

// New builds a Mailer backed by an SMTP dialer. With auth disabled the
// dialer connects without credentials. ssl selects implicit TLS (port 465);
// otherwise STARTTLS is negotiated automatically when the server offers it.
func New(host string, port int, username, password, from string, auth, ssl bool) *Mailer {
	if !auth {
		username, password = "", ""
	}
	d := gomail.NewDialer(host, port, username, password)
	d.SSL = ssl
	return &Mailer{from: from, send: d.DialAndSend}
}

// NewWithSender builds a Mailer with an injected delivery function.
func NewWithSender(from string, send SendFunc) *Mailer {
	return &Mailer{from: from, send: send}
}

// Send renders one notification and delivers it.
func (m *Mailer) Send(n Notification) error {
	body, err := Render(n)
	if err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", n.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return m.send(msg)
}
