package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// EmailNotifier sends reports over SMTP.
type EmailNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
	send     func(addr string, auth smtp.Auth, e *email.Email) error
	log      *logrus.Logger
}

// NewEmailNotifier creates an SMTP notifier using PLAIN auth when a username is set.
func NewEmailNotifier(host string, port int, username, password, from string, to []string, log *logrus.Logger) *EmailNotifier {
	return &EmailNotifier{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		To:       to,
		send: func(addr string, auth smtp.Auth, e *email.Email) error {
			return e.Send(addr, auth)
		},
		log: log,
	}
}

// Notify implements Notifier. The HTML text is sent as both an HTML and a plain part.
func (n *EmailNotifier) Notify(ctx context.Context, subject, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := email.NewEmail()
	e.From = n.From
	e.To = n.To
	e.Subject = subject
	e.Text = []byte(stripTags(text))
	e.HTML = []byte("<html><body>" + strings.ReplaceAll(text, "\n", "<br>\n") + "</body></html>")

	var auth smtp.Auth
	if n.Username != "" {
		auth = smtp.PlainAuth("", n.Username, n.Password, n.Host)
	}
	addr := fmt.Sprintf("%s:%d", n.Host, n.Port)
	if err := n.send(addr, auth, e); err != nil {
		return fmt.Errorf("send email via %s: %w", addr, err)
	}
	n.log.WithFields(logrus.Fields{"to": strings.Join(n.To, ","), "subject": subject}).Info("email sent")
	return nil
}

// stripTags removes the few HTML tags the formatter emits and unescapes entities.
func stripTags(s string) string {
	r := strings.NewReplacer(
		"<b>", "", "</b>", "", "<i>", "", "</i>", "",
		"<code>", "", "</code>", "", "<pre>", "", "</pre>", "",
		"&lt;", "<", "&gt;", ">", "&amp;", "&",
	)
	return r.Replace(s)
}
