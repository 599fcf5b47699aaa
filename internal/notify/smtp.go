// Package notify delivers assessment results to users. Delivery is best
// effort everywhere: the orchestrator logs failures and never lets them
// affect the assessment.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"cybershield/internal/domain"
)

// SMTPNotifier sends a plain-text summary of the assessment.
type SMTPNotifier struct {
	Host string
	Port int
	User string
	Pass string
}

func NewSMTP(host string, port int, user, pass string) *SMTPNotifier {
	return &SMTPNotifier{Host: host, Port: port, User: user, Pass: pass}
}

func (n *SMTPNotifier) Notify(ctx context.Context, recipient string, a domain.Assessment) error {
	threats := "None"
	if len(a.Threats) > 0 {
		threats = strings.Join(a.Threats, ", ")
	}
	body := fmt.Sprintf(
		"Assessment Result for %s:\nType: %s\nScore: %d\nStatus: %s\nThreats: %s",
		a.Target, a.Type, a.Score, a.Status, threats,
	)
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: CyberShield: Assessment Result for %s\r\n\r\n%s",
		n.User, recipient, a.Target, body,
	)

	addr := fmt.Sprintf("%s:%d", n.Host, n.Port)
	auth := smtp.PlainAuth("", n.User, n.Pass, n.Host)
	return smtp.SendMail(addr, auth, n.User, []string{recipient}, []byte(msg))
}

// Noop is used when SMTP is not configured.
type Noop struct{}

func (Noop) Notify(ctx context.Context, recipient string, a domain.Assessment) error {
	return nil
}
