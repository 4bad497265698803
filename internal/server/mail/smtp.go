package mail

import (
	"context"
	"fmt"
	"net/url"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends mail through a plain SMTP relay using gomail.
type SMTPMailer struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

// NewSMTPMailer constructs a mailer for the given relay. baseURL is the
// outward-facing URL embedded in the links inside the messages.
func NewSMTPMailer(host string, port int, username, password, baseURL string) *SMTPMailer {
	return &SMTPMailer{
		dialer:  gomail.NewDialer(host, port, username, password),
		from:    username,
		baseURL: baseURL,
	}
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	subject, text, html := verificationMessage(m.baseURL, to, code)
	return m.send(ctx, to, subject, text, html)
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, code string) error {
	subject, text, html := passwordResetMessage(m.baseURL, to, code)
	return m.send(ctx, to, subject, text, html)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, text, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("email sending failed: %w", err)
	}
	return nil
}

func verificationMessage(baseURL, email, code string) (subject, text, html string) {
	link := fmt.Sprintf("%s/auth/verify-email?otp=%s&email=%s",
		baseURL, url.QueryEscape(code), url.QueryEscape(email))

	subject = "Email Verification Code"
	text = fmt.Sprintf("Hi,\n\nPlease use the following OTP to verify your email: %s. "+
		"You can verify your email by clicking on the link below:\n\n%s", code, link)
	html = fmt.Sprintf("<p>Hi,</p><p>Please use the following OTP to verify your email: "+
		"<strong>%s</strong>. You can verify your email by clicking on the link below:</p>"+
		"<p><a href=%q>%s</a></p>", code, link, link)
	return subject, text, html
}

func passwordResetMessage(baseURL, email, code string) (subject, text, html string) {
	link := fmt.Sprintf("%s/auth/reset-password?otp=%s&email=%s",
		baseURL, url.QueryEscape(code), url.QueryEscape(email))

	subject = "Password Reset Request"
	text = fmt.Sprintf("Hi,\n\nYou requested to reset your password. Please use the following OTP: %s. "+
		"You can reset your password by clicking on the link below:\n\n%s", code, link)
	html = fmt.Sprintf("<p>Hi,</p><p>You requested to reset your password. Please use the following OTP: "+
		"<strong>%s</strong>. You can reset your password by clicking on the link below:</p>"+
		"<p><a href=%q>%s</a></p>", code, link, link)
	return subject, text, html
}
