package service

import (
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"sandra-backend/dto"
)

// SMTPProvider delivers through a plain SMTP relay. Provider-only options such as
// tracking, merge vars and scheduling have no SMTP equivalent and are not applied.
type SMTPProvider struct {
	dialer *gomail.Dialer
}

func NewSMTPProvider(host string, port int, user, pass string) *SMTPProvider {
	dialer := gomail.NewDialer(host, port, user, pass)
	dialer.TLSConfig = &tls.Config{ServerName: host}

	return &SMTPProvider{dialer: dialer}
}

func (p *SMTPProvider) Send(mail *OutgoingMail) ([]dto.MailSendResult, error) {
	m, err := composeSMTP(mail)
	if err != nil {
		return nil, err
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMailTransport, err)
	}

	results := make([]dto.MailSendResult, 0, len(mail.To))
	for _, rcpt := range mail.To {
		results = append(results, dto.MailSendResult{Email: rcpt.Email, Status: "sent"})
	}
	return results, nil
}

func composeSMTP(mail *OutgoingMail) (*gomail.Message, error) {
	m := gomail.NewMessage()

	// Custom headers first so the ones we own below win.
	for k, v := range mail.Headers {
		m.SetHeader(k, v)
	}

	m.SetAddressHeader("From", mail.FromEmail, mail.FromName)

	byType := map[string][]string{}
	for _, rcpt := range mail.To {
		kind := rcpt.Type
		if kind == "" {
			kind = "to"
		}
		byType[kind] = append(byType[kind], m.FormatAddress(rcpt.Email, rcpt.Name))
	}
	if mail.BCCAddress != "" {
		byType["bcc"] = append(byType["bcc"], mail.BCCAddress)
	}
	if to := byType["to"]; len(to) > 0 {
		m.SetHeader("To", to...)
	}
	if cc := byType["cc"]; len(cc) > 0 {
		m.SetHeader("Cc", cc...)
	}
	if bcc := byType["bcc"]; len(bcc) > 0 {
		m.SetHeader("Bcc", bcc...)
	}
	m.SetHeader("Subject", mail.Subject)

	switch {
	case mail.Text != "" && mail.HTML != "":
		m.SetBody("text/plain", mail.Text)
		m.AddAlternative("text/html", mail.HTML)
	case mail.HTML != "":
		m.SetBody("text/html", mail.HTML)
	default:
		m.SetBody("text/plain", mail.Text)
	}

	for _, a := range mail.Attachments {
		content, err := base64.StdEncoding.DecodeString(a.Content)
		if err != nil {
			return nil, fmt.Errorf("attachment %s: %w", a.Name, err)
		}
		m.Attach(a.Name, copyBytes(content), gomail.SetHeader(map[string][]string{"Content-Type": {a.Type}}))
	}
	for _, img := range mail.Images {
		content, err := base64.StdEncoding.DecodeString(img.Content)
		if err != nil {
			return nil, fmt.Errorf("image %s: %w", img.Name, err)
		}
		m.Embed(img.Name, copyBytes(content), gomail.SetHeader(map[string][]string{"Content-Type": {img.Type}}))
	}

	return m, nil
}

func copyBytes(content []byte) gomail.FileSetting {
	return gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(content)
		return err
	})
}
