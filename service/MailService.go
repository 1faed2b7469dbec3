package service

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"sandra-backend/dto"
	"sandra-backend/model"
)

// Every outgoing mail is sent from this address, whatever the caller supplies.
const (
	SenderEmail = "no-reply@sandra.app"
	SenderName  = "Sandra"
)

const templateExt = ".html"

// SupportAddressKey names the config row used as Reply-To on templated mail.
const SupportAddressKey = "mail.support_address"

var (
	ErrInvalidTemplateName = errors.New("invalid template name")
	ErrEmptyMessage        = errors.New("mail message is nil")
)

// OutgoingMail is a message with its sender resolved.
type OutgoingMail struct {
	FromEmail string
	FromName  string
	*dto.MailMessage
}

// ConfigLookup resolves a single config row by key.
type ConfigLookup interface {
	GetByKey(key string) (*model.Config, error)
}

// MailProvider delivers a composed message and reports the per-recipient outcome.
type MailProvider interface {
	Send(mail *OutgoingMail) ([]dto.MailSendResult, error)
}

type MailService struct {
	provider    MailProvider
	configs     ConfigLookup
	templateDir string
	baseURL     string
	logger      *zap.Logger
}

// NewMailService renders templates from templateDir; baseURL is the default base_url template variable.
// configs may be nil, in which case templated mail carries no Reply-To.
func NewMailService(provider MailProvider, configs ConfigLookup, templateDir, baseURL string, logger *zap.Logger) *MailService {
	return &MailService{
		provider:    provider,
		configs:     configs,
		templateDir: templateDir,
		baseURL:     baseURL,
		logger:      logger,
	}
}

// SendTemplate renders <templateDir>/<mail.Template>.html with mail.Data and sends it to mail.To.
// A missing template file fails with an error wrapping fs.ErrNotExist and nothing is sent.
func (s *MailService) SendTemplate(mail dto.TemplateMail) ([]dto.MailSendResult, error) {
	html, err := s.render(mail)
	if err != nil {
		return nil, err
	}

	msg := &dto.MailMessage{
		To:      []dto.MailRecipient{{Email: mail.To, Type: "to"}},
		Subject: mail.Subject,
		Text:    mail.Text,
		HTML:    html,
	}
	if replyTo := s.supportAddress(); replyTo != "" {
		msg.Headers = map[string]string{"Reply-To": replyTo}
	}

	results, err := s.Send(msg)
	if err != nil {
		return nil, err
	}

	s.logger.Info("mail sent", zap.String("to", mail.To), zap.String("template", mail.Template))
	return results, nil
}

// Send hands the message to the provider with the fixed sender.
func (s *MailService) Send(msg *dto.MailMessage) ([]dto.MailSendResult, error) {
	if msg == nil {
		return nil, ErrEmptyMessage
	}
	return s.provider.Send(&OutgoingMail{
		FromEmail:   SenderEmail,
		FromName:    SenderName,
		MailMessage: msg,
	})
}

// supportAddress is best effort: a lookup failure is logged and the mail goes out without Reply-To.
func (s *MailService) supportAddress() string {
	if s.configs == nil {
		return ""
	}
	cfg, err := s.configs.GetByKey(SupportAddressKey)
	if errors.Is(err, ErrConfigNotFound) {
		return ""
	}
	if err != nil {
		s.logger.Warn("failed to load support address", zap.Error(err))
		return ""
	}
	return cfg.Value
}

func (s *MailService) render(mail dto.TemplateMail) (string, error) {
	if !validTemplateName(mail.Template) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTemplateName, mail.Template)
	}

	raw, err := os.ReadFile(filepath.Join(s.templateDir, mail.Template+templateExt))
	if err != nil {
		return "", err
	}

	// missingkey=error turns a reference to an undefined variable into a render failure.
	tpl, err := template.New(mail.Template).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", mail.Template, err)
	}

	data := make(map[string]any, len(mail.Data)+1)
	data["base_url"] = s.baseURL
	if mail.BaseURL != "" {
		data["base_url"] = mail.BaseURL
	}
	for k, v := range mail.Data {
		data[k] = v
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", mail.Template, err)
	}
	return buf.String(), nil
}

// validTemplateName only allows bare file names inside the template directory.
func validTemplateName(name string) bool {
	return name != "" && !strings.HasPrefix(name, ".") && !strings.ContainsAny(name, `/\`)
}
