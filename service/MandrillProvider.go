package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"sandra-backend/dto"
)

const DefaultMandrillURL = "https://mandrillapp.com/api/1.0"

// ErrMailTransport wraps failures to reach the delivery backend at all (DNS, refused, timeout).
var ErrMailTransport = errors.New("mail transport failed")

// ProviderError is a rejection reported by the delivery API.
type ProviderError struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("mail provider rejected request (http %d, %s): %s", e.Status, e.Name, e.Message)
}

// MandrillProvider talks to the Mailchimp Transactional (Mandrill) JSON API.
type MandrillProvider struct {
	apiKey  string
	baseURL string
	timeout time.Duration
}

func NewMandrillProvider(apiKey, baseURL string, timeout time.Duration) *MandrillProvider {
	if baseURL == "" {
		baseURL = DefaultMandrillURL
	}
	return &MandrillProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

type mandrillMessage struct {
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name,omitempty"`
	*dto.MailMessage
}

type mandrillSendRequest struct {
	Key     string          `json:"key"`
	Message mandrillMessage `json:"message"`
	Async   bool            `json:"async,omitempty"`
	IPPool  string          `json:"ip_pool,omitempty"`
	SendAt  string          `json:"send_at,omitempty"`
}

func (p *MandrillProvider) Send(mail *OutgoingMail) ([]dto.MailSendResult, error) {
	payload := mandrillSendRequest{
		Key: p.apiKey,
		Message: mandrillMessage{
			FromEmail:   mail.FromEmail,
			FromName:    mail.FromName,
			MailMessage: mail.MailMessage,
		},
		Async:  mail.Async,
		IPPool: mail.IPPool,
		SendAt: mail.SendAt,
	}

	agent := fiber.Post(p.baseURL + "/messages/send")
	agent.JSON(payload)
	if p.timeout > 0 {
		agent.Timeout(p.timeout)
	}
	if err := agent.Parse(); err != nil {
		return nil, fmt.Errorf("prepare mail request: %w", err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrMailTransport, errors.Join(errs...))
	}

	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		perr := &ProviderError{Status: code}
		if err := json.Unmarshal(body, perr); err != nil || perr.Message == "" {
			perr.Message = strings.TrimSpace(string(body))
		}
		return nil, perr
	}

	var results []dto.MailSendResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode mail provider response: %w", err)
	}
	return results, nil
}
