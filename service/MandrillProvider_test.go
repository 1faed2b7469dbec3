package service

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandra-backend/dto"
)

func TestMandrillProvider_Send(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/messages/send", r.URL.Path)

		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(raw, &payload))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"email":"ana@example.com","status":"sent","_id":"abc123"}]`))
	}))
	defer srv.Close()

	p := NewMandrillProvider("test-key", srv.URL+"/", 5*time.Second)
	results, err := p.Send(&OutgoingMail{
		FromEmail: SenderEmail,
		FromName:  SenderName,
		MailMessage: &dto.MailMessage{
			To:      []dto.MailRecipient{{Email: "ana@example.com", Type: "to"}},
			Subject: "Hello",
			HTML:    "<p>hi</p>",
			Tags:    []string{"otp"},
			SendAt:  "2026-10-18 12:00:00",
			Async:   true,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []dto.MailSendResult{{Email: "ana@example.com", Status: "sent", ID: "abc123"}}, results)

	assert.Equal(t, "test-key", payload["key"])
	assert.Equal(t, "2026-10-18 12:00:00", payload["send_at"])
	assert.Equal(t, true, payload["async"])

	msg, ok := payload["message"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, SenderEmail, msg["from_email"])
	assert.Equal(t, SenderName, msg["from_name"])
	assert.Equal(t, "<p>hi</p>", msg["html"])
	assert.Equal(t, []any{"otp"}, msg["tags"])
	assert.NotContains(t, msg, "send_at")
	assert.NotContains(t, msg, "async")
	assert.NotContains(t, msg, "text")

	to, ok := msg["to"].([]any)
	require.True(t, ok)
	require.Len(t, to, 1)
	assert.Equal(t, "ana@example.com", to[0].(map[string]any)["email"])
}

func TestMandrillProvider_SendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":"error","code":-1,"name":"Invalid_Key","message":"Invalid API key"}`))
	}))
	defer srv.Close()

	p := NewMandrillProvider("bad-key", srv.URL, time.Second)
	_, err := p.Send(&OutgoingMail{
		FromEmail:   SenderEmail,
		MailMessage: &dto.MailMessage{To: []dto.MailRecipient{{Email: "ana@example.com"}}, Text: "hi"},
	})

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusInternalServerError, perr.Status)
	assert.Equal(t, -1, perr.Code)
	assert.Equal(t, "Invalid_Key", perr.Name)
	assert.Equal(t, "Invalid API key", perr.Message)
}

func TestMandrillProvider_SendRejectedPlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down\n"))
	}))
	defer srv.Close()

	p := NewMandrillProvider("key", srv.URL, time.Second)
	_, err := p.Send(&OutgoingMail{MailMessage: &dto.MailMessage{To: []dto.MailRecipient{{Email: "a@example.com"}}, Text: "hi"}})

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "upstream down", perr.Message)
}

func TestNewMandrillProvider_DefaultURL(t *testing.T) {
	p := NewMandrillProvider("key", "", 0)
	assert.Equal(t, DefaultMandrillURL, p.baseURL)
}

func TestMandrillProvider_SendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewMandrillProvider("key", url, time.Second)
	_, err := p.Send(&OutgoingMail{MailMessage: &dto.MailMessage{To: []dto.MailRecipient{{Email: "a@example.com"}}, Text: "hi"}})

	assert.ErrorIs(t, err, ErrMailTransport)
	var perr *ProviderError
	assert.False(t, errors.As(err, &perr))
}
