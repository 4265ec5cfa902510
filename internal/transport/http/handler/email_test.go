package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

func TestEmailSend(t *testing.T) {
	mailer := &mockMailer{}
	mailer.On("SendEmail", mock.Anything, "alice@example.com", "Hi", "Body").Return(nil)
	h := NewEmailHandler(mailer, zap.NewNop())

	rr := post(t, h.Send, "/send-email", `{"receiver_email":"alice@example.com","subject":"Hi","body":"Body"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Email sent to alice@example.com"}`, rr.Body.String())
	mailer.AssertExpectations(t)
}

func TestEmailSend_InvalidBody(t *testing.T) {
	for _, body := range []string{`nope`, `{"receiver_email":"not-an-email","subject":"s","body":"b"}`, `{"receiver_email":"a@b.co"}`} {
		mailer := &mockMailer{}
		h := NewEmailHandler(mailer, zap.NewNop())
		rr := post(t, h.Send, "/send-email", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestEmailSend_SMTPFailure(t *testing.T) {
	mailer := &mockMailer{}
	mailer.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp: 554"))
	h := NewEmailHandler(mailer, zap.NewNop())

	rr := post(t, h.Send, "/send-email", `{"receiver_email":"alice@example.com","subject":"Hi","body":"Body"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "554")
}
