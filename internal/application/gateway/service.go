// Package gateway classifies and forwards public requests to the
// registration service.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-api-signup/internal/domain"
	"github.com/go-api-signup/internal/infrastructure/authclient"
	"github.com/go-api-signup/internal/pkg/identifier"
)

// Client messages returned without contacting the registration service.
const (
	MsgUnparseable       = "Invalid request, unable to parse JSON"
	MsgEmptyPayload      = "Invalid request, empty payload"
	MsgInvalidIdentifier = "Please enter a valid email or phone number"
)

var (
	ErrUnparseable       = errors.New(MsgUnparseable)
	ErrEmptyPayload      = errors.New(MsgEmptyPayload)
	ErrInvalidIdentifier = errors.New(MsgInvalidIdentifier)
)

// Forwarder posts a JSON body to a path on the registration service.
type Forwarder interface {
	Forward(ctx context.Context, path string, body []byte) (*authclient.Response, error)
}

// Reply is what the gateway sends back: the downstream status, and the
// downstream body to be wrapped under "message".
type Reply struct {
	Status  int
	Message json.RawMessage
}

type Service interface {
	ForwardSignup(ctx context.Context, payload []byte) (*Reply, error)
	ForwardSignin(ctx context.Context, payload []byte) (*Reply, error)
}

type service struct {
	auth Forwarder
}

func NewService(auth Forwarder) Service {
	return &service{auth: auth}
}

func (s *service) ForwardSignup(ctx context.Context, payload []byte) (*Reply, error) {
	if _, err := parseObject(payload); err != nil {
		return nil, err
	}
	return s.forward(ctx, authclient.PathSignup, payload)
}

func (s *service) ForwardSignin(ctx context.Context, payload []byte) (*Reply, error) {
	obj, err := parseObject(payload)
	if err != nil {
		return nil, err
	}
	var path string
	switch k := identifier.Classify(identifierText(obj["identifier"])); k {
	case identifier.Email:
		path = authclient.PathLoginByEmail
	case identifier.Phone:
		path = authclient.PathLoginByPhone
	case identifier.Unknown:
		return nil, fmt.Errorf("%w: %w", ErrInvalidIdentifier, domain.ErrBadRequest)
	default:
		panic(fmt.Sprintf("gateway: unhandled identifier kind %v", k))
	}
	return s.forward(ctx, path, payload)
}

func (s *service) forward(ctx context.Context, path string, payload []byte) (*Reply, error) {
	resp, err := s.auth.Forward(ctx, path, payload)
	if err != nil {
		return nil, err
	}
	return &Reply{Status: resp.Status, Message: relayable(resp.Body)}, nil
}

// parseObject requires a non-empty JSON object.
func parseObject(payload []byte) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnparseable, domain.ErrBadRequest)
	}
	if len(obj) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrEmptyPayload, domain.ErrBadRequest)
	}
	return obj, nil
}

// identifierText accepts the identifier as a JSON string or number.
func identifierText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// relayable returns the downstream body as JSON, quoting it as a string
// when it is not valid JSON itself.
func relayable(body []byte) json.RawMessage {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}
