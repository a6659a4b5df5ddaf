package transport

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"plainchat/errors"
)

const (
	HeaderDeviceID  = "c-id"
	HeaderChannelID = "c-cid"

	PathGraphQL = "/peer_graphql"
	PathFiles   = "/fs"

	DefaultReplayWindow = 5 * time.Minute
	DefaultTimeout      = 10 * time.Second
)

// Request is the GraphQL-shaped body every peer call carries.
type Request struct {
	OperationName string          `json:"operationName"`
	Query         string          `json:"query"`
	Variables     json.RawMessage `json:"variables"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

func (r Response) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("%w: remote error: %s", errors.ErrTransport, strings.Join(msgs, "; "))
}

func NewRequest(operation, query string, variables any) (Request, error) {
	raw, err := json.Marshal(variables)
	if err != nil {
		return Request{}, fmt.Errorf("%w: encoding variables: %v", errors.ErrInvalidPayload, err)
	}
	return Request{OperationName: operation, Query: query, Variables: raw}, nil
}

// Decode unmarshals the variables into v.
func (r Request) Decode(v any) error {
	if len(r.Variables) == 0 {
		return fmt.Errorf("%w: missing variables", errors.ErrInvalidPayload)
	}
	if err := json.Unmarshal(r.Variables, v); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return nil
}

// Signer signs the timestamp and body of an envelope.
type Signer interface {
	Sign(message []byte) string
}

// BuildEnvelope builds the clear envelope "<b64 signature>|<unix ms>|<json>".
// The signature covers the decimal timestamp immediately followed by the json.
func BuildEnvelope(signer Signer, body []byte, now time.Time) []byte {
	ts := strconv.FormatInt(now.UnixMilli(), 10)
	signed := append([]byte(ts), body...)
	sig := signer.Sign(signed)

	out := make([]byte, 0, len(sig)+len(ts)+len(body)+2)
	out = append(out, sig...)
	out = append(out, '|')
	out = append(out, ts...)
	out = append(out, '|')
	return append(out, body...)
}

// Envelope is a parsed clear envelope.
type Envelope struct {
	Signature string
	Timestamp int64
	Body      []byte
}

// SignedPart is the byte string the signature was computed over.
func (e Envelope) SignedPart() []byte {
	return append([]byte(strconv.FormatInt(e.Timestamp, 10)), e.Body...)
}

func (e Envelope) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(e.Timestamp))
}

// Parse splits on the first two '|' only; the json part may contain more.
func Parse(plain []byte) (Envelope, error) {
	parts := strings.SplitN(string(plain), "|", 3)
	if len(parts) != 3 {
		return Envelope{}, fmt.Errorf("%w: expected 3 parts, got %d", errors.ErrMalformedEnvelope, len(parts))
	}
	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: bad timestamp %q", errors.ErrMalformedEnvelope, parts[1])
	}
	if parts[0] == "" {
		return Envelope{}, fmt.Errorf("%w: empty signature", errors.ErrMalformedEnvelope)
	}
	return Envelope{Signature: parts[0], Timestamp: ts, Body: []byte(parts[2])}, nil
}
