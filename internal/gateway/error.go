// Package gateway performs the REST calls against the Overflow backend and
// classifies their failures into a stable taxonomy.
package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind tags a classified request failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindBadRequest
	KindNetworkUnavailable
	KindServerError
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindBadRequest:
		return "bad_request"
	case KindNetworkUnavailable:
		return "network_unavailable"
	case KindServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// User-facing banner messages per failure kind.
const (
	MsgUnauthorized = "Usuário ou senha incorretos."
	MsgNetwork      = "Sem conexão com o servidor. Verifique sua internet."
	MsgServer       = "Erro interno do servidor. Tente novamente mais tarde."
	MsgUnknown      = "Erro ao realizar a operação. Tente novamente."
	MsgBadRequest   = "Dados inválidos. Verifique os dados informados."
)

// APIError is a classified request failure. Message is ready for the banner;
// FieldErrors carries per-field messages for the keys the forms recognize.
type APIError struct {
	Kind        Kind
	Status      int
	Message     string
	FieldErrors map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: %s (status %d): %s", e.Kind, e.Status, e.Message)
}

// fieldKeys maps backend payload keys to the form field keys they populate.
// Keys outside this allow-list never reach a form.
var fieldKeys = map[string]string{
	"username":        "username",
	"email":           "email",
	"password":        "senha",
	"confirmar_senha": "confirmarSenha",
	"nome":            "nome",
}

// Classify derives an APIError from a response status and raw body. Status 0
// means no response was received at all (transport failure).
func Classify(status int, body []byte) *APIError {
	switch status {
	case 0:
		return &APIError{Kind: KindNetworkUnavailable, Status: 0, Message: MsgNetwork}
	case 401:
		return &APIError{Kind: KindUnauthorized, Status: status, Message: MsgUnauthorized}
	case 500:
		return &APIError{Kind: KindServerError, Status: status, Message: MsgServer}
	case 400:
		return classifyBadRequest(status, body)
	default:
		return &APIError{Kind: KindUnknown, Status: status, Message: MsgUnknown}
	}
}

// classifyBadRequest reads the backend's field-error object. The banner takes
// the first key's message in body declaration order; recognized keys are also
// copied into FieldErrors.
func classifyBadRequest(status int, body []byte) *APIError {
	e := &APIError{Kind: KindBadRequest, Status: status, Message: MsgBadRequest}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return e
	}

	if first, ok := firstValue(body); ok {
		if msg := messageOf(first); msg != "" {
			e.Message = msg
		}
	}

	for raw, field := range fieldKeys {
		v, ok := obj[raw]
		if !ok {
			continue
		}
		msg := messageOf(v)
		if msg == "" {
			continue
		}
		if e.FieldErrors == nil {
			e.FieldErrors = make(map[string]string)
		}
		e.FieldErrors[field] = msg
	}
	return e
}

// firstValue returns the value of the first key of a JSON object, in the
// order the backend serialized it. A plain map loses that order, so the body
// is re-read token by token.
func firstValue(body []byte) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}
	if !dec.More() {
		return nil, false
	}
	if _, err := dec.Token(); err != nil { // first key
		return nil, false
	}
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

// messageOf flattens a backend error value: first element of a list,
// otherwise its string form.
func messageOf(v any) string {
	switch t := v.(type) {
	case []any:
		if len(t) == 0 {
			return ""
		}
		return messageOf(t[0])
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
