package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a gateway failure.
type Kind int

const (
	// KindNetwork covers unreachable hosts, timeouts and canceled requests.
	KindNetwork Kind = iota + 1
	// KindRejected is a non-2xx answer from the backend.
	KindRejected
	// KindDecode is a 2xx answer whose body is not the expected JSON.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRejected:
		return "rejected"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is returned by Client.Do for every failed call.
type Error struct {
	Kind     Kind
	Method   string
	Path     string
	Status   int
	Messages []string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "gateway: %s %s", e.Method, e.Path)
	switch e.Kind {
	case KindRejected:
		fmt.Fprintf(&b, ": status %d", e.Status)
		if len(e.Messages) > 0 {
			fmt.Fprintf(&b, ": %s", strings.Join(e.Messages, "; "))
		}
	default:
		fmt.Fprintf(&b, ": %s", e.Kind)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the backend message to show verbatim, if any.
func (e *Error) Message() string {
	if e == nil || len(e.Messages) == 0 {
		return ""
	}
	return e.Messages[0]
}

// IsNetwork reports whether err is a connectivity failure.
func IsNetwork(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Kind == KindNetwork
}

// IsRejected reports whether err is a non-2xx backend answer.
func IsRejected(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Kind == KindRejected
}

type errorBody struct {
	Message json.RawMessage `json:"message"`
}

// parseMessages extracts `message` when it is a string or a list of strings.
func parseMessages(body []byte) []string {
	if len(body) == 0 {
		return nil
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Message) == 0 {
		return nil
	}
	var single string
	if err := json.Unmarshal(eb.Message, &single); err == nil {
		if single = strings.TrimSpace(single); single != "" {
			return []string{single}
		}
		return nil
	}
	var list []any
	if err := json.Unmarshal(eb.Message, &list); err != nil {
		return nil
	}
	messages := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			messages = append(messages, strings.TrimSpace(s))
		}
	}
	if len(messages) == 0 {
		return nil
	}
	return messages
}
