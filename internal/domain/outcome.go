package domain

import (
	"github.com/kapu/gok-stats-bot-go/pkg/errors"
)

// Status is the outcome code of a business operation.
type Status int

const (
	StatusPending Status = 0
	StatusOK      Status = 200
	// StatusFailed is the generic failure code; Kind holds the detail.
	StatusFailed Status = 500
)

// Commentary carries the records an LLM should comment on after delivery.
type Commentary struct {
	Records  []map[string]any
	Provider string
	Enabled  bool
}

// Outcome is the envelope every business operation returns. When Status is not
// StatusOK, Message is the only content a presenter may show.
type Outcome struct {
	Status     Status
	Kind       errors.Kind
	Message    string
	Payload    map[string]any
	Template   string
	Commentary *Commentary
}

// NewOutcome returns a pending envelope.
func NewOutcome() *Outcome {
	return &Outcome{
		Status:  StatusPending,
		Message: "功能函数未执行",
		Payload: map[string]any{},
	}
}

// OK reports whether the operation succeeded.
func (o *Outcome) OK() bool {
	return o != nil && o.Status == StatusOK
}

// Fail marks the envelope failed with the user message mapped from kind.
func (o *Outcome) Fail(kind errors.Kind) *Outcome {
	o.Status = StatusFailed
	o.Kind = kind
	o.Message = errors.UserMessage(kind)
	o.Payload = map[string]any{}
	o.Template = ""
	o.Commentary = nil
	return o
}

// Succeed marks the envelope successful.
func (o *Outcome) Succeed() *Outcome {
	o.Status = StatusOK
	o.Kind = ""
	o.Message = ""
	return o
}

// SetText stores a plain-text result in the payload.
func (o *Outcome) SetText(text string) *Outcome {
	o.Payload["text"] = text
	return o
}

// Text returns the plain-text result, if any.
func (o *Outcome) Text() string {
	if o == nil || o.Payload == nil {
		return ""
	}
	text, _ := o.Payload["text"].(string)
	return text
}

// HasTemplate reports whether the outcome should be rendered.
func (o *Outcome) HasTemplate() bool {
	return o != nil && o.Template != ""
}
