package tool

import (
	"encoding/json"
	"fmt"
)

const (
	TextType  = "text"
	ImageType = "image"
)

type (
	// Content represents a tool result content item
	Content struct {
		Type     string
		Text     string
		Data     string
		MimeType string
	}

	// Result represents a tools/call result, either built from content items or a raw JSON envelope
	Result struct {
		Content []*Content `json:"content"`
		IsError bool       `json:"isError,omitempty"`
		raw     json.RawMessage
	}
)

func (c *Content) MarshalJSON() ([]byte, error) {
	if c.Type == ImageType {
		return json.Marshal(struct {
			Type     string `json:"type"`
			Data     string `json:"data"`
			MimeType string `json:"mimeType"`
		}{c.Type, c.Data, c.MimeType})
	}
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{c.Type, c.Text})
}

// MarshalJSON emits the raw envelope unchanged when present
func (r *Result) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	type result Result
	content := r.Content
	if content == nil {
		content = []*Content{}
	}
	return json.Marshal(&result{Content: content, IsError: r.IsError})
}

// Text creates a single text item result
func Text(text string) *Result {
	return &Result{Content: []*Content{{Type: TextType, Text: text}}}
}

// Image creates a single image item result with base64 data
func Image(data, mimeType string) *Result {
	return &Result{Content: []*Content{{Type: ImageType, Data: data, MimeType: mimeType}}}
}

// Errorf creates an error result with a formatted text item
func Errorf(format string, args ...interface{}) *Result {
	ret := Text(fmt.Sprintf(format, args...))
	ret.IsError = true
	return ret
}

// Raw creates a result passing a JSON envelope through unchanged
func Raw(envelope []byte) *Result {
	return &Result{raw: json.RawMessage(envelope)}
}
