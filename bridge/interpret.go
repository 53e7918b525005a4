package bridge

import (
	"context"
	"encoding/json"
	"mime"
	"strings"

	"github.com/viant/mcprpc/rpc"
	"github.com/viant/mcprpc/server"
	"github.com/viant/mcprpc/tool"
)

const previewSize = 1000

// mediaType returns the lower case media type without parameters
func mediaType(contentType string) string {
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		return parsed
	}
	if index := strings.Index(contentType, ";"); index != -1 {
		contentType = contentType[:index]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

func preview(body []byte) string {
	text := string(body)
	if len(text) > previewSize {
		return text[:previewSize]
	}
	return text
}

// interpret shapes an RPC response into a tool result
func (s *Service) interpret(ctx context.Context, response *rpc.Response, logger *server.Logger) *tool.Result {
	if len(response.Body) == 0 {
		return tool.Errorf("Fetch failed. Got (%v) Empty response", response.Status)
	}
	if !response.OK() {
		return tool.Errorf("Fetch failed. Got (%v) %s", response.Status, response.Body)
	}
	media := mediaType(response.ContentType)
	switch {
	case media == "text/plain":
		return tool.Text(string(response.Body))
	case imageSubtype(media) != "":
		return s.interpretImage(ctx, response, imageSubtype(media), logger)
	case media == "application/json":
		return interpretJSON(response.Body)
	}
	return tool.Errorf("Unknown contentType %v %v", response.ContentType, preview(response.Body))
}

func (s *Service) interpretImage(ctx context.Context, response *rpc.Response, subtype string, logger *server.Logger) *tool.Result {
	payload, err := s.images.persist(ctx, subtype, response.Body)
	if payload == nil {
		return tool.Errorf("failed to persist %v image: %v", subtype, err)
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("location", payload.location).Msg("sending original image")
		_ = logger.Warning(ctx, map[string]interface{}{"message": "sending original image", "error": err.Error()})
	}
	s.logger.Debug().Str("location", payload.location).Bool("reencoded", payload.reencoded).Msg("image persisted")
	return tool.Image(payload.data, response.ContentType)
}

// interpretJSON passes a result envelope through, other values become content items
func interpretJSON(body []byte) *tool.Result {
	var value interface{}
	if err := json.Unmarshal(body, &value); err != nil {
		return tool.Errorf("failed to parse JSON response: %v %v", err, preview(body))
	}
	switch actual := value.(type) {
	case map[string]interface{}:
		if _, ok := actual["content"]; ok {
			return tool.Raw(body)
		}
	case []interface{}:
		return wrap(json.RawMessage(body))
	}
	return wrap([]json.RawMessage{body})
}

func wrap(content interface{}) *tool.Result {
	envelope, err := json.Marshal(map[string]interface{}{"content": content})
	if err != nil {
		return tool.Errorf("failed to wrap JSON response: %v", err)
	}
	return tool.Raw(envelope)
}
