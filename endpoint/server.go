package endpoint

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/viant/mcprpc/rpc"
	"github.com/viant/mcprpc/tool"
)

// SecretLength is the required length of the shared secret
const SecretLength = 64

const textPlain = "text/plain;charset=UTF-8"

// Server represents the reference RPC endpoint
type Server struct {
	secret   string
	registry *Registry
	logger   zerolog.Logger
	engine   *gin.Engine
}

type request struct {
	Method string            `json:"method"`
	Args   []json.RawMessage `json:"args"`
}

// Handler returns http handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// authorize rejects requests unless the bearer token equals a well formed secret
func (s *Server) authorize(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ValidSecret(s.secret) || subtle.ConstantTimeCompare([]byte(token), []byte(s.secret)) != 1 {
		c.Data(http.StatusUnauthorized, textPlain, []byte("Unauthorized"))
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) dispatch(c *gin.Context) {
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Data(http.StatusBadRequest, textPlain, []byte("Invalid request: "+err.Error()))
		return
	}
	operation, ok := s.registry.Operation(req.Method)
	if !ok {
		s.logger.Warn().Str("method", req.Method).Msg("unknown method")
		c.JSON(http.StatusOK, tool.Errorf("endpoint has no method '%v'", req.Method))
		return
	}
	result, stack, err := call(c.Request.Context(), operation, req.Args)
	if err != nil {
		s.logger.Error().Err(err).Str("method", req.Method).Msg("operation failed")
		encodedStack, _ := json.Marshal(stack)
		ret := tool.Text(err.Error())
		ret.Content = append(ret.Content, &tool.Content{Type: tool.TextType, Text: string(encodedStack)})
		ret.IsError = true
		c.JSON(http.StatusOK, ret)
		return
	}
	switch actual := result.(type) {
	case *Raw:
		writeRaw(c, actual)
	case Raw:
		writeRaw(c, &actual)
	case string:
		c.Data(http.StatusOK, textPlain, []byte(actual))
	default:
		c.JSON(http.StatusOK, actual)
	}
}

// call runs operation converting a panic into an error with its stack
func call(ctx context.Context, operation Operation, args []json.RawMessage) (result interface{}, stack string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
			stack = string(debug.Stack())
		}
	}()
	if args == nil {
		args = []json.RawMessage{}
	}
	result, err = operation(ctx, args)
	if err != nil {
		stack = fmt.Sprintf("%+v", err)
	}
	return result, stack, err
}

func writeRaw(c *gin.Context, raw *Raw) {
	status := raw.Status
	if status == 0 {
		status = http.StatusOK
	}
	contentType := raw.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(status, contentType, raw.Body)
}

func (s *Server) resources(c *gin.Context) {
	ret := map[string]string{}
	for _, name := range s.registry.ResourceNames() {
		resource, _ := s.registry.Resource(name)
		value, err := resource(c.Request.Context())
		if err != nil {
			c.Data(http.StatusInternalServerError, textPlain, []byte(err.Error()))
			return
		}
		ret[name] = value
	}
	c.JSON(http.StatusOK, ret)
}

func (s *Server) resource(c *gin.Context) {
	resource, ok := s.registry.Resource(c.Param("name"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	value, err := resource(c.Request.Context())
	if err != nil {
		c.Data(http.StatusInternalServerError, textPlain, []byte(err.Error()))
		return
	}
	c.Data(http.StatusOK, textPlain, []byte(value))
}

// ValidSecret returns true for a 64 character hex secret
func ValidSecret(secret string) bool {
	if len(secret) != SecretLength {
		return false
	}
	_, err := hex.DecodeString(secret)
	return err == nil
}

// New creates an endpoint server
func New(secret string, registry *Registry, logger zerolog.Logger) *Server {
	ret := &Server{secret: secret, registry: registry, logger: logger, engine: gin.New()}
	ret.engine.Use(ret.authorize)
	ret.engine.POST(rpc.Path, ret.dispatch)
	ret.engine.GET("/resources", ret.resources)
	ret.engine.GET("/resources/:name", ret.resource)
	return ret
}
