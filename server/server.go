package server

import (
	"context"
	"errors"

	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcprpc/internal/collection"
)

// Server represents MCP protocol handler
type Server struct {
	activeContexts *collection.SyncMap[string, *activeContext]
	capabilities   schema.ServerCapabilities
	info           schema.Implementation
	newImplementer NewImplementer

	instructions    *string
	protocolVersion string
	loggerName      string
	loggingLevel    Level

	stdioServer
}

func (s *Server) cancelOperation(id string) {
	if active, ok := s.activeContexts.Take(id); ok {
		active.CancelFunc()
	}
}

// NewHandler creates a new handler instance
func (s *Server) NewHandler(ctx context.Context, transport transport.Transport) transport.Handler {
	return s.newHandler(ctx, transport)
}

func (s *Server) newHandler(ctx context.Context, notifier transport.Notifier) *Handler {
	ret := &Handler{
		Server:   s,
		Notifier: notifier,
		level:    newLevelHolder(s.loggingLevel),
	}
	ret.logger = NewLogger(s.loggerName, ret.level, notifier)
	ret.implementer, ret.err = s.newImplementer(ctx, notifier, ret.logger)
	return ret
}

// New creates a new Server instance
func New(options ...Option) (*Server, error) {
	s := &Server{
		capabilities: schema.ServerCapabilities{Tools: &schema.ServerCapabilitiesTools{}},
		info: schema.Implementation{
			Name:    "mcprpc",
			Version: "1.0.0",
		},
		loggerName:      "mcprpc",
		loggingLevel:    LevelInfo,
		protocolVersion: schema.LatestProtocolVersion,
		activeContexts:  collection.NewSyncMap[string, *activeContext](),
	}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	if s.newImplementer == nil {
		return nil, errors.New("no implementer specified")
	}
	return s, nil
}
