package bridge

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/viant/afs"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/jsonrpc/transport/server/stdio"
	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcprpc/contract"
	"github.com/viant/mcprpc/internal/logging"
	"github.com/viant/mcprpc/rpc"
	"github.com/viant/mcprpc/server"
	"github.com/viant/mcprpc/tool"
)

// Version is reported as server version on initialize
const Version = "1.0.0"

// Service serves the default contract methods as MCP tools
type Service struct {
	options  *Options
	config   *Config
	contract *contract.Contract
	registry *tool.Registry
	client   *rpc.Client
	images   *imageStore
	logger   zerolog.Logger
}

type implementer struct {
	service *Service
	logger  *server.Logger
}

// Initialize reports the registration name as server name
func (i *implementer) Initialize(ctx context.Context, params *schema.InitializeRequestParams, result *schema.InitializeResult) {
	result.ServerInfo = schema.Implementation{Name: i.service.options.Args.Name, Version: Version}
	i.service.logger.Debug().Str("protocol", params.ProtocolVersion).Msg("initialized")
}

// ListTools lists one tool per contract method
func (i *implementer) ListTools(ctx context.Context) (*schema.ListToolsResult, *jsonrpc.Error) {
	return &schema.ListToolsResult{Tools: i.service.registry.Tools()}, nil
}

// CallTool dispatches the call to the remote endpoint
func (i *implementer) CallTool(ctx context.Context, params *schema.CallToolRequestParams) (*tool.Result, *jsonrpc.Error) {
	return i.service.Call(ctx, params.Name, params.Arguments, i.logger), nil
}

// Call invokes a tool, failures are reported as error results
func (s *Service) Call(ctx context.Context, name string, arguments map[string]interface{}, logger *server.Logger) *tool.Result {
	method, ok := s.registry.Lookup(name)
	if !ok {
		s.logger.Warn().Str("tool", name).Msg("unknown tool")
		return tool.Errorf("Couldn't find method '%v' in entrypoint", name)
	}
	args := tool.Args(method, arguments)
	s.logger.Debug().Str("tool", name).Interface("args", args).Msg("calling")
	_ = logger.Debug(ctx, map[string]interface{}{"tool": name, "args": args})
	response, err := s.client.Call(ctx, method.Name, args)
	if err != nil {
		s.logger.Error().Err(err).Str("tool", name).Msg("call failed")
		_ = logger.Error(ctx, map[string]interface{}{"tool": name, "error": err.Error()})
		return tool.Errorf("Fetch failed. %v", err)
	}
	s.logger.Debug().Str("tool", name).Int("status", response.Status).Int("bytes", len(response.Body)).Str("contentType", response.ContentType).Msg("response")
	result := s.interpret(ctx, response, logger)
	if result.IsError {
		_ = logger.Warning(ctx, map[string]interface{}{"tool": name, "status": response.Status})
	}
	return result
}

// Registry returns tool registry
func (s *Service) Registry() *tool.Registry {
	return s.registry
}

// Contract returns served contract
func (s *Service) Contract() *contract.Contract {
	return s.contract
}

// ScratchDir returns image artifacts directory
func (s *Service) ScratchDir() string {
	return s.images.dir
}

func (s *Service) newImplementer(ctx context.Context, notifier transport.Notifier, logger *server.Logger) (server.Implementer, error) {
	return &implementer{service: s, logger: logger}, nil
}

// Server creates MCP server serving the contract tools, transport errors go to the process logger
func (s *Service) Server() (*server.Server, error) {
	options := []server.Option{
		server.WithImplementation(schema.Implementation{Name: s.options.Args.Name, Version: Version}),
		server.WithNewImplementer(s.newImplementer),
		server.WithLoggerName(s.options.Args.Name),
		server.WithStdioOptions(stdio.WithErrorWriter(s.logger)),
	}
	if s.contract.Description != nil {
		options = append(options, server.WithInstructions(*s.contract.Description))
	}
	return server.New(options...)
}

// Stdio creates stdio MCP server
func (s *Service) Stdio(ctx context.Context) (*stdio.Server, error) {
	srv, err := s.Server()
	if err != nil {
		return nil, err
	}
	return srv.Stdio(ctx), nil
}

// New loads the contract store and secret and builds the tool registry
func New(ctx context.Context, options *Options) (*Service, error) {
	return newService(ctx, afs.New(), options, logging.Stderr(options.Debug))
}

func newService(ctx context.Context, fs afs.Service, options *Options, logger zerolog.Logger) (*Service, error) {
	if options.Args.URL == "" {
		return nil, startupError(nil, "remote url was empty")
	}
	config, timeout, err := resolveConfig(ctx, fs, options)
	if err != nil {
		return nil, startupError(err, "invalid config")
	}
	storeURL := options.StoreURL()
	contracts, err := contract.NewStore(fs).Load(ctx, storeURL)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, startupError(err, "could not find %v, run docgen first", storeURL)
		}
		return nil, startupError(err, "failed to load %v", storeURL)
	}
	entry := contracts.Default()
	if entry == nil {
		return nil, startupError(nil, "no default export in %v, exported: [%v]", storeURL, strings.Join(contracts.Names(), ", "))
	}
	registry, err := tool.FromContract(entry)
	if err != nil {
		return nil, startupError(err, "invalid contract %v", storeURL)
	}
	secret, err := LoadSecret(ctx, fs, options.SecretURL())
	if err != nil {
		return nil, startupError(err, "failed to load secret")
	}
	client, err := rpc.New(options.Args.URL, secret, rpc.WithTimeout(timeout))
	if err != nil {
		return nil, startupError(err, "invalid remote url")
	}
	scratch := options.Scratch
	if scratch == "" {
		if scratch, err = os.MkdirTemp("", "mcprpc-"); err != nil {
			return nil, startupError(err, "failed to create scratch directory")
		}
	} else if err = os.MkdirAll(scratch, 0755); err != nil {
		return nil, startupError(err, "failed to create scratch directory %v", scratch)
	}
	logger.Info().Str("name", options.Args.Name).Str("url", options.Args.URL).Int("tools", len(registry.Methods())).Str("scratch", scratch).Msg("bridge ready")
	return &Service{
		options:  options,
		config:   config,
		contract: entry,
		registry: registry,
		client:   client,
		images:   &imageStore{fs: fs, dir: scratch, policy: config.Images},
		logger:   logger,
	}, nil
}

// Serve runs the bridge over stdio until the transport closes
func Serve(ctx context.Context, options *Options) error {
	service, err := New(ctx, options)
	if err != nil {
		return err
	}
	srv, err := service.Stdio(ctx)
	if err != nil {
		return err
	}
	return srv.ListenAndServe()
}
