package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/viant/afs"
	"github.com/viant/mcprpc/contract"
)

// Service compiles a source module into a contract store
type Service struct {
	fs     afs.Service
	store  *contract.Store
	logger zerolog.Logger
}

// Compile reads source from sourceURL, extracts contracts and writes them to storeURL
func (s *Service) Compile(ctx context.Context, sourceURL, storeURL string) (*Result, error) {
	if sourceURL == "" {
		return nil, fmt.Errorf("missing filename")
	}
	source, err := s.fs.DownloadWithURL(ctx, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", sourceURL, err)
	}
	result, err := Extract(source)
	if err != nil {
		return nil, err
	}
	for _, warning := range result.Warnings {
		s.logger.Warn().Str("source", sourceURL).Msg(warning.String())
	}
	if err = s.store.Save(ctx, storeURL, result.Contracts); err != nil {
		return nil, fmt.Errorf("failed to write %v: %w", storeURL, err)
	}
	s.logger.Info().Msgf("generated docs for %v in %v", sourceURL, storeURL)
	for _, name := range result.Contracts.Names() {
		entry := result.Contracts[name]
		exportedAs := "null"
		if entry.ExportedAs != nil {
			exportedAs = *entry.ExportedAs
		}
		s.logger.Info().Msgf("%v exported as %v", name, exportedAs)
		for _, method := range entry.Methods {
			s.logger.Info().Msgf("  - %v", signature(method))
		}
	}
	return result, nil
}

func signature(method *contract.Method) string {
	var params []string
	for _, param := range method.Params {
		params = append(params, param.Name+": "+param.Type)
	}
	returns := "?"
	if method.Returns != nil {
		returns = method.Returns.Type
	}
	return fmt.Sprintf("%v(%v): %v", method.Name, strings.Join(params, ", "), returns)
}

// New creates a compiler service
func New(fs afs.Service, logger zerolog.Logger) *Service {
	return &Service{fs: fs, store: contract.NewStore(fs), logger: logger}
}
