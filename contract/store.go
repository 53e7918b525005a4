package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/viant/afs"
)

// Filename is the conventional contract store file name.
const Filename = "docs.json"

// Store persists contracts as indented JSON through afs.
type Store struct {
	fs afs.Service
}

// Encode serializes contracts with stable key order and two-space indentation.
func Encode(contracts Contracts) ([]byte, error) {
	data, err := json.MarshalIndent(contracts, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Decode parses store content
func Decode(data []byte) (Contracts, error) {
	var ret Contracts
	if err := json.Unmarshal(data, &ret); err != nil {
		return nil, err
	}
	for name, entry := range ret {
		if entry == nil {
			return nil, fmt.Errorf("contract %v was null", name)
		}
		if entry.Statics == nil {
			entry.Statics = map[string][]*StaticMember{}
		}
	}
	return ret, nil
}

// Save writes contracts to URL
func (s *Store) Save(ctx context.Context, URL string, contracts Contracts) error {
	data, err := Encode(contracts)
	if err != nil {
		return fmt.Errorf("failed to encode contracts: %w", err)
	}
	return s.fs.Upload(ctx, URL, os.FileMode(0644), bytes.NewReader(data))
}

// Load reads contracts from URL
func (s *Store) Load(ctx context.Context, URL string) (Contracts, error) {
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("could not find %v: %w", URL, os.ErrNotExist)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, err
	}
	ret, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %v: %w", URL, err)
	}
	return ret, nil
}

// NewStore creates a store
func NewStore(fs afs.Service) *Store {
	return &Store{fs: fs}
}
