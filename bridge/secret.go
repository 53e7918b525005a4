package bridge

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/viant/afs"
)

// SecretKey is the secret file variable holding the shared secret
const SecretKey = "SHARED_SECRET"

// LoadSecret reads the shared secret from a KEY=value file
func LoadSecret(ctx context.Context, fs afs.Service, URL string) (string, error) {
	exists, err := fs.Exists(ctx, URL)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("could not find %v: %w", URL, os.ErrNotExist)
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return "", err
	}
	values, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse %v: %w", URL, err)
	}
	secret := values[SecretKey]
	if secret == "" {
		return "", fmt.Errorf("could not find %v in %v", SecretKey, URL)
	}
	return secret, nil
}
