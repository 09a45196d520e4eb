package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bluegilltech/pca-wizard/interfaces"
	"github.com/hashicorp/vault/api"
)

// VaultBackend implements a storage backend using the HashiCorp Vault KV v2 engine.
// It is the natural home for OAuth client secrets.
type VaultBackend struct {
	client      *api.Client
	mountPath   string
	dataPath    string
	log         *slog.Logger
	locationURI string
}

// NewVaultBackend creates a new Vault storage backend authenticated with a token.
// An empty token falls back to VAULT_TOKEN from the environment.
//
// Parameters:
//   - address: Vault server address (e.g. https://vault.example.com:8200)
//   - mountPath: KV v2 mount path (e.g. "secret")
//   - dataPath: Path within the mount (e.g. "pca-wizard")
//   - token: Vault token
//   - log: Structured logger for operational insights
func NewVaultBackend(address, mountPath, dataPath, token string, log *slog.Logger) (*VaultBackend, error) {
	config := api.DefaultConfig()
	config.Address = address
	config.Timeout = 30 * time.Second

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}
	if token != "" {
		client.SetToken(token)
	}

	mountPath = strings.Trim(mountPath, "/")
	dataPath = strings.Trim(dataPath, "/")

	return &VaultBackend{
		client:      client,
		mountPath:   mountPath,
		dataPath:    dataPath,
		log:         log,
		locationURI: fmt.Sprintf("vault://%s/%s/%s", strings.TrimPrefix(strings.TrimPrefix(address, "https://"), "http://"), mountPath, dataPath),
	}, nil
}

// Fetch reads a record from Vault.
func (b *VaultBackend) Fetch(ctx context.Context, key interfaces.RecordKey, contentType interfaces.ContentType) ([]byte, error) {
	start := time.Now()

	secret, err := b.client.KVv2(b.mountPath).Get(ctx, b.secretPath(key, contentType))
	if err != nil {
		if errors.Is(err, api.ErrSecretNotFound) {
			return nil, interfaces.ErrContentNotFound
		}
		b.log.Error("Failed to read from Vault",
			slog.String("key", key.String()),
			"err", err)
		return nil, fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}

	if secret == nil || secret.Data == nil {
		return nil, interfaces.ErrContentNotFound
	}

	content, ok := secret.Data["content"].(string)
	if !ok {
		b.log.Error("Invalid content format in Vault data",
			slog.String("key", key.String()))
		return nil, fmt.Errorf("invalid content format in Vault data")
	}

	b.log.Debug("Fetched record from Vault",
		slog.String("key", key.String()),
		slog.Duration("duration", time.Since(start)))

	return []byte(content), nil
}

// Store writes a new version of the record.
func (b *VaultBackend) Store(ctx context.Context, key interfaces.RecordKey, data []byte, contentType interfaces.ContentType) error {
	start := time.Now()

	_, err := b.client.KVv2(b.mountPath).Put(ctx, b.secretPath(key, contentType), map[string]interface{}{
		"content": string(data),
	})
	if err != nil {
		b.log.Error("Failed to write to Vault",
			slog.String("key", key.String()),
			"err", err)
		return fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}

	b.log.Info("Stored record in Vault",
		slog.String("key", key.String()),
		slog.String("content_type", contentType.String()),
		slog.Duration("duration", time.Since(start)))

	return nil
}

// Available checks that Vault is initialized and unsealed.
func (b *VaultBackend) Available(ctx context.Context) bool {
	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	health, err := b.client.Sys().HealthWithContext(healthCtx)
	if err != nil {
		b.log.Debug("Vault health check failed", "err", err)
		return false
	}

	if !health.Initialized || health.Sealed {
		b.log.Debug("Vault is not available",
			slog.Bool("initialized", health.Initialized),
			slog.Bool("sealed", health.Sealed))
		return false
	}

	return true
}

// Name returns a unique identifier for this storage backend.
func (b *VaultBackend) Name() string {
	return fmt.Sprintf("vault-%s-%s", b.mountPath, b.dataPath)
}

// LocationURI returns the URI that identifies this storage backend.
func (b *VaultBackend) LocationURI() string {
	return b.locationURI
}

func (b *VaultBackend) secretPath(key interfaces.RecordKey, contentType interfaces.ContentType) string {
	if b.dataPath == "" {
		return fmt.Sprintf("%s/%s", contentType, key)
	}
	return fmt.Sprintf("%s/%s/%s", b.dataPath, contentType, key)
}
