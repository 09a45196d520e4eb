package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bluegilltech/pca-wizard/common"
	"github.com/bluegilltech/pca-wizard/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLocation(t *testing.T, uri string) interfaces.StorageBackendLocation {
	loc, err := interfaces.NewStorageBackendLocation(uri)
	require.NoError(t, err)
	return loc
}

func TestStorageBackendFactory_File(t *testing.T) {
	dir := t.TempDir()
	factory := NewStorageBackendFactory(common.DiscardLogger())

	backend, err := factory.StorageBackendFor(mustLocation(t, "file://"+dir))
	require.NoError(t, err)
	assert.IsType(t, &FileBackend{}, backend)
	assert.Equal(t, "file://"+dir, backend.LocationURI())
}

func TestStorageBackendFactory_S3(t *testing.T) {
	factory := NewStorageBackendFactory(common.DiscardLogger())

	backend, err := factory.StorageBackendFor(mustLocation(t, "s3://AKID:SECRET@bucket/prefix/?region=eu-west-1&endpoint=http://localhost:9000"))
	require.NoError(t, err)
	s3Backend, ok := backend.(*S3Backend)
	require.True(t, ok)
	assert.Equal(t, "bucket", s3Backend.bucketName)
	assert.Equal(t, "prefix", s3Backend.prefix)
	assert.NotContains(t, s3Backend.LocationURI(), "SECRET")
}

func TestStorageBackendFactory_Vault(t *testing.T) {
	factory := NewStorageBackendFactory(common.DiscardLogger())

	backend, err := factory.StorageBackendFor(mustLocation(t, "vault://vault.internal:8200/kv/pca-wizard?tls=false&token=s.abc"))
	require.NoError(t, err)
	vaultBackend, ok := backend.(*VaultBackend)
	require.True(t, ok)
	assert.Equal(t, "kv", vaultBackend.mountPath)
	assert.Equal(t, "pca-wizard", vaultBackend.dataPath)
	assert.Equal(t, "http://vault.internal:8200", vaultBackend.client.Address())
	assert.Equal(t, "vault-kv-pca-wizard", vaultBackend.Name())
	assert.Equal(t, "pca-wizard/secret/org-1", vaultBackend.secretPath("org-1", interfaces.SecretType))
}

func TestStorageBackendFactory_Invalid(t *testing.T) {
	_, err := interfaces.NewStorageBackendLocation("ipfs://localhost:5001")
	assert.ErrorIs(t, err, interfaces.ErrInvalidLocationURI)

	factory := NewStorageBackendFactory(common.DiscardLogger())
	_, err = factory.StorageBackendFor(interfaces.StorageBackendLocation{Raw: "ftp://x", Scheme: "ftp"})
	assert.ErrorIs(t, err, interfaces.ErrInvalidLocationURI)

	_, err = factory.StorageBackendFor(mustLocation(t, "s3:///prefix"))
	assert.ErrorIs(t, err, interfaces.ErrInvalidLocationURI)
}

func TestStorageBackendFactory_CreateMultiBackend(t *testing.T) {
	factory := NewStorageBackendFactory(common.DiscardLogger())
	dirA := filepath.Join(t.TempDir(), "a")
	dirB := filepath.Join(t.TempDir(), "b")

	backend, err := factory.CreateMultiBackend([]interfaces.StorageBackendLocation{
		mustLocation(t, "file://"+dirA),
		{Raw: "ftp://skipped", Scheme: "ftp"},
		mustLocation(t, "file://"+dirB),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(backend.LocationURI(), "multi:["))
	assert.Contains(t, backend.LocationURI(), dirA)
	assert.Contains(t, backend.LocationURI(), dirB)

	_, err = factory.CreateMultiBackend([]interfaces.StorageBackendLocation{{Raw: "ftp://x", Scheme: "ftp"}})
	assert.Error(t, err)
}

func TestRedactLocation(t *testing.T) {
	loc := mustLocation(t, "s3://AKID:SECRET@bucket/p?region=x")
	assert.Equal(t, "s3://***@bucket/p?region=x", redactLocation(loc))

	loc = mustLocation(t, "vault://vault:8200/kv?token=s.topsecret")
	assert.Equal(t, "vault://vault:8200/kv?token=***", redactLocation(loc))
}

func TestVaultBackend_Available(t *testing.T) {
	sealed := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/sys/health" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if sealed {
			w.Write([]byte(`{"initialized":true,"sealed":true,"standby":false}`))
			return
		}
		w.Write([]byte(`{"initialized":true,"sealed":false,"standby":false}`))
	}))
	defer srv.Close()

	backend, err := NewVaultBackend(srv.URL, "secret", "pca", "token", common.DiscardLogger())
	require.NoError(t, err)
	assert.True(t, backend.Available(context.Background()))

	sealed = true
	assert.False(t, backend.Available(context.Background()))
}
