package interfaces

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
)

// RecordKey identifies a stored record within a content type namespace.
// Registrations are keyed by the organization id of the provisioning request.
type RecordKey string

var recordKeyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// NewRecordKey validates a key before it is used as a file name or object path.
func NewRecordKey(key string) (RecordKey, error) {
	if !recordKeyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRecordKey, key)
	}
	return RecordKey(key), nil
}

// String returns the key as a string.
func (k RecordKey) String() string {
	return string(k)
}

// ContentType indicates storage namespace.
type ContentType int

const (
	// RegistrationType for provisioning registrations (no credentials)
	RegistrationType ContentType = iota
	// SecretType for OAuth client secrets
	SecretType
)

// String returns type name.
func (ct ContentType) String() string {
	switch ct {
	case RegistrationType:
		return "registration"
	case SecretType:
		return "secret"
	default:
		return "unknown"
	}
}

// StorageBackendLocation represents URI for storage backend.
type StorageBackendLocation struct {
	Raw    string     // Original URI
	Scheme string     // Protocol
	Host   string     // Hostname
	Path   string     // Resource path
	Query  url.Values // Query parameters
	Auth   string     // Authentication info
}

// NewStorageBackendLocation creates a new storage location from a URI string with validation.
func NewStorageBackendLocation(uri string) (StorageBackendLocation, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return StorageBackendLocation{}, fmt.Errorf("%w: %v", ErrInvalidLocationURI, err)
	}

	scheme := parsed.Scheme
	switch scheme {
	case "file", "s3", "vault":
	default:
		return StorageBackendLocation{}, fmt.Errorf("%w: unsupported storage scheme %q", ErrInvalidLocationURI, scheme)
	}

	var auth string
	if parsed.User != nil {
		auth = parsed.User.String()
	}

	return StorageBackendLocation{
		Raw:    uri,
		Scheme: scheme,
		Host:   parsed.Host,
		Path:   parsed.Path,
		Query:  parsed.Query(),
		Auth:   auth,
	}, nil
}

// String returns the original URI string.
func (loc StorageBackendLocation) String() string {
	return loc.Raw
}

// GetParam returns a query parameter value.
func (loc StorageBackendLocation) GetParam(name string) string {
	return loc.Query.Get(name)
}

// GetParamBool returns a boolean query parameter value.
func (loc StorageBackendLocation) GetParamBool(name string) bool {
	value := loc.Query.Get(name)
	return value == "true" || value == "1" || value == "yes"
}

var (
	// ErrContentNotFound is returned when requested content cannot be found in the storage backend.
	ErrContentNotFound = errors.New("content not found")

	// ErrBackendUnavailable is returned when a storage backend is not accessible.
	// This could be due to network issues, authentication failures, or service outages.
	ErrBackendUnavailable = errors.New("storage backend unavailable")

	// ErrInvalidLocationURI is returned when a storage location URI is malformed or unsupported.
	// URIs must follow the format: [scheme]://[auth@]host[:port][/path][?params]
	ErrInvalidLocationURI = errors.New("invalid storage location URI")

	// ErrInvalidRecordKey is returned for keys that are not safe to use as paths.
	ErrInvalidRecordKey = errors.New("invalid record key")
)

// StorageBackend provides keyed record storage. Storing under an existing key replaces the record.
type StorageBackend interface {
	// Fetch retrieves data by key and type.
	Fetch(ctx context.Context, key RecordKey, contentType ContentType) ([]byte, error)

	// Store saves data under the key.
	Store(ctx context.Context, key RecordKey, data []byte, contentType ContentType) error

	// Available checks if backend is accessible.
	Available(ctx context.Context) bool

	// Name returns identifier for logging.
	Name() string

	// LocationURI returns URI identifying this backend.
	LocationURI() string
}

// StorageBackendFactory creates storage backends.
type StorageBackendFactory interface {
	// StorageBackendFor creates backend from URI.
	// Supports file://, s3://, vault://
	StorageBackendFor(locationURI StorageBackendLocation) (StorageBackend, error)

	// CreateMultiBackend creates aggregated storage backend.
	CreateMultiBackend(locationURIs []StorageBackendLocation) (StorageBackend, error)
}
