// Package storage provides the storage backends of the reference deployment
// backend.
//
// Each provisioning request produces two records, both keyed by the customer
// organization id:
//
//   - a registration (content type "registration") with everything the wizard
//     sent except the OAuth client secret
//   - the OAuth client secret (content type "secret")
//
// Storing a record under an existing key replaces it, so re-running the wizard
// for the same organization updates its registration.
//
// # Backends
//
//   - FileBackend: file:///var/lib/pca-wizard
//   - S3Backend: s3://[ACCESS_KEY:SECRET_KEY@]bucket/prefix?region=eu-west-1&endpoint=minio:9000
//   - VaultBackend: vault://vault.internal:8200/secret/pca-wizard (token from VAULT_TOKEN)
//   - MultiStorageBackend: writes to every available backend, reads from the first that has the record
//
// StorageBackendFactory builds backends from location URIs:
//
//	factory := storage.NewStorageBackendFactory(logger)
//	loc, _ := interfaces.NewStorageBackendLocation("file:///var/lib/pca-wizard")
//	backend, err := factory.StorageBackendFor(loc)
package storage
