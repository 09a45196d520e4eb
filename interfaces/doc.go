// Package interfaces holds the types exchanged between the wizard engine, the
// post-install hook and the deployment backend.
//
// # Wizard Types
//
// InstalledObjects: objects the wizard engine provisioned, keyed by ObjectType
// and then by the name the provisioning catalog gave them.
//
// UserContext, Organization: the operator running the wizard.
//
// PlatformClient, PlatformConfig: the authenticated platform session. Only the
// environment, API base path and auth URL are read.
//
// Outcome: the status/cause pair every hook returns.
//
// # Storage Interfaces
//
// StorageBackend: keyed record storage for registrations and OAuth client
// secrets received by the deployment backend (file, S3, Vault).
//
// StorageBackendFactory: creates storage backends from URI strings and builds
// multi-backend configurations for redundant storage.
package interfaces
