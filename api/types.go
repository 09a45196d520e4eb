package api

import (
	"context"
	"fmt"
)

// DefaultDeployServerAddr is the deployment backend notified after installation.
const DefaultDeployServerAddr = "https://deploy-pca.bluegillapp.com"

// ProvisionPath is the deployment backend endpoint receiving ProvisionRequest.
const ProvisionPath = "/provision"

// ProvisionRequest is the body POSTed to the deployment backend once the wizard
// has provisioned every platform object. Every field is mandatory; the order of
// the fields is the order in which missing values are reported.
type ProvisionRequest struct {
	// Platform API session the backend should talk to
	APIEnvironment string `json:"apiEnvironment" validate:"required"`
	APIBase        string `json:"apiBase" validate:"required"`
	APIAuth        string `json:"apiAuth" validate:"required"`

	// Customer organization and the operator who ran the wizard
	OrgID             string `json:"orgId" validate:"required"`
	OrgName           string `json:"orgName" validate:"required"`
	RequestorID       string `json:"requestorId" validate:"required"`
	RequestorName     string `json:"requestorName" validate:"required"`
	RequestorUsername string `json:"requestorUsername" validate:"required"`
	RequestorEmail    string `json:"requestorEmail" validate:"required"`

	// Credentials of the client-credentials OAuth client created by the wizard
	OAuthClientID     string `json:"oauthClientId" validate:"required"`
	OAuthClientSecret string `json:"oauthClientSecret" validate:"required"`

	OpenMessagingIntegrationID string `json:"openMessagingIntegrationId" validate:"required"`
}

// Registration is what the deployment backend keeps about a provisioned
// organization. It never carries the OAuth client secret.
type Registration struct {
	ProvisionRequest
	// shadows the embedded secret so it is never encoded
	OAuthClientSecret string `json:"oauthClientSecret,omitempty"`

	RequestID     string `json:"requestId"`
	ProvisionedAt string `json:"provisionedAt"`
}

// NewRegistration strips the secret from req.
func NewRegistration(req *ProvisionRequest, requestID, provisionedAt string) *Registration {
	reg := &Registration{
		ProvisionRequest: *req,
		RequestID:        requestID,
		ProvisionedAt:    provisionedAt,
	}
	reg.ProvisionRequest.OAuthClientSecret = ""
	return reg
}

// ProvisionResponse is returned by the reference deployment backend on success.
type ProvisionResponse struct {
	Status    string `json:"status"`
	OrgID     string `json:"orgId"`
	RequestID string `json:"requestId"`
}

// DeployProvider delivers provisioning requests to the deployment backend.
type DeployProvider interface {
	// Provision sends req and returns nil only on HTTP 200.
	// Non-200 responses are reported as *BackendError.
	Provision(ctx context.Context, req *ProvisionRequest) error
}

// BackendError is a non-200 answer from the deployment backend.
type BackendError struct {
	StatusCode int
	Body       string
}

// Error formats the status code and raw response body.
func (e *BackendError) Error() string {
	return fmt.Sprintf("Backend error: %d - %s", e.StatusCode, e.Body)
}
