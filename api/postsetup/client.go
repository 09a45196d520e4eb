package postsetup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bluegilltech/pca-wizard/api"
	"github.com/stretchr/testify/mock"
)

// DeployClient implements api.DeployProvider against a remote deployment backend.
type DeployClient struct {
	// ServerAddr is the base URL of the deployment backend
	ServerAddr string

	// HTTPClient defaults to http.DefaultClient. No timeout is set here; the
	// caller's context bounds the request.
	HTTPClient *http.Client
}

// NewDeployClient returns a client for serverAddr, or for the production
// deployment backend when serverAddr is empty.
func NewDeployClient(serverAddr string) *DeployClient {
	if serverAddr == "" {
		serverAddr = api.DefaultDeployServerAddr
	}
	return &DeployClient{ServerAddr: serverAddr}
}

// Provision POSTs the request as JSON to the backend's provision endpoint.
// The response body is ignored on 200 and returned inside *api.BackendError otherwise.
func (c *DeployClient) Provision(ctx context.Context, req *api.ProvisionRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("could not encode provision request: %w", err)
	}

	url := strings.TrimSuffix(c.ServerAddr, "/") + api.ProvisionPath
	provisionReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	provisionReq.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(provisionReq)
	if err != nil {
		return fmt.Errorf("could not request provision endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("provision endpoint returned non-200 response %d: could not read body: %w", resp.StatusCode, err)
		}
		return &api.BackendError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// MockDeployProvider implements a mock api.DeployProvider for testing.
type MockDeployProvider struct {
	mock.Mock
}

// Provision implements the api.DeployProvider interface for testing.
// The behavior is determined by how the mock is configured in tests.
func (m *MockDeployProvider) Provision(ctx context.Context, req *api.ProvisionRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
