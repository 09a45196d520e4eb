package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bluegilltech/pca-wizard/api"
	"github.com/bluegilltech/pca-wizard/interfaces"
	"github.com/stretchr/testify/mock"
)

// RegistrationProvider looks up what the deployment backend recorded for an organization.
type RegistrationProvider interface {
	Registration(ctx context.Context, orgID string) (*api.Registration, error)
}

// RegistrationClient implements RegistrationProvider over the deployment backend's HTTP API.
type RegistrationClient struct {
	// ServerAddr is the base URL of the deployment backend
	ServerAddr string
}

// Registration fetches the registration of orgID.
// Returns interfaces.ErrContentNotFound when the organization was never provisioned.
func (c *RegistrationClient) Registration(ctx context.Context, orgID string) (*api.Registration, error) {
	endpoint := fmt.Sprintf("%s/registrations/%s", strings.TrimRight(c.ServerAddr, "/"), url.PathEscape(orgID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not request registration endpoint: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: organization %s", interfaces.ErrContentNotFound, orgID)
	case resp.StatusCode != http.StatusOK:
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("registration endpoint returned non-200 response: %d", resp.StatusCode)
		}
		return nil, &api.BackendError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var registration api.Registration
	if err := json.NewDecoder(resp.Body).Decode(&registration); err != nil {
		return nil, fmt.Errorf("could not parse registration response: %w", err)
	}
	return &registration, nil
}

// MockRegistrationProvider implements a mock RegistrationProvider for testing.
type MockRegistrationProvider struct {
	mock.Mock
}

func (m *MockRegistrationProvider) Registration(ctx context.Context, orgID string) (*api.Registration, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Registration), args.Error(1)
}
