package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bluegilltech/pca-wizard/api"
	"github.com/bluegilltech/pca-wizard/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/registrations/org-1":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"orgId":"org-1","orgName":"Example Org","requestId":"req-1","provisionedAt":"2024-05-01T12:00:00Z"}`))
		case "/registrations/broken":
			http.Error(w, "Failed to fetch registration", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := &RegistrationClient{ServerAddr: srv.URL + "/"}

	reg, err := client.Registration(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, "Example Org", reg.OrgName)
	assert.Equal(t, "req-1", reg.RequestID)

	_, err = client.Registration(context.Background(), "org-2")
	assert.ErrorIs(t, err, interfaces.ErrContentNotFound)

	_, err = client.Registration(context.Background(), "broken")
	var backendErr *api.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusInternalServerError, backendErr.StatusCode)
}
