package postsetup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bluegilltech/pca-wizard/api"
	"github.com/bluegilltech/pca-wizard/common"
	"github.com/bluegilltech/pca-wizard/interfaces"
)

// ProvisioningInfoKey identifies this hook to the wizard engine.
const ProvisioningInfoKey = "post-custom-setup"

const (
	startMessage = "Post Custom Setup..."

	CauseSuccess             = "SUCCESS"
	CauseMissingClientConfig = "Missing gcClient.config"
	CauseMissingUserInfo     = "Missing user or organization info"
)

var (
	// ErrMissingClientConfig is returned when the platform client has no configuration.
	ErrMissingClientConfig = errors.New("platform client has no configuration")

	// ErrMissingUserInfo is returned when the operator or their organization is not identified.
	ErrMissingUserInfo = errors.New("user or organization is not identified")
)

// Notifier is the post-custom-setup hook. After the wizard engine has
// provisioned every platform object it registers the installation with the
// deployment backend.
type Notifier struct {
	catalog  interfaces.CatalogResolver
	provider api.DeployProvider
	log      *slog.Logger
}

// NewNotifier creates the hook.
//
// Parameters:
//   - catalog: resolves the names the wizard gave to provisioned objects
//   - provider: delivers the request; nil targets the production deployment backend
//   - log: diagnostics only, the wizard engine never sees these records
func NewNotifier(catalog interfaces.CatalogResolver, provider api.DeployProvider, log *slog.Logger) *Notifier {
	if provider == nil {
		provider = NewDeployClient(api.DefaultDeployServerAddr)
	}
	if log == nil {
		log = common.DiscardLogger()
	}
	return &Notifier{
		catalog:  catalog,
		provider: provider,
		log:      log,
	}
}

// ProvisioningInfoKey returns the key the wizard engine registers this hook under.
func (n *Notifier) ProvisioningInfoKey() string {
	return ProvisioningInfoKey
}

// Configure validates its inputs, builds the provision request and sends it
// to the deployment backend. It never panics and never returns an error: every
// failure is reported through the returned Outcome.
func (n *Notifier) Configure(ctx context.Context, logFunc interfaces.LogFunc, installed interfaces.InstalledObjects, user *interfaces.UserContext, client interfaces.PlatformClient) (outcome interfaces.Outcome) {
	if logFunc != nil {
		logFunc(startMessage)
	}

	defer func() {
		if r := recover(); r != nil {
			n.log.Error("Exception during configure", "panic", r)
			outcome = interfaces.Outcome{Status: false, Cause: fmt.Sprintf("Exception: %v", r)}
		}
	}()

	req, err := n.BuildRequest(installed, user, client)
	if err == nil {
		err = n.provider.Provision(ctx, req)
	}
	if err != nil {
		return n.failure(err)
	}

	n.log.Info("Installation registered with deployment backend", "orgId", req.OrgID, "requestorId", req.RequestorID)
	return interfaces.Outcome{Status: true, Cause: CauseSuccess}
}

// BuildRequest assembles and validates the provision request.
//
// Returns ErrMissingClientConfig, ErrMissingUserInfo or *api.MissingFieldError
// naming the first empty field.
func (n *Notifier) BuildRequest(installed interfaces.InstalledObjects, user *interfaces.UserContext, client interfaces.PlatformClient) (*api.ProvisionRequest, error) {
	var platform *interfaces.PlatformConfig
	if client != nil {
		platform = client.ClientConfig()
	}
	if platform == nil {
		return nil, ErrMissingClientConfig
	}
	if user == nil || user.Organization == nil || user.Organization.ID == "" || user.Organization.Name == "" || user.ID == "" {
		return nil, ErrMissingUserInfo
	}

	installedValue := func(objectType interfaces.ObjectType, key string) string {
		value, _ := installed.Attribute(n.catalog, objectType, key)
		return value
	}

	req := &api.ProvisionRequest{
		APIEnvironment:             platform.Environment,
		APIBase:                    platform.BasePath,
		APIAuth:                    platform.AuthURL,
		OrgID:                      user.Organization.ID,
		OrgName:                    user.Organization.Name,
		RequestorID:                user.ID,
		RequestorName:              user.Name,
		RequestorUsername:          user.Username,
		RequestorEmail:             user.Email,
		OAuthClientID:              installedValue(interfaces.ObjectTypeOAuthClient, "id"),
		OAuthClientSecret:          installedValue(interfaces.ObjectTypeOAuthClient, "secret"),
		OpenMessagingIntegrationID: installedValue(interfaces.ObjectTypeOpenMessaging, "id"),
	}

	if err := api.ValidateProvisionRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

func (n *Notifier) failure(err error) interfaces.Outcome {
	var (
		missing    *api.MissingFieldError
		backendErr *api.BackendError
		cause      string
	)
	switch {
	case errors.Is(err, ErrMissingClientConfig):
		cause = CauseMissingClientConfig
	case errors.Is(err, ErrMissingUserInfo):
		cause = CauseMissingUserInfo
	case errors.As(err, &missing):
		cause = missing.Error()
	case errors.As(err, &backendErr):
		cause = backendErr.Error()
		n.log.Warn("Deployment backend rejected installation", "status", backendErr.StatusCode)
	default:
		cause = fmt.Sprintf("Exception: %s", err.Error())
		n.log.Error("Exception during configure", "err", err)
	}
	return interfaces.Outcome{Status: false, Cause: cause}
}
