// Package wizardconfig loads the static configuration of the Premium App wizard.
//
// The configuration names the objects the wizard provisions (the provisioning
// catalog), the permissions and OAuth scopes required to install or uninstall
// them, and the environment and language defaults of the wizard UI. The wizard
// engine consumes all of it; the post-install hook only uses the catalog to
// find the names the provisioned objects were given.
//
// A default configuration is embedded in the binary:
//
//	cfg, err := wizardconfig.Default()
//	name, ok := cfg.ProvisioningInfo.FirstName(interfaces.ObjectTypeOAuthClient)
//
// Custom configurations are YAML documents with the same layout, loaded with Load.
package wizardconfig
