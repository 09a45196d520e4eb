package wizardconfig

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/bluegilltech/pca-wizard/interfaces"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigYAML []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

// Install permission checks performed by the wizard before provisioning.
const (
	CheckPermissionsAll     = "all"
	CheckPermissionsPremium = "premium"
	CheckPermissionsWizard  = "wizard"
	CheckPermissionsNone    = "none"
)

// ObjectTemplate describes one object the wizard provisions. Fields holds the
// type-specific attributes (scopes, urls, permission policies, ...) verbatim.
type ObjectTemplate struct {
	Name        string         `yaml:"name" validate:"required"`
	Description string         `yaml:"description"`
	Fields      map[string]any `yaml:",inline"`
}

// Catalog maps an object type to the ordered templates provisioned for it.
type Catalog map[interfaces.ObjectType][]ObjectTemplate

// FirstName implements interfaces.CatalogResolver.
func (c Catalog) FirstName(objectType interfaces.ObjectType) (string, bool) {
	templates := c[objectType]
	if len(templates) == 0 || templates[0].Name == "" {
		return "", false
	}
	return templates[0].Name, true
}

// Types returns the object types of the catalog in lexical order.
func (c Catalog) Types() []interfaces.ObjectType {
	types := make([]interfaces.ObjectType, 0, len(c))
	for t := range c {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// PermissionTable lists permissions or scopes per object type.
type PermissionTable map[interfaces.ObjectType][]string

// WizardConfig is the static configuration of the Premium App wizard. It is
// loaded once and treated as read-only afterwards.
type WizardConfig struct {
	ClientID      string `yaml:"clientId" validate:"required"`
	WizardURIBase string `yaml:"wizardUriBase" validate:"required,url"`

	RedirectURLOnWizardCompleted string `yaml:"redirectUrlOnWizardCompleted" validate:"required,url"`
	RedirectURLWithParams        bool   `yaml:"redirectUrlWithParams"`

	PremiumAppIntegrationTypeID    string `yaml:"premiumAppIntegrationTypeId" validate:"required"`
	PremiumWidgetIntegrationTypeID string `yaml:"premiumWidgetIntegrationTypeId"`
	PremiumAppViewPermission       string `yaml:"premiumAppViewPermission" validate:"required"`

	CheckInstallPermissions string `yaml:"checkInstallPermissions" validate:"oneof=all premium wizard none"`
	CheckProductBYOC        bool   `yaml:"checkProductByoc"`

	DefaultGcEnvironment    string            `yaml:"defaultGcEnvironment" validate:"required,fqdn"`
	DefaultLanguage         string            `yaml:"defaultLanguage" validate:"required"`
	AvailableLanguageAssets map[string]string `yaml:"availableLanguageAssets" validate:"required,min=1"`
	EnableLanguageSelection bool              `yaml:"enableLanguageSelection"`

	LanguageQueryParam                string `yaml:"languageQueryParam"`
	GenesysCloudEnvironmentQueryParam string `yaml:"genesysCloudEnvironmentQueryParam"`
	GenesysCloudHostOriginQueryParam  string `yaml:"genesysCloudHostOriginQueryParam"`
	GenesysCloudTargetEnvQueryParam   string `yaml:"genesysCloudTargetEnvQueryParam"`

	EnableCustomSetupPageBeforeInstall bool `yaml:"enableCustomSetupPageBeforeInstall"`
	EnableCustomSetupStepAfterInstall  bool `yaml:"enableCustomSetupStepAfterInstall"`
	EnableDynamicInstallSummary        bool `yaml:"enableDynamicInstallSummary"`
	DisplaySummarySimplifiedData       bool `yaml:"displaySummarySimplifiedData"`
	EnableUninstall                    bool `yaml:"enableUninstall"`

	Prefix string `yaml:"prefix"`

	ProvisioningInfo Catalog `yaml:"provisioningInfo" validate:"required,min=1,dive,min=1,dive"`

	InstallPermissions   PermissionTable `yaml:"installPermissions" validate:"required"`
	UninstallPermissions PermissionTable `yaml:"uninstallPermissions" validate:"required"`
	InstallScopes        PermissionTable `yaml:"installScopes" validate:"required"`
	UninstallScopes      PermissionTable `yaml:"uninstallScopes" validate:"required"`
}

// Default returns the configuration shipped with the wizard.
func Default() (*WizardConfig, error) {
	return Parse(defaultConfigYAML)
}

// Load reads and validates a configuration file.
func Load(path string) (*WizardConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read wizard config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML configuration document.
func Parse(data []byte) (*WizardConfig, error) {
	var cfg WizardConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse wizard config: %w", err)
	}
	if cfg.CheckInstallPermissions == "" {
		cfg.CheckInstallPermissions = CheckPermissionsNone
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and the consistency between the catalog
// and the permission tables.
func (c *WizardConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid wizard config: %w", err)
	}

	var errs []error
	if _, ok := c.AvailableLanguageAssets[c.DefaultLanguage]; !ok {
		errs = append(errs, fmt.Errorf("default language %q has no language assets", c.DefaultLanguage))
	}

	tables := []struct {
		name  string
		table PermissionTable
	}{
		{"installPermissions", c.InstallPermissions},
		{"uninstallPermissions", c.UninstallPermissions},
		{"installScopes", c.InstallScopes},
		{"uninstallScopes", c.UninstallScopes},
	}
	for _, objectType := range c.ProvisioningInfo.Types() {
		for _, t := range tables {
			if _, ok := t.table[objectType]; !ok {
				errs = append(errs, fmt.Errorf("%s has no entry for provisioned type %q", t.name, objectType))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid wizard config: %w", errors.Join(errs...))
	}
	return nil
}

// PermissionsFor returns the permissions the operator needs for one object type.
func (c *WizardConfig) PermissionsFor(objectType interfaces.ObjectType, install bool) []string {
	if install {
		return c.InstallPermissions[objectType]
	}
	return c.UninstallPermissions[objectType]
}

// ScopesFor returns the scopes the wizard OAuth client needs for one object type.
func (c *WizardConfig) ScopesFor(objectType interfaces.ObjectType, install bool) []string {
	if install {
		return c.InstallScopes[objectType]
	}
	return c.UninstallScopes[objectType]
}

// RequiredPermissions returns every permission needed to run an install (or
// uninstall) with this configuration, sorted and without duplicates.
func (c *WizardConfig) RequiredPermissions(install bool) []string {
	table := c.UninstallPermissions
	if install {
		table = c.InstallPermissions
	}
	return c.union(table)
}

// RequiredScopes is RequiredPermissions for OAuth scopes.
func (c *WizardConfig) RequiredScopes(install bool) []string {
	table := c.UninstallScopes
	if install {
		table = c.InstallScopes
	}
	return c.union(table)
}

func (c *WizardConfig) union(table PermissionTable) []string {
	keys := []interfaces.ObjectType{interfaces.PermissionKeyWizard}
	if c.EnableCustomSetupStepAfterInstall {
		keys = append(keys, interfaces.PermissionKeyPostCustomSetup)
	}
	keys = append(keys, c.ProvisioningInfo.Types()...)

	var all []string
	for _, k := range keys {
		all = append(all, table[k]...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}
