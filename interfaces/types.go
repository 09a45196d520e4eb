// Package interfaces defines the core interfaces and types shared by the wizard hook,
// the wizard configuration and the reference deployment backend.
package interfaces

import (
	"fmt"
	"strconv"
)

// ObjectType names a kind of platform object the wizard provisions.
// It keys the provisioning catalog, the installed data and the permission tables.
type ObjectType string

const (
	ObjectTypeRole              ObjectType = "role"
	ObjectTypeGroup             ObjectType = "group"
	ObjectTypeAppInstance       ObjectType = "app-instance"
	ObjectTypeWidgetInstance    ObjectType = "widget-instance"
	ObjectTypeInteractionWidget ObjectType = "interaction-widget"
	ObjectTypeOAuthClient       ObjectType = "oauth-client"
	ObjectTypeWidgetDeployment  ObjectType = "widget-deployment"
	ObjectTypeOpenMessaging     ObjectType = "open-messaging"
	ObjectTypeWSDataActions     ObjectType = "ws-data-actions"
	ObjectTypeGCDataActions     ObjectType = "gc-data-actions"
	ObjectTypeDataTable         ObjectType = "data-table"
	ObjectTypeBYOCCloudTrunk    ObjectType = "byoc-cloud-trunk"
	ObjectTypeAudioHook         ObjectType = "audiohook"
	ObjectTypeEventBridge       ObjectType = "event-bridge"
	ObjectTypeRouting           ObjectType = "routing"
)

// Permission table entries that are not object types.
const (
	PermissionKeyCustom          ObjectType = "custom"
	PermissionKeyWizard          ObjectType = "wizard"
	PermissionKeyPostCustomSetup ObjectType = "postCustomSetup"
)

// CatalogResolver resolves the name the wizard gave to the object of a given type.
type CatalogResolver interface {
	// FirstName returns the name of the first template registered for the type.
	FirstName(objectType ObjectType) (string, bool)
}

// InstalledObjects is what the wizard engine reports after provisioning:
// object type -> object name -> platform-assigned attributes (id, secret, ...).
type InstalledObjects map[ObjectType]map[string]map[string]any

// Attribute reads an attribute of the object provisioned for objectType.
// The object name comes from the catalog so callers never hardcode it.
// Strings are returned as-is, numbers and booleans are formatted. Absent,
// nil and empty values report false.
func (o InstalledObjects) Attribute(catalog CatalogResolver, objectType ObjectType, key string) (string, bool) {
	if catalog == nil {
		return "", false
	}
	name, ok := catalog.FirstName(objectType)
	if !ok {
		return "", false
	}
	attrs, ok := o[objectType][name]
	if !ok {
		return "", false
	}

	var value string
	switch v := attrs[key].(type) {
	case nil:
		return "", false
	case string:
		value = v
	case bool:
		value = strconv.FormatBool(v)
	case float64:
		value = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		value = strconv.Itoa(v)
	case int64:
		value = strconv.FormatInt(v, 10)
	case fmt.Stringer:
		value = v.String()
	default:
		value = fmt.Sprint(v)
	}
	return value, value != ""
}

// PlatformConfig is the configuration of an authenticated platform API session.
type PlatformConfig struct {
	Environment string `json:"environment"`
	BasePath    string `json:"basePath"`
	AuthURL     string `json:"authUrl"`
}

// PlatformClient is the authenticated platform client handed to the hook.
type PlatformClient interface {
	// ClientConfig returns nil when the client carries no configuration.
	ClientConfig() *PlatformConfig
}

// PlatformSession is a PlatformClient decoded from the wizard engine's client handle.
type PlatformSession struct {
	Config *PlatformConfig `json:"config"`
}

// ClientConfig implements PlatformClient.
func (s *PlatformSession) ClientConfig() *PlatformConfig {
	if s == nil {
		return nil
	}
	return s.Config
}

// Organization is the platform organization the operator belongs to.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserContext describes the operator running the wizard.
type UserContext struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	Organization *Organization `json:"organization"`
}

// Outcome is the result reported back to the wizard engine. The engine only
// inspects Status; Cause is shown to the operator.
type Outcome struct {
	Status bool   `json:"status"`
	Cause  string `json:"cause"`
}

// LogFunc receives progress messages for the wizard's install log.
type LogFunc func(msg string)
