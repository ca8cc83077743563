// Package credential loads Azure service principal credentials from the
// environment or from the shared credentials file.
package credential

import (
	"os"
	"path/filepath"

	"github.com/Azure/go-autorest/autorest/azure/auth"
	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	ini "gopkg.in/ini.v1"
)

const (
	// DefaultProfile is the credentials file section used when no profile is
	// selected.
	DefaultProfile = "default"

	EnvSubscriptionID = "AZURE_SUBSCRIPTION_ID"
	EnvClientID       = "AZURE_CLIENT_ID"
	EnvSecret         = "AZURE_SECRET"
	EnvTenant         = "AZURE_TENANT"

	fileKeySubscriptionID = "subscription_id"
	fileKeyClientID       = "client_id"
	fileKeySecret         = "secret"
	fileKeyTenant         = "tenant"

	defaultPartnerGUID = "37f13270-5c7a-56ff-9211-8426baaeaabd"
)

// Configuration contains the attributes needed to authenticate against the
// Azure Resource Manager API.
type Configuration struct {
	// ClientID is the ID of the Active Directory Service Principal.
	ClientID string
	// ClientSecret is the secret of the Active Directory Service Principal.
	ClientSecret string
	// SubscriptionID is the ID of the Azure subscription.
	SubscriptionID string
	// TenantID is the ID of the Active Directory tenant.
	TenantID string
	// PartnerID is the ID used for the Azure Partner Program.
	PartnerID string
}

func (c Configuration) Validate() error {
	if c.ClientID == "" {
		return microerror.Maskf(invalidConfigError, "%T.ClientID must not be empty", c)
	}
	if c.ClientSecret == "" {
		return microerror.Maskf(invalidConfigError, "%T.ClientSecret must not be empty", c)
	}
	if c.SubscriptionID == "" {
		return microerror.Maskf(invalidConfigError, "%T.SubscriptionID must not be empty", c)
	}
	if c.TenantID == "" {
		return microerror.Maskf(invalidConfigError, "%T.TenantID must not be empty", c)
	}

	return nil
}

// ClientCredentialsConfig returns the go-autorest client credentials
// configuration for this service principal.
func (c Configuration) ClientCredentialsConfig() auth.ClientCredentialsConfig {
	return auth.NewClientCredentialsConfig(c.ClientID, c.ClientSecret, c.TenantID)
}

// Provider looks up the credential configuration for a named profile.
type Provider interface {
	GetConfiguration(profile string) (Configuration, error)
}

type DefaultProviderConfig struct {
	Logger micrologger.Logger

	// FilePath overrides the location of the credentials file. Defaults to
	// ~/.azure/credentials.
	FilePath string
}

// DefaultProvider reads the four AZURE_* environment variables and falls back
// to the profile section of the credentials file when any of them is missing.
type DefaultProvider struct {
	logger micrologger.Logger

	filePath string
}

func NewDefaultProvider(config DefaultProviderConfig) (*DefaultProvider, error) {
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}

	filePath := config.FilePath
	if filePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, microerror.Mask(err)
		}
		filePath = filepath.Join(home, ".azure", "credentials")
	}

	p := &DefaultProvider{
		logger: config.Logger,

		filePath: filePath,
	}

	return p, nil
}

func (p *DefaultProvider) GetConfiguration(profile string) (Configuration, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	c, ok := fromEnvironment()
	if ok {
		return c, nil
	}

	c, err := p.fromFile(profile)
	if err != nil {
		return Configuration{}, microerror.Mask(err)
	}

	return c, nil
}

func fromEnvironment() (Configuration, bool) {
	c := Configuration{
		ClientID:       os.Getenv(EnvClientID),
		ClientSecret:   os.Getenv(EnvSecret),
		SubscriptionID: os.Getenv(EnvSubscriptionID),
		TenantID:       os.Getenv(EnvTenant),
		PartnerID:      defaultPartnerGUID,
	}

	if c.ClientID == "" || c.ClientSecret == "" || c.SubscriptionID == "" || c.TenantID == "" {
		return Configuration{}, false
	}

	return c, true
}

func (p *DefaultProvider) fromFile(profile string) (Configuration, error) {
	f, err := ini.Load(p.filePath)
	if err != nil {
		return Configuration{}, microerror.Maskf(credentialsNotFoundError, "reading %#q: %s", p.filePath, err)
	}

	section, err := f.GetSection(profile)
	if err != nil {
		return Configuration{}, microerror.Maskf(credentialsNotFoundError, "profile %#q not found in %#q", profile, p.filePath)
	}

	c := Configuration{
		ClientID:       section.Key(fileKeyClientID).String(),
		ClientSecret:   section.Key(fileKeySecret).String(),
		SubscriptionID: section.Key(fileKeySubscriptionID).String(),
		TenantID:       section.Key(fileKeyTenant).String(),
		PartnerID:      defaultPartnerGUID,
	}

	err = c.Validate()
	if err != nil {
		return Configuration{}, microerror.Maskf(credentialsNotFoundError, "profile %#q in %#q is incomplete", profile, p.filePath)
	}

	return c, nil
}
