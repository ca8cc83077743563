package main

import (
	"os"
	"time"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	"github.com/spf13/viper"

	"github.com/giantswarm/azure-automation/client"
	"github.com/giantswarm/azure-automation/pkg/credential"
)

// dependencies bundles the wiring every subcommand needs: a logger writing
// to stderr so stdout stays parseable, the credential provider and the
// Azure client factory.
type dependencies struct {
	logger         micrologger.Logger
	clientFactory  *client.Factory
	profile        string
	subscriptionID string
}

func newDependencies(v *viper.Viper) (*dependencies, error) {
	var err error

	var logger micrologger.Logger
	{
		c := micrologger.Config{
			IOWriter: os.Stderr,
		}

		logger, err = micrologger.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var credentialProvider credential.Provider
	{
		c := credential.DefaultProviderConfig{
			Logger: logger,
		}

		credentialProvider, err = credential.NewDefaultProvider(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var clientFactory *client.Factory
	{
		c := client.FactoryConfig{
			CacheDuration:      30 * time.Minute,
			CredentialProvider: credentialProvider,
			Logger:             logger,
		}

		clientFactory, err = client.NewFactory(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	profile := v.GetString(flagProfile)

	configuration, err := credentialProvider.GetConfiguration(profile)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	d := &dependencies{
		logger:         logger,
		clientFactory:  clientFactory,
		profile:        profile,
		subscriptionID: configuration.SubscriptionID,
	}

	return d, nil
}

func readSpecFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return raw, nil
}
