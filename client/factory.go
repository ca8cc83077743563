package client

import (
	"fmt"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2019-07-01/compute"
	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2019-11-01/network"
	"github.com/Azure/azure-sdk-for-go/services/resources/mgmt/2019-05-01/resources"
	"github.com/Azure/azure-sdk-for-go/services/trafficmanager/mgmt/2018-04-01/trafficmanager"
	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	gocache "github.com/patrickmn/go-cache"

	"github.com/giantswarm/azure-automation/pkg/credential"
)

const (
	cacheHitLogKey   = "cacheHit"
	clientTypeLogKey = "clientType"
	logLevelLogKey   = "level"
	logLevelDebug    = "debug"
	messageLogKey    = "message"
	profileLogKey    = "profile"
)

type FactoryConfig struct {
	CacheDuration      time.Duration
	CredentialProvider credential.Provider
	Logger             micrologger.Logger
}

// Factory creates Azure API clients for a credential profile. Created clients
// are cached so repeated lookups within one run return the same client.
type Factory struct {
	credentialProvider credential.Provider
	logger             micrologger.Logger
	mutex              sync.Mutex

	// map [profile + client type] -> client
	cachedClients *gocache.Cache
}

func NewFactory(config FactoryConfig) (*Factory, error) {
	if config.CacheDuration < 5*time.Minute {
		return nil, microerror.Maskf(invalidConfigError, "%T.CacheDuration must be at least 5 minutes", config)
	}
	if config.CredentialProvider == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.CredentialProvider must not be empty", config)
	}
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}

	factory := &Factory{
		credentialProvider: config.CredentialProvider,
		logger:             config.Logger,
		cachedClients:      gocache.New(config.CacheDuration, 2*config.CacheDuration),
	}

	factory.cachedClients.OnEvicted(func(clientKey string, i interface{}) {
		factory.onEvicted(clientKey)
	})

	return factory, nil
}

// GetGroupsClient returns GroupsClient that is used to read resource groups,
// e.g. to resolve a default location.
func (f *Factory) GetGroupsClient(profile string) (*resources.GroupsClient, error) {
	client, err := f.getClient(profile, "GroupsClient", newGroupsClient)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return toGroupsClient(client), nil
}

// GetInterfacesClient returns InterfacesClient that is used to resolve
// virtual machine network interfaces.
func (f *Factory) GetInterfacesClient(profile string) (*network.InterfacesClient, error) {
	client, err := f.getClient(profile, "InterfacesClient", newInterfacesClient)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return toInterfacesClient(client), nil
}

// GetLoadBalancersClient returns LoadBalancersClient that is used for
// management of load balancers and their sub-resources.
func (f *Factory) GetLoadBalancersClient(profile string) (*network.LoadBalancersClient, error) {
	client, err := f.getClient(profile, "LoadBalancersClient", newLoadBalancersClient)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return toLoadBalancersClient(client), nil
}

// GetPublicIPAddressesClient returns PublicIpAddressesClient that is used to
// read public IP addresses.
func (f *Factory) GetPublicIPAddressesClient(profile string) (*network.PublicIPAddressesClient, error) {
	client, err := f.getClient(profile, "PublicIPAddressesClient", newPublicIPAddressesClient)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return toPublicIPAddressesClient(client), nil
}

// GetSubnetsClient returns SubnetsClient that is used to read subnets.
func (f *Factory) GetSubnetsClient(profile string) (*network.SubnetsClient, error) {
	client, err := f.getClient(profile, "SubnetsClient", newSubnetsClient)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return toSubnetsClient(client), nil
}

// GetTrafficManagerProfilesClient returns ProfilesClient that is used for
// management of Traffic Manager profiles.
func (f *Factory) GetTrafficManagerProfilesClient(profile string) (*trafficmanager.ProfilesClient, error) {
	client, err := f.getClient(profile, "TrafficManagerProfilesClient", newTrafficManagerProfilesClient)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return toTrafficManagerProfilesClient(client), nil
}

// GetVirtualMachinesClient returns VirtualMachinesClient that is used to list
// virtual machines and their instance views.
func (f *Factory) GetVirtualMachinesClient(profile string) (*compute.VirtualMachinesClient, error) {
	client, err := f.getClient(profile, "VirtualMachinesClient", newVirtualMachinesClient)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return toVirtualMachinesClient(client), nil
}

func (f *Factory) getClient(profile, clientType string, createClient clientCreatorFunc) (interface{}, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	clientKey := clientKey(profile, clientType)
	var client interface{}

	cachedClient, ok := f.cachedClients.Get(clientKey)
	if ok {
		client = cachedClient
	} else {
		c, err := f.credentialProvider.GetConfiguration(profile)
		if err != nil {
			return nil, microerror.Mask(err)
		}

		authorizer, err := c.ClientCredentialsConfig().Authorizer()
		if err != nil {
			return nil, microerror.Mask(err)
		}

		client, err = createClient(authorizer, c.SubscriptionID, c.PartnerID)
		if err != nil {
			return nil, microerror.Mask(err)
		}

		f.cachedClients.SetDefault(clientKey, client)
	}

	f.logger.Log(
		logLevelLogKey, logLevelDebug,
		messageLogKey, "client fetched",
		cacheHitLogKey, ok,
		clientTypeLogKey, clientType,
		profileLogKey, profile)

	return client, nil
}

func (f *Factory) onEvicted(clientKey string) {
	f.logger.Log(
		logLevelLogKey, logLevelDebug,
		messageLogKey, "client evicted",
		"clientKey", clientKey)
}

func clientKey(profile, clientType string) string {
	return fmt.Sprintf("%s.%s", profile, clientType)
}
