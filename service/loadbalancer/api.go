package loadbalancer

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2019-11-01/network"
	"github.com/Azure/azure-sdk-for-go/services/resources/mgmt/2019-05-01/resources"
	"github.com/giantswarm/microerror"

	"github.com/giantswarm/azure-automation/client"
)

type api struct {
	clientFactory *client.Factory
	profile       string
}

// GetAPI returns an API implementation backed by the Azure SDK clients for
// the given credential profile.
func GetAPI(f *client.Factory, profile string) API {
	return &api{
		clientFactory: f,
		profile:       profile,
	}
}

func (a *api) GetResourceGroup(ctx context.Context, name string) (resources.Group, error) {
	groupsClient, err := a.clientFactory.GetGroupsClient(a.profile)
	if err != nil {
		return resources.Group{}, microerror.Mask(err)
	}

	group, err := groupsClient.Get(ctx, name)
	if err != nil {
		return resources.Group{}, microerror.Mask(err)
	}

	return group, nil
}

func (a *api) GetLoadBalancer(ctx context.Context, resourceGroup, name string) (network.LoadBalancer, error) {
	loadBalancersClient, err := a.clientFactory.GetLoadBalancersClient(a.profile)
	if err != nil {
		return network.LoadBalancer{}, microerror.Mask(err)
	}

	loadBalancer, err := loadBalancersClient.Get(ctx, resourceGroup, name, "")
	if err != nil {
		return network.LoadBalancer{}, microerror.Mask(err)
	}

	return loadBalancer, nil
}

func (a *api) CreateOrUpdateLoadBalancer(ctx context.Context, resourceGroup, name string, loadBalancer network.LoadBalancer) error {
	loadBalancersClient, err := a.clientFactory.GetLoadBalancersClient(a.profile)
	if err != nil {
		return microerror.Mask(err)
	}

	future, err := loadBalancersClient.CreateOrUpdate(ctx, resourceGroup, name, loadBalancer)
	if err != nil {
		return microerror.Mask(err)
	}

	err = future.WaitForCompletionRef(ctx, loadBalancersClient.Client)
	if err != nil {
		return microerror.Mask(err)
	}

	return nil
}

func (a *api) DeleteLoadBalancer(ctx context.Context, resourceGroup, name string) error {
	loadBalancersClient, err := a.clientFactory.GetLoadBalancersClient(a.profile)
	if err != nil {
		return microerror.Mask(err)
	}

	future, err := loadBalancersClient.Delete(ctx, resourceGroup, name)
	if err != nil {
		return microerror.Mask(err)
	}

	err = future.WaitForCompletionRef(ctx, loadBalancersClient.Client)
	if err != nil {
		return microerror.Mask(err)
	}

	return nil
}

func (a *api) GetPublicIPAddress(ctx context.Context, resourceGroup, name string) (network.PublicIPAddress, error) {
	publicIPAddressesClient, err := a.clientFactory.GetPublicIPAddressesClient(a.profile)
	if err != nil {
		return network.PublicIPAddress{}, microerror.Mask(err)
	}

	publicIPAddress, err := publicIPAddressesClient.Get(ctx, resourceGroup, name, "")
	if err != nil {
		return network.PublicIPAddress{}, microerror.Mask(err)
	}

	return publicIPAddress, nil
}

func (a *api) GetSubnet(ctx context.Context, resourceGroup, virtualNetwork, name string) (network.Subnet, error) {
	subnetsClient, err := a.clientFactory.GetSubnetsClient(a.profile)
	if err != nil {
		return network.Subnet{}, microerror.Mask(err)
	}

	subnet, err := subnetsClient.Get(ctx, resourceGroup, virtualNetwork, name, "")
	if err != nil {
		return network.Subnet{}, microerror.Mask(err)
	}

	return subnet, nil
}
