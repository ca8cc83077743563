package loadbalancer

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2019-11-01/network"
	"github.com/Azure/azure-sdk-for-go/services/resources/mgmt/2019-05-01/resources"
	"github.com/giantswarm/microerror"
)

type apiMock struct {
	group        resources.Group
	loadBalancer *network.LoadBalancer
	publicIPs    map[string]network.PublicIPAddress
	subnets      map[string]network.Subnet

	createdOrUpdated *network.LoadBalancer
	deleted          bool
}

func (m *apiMock) GetResourceGroup(ctx context.Context, name string) (resources.Group, error) {
	return m.group, nil
}

func (m *apiMock) GetLoadBalancer(ctx context.Context, resourceGroup, name string) (network.LoadBalancer, error) {
	if m.loadBalancer == nil {
		return network.LoadBalancer{}, microerror.Maskf(notFoundError, "load balancer %#q", name)
	}
	return *m.loadBalancer, nil
}

func (m *apiMock) CreateOrUpdateLoadBalancer(ctx context.Context, resourceGroup, name string, loadBalancer network.LoadBalancer) error {
	m.createdOrUpdated = &loadBalancer
	return nil
}

func (m *apiMock) DeleteLoadBalancer(ctx context.Context, resourceGroup, name string) error {
	if m.loadBalancer == nil {
		return microerror.Maskf(notFoundError, "load balancer %#q", name)
	}
	m.deleted = true
	return nil
}

func (m *apiMock) GetPublicIPAddress(ctx context.Context, resourceGroup, name string) (network.PublicIPAddress, error) {
	ip, ok := m.publicIPs[name]
	if !ok {
		return network.PublicIPAddress{}, microerror.Maskf(notFoundError, "public ip address %#q", name)
	}
	return ip, nil
}

func (m *apiMock) GetSubnet(ctx context.Context, resourceGroup, virtualNetwork, name string) (network.Subnet, error) {
	subnet, ok := m.subnets[name]
	if !ok {
		return network.Subnet{}, microerror.Maskf(notFoundError, "subnet %#q", name)
	}
	return subnet, nil
}
