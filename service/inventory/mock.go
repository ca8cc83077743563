package inventory

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2019-07-01/compute"
	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2019-11-01/network"
	"github.com/giantswarm/microerror"
)

type apiMock struct {
	vms           []compute.VirtualMachine
	instanceViews map[string]compute.VirtualMachine
	interfaces    map[string]network.Interface
	publicIPs     map[string]network.PublicIPAddress

	listErr error
}

func (m *apiMock) ListVirtualMachines(ctx context.Context, resourceGroup string) ([]compute.VirtualMachine, error) {
	if m.listErr != nil {
		return nil, microerror.Mask(m.listErr)
	}
	return m.vms, nil
}

func (m *apiMock) GetVirtualMachineInstanceView(ctx context.Context, resourceGroup, name string) (compute.VirtualMachine, error) {
	vm, ok := m.instanceViews[name]
	if !ok {
		return compute.VirtualMachine{}, microerror.Maskf(notFoundError, "VM %#q", name)
	}
	return vm, nil
}

func (m *apiMock) GetNetworkInterface(ctx context.Context, resourceGroup, name string) (network.Interface, error) {
	networkInterface, ok := m.interfaces[name]
	if !ok {
		return network.Interface{}, microerror.Maskf(notFoundError, "network interface %#q", name)
	}
	return networkInterface, nil
}

func (m *apiMock) GetPublicIPAddress(ctx context.Context, resourceGroup, name string) (network.PublicIPAddress, error) {
	publicIPAddress, ok := m.publicIPs[name]
	if !ok {
		return network.PublicIPAddress{}, microerror.Maskf(notFoundError, "public ip address %#q", name)
	}
	return publicIPAddress, nil
}
