package inventory

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2019-07-01/compute"
	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2019-11-01/network"
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

func (a *api) ListVirtualMachines(ctx context.Context, resourceGroup string) ([]compute.VirtualMachine, error) {
	virtualMachinesClient, err := a.clientFactory.GetVirtualMachinesClient(a.profile)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	var vms []compute.VirtualMachine
	page, err := virtualMachinesClient.List(ctx, resourceGroup)
	if err != nil {
		return nil, microerror.Mask(err)
	}
	for page.NotDone() {
		vms = append(vms, page.Values()...)
		err = page.NextWithContext(ctx)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	return vms, nil
}

func (a *api) GetVirtualMachineInstanceView(ctx context.Context, resourceGroup, name string) (compute.VirtualMachine, error) {
	virtualMachinesClient, err := a.clientFactory.GetVirtualMachinesClient(a.profile)
	if err != nil {
		return compute.VirtualMachine{}, microerror.Mask(err)
	}

	vm, err := virtualMachinesClient.Get(ctx, resourceGroup, name, compute.InstanceView)
	if err != nil {
		return compute.VirtualMachine{}, microerror.Mask(err)
	}

	return vm, nil
}

func (a *api) GetNetworkInterface(ctx context.Context, resourceGroup, name string) (network.Interface, error) {
	interfacesClient, err := a.clientFactory.GetInterfacesClient(a.profile)
	if err != nil {
		return network.Interface{}, microerror.Mask(err)
	}

	networkInterface, err := interfacesClient.Get(ctx, resourceGroup, name, "")
	if err != nil {
		return network.Interface{}, microerror.Mask(err)
	}

	return networkInterface, nil
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
