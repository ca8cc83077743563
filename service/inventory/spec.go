// Package inventory builds a dynamic host inventory from the running
// virtual machines of one resource group. Hosts are keyed by private or
// public IP address and carry their VM metadata as host variables.
package inventory

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2019-07-01/compute"
	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2019-11-01/network"
)

// API is the part of the Azure API surface the inventory builder consumes.
type API interface {
	// ListVirtualMachines lists all VMs in the resource group across all
	// result pages.
	ListVirtualMachines(ctx context.Context, resourceGroup string) ([]compute.VirtualMachine, error)

	// GetVirtualMachineInstanceView reads one VM with its instance view
	// expanded, so power state statuses are populated.
	GetVirtualMachineInstanceView(ctx context.Context, resourceGroup, name string) (compute.VirtualMachine, error)

	// GetNetworkInterface reads a network interface.
	GetNetworkInterface(ctx context.Context, resourceGroup, name string) (network.Interface, error)

	// GetPublicIPAddress reads a public IP address.
	GetPublicIPAddress(ctx context.Context, resourceGroup, name string) (network.PublicIPAddress, error)
}
