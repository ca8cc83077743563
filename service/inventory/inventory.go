package inventory

import (
	"context"
	"strings"

	"github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2019-07-01/compute"
	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"

	"github.com/giantswarm/azure-automation/pkg/azureid"
)

type Config struct {
	API    API
	Logger micrologger.Logger

	// UsePublicIP keys hosts by their public IP address instead of the
	// private one.
	UsePublicIP bool
}

// Builder assembles the inventory of running VMs in one resource group.
type Builder struct {
	api    API
	logger micrologger.Logger

	usePublicIP bool
}

func NewBuilder(config Config) (*Builder, error) {
	if config.API == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.API must not be empty", config)
	}
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}

	b := &Builder{
		api:    config.API,
		logger: config.Logger,

		usePublicIP: config.UsePublicIP,
	}

	return b, nil
}

// Inventory is the JSON document handed to the caller. Hosts are keyed by
// IP address both in the host variables map and the group member list.
type Inventory struct {
	Meta         Meta     `json:"_meta"`
	AzureRunning []string `json:"azure_running"`
}

type Meta struct {
	Hostvars map[string]HostVars `json:"hostvars"`
}

// HostVars carries the per host variables of one running VM.
type HostVars struct {
	Location  string            `json:"location"`
	Name      string            `json:"name"`
	ID        string            `json:"id"`
	Tags      map[string]string `json:"tags"`
	PublicIP  string            `json:"public_ip"`
	PrivateIP string            `json:"private_ip"`
}

// Build lists the VMs of the resource group and returns the inventory of
// those that are running. Traversal errors never abort the build: the
// affected VM is skipped, the error logged and a partial inventory
// returned.
func (b *Builder) Build(ctx context.Context, resourceGroup string) Inventory {
	inventory := Inventory{
		Meta:         Meta{Hostvars: map[string]HostVars{}},
		AzureRunning: []string{},
	}

	vms, err := b.api.ListVirtualMachines(ctx, resourceGroup)
	if err != nil {
		b.logger.Errorf(ctx, err, "listing VMs in resource group %#q", resourceGroup)
		return inventory
	}

	for _, vm := range vms {
		name := toString(vm.Name)

		running, err := b.vmIsRunning(ctx, resourceGroup, name)
		if err != nil {
			b.logger.Errorf(ctx, err, "reading instance view of VM %#q", name)
			continue
		}
		if !running {
			continue
		}

		hostVars, err := b.hostVars(ctx, vm)
		if err != nil {
			b.logger.Errorf(ctx, err, "resolving addresses of VM %#q", name)
			continue
		}

		hostName := hostVars.PrivateIP
		if b.usePublicIP {
			hostName = hostVars.PublicIP
		}
		if hostName == "" {
			b.logger.Debugf(ctx, "dropping VM %#q, no usable IP address", name)
			continue
		}

		inventory.Meta.Hostvars[hostName] = hostVars
		inventory.AzureRunning = append(inventory.AzureRunning, hostName)
	}

	return inventory
}

// vmIsRunning reads the instance view and checks the power state, which is
// reported as the second status entry. A VM with fewer statuses is treated
// as not running.
func (b *Builder) vmIsRunning(ctx context.Context, resourceGroup, name string) (bool, error) {
	vm, err := b.api.GetVirtualMachineInstanceView(ctx, resourceGroup, name)
	if err != nil {
		return false, microerror.Mask(err)
	}

	if vm.VirtualMachineProperties == nil || vm.VirtualMachineProperties.InstanceView == nil {
		return false, nil
	}
	statuses := vm.VirtualMachineProperties.InstanceView.Statuses
	if statuses == nil || len(*statuses) < 2 {
		return false, nil
	}

	displayStatus := toString((*statuses)[1].DisplayStatus)
	return strings.Contains(displayStatus, "running"), nil
}

// hostVars resolves the private and public IP addresses of the VM's primary
// network interface.
func (b *Builder) hostVars(ctx context.Context, vm compute.VirtualMachine) (HostVars, error) {
	hostVars := HostVars{
		Location: toString(vm.Location),
		Name:     toString(vm.Name),
		ID:       toString(vm.ID),
		Tags:     fromTagMap(vm.Tags),
	}

	if vm.VirtualMachineProperties == nil || vm.VirtualMachineProperties.NetworkProfile == nil || vm.VirtualMachineProperties.NetworkProfile.NetworkInterfaces == nil {
		return hostVars, nil
	}

	for _, interfaceReference := range *vm.VirtualMachineProperties.NetworkProfile.NetworkInterfaces {
		if interfaceReference.ID == nil {
			continue
		}

		ref := azureid.Parse(*interfaceReference.ID)
		networkInterface, err := b.api.GetNetworkInterface(ctx, ref.SegmentName("resourceGroups"), ref.SegmentName("networkInterfaces"))
		if err != nil {
			return HostVars{}, microerror.Mask(err)
		}

		props := networkInterface.InterfacePropertiesFormat
		if props == nil || props.Primary == nil || !*props.Primary || props.IPConfigurations == nil {
			continue
		}

		for _, ipConfig := range *props.IPConfigurations {
			ipProps := ipConfig.InterfaceIPConfigurationPropertiesFormat
			if ipProps == nil {
				continue
			}

			hostVars.PrivateIP = toString(ipProps.PrivateIPAddress)

			if ipProps.PublicIPAddress != nil && ipProps.PublicIPAddress.ID != nil {
				publicIPRef := azureid.Parse(*ipProps.PublicIPAddress.ID)
				publicIPAddress, err := b.api.GetPublicIPAddress(ctx, publicIPRef.SegmentName("resourceGroups"), publicIPRef.SegmentName("publicIPAddresses"))
				if err != nil {
					return HostVars{}, microerror.Mask(err)
				}
				if publicIPAddress.PublicIPAddressPropertiesFormat != nil {
					hostVars.PublicIP = toString(publicIPAddress.PublicIPAddressPropertiesFormat.IPAddress)
				}
			}
		}
	}

	return hostVars, nil
}

func fromTagMap(tags map[string]*string) map[string]string {
	if len(tags) == 0 {
		return nil
	}

	result := make(map[string]string, len(tags))
	for k, v := range tags {
		result[k] = toString(v)
	}

	return result
}

func toString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
