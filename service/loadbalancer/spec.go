// Package loadbalancer reconciles an Azure load balancer and its
// sub-resources against a user declared desired state. Given a Spec it
// fetches the current resource, decides field by field whether the desired
// state is already satisfied and only then submits a full replacement
// description to the Azure API.
package loadbalancer

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2019-11-01/network"
	"github.com/Azure/azure-sdk-for-go/services/resources/mgmt/2019-05-01/resources"
)

const (
	// StatePresent makes the reconciler create or update the load balancer.
	StatePresent = "present"
	// StateAbsent makes the reconciler delete the load balancer.
	StateAbsent = "absent"
)

// Spec is the user declared target configuration for one load balancer.
// Field names follow the wire format of the spec files.
type Spec struct {
	ResourceGroup string            `json:"resource_group"`
	Name          string            `json:"name"`
	State         string            `json:"state,omitempty"`
	Location      string            `json:"location,omitempty"`
	Tags          map[string]string `json:"tags,omitempty"`

	FrontendIPConfigs  []FrontendIPConfig `json:"frontend_ip_configs,omitempty"`
	BackendPools       []string           `json:"backend_pools,omitempty"`
	HealthProbes       []HealthProbe      `json:"health_probes,omitempty"`
	LoadBalancingRules []Rule             `json:"load_balancing_rules,omitempty"`
	InboundNATRules    []NATRule          `json:"inbound_nat_rules,omitempty"`
}

// FrontendIPConfig describes one frontend IP configuration. Either
// PublicIPName or the SubnetName/VNetName pair must be set. ResourceGroup is
// the group the subnet lives in and defaults to the load balancer's group.
type FrontendIPConfig struct {
	Name             string `json:"name"`
	PublicIPName     string `json:"public_ip_name,omitempty"`
	PrivateIPAddress string `json:"private_ip_address,omitempty"`
	SubnetName       string `json:"subnet_name,omitempty"`
	ResourceGroup    string `json:"resource_group,omitempty"`
	VNetName         string `json:"vnet_name,omitempty"`
}

// HealthProbe describes one health probe.
type HealthProbe struct {
	Name        string `json:"name"`
	Port        int32  `json:"port,omitempty"`
	Protocol    string `json:"protocol,omitempty"`
	Interval    int32  `json:"interval,omitempty"`
	FailCount   int32  `json:"fail_count,omitempty"`
	RequestPath string `json:"request_path,omitempty"`
}

// Rule describes one load balancing rule. FrontendName, BackendName and
// ProbeName reference sibling sub-resources by name.
type Rule struct {
	Name             string `json:"name"`
	FrontendName     string `json:"frontend_name"`
	BackendName      string `json:"backend_name"`
	ProbeName        string `json:"probe_name"`
	Protocol         string `json:"protocol,omitempty"`
	LoadDistribution string `json:"load_distribution,omitempty"`
	FrontendPort     int32  `json:"frontend_port,omitempty"`
	BackendPort      int32  `json:"backend_port,omitempty"`
	IdleTimeout      int32  `json:"idle_timeout,omitempty"`
	EnableFloatingIP bool   `json:"enable_floating_ip,omitempty"`
}

// NATRule describes one inbound NAT rule.
type NATRule struct {
	Name             string `json:"name"`
	FrontendName     string `json:"frontend_name"`
	Protocol         string `json:"protocol,omitempty"`
	FrontendPort     int32  `json:"frontend_port,omitempty"`
	BackendPort      int32  `json:"backend_port,omitempty"`
	IdleTimeout      int32  `json:"idle_timeout,omitempty"`
	EnableFloatingIP bool   `json:"enable_floating_ip,omitempty"`
}

// API is the part of the Azure API surface the reconciler consumes. Mutating
// calls block until the remote operation completed.
type API interface {
	// GetResourceGroup reads the resource group, e.g. to resolve the default
	// location.
	GetResourceGroup(ctx context.Context, name string) (resources.Group, error)

	// GetLoadBalancer reads the current load balancer state.
	GetLoadBalancer(ctx context.Context, resourceGroup, name string) (network.LoadBalancer, error)

	// CreateOrUpdateLoadBalancer submits the full replacement description and
	// waits for the operation to complete.
	CreateOrUpdateLoadBalancer(ctx context.Context, resourceGroup, name string, loadBalancer network.LoadBalancer) error

	// DeleteLoadBalancer deletes the load balancer and waits for the
	// operation to complete.
	DeleteLoadBalancer(ctx context.Context, resourceGroup, name string) error

	// GetPublicIPAddress reads a public IP address referenced by a frontend.
	GetPublicIPAddress(ctx context.Context, resourceGroup, name string) (network.PublicIPAddress, error)

	// GetSubnet reads a subnet referenced by a frontend.
	GetSubnet(ctx context.Context, resourceGroup, virtualNetwork, name string) (network.Subnet, error)
}
