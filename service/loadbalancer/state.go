package loadbalancer

import (
	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2019-11-01/network"
)

// State is the serialized description of a load balancer as reported in the
// reconciler result. It denormalizes the SDK types into the documented
// result shape.
type State struct {
	ID                string            `json:"id,omitempty"`
	Name              string            `json:"name,omitempty"`
	Location          string            `json:"location,omitempty"`
	Tags              map[string]string `json:"tags,omitempty"`
	ProvisioningState string            `json:"provisioning_state,omitempty"`
	Etag              string            `json:"etag,omitempty"`

	FrontendIPConfigurations []FrontendIPConfigurationState `json:"frontend_ip_configurations"`
	BackendAddressPools      []BackendAddressPoolState      `json:"backend_address_pools"`
	LoadBalancingRules       []LoadBalancingRuleState       `json:"load_balancing_rules"`
	Probes                   []ProbeState                   `json:"probes"`
	InboundNATRules          []InboundNATRuleState          `json:"inbound_nat_rules"`
}

type FrontendIPConfigurationState struct {
	ID                        string                `json:"id,omitempty"`
	Name                      string                `json:"name,omitempty"`
	Etag                      string                `json:"etag,omitempty"`
	ProvisioningState         string                `json:"provisioning_state,omitempty"`
	PrivateIPAddress          string                `json:"private_ip_address,omitempty"`
	PrivateIPAllocationMethod string                `json:"private_ip_allocation_method,omitempty"`
	Subnet                    *SubnetState          `json:"subnet,omitempty"`
	PublicIPAddress           *PublicIPAddressState `json:"public_ip_address,omitempty"`
}

type SubnetState struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name,omitempty"`
	AddressPrefix string `json:"address_prefix,omitempty"`
}

type PublicIPAddressState struct {
	ID                       string `json:"id,omitempty"`
	Location                 string `json:"location,omitempty"`
	PublicIPAllocationMethod string `json:"public_ip_allocation_method,omitempty"`
	IPAddress                string `json:"ip_address,omitempty"`
}

type BackendAddressPoolState struct {
	ID                string `json:"id,omitempty"`
	Name              string `json:"name,omitempty"`
	ProvisioningState string `json:"provisioning_state,omitempty"`
	Etag              string `json:"etag,omitempty"`
}

type LoadBalancingRuleState struct {
	ID                        string `json:"id,omitempty"`
	Name                      string `json:"name,omitempty"`
	Protocol                  string `json:"protocol,omitempty"`
	FrontendIPConfigurationID string `json:"frontend_ip_configuration_id,omitempty"`
	BackendAddressPoolID      string `json:"backend_address_pool_id,omitempty"`
	ProbeID                   string `json:"probe_id,omitempty"`
	LoadDistribution          string `json:"load_distribution,omitempty"`
	FrontendPort              int32  `json:"frontend_port,omitempty"`
	BackendPort               int32  `json:"backend_port,omitempty"`
	IdleTimeoutInMinutes      int32  `json:"idle_timeout_in_minutes,omitempty"`
	EnableFloatingIP          bool   `json:"enable_floating_ip,omitempty"`
	ProvisioningState         string `json:"provisioning_state,omitempty"`
	Etag                      string `json:"etag,omitempty"`
}

type ProbeState struct {
	ID                string `json:"id,omitempty"`
	Name              string `json:"name,omitempty"`
	Protocol          string `json:"protocol,omitempty"`
	Port              int32  `json:"port,omitempty"`
	IntervalInSeconds int32  `json:"interval_in_seconds,omitempty"`
	NumberOfProbes    int32  `json:"number_of_probes,omitempty"`
	RequestPath       string `json:"request_path,omitempty"`
	ProvisioningState string `json:"provisioning_state,omitempty"`
}

type InboundNATRuleState struct {
	ID                        string `json:"id,omitempty"`
	Name                      string `json:"name,omitempty"`
	FrontendIPConfigurationID string `json:"frontend_ip_configuration_id,omitempty"`
	Protocol                  string `json:"protocol,omitempty"`
	FrontendPort              int32  `json:"frontend_port,omitempty"`
	BackendPort               int32  `json:"backend_port,omitempty"`
	IdleTimeoutInMinutes      int32  `json:"idle_timeout_in_minutes,omitempty"`
	EnableFloatingIP          bool   `json:"enable_floating_ip,omitempty"`
	ProvisioningState         string `json:"provisioning_state,omitempty"`
	Etag                      string `json:"etag,omitempty"`
}

func newState(loadBalancer network.LoadBalancer) State {
	state := State{
		ID:       toString(loadBalancer.ID),
		Name:     toString(loadBalancer.Name),
		Location: toString(loadBalancer.Location),
		Etag:     toString(loadBalancer.Etag),
		Tags:     fromTagMap(loadBalancer.Tags),

		FrontendIPConfigurations: []FrontendIPConfigurationState{},
		BackendAddressPools:      []BackendAddressPoolState{},
		LoadBalancingRules:       []LoadBalancingRuleState{},
		Probes:                   []ProbeState{},
		InboundNATRules:          []InboundNATRuleState{},
	}

	props := loadBalancer.LoadBalancerPropertiesFormat
	if props == nil {
		return state
	}
	state.ProvisioningState = string(props.ProvisioningState)

	if props.FrontendIPConfigurations != nil {
		for _, frontend := range *props.FrontendIPConfigurations {
			frontendState := FrontendIPConfigurationState{
				ID:   toString(frontend.ID),
				Name: toString(frontend.Name),
				Etag: toString(frontend.Etag),
			}
			if p := frontend.FrontendIPConfigurationPropertiesFormat; p != nil {
				frontendState.ProvisioningState = string(p.ProvisioningState)
				frontendState.PrivateIPAddress = toString(p.PrivateIPAddress)
				frontendState.PrivateIPAllocationMethod = string(p.PrivateIPAllocationMethod)
				if p.Subnet != nil {
					frontendState.Subnet = &SubnetState{
						ID:   toString(p.Subnet.ID),
						Name: toString(p.Subnet.Name),
					}
					if p.Subnet.SubnetPropertiesFormat != nil {
						frontendState.Subnet.AddressPrefix = toString(p.Subnet.SubnetPropertiesFormat.AddressPrefix)
					}
				}
				if p.PublicIPAddress != nil {
					frontendState.PublicIPAddress = &PublicIPAddressState{
						ID:       toString(p.PublicIPAddress.ID),
						Location: toString(p.PublicIPAddress.Location),
					}
					if p.PublicIPAddress.PublicIPAddressPropertiesFormat != nil {
						frontendState.PublicIPAddress.PublicIPAllocationMethod = string(p.PublicIPAddress.PublicIPAddressPropertiesFormat.PublicIPAllocationMethod)
						frontendState.PublicIPAddress.IPAddress = toString(p.PublicIPAddress.PublicIPAddressPropertiesFormat.IPAddress)
					}
				}
			}
			state.FrontendIPConfigurations = append(state.FrontendIPConfigurations, frontendState)
		}
	}

	if props.BackendAddressPools != nil {
		for _, pool := range *props.BackendAddressPools {
			state.BackendAddressPools = append(state.BackendAddressPools, BackendAddressPoolState{
				ID:   toString(pool.ID),
				Name: toString(pool.Name),
				Etag: toString(pool.Etag),
			})
		}
	}

	if props.LoadBalancingRules != nil {
		for _, rule := range *props.LoadBalancingRules {
			ruleState := LoadBalancingRuleState{
				ID:   toString(rule.ID),
				Name: toString(rule.Name),
				Etag: toString(rule.Etag),
			}
			if p := rule.LoadBalancingRulePropertiesFormat; p != nil {
				ruleState.Protocol = string(p.Protocol)
				ruleState.LoadDistribution = string(p.LoadDistribution)
				ruleState.FrontendPort = toInt32(p.FrontendPort)
				ruleState.BackendPort = toInt32(p.BackendPort)
				ruleState.IdleTimeoutInMinutes = toInt32(p.IdleTimeoutInMinutes)
				ruleState.EnableFloatingIP = toBool(p.EnableFloatingIP)
				ruleState.ProvisioningState = string(p.ProvisioningState)
				if p.FrontendIPConfiguration != nil {
					ruleState.FrontendIPConfigurationID = toString(p.FrontendIPConfiguration.ID)
				}
				if p.BackendAddressPool != nil {
					ruleState.BackendAddressPoolID = toString(p.BackendAddressPool.ID)
				}
				if p.Probe != nil {
					ruleState.ProbeID = toString(p.Probe.ID)
				}
			}
			state.LoadBalancingRules = append(state.LoadBalancingRules, ruleState)
		}
	}

	if props.Probes != nil {
		for _, probe := range *props.Probes {
			probeState := ProbeState{
				ID:   toString(probe.ID),
				Name: toString(probe.Name),
			}
			if p := probe.ProbePropertiesFormat; p != nil {
				probeState.Protocol = string(p.Protocol)
				probeState.Port = toInt32(p.Port)
				probeState.IntervalInSeconds = toInt32(p.IntervalInSeconds)
				probeState.NumberOfProbes = toInt32(p.NumberOfProbes)
				probeState.RequestPath = toString(p.RequestPath)
				probeState.ProvisioningState = string(p.ProvisioningState)
			}
			state.Probes = append(state.Probes, probeState)
		}
	}

	if props.InboundNatRules != nil {
		for _, nat := range *props.InboundNatRules {
			natState := InboundNATRuleState{
				ID:   toString(nat.ID),
				Name: toString(nat.Name),
				Etag: toString(nat.Etag),
			}
			if p := nat.InboundNatRulePropertiesFormat; p != nil {
				natState.Protocol = string(p.Protocol)
				natState.FrontendPort = toInt32(p.FrontendPort)
				natState.BackendPort = toInt32(p.BackendPort)
				natState.IdleTimeoutInMinutes = toInt32(p.IdleTimeoutInMinutes)
				natState.EnableFloatingIP = toBool(p.EnableFloatingIP)
				natState.ProvisioningState = string(p.ProvisioningState)
				if p.FrontendIPConfiguration != nil {
					natState.FrontendIPConfigurationID = toString(p.FrontendIPConfiguration.ID)
				}
			}
			state.InboundNATRules = append(state.InboundNATRules, natState)
		}
	}

	return state
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
