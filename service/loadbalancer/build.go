package loadbalancer

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2019-11-01/network"
	"github.com/Azure/go-autorest/autorest/to"
	"github.com/giantswarm/microerror"

	"github.com/giantswarm/azure-automation/pkg/azureid"
)

// build constructs the full replacement load balancer description from the
// normalized spec. The remote API replaces the whole resource, so every
// sub-resource list is rebuilt and cross-references are rewritten from short
// names to fully qualified resource paths.
func (r *Reconciler) build(ctx context.Context, spec Spec, location string, tags map[string]*string) (network.LoadBalancer, error) {
	props := &network.LoadBalancerPropertiesFormat{}

	if len(spec.FrontendIPConfigs) > 0 {
		frontends := make([]network.FrontendIPConfiguration, 0, len(spec.FrontendIPConfigs))
		for _, frontend := range spec.FrontendIPConfigs {
			if frontend.PublicIPName != "" {
				publicIPAddress, err := r.api.GetPublicIPAddress(ctx, spec.ResourceGroup, frontend.PublicIPName)
				if err != nil {
					return network.LoadBalancer{}, microerror.Mask(err)
				}

				frontends = append(frontends, network.FrontendIPConfiguration{
					Name: to.StringPtr(frontend.Name),
					FrontendIPConfigurationPropertiesFormat: &network.FrontendIPConfigurationPropertiesFormat{
						PublicIPAddress: &publicIPAddress,
					},
				})
				continue
			}

			subnet, err := r.api.GetSubnet(ctx, frontend.ResourceGroup, frontend.VNetName, frontend.SubnetName)
			if err != nil {
				return network.LoadBalancer{}, microerror.Mask(err)
			}

			frontendProps := &network.FrontendIPConfigurationPropertiesFormat{
				Subnet: &subnet,
			}
			if frontend.PrivateIPAddress != "" {
				frontendProps.PrivateIPAddress = to.StringPtr(frontend.PrivateIPAddress)
				frontendProps.PrivateIPAllocationMethod = network.Static
			} else {
				frontendProps.PrivateIPAllocationMethod = network.Dynamic
			}

			frontends = append(frontends, network.FrontendIPConfiguration{
				Name: to.StringPtr(frontend.Name),
				FrontendIPConfigurationPropertiesFormat: frontendProps,
			})
		}
		props.FrontendIPConfigurations = &frontends
	}

	if len(spec.BackendPools) > 0 {
		pools := make([]network.BackendAddressPool, 0, len(spec.BackendPools))
		for _, pool := range spec.BackendPools {
			pools = append(pools, network.BackendAddressPool{
				Name: to.StringPtr(pool),
			})
		}
		props.BackendAddressPools = &pools
	}

	if len(spec.HealthProbes) > 0 {
		probes := make([]network.Probe, 0, len(spec.HealthProbes))
		for _, probe := range spec.HealthProbes {
			probeProps := &network.ProbePropertiesFormat{
				Protocol:          network.ProbeProtocol(probe.Protocol),
				Port:              to.Int32Ptr(probe.Port),
				IntervalInSeconds: to.Int32Ptr(probe.Interval),
				NumberOfProbes:    to.Int32Ptr(probe.FailCount),
			}
			// The request path only applies to HTTP probes; the API rejects
			// it on TCP ones.
			if probe.Protocol == "Http" {
				probeProps.RequestPath = to.StringPtr(probe.RequestPath)
			}

			probes = append(probes, network.Probe{
				Name:                  to.StringPtr(probe.Name),
				ProbePropertiesFormat: probeProps,
			})
		}
		props.Probes = &probes
	}

	if len(spec.LoadBalancingRules) > 0 {
		rules := make([]network.LoadBalancingRule, 0, len(spec.LoadBalancingRules))
		for _, rule := range spec.LoadBalancingRules {
			rules = append(rules, network.LoadBalancingRule{
				Name: to.StringPtr(rule.Name),
				LoadBalancingRulePropertiesFormat: &network.LoadBalancingRulePropertiesFormat{
					FrontendIPConfiguration: &network.SubResource{
						ID: to.StringPtr(azureid.FrontendIPConfigurationID(r.subscriptionID, spec.ResourceGroup, spec.Name, rule.FrontendName)),
					},
					BackendAddressPool: &network.SubResource{
						ID: to.StringPtr(azureid.BackendAddressPoolID(r.subscriptionID, spec.ResourceGroup, spec.Name, rule.BackendName)),
					},
					Probe: &network.SubResource{
						ID: to.StringPtr(azureid.ProbeID(r.subscriptionID, spec.ResourceGroup, spec.Name, rule.ProbeName)),
					},
					Protocol:             network.TransportProtocol(rule.Protocol),
					LoadDistribution:     network.LoadDistribution(rule.LoadDistribution),
					FrontendPort:         to.Int32Ptr(rule.FrontendPort),
					BackendPort:          to.Int32Ptr(rule.BackendPort),
					IdleTimeoutInMinutes: to.Int32Ptr(rule.IdleTimeout),
					EnableFloatingIP:     to.BoolPtr(rule.EnableFloatingIP),
				},
			})
		}
		props.LoadBalancingRules = &rules
	}

	if len(spec.InboundNATRules) > 0 {
		natRules := make([]network.InboundNatRule, 0, len(spec.InboundNATRules))
		for _, nat := range spec.InboundNATRules {
			natRules = append(natRules, network.InboundNatRule{
				Name: to.StringPtr(nat.Name),
				InboundNatRulePropertiesFormat: &network.InboundNatRulePropertiesFormat{
					FrontendIPConfiguration: &network.SubResource{
						ID: to.StringPtr(azureid.FrontendIPConfigurationID(r.subscriptionID, spec.ResourceGroup, spec.Name, nat.FrontendName)),
					},
					Protocol:             network.TransportProtocol(nat.Protocol),
					FrontendPort:         to.Int32Ptr(nat.FrontendPort),
					BackendPort:          to.Int32Ptr(nat.BackendPort),
					IdleTimeoutInMinutes: to.Int32Ptr(nat.IdleTimeout),
					EnableFloatingIP:     to.BoolPtr(nat.EnableFloatingIP),
				},
			})
		}
		props.InboundNatRules = &natRules
	}

	loadBalancer := network.LoadBalancer{
		Location:                     to.StringPtr(location),
		Tags:                         tags,
		LoadBalancerPropertiesFormat: props,
	}

	return loadBalancer, nil
}
