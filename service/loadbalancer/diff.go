package loadbalancer

import (
	"fmt"
	"sort"

	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2019-11-01/network"

	"github.com/giantswarm/azure-automation/pkg/azureid"
)

// Outcome is the result of comparing a desired spec with actual state.
type Outcome struct {
	Changed bool
	Reason  string
}

func unchanged() Outcome {
	return Outcome{}
}

func changed(format string, params ...interface{}) Outcome {
	return Outcome{
		Changed: true,
		Reason:  fmt.Sprintf(format, params...),
	}
}

// Compare decides whether the desired spec is already satisfied by the actual
// load balancer, field by field, returning at the first mismatch. The spec
// must be normalized. Fields the user omitted (and that have no default) are
// not compared. A sub-resource that the actual state does not carry at all
// counts as a mismatch, never as an error.
func Compare(spec Spec, actual network.LoadBalancer) Outcome {
	if outcome := compareFrontends(spec, actual); outcome.Changed {
		return outcome
	}
	if outcome := compareBackendPools(spec, actual); outcome.Changed {
		return outcome
	}
	if outcome := compareProbes(spec, actual); outcome.Changed {
		return outcome
	}
	if outcome := compareRules(spec, actual); outcome.Changed {
		return outcome
	}
	if outcome := compareNATRules(spec, actual); outcome.Changed {
		return outcome
	}

	return unchanged()
}

func compareFrontends(spec Spec, actual network.LoadBalancer) Outcome {
	actualFrontends := map[string]network.FrontendIPConfiguration{}
	if actual.LoadBalancerPropertiesFormat != nil && actual.LoadBalancerPropertiesFormat.FrontendIPConfigurations != nil {
		for _, frontend := range *actual.LoadBalancerPropertiesFormat.FrontendIPConfigurations {
			if frontend.Name != nil {
				actualFrontends[*frontend.Name] = frontend
			}
		}
	}

	for _, desired := range spec.FrontendIPConfigs {
		current, ok := actualFrontends[desired.Name]
		if !ok {
			return changed("load balancer %s frontend %s is missing", spec.Name, desired.Name)
		}

		props := current.FrontendIPConfigurationPropertiesFormat
		if props == nil {
			return changed("load balancer %s frontend %s carries no properties", spec.Name, desired.Name)
		}

		if desired.PublicIPName != "" {
			if props.PublicIPAddress == nil || props.PublicIPAddress.ID == nil {
				return changed("load balancer %s frontend %s parameter public_ip_name differs: %s vs none", spec.Name, desired.Name, desired.PublicIPName)
			}
			actualName := azureid.Parse(*props.PublicIPAddress.ID).SegmentName("publicIPAddresses")
			if desired.PublicIPName != actualName {
				return changed("load balancer %s frontend %s parameter public_ip_name differs: %s vs %s", spec.Name, desired.Name, desired.PublicIPName, actualName)
			}
		}

		// A specified private IP must match and be statically allocated; an
		// omitted one means the allocation must be dynamic.
		if desired.PrivateIPAddress != "" {
			if toString(props.PrivateIPAddress) != desired.PrivateIPAddress || props.PrivateIPAllocationMethod != network.Static {
				return changed("load balancer %s frontend %s parameter private_ip_address differs: %s vs %s (%s)", spec.Name, desired.Name, desired.PrivateIPAddress, toString(props.PrivateIPAddress), props.PrivateIPAllocationMethod)
			}
		} else {
			if props.PrivateIPAllocationMethod != network.Dynamic {
				return changed("load balancer %s frontend %s differs: omitted private ip means dynamic allocation", spec.Name, desired.Name)
			}
		}

		if desired.SubnetName != "" {
			if props.Subnet == nil || props.Subnet.ID == nil {
				return changed("load balancer %s frontend %s parameter subnet_name differs: %s vs none", spec.Name, desired.Name, desired.SubnetName)
			}
			subnetRef := azureid.Parse(*props.Subnet.ID)
			if desired.SubnetName != subnetRef.SegmentName("subnets") {
				return changed("load balancer %s frontend %s parameter subnet_name differs: %s vs %s", spec.Name, desired.Name, desired.SubnetName, subnetRef.SegmentName("subnets"))
			}
			if desired.VNetName != "" && desired.VNetName != subnetRef.SegmentName("virtualNetworks") {
				return changed("load balancer %s frontend %s parameter vnet_name differs: %s vs %s", spec.Name, desired.Name, desired.VNetName, subnetRef.SegmentName("virtualNetworks"))
			}
			if desired.ResourceGroup != "" && desired.ResourceGroup != subnetRef.SegmentName("resourceGroups") {
				return changed("load balancer %s frontend %s parameter resource_group differs: %s vs %s", spec.Name, desired.Name, desired.ResourceGroup, subnetRef.SegmentName("resourceGroups"))
			}
		}
	}

	return unchanged()
}

// compareBackendPools compares backend pool presence as a set of names only.
// Per-pool configuration is owned by the NIC side.
func compareBackendPools(spec Spec, actual network.LoadBalancer) Outcome {
	if len(spec.BackendPools) == 0 {
		return unchanged()
	}

	var actualNames []string
	if actual.LoadBalancerPropertiesFormat != nil && actual.LoadBalancerPropertiesFormat.BackendAddressPools != nil {
		for _, pool := range *actual.LoadBalancerPropertiesFormat.BackendAddressPools {
			if pool.Name != nil {
				actualNames = append(actualNames, *pool.Name)
			}
		}
	}

	desiredNames := append([]string{}, spec.BackendPools...)
	sort.Strings(desiredNames)
	sort.Strings(actualNames)

	if len(desiredNames) != len(actualNames) {
		return changed("load balancer %s backend name list differs", spec.Name)
	}
	for i := range desiredNames {
		if desiredNames[i] != actualNames[i] {
			return changed("load balancer %s backend name list differs", spec.Name)
		}
	}

	return unchanged()
}

func compareProbes(spec Spec, actual network.LoadBalancer) Outcome {
	actualProbes := map[string]network.Probe{}
	if actual.LoadBalancerPropertiesFormat != nil && actual.LoadBalancerPropertiesFormat.Probes != nil {
		for _, probe := range *actual.LoadBalancerPropertiesFormat.Probes {
			if probe.Name != nil {
				actualProbes[*probe.Name] = probe
			}
		}
	}

	for _, desired := range spec.HealthProbes {
		current, ok := actualProbes[desired.Name]
		if !ok {
			return changed("load balancer %s probe %s is missing", spec.Name, desired.Name)
		}

		props := current.ProbePropertiesFormat
		if props == nil {
			return changed("load balancer %s probe %s carries no properties", spec.Name, desired.Name)
		}

		if desired.Port != toInt32(props.Port) {
			return changed("load balancer %s probe %s parameter port differs: %d vs %d", spec.Name, desired.Name, desired.Port, toInt32(props.Port))
		}
		if desired.Protocol != string(props.Protocol) {
			return changed("load balancer %s probe %s parameter protocol differs: %s vs %s", spec.Name, desired.Name, desired.Protocol, props.Protocol)
		}
		if desired.Interval != toInt32(props.IntervalInSeconds) {
			return changed("load balancer %s probe %s parameter interval differs: %d vs %d", spec.Name, desired.Name, desired.Interval, toInt32(props.IntervalInSeconds))
		}
		if desired.FailCount != toInt32(props.NumberOfProbes) {
			return changed("load balancer %s probe %s parameter fail_count differs: %d vs %d", spec.Name, desired.Name, desired.FailCount, toInt32(props.NumberOfProbes))
		}
		if desired.Protocol == "Http" && desired.RequestPath != toString(props.RequestPath) {
			return changed("load balancer %s probe %s parameter request_path differs: %s vs %s", spec.Name, desired.Name, desired.RequestPath, toString(props.RequestPath))
		}
	}

	return unchanged()
}

func compareRules(spec Spec, actual network.LoadBalancer) Outcome {
	actualRules := map[string]network.LoadBalancingRule{}
	if actual.LoadBalancerPropertiesFormat != nil && actual.LoadBalancerPropertiesFormat.LoadBalancingRules != nil {
		for _, rule := range *actual.LoadBalancerPropertiesFormat.LoadBalancingRules {
			if rule.Name != nil {
				actualRules[*rule.Name] = rule
			}
		}
	}

	for _, desired := range spec.LoadBalancingRules {
		current, ok := actualRules[desired.Name]
		if !ok {
			return changed("load balancer %s rule %s is missing", spec.Name, desired.Name)
		}

		props := current.LoadBalancingRulePropertiesFormat
		if props == nil {
			return changed("load balancer %s rule %s carries no properties", spec.Name, desired.Name)
		}

		if actualName := subResourceName(props.FrontendIPConfiguration, "frontendIPConfigurations"); desired.FrontendName != actualName {
			return changed("load balancer %s rule %s parameter frontend_name differs: %s vs %s", spec.Name, desired.Name, desired.FrontendName, actualName)
		}
		if actualName := subResourceName(props.BackendAddressPool, "backendAddressPools"); desired.BackendName != actualName {
			return changed("load balancer %s rule %s parameter backend_name differs: %s vs %s", spec.Name, desired.Name, desired.BackendName, actualName)
		}
		if actualName := subResourceName(props.Probe, "probes"); desired.ProbeName != actualName {
			return changed("load balancer %s rule %s parameter probe_name differs: %s vs %s", spec.Name, desired.Name, desired.ProbeName, actualName)
		}
		if desired.Protocol != string(props.Protocol) {
			return changed("load balancer %s rule %s parameter protocol differs: %s vs %s", spec.Name, desired.Name, desired.Protocol, props.Protocol)
		}
		if desired.LoadDistribution != string(props.LoadDistribution) {
			return changed("load balancer %s rule %s parameter load_distribution differs: %s vs %s", spec.Name, desired.Name, desired.LoadDistribution, props.LoadDistribution)
		}
		if desired.FrontendPort != toInt32(props.FrontendPort) {
			return changed("load balancer %s rule %s parameter frontend_port differs: %d vs %d", spec.Name, desired.Name, desired.FrontendPort, toInt32(props.FrontendPort))
		}
		if desired.BackendPort != toInt32(props.BackendPort) {
			return changed("load balancer %s rule %s parameter backend_port differs: %d vs %d", spec.Name, desired.Name, desired.BackendPort, toInt32(props.BackendPort))
		}
		if desired.IdleTimeout != toInt32(props.IdleTimeoutInMinutes) {
			return changed("load balancer %s rule %s parameter idle_timeout differs: %d vs %d", spec.Name, desired.Name, desired.IdleTimeout, toInt32(props.IdleTimeoutInMinutes))
		}
		if desired.EnableFloatingIP && !toBool(props.EnableFloatingIP) {
			return changed("load balancer %s rule %s parameter enable_floating_ip differs: true vs false", spec.Name, desired.Name)
		}
	}

	return unchanged()
}

func compareNATRules(spec Spec, actual network.LoadBalancer) Outcome {
	actualNATRules := map[string]network.InboundNatRule{}
	if actual.LoadBalancerPropertiesFormat != nil && actual.LoadBalancerPropertiesFormat.InboundNatRules != nil {
		for _, nat := range *actual.LoadBalancerPropertiesFormat.InboundNatRules {
			if nat.Name != nil {
				actualNATRules[*nat.Name] = nat
			}
		}
	}

	for _, desired := range spec.InboundNATRules {
		current, ok := actualNATRules[desired.Name]
		if !ok {
			return changed("load balancer %s NAT rule %s is missing", spec.Name, desired.Name)
		}

		props := current.InboundNatRulePropertiesFormat
		if props == nil {
			return changed("load balancer %s NAT rule %s carries no properties", spec.Name, desired.Name)
		}

		if desired.Protocol != string(props.Protocol) {
			return changed("load balancer %s NAT rule %s parameter protocol differs: %s vs %s", spec.Name, desired.Name, desired.Protocol, props.Protocol)
		}
		if desired.FrontendPort != toInt32(props.FrontendPort) {
			return changed("load balancer %s NAT rule %s parameter frontend_port differs: %d vs %d", spec.Name, desired.Name, desired.FrontendPort, toInt32(props.FrontendPort))
		}
		if desired.BackendPort != toInt32(props.BackendPort) {
			return changed("load balancer %s NAT rule %s parameter backend_port differs: %d vs %d", spec.Name, desired.Name, desired.BackendPort, toInt32(props.BackendPort))
		}
		if actualName := subResourceName(props.FrontendIPConfiguration, "frontendIPConfigurations"); desired.FrontendName != actualName {
			return changed("load balancer %s NAT rule %s parameter frontend_name differs: %s vs %s", spec.Name, desired.Name, desired.FrontendName, actualName)
		}
		if desired.IdleTimeout != toInt32(props.IdleTimeoutInMinutes) {
			return changed("load balancer %s NAT rule %s parameter idle_timeout differs: %d vs %d", spec.Name, desired.Name, desired.IdleTimeout, toInt32(props.IdleTimeoutInMinutes))
		}
		// The floating IP flag is deliberately not compared. The upstream API
		// names the field differently between the request and response
		// shapes, so a comparison would report a permanent drift.
	}

	return unchanged()
}

func subResourceName(ref *network.SubResource, segmentType string) string {
	if ref == nil || ref.ID == nil {
		return ""
	}

	return azureid.Parse(*ref.ID).SegmentName(segmentType)
}

func toString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func toInt32(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}

func toBool(v *bool) bool {
	if v == nil {
		return false
	}
	return *v
}
