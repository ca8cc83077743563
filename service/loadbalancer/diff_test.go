package loadbalancer

import (
	"strconv"
	"testing"

	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2019-11-01/network"
	"github.com/giantswarm/to"
)

const testSubscriptionID = "xxx"

func testSpec() Spec {
	return Spec{
		ResourceGroup: "myResourceGroup",
		Name:          "lb",
		FrontendIPConfigs: []FrontendIPConfig{
			{Name: "frontendipconf0", PublicIPName: "testPublicIP"},
		},
		BackendPools: []string{"backendaddrp0"},
		HealthProbes: []HealthProbe{
			{Name: "prob0", Port: 80, Protocol: "Tcp", Interval: 15, FailCount: 3, RequestPath: "/"},
		},
		LoadBalancingRules: []Rule{
			{Name: "lbr", FrontendName: "frontendipconf0", BackendName: "backendaddrp0", ProbeName: "prob0", Protocol: "Tcp", LoadDistribution: "Default", FrontendPort: 80, BackendPort: 8080, IdleTimeout: 15},
		},
		InboundNATRules: []NATRule{
			{Name: "natr", FrontendName: "frontendipconf0", Protocol: "Tcp", FrontendPort: 2222, BackendPort: 22, IdleTimeout: 4},
		},
	}
}

// testLoadBalancer returns the remote state that exactly satisfies
// testSpec().
func testLoadBalancer() network.LoadBalancer {
	prefix := "/subscriptions/" + testSubscriptionID + "/resourceGroups/myResourceGroup/providers/Microsoft.Network"

	return network.LoadBalancer{
		Name:     to.StringP("lb"),
		Location: to.StringP("eastus"),
		LoadBalancerPropertiesFormat: &network.LoadBalancerPropertiesFormat{
			FrontendIPConfigurations: &[]network.FrontendIPConfiguration{
				{
					Name: to.StringP("frontendipconf0"),
					FrontendIPConfigurationPropertiesFormat: &network.FrontendIPConfigurationPropertiesFormat{
						PrivateIPAllocationMethod: network.Dynamic,
						PublicIPAddress: &network.PublicIPAddress{
							ID: to.StringP(prefix + "/publicIPAddresses/testPublicIP"),
						},
					},
				},
			},
			BackendAddressPools: &[]network.BackendAddressPool{
				{Name: to.StringP("backendaddrp0")},
			},
			Probes: &[]network.Probe{
				{
					Name: to.StringP("prob0"),
					ProbePropertiesFormat: &network.ProbePropertiesFormat{
						Protocol:          network.ProbeProtocolTCP,
						Port:              to.Int32P(80),
						IntervalInSeconds: to.Int32P(15),
						NumberOfProbes:    to.Int32P(3),
					},
				},
			},
			LoadBalancingRules: &[]network.LoadBalancingRule{
				{
					Name: to.StringP("lbr"),
					LoadBalancingRulePropertiesFormat: &network.LoadBalancingRulePropertiesFormat{
						FrontendIPConfiguration: &network.SubResource{
							ID: to.StringP(prefix + "/loadBalancers/lb/frontendIPConfigurations/frontendipconf0"),
						},
						BackendAddressPool: &network.SubResource{
							ID: to.StringP(prefix + "/loadBalancers/lb/backendAddressPools/backendaddrp0"),
						},
						Probe: &network.SubResource{
							ID: to.StringP(prefix + "/loadBalancers/lb/probes/prob0"),
						},
						Protocol:             network.TransportProtocolTCP,
						LoadDistribution:     network.LoadDistributionDefault,
						FrontendPort:         to.Int32P(80),
						BackendPort:          to.Int32P(8080),
						IdleTimeoutInMinutes: to.Int32P(15),
						EnableFloatingIP:     to.BoolP(false),
					},
				},
			},
			InboundNatRules: &[]network.InboundNatRule{
				{
					Name: to.StringP("natr"),
					InboundNatRulePropertiesFormat: &network.InboundNatRulePropertiesFormat{
						FrontendIPConfiguration: &network.SubResource{
							ID: to.StringP(prefix + "/loadBalancers/lb/frontendIPConfigurations/frontendipconf0"),
						},
						Protocol:             network.TransportProtocolTCP,
						FrontendPort:         to.Int32P(2222),
						BackendPort:          to.Int32P(22),
						IdleTimeoutInMinutes: to.Int32P(4),
					},
				},
			},
		},
	}
}

func Test_Compare(t *testing.T) {
	testCases := []struct {
		name            string
		spec            func() Spec
		actual          func() network.LoadBalancer
		expectedChanged bool
	}{
		{
			name:            "case 0: matching state is unchanged",
			spec:            testSpec,
			actual:          testLoadBalancer,
			expectedChanged: false,
		},
		{
			name: "case 1: missing frontend",
			spec: testSpec,
			actual: func() network.LoadBalancer {
				lb := testLoadBalancer()
				lb.LoadBalancerPropertiesFormat.FrontendIPConfigurations = &[]network.FrontendIPConfiguration{}
				return lb
			},
			expectedChanged: true,
		},
		{
			name: "case 2: frontend references other public ip",
			spec: testSpec,
			actual: func() network.LoadBalancer {
				lb := testLoadBalancer()
				frontends := *lb.LoadBalancerPropertiesFormat.FrontendIPConfigurations
				frontends[0].FrontendIPConfigurationPropertiesFormat.PublicIPAddress.ID = to.StringP("/subscriptions/xxx/resourceGroups/myResourceGroup/providers/Microsoft.Network/publicIPAddresses/otherPublicIP")
				return lb
			},
			expectedChanged: true,
		},
		{
			name: "case 3: specified private ip requires static allocation",
			spec: func() Spec {
				spec := testSpec()
				spec.FrontendIPConfigs[0] = FrontendIPConfig{
					Name:             "frontendipconf0",
					SubnetName:       "subnet",
					VNetName:         "vnet",
					ResourceGroup:    "myResourceGroup",
					PrivateIPAddress: "10.0.0.7",
				}
				return spec
			},
			actual: func() network.LoadBalancer {
				lb := testLoadBalancer()
				frontends := *lb.LoadBalancerPropertiesFormat.FrontendIPConfigurations
				frontends[0].FrontendIPConfigurationPropertiesFormat = &network.FrontendIPConfigurationPropertiesFormat{
					PrivateIPAddress:          to.StringP("10.0.0.7"),
					PrivateIPAllocationMethod: network.Dynamic,
					Subnet: &network.Subnet{
						ID: to.StringP("/subscriptions/xxx/resourceGroups/myResourceGroup/providers/Microsoft.Network/virtualNetworks/vnet/subnets/subnet"),
					},
				}
				return lb
			},
			expectedChanged: true,
		},
		{
			name: "case 4: omitted private ip requires dynamic allocation",
			spec: testSpec,
			actual: func() network.LoadBalancer {
				lb := testLoadBalancer()
				frontends := *lb.LoadBalancerPropertiesFormat.FrontendIPConfigurations
				frontends[0].FrontendIPConfigurationPropertiesFormat.PrivateIPAllocationMethod = network.Static
				return lb
			},
			expectedChanged: true,
		},
		{
			name: "case 5: backend pools compared as a set regardless of order",
			spec: func() Spec {
				spec := testSpec()
				spec.BackendPools = []string{"pool-b", "pool-a"}
				spec.LoadBalancingRules = nil
				return spec
			},
			actual: func() network.LoadBalancer {
				lb := testLoadBalancer()
				lb.LoadBalancerPropertiesFormat.BackendAddressPools = &[]network.BackendAddressPool{
					{Name: to.StringP("pool-a")},
					{Name: to.StringP("pool-b")},
				}
				lb.LoadBalancerPropertiesFormat.LoadBalancingRules = nil
				return lb
			},
			expectedChanged: false,
		},
		{
			name: "case 6: extra backend pool on the remote side",
			spec: testSpec,
			actual: func() network.LoadBalancer {
				lb := testLoadBalancer()
				pools := append(*lb.LoadBalancerPropertiesFormat.BackendAddressPools, network.BackendAddressPool{Name: to.StringP("stray")})
				lb.LoadBalancerPropertiesFormat.BackendAddressPools = &pools
				return lb
			},
			expectedChanged: true,
		},
		{
			name: "case 7: probe interval differs",
			spec: testSpec,
			actual: func() network.LoadBalancer {
				lb := testLoadBalancer()
				probes := *lb.LoadBalancerPropertiesFormat.Probes
				probes[0].ProbePropertiesFormat.IntervalInSeconds = to.Int32P(30)
				return lb
			},
			expectedChanged: true,
		},
		{
			name: "case 8: request path only compared for http probes",
			spec: func() Spec {
				spec := testSpec()
				spec.HealthProbes[0].RequestPath = "/healthz"
				return spec
			},
			actual:          testLoadBalancer,
			expectedChanged: false,
		},
		{
			name: "case 9: http probe request path differs",
			spec: func() Spec {
				spec := testSpec()
				spec.HealthProbes[0].Protocol = "Http"
				spec.HealthProbes[0].RequestPath = "/healthz"
				return spec
			},
			actual: func() network.LoadBalancer {
				lb := testLoadBalancer()
				probes := *lb.LoadBalancerPropertiesFormat.Probes
				probes[0].ProbePropertiesFormat.Protocol = network.ProbeProtocolHTTP
				probes[0].ProbePropertiesFormat.RequestPath = to.StringP("/")
				return lb
			},
			expectedChanged: true,
		},
		{
			name: "case 10: rule points at other backend pool",
			spec: testSpec,
			actual: func() network.LoadBalancer {
				lb := testLoadBalancer()
				rules := *lb.LoadBalancerPropertiesFormat.LoadBalancingRules
				rules[0].LoadBalancingRulePropertiesFormat.BackendAddressPool.ID = to.StringP("/subscriptions/xxx/resourceGroups/myResourceGroup/providers/Microsoft.Network/loadBalancers/lb/backendAddressPools/other")
				return lb
			},
			expectedChanged: true,
		},
		{
			name: "case 11: rule backend port differs",
			spec: testSpec,
			actual: func() network.LoadBalancer {
				lb := testLoadBalancer()
				rules := *lb.LoadBalancerPropertiesFormat.LoadBalancingRules
				rules[0].LoadBalancingRulePropertiesFormat.BackendPort = to.Int32P(9090)
				return lb
			},
			expectedChanged: true,
		},
		{
			name: "case 12: floating ip only compared when desired",
			spec: testSpec,
			actual: func() network.LoadBalancer {
				lb := testLoadBalancer()
				rules := *lb.LoadBalancerPropertiesFormat.LoadBalancingRules
				rules[0].LoadBalancingRulePropertiesFormat.EnableFloatingIP = to.BoolP(true)
				return lb
			},
			expectedChanged: false,
		},
		{
			name: "case 13: NAT rule frontend port differs",
			spec: testSpec,
			actual: func() network.LoadBalancer {
				lb := testLoadBalancer()
				natRules := *lb.LoadBalancerPropertiesFormat.InboundNatRules
				natRules[0].InboundNatRulePropertiesFormat.FrontendPort = to.Int32P(2200)
				return lb
			},
			expectedChanged: true,
		},
		{
			name: "case 14: NAT rule floating ip never compared",
			spec: func() Spec {
				spec := testSpec()
				spec.InboundNATRules[0].EnableFloatingIP = true
				return spec
			},
			actual:          testLoadBalancer,
			expectedChanged: false,
		},
		{
			name: "case 15: missing NAT rule",
			spec: testSpec,
			actual: func() network.LoadBalancer {
				lb := testLoadBalancer()
				lb.LoadBalancerPropertiesFormat.InboundNatRules = nil
				return lb
			},
			expectedChanged: true,
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			outcome := Compare(tc.spec(), tc.actual())

			if outcome.Changed != tc.expectedChanged {
				t.Fatalf("outcome.Changed == %v, want %v (reason %q)", outcome.Changed, tc.expectedChanged, outcome.Reason)
			}
			if outcome.Changed && outcome.Reason == "" {
				t.Fatalf("outcome.Reason must not be empty when changed")
			}
		})
	}
}
