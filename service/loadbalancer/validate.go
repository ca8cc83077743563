package loadbalancer

import (
	"github.com/giantswarm/microerror"
)

// Default values applied to omitted optional fields.
const (
	defaultProbePort        = 80
	defaultProbeProtocol    = "Tcp"
	defaultProbeInterval    = 15
	defaultProbeFailCount   = 3
	defaultProbeRequestPath = "/"

	defaultRuleProtocol         = "Tcp"
	defaultRuleLoadDistribution = "Default"
	defaultRuleFrontendPort     = 80
	defaultRuleIdleTimeout      = 15

	defaultNATRuleProtocol    = "Tcp"
	defaultNATRuleIdleTimeout = 4
)

// Normalized validates the spec and returns a copy with defaults applied:
// every sub-resource name must be non-empty and unique within its list, every
// cross-reference must resolve to an existing name, and omitted optional
// fields receive their documented defaults. Validation happens before any
// network call.
func (s Spec) Normalized() (Spec, error) {
	if s.ResourceGroup == "" {
		return Spec{}, microerror.Maskf(invalidSpecError, "resource_group must not be empty")
	}
	if s.Name == "" {
		return Spec{}, microerror.Maskf(invalidSpecError, "name must not be empty")
	}

	switch s.State {
	case "":
		s.State = StatePresent
	case StatePresent, StateAbsent:
		// valid
	default:
		return Spec{}, microerror.Maskf(invalidSpecError, "state must be %#q or %#q, got %#q", StatePresent, StateAbsent, s.State)
	}

	frontendNames := map[string]bool{}
	frontends := make([]FrontendIPConfig, len(s.FrontendIPConfigs))
	for i, frontend := range s.FrontendIPConfigs {
		if frontend.Name == "" || frontendNames[frontend.Name] {
			return Spec{}, microerror.Maskf(invalidSpecError, "frontend_ip_configs[%d]: name must be set and unique", i)
		}
		frontendNames[frontend.Name] = true

		if frontend.PublicIPName == "" && (frontend.SubnetName == "" || frontend.VNetName == "") {
			return Spec{}, microerror.Maskf(invalidSpecError, "frontend_ip_configs[%d] %#q: either public_ip_name or both subnet_name and vnet_name must be set", i, frontend.Name)
		}
		if frontend.ResourceGroup == "" {
			frontend.ResourceGroup = s.ResourceGroup
		}

		frontends[i] = frontend
	}
	s.FrontendIPConfigs = frontends

	backendNames := map[string]bool{}
	for i, backend := range s.BackendPools {
		if backend == "" || backendNames[backend] {
			return Spec{}, microerror.Maskf(invalidSpecError, "backend_pools[%d]: name must be set and unique", i)
		}
		backendNames[backend] = true
	}

	probeNames := map[string]bool{}
	probes := make([]HealthProbe, len(s.HealthProbes))
	for i, probe := range s.HealthProbes {
		if probe.Name == "" || probeNames[probe.Name] {
			return Spec{}, microerror.Maskf(invalidSpecError, "health_probes[%d]: name must be set and unique", i)
		}
		probeNames[probe.Name] = true

		if probe.Port == 0 {
			probe.Port = defaultProbePort
		}
		if probe.Protocol == "" {
			probe.Protocol = defaultProbeProtocol
		}
		if probe.Interval == 0 {
			probe.Interval = defaultProbeInterval
		}
		if probe.FailCount == 0 {
			probe.FailCount = defaultProbeFailCount
		}
		if probe.RequestPath == "" {
			probe.RequestPath = defaultProbeRequestPath
		}

		probes[i] = probe
	}
	s.HealthProbes = probes

	ruleNames := map[string]bool{}
	rules := make([]Rule, len(s.LoadBalancingRules))
	for i, rule := range s.LoadBalancingRules {
		if rule.Name == "" || ruleNames[rule.Name] {
			return Spec{}, microerror.Maskf(invalidSpecError, "load_balancing_rules[%d]: name must be set and unique", i)
		}
		ruleNames[rule.Name] = true

		if rule.FrontendName == "" || !frontendNames[rule.FrontendName] {
			return Spec{}, microerror.Maskf(invalidSpecError, "load_balancing_rules[%d] %#q: frontend_name %#q does not reference a frontend_ip_configs entry", i, rule.Name, rule.FrontendName)
		}
		if rule.BackendName == "" || !backendNames[rule.BackendName] {
			return Spec{}, microerror.Maskf(invalidSpecError, "load_balancing_rules[%d] %#q: backend_name %#q does not reference a backend_pools entry", i, rule.Name, rule.BackendName)
		}
		if rule.ProbeName == "" || !probeNames[rule.ProbeName] {
			return Spec{}, microerror.Maskf(invalidSpecError, "load_balancing_rules[%d] %#q: probe_name %#q does not reference a health_probes entry", i, rule.Name, rule.ProbeName)
		}

		if rule.Protocol == "" {
			rule.Protocol = defaultRuleProtocol
		}
		if rule.LoadDistribution == "" {
			rule.LoadDistribution = defaultRuleLoadDistribution
		}
		if rule.FrontendPort == 0 {
			rule.FrontendPort = defaultRuleFrontendPort
		}
		if rule.BackendPort == 0 {
			rule.BackendPort = rule.FrontendPort
		}
		if rule.IdleTimeout == 0 {
			rule.IdleTimeout = defaultRuleIdleTimeout
		}

		rules[i] = rule
	}
	s.LoadBalancingRules = rules

	natNames := map[string]bool{}
	natRules := make([]NATRule, len(s.InboundNATRules))
	for i, nat := range s.InboundNATRules {
		if nat.Name == "" || natNames[nat.Name] {
			return Spec{}, microerror.Maskf(invalidSpecError, "inbound_nat_rules[%d]: name must be set and unique", i)
		}
		natNames[nat.Name] = true

		if nat.FrontendName == "" || !frontendNames[nat.FrontendName] {
			return Spec{}, microerror.Maskf(invalidSpecError, "inbound_nat_rules[%d] %#q: frontend_name %#q does not reference a frontend_ip_configs entry", i, nat.Name, nat.FrontendName)
		}
		if nat.FrontendPort == 0 {
			return Spec{}, microerror.Maskf(invalidSpecError, "inbound_nat_rules[%d] %#q: frontend_port must be set", i, nat.Name)
		}
		if nat.BackendPort == 0 {
			return Spec{}, microerror.Maskf(invalidSpecError, "inbound_nat_rules[%d] %#q: backend_port must be set", i, nat.Name)
		}

		if nat.Protocol == "" {
			nat.Protocol = defaultNATRuleProtocol
		}
		if nat.IdleTimeout == 0 {
			nat.IdleTimeout = defaultNATRuleIdleTimeout
		}

		natRules[i] = nat
	}
	s.InboundNATRules = natRules

	return s, nil
}
