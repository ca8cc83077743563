package trafficmanager

import (
	"strings"

	"github.com/giantswarm/microerror"
)

// Default values applied to omitted optional fields.
const (
	defaultProfileStatus               = "Enabled"
	defaultTrafficRoutingMethod        = "Performance"
	defaultTrafficViewEnrollmentStatus = "Disabled"

	defaultDNSTTL = 60

	defaultMonitorProtocol          = "HTTP"
	defaultMonitorPort              = 80
	defaultMonitorPath              = "/"
	defaultMonitorInterval          = 30
	defaultMonitorTimeout           = 10
	defaultMonitorToleratedFailures = 3

	defaultEndpointType   = "azureEndpoints"
	defaultEndpointStatus = "Enabled"

	// endpointTypePrefix expands the short endpoint type to the fully
	// qualified resource type the API reports.
	endpointTypePrefix = "Microsoft.Network/trafficManagerProfiles/"
)

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// Normalized validates the spec and returns a copy with defaults applied.
// The monitor protocol is upper-cased, endpoint types are expanded to their
// fully qualified form and the DNS relative name defaults to the profile
// name. Validation happens before any network call.
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

	if s.ProfileStatus == "" {
		s.ProfileStatus = defaultProfileStatus
	}
	if !contains([]string{"Enabled", "Disabled"}, s.ProfileStatus) {
		return Spec{}, microerror.Maskf(invalidSpecError, "profile_status must be Enabled or Disabled, got %#q", s.ProfileStatus)
	}

	if s.TrafficRoutingMethod == "" {
		s.TrafficRoutingMethod = defaultTrafficRoutingMethod
	}
	if !contains([]string{"Performance", "Priority", "Weighted", "Geographic"}, s.TrafficRoutingMethod) {
		return Spec{}, microerror.Maskf(invalidSpecError, "traffic_routing_method %#q is not valid", s.TrafficRoutingMethod)
	}

	if s.TrafficViewEnrollmentStatus == "" {
		s.TrafficViewEnrollmentStatus = defaultTrafficViewEnrollmentStatus
	}
	if !contains([]string{"Enabled", "Disabled"}, s.TrafficViewEnrollmentStatus) {
		return Spec{}, microerror.Maskf(invalidSpecError, "traffic_view_enrollment_status must be Enabled or Disabled, got %#q", s.TrafficViewEnrollmentStatus)
	}

	{
		dnsConfig := DNSConfig{}
		if s.DNSConfig != nil {
			dnsConfig = *s.DNSConfig
		}
		if dnsConfig.RelativeName == "" {
			dnsConfig.RelativeName = s.Name
		}
		if dnsConfig.TTL == 0 {
			dnsConfig.TTL = defaultDNSTTL
		}
		s.DNSConfig = &dnsConfig
	}

	{
		monitorConfig := MonitorConfig{}
		if s.MonitorConfig != nil {
			monitorConfig = *s.MonitorConfig
		}
		if monitorConfig.Protocol == "" {
			monitorConfig.Protocol = defaultMonitorProtocol
		}
		monitorConfig.Protocol = strings.ToUpper(monitorConfig.Protocol)
		if !contains([]string{"HTTP", "HTTPS", "TCP"}, monitorConfig.Protocol) {
			return Spec{}, microerror.Maskf(invalidSpecError, "monitor_config protocol must be HTTP, HTTPS or TCP, got %#q", monitorConfig.Protocol)
		}
		if monitorConfig.Port == 0 {
			monitorConfig.Port = defaultMonitorPort
		}
		if monitorConfig.Path == "" {
			monitorConfig.Path = defaultMonitorPath
		}
		if monitorConfig.IntervalInSeconds == 0 {
			monitorConfig.IntervalInSeconds = defaultMonitorInterval
		}
		if monitorConfig.TimeoutInSeconds == 0 {
			monitorConfig.TimeoutInSeconds = defaultMonitorTimeout
		}
		if monitorConfig.ToleratedNumberOfFailures == 0 {
			monitorConfig.ToleratedNumberOfFailures = defaultMonitorToleratedFailures
		}
		s.MonitorConfig = &monitorConfig
	}

	endpointNames := map[string]bool{}
	endpoints := make([]Endpoint, len(s.Endpoints))
	for i, endpoint := range s.Endpoints {
		if endpoint.Name == "" || endpointNames[endpoint.Name] {
			return Spec{}, microerror.Maskf(invalidSpecError, "endpoints[%d]: name must be set and unique", i)
		}
		endpointNames[endpoint.Name] = true

		if endpoint.Type == "" {
			endpoint.Type = defaultEndpointType
		}
		if !strings.HasPrefix(endpoint.Type, endpointTypePrefix) {
			endpoint.Type = endpointTypePrefix + endpoint.Type
		}
		if endpoint.EndpointStatus == "" {
			endpoint.EndpointStatus = defaultEndpointStatus
		}

		endpoints[i] = endpoint
	}
	s.Endpoints = endpoints

	return s, nil
}
