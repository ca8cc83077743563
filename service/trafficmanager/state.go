package trafficmanager

import (
	"github.com/Azure/azure-sdk-for-go/services/trafficmanager/mgmt/2018-04-01/trafficmanager"
)

// State is the serialized description of a profile as reported in the
// reconciler result.
type State struct {
	ID            string            `json:"id,omitempty"`
	Name          string            `json:"name,omitempty"`
	ResourceGroup string            `json:"resource_group,omitempty"`
	Location      string            `json:"location,omitempty"`
	Tags          map[string]string `json:"tags,omitempty"`

	ProfileStatus               string `json:"profile_status,omitempty"`
	TrafficRoutingMethod        string `json:"traffic_routing_method,omitempty"`
	TrafficViewEnrollmentStatus string `json:"traffic_view_enrollment_status,omitempty"`

	DNSConfig     *DNSConfigState     `json:"dns_config,omitempty"`
	MonitorConfig *MonitorConfigState `json:"monitor_config,omitempty"`
	Endpoints     []EndpointState     `json:"endpoints"`
}

type DNSConfigState struct {
	RelativeName string `json:"relative_name,omitempty"`
	FQDN         string `json:"fqdn,omitempty"`
	TTL          int64  `json:"ttl,omitempty"`
}

type MonitorConfigState struct {
	Protocol                  string `json:"protocol,omitempty"`
	Port                      int64  `json:"port,omitempty"`
	Path                      string `json:"path,omitempty"`
	IntervalInSeconds         int64  `json:"interval_in_seconds,omitempty"`
	TimeoutInSeconds          int64  `json:"timeout_in_seconds,omitempty"`
	ToleratedNumberOfFailures int64  `json:"tolerated_number_of_failures,omitempty"`
}

type EndpointState struct {
	ID                string   `json:"id,omitempty"`
	Name              string   `json:"name,omitempty"`
	Type              string   `json:"type,omitempty"`
	Target            string   `json:"target,omitempty"`
	TargetResourceID  string   `json:"target_resource_id,omitempty"`
	EndpointLocation  string   `json:"endpoint_location,omitempty"`
	EndpointStatus    string   `json:"endpoint_status,omitempty"`
	MonitorStatus     string   `json:"monitor_status,omitempty"`
	Weight            int64    `json:"weight,omitempty"`
	Priority          int64    `json:"priority,omitempty"`
	MinChildEndpoints int64    `json:"min_child_endpoints,omitempty"`
	GeoMapping        []string `json:"geo_mapping,omitempty"`
}

func newState(resourceGroup string, profile trafficmanager.Profile) State {
	state := State{
		ID:            toString(profile.ID),
		Name:          toString(profile.Name),
		ResourceGroup: resourceGroup,
		Location:      toString(profile.Location),
		Endpoints:     []EndpointState{},
	}

	if len(profile.Tags) > 0 {
		state.Tags = make(map[string]string, len(profile.Tags))
		for k, v := range profile.Tags {
			state.Tags[k] = toString(v)
		}
	}

	props := profile.ProfileProperties
	if props == nil {
		return state
	}

	state.ProfileStatus = string(props.ProfileStatus)
	state.TrafficRoutingMethod = string(props.TrafficRoutingMethod)
	state.TrafficViewEnrollmentStatus = string(props.TrafficViewEnrollmentStatus)

	if props.DNSConfig != nil {
		state.DNSConfig = &DNSConfigState{
			RelativeName: toString(props.DNSConfig.RelativeName),
			FQDN:         toString(props.DNSConfig.Fqdn),
			TTL:          toInt64(props.DNSConfig.TTL),
		}
	}

	if props.MonitorConfig != nil {
		state.MonitorConfig = &MonitorConfigState{
			Protocol:                  string(props.MonitorConfig.Protocol),
			Port:                      toInt64(props.MonitorConfig.Port),
			Path:                      toString(props.MonitorConfig.Path),
			IntervalInSeconds:         toInt64(props.MonitorConfig.IntervalInSeconds),
			TimeoutInSeconds:          toInt64(props.MonitorConfig.TimeoutInSeconds),
			ToleratedNumberOfFailures: toInt64(props.MonitorConfig.ToleratedNumberOfFailures),
		}
	}

	if props.Endpoints != nil {
		for _, endpoint := range *props.Endpoints {
			endpointState := EndpointState{
				ID:   toString(endpoint.ID),
				Name: toString(endpoint.Name),
				Type: toString(endpoint.Type),
			}
			if p := endpoint.EndpointProperties; p != nil {
				endpointState.Target = toString(p.Target)
				endpointState.TargetResourceID = toString(p.TargetResourceID)
				endpointState.EndpointLocation = toString(p.EndpointLocation)
				endpointState.EndpointStatus = string(p.EndpointStatus)
				endpointState.MonitorStatus = string(p.EndpointMonitorStatus)
				endpointState.Weight = toInt64(p.Weight)
				endpointState.Priority = toInt64(p.Priority)
				endpointState.MinChildEndpoints = toInt64(p.MinChildEndpoints)
				if p.GeoMapping != nil {
					endpointState.GeoMapping = append(endpointState.GeoMapping, *p.GeoMapping...)
				}
			}
			state.Endpoints = append(state.Endpoints, endpointState)
		}
	}

	return state
}
