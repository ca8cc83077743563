package trafficmanager

import (
	"github.com/Azure/azure-sdk-for-go/services/trafficmanager/mgmt/2018-04-01/trafficmanager"
	"github.com/Azure/go-autorest/autorest/to"
)

// Traffic Manager profiles always live in the "global" pseudo location.
const profileLocation = "global"

// build constructs the full replacement profile description from the
// normalized spec.
func build(spec Spec) trafficmanager.Profile {
	endpoints := make([]trafficmanager.Endpoint, 0, len(spec.Endpoints))
	for _, endpoint := range spec.Endpoints {
		props := &trafficmanager.EndpointProperties{
			EndpointStatus: trafficmanager.EndpointStatus(endpoint.EndpointStatus),
		}
		if endpoint.Target != "" {
			props.Target = to.StringPtr(endpoint.Target)
		}
		if endpoint.TargetResourceID != "" {
			props.TargetResourceID = to.StringPtr(endpoint.TargetResourceID)
		}
		if endpoint.EndpointLocation != "" {
			props.EndpointLocation = to.StringPtr(endpoint.EndpointLocation)
		}
		if endpoint.Weight != 0 {
			props.Weight = to.Int64Ptr(endpoint.Weight)
		}
		if endpoint.Priority != 0 {
			props.Priority = to.Int64Ptr(endpoint.Priority)
		}
		if endpoint.MinChildEndpoints != 0 {
			props.MinChildEndpoints = to.Int64Ptr(endpoint.MinChildEndpoints)
		}
		if len(endpoint.GeoMapping) > 0 {
			props.GeoMapping = to.StringSlicePtr(endpoint.GeoMapping)
		}

		endpoints = append(endpoints, trafficmanager.Endpoint{
			Name:               to.StringPtr(endpoint.Name),
			Type:               to.StringPtr(endpoint.Type),
			EndpointProperties: props,
		})
	}

	var tags map[string]*string
	if len(spec.Tags) > 0 {
		tags = make(map[string]*string, len(spec.Tags))
		for k, v := range spec.Tags {
			v := v
			tags[k] = &v
		}
	}

	return trafficmanager.Profile{
		Location: to.StringPtr(profileLocation),
		Tags:     tags,
		ProfileProperties: &trafficmanager.ProfileProperties{
			ProfileStatus:               trafficmanager.ProfileStatus(spec.ProfileStatus),
			TrafficRoutingMethod:        trafficmanager.TrafficRoutingMethod(spec.TrafficRoutingMethod),
			TrafficViewEnrollmentStatus: trafficmanager.TrafficViewEnrollmentStatus(spec.TrafficViewEnrollmentStatus),
			DNSConfig: &trafficmanager.DNSConfig{
				RelativeName: to.StringPtr(spec.DNSConfig.RelativeName),
				TTL:          to.Int64Ptr(spec.DNSConfig.TTL),
			},
			MonitorConfig: &trafficmanager.MonitorConfig{
				Protocol:                  trafficmanager.MonitorProtocol(spec.MonitorConfig.Protocol),
				Port:                      to.Int64Ptr(spec.MonitorConfig.Port),
				Path:                      to.StringPtr(spec.MonitorConfig.Path),
				IntervalInSeconds:         to.Int64Ptr(spec.MonitorConfig.IntervalInSeconds),
				TimeoutInSeconds:          to.Int64Ptr(spec.MonitorConfig.TimeoutInSeconds),
				ToleratedNumberOfFailures: to.Int64Ptr(spec.MonitorConfig.ToleratedNumberOfFailures),
			},
			Endpoints: &endpoints,
		},
	}
}
