package trafficmanager

import (
	"fmt"
	"sort"

	"github.com/Azure/azure-sdk-for-go/services/trafficmanager/mgmt/2018-04-01/trafficmanager"
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

// Compare decides whether the desired spec is already satisfied by the
// actual profile, returning at the first mismatch. The spec must be
// normalized. Endpoint fields the user omitted are not compared, but an
// endpoint present on the remote side without a spec entry counts as a
// mismatch.
func Compare(spec Spec, actual trafficmanager.Profile) Outcome {
	if len(spec.Tags) > 0 && !tagsEqual(spec.Tags, actual.Tags) {
		return changed("profile %s parameter tags differs", spec.Name)
	}

	props := actual.ProfileProperties
	if props == nil {
		return changed("profile %s carries no properties", spec.Name)
	}

	if spec.ProfileStatus != string(props.ProfileStatus) {
		return changed("profile %s parameter profile_status differs: %s vs %s", spec.Name, spec.ProfileStatus, props.ProfileStatus)
	}
	if spec.TrafficRoutingMethod != string(props.TrafficRoutingMethod) {
		return changed("profile %s parameter traffic_routing_method differs: %s vs %s", spec.Name, spec.TrafficRoutingMethod, props.TrafficRoutingMethod)
	}
	if spec.TrafficViewEnrollmentStatus != string(props.TrafficViewEnrollmentStatus) {
		return changed("profile %s parameter traffic_view_enrollment_status differs: %s vs %s", spec.Name, spec.TrafficViewEnrollmentStatus, props.TrafficViewEnrollmentStatus)
	}

	if outcome := compareMonitorConfig(spec, props.MonitorConfig); outcome.Changed {
		return outcome
	}
	if outcome := compareDNSConfig(spec, props.DNSConfig); outcome.Changed {
		return outcome
	}
	if outcome := compareEndpoints(spec, props.Endpoints); outcome.Changed {
		return outcome
	}

	return unchanged()
}

func compareMonitorConfig(spec Spec, actual *trafficmanager.MonitorConfig) Outcome {
	if actual == nil {
		return changed("profile %s carries no monitor config", spec.Name)
	}

	desired := spec.MonitorConfig
	if desired.Protocol != string(actual.Protocol) {
		return changed("profile %s monitor parameter protocol differs: %s vs %s", spec.Name, desired.Protocol, actual.Protocol)
	}
	if desired.Port != toInt64(actual.Port) {
		return changed("profile %s monitor parameter port differs: %d vs %d", spec.Name, desired.Port, toInt64(actual.Port))
	}
	if desired.Path != toString(actual.Path) {
		return changed("profile %s monitor parameter path differs: %s vs %s", spec.Name, desired.Path, toString(actual.Path))
	}
	if desired.IntervalInSeconds != toInt64(actual.IntervalInSeconds) {
		return changed("profile %s monitor parameter interval_in_seconds differs: %d vs %d", spec.Name, desired.IntervalInSeconds, toInt64(actual.IntervalInSeconds))
	}
	if desired.TimeoutInSeconds != toInt64(actual.TimeoutInSeconds) {
		return changed("profile %s monitor parameter timeout_in_seconds differs: %d vs %d", spec.Name, desired.TimeoutInSeconds, toInt64(actual.TimeoutInSeconds))
	}
	if desired.ToleratedNumberOfFailures != toInt64(actual.ToleratedNumberOfFailures) {
		return changed("profile %s monitor parameter tolerated_number_of_failures differs: %d vs %d", spec.Name, desired.ToleratedNumberOfFailures, toInt64(actual.ToleratedNumberOfFailures))
	}

	return unchanged()
}

func compareDNSConfig(spec Spec, actual *trafficmanager.DNSConfig) Outcome {
	if actual == nil {
		return changed("profile %s carries no dns config", spec.Name)
	}

	desired := spec.DNSConfig
	if desired.TTL != toInt64(actual.TTL) {
		return changed("profile %s dns parameter ttl differs: %d vs %d", spec.Name, desired.TTL, toInt64(actual.TTL))
	}
	if desired.RelativeName != toString(actual.RelativeName) {
		return changed("profile %s dns parameter relative_name differs: %s vs %s", spec.Name, desired.RelativeName, toString(actual.RelativeName))
	}

	return unchanged()
}

func compareEndpoints(spec Spec, actual *[]trafficmanager.Endpoint) Outcome {
	if len(spec.Endpoints) == 0 {
		return unchanged()
	}
	if actual == nil || len(*actual) == 0 {
		return changed("profile %s endpoints are missing", spec.Name)
	}

	desiredByName := map[string]Endpoint{}
	for _, endpoint := range spec.Endpoints {
		desiredByName[endpoint.Name] = endpoint
	}

	actualByName := map[string]trafficmanager.Endpoint{}
	for _, endpoint := range *actual {
		if endpoint.Name != nil {
			actualByName[*endpoint.Name] = endpoint
		}
	}

	// Every remote endpoint must be declared in the spec.
	for name := range actualByName {
		if _, ok := desiredByName[name]; !ok {
			return changed("profile %s endpoint %s is not declared", spec.Name, name)
		}
	}

	for _, desired := range spec.Endpoints {
		current, ok := actualByName[desired.Name]
		if !ok {
			return changed("profile %s endpoint %s is missing", spec.Name, desired.Name)
		}

		if desired.Type != "" && desired.Type != toString(current.Type) {
			return changed("profile %s endpoint %s parameter type differs: %s vs %s", spec.Name, desired.Name, desired.Type, toString(current.Type))
		}

		props := current.EndpointProperties
		if props == nil {
			return changed("profile %s endpoint %s carries no properties", spec.Name, desired.Name)
		}

		if desired.Target != "" && desired.Target != toString(props.Target) {
			return changed("profile %s endpoint %s parameter target differs: %s vs %s", spec.Name, desired.Name, desired.Target, toString(props.Target))
		}
		if desired.TargetResourceID != "" && desired.TargetResourceID != toString(props.TargetResourceID) {
			return changed("profile %s endpoint %s parameter target_resource_id differs: %s vs %s", spec.Name, desired.Name, desired.TargetResourceID, toString(props.TargetResourceID))
		}
		if desired.EndpointLocation != "" && desired.EndpointLocation != toString(props.EndpointLocation) {
			return changed("profile %s endpoint %s parameter endpoint_location differs: %s vs %s", spec.Name, desired.Name, desired.EndpointLocation, toString(props.EndpointLocation))
		}
		if desired.EndpointStatus != "" && desired.EndpointStatus != string(props.EndpointStatus) {
			return changed("profile %s endpoint %s parameter endpoint_status differs: %s vs %s", spec.Name, desired.Name, desired.EndpointStatus, props.EndpointStatus)
		}
		if desired.Weight != 0 && desired.Weight != toInt64(props.Weight) {
			return changed("profile %s endpoint %s parameter weight differs: %d vs %d", spec.Name, desired.Name, desired.Weight, toInt64(props.Weight))
		}
		if desired.Priority != 0 && desired.Priority != toInt64(props.Priority) {
			return changed("profile %s endpoint %s parameter priority differs: %d vs %d", spec.Name, desired.Name, desired.Priority, toInt64(props.Priority))
		}
		if desired.MinChildEndpoints != 0 && desired.MinChildEndpoints != toInt64(props.MinChildEndpoints) {
			return changed("profile %s endpoint %s parameter min_child_endpoints differs: %d vs %d", spec.Name, desired.Name, desired.MinChildEndpoints, toInt64(props.MinChildEndpoints))
		}
		if len(desired.GeoMapping) > 0 && !stringSetEqual(desired.GeoMapping, props.GeoMapping) {
			return changed("profile %s endpoint %s parameter geo_mapping differs", spec.Name, desired.Name)
		}
	}

	return unchanged()
}

func tagsEqual(desired map[string]string, actual map[string]*string) bool {
	if len(desired) != len(actual) {
		return false
	}
	for k, v := range desired {
		current, ok := actual[k]
		if !ok || toString(current) != v {
			return false
		}
	}
	return true
}

func stringSetEqual(desired []string, actual *[]string) bool {
	var actualNames []string
	if actual != nil {
		actualNames = append(actualNames, *actual...)
	}
	if len(desired) != len(actualNames) {
		return false
	}

	desiredNames := append([]string{}, desired...)
	sort.Strings(desiredNames)
	sort.Strings(actualNames)
	for i := range desiredNames {
		if desiredNames[i] != actualNames[i] {
			return false
		}
	}

	return true
}

func toString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func toInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
