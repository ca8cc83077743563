// Package azureid decodes and builds fully qualified Azure resource paths.
//
// An Azure resource path is an alternating sequence of segment-type and
// segment-name pairs encoded as a slash-delimited string, e.g.
//
//	/subscriptions/S/resourceGroups/R/providers/Microsoft.Network/loadBalancers/L/probes/P
//
// Decoding such a path yields a mapping from segment type to segment name,
// which is how a referenced sub-resource's short name is recovered from the
// reference fields the Azure API returns.
package azureid

import (
	"fmt"
	"strings"
)

// Reference holds the decoded segments of a resource path.
type Reference map[string]string

// Parse decodes a slash-delimited resource path into its segment pairs.
// Leading and trailing slashes are ignored. A trailing segment type without a
// name is dropped.
func Parse(path string) Reference {
	segments := strings.Split(strings.Trim(path, "/"), "/")

	ref := Reference{}
	for i := 0; i+1 < len(segments); i += 2 {
		ref[segments[i]] = segments[i+1]
	}

	return ref
}

// SegmentName returns the segment name decoded for the given segment type, or
// the empty string when the path did not contain that segment type.
func (r Reference) SegmentName(segmentType string) string {
	return r[segmentType]
}

const loadBalancerSubResourceIDFormat = "/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Network/loadBalancers/%s/%s/%s"

// FrontendIPConfigurationID builds the fully qualified path of a load
// balancer frontend IP configuration.
func FrontendIPConfigurationID(subscriptionID, resourceGroup, loadBalancer, name string) string {
	return fmt.Sprintf(loadBalancerSubResourceIDFormat, subscriptionID, resourceGroup, loadBalancer, "frontendIPConfigurations", name)
}

// BackendAddressPoolID builds the fully qualified path of a load balancer
// backend address pool.
func BackendAddressPoolID(subscriptionID, resourceGroup, loadBalancer, name string) string {
	return fmt.Sprintf(loadBalancerSubResourceIDFormat, subscriptionID, resourceGroup, loadBalancer, "backendAddressPools", name)
}

// ProbeID builds the fully qualified path of a load balancer health probe.
func ProbeID(subscriptionID, resourceGroup, loadBalancer, name string) string {
	return fmt.Sprintf(loadBalancerSubResourceIDFormat, subscriptionID, resourceGroup, loadBalancer, "probes", name)
}
