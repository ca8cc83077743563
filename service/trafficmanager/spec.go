// Package trafficmanager reconciles an Azure Traffic Manager profile
// against a user declared desired state.
package trafficmanager

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/services/trafficmanager/mgmt/2018-04-01/trafficmanager"
)

const (
	// StatePresent makes the reconciler create or update the profile.
	StatePresent = "present"
	// StateAbsent makes the reconciler delete the profile.
	StateAbsent = "absent"
)

// Spec is the user declared target configuration for one Traffic Manager
// profile. Field names follow the wire format of the spec files.
type Spec struct {
	ResourceGroup string            `json:"resource_group"`
	Name          string            `json:"name"`
	State         string            `json:"state,omitempty"`
	Tags          map[string]string `json:"tags,omitempty"`

	ProfileStatus               string `json:"profile_status,omitempty"`
	TrafficRoutingMethod        string `json:"traffic_routing_method,omitempty"`
	TrafficViewEnrollmentStatus string `json:"traffic_view_enrollment_status,omitempty"`

	DNSConfig     *DNSConfig     `json:"dns_config,omitempty"`
	MonitorConfig *MonitorConfig `json:"monitor_config,omitempty"`
	Endpoints     []Endpoint     `json:"endpoints,omitempty"`
}

// DNSConfig describes the DNS settings of the profile. RelativeName defaults
// to the profile name.
type DNSConfig struct {
	RelativeName string `json:"relative_name,omitempty"`
	TTL          int64  `json:"ttl,omitempty"`
}

// MonitorConfig describes the endpoint health monitoring settings.
type MonitorConfig struct {
	Protocol                  string `json:"protocol,omitempty"`
	Port                      int64  `json:"port,omitempty"`
	Path                      string `json:"path,omitempty"`
	IntervalInSeconds         int64  `json:"interval_in_seconds,omitempty"`
	TimeoutInSeconds          int64  `json:"timeout_in_seconds,omitempty"`
	ToleratedNumberOfFailures int64  `json:"tolerated_number_of_failures,omitempty"`
}

// Endpoint describes one profile endpoint. Type may be given in the short
// form, e.g. "azureEndpoints", and is expanded to the fully qualified
// resource type during normalization.
type Endpoint struct {
	Name              string   `json:"name"`
	Type              string   `json:"type,omitempty"`
	Target            string   `json:"target,omitempty"`
	TargetResourceID  string   `json:"target_resource_id,omitempty"`
	EndpointLocation  string   `json:"endpoint_location,omitempty"`
	EndpointStatus    string   `json:"endpoint_status,omitempty"`
	Weight            int64    `json:"weight,omitempty"`
	Priority          int64    `json:"priority,omitempty"`
	MinChildEndpoints int64    `json:"min_child_endpoints,omitempty"`
	GeoMapping        []string `json:"geo_mapping,omitempty"`
}

// API is the part of the Azure API surface the reconciler consumes.
type API interface {
	// ListProfiles lists all profiles in the resource group.
	ListProfiles(ctx context.Context, resourceGroup string) ([]trafficmanager.Profile, error)

	// GetProfile reads the current profile state.
	GetProfile(ctx context.Context, resourceGroup, name string) (trafficmanager.Profile, error)

	// CreateOrUpdateProfile submits the full replacement description.
	CreateOrUpdateProfile(ctx context.Context, resourceGroup, name string, profile trafficmanager.Profile) error

	// DeleteProfile deletes the profile.
	DeleteProfile(ctx context.Context, resourceGroup, name string) error
}
