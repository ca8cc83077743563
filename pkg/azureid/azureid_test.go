package azureid

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_Parse(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		expected Reference
	}{
		{
			name: "case 0: frontend IP configuration reference",
			path: "/subscriptions/S/resourceGroups/R/providers/Microsoft.Network/loadBalancers/L/frontendIPConfigurations/F",
			expected: Reference{
				"subscriptions":            "S",
				"resourceGroups":           "R",
				"providers":                "Microsoft.Network",
				"loadBalancers":            "L",
				"frontendIPConfigurations": "F",
			},
		},
		{
			name: "case 1: network interface reference without leading slash",
			path: "subscriptions/sub1/resourceGroups/rg-aus-dev-api/providers/Microsoft.Network/networkInterfaces/vm0-nic",
			expected: Reference{
				"subscriptions":     "sub1",
				"resourceGroups":    "rg-aus-dev-api",
				"providers":         "Microsoft.Network",
				"networkInterfaces": "vm0-nic",
			},
		},
		{
			name: "case 2: trailing slash is tolerated",
			path: "/subscriptions/S/resourceGroups/R/",
			expected: Reference{
				"subscriptions":  "S",
				"resourceGroups": "R",
			},
		},
		{
			name: "case 3: dangling segment type is dropped",
			path: "/subscriptions/S/resourceGroups",
			expected: Reference{
				"subscriptions": "S",
			},
		},
		{
			name:     "case 4: empty path",
			path:     "",
			expected: Reference{},
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			ref := Parse(tc.path)

			if diff := cmp.Diff(tc.expected, ref); diff != "" {
				t.Fatalf("\n\n%s\n", diff)
			}
		})
	}
}

func Test_SubResourceIDs(t *testing.T) {
	frontendID := FrontendIPConfigurationID("S", "R", "L", "F")
	expected := "/subscriptions/S/resourceGroups/R/providers/Microsoft.Network/loadBalancers/L/frontendIPConfigurations/F"
	if frontendID != expected {
		t.Fatalf("expected %q, got %q", expected, frontendID)
	}

	// Building and parsing are inverse for the sub-resource name.
	ref := Parse(BackendAddressPoolID("S", "R", "L", "pool-a"))
	if ref.SegmentName("backendAddressPools") != "pool-a" {
		t.Fatalf("expected backend pool name %q, got %q", "pool-a", ref.SegmentName("backendAddressPools"))
	}

	ref = Parse(ProbeID("S", "R", "L", "probe-a"))
	if ref.SegmentName("probes") != "probe-a" {
		t.Fatalf("expected probe name %q, got %q", "probe-a", ref.SegmentName("probes"))
	}
}
