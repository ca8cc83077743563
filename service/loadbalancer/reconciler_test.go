package loadbalancer

import (
	"context"
	"strconv"
	"testing"

	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2019-11-01/network"
	"github.com/Azure/azure-sdk-for-go/services/resources/mgmt/2019-05-01/resources"
	"github.com/giantswarm/micrologger/microloggertest"
	"github.com/giantswarm/to"
)

func Test_Reconciler_New(t *testing.T) {
	testCases := []struct {
		name         string
		config       Config
		errorMatcher func(error) bool
	}{
		{
			name: "case 0: complete config",
			config: Config{
				API:            &apiMock{},
				Logger:         microloggertest.New(),
				SubscriptionID: testSubscriptionID,
			},
		},
		{
			name: "case 1: missing API",
			config: Config{
				Logger:         microloggertest.New(),
				SubscriptionID: testSubscriptionID,
			},
			errorMatcher: IsInvalidConfig,
		},
		{
			name: "case 2: missing logger",
			config: Config{
				API:            &apiMock{},
				SubscriptionID: testSubscriptionID,
			},
			errorMatcher: IsInvalidConfig,
		},
		{
			name: "case 3: missing subscription id",
			config: Config{
				API:    &apiMock{},
				Logger: microloggertest.New(),
			},
			errorMatcher: IsInvalidConfig,
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			_, err := New(tc.config)

			switch {
			case err == nil && tc.errorMatcher == nil:
				// correct; carry on
			case err != nil && tc.errorMatcher == nil:
				t.Fatalf("error == %#v, want nil", err)
			case err == nil && tc.errorMatcher != nil:
				t.Fatalf("error == nil, want non-nil")
			case !tc.errorMatcher(err):
				t.Fatalf("error == %#v, want matching", err)
			}
		})
	}
}

func Test_Reconciler_Reconcile_Absent(t *testing.T) {
	testCases := []struct {
		name            string
		mock            *apiMock
		checkMode       bool
		expectedChanged bool
		expectedDeleted bool
	}{
		{
			name:            "case 0: already absent is unchanged",
			mock:            &apiMock{},
			expectedChanged: false,
			expectedDeleted: false,
		},
		{
			name: "case 1: existing load balancer is deleted",
			mock: func() *apiMock {
				lb := testLoadBalancer()
				return &apiMock{loadBalancer: &lb}
			}(),
			expectedChanged: true,
			expectedDeleted: true,
		},
		{
			name: "case 2: check mode reports the deletion without doing it",
			mock: func() *apiMock {
				lb := testLoadBalancer()
				return &apiMock{loadBalancer: &lb}
			}(),
			checkMode:       true,
			expectedChanged: true,
			expectedDeleted: false,
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			r, err := New(Config{
				API:            tc.mock,
				Logger:         microloggertest.New(),
				CheckMode:      tc.checkMode,
				SubscriptionID: testSubscriptionID,
			})
			if err != nil {
				t.Fatalf("error == %#v, want nil", err)
			}

			result, err := r.Reconcile(context.Background(), Spec{
				ResourceGroup: "myResourceGroup",
				Name:          "lb",
				State:         StateAbsent,
			})
			if err != nil {
				t.Fatalf("error == %#v, want nil", err)
			}

			if result.Changed != tc.expectedChanged {
				t.Fatalf("result.Changed == %v, want %v", result.Changed, tc.expectedChanged)
			}
			if tc.mock.deleted != tc.expectedDeleted {
				t.Fatalf("deleted == %v, want %v", tc.mock.deleted, tc.expectedDeleted)
			}
			if result.State.Name != "" {
				t.Fatalf("result.State must be empty for absent state, got name %q", result.State.Name)
			}
		})
	}
}

func Test_Reconciler_Reconcile_Present(t *testing.T) {
	newMock := func(lb *network.LoadBalancer) *apiMock {
		return &apiMock{
			group:        resources.Group{Location: to.StringP("eastus")},
			loadBalancer: lb,
			publicIPs: map[string]network.PublicIPAddress{
				"testPublicIP": {
					ID: to.StringP("/subscriptions/" + testSubscriptionID + "/resourceGroups/myResourceGroup/providers/Microsoft.Network/publicIPAddresses/testPublicIP"),
				},
			},
			subnets: map[string]network.Subnet{
				"subnet": {
					ID: to.StringP("/subscriptions/" + testSubscriptionID + "/resourceGroups/myResourceGroup/providers/Microsoft.Network/virtualNetworks/vnet/subnets/subnet"),
				},
			},
		}
	}

	testCases := []struct {
		name            string
		spec            func() Spec
		mock            *apiMock
		checkMode       bool
		expectedChanged bool
		expectedWritten bool
	}{
		{
			name:            "case 0: missing load balancer is created",
			spec:            testSpec,
			mock:            newMock(nil),
			expectedChanged: true,
			expectedWritten: true,
		},
		{
			name: "case 1: matching load balancer is left alone",
			spec: testSpec,
			mock: func() *apiMock {
				lb := testLoadBalancer()
				return newMock(&lb)
			}(),
			expectedChanged: false,
			expectedWritten: false,
		},
		{
			name: "case 2: drifted load balancer is updated",
			spec: func() Spec {
				spec := testSpec()
				spec.LoadBalancingRules[0].BackendPort = 9090
				return spec
			},
			mock: func() *apiMock {
				lb := testLoadBalancer()
				return newMock(&lb)
			}(),
			expectedChanged: true,
			expectedWritten: true,
		},
		{
			name:            "case 3: check mode reports the update without doing it",
			spec:            testSpec,
			mock:            newMock(nil),
			checkMode:       true,
			expectedChanged: true,
			expectedWritten: false,
		},
		{
			name: "case 4: new tag triggers an update",
			spec: func() Spec {
				spec := testSpec()
				spec.Tags = map[string]string{"owner": "platform"}
				return spec
			},
			mock: func() *apiMock {
				lb := testLoadBalancer()
				lb.Tags = map[string]*string{"env": to.StringP("prod")}
				return newMock(&lb)
			}(),
			expectedChanged: true,
			expectedWritten: true,
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			r, err := New(Config{
				API:            tc.mock,
				Logger:         microloggertest.New(),
				CheckMode:      tc.checkMode,
				SubscriptionID: testSubscriptionID,
			})
			if err != nil {
				t.Fatalf("error == %#v, want nil", err)
			}

			result, err := r.Reconcile(context.Background(), tc.spec())
			if err != nil {
				t.Fatalf("error == %#v, want nil", err)
			}

			if result.Changed != tc.expectedChanged {
				t.Fatalf("result.Changed == %v, want %v", result.Changed, tc.expectedChanged)
			}
			if (tc.mock.createdOrUpdated != nil) != tc.expectedWritten {
				t.Fatalf("written == %v, want %v", tc.mock.createdOrUpdated != nil, tc.expectedWritten)
			}
		})
	}
}

func Test_Reconciler_Reconcile_MergesTags(t *testing.T) {
	lb := testLoadBalancer()
	lb.Tags = map[string]*string{"env": to.StringP("prod")}

	mock := &apiMock{
		group:        resources.Group{Location: to.StringP("eastus")},
		loadBalancer: &lb,
		publicIPs: map[string]network.PublicIPAddress{
			"testPublicIP": {
				ID: to.StringP("/subscriptions/" + testSubscriptionID + "/resourceGroups/myResourceGroup/providers/Microsoft.Network/publicIPAddresses/testPublicIP"),
			},
		},
	}

	r, err := New(Config{
		API:            mock,
		Logger:         microloggertest.New(),
		SubscriptionID: testSubscriptionID,
	})
	if err != nil {
		t.Fatalf("error == %#v, want nil", err)
	}

	spec := testSpec()
	spec.Tags = map[string]string{"owner": "platform"}

	result, err := r.Reconcile(context.Background(), spec)
	if err != nil {
		t.Fatalf("error == %#v, want nil", err)
	}
	if !result.Changed {
		t.Fatalf("result.Changed == false, want true")
	}
	if mock.createdOrUpdated == nil {
		t.Fatalf("expected an update call")
	}

	tags := mock.createdOrUpdated.Tags
	if v, ok := tags["env"]; !ok || *v != "prod" {
		t.Fatalf("existing tag env must survive the merge, got %v", tags)
	}
	if v, ok := tags["owner"]; !ok || *v != "platform" {
		t.Fatalf("desired tag owner must be merged, got %v", tags)
	}
}
