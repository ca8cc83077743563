package inventory

import (
	"context"
	"strconv"
	"testing"

	"github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2019-07-01/compute"
	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2019-11-01/network"
	"github.com/giantswarm/micrologger/microloggertest"
	"github.com/giantswarm/to"
	"github.com/google/go-cmp/cmp"
)

const testResourceGroup = "rg-aus-dev-api"

func testVM(name string, nicNames ...string) compute.VirtualMachine {
	var nicRefs []compute.NetworkInterfaceReference
	for _, nicName := range nicNames {
		nicRefs = append(nicRefs, compute.NetworkInterfaceReference{
			ID: to.StringP("/subscriptions/xxx/resourceGroups/" + testResourceGroup + "/providers/Microsoft.Network/networkInterfaces/" + nicName),
		})
	}

	return compute.VirtualMachine{
		Name:     to.StringP(name),
		ID:       to.StringP("/subscriptions/xxx/resourceGroups/" + testResourceGroup + "/providers/Microsoft.Compute/virtualMachines/" + name),
		Location: to.StringP("australiasoutheast"),
		Tags:     map[string]*string{"role": to.StringP(name)},
		VirtualMachineProperties: &compute.VirtualMachineProperties{
			NetworkProfile: &compute.NetworkProfile{
				NetworkInterfaces: &nicRefs,
			},
		},
	}
}

func testInstanceView(name string, displayStatus string) compute.VirtualMachine {
	return compute.VirtualMachine{
		Name: to.StringP(name),
		VirtualMachineProperties: &compute.VirtualMachineProperties{
			InstanceView: &compute.VirtualMachineInstanceView{
				Statuses: &[]compute.InstanceViewStatus{
					{Code: to.StringP("ProvisioningState/succeeded"), DisplayStatus: to.StringP("Provisioning succeeded")},
					{Code: to.StringP("PowerState/" + displayStatus), DisplayStatus: to.StringP("VM " + displayStatus)},
				},
			},
		},
	}
}

func testInterface(primary bool, privateIP, publicIPName string) network.Interface {
	props := &network.InterfaceIPConfigurationPropertiesFormat{
		PrivateIPAddress: to.StringP(privateIP),
	}
	if publicIPName != "" {
		props.PublicIPAddress = &network.PublicIPAddress{
			ID: to.StringP("/subscriptions/xxx/resourceGroups/" + testResourceGroup + "/providers/Microsoft.Network/publicIPAddresses/" + publicIPName),
		}
	}

	return network.Interface{
		InterfacePropertiesFormat: &network.InterfacePropertiesFormat{
			Primary: to.BoolP(primary),
			IPConfigurations: &[]network.InterfaceIPConfiguration{
				{InterfaceIPConfigurationPropertiesFormat: props},
			},
		},
	}
}

func testMock() *apiMock {
	return &apiMock{
		vms: []compute.VirtualMachine{
			testVM("web", "web-nic"),
			testVM("db", "db-nic"),
			testVM("batch", "batch-nic"),
		},
		instanceViews: map[string]compute.VirtualMachine{
			"web":   testInstanceView("web", "running"),
			"db":    testInstanceView("db", "running"),
			"batch": testInstanceView("batch", "deallocated"),
		},
		interfaces: map[string]network.Interface{
			"web-nic":   testInterface(true, "10.0.0.4", "web-ip"),
			"db-nic":    testInterface(true, "10.0.0.5", ""),
			"batch-nic": testInterface(true, "10.0.0.6", ""),
		},
		publicIPs: map[string]network.PublicIPAddress{
			"web-ip": {
				PublicIPAddressPropertiesFormat: &network.PublicIPAddressPropertiesFormat{
					IPAddress: to.StringP("52.1.2.3"),
				},
			},
		},
	}
}

func Test_Builder_Build(t *testing.T) {
	testCases := []struct {
		name              string
		mock              *apiMock
		usePublicIP       bool
		expectedInventory Inventory
	}{
		{
			name: "case 0: running VMs keyed by private ip",
			mock: testMock(),
			expectedInventory: Inventory{
				Meta: Meta{Hostvars: map[string]HostVars{
					"10.0.0.4": {
						Location:  "australiasoutheast",
						Name:      "web",
						ID:        "/subscriptions/xxx/resourceGroups/rg-aus-dev-api/providers/Microsoft.Compute/virtualMachines/web",
						Tags:      map[string]string{"role": "web"},
						PublicIP:  "52.1.2.3",
						PrivateIP: "10.0.0.4",
					},
					"10.0.0.5": {
						Location:  "australiasoutheast",
						Name:      "db",
						ID:        "/subscriptions/xxx/resourceGroups/rg-aus-dev-api/providers/Microsoft.Compute/virtualMachines/db",
						Tags:      map[string]string{"role": "db"},
						PrivateIP: "10.0.0.5",
					},
				}},
				AzureRunning: []string{"10.0.0.4", "10.0.0.5"},
			},
		},
		{
			name:        "case 1: public keying drops hosts without a public ip",
			mock:        testMock(),
			usePublicIP: true,
			expectedInventory: Inventory{
				Meta: Meta{Hostvars: map[string]HostVars{
					"52.1.2.3": {
						Location:  "australiasoutheast",
						Name:      "web",
						ID:        "/subscriptions/xxx/resourceGroups/rg-aus-dev-api/providers/Microsoft.Compute/virtualMachines/web",
						Tags:      map[string]string{"role": "web"},
						PublicIP:  "52.1.2.3",
						PrivateIP: "10.0.0.4",
					},
				}},
				AzureRunning: []string{"52.1.2.3"},
			},
		},
		{
			name: "case 2: secondary interfaces are ignored",
			mock: func() *apiMock {
				m := testMock()
				m.interfaces["db-nic"] = testInterface(false, "10.0.0.5", "")
				return m
			}(),
			expectedInventory: Inventory{
				Meta: Meta{Hostvars: map[string]HostVars{
					"10.0.0.4": {
						Location:  "australiasoutheast",
						Name:      "web",
						ID:        "/subscriptions/xxx/resourceGroups/rg-aus-dev-api/providers/Microsoft.Compute/virtualMachines/web",
						Tags:      map[string]string{"role": "web"},
						PublicIP:  "52.1.2.3",
						PrivateIP: "10.0.0.4",
					},
				}},
				AzureRunning: []string{"10.0.0.4"},
			},
		},
		{
			name: "case 3: traversal errors yield a partial inventory",
			mock: func() *apiMock {
				m := testMock()
				delete(m.interfaces, "web-nic")
				return m
			}(),
			expectedInventory: Inventory{
				Meta: Meta{Hostvars: map[string]HostVars{
					"10.0.0.5": {
						Location:  "australiasoutheast",
						Name:      "db",
						ID:        "/subscriptions/xxx/resourceGroups/rg-aus-dev-api/providers/Microsoft.Compute/virtualMachines/db",
						Tags:      map[string]string{"role": "db"},
						PrivateIP: "10.0.0.5",
					},
				}},
				AzureRunning: []string{"10.0.0.5"},
			},
		},
		{
			name: "case 4: listing error yields an empty inventory",
			mock: &apiMock{
				listErr: notFoundError,
			},
			expectedInventory: Inventory{
				Meta:         Meta{Hostvars: map[string]HostVars{}},
				AzureRunning: []string{},
			},
		},
		{
			name: "case 5: VM with a single status entry is not running",
			mock: func() *apiMock {
				m := testMock()
				m.instanceViews["web"] = compute.VirtualMachine{
					Name: to.StringP("web"),
					VirtualMachineProperties: &compute.VirtualMachineProperties{
						InstanceView: &compute.VirtualMachineInstanceView{
							Statuses: &[]compute.InstanceViewStatus{
								{Code: to.StringP("ProvisioningState/updating"), DisplayStatus: to.StringP("Updating")},
							},
						},
					},
				}
				return m
			}(),
			expectedInventory: Inventory{
				Meta: Meta{Hostvars: map[string]HostVars{
					"10.0.0.5": {
						Location:  "australiasoutheast",
						Name:      "db",
						ID:        "/subscriptions/xxx/resourceGroups/rg-aus-dev-api/providers/Microsoft.Compute/virtualMachines/db",
						Tags:      map[string]string{"role": "db"},
						PrivateIP: "10.0.0.5",
					},
				}},
				AzureRunning: []string{"10.0.0.5"},
			},
		},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			b, err := NewBuilder(Config{
				API:         tc.mock,
				Logger:      microloggertest.New(),
				UsePublicIP: tc.usePublicIP,
			})
			if err != nil {
				t.Fatalf("error == %#v, want nil", err)
			}

			inventory := b.Build(context.Background(), testResourceGroup)

			if !cmp.Equal(inventory, tc.expectedInventory) {
				t.Fatalf("\n\n%s\n", cmp.Diff(tc.expectedInventory, inventory))
			}
		})
	}
}
