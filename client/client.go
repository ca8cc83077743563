package client

import (
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2019-07-01/compute"
	"github.com/Azure/azure-sdk-for-go/services/network/mgmt/2019-11-01/network"
	"github.com/Azure/azure-sdk-for-go/services/resources/mgmt/2019-05-01/resources"
	"github.com/Azure/azure-sdk-for-go/services/trafficmanager/mgmt/2018-04-01/trafficmanager"
	"github.com/Azure/go-autorest/autorest"
	"github.com/giantswarm/microerror"
)

// ResponseWasNotFound returns true if the response code from the Azure API
// was a 404.
func ResponseWasNotFound(resp autorest.Response) bool {
	if resp.Response != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}

	return false
}

type clientCreatorFunc func(autorest.Authorizer, string, string) (interface{}, error)

func prepareClient(client *autorest.Client, authorizer autorest.Authorizer, partnerID string) error {
	client.Authorizer = authorizer
	err := client.AddToUserAgent(fmt.Sprintf("pid-%s", partnerID))
	if err != nil {
		return microerror.Mask(err)
	}

	return nil
}

func newGroupsClient(authorizer autorest.Authorizer, subscriptionID, partnerID string) (interface{}, error) {
	client := resources.NewGroupsClient(subscriptionID)
	err := prepareClient(&client.Client, authorizer, partnerID)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return &client, nil
}

func newInterfacesClient(authorizer autorest.Authorizer, subscriptionID, partnerID string) (interface{}, error) {
	client := network.NewInterfacesClient(subscriptionID)
	err := prepareClient(&client.Client, authorizer, partnerID)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return &client, nil
}

func newLoadBalancersClient(authorizer autorest.Authorizer, subscriptionID, partnerID string) (interface{}, error) {
	client := network.NewLoadBalancersClient(subscriptionID)
	err := prepareClient(&client.Client, authorizer, partnerID)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return &client, nil
}

func newPublicIPAddressesClient(authorizer autorest.Authorizer, subscriptionID, partnerID string) (interface{}, error) {
	client := network.NewPublicIPAddressesClient(subscriptionID)
	err := prepareClient(&client.Client, authorizer, partnerID)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return &client, nil
}

func newSubnetsClient(authorizer autorest.Authorizer, subscriptionID, partnerID string) (interface{}, error) {
	client := network.NewSubnetsClient(subscriptionID)
	err := prepareClient(&client.Client, authorizer, partnerID)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return &client, nil
}

func newTrafficManagerProfilesClient(authorizer autorest.Authorizer, subscriptionID, partnerID string) (interface{}, error) {
	client := trafficmanager.NewProfilesClient(subscriptionID)
	err := prepareClient(&client.Client, authorizer, partnerID)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return &client, nil
}

func newVirtualMachinesClient(authorizer autorest.Authorizer, subscriptionID, partnerID string) (interface{}, error) {
	client := compute.NewVirtualMachinesClient(subscriptionID)
	err := prepareClient(&client.Client, authorizer, partnerID)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return &client, nil
}

func toGroupsClient(client interface{}) *resources.GroupsClient {
	return client.(*resources.GroupsClient)
}

func toInterfacesClient(client interface{}) *network.InterfacesClient {
	return client.(*network.InterfacesClient)
}

func toLoadBalancersClient(client interface{}) *network.LoadBalancersClient {
	return client.(*network.LoadBalancersClient)
}

func toPublicIPAddressesClient(client interface{}) *network.PublicIPAddressesClient {
	return client.(*network.PublicIPAddressesClient)
}

func toSubnetsClient(client interface{}) *network.SubnetsClient {
	return client.(*network.SubnetsClient)
}

func toTrafficManagerProfilesClient(client interface{}) *trafficmanager.ProfilesClient {
	return client.(*trafficmanager.ProfilesClient)
}

func toVirtualMachinesClient(client interface{}) *compute.VirtualMachinesClient {
	return client.(*compute.VirtualMachinesClient)
}
