package trafficmanager

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/services/trafficmanager/mgmt/2018-04-01/trafficmanager"
	"github.com/giantswarm/microerror"

	"github.com/giantswarm/azure-automation/client"
)

type api struct {
	clientFactory *client.Factory
	profile       string
}

// GetAPI returns an API implementation backed by the Azure SDK clients for
// the given credential profile.
func GetAPI(f *client.Factory, profile string) API {
	return &api{
		clientFactory: f,
		profile:       profile,
	}
}

func (a *api) ListProfiles(ctx context.Context, resourceGroup string) ([]trafficmanager.Profile, error) {
	profilesClient, err := a.clientFactory.GetTrafficManagerProfilesClient(a.profile)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	result, err := profilesClient.ListByResourceGroup(ctx, resourceGroup)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	if result.Value == nil {
		return nil, nil
	}

	return *result.Value, nil
}

func (a *api) GetProfile(ctx context.Context, resourceGroup, name string) (trafficmanager.Profile, error) {
	profilesClient, err := a.clientFactory.GetTrafficManagerProfilesClient(a.profile)
	if err != nil {
		return trafficmanager.Profile{}, microerror.Mask(err)
	}

	profile, err := profilesClient.Get(ctx, resourceGroup, name)
	if err != nil {
		return trafficmanager.Profile{}, microerror.Mask(err)
	}

	return profile, nil
}

func (a *api) CreateOrUpdateProfile(ctx context.Context, resourceGroup, name string, profile trafficmanager.Profile) error {
	profilesClient, err := a.clientFactory.GetTrafficManagerProfilesClient(a.profile)
	if err != nil {
		return microerror.Mask(err)
	}

	_, err = profilesClient.CreateOrUpdate(ctx, resourceGroup, name, profile)
	if err != nil {
		return microerror.Mask(err)
	}

	return nil
}

func (a *api) DeleteProfile(ctx context.Context, resourceGroup, name string) error {
	profilesClient, err := a.clientFactory.GetTrafficManagerProfilesClient(a.profile)
	if err != nil {
		return microerror.Mask(err)
	}

	_, err = profilesClient.Delete(ctx, resourceGroup, name)
	if err != nil {
		return microerror.Mask(err)
	}

	return nil
}
