package trafficmanager

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/services/trafficmanager/mgmt/2018-04-01/trafficmanager"
	"github.com/giantswarm/microerror"
)

type apiMock struct {
	profiles []trafficmanager.Profile

	createdOrUpdated *trafficmanager.Profile
	deleted          bool
}

func (m *apiMock) ListProfiles(ctx context.Context, resourceGroup string) ([]trafficmanager.Profile, error) {
	return m.profiles, nil
}

func (m *apiMock) GetProfile(ctx context.Context, resourceGroup, name string) (trafficmanager.Profile, error) {
	for _, profile := range m.profiles {
		if profile.Name != nil && *profile.Name == name {
			return profile, nil
		}
	}
	return trafficmanager.Profile{}, microerror.Maskf(notFoundError, "profile %#q", name)
}

func (m *apiMock) CreateOrUpdateProfile(ctx context.Context, resourceGroup, name string, profile trafficmanager.Profile) error {
	m.createdOrUpdated = &profile
	return nil
}

func (m *apiMock) DeleteProfile(ctx context.Context, resourceGroup, name string) error {
	for _, profile := range m.profiles {
		if profile.Name != nil && *profile.Name == name {
			m.deleted = true
			return nil
		}
	}
	return microerror.Maskf(notFoundError, "profile %#q", name)
}
