package trafficmanager

import (
	"context"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
)

type Config struct {
	API    API
	Logger micrologger.Logger

	CheckMode bool
}

// Reconciler drives a Traffic Manager profile towards a declared spec.
type Reconciler struct {
	api    API
	logger micrologger.Logger

	checkMode bool
}

func New(config Config) (*Reconciler, error) {
	if config.API == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.API must not be empty", config)
	}
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}

	r := &Reconciler{
		api:    config.API,
		logger: config.Logger,

		checkMode: config.CheckMode,
	}

	return r, nil
}

// Result is the reconciliation outcome.
type Result struct {
	Changed bool  `json:"changed"`
	State   State `json:"state"`
}

func (r *Reconciler) Reconcile(ctx context.Context, spec Spec) (Result, error) {
	spec, err := spec.Normalized()
	if err != nil {
		return Result{}, microerror.Mask(err)
	}

	// Listing first avoids turning a plain miss into an API error. The
	// profile is fetched only when its name shows up in the listing.
	exists, err := r.profileExists(ctx, spec.ResourceGroup, spec.Name)
	if err != nil {
		return Result{}, microerror.Mask(err)
	}

	if spec.State == StateAbsent {
		if !exists {
			r.logger.Debugf(ctx, "profile %#q in resource group %#q already absent", spec.Name, spec.ResourceGroup)
			return Result{Changed: false, State: State{ResourceGroup: spec.ResourceGroup}}, nil
		}

		if r.checkMode {
			r.logger.Debugf(ctx, "check mode, not deleting profile %#q", spec.Name)
			return Result{Changed: true, State: State{ResourceGroup: spec.ResourceGroup}}, nil
		}

		err = r.api.DeleteProfile(ctx, spec.ResourceGroup, spec.Name)
		if err != nil {
			return Result{}, microerror.Mask(err)
		}
		r.logger.Debugf(ctx, "deleted profile %#q in resource group %#q", spec.Name, spec.ResourceGroup)

		return Result{Changed: true, State: State{ResourceGroup: spec.ResourceGroup}}, nil
	}

	if exists {
		actual, err := r.api.GetProfile(ctx, spec.ResourceGroup, spec.Name)
		if err != nil {
			return Result{}, microerror.Mask(err)
		}

		outcome := Compare(spec, actual)
		if !outcome.Changed {
			return Result{Changed: false, State: newState(spec.ResourceGroup, actual)}, nil
		}

		r.logger.Debugf(ctx, "profile %#q needs update: %s", spec.Name, outcome.Reason)
	} else {
		r.logger.Debugf(ctx, "profile %#q does not exist", spec.Name)
	}

	desired := build(spec)

	if r.checkMode {
		r.logger.Debugf(ctx, "check mode, not updating profile %#q", spec.Name)
		return Result{Changed: true, State: newState(spec.ResourceGroup, desired)}, nil
	}

	err = r.api.CreateOrUpdateProfile(ctx, spec.ResourceGroup, spec.Name, desired)
	if err != nil {
		return Result{}, microerror.Mask(err)
	}
	r.logger.Debugf(ctx, "updated profile %#q in resource group %#q", spec.Name, spec.ResourceGroup)

	return Result{Changed: true, State: newState(spec.ResourceGroup, desired)}, nil
}

func (r *Reconciler) profileExists(ctx context.Context, resourceGroup, name string) (bool, error) {
	profiles, err := r.api.ListProfiles(ctx, resourceGroup)
	if err != nil {
		return false, microerror.Mask(err)
	}

	for _, profile := range profiles {
		if profile.Name != nil && *profile.Name == name {
			return true, nil
		}
	}

	return false, nil
}
