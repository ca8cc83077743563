package loadbalancer

import (
	"context"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
)

type Config struct {
	API    API
	Logger micrologger.Logger

	CheckMode      bool
	SubscriptionID string
}

// Reconciler drives a load balancer towards a declared spec. A single
// Reconcile call performs one full pass: fetch, compare, converge.
type Reconciler struct {
	api    API
	logger micrologger.Logger

	checkMode      bool
	subscriptionID string
}

func New(config Config) (*Reconciler, error) {
	if config.API == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.API must not be empty", config)
	}
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}
	if config.SubscriptionID == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.SubscriptionID must not be empty", config)
	}

	r := &Reconciler{
		api:    config.API,
		logger: config.Logger,

		checkMode:      config.CheckMode,
		subscriptionID: config.SubscriptionID,
	}

	return r, nil
}

// Result is the reconciliation outcome. Changed reports whether the pass
// mutated anything (or would have, in check mode). State describes the load
// balancer after the pass, or is zero when the load balancer is absent.
type Result struct {
	Changed bool  `json:"changed"`
	State   State `json:"state"`
}

func (r *Reconciler) Reconcile(ctx context.Context, spec Spec) (Result, error) {
	spec, err := spec.Normalized()
	if err != nil {
		return Result{}, microerror.Mask(err)
	}

	if spec.State == StateAbsent {
		result, err := r.ensureAbsent(ctx, spec)
		if err != nil {
			return Result{}, microerror.Mask(err)
		}
		return result, nil
	}

	result, err := r.ensurePresent(ctx, spec)
	if err != nil {
		return Result{}, microerror.Mask(err)
	}
	return result, nil
}

func (r *Reconciler) ensureAbsent(ctx context.Context, spec Spec) (Result, error) {
	_, err := r.api.GetLoadBalancer(ctx, spec.ResourceGroup, spec.Name)
	if IsNotFound(err) {
		r.logger.Debugf(ctx, "load balancer %#q in resource group %#q already absent", spec.Name, spec.ResourceGroup)
		return Result{Changed: false}, nil
	} else if err != nil {
		return Result{}, microerror.Mask(err)
	}

	if r.checkMode {
		r.logger.Debugf(ctx, "check mode, not deleting load balancer %#q", spec.Name)
		return Result{Changed: true}, nil
	}

	err = r.api.DeleteLoadBalancer(ctx, spec.ResourceGroup, spec.Name)
	if err != nil {
		return Result{}, microerror.Mask(err)
	}
	r.logger.Debugf(ctx, "deleted load balancer %#q in resource group %#q", spec.Name, spec.ResourceGroup)

	return Result{Changed: true}, nil
}

func (r *Reconciler) ensurePresent(ctx context.Context, spec Spec) (Result, error) {
	location := spec.Location
	if location == "" {
		group, err := r.api.GetResourceGroup(ctx, spec.ResourceGroup)
		if err != nil {
			return Result{}, microerror.Mask(err)
		}
		location = toString(group.Location)
	}

	var changed bool
	var reason string
	var tags map[string]*string
	{
		actual, err := r.api.GetLoadBalancer(ctx, spec.ResourceGroup, spec.Name)
		if IsNotFound(err) {
			changed = true
			reason = "load balancer does not exist"
			tags = toTagMap(spec.Tags)
		} else if err != nil {
			return Result{}, microerror.Mask(err)
		} else {
			var tagsChanged bool
			tags, tagsChanged = mergeTags(actual.Tags, spec.Tags)

			outcome := Compare(spec, actual)
			if outcome.Changed {
				changed = true
				reason = outcome.Reason
			} else if tagsChanged {
				changed = true
				reason = "tags differ"
			}

			if !changed {
				return Result{Changed: false, State: newState(actual)}, nil
			}
		}
	}

	r.logger.Debugf(ctx, "load balancer %#q needs update: %s", spec.Name, reason)

	desired, err := r.build(ctx, spec, location, tags)
	if err != nil {
		return Result{}, microerror.Mask(err)
	}

	if r.checkMode {
		r.logger.Debugf(ctx, "check mode, not updating load balancer %#q", spec.Name)
		return Result{Changed: true, State: newState(desired)}, nil
	}

	err = r.api.CreateOrUpdateLoadBalancer(ctx, spec.ResourceGroup, spec.Name, desired)
	if err != nil {
		return Result{}, microerror.Mask(err)
	}
	r.logger.Debugf(ctx, "updated load balancer %#q in resource group %#q", spec.Name, spec.ResourceGroup)

	return Result{Changed: true, State: newState(desired)}, nil
}

// mergeTags overlays the desired tags on the tags already present on the
// resource. Existing tags that the spec does not mention are kept. The
// second return reports whether the merge added or modified anything.
func mergeTags(existing map[string]*string, desired map[string]string) (map[string]*string, bool) {
	merged := make(map[string]*string, len(existing)+len(desired))
	for k, v := range existing {
		merged[k] = v
	}

	var changed bool
	for k, v := range desired {
		current, ok := merged[k]
		if !ok || toString(current) != v {
			changed = true
		}
		v := v
		merged[k] = &v
	}

	return merged, changed
}

func toTagMap(tags map[string]string) map[string]*string {
	if len(tags) == 0 {
		return nil
	}

	result := make(map[string]*string, len(tags))
	for k, v := range tags {
		v := v
		result[k] = &v
	}

	return result
}
