package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sigs.k8s.io/yaml"

	"github.com/giantswarm/microerror"

	"github.com/giantswarm/azure-automation/service/loadbalancer"
)

func newLoadBalancerCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loadbalancer",
		Short: "Reconcile a load balancer against its spec.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoadBalancer(v, cmd)
		},
	}

	return cmd
}

func runLoadBalancer(v *viper.Viper, cmd *cobra.Command) error {
	ctx := cmd.Context()

	err := bindFlags(v, cmd)
	if err != nil {
		return microerror.Mask(err)
	}

	var spec loadbalancer.Spec
	{
		specFile := v.GetString(flagSpec)
		if specFile != "" {
			raw, err := readSpecFile(specFile)
			if err != nil {
				return microerror.Mask(err)
			}
			err = yaml.Unmarshal(raw, &spec)
			if err != nil {
				return microerror.Mask(err)
			}
		}

		if s := v.GetString(flagResourceGroup); s != "" {
			spec.ResourceGroup = s
		}
		if s := v.GetString(flagName); s != "" {
			spec.Name = s
		}
		if s := v.GetString(flagState); s != "" {
			spec.State = s
		}
		if s := v.GetString(flagLocation); s != "" {
			spec.Location = s
		}
	}

	deps, err := newDependencies(v)
	if err != nil {
		return microerror.Mask(err)
	}

	var reconciler *loadbalancer.Reconciler
	{
		c := loadbalancer.Config{
			API:    loadbalancer.GetAPI(deps.clientFactory, deps.profile),
			Logger: deps.logger,

			CheckMode:      v.GetBool(flagCheck),
			SubscriptionID: deps.subscriptionID,
		}

		reconciler, err = loadbalancer.New(c)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	result, err := reconciler.Reconcile(ctx, spec)
	if err != nil {
		return microerror.Mask(err)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return microerror.Mask(err)
	}
	cmd.Println(string(out))

	return nil
}
