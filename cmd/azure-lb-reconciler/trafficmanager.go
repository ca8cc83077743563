package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sigs.k8s.io/yaml"

	"github.com/giantswarm/microerror"

	"github.com/giantswarm/azure-automation/service/trafficmanager"
)

func newTrafficManagerCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trafficmanager",
		Short: "Reconcile a Traffic Manager profile against its spec.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrafficManager(v, cmd)
		},
	}

	return cmd
}

func runTrafficManager(v *viper.Viper, cmd *cobra.Command) error {
	ctx := cmd.Context()

	err := bindFlags(v, cmd)
	if err != nil {
		return microerror.Mask(err)
	}

	var spec trafficmanager.Spec
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
	}

	deps, err := newDependencies(v)
	if err != nil {
		return microerror.Mask(err)
	}

	var reconciler *trafficmanager.Reconciler
	{
		c := trafficmanager.Config{
			API:    trafficmanager.GetAPI(deps.clientFactory, deps.profile),
			Logger: deps.logger,

			CheckMode: v.GetBool(flagCheck),
		}

		reconciler, err = trafficmanager.New(c)
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
