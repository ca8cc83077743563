package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/giantswarm/microerror"
)

const (
	flagSpec          = "spec"
	flagResourceGroup = "resource-group"
	flagName          = "name"
	flagState         = "state"
	flagLocation      = "location"
	flagProfile       = "profile"
	flagCheck         = "check"
)

// bindFlags makes every flag also settable through the environment, e.g.
// --resource-group via AZURE_AUTOMATION_RESOURCE_GROUP.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix("AZURE_AUTOMATION")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	err := v.BindPFlags(cmd.Flags())
	if err != nil {
		return microerror.Mask(err)
	}

	return nil
}
