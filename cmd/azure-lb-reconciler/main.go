package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/giantswarm/azure-automation/pkg/project"
)

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%#v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     project.Name(),
		Short:   "Reconcile Azure networking resources against declared specs.",
		Long:    project.Description(),
		Version: project.Version(),

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().String(flagSpec, "", "Path of the YAML spec file.")
	cmd.PersistentFlags().String(flagResourceGroup, "", "Resource group override.")
	cmd.PersistentFlags().String(flagName, "", "Resource name override.")
	cmd.PersistentFlags().String(flagState, "", "Desired state override, present or absent.")
	cmd.PersistentFlags().String(flagLocation, "", "Location override.")
	cmd.PersistentFlags().String(flagProfile, "default", "Credentials profile to use.")
	cmd.PersistentFlags().Bool(flagCheck, false, "Report changes without applying them.")

	cmd.AddCommand(newLoadBalancerCommand(v))
	cmd.AddCommand(newTrafficManagerCommand(v))

	return cmd
}
