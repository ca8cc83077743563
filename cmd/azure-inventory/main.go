package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	"github.com/spf13/cobra"

	"github.com/giantswarm/azure-automation/client"
	"github.com/giantswarm/azure-automation/pkg/credential"
	"github.com/giantswarm/azure-automation/pkg/project"
	"github.com/giantswarm/azure-automation/service/inventory"
)

const varsKeyResourceGroup = "common.rg"

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%#v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		list          bool
		host          string
		resourceGroup string
		usePublicIP   bool
		profile       string
		varsFile      string
	)

	cmd := &cobra.Command{
		Use:     "azure-inventory",
		Short:   "Print a dynamic inventory of running VMs in one resource group.",
		Version: project.Version(),

		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Hostvars ship with --list inside _meta, so per host lookup has
			// nothing to add.
			if host != "" {
				cmd.Println("{}")
				return nil
			}

			return run(cmd, resourceGroup, varsFile, profile, usePublicIP)
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.Flags().BoolVar(&list, "list", false, "Print the full inventory.")
	cmd.Flags().StringVar(&host, "host", "", "Print variables of a single host. Hostvars already ship with --list.")
	cmd.Flags().StringVar(&resourceGroup, "rg", "", "Resource group to inventory. Defaults to the vars file value.")
	cmd.Flags().BoolVar(&usePublicIP, "public", false, "Key hosts by public IP address.")
	cmd.Flags().StringVar(&profile, "profile", credential.DefaultProfile, "Credentials profile to use.")
	cmd.Flags().StringVar(&varsFile, "vars-file", "all-variables.yml", "Variables file resolving the default resource group.")

	return cmd
}

func run(cmd *cobra.Command, resourceGroup, varsFile, profile string, usePublicIP bool) error {
	ctx := cmd.Context()

	var err error

	var logger micrologger.Logger
	{
		c := micrologger.Config{
			IOWriter: os.Stderr,
		}

		logger, err = micrologger.New(c)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	if resourceGroup == "" {
		resourceGroup, err = inventory.ResolveResourceGroup(varsFile, varsKeyResourceGroup)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	var clientFactory *client.Factory
	{
		var credentialProvider credential.Provider
		{
			c := credential.DefaultProviderConfig{
				Logger: logger,
			}

			credentialProvider, err = credential.NewDefaultProvider(c)
			if err != nil {
				return microerror.Mask(err)
			}
		}

		c := client.FactoryConfig{
			CacheDuration:      30 * time.Minute,
			CredentialProvider: credentialProvider,
			Logger:             logger,
		}

		clientFactory, err = client.NewFactory(c)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	var builder *inventory.Builder
	{
		c := inventory.Config{
			API:    inventory.GetAPI(clientFactory, profile),
			Logger: logger,

			UsePublicIP: usePublicIP,
		}

		builder, err = inventory.NewBuilder(c)
		if err != nil {
			return microerror.Mask(err)
		}
	}

	out, err := json.MarshalIndent(builder.Build(ctx, resourceGroup), "", "  ")
	if err != nil {
		return microerror.Mask(err)
	}
	cmd.Println(string(out))

	return nil
}
