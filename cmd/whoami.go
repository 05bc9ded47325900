package cmd

import (
	"fmt"
	"os"

	"github.com/opsgrid/dbfleet/pkg/config"
	"github.com/opsgrid/dbfleet/pkg/connector"
	"github.com/spf13/cobra"

	"github.com/aws/aws-sdk-go-v2/aws"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Resolve the caller identity behind every cluster profile of an environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyLogLevel(cmd)
		clusters, err := resolveClusters()
		if err != nil {
			return err
		}

		for _, id := range config.SortedIdentifiers(clusters) {
			cc, err := connector.NewCloudConnector(id, clusters[id], awsEndpointUrl)
			if err != nil {
				logger.Error("Error resolving credentials, skipping cluster", "cluster", id, "err", err)
				continue
			}
			identity := cc.Whoami()
			if identity == nil {
				continue
			}
			fmt.Fprintf(os.Stdout, "%s: account=%s arn=%s\n", id, aws.ToString(identity.Account), aws.ToString(identity.Arn))
		}
		return nil
	},
}

func init() {
	whoamiCmd.Flags().StringVarP(&envName, flagEnv, "e", "", "Environment name (required)")
	whoamiCmd.Flags().StringVar(&skipPattern, flagSkipPattern, "", "Exclude clusters whose name matches this pattern")
	if err := whoamiCmd.MarkFlagRequired(flagEnv); err != nil {
		logger.Fatal("Required flag not registered", "err", err, "flag", flagEnv)
	}

	rootCmd.AddCommand(whoamiCmd)
}
