package cmd

import (
	"github.com/opsgrid/dbfleet/pkg/fleet"
	"github.com/opsgrid/dbfleet/pkg/session"
	"github.com/spf13/cobra"
)

var (
	sessionDatabase string
	sessionUser     string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Pick an instance from an environment and open a psql session",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyLogLevel(cmd)
		clusters, err := resolveClusters()
		if err != nil {
			return err
		}

		instances := fleet.GatherRDS(cmd.Context(), clusters, fleet.DefaultRDSLister(awsEndpointUrl))
		inst, err := session.Pick(instances)
		if err != nil {
			return err
		}
		logger.Info("Opening session", "instance", inst.Identifier, "endpoint", inst.Endpoint)
		return session.Open(cmd.Context(), inst, sessionDatabase, sessionUser)
	},
}

func init() {
	sessionCmd.Flags().StringVarP(&envName, flagEnv, "e", "", "Environment name (required)")
	sessionCmd.Flags().StringVar(&skipPattern, flagSkipPattern, "", "Exclude clusters whose name matches this pattern")
	sessionCmd.Flags().StringVar(&sessionDatabase, "database", "postgres", "Database to connect to")
	sessionCmd.Flags().StringVar(&sessionUser, "user", "postgres", "User to connect as")
	if err := sessionCmd.MarkFlagRequired(flagEnv); err != nil {
		logger.Fatal("Required flag not registered", "err", err, "flag", flagEnv)
	}

	rootCmd.AddCommand(sessionCmd)
}
