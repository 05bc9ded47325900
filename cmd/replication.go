package cmd

import (
	"fmt"
	"os"

	"github.com/opsgrid/dbfleet/pkg/replication"
	"github.com/spf13/cobra"
)

var (
	replHost     string
	replPort     uint16
	replDatabase string
	replUser     string
)

var replicationCmd = &cobra.Command{
	Use:   "replication",
	Short: "Report logical replication health for one instance",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyLogLevel(cmd)

		conn, err := replication.Connect(cmd.Context(), replHost, replPort, replDatabase, replUser, os.Getenv("PGPASSWORD"))
		if err != nil {
			return fmt.Errorf("connecting to %s: %w", replHost, err)
		}
		defer conn.Close(cmd.Context())

		rep, err := replication.Gather(cmd.Context(), conn, replHost)
		if err != nil {
			return err
		}
		health := replication.Assess(rep)

		fmt.Fprintf(os.Stdout, "Host: %s\n", rep.Host)
		fmt.Fprintf(os.Stdout, "Slots: %d  Subscriptions: %d  Tablesync slots: %d\n",
			len(rep.Slots), len(rep.Subscriptions), len(rep.TablesyncSlots))
		switch health.Overall {
		case replication.StatusCritical:
			logger.PrintRed("Overall: " + health.Overall)
		case replication.StatusWarning:
			logger.PrintYellow("Overall: " + health.Overall)
		default:
			logger.PrintGreen("Overall: " + health.Overall)
		}
		for _, issue := range health.Issues {
			fmt.Fprintf(os.Stdout, "  issue: %s\n", issue)
		}
		for _, rec := range health.Recommendations {
			fmt.Fprintf(os.Stdout, "  recommendation: %s\n", rec)
		}
		return nil
	},
}

func init() {
	replicationCmd.Flags().StringVar(&replHost, "host", "", "Instance hostname (required)")
	replicationCmd.Flags().Uint16Var(&replPort, "port", 5432, "Port")
	replicationCmd.Flags().StringVar(&replDatabase, "database", "postgres", "Database to connect to")
	replicationCmd.Flags().StringVar(&replUser, "user", "postgres", "User to connect as")
	if err := replicationCmd.MarkFlagRequired("host"); err != nil {
		logger.Fatal("Required flag not registered", "err", err, "flag", "host")
	}

	rootCmd.AddCommand(replicationCmd)
}
