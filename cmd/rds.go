package cmd

import (
	"os"
	"time"

	"github.com/opsgrid/dbfleet/pkg/eol"
	"github.com/opsgrid/dbfleet/pkg/fleet"
	"github.com/opsgrid/dbfleet/pkg/report"
	"github.com/opsgrid/dbfleet/pkg/upgrade"
	"github.com/spf13/cobra"
)

var rdsCmd = &cobra.Command{
	Use:   "rds",
	Short: "Inventory and patch the RDS PostgreSQL fleet",
}

var rdsReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the instance inventory of an environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyLogLevel(cmd)
		clusters, err := resolveClusters()
		if err != nil {
			return err
		}

		instances := fleet.GatherRDS(cmd.Context(), clusters, fleet.DefaultRDSLister(awsEndpointUrl))
		if queryExpr != "" {
			return report.Query(os.Stdout, instances, queryExpr)
		}

		report.PrintRDS(os.Stdout, instances, false)
		if csvFile != "" {
			if err := report.WriteCSV(csvFile, &instances); err != nil {
				return err
			}
			logger.Info("Wrote CSV export", "file", csvFile)
		}
		if checkEOL {
			releases, err := eol.FetchPostgres()
			if err != nil {
				return err
			}
			for _, line := range eol.Warnings(instances, releases, time.Now()) {
				logger.PrintRed(line)
			}
		}
		return nil
	},
}

var rdsUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Plan minor engine upgrades; --apply executes them after confirmation",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyLogLevel(cmd)
		clusters, err := resolveClusters()
		if err != nil {
			return err
		}

		instances := fleet.GatherRDS(cmd.Context(), clusters, fleet.DefaultRDSLister(awsEndpointUrl))
		if listOnly {
			report.PrintRDS(os.Stdout, instances, false)
			return nil
		}

		annotated, plan := upgrade.PlanRDSUpgrades(instances, clusters, upgrade.PostgresTargets, fleet.DefaultRDSModifier(awsEndpointUrl))
		report.PrintRDS(os.Stdout, annotated, true)

		if !applyChanges {
			plan.Print(os.Stdout)
			return nil
		}
		return plan.Apply(cmd.Context(), os.Stdin, os.Stdout)
	},
}

func init() {
	rdsCmd.PersistentFlags().StringVarP(&envName, flagEnv, "e", "", "Environment name (required)")
	rdsCmd.PersistentFlags().StringVar(&skipPattern, flagSkipPattern, "", "Exclude clusters whose name matches this pattern")
	if err := rdsCmd.MarkPersistentFlagRequired(flagEnv); err != nil {
		logger.Fatal("Required flag not registered", "err", err, "flag", flagEnv)
	}

	rdsReportCmd.Flags().StringVar(&csvFile, flagCSV, "", "Also write the report to this CSV file")
	rdsReportCmd.Flags().BoolVar(&checkEOL, flagCheckEOL, false, "Flag majors past PostgreSQL end of life")
	rdsReportCmd.Flags().StringVarP(&queryExpr, flagQuery, "q", "", "Print a jq query over the inventory instead of the table")

	rdsUpgradeCmd.Flags().BoolVar(&applyChanges, flagApply, false, "Execute the plan after confirmation (default: plan only)")
	rdsUpgradeCmd.Flags().BoolVar(&listOnly, flagListOnly, false, "Only print the inventory, skip target computation")

	rdsCmd.AddCommand(rdsReportCmd)
	rdsCmd.AddCommand(rdsUpgradeCmd)
	rootCmd.AddCommand(rdsCmd)
}
