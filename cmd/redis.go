package cmd

import (
	"os"

	"github.com/opsgrid/dbfleet/pkg/fleet"
	"github.com/opsgrid/dbfleet/pkg/report"
	"github.com/opsgrid/dbfleet/pkg/upgrade"
	"github.com/spf13/cobra"
)

var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Inventory and patch the ElastiCache Redis fleet",
}

var redisReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the cache-node inventory of an environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyLogLevel(cmd)
		clusters, err := resolveClusters()
		if err != nil {
			return err
		}

		nodes := fleet.GatherRedis(cmd.Context(), clusters, fleet.DefaultRedisLister(awsEndpointUrl))
		if queryExpr != "" {
			return report.Query(os.Stdout, nodes, queryExpr)
		}

		report.PrintRedis(os.Stdout, nodes, false)
		if csvFile != "" {
			if err := report.WriteCSV(csvFile, &nodes); err != nil {
				return err
			}
			logger.Info("Wrote CSV export", "file", csvFile)
		}
		return nil
	},
}

var redisUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Plan engine patches per replication group; --apply executes them after confirmation",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyLogLevel(cmd)
		clusters, err := resolveClusters()
		if err != nil {
			return err
		}

		nodes := fleet.GatherRedis(cmd.Context(), clusters, fleet.DefaultRedisLister(awsEndpointUrl))
		if listOnly {
			report.PrintRedis(os.Stdout, nodes, false)
			return nil
		}

		annotated, plan := upgrade.PlanRedisUpgrades(nodes, clusters, upgrade.RedisTargets, fleet.DefaultRedisModifier(awsEndpointUrl))
		report.PrintRedis(os.Stdout, annotated, true)

		if !applyChanges {
			plan.Print(os.Stdout)
			return nil
		}
		return plan.Apply(cmd.Context(), os.Stdin, os.Stdout)
	},
}

func init() {
	redisCmd.PersistentFlags().StringVarP(&envName, flagEnv, "e", "", "Environment name (required)")
	redisCmd.PersistentFlags().StringVar(&skipPattern, flagSkipPattern, "", "Exclude clusters whose name matches this pattern")
	if err := redisCmd.MarkPersistentFlagRequired(flagEnv); err != nil {
		logger.Fatal("Required flag not registered", "err", err, "flag", flagEnv)
	}

	redisReportCmd.Flags().StringVar(&csvFile, flagCSV, "", "Also write the report to this CSV file")
	redisReportCmd.Flags().StringVarP(&queryExpr, flagQuery, "q", "", "Print a jq query over the inventory instead of the table")

	redisUpgradeCmd.Flags().BoolVar(&applyChanges, flagApply, false, "Execute the plan after confirmation (default: plan only)")
	redisUpgradeCmd.Flags().BoolVar(&listOnly, flagListOnly, false, "Only print the inventory, skip target computation")

	redisCmd.AddCommand(redisReportCmd)
	redisCmd.AddCommand(redisUpgradeCmd)
	rootCmd.AddCommand(redisCmd)
}
