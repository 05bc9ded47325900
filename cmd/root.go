package cmd

import (
	"fmt"

	"github.com/opsgrid/dbfleet/pkg/config"
	"github.com/opsgrid/dbfleet/pkg/io/logging"
	"github.com/spf13/cobra"
)

const (
	flagVerbose        = "verbose"
	flagDebug          = "debug"
	flagEnv            = "env"
	flagSkipPattern    = "skip-pattern"
	flagApply          = "apply"
	flagListOnly       = "list-only"
	flagCSV            = "csv"
	flagCheckEOL       = "check-eol"
	flagQuery          = "query"
	flagAWSEndpointUrl = "aws-endpoint-url"
)

var (
	logger         logging.LogManager
	envName        string
	skipPattern    string
	applyChanges   bool
	listOnly       bool
	csvFile        string
	checkEOL       bool
	queryExpr      string
	awsEndpointUrl string
	rootCmd        = &cobra.Command{
		Use:          "dbfleet",
		Short:        "Inventory and patch AWS-managed PostgreSQL and Redis fleets",
		SilenceUsage: true,
	}
)

func init() {
	logger = logging.GetLogManager()
	rootCmd.PersistentFlags().BoolP(flagVerbose, "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolP(flagDebug, "d", false, "Debug output")
	rootCmd.PersistentFlags().StringVar(&awsEndpointUrl, flagAWSEndpointUrl, "", "Override the AWS endpoint URL")
}

func Execute() error {
	return rootCmd.Execute()
}

func applyLogLevel(cmd *cobra.Command) {
	if cmd.Flags().Changed(flagVerbose) {
		logger.SetVerboseLevel()
	}
	if cmd.Flags().Changed(flagDebug) {
		logger.SetDebugLevel()
	}
}

// resolveClusters loads the selected environment descriptor and collapses it
// into the unique cluster set every fleet command iterates over.
func resolveClusters() (map[string]string, error) {
	root, err := config.EnvDir()
	if err != nil {
		return nil, err
	}
	refs, err := config.LoadEnvironment(root, envName, skipPattern)
	if err != nil {
		return nil, err
	}
	clusters := config.Dedupe(refs)
	logger.Info(fmt.Sprintf("%d clusters found", len(clusters)), "env", envName)
	return clusters, nil
}
