package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/opsgrid/dbfleet/pkg/replication"
	"github.com/opsgrid/dbfleet/pkg/schema"
	"github.com/spf13/cobra"
)

var (
	csConfigFile string
	csSchemaA    string
	csSchemaB    string
)

var compareSchemasCmd = &cobra.Command{
	Use:   "compare-schemas",
	Short: "Diff table, index, and constraint definitions between two servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyLogLevel(cmd)

		pair, err := schema.LoadServerPair(csConfigFile)
		if err != nil {
			return err
		}

		snapA, err := fetchSnapshot(cmd.Context(), pair.ServerA, csSchemaA)
		if err != nil {
			return err
		}
		snapB, err := fetchSnapshot(cmd.Context(), pair.ServerB, csSchemaB)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Server A Host: %s\n", schema.ShortHost(pair.ServerA.Host))
		fmt.Fprintf(os.Stdout, "Server B Host: %s\n", schema.ShortHost(pair.ServerB.Host))

		diff := schema.Compare(snapA, snapB)
		if len(diff.Differences) == 0 {
			fmt.Fprintln(os.Stdout, "No differences found between the two schemas.")
			return nil
		}

		fmt.Fprintln(os.Stdout, "Differences found:")
		for _, line := range diff.Differences {
			fmt.Fprintf(os.Stdout, " - %s\n", line)
		}
		fmt.Fprintf(os.Stdout, "\nSQL statements to apply to %s to match %s:\n",
			schema.ShortHost(pair.ServerB.Host), schema.ShortHost(pair.ServerA.Host))
		for _, stmt := range diff.SyncSQL {
			fmt.Fprintln(os.Stdout, stmt)
		}
		return nil
	},
}

func fetchSnapshot(ctx context.Context, server schema.Server, schemaName string) (schema.Snapshot, error) {
	conn, err := replication.Connect(ctx, server.Host, server.Port, server.DBName, server.User, server.Password)
	if err != nil {
		return schema.Snapshot{}, fmt.Errorf("connecting to %s: %w", server.Host, err)
	}
	defer conn.Close(ctx)
	return schema.Fetch(ctx, conn, server.Host, schemaName)
}

func init() {
	compareSchemasCmd.Flags().StringVar(&csConfigFile, "config", "", "YAML file naming server_a and server_b (required)")
	compareSchemasCmd.Flags().StringVar(&csSchemaA, "schema-a", "public", "Schema name on server A")
	compareSchemasCmd.Flags().StringVar(&csSchemaB, "schema-b", "public", "Schema name on server B")
	if err := compareSchemasCmd.MarkFlagRequired("config"); err != nil {
		logger.Fatal("Required flag not registered", "err", err, "flag", "config")
	}

	rootCmd.AddCommand(compareSchemasCmd)
}
