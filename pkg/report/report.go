// Package report renders the inventory: a fixed-width table sorted by
// instance identifier, an optional CSV export, and an optional jq-style
// query over the JSON form of the rows.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/opsgrid/dbfleet/pkg/connector/services/aws/elasticache"
	"github.com/opsgrid/dbfleet/pkg/connector/services/aws/rds"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PrintRDS writes the instance table. withTarget adds the Target Version
// column produced by the resolver.
func PrintRDS(w io.Writer, instances []rds.InstanceInfo, withTarget bool) {
	sorted := make([]rds.InstanceInfo, len(instances))
	copy(sorted, instances)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Identifier < sorted[j].Identifier })

	header := []string{"Instance", "Cluster", "Instance Type", "Current Version"}
	if withTarget {
		header = append(header, "Target Version")
	}
	header = append(header, "Storage", "Storage Type")

	rows := make([][]string, 0, len(sorted))
	for _, inst := range sorted {
		row := []string{inst.Identifier, inst.Cluster, inst.InstanceClass, inst.EngineVersion}
		if withTarget {
			row = append(row, inst.TargetVersion)
		}
		row = append(row, fmt.Sprintf("%d GB", inst.AllocatedStorage), inst.StorageType)
		rows = append(rows, row)
	}

	printTable(w, engineTitle("postgres"), header, rows)
}

// PrintRedis writes the cache-node table.
func PrintRedis(w io.Writer, nodes []elasticache.NodeInfo, withTarget bool) {
	sorted := make([]elasticache.NodeInfo, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Identifier < sorted[j].Identifier })

	header := []string{"Node", "Replication Group", "Cluster", "Node Type", "Current Version"}
	if withTarget {
		header = append(header, "Target Version")
	}

	rows := make([][]string, 0, len(sorted))
	for _, node := range sorted {
		row := []string{node.Identifier, node.ReplicationGroup, node.Cluster, node.NodeType, node.EngineVersion}
		if withTarget {
			row = append(row, node.TargetVersion)
		}
		rows = append(rows, row)
	}

	printTable(w, engineTitle("redis"), header, rows)
}

func engineTitle(engine string) string {
	return cases.Title(language.Und).String(engine)
}

func printTable(w io.Writer, title string, header []string, rows [][]string) {
	fmt.Fprintf(w, "%s fleet (%d):\n", title, len(rows))

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow(w, header, widths)
	separators := make([]string, len(header))
	for i := range header {
		separators[i] = strings.Repeat("-", widths[i])
	}
	printRow(w, separators, widths)
	for _, row := range rows {
		printRow(w, row, widths)
	}
}

func printRow(w io.Writer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}

// WriteCSV exports rows (a pointer to a slice of records) to path.
func WriteCSV(path string, rows interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(rows, f); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}
