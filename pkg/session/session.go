// Package session opens an interactive psql session against one instance
// from the environment inventory. The command is executed with an argument
// vector so identifiers never pass through a shell.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strconv"

	"github.com/opsgrid/dbfleet/pkg/connector/services/aws/rds"

	"github.com/manifoldco/promptui"
)

// Pick presents the instances sorted by identifier and returns the chosen
// one.
func Pick(instances []rds.InstanceInfo) (rds.InstanceInfo, error) {
	if len(instances) == 0 {
		return rds.InstanceInfo{}, errors.New("no instances to open a session against")
	}

	sorted := make([]rds.InstanceInfo, len(instances))
	copy(sorted, instances)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Identifier < sorted[j].Identifier })

	items := make([]string, len(sorted))
	for i, inst := range sorted {
		items[i] = fmt.Sprintf("%s (%s, %s)", inst.Identifier, inst.Cluster, inst.EngineVersion)
	}

	prompt := promptui.Select{
		Label: "Instance",
		Items: items,
		Size:  15,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return rds.InstanceInfo{}, err
	}
	return sorted[idx], nil
}

// Open execs psql against the instance endpoint, inheriting the terminal.
// Authentication is psql's own business (PGPASSWORD, .pgpass, IAM token in
// the environment).
func Open(ctx context.Context, inst rds.InstanceInfo, database, user string) error {
	if inst.Endpoint == "" {
		return fmt.Errorf("instance %s has no reachable endpoint", inst.Identifier)
	}

	args := []string{
		"--host", inst.Endpoint,
		"--port", strconv.Itoa(int(inst.Port)),
		"--dbname", database,
		"--username", user,
	}
	cmd := exec.CommandContext(ctx, "psql", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
