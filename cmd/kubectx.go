package cmd

import (
	"github.com/opsgrid/dbfleet/pkg/kubectx"
	"github.com/spf13/cobra"
)

var kubectxCmd = &cobra.Command{
	Use:   "kubectx",
	Short: "Select and persist the current Kubernetes context",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyLogLevel(cmd)
		return kubectx.Switch()
	},
}

func init() {
	rootCmd.AddCommand(kubectxCmd)
}
