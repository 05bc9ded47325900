// Package kubectx switches the current kubeconfig context interactively.
package kubectx

import (
	"errors"
	"sort"

	"github.com/opsgrid/dbfleet/pkg/io/logging"

	"github.com/manifoldco/promptui"
	"k8s.io/client-go/tools/clientcmd"
)

// Switch lists the contexts in the default kubeconfig chain, lets the
// operator pick one, and persists it as current-context.
func Switch() error {
	logger := logging.GetLogManager()

	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	kubeconfig, err := rules.Load()
	if err != nil {
		return err
	}
	if len(kubeconfig.Contexts) == 0 {
		return errors.New("no contexts found in kubeconfig")
	}

	names := make([]string, 0, len(kubeconfig.Contexts))
	for name := range kubeconfig.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)

	current := 0
	for i, name := range names {
		if name == kubeconfig.CurrentContext {
			current = i
			break
		}
	}

	prompt := promptui.Select{
		Label:     "Kubernetes context",
		Items:     names,
		CursorPos: current,
		Size:      15,
	}
	_, selected, err := prompt.Run()
	if err != nil {
		return err
	}

	kubeconfig.CurrentContext = selected
	if err := clientcmd.ModifyConfig(rules, *kubeconfig, true); err != nil {
		return err
	}
	logger.Info("Switched context", "context", selected)
	return nil
}
