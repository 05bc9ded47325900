package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/opsgrid/dbfleet/pkg/io/logging"

	"gopkg.in/yaml.v2"
)

// Accounts with this prefix host ephemeral compute, not databases; they are
// excluded from every run regardless of the skip pattern.
const dataComputePrefix = "data-compute"

// ClusterRef points at one AWS account boundary in one region.
type ClusterRef struct {
	Identifier string
	Region     string
}

type entry struct {
	AWSAccountName string `yaml:"aws_account_name"`
	AWSRegion      string `yaml:"aws_region"`
}

type descriptor struct {
	Parent          *entry  `yaml:"parent"`
	DebeziumParents []entry `yaml:"debezium_parents"`
	DataParents     []entry `yaml:"data_parents"`
	Children        []entry `yaml:"children"`
}

// LoadEnvironment reads <root>/<name>.yaml and flattens it into the ordered
// list of clusters it names. A missing descriptor is fatal for the caller; a
// descriptor that parses to zero usable entries is not, an empty result is
// returned so dry runs against half-written files still work.
func LoadEnvironment(root, name string, skipPattern string) ([]ClusterRef, error) {
	logger := logging.GetLogManager()

	path := filepath.Join(root, name+".yaml")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config not found for environment %q: %w", name, err)
	}

	var skipRe *regexp.Regexp
	if skipPattern != "" {
		skipRe, err = regexp.Compile(skipPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid skip pattern %q: %w", skipPattern, err)
		}
	}

	var desc descriptor
	if err := yaml.Unmarshal(raw, &desc); err != nil {
		logger.Warn("Descriptor did not parse, continuing with no clusters", "env", name, "err", err)
		return nil, nil
	}

	var entries []entry
	if desc.Parent != nil {
		entries = append(entries, *desc.Parent)
	}
	entries = append(entries, desc.DebeziumParents...)
	entries = append(entries, desc.DataParents...)
	entries = append(entries, desc.Children...)

	var refs []ClusterRef
	for _, e := range entries {
		if e.AWSAccountName == "" || e.AWSRegion == "" {
			continue
		}
		if strings.HasPrefix(e.AWSAccountName, dataComputePrefix) {
			continue
		}
		if skipRe != nil && skipRe.MatchString(e.AWSAccountName) {
			logger.Info("Skipping cluster matching skip pattern", "cluster", e.AWSAccountName)
			continue
		}
		refs = append(refs, ClusterRef{Identifier: e.AWSAccountName, Region: e.AWSRegion})
	}
	return refs, nil
}

// Dedupe collapses refs into identifier -> region. The first occurrence of
// an identifier wins. Iteration order over the result is map order; callers
// that print or mutate must sort the identifiers first.
func Dedupe(refs []ClusterRef) map[string]string {
	out := make(map[string]string, len(refs))
	for _, ref := range refs {
		if _, seen := out[ref.Identifier]; !seen {
			out[ref.Identifier] = ref.Region
		}
	}
	return out
}

// SortedIdentifiers returns the dedup keys in ascending order, the shape
// every display and apply path iterates in.
func SortedIdentifiers(clusters map[string]string) []string {
	ids := make([]string, 0, len(clusters))
	for id := range clusters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
