package replication

import (
	"fmt"
	"sort"
)

const (
	warnRetainedBytes = 10 << 20  // 10 MB behind
	critRetainedBytes = 100 << 20 // 100 MB behind
)

const (
	StatusHealthy  = "HEALTHY"
	StatusWarning  = "WARNING"
	StatusCritical = "CRITICAL"
)

type Health struct {
	Overall         string
	Issues          []string
	Recommendations []string
}

// Assess grades one instance report. Overall degrades monotonically:
// HEALTHY -> WARNING -> CRITICAL, never back.
func Assess(report Report) Health {
	health := Health{Overall: StatusHealthy}
	recommendations := make(map[string]struct{})

	for _, slot := range report.Slots {
		state := slot.State
		if state == "" {
			state = "inactive"
		}
		switch {
		case slot.RetainedBytes > critRetainedBytes:
			health.Overall = StatusCritical
			health.Issues = append(health.Issues,
				fmt.Sprintf("Critical replication lag in slot %s on %s: %.2f MB retained, state: %s",
					slot.Name, report.Host, float64(slot.RetainedBytes)/(1<<20), state))
			recommendations[fmt.Sprintf("Check for blocking transactions on the subscriber connected to %s (state: %s)", slot.Name, state)] = struct{}{}
		case slot.RetainedBytes > warnRetainedBytes:
			health.degradeToWarning()
			health.Issues = append(health.Issues,
				fmt.Sprintf("High replication lag in slot %s on %s: %.2f MB retained, state: %s",
					slot.Name, report.Host, float64(slot.RetainedBytes)/(1<<20), state))
			recommendations[fmt.Sprintf("Check for blocking transactions on the subscriber connected to %s (state: %s)", slot.Name, state)] = struct{}{}
		}
		if !slot.Active {
			health.degradeToWarning()
			health.Issues = append(health.Issues,
				fmt.Sprintf("Inactive replication slot %s on %s", slot.Name, report.Host))
			recommendations[fmt.Sprintf("Check if the subscriber connected to %s is down or drop the slot", slot.Name)] = struct{}{}
		}
	}

	for _, slot := range report.TablesyncSlots {
		health.degradeToWarning()
		if slot.Subscription == "" {
			health.Issues = append(health.Issues,
				fmt.Sprintf("Orphaned tablesync slot %s on %s", slot.Name, report.Host))
			recommendations[fmt.Sprintf("Drop tablesync slot %s: its subscription no longer exists", slot.Name)] = struct{}{}
			continue
		}
		health.Issues = append(health.Issues,
			fmt.Sprintf("Lingering tablesync slot %s on %s (subscription %s, relation %s)",
				slot.Name, report.Host, slot.Subscription, slot.Relation))
		recommendations[fmt.Sprintf("Check initial sync progress of relation %s in subscription %s", slot.Relation, slot.Subscription)] = struct{}{}
	}

	for _, sub := range report.Subscriptions {
		if !sub.Enabled {
			health.degradeToWarning()
			health.Issues = append(health.Issues,
				fmt.Sprintf("Disabled subscription %s on %s", sub.Name, report.Host))
			recommendations[fmt.Sprintf("Re-enable subscription %s or drop it if no longer needed", sub.Name)] = struct{}{}
		}
	}

	for rec := range recommendations {
		health.Recommendations = append(health.Recommendations, rec)
	}
	sort.Strings(health.Issues)
	sort.Strings(health.Recommendations)
	return health
}

func (h *Health) degradeToWarning() {
	if h.Overall != StatusCritical {
		h.Overall = StatusWarning
	}
}
