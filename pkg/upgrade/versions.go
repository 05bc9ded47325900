package upgrade

import "strings"

// VersionMap maps an engine major version to the minor release the fleet
// should be running.
type VersionMap map[string]string

// NoUpdateNeeded is reported for instances that are already current or
// whose major has no mapped target.
const NoUpdateNeeded = "no update needed"

// PostgresTargets is the patch baseline for RDS PostgreSQL majors.
var PostgresTargets = VersionMap{
	"13": "13.20",
	"14": "14.17",
	"15": "15.12",
	"16": "16.8",
	"17": "17.4",
}

// RedisTargets is the patch baseline for ElastiCache Redis majors.
var RedisTargets = VersionMap{
	"6": "6.2",
	"7": "7.1",
}

// Major returns the substring before the first dot. A dotless version
// string is treated as its own major.
func Major(version string) string {
	if i := strings.Index(version, "."); i >= 0 {
		return version[:i]
	}
	return version
}

// Resolve computes the target for a current engine version. needed is false
// when the major is unmapped or the instance already runs the target.
func (m VersionMap) Resolve(current string) (target string, needed bool) {
	target, ok := m[Major(current)]
	if !ok || target == current {
		return NoUpdateNeeded, false
	}
	return target, true
}
