// Package eol annotates the fleet report with PostgreSQL end-of-life data
// from the endoflife.date feed.
package eol

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/opsgrid/dbfleet/pkg/connector/services/aws/rds"

	req "github.com/imroc/req/v3"
	"github.com/itchyny/gojq"
	"github.com/ohler55/ojg/oj"
)

const feedBaseURL = "https://endoflife.date"

// Release is one support cycle from the feed.
type Release struct {
	Cycle  string
	EOL    string
	Latest string
}

// FetchPostgres downloads the PostgreSQL release feed and returns it keyed
// by major version.
func FetchPostgres() (map[string]Release, error) {
	client := req.C().SetBaseURL(feedBaseURL).SetTimeout(30 * time.Second).SetUserAgent("dbfleet")

	response := client.Get("/api/postgresql.json").
		SetHeader("Accept", "application/json").
		Do()
	if response.Err != nil {
		return nil, fmt.Errorf("fetching release feed: %w", response.Err)
	}
	return Parse(response.String())
}

// Parse extracts (cycle, eol, latest) triples from the feed body.
func Parse(body string) (map[string]Release, error) {
	obj, err := oj.ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("parsing release feed: %w", err)
	}

	query, err := gojq.Parse(`.[] | "\(.cycle)|\(.eol)|\(.latest)"`)
	if err != nil {
		return nil, err
	}

	releases := make(map[string]Release)
	iter := query.Run(obj)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("querying release feed: %w", err)
		}
		parts := strings.SplitN(v.(string), "|", 3)
		if len(parts) != 3 {
			continue
		}
		releases[parts[0]] = Release{Cycle: parts[0], EOL: parts[1], Latest: parts[2]}
	}
	return releases, nil
}

// Expired reports whether the release's EOL date lies before now. Cycles
// without a parsable date are treated as supported.
func (r Release) Expired(now time.Time) bool {
	date, err := time.Parse("2006-01-02", r.EOL)
	if err != nil {
		return false
	}
	return date.Before(now)
}

// Warnings returns one line per instance running a major that is past end
// of life or unknown to the feed, sorted for stable output.
func Warnings(instances []rds.InstanceInfo, releases map[string]Release, now time.Time) []string {
	var lines []string
	for _, inst := range instances {
		major := majorOf(inst.EngineVersion)
		release, ok := releases[major]
		if !ok {
			lines = append(lines, fmt.Sprintf("%s: PostgreSQL %s is not in the release feed", inst.Identifier, major))
			continue
		}
		if release.Expired(now) {
			lines = append(lines, fmt.Sprintf("%s: PostgreSQL %s reached end of life on %s", inst.Identifier, major, release.EOL))
		}
	}
	sort.Strings(lines)
	return lines
}

func majorOf(version string) string {
	if i := strings.Index(version, "."); i >= 0 {
		return version[:i]
	}
	return version
}
