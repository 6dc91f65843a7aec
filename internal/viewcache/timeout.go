package viewcache

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"go.yaml.in/yaml/v3"

	vambrace "github.com/vambrace/vambrace/internal"
)

// DefaultTimeout is the cache timeout applied when none is configured.
const DefaultTimeout = TimeoutSpec("600")

// TimeoutSpec is a cache timeout as configured: plain integer seconds, or a
// count with a unit suffix -- "5m" (minutes), "2h" (hours), "1d" (days).
type TimeoutSpec string

var timeoutPattern = regexp.MustCompile(`^(\d+)([dhm])$`)

// Unit sizes in seconds.
const (
	minute = 60
	hour   = 3600
	day    = 86400
)

// Seconds resolves the spec to whole seconds. Integer specs pass through
// unchanged; suffixed specs multiply the count by the unit size. Anything
// else fails with ErrMalformedTimeout.
func (t TimeoutSpec) Seconds() (int, error) {
	if n, err := strconv.Atoi(string(t)); err == nil {
		return n, nil
	}
	m := timeoutPattern.FindStringSubmatch(string(t))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", vambrace.ErrMalformedTimeout, string(t))
	}
	count, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", vambrace.ErrMalformedTimeout, string(t))
	}
	switch m[2] {
	case "m":
		return count * minute, nil
	case "h":
		return count * hour, nil
	default:
		return count * day, nil
	}
}

// TTL resolves the spec as a duration.
func (t TimeoutSpec) TTL() (time.Duration, error) {
	secs, err := t.Seconds()
	if err != nil {
		return 0, err
	}
	return time.Duration(secs) * time.Second, nil
}

// UnmarshalYAML accepts either an integer or a string scalar, preserving the
// raw form for Seconds to resolve.
func (t *TimeoutSpec) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err == nil {
		*t = TimeoutSpec(s)
		return nil
	}
	var n int
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("cache timeout must be integer seconds or a string like \"10m\"")
	}
	*t = TimeoutSpec(strconv.Itoa(n))
	return nil
}
