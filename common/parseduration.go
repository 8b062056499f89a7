package common

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	durationComponentRegex = regexp.MustCompile(`(?i)(\d+)\s*([a-z]+)`)

	durationUnits = map[string]time.Duration{
		"s":       time.Second,
		"sec":     time.Second,
		"secs":    time.Second,
		"second":  time.Second,
		"seconds": time.Second,

		"m":       time.Minute,
		"min":     time.Minute,
		"mins":    time.Minute,
		"minute":  time.Minute,
		"minutes": time.Minute,

		"h":     time.Hour,
		"hr":    time.Hour,
		"hrs":   time.Hour,
		"hour":  time.Hour,
		"hours": time.Hour,

		"d":    time.Hour * 24,
		"day":  time.Hour * 24,
		"days": time.Hour * 24,

		"w":     time.Hour * 24 * 7,
		"wk":    time.Hour * 24 * 7,
		"wks":   time.Hour * 24 * 7,
		"week":  time.Hour * 24 * 7,
		"weeks": time.Hour * 24 * 7,
	}
)

// ParseDuration parses a time string like "1day 3h" or "10m", summing every <number><unit> component
// it recognizes and skipping everything else.
//
// ok is false when the sum is zero, which covers both "nothing recognized" and "0m".
func ParseDuration(str string) (dur time.Duration, ok bool) {
	for _, match := range durationComponentRegex.FindAllStringSubmatch(str, -1) {
		unit, known := durationUnits[strings.ToLower(match[2])]
		if !known {
			continue
		}

		n, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil || n > math.MaxInt64/int64(unit) {
			continue
		}

		component := time.Duration(n) * unit
		if dur > math.MaxInt64-component {
			dur = math.MaxInt64
			continue
		}

		dur += component
	}

	if dur == 0 {
		return 0, false
	}

	return dur, true
}

// HumanizeDuration formats d as "1d 2h 3m 4s", leaving out zero components.
// Anything below a second renders as "0s".
func HumanizeDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}

	days := d / (time.Hour * 24)
	d -= days * time.Hour * 24
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second

	parts := make([]string, 0, 4)
	if days > 0 {
		parts = append(parts, strconv.FormatInt(int64(days), 10)+"d")
	}
	if hours > 0 {
		parts = append(parts, strconv.FormatInt(int64(hours), 10)+"h")
	}
	if minutes > 0 {
		parts = append(parts, strconv.FormatInt(int64(minutes), 10)+"m")
	}
	if seconds > 0 {
		parts = append(parts, strconv.FormatInt(int64(seconds), 10)+"s")
	}

	return strings.Join(parts, " ")
}
