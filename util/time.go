package util

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var bareSecondsRegex = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

// date layouts tried in order, day-first variants before month-first
// since the supported sites are European
var strdateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
	"2006/01/02",
	"20060102",
	"2 January 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
}

// ParseISO8601 converts an ISO 8601 string with optional fractional seconds
// into a UTC epoch. The zone designator is honored, bare Z meaning UTC.
func ParseISO8601(value string) (int64, error) {
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05.999Z",
		"2006-01-02T15:04:05",
	} {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC().Unix(), nil
		}
	}
	return 0, fmt.Errorf("failed to parse timestamp: %q", value)
}

// UnifiedStrdate normalizes a free-form date string to YYYYMMDD. Unknown
// shapes collapse to an empty string rather than an error so callers can
// treat the date as optional metadata.
func UnifiedStrdate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	for _, layout := range strdateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.Format("20060102")
		}
	}
	return ""
}

// UnifiedTimestamp parses a date-plus-time string into a UTC epoch,
// returning 0 when nothing matches.
func UnifiedTimestamp(value string) int64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC().Unix()
		}
	}
	return 0
}

// ParseDurationString reads durations of the shape "H:MM:SS(.mmm)", "M:SS"
// or bare seconds into float seconds. A seconds component that is negative
// or unparsable counts as zero: some broadcasters abuse the field for
// rights rows. Anything else malformed yields 0.
func ParseDurationString(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if bareSecondsRegex.MatchString(value) {
		seconds, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0
		}
		return seconds
	}
	parts := strings.Split(value, ":")
	switch len(parts) {
	case 2:
		minutes, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0
		}
		return nonNegative(float64(minutes)*60 + secondsComponent(parts[1]))
	case 3:
		hours, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0
		}
		return nonNegative(float64(hours)*3600 + float64(minutes)*60 + secondsComponent(parts[2]))
	}
	return 0
}

// ParseTimecode converts a caption cue timecode "HH:MM:SS.fff" to float
// seconds, with the same lenient seconds component as ParseDurationString.
func ParseTimecode(value string) float64 {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return nonNegative(float64(hours)*3600 + float64(minutes)*60 + secondsComponent(parts[2]))
}

func secondsComponent(value string) float64 {
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}

func nonNegative(seconds float64) float64 {
	if seconds < 0 {
		return 0
	}
	return seconds
}

// FormatTimecode renders float seconds as "HH:MM:SS.mmm" for subtitle cues.
func FormatTimecode(seconds float64) string {
	totalMillis := int64(math.Round(seconds * 1000))
	return fmt.Sprintf(
		"%02d:%02d:%02d.%03d",
		totalMillis/3600000,
		totalMillis%3600000/60000,
		totalMillis%60000/1000,
		totalMillis%1000,
	)
}

// LiveTitle decorates a live stream title with the UTC extraction time so
// repeated polls of the same stream stay distinguishable.
func LiveTitle(title string) string {
	return title + " " + time.Now().UTC().Format("2006-01-02 15:04")
}
