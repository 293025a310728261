package ertflix

import (
	"regexp"
	"strconv"
)

var (
	ageRatingRegex    = regexp.MustCompile(`"AgeRating"\s*:\s*"?(\d+)"?`)
	adultContentRegex = regexp.MustCompile(`"IsAdultContent"\s*:\s*true`)
	kidsContentRegex  = regexp.MustCompile(`"IsKidsContent"\s*:\s*true`)
)

// parseAgeRating reads the rating flags the player config embeds in the
// page: an explicit AgeRating value wins, adult content maps to 18 and
// kids content to 0. Pages without any flag report no limit.
func parseAgeRating(page string) int64 {
	if match := ageRatingRegex.FindStringSubmatch(page); match != nil {
		if rating, err := strconv.ParseInt(match[1], 10, 64); err == nil {
			return rating
		}
	}
	if adultContentRegex.MatchString(page) {
		return 18
	}
	if kidsContentRegex.MatchString(page) {
		return 0
	}
	return 0
}
