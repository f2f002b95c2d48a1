package geo

import (
	"context"
	"regexp"
	"strings"
)

// Verdict classifies a location against the service area.
type Verdict string

const (
	// VerdictIn: inside the Edmonton or Grande Prairie service area.
	VerdictIn Verdict = "in"
	// VerdictAdjacentOut: in Alberta but outside the served cities.
	VerdictAdjacentOut Verdict = "adjacent_out"
	// VerdictNonRegion: outside Alberta entirely.
	VerdictNonRegion Verdict = "non_region"
	// VerdictUnknown: no usable signal either way.
	VerdictUnknown Verdict = "unknown"
)

// Forward sortation areas served. Edmonton is T5/T6; Grande Prairie is
// T8V/T8W/T8X. Matching is prefix-based so "T5J" hits "T5".
var servedFSAPrefixes = []string{"T5", "T6", "T8V", "T8W", "T8X"}

// serviceCities are the Alberta localities a geocoded pickup may resolve
// to and still be accepted.
var serviceCities = map[string]bool{
	"edmonton":          true,
	"st. albert":        true,
	"st albert":         true,
	"sherwood park":     true,
	"leduc":             true,
	"nisku":             true,
	"spruce grove":      true,
	"stony plain":       true,
	"fort saskatchewan": true,
	"grande prairie":    true,
	"clairmont":         true,
	"sexsmith":          true,
	"beaverlodge":       true,
	"hythe":             true,
}

var (
	albertaAirportRE = regexp.MustCompile(`\b(YEG|YYC|YMM|YQU|YQL|YBW)\b`)

	nonAlbertaIATARE = regexp.MustCompile(`\b(YYZ|YVR|YUL|YOW|YHZ|YQB|YXE|YQR|YWG|YYJ|YXX|YHM|YKF|YTZ|YQT|YXS|YZF|YXY|YQM)\b`)

	nonAlbertaCityRE = regexp.MustCompile(`\b(vancouver|victoria|kelowna|kamloops|abbotsford|surrey|burnaby|richmond|saskatoon|regina|winnipeg|toronto|mississauga|brampton|hamilton|kitchener|waterloo|london|ottawa|montreal|laval|quebec\s+city|halifax|moncton|fredericton|charlottetown|st\.?\s*john'?s|whitehorse|yellowknife|iqaluit)\b`)

	albertaWordRE = regexp.MustCompile(`\b(alberta|ab)\b`)
)

// cityExceptions are phrases that embed a non-Alberta city name but do
// not mean the city, e.g. "London Drugs" is a local pharmacy chain.
var cityExceptions = []string{"london drugs", "richmond ave", "richmond park"}

// IsLocalArea reports whether the text names a served city, airport code,
// or neighborhood shorthand.
func IsLocalArea(text string) bool {
	return localTermRE.MatchString(strings.ToLower(text))
}

// IsClearlyLocal reports a high-confidence in-area signal: a served
// postal prefix, a served city or shorthand, or a major local landmark.
func IsClearlyLocal(text string) bool {
	if p, ok := ParsePostal(text); ok {
		for _, pre := range servedFSAPrefixes {
			if strings.HasPrefix(p.FSA, pre) {
				return true
			}
		}
	}
	s := strings.ToLower(text)
	return localTermRE.MatchString(s) || localLandmarkRE.MatchString(s)
}

// mentionsNonAlbertaCity applies the strict city list after carving out
// the exception phrases.
func mentionsNonAlbertaCity(text string) bool {
	s := strings.ToLower(text)
	for _, ex := range cityExceptions {
		s = strings.ReplaceAll(s, ex, " ")
	}
	return nonAlbertaCityRE.MatchString(s)
}

// HeuristicVerdict classifies a free-text location without any network
// call. A postal code is the strongest signal and wins over conflicting
// city mentions in the same string; the remaining checks run in order of
// decreasing specificity.
func HeuristicVerdict(text string) Verdict {
	if p, ok := ParsePostal(text); ok {
		for _, pre := range servedFSAPrefixes {
			if strings.HasPrefix(p.FSA, pre) {
				return VerdictIn
			}
		}
		if p.ProvinceLetter == 'T' {
			return VerdictAdjacentOut
		}
		return VerdictNonRegion
	}

	up := strings.ToUpper(text)
	if mentionsNonAlbertaCity(text) || nonAlbertaIATARE.MatchString(up) {
		return VerdictNonRegion
	}
	if albertaAirportRE.MatchString(up) {
		return VerdictIn
	}
	if IsClearlyLocal(text) {
		return VerdictIn
	}
	if albertaWordRE.MatchString(strings.ToLower(text)) {
		return VerdictAdjacentOut
	}
	return VerdictUnknown
}

// Location is a geocoder's resolution of a free-text place.
type Location struct {
	Formatted string
	Province  string // two-letter code, e.g. "AB"
	Locality  string
}

// Geocoder resolves a free-text address to a structured location.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Location, error)
}

// PickupDecision is the outcome of classifying a pickup location.
// Authoritative is true only when a geocoder resolved the address;
// heuristic verdicts never hard-stop a conversation on their own.
type PickupDecision struct {
	Verdict       Verdict
	Formatted     string
	Authoritative bool
}

// Classifier decides whether a pickup is inside the service area,
// preferring the geocoder and degrading to heuristics when it is absent
// or fails.
type Classifier struct {
	geocoder Geocoder
}

func NewClassifier(g Geocoder) *Classifier {
	return &Classifier{geocoder: g}
}

// ClassifyPickup resolves the pickup text to a service-area decision.
func (c *Classifier) ClassifyPickup(ctx context.Context, pickup string) PickupDecision {
	if c != nil && c.geocoder != nil {
		loc, err := c.geocoder.Geocode(ctx, pickup)
		if err == nil {
			return PickupDecision{
				Verdict:       verdictForLocation(loc),
				Formatted:     loc.Formatted,
				Authoritative: true,
			}
		}
	}
	return PickupDecision{Verdict: HeuristicVerdict(pickup)}
}

func verdictForLocation(loc Location) Verdict {
	if !strings.EqualFold(loc.Province, "AB") {
		return VerdictNonRegion
	}
	if serviceCities[strings.ToLower(strings.TrimSpace(loc.Locality))] {
		return VerdictIn
	}
	return VerdictAdjacentOut
}

// DropoffLooksOutside reports whether a dropoff merits the one-time
// out-of-province advisory. Dropoffs never hard-stop a booking; long
// hauls are quoted, not refused. Any Canadian IATA code that is not an
// Alberta airport counts, even ones not on the strict list.
func DropoffLooksOutside(dropoff string) bool {
	up := strings.ToUpper(dropoff)
	if IsCanadianIATA(dropoff) {
		return !albertaAirportRE.MatchString(up)
	}
	return mentionsNonAlbertaCity(dropoff) || nonAlbertaIATARE.MatchString(up)
}
