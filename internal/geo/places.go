package geo

import (
	"regexp"
	"strings"
)

// ---------- package-level compiled recognizers ----------

var (
	// Canadian postal code, e.g. "T5J 0N3" or "t5j-0n3".
	postalRE = regexp.MustCompile(`\b([A-Za-z]\d[A-Za-z])[ -]?(\d[A-Za-z]\d)\b`)

	// Canadian IATA codes all start with Y.
	canadianIATARE = regexp.MustCompile(`\bY[A-Z]{2}\b`)

	airportWordRE = regexp.MustCompile(`\bairport\b`)

	hotelRE = regexp.MustCompile(`\b(best\s*western|hilton|marriott|sheraton|holiday\s*inn|ramada|sandman|delta\s+hotels?|four\s+points|fairmont|comfort\s+inn|super\s*8|westin|staybridge|courtyard|residence\s+inn|hampton\s+inn|matrix\s+hotel|chateau\s+lacombe|varscona|metterra|coast\s+edmonton|doubletree|days\s*inn|wyndham|travelodge|microtel|spark\s*hotels|tru\s*by\s*hilton)\b`)

	landmarkRE = regexp.MustCompile(`\b(west\s+edmonton\s+mall|wem|west\s+ed\s+mall|rogers\s+place|u\s*of\s*a|university\s+of\s+alberta|kingsway\s+mall|southgate\s+centre|macewan\s+university|commonwealth\s+stadium|ice\s+district|fort\s*mcmurray\s+international|ymm)\b`)

	localTermRE = regexp.MustCompile(`\b(yeg|edm|edmonton|grande\s*prairie|gp|yqu|st\.?\s*albert|sherwood\s*park|leduc|nisku|spruce\s*grove|stony\s*plain|fort\s*saskatchewan|clairmont|sexsmith|beaverlodge|hythe)\b`)

	localLandmarkRE = regexp.MustCompile(`\b(wem|west\s+ed(?:monton)?\s+mall|rogers\s+place)\b`)

	urlOrEmailRE = regexp.MustCompile(`(?i)(https?://|www\.)|@`)

	decorSymbolRE = regexp.MustCompile(`★|☆|✔|⚡|🔥|💥|✨`)

	streetNumberRE = regexp.MustCompile(`\b\d{1,6}[A-Za-z]?\b`)

	roadTypeRE = regexp.MustCompile(`\b(st|street|ave|avenue|rd|road|blvd|boulevard|drive|dr|way|trail|trl|cres|crescent|gate|park|plaza|place|pl|lane|ln|court|ct|terrace|ter|highway|hwy|pkwy|parkway)\b`)

	intersectionRE = regexp.MustCompile(`\b(st|street|ave|avenue|rd|road|blvd|drive|dr|way|lane|ln|ct|court|hwy|highway)\b.*\b(&|and|@)\b.*\b(st|street|ave|avenue|rd|road|blvd|drive|dr|way|lane|ln|ct|court|hwy|highway)\b`)

	genericNounRE = regexp.MustCompile(`^(airport|mall|downtown|uptown|suburbs|station|centre|center|campus|entrance|gate|hotel)$`)

	controlCharRE = regexp.MustCompile(`[\x00-\x1f]`)

	nonWordRE = regexp.MustCompile(`[^\w\s'\-]`)

	terminalHintRE = regexp.MustCompile(`\b(terminal\s*1|t1|terminal\s*2|t2|terminal)\b`)
)

// PostalInfo is the coarse region signal carried by a Canadian postal code.
type PostalInfo struct {
	Raw            string
	FSA            string
	ProvinceLetter byte
}

// ParsePostal extracts the first Canadian postal code in the text.
func ParsePostal(text string) (PostalInfo, bool) {
	m := postalRE.FindStringSubmatch(strings.ToUpper(text))
	if m == nil {
		return PostalInfo{}, false
	}
	fsa := m[1]
	return PostalInfo{
		Raw:            fsa + " " + m[2],
		FSA:            fsa,
		ProvinceLetter: fsa[0],
	}, true
}

// IsCanadianIATA reports whether the text contains a Canadian airport code shape.
func IsCanadianIATA(text string) bool {
	return canadianIATARE.MatchString(strings.ToUpper(text))
}

// IsAirport reports whether the text names an airport, by word or IATA code.
func IsAirport(text string) bool {
	s := strings.ToLower(text)
	if airportWordRE.MatchString(s) {
		return true
	}
	return IsCanadianIATA(text)
}

// IsHotel reports whether the text names a recognized hotel chain or property.
func IsHotel(text string) bool {
	return hotelRE.MatchString(strings.ToLower(text))
}

// IsLandmark reports whether the text names a recognized specific landmark.
func IsLandmark(text string) bool {
	return landmarkRE.MatchString(strings.ToLower(text))
}

// IsNamedPlaceLoose accepts any string with at least two tokens of two or
// more characters after decorative characters are stripped. The loose
// fallback for pickup/dropoff answers mid-conversation.
func IsNamedPlaceLoose(s string) bool {
	clean := controlCharRE.ReplaceAllString(s, " ")
	clean = nonWordRE.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(clean)

	count := 0
	for _, tok := range strings.Fields(clean) {
		if len(tok) >= 2 {
			count++
		}
	}
	return count >= 2
}

// TerminalHint returns a clarification prompt when the text mentions an
// airport terminal without naming the airport.
func TerminalHint(text string) string {
	s := strings.ToLower(text)
	if IsAirport(s) {
		return ""
	}
	if terminalHintRE.MatchString(s) {
		return "Please confirm the airport and area — e.g., **Edmonton (YEG) – Arrivals** or **Calgary (YYC) – Domestic**."
	}
	return ""
}

// TooVague decides whether a free-text location is too imprecise to act
// on. Known local terms, hotels, landmarks, airports, and postal codes
// are always precise enough; a street number plus road type or an
// intersection pattern also passes; everything else needs at least two
// real tokens, and single generic nouns never pass.
func TooVague(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" || len(s) < 3 {
		return true
	}

	sl := strings.ToLower(s)

	if urlOrEmailRE.MatchString(sl) {
		return true
	}
	if decorSymbolRE.MatchString(sl) {
		return true
	}

	if IsLocalArea(sl) || IsHotel(sl) || IsLandmark(sl) || IsAirport(sl) || postalRE.MatchString(sl) {
		return false
	}

	hasNum := streetNumberRE.MatchString(sl)
	hasRoad := roadTypeRE.MatchString(sl)
	if (hasNum && hasRoad) || intersectionRE.MatchString(sl) {
		return false
	}

	if genericNounRE.MatchString(sl) {
		return true
	}

	count := 0
	for _, tok := range strings.Fields(sl) {
		if len(tok) >= 2 {
			count++
		}
	}
	return count < 2
}
