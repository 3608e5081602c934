package services

import "regexp"

// Declarative pattern data for POI extraction. All tables are ordered:
// classification and country inference take the first match.

type categoryPattern struct {
	category string
	pattern  *regexp.Regexp
}

var poiCategoryPatterns = []categoryPattern{
	{"cultural", regexp.MustCompile(`(?i)\b(museum|temple|shrine|pagoda|palace|castle|cathedral|church|basilica|mosque|monument|gallery|heritage|historic|ruins|opera)\b`)},
	{"nature", regexp.MustCompile(`(?i)\b(park|garden|mountain|beach|lake|river|waterfall|forest|bay|island|trail|canyon|cliff|hot spring|falls)\b`)},
	{"food", regexp.MustCompile(`(?i)\b(restaurant|cafe|coffee|market|food|bistro|bakery|brewery|eatery|izakaya|ramen|tavern)\b`)},
	{"entertainment", regexp.MustCompile(`(?i)\b(theater|theatre|cinema|club|bar|show|casino|arena|stadium|aquarium|zoo)\b`)},
	{"shopping", regexp.MustCompile(`(?i)\b(mall|shopping|shop|boutique|bazaar|outlet|arcade)\b`)},
	{"leisure", regexp.MustCompile(`(?i)\b(spa|resort|onsen|pool|promenade|square|plaza|pier|harbor|harbour|bridge|tower)\b`)},
}

// defaultPOICategory is used when nothing in the table matches.
const defaultPOICategory = "cultural"

// Phrase patterns capture the object of sightseeing verbs up to the next
// punctuation mark; trailing connector clauses are cut afterwards.
var poiPhrasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:visit|explore|see|tour|discover|admire|wander through|stroll through)\s+(?:the\s+)?([^,.;:!?]+)`),
	regexp.MustCompile(`(?i)\bat\s+(?:the\s+)?([^,.;:!?]+)`),
}

var trailingConnector = regexp.MustCompile(`(?i)\s+(?:in|at|near|with|for|during|before|after|on|to|and|then)\s.*$`)

// properNounRun matches runs of two or more capitalized words, allowing
// hyphenated names like Senso-ji.
var properNounRun = regexp.MustCompile(`\b([A-Z][A-Za-z'-]+(?:\s+[A-Z][A-Za-z'-]+)+)\b`)

// Common capitalized words that are not places; leading stopwords are
// stripped from proper-noun candidates and pure-stopword candidates are
// dropped.
var capitalizedStopwords = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
	"day": true, "morning": true, "afternoon": true, "evening": true, "night": true,
	"breakfast": true, "lunch": true, "dinner": true,
	"visit": true, "explore": true, "see": true, "enjoy": true, "discover": true,
	"start": true, "end": true, "return": true, "head": true, "take": true, "walk": true,
	"free": true, "optional": true, "check": true, "note": true, "tip": true,
	"arrival": true, "departure": true, "the": true,
}

// Substrings that mark a candidate as a generic area rather than a place.
var genericLocationTerms = []string{
	"hotel",
	"accommodation",
	"city center",
	"city centre",
	"downtown",
	"the area",
	"local area",
	"surrounding area",
	"various",
	"your own pace",
	"free time",
	"flexible exploration",
	"airport",
	"train station",
	"bus station",
	"main street",
	"neighborhood",
	"neighbourhood",
}

type countryPattern struct {
	pattern *regexp.Regexp
	country string
}

var countryPatterns = []countryPattern{
	{regexp.MustCompile(`(?i)\b(japan|tokyo|kyoto|osaka|asakusa)\b`), "Japan"},
	{regexp.MustCompile(`(?i)\b(france|paris|lyon|nice|provence)\b`), "France"},
	{regexp.MustCompile(`(?i)\b(italy|rome|venice|florence|milan)\b`), "Italy"},
	{regexp.MustCompile(`(?i)\b(spain|barcelona|madrid|seville)\b`), "Spain"},
	{regexp.MustCompile(`(?i)\b(united kingdom|england|london|scotland|edinburgh)\b`), "United Kingdom"},
	{regexp.MustCompile(`(?i)\b(united states|usa|new york|san francisco|los angeles|chicago)\b`), "United States"},
	{regexp.MustCompile(`(?i)\b(thailand|bangkok|chiang mai|phuket)\b`), "Thailand"},
	{regexp.MustCompile(`(?i)\b(vietnam|hanoi|ho chi minh|saigon|da nang|hoi an)\b`), "Vietnam"},
	{regexp.MustCompile(`(?i)\b(australia|sydney|melbourne)\b`), "Australia"},
	{regexp.MustCompile(`(?i)\b(germany|berlin|munich|hamburg)\b`), "Germany"},
	{regexp.MustCompile(`(?i)\b(greece|athens|santorini|crete)\b`), "Greece"},
	{regexp.MustCompile(`(?i)\b(portugal|lisbon|porto)\b`), "Portugal"},
}

// InferCountry maps a destination string to a country name via the
// ordered pattern table, defaulting to "Unknown".
func InferCountry(destination string) string {
	for _, cp := range countryPatterns {
		if cp.pattern.MatchString(destination) {
			return cp.country
		}
	}
	return "Unknown"
}
