package services

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"tripforge/internal/models/trip_models"
)

type POIExtractorInterface interface {
	// ExtractPOIsFromItinerary runs the rule-based extractor over a flat
	// activity list. Output is deduplicated by normalized (name, city,
	// country), keeping the highest-confidence candidate per key.
	ExtractPOIsFromItinerary(activities []trip_models.Activity, tripCtx trip_models.TripContext) []trip_models.POI
	ExtractPOIsFromDays(days []trip_models.Day, tripCtx trip_models.TripContext) []trip_models.POI
}

type POIExtractorService struct {
	log *logrus.Logger
}

func NewPOIExtractorService(log *logrus.Logger) POIExtractorInterface {
	return &POIExtractorService{log: log}
}

func (s *POIExtractorService) ExtractPOIsFromDays(days []trip_models.Day, tripCtx trip_models.TripContext) []trip_models.POI {
	var activities []trip_models.Activity
	for _, day := range days {
		activities = append(activities, day.Activities...)
	}
	return s.ExtractPOIsFromItinerary(activities, tripCtx)
}

func (s *POIExtractorService) ExtractPOIsFromItinerary(activities []trip_models.Activity, tripCtx trip_models.TripContext) []trip_models.POI {
	city := tripCtx.City
	if city == "" {
		city = cityFromDestination(tripCtx.Destination)
	}
	country := tripCtx.Country
	if country == "" {
		country = InferCountry(tripCtx.Destination)
	}

	var ordered []string
	best := make(map[string]trip_models.POI)

	add := func(poi trip_models.POI) {
		key := dedupKey(poi.Name, poi.City, poi.Country)
		existing, ok := best[key]
		if !ok {
			ordered = append(ordered, key)
			best[key] = poi
			return
		}
		if poi.Confidence > existing.Confidence {
			best[key] = poi
		}
	}

	for _, act := range activities {
		// An explicit, non-generic location wins over text mining and
		// keeps its coordinates.
		if act.Location != nil && !isGenericLocation(act.Location.Name) {
			name := cleanCandidate(act.Location.Name)
			if name != "" {
				category := classifyCategory(name, act.Category)
				add(trip_models.POI{
					Name:          name,
					City:          city,
					Country:       country,
					Category:      category,
					Confidence:    scoreCandidate(name, category, act.Category),
					ExtractedFrom: "location",
					OriginalText:  act.Location.Name,
					Coordinates:   act.Location.Coordinates,
				})
			}
			continue
		}

		for _, text := range []string{act.Title, act.Description} {
			for _, cand := range extractCandidates(text) {
				category := classifyCategory(cand, act.Category)
				add(trip_models.POI{
					Name:          cand,
					City:          city,
					Country:       country,
					Category:      category,
					Confidence:    scoreCandidate(cand, category, act.Category),
					ExtractedFrom: "text",
					OriginalText:  text,
				})
			}
		}
	}

	out := make([]trip_models.POI, 0, len(ordered))
	for _, key := range ordered {
		out = append(out, best[key])
	}
	return out
}

// extractCandidates scans one text with the phrase patterns and the
// proper-noun heuristic, returning cleaned, non-generic candidates.
func extractCandidates(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []string
	seen := make(map[string]bool)

	push := func(raw string) {
		name := cleanCandidate(raw)
		if name == "" || isGenericLocation(name) {
			return
		}
		lower := strings.ToLower(name)
		if seen[lower] {
			return
		}
		seen[lower] = true
		out = append(out, name)
	}

	for _, re := range poiPhrasePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) > 1 {
				push(trailingConnector.ReplaceAllString(m[1], ""))
			}
		}
	}

	for _, m := range properNounRun.FindAllString(text, -1) {
		if name, ok := stripStopwords(m); ok {
			push(name)
		}
	}

	return out
}

// stripStopwords removes leading stopwords from a capitalized-word run and
// rejects runs made up entirely of stopwords.
func stripStopwords(run string) (string, bool) {
	words := strings.Fields(run)
	start := 0
	for start < len(words) && capitalizedStopwords[strings.ToLower(words[start])] {
		start++
	}
	if start == len(words) {
		return "", false
	}
	rest := words[start:]
	if len(rest) == 1 && capitalizedStopwords[strings.ToLower(rest[0])] {
		return "", false
	}
	return strings.Join(rest, " "), true
}

var (
	bracketedContent = regexp.MustCompile(`\s*[(\[][^)\]]*[)\]]`)
	leadingArticle   = regexp.MustCompile(`(?i)^(?:the|a|an)\s+`)
	multiSpace       = regexp.MustCompile(`\s+`)
)

// cleanCandidate normalizes an extracted name: brackets out, leading
// article off, punctuation trimmed, whitespace collapsed. Returns "" when
// the remainder is outside the useful [3,100] length range.
func cleanCandidate(raw string) string {
	name := bracketedContent.ReplaceAllString(raw, "")
	name = leadingArticle.ReplaceAllString(strings.TrimSpace(name), "")
	name = strings.Trim(name, " .,;:!?\"'-")
	name = multiSpace.ReplaceAllString(name, " ")

	if len(name) < 3 || len(name) > 100 {
		return ""
	}
	return name
}

func isGenericLocation(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if len(lower) < 3 || len(lower) > 100 {
		return true
	}
	for _, term := range genericLocationTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// classifyCategory tests the name against the ordered category table,
// trying the activity's declared category first.
func classifyCategory(name, declared string) string {
	declared = strings.ToLower(strings.TrimSpace(declared))
	for _, cp := range poiCategoryPatterns {
		if cp.category == declared && cp.pattern.MatchString(name) {
			return cp.category
		}
	}
	for _, cp := range poiCategoryPatterns {
		if cp.pattern.MatchString(name) {
			return cp.category
		}
	}
	return defaultPOICategory
}

// scoreCandidate starts at 0.5 and adds bonuses for category pattern
// match, category agreement with the activity, name length and proper
// capitalization, capped at 1.0.
func scoreCandidate(name, category, declaredCategory string) float64 {
	conf := 0.5

	for _, cp := range poiCategoryPatterns {
		if cp.category == category && cp.pattern.MatchString(name) {
			conf += 0.2
			break
		}
	}
	if declared := strings.ToLower(strings.TrimSpace(declaredCategory)); declared != "" && declared == category {
		conf += 0.1
	}
	if len(name) > 10 {
		conf += 0.1
	}
	if r := []rune(name); len(r) > 0 && unicode.IsUpper(r[0]) {
		conf += 0.1
	}

	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}

func cityFromDestination(destination string) string {
	parts := strings.Split(destination, ",")
	return strings.TrimSpace(parts[0])
}

func dedupKey(name, city, country string) string {
	norm := func(s string) string {
		return multiSpace.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
	}
	return norm(name) + "|" + norm(city) + "|" + norm(country)
}
