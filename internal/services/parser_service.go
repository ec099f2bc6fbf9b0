// internal/services/parser_service.go
package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/crunchvision/boxstylemcp/internal/models"
)

// Pattern tables for the extractor. Order matters everywhere: extraction is
// first-match-wins over fixed priority tiers, so a match in an earlier tier
// shadows anything a later tier would have found. That shadowing is part of
// the contract, not something to score our way out of.
var (
	subjectPatterns = []struct {
		Type    string
		Pattern *regexp.Regexp
	}{
		{models.SubjectHuman, regexp.MustCompile(`(?i)\b(person|people|man|woman|child|kid|adult|teenager|boy|girl|chef|doctor|firefighter|teacher|artist|musician|pilot|detective|scientist|astronaut|athlete|dancer|singer|wizard|warrior|knight|pirate|ninja|superhero)\b`)},
		{models.SubjectAnimal, regexp.MustCompile(`(?i)\b(cat|dog|bird|fish|horse|lion|tiger|bear|elephant|dragon|phoenix|unicorn|griffin|kitten|puppy)\b`)},
		{models.SubjectObject, regexp.MustCompile(`(?i)\b(car|boat|plane|bicycle|train|rocket|sword|hammer|book|computer|phone|camera|chair|table)\b`)},
		{models.SubjectFood, regexp.MustCompile(`(?i)\b(pizza|burger|sandwich|taco|pasta|apple|banana|strawberry|cake|cookie|donut)\b`)},
	}

	actionTiers = []struct {
		Energy string
		Verbs  []string
	}{
		{models.EnergyHigh, []string{"running", "jumping", "flying", "racing", "sprinting", "leaping", "dashing"}},
		{models.EnergyMedium, []string{"walking", "swimming", "climbing", "dancing", "playing", "working", "cooking"}},
		{models.EnergyLow, []string{"sitting", "standing", "lying", "resting", "reading", "thinking", "meditating"}},
	}

	intensityModifiers = []string{"violently", "intensely", "quickly", "slowly", "gently", "carefully"}

	settingPatterns = []struct {
		Type    string
		Pattern *regexp.Regexp
	}{
		{"indoor_specific", regexp.MustCompile(`(?i)\b(kitchen|bedroom|office|classroom|library|lab|studio|garage|bathroom|hallway)\b`)},
		{"indoor_generic", regexp.MustCompile(`(?i)\b(inside|indoors|room|building|house)\b`)},
		{"outdoor_natural", regexp.MustCompile(`(?i)\b(forest|mountain|beach|desert|jungle|field|river|lake|ocean|park|garden)\b`)},
		{"outdoor_urban", regexp.MustCompile(`(?i)\b(street|city|downtown|alley|plaza|rooftop|sidewalk)\b`)},
		{"fantasy", regexp.MustCompile(`(?i)\b(castle|dungeon|spaceship|alien planet|magical realm|dimension)\b`)},
	}

	atmosphereWords = []string{"busy", "quiet", "dark", "bright", "crowded", "empty", "chaotic", "peaceful"}

	timePattern = regexp.MustCompile(`(?i)\b(dawn|sunrise|morning|noon|afternoon|sunset|dusk|evening|night|midnight)\b`)

	objectPattern = regexp.MustCompile(`(?i)\b(with|holding|carrying|near|beside)\s+(a|an|the)?\s*(\w+)\b`)

	// Colors are reported in palette order, not text order.
	colorPalette = []string{"red", "blue", "green", "yellow", "orange", "purple", "pink", "black",
		"white", "brown", "gray", "cyan", "magenta", "teal", "gold", "silver"}

	moodTiers = []struct {
		Valence  string
		Emotions []string
	}{
		{"positive", []string{"happy", "joyful", "excited", "proud", "confident", "cheerful", "delighted"}},
		{"negative", []string{"sad", "angry", "afraid", "worried", "frustrated", "tired", "exhausted", "lonely"}},
		{"neutral", []string{"calm", "peaceful", "focused", "curious", "contemplative"}},
	}

	countWords = map[string]int{"two": 2, "three": 3, "four": 4, "five": 5, "six": 6}
)

// ParserService extracts semantic components from free text. Parsing is
// total: every extractor returns a defined default record when nothing
// matches, so Parse never fails.
type ParserService struct {
	professions map[string]bool
}

// NewParserService creates the parser. The profession table comes from the
// catalog's transformation maps.
func NewParserService(maps models.TransformationMaps) *ParserService {
	professions := make(map[string]bool, len(maps.ProfessionToIconProps))
	for name := range maps.ProfessionToIconProps {
		professions[strings.ToLower(name)] = true
	}

	return &ParserService{professions: professions}
}

// Parse turns raw text into a ComponentSet. Pure function of the text and
// the profession table; no side effects.
func (s *ParserService) Parse(text string) *models.ComponentSet {
	return &models.ComponentSet{
		Subject: s.extractSubject(text),
		Action:  s.extractAction(text),
		Setting: s.extractSetting(text),
		Objects: s.extractObjects(text),
		Colors:  s.extractColors(text),
		Mood:    s.extractMood(text),
	}
}

// extractSubject identifies the primary subject with attributes. Subject
// type groups are tried in fixed priority order; the first matching pattern
// wins outright.
func (s *ParserService) extractSubject(text string) models.Subject {
	for _, group := range subjectPatterns {
		match := group.Pattern.FindString(text)
		if match == "" {
			continue
		}

		subject := models.Subject{
			Type:       group.Type,
			Name:       match,
			Attributes: []string{},
			Count:      1,
		}

		// The word immediately preceding the subject is its attribute
		attrPattern := regexp.MustCompile(`(?i)\b(\w+)\s+` + regexp.QuoteMeta(match) + `\b`)
		if attrMatch := attrPattern.FindStringSubmatch(text); attrMatch != nil {
			subject.Attributes = []string{attrMatch[1]}
		}

		if group.Type == models.SubjectHuman && s.professions[strings.ToLower(match)] {
			subject.Profession = strings.ToLower(match)
		}

		countPattern := regexp.MustCompile(`(?i)\b(two|three|four|five|six|2|3|4|5|6)\s+` + regexp.QuoteMeta(match))
		if countMatch := countPattern.FindStringSubmatch(text); countMatch != nil {
			word := strings.ToLower(countMatch[1])
			if n, ok := countWords[word]; ok {
				subject.Count = n
			} else if n, err := strconv.Atoi(word); err == nil {
				subject.Count = n
			}
		}

		return subject
	}

	return models.Subject{Type: models.SubjectAbstract, Attributes: []string{}, Count: 0}
}

// extractAction identifies the action verb and its energy tier. Tiers are
// scanned high to medium to low; the first verb present anywhere in the text
// wins, even when a later tier holds a closer match.
func (s *ParserService) extractAction(text string) models.Action {
	lower := strings.ToLower(text)

	for _, tier := range actionTiers {
		for _, verb := range tier.Verbs {
			if !strings.Contains(lower, verb) {
				continue
			}

			action := models.Action{
				Verb:        verb,
				EnergyLevel: tier.Energy,
				// Coarse progressive-tense proxy, not a grammar check
				Progressive: strings.Contains(lower, "ing"),
			}

			objPattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(verb) + `\s+(a|an|the)?\s*(\w+)`)
			if objMatch := objPattern.FindStringSubmatch(text); objMatch != nil {
				action.Object = objMatch[2]
			}

			for _, mod := range intensityModifiers {
				if strings.Contains(lower, mod) {
					action.Modifier = mod
					break
				}
			}

			return action
		}
	}

	return models.Action{EnergyLevel: models.EnergyLow}
}

// extractSetting identifies the environment. All atmosphere adjectives
// present are collected, plus at most one time-of-day token.
func (s *ParserService) extractSetting(text string) models.Setting {
	lower := strings.ToLower(text)

	for _, group := range settingPatterns {
		match := group.Pattern.FindString(text)
		if match == "" {
			continue
		}

		setting := models.Setting{
			Type:       group.Type,
			Location:   match,
			Attributes: []string{},
		}

		for _, word := range atmosphereWords {
			if strings.Contains(lower, word) {
				setting.Attributes = append(setting.Attributes, word)
			}
		}

		setting.Time = timePattern.FindString(text)

		return setting
	}

	return models.Setting{Type: "abstract", Attributes: []string{}}
}

// extractObjects collects secondary objects after prop prepositions, in
// order of appearance, duplicates included.
func (s *ParserService) extractObjects(text string) []string {
	objects := []string{}
	for _, match := range objectPattern.FindAllStringSubmatch(text, -1) {
		objects = append(objects, match[3])
	}
	return objects
}

// extractColors reports every palette color appearing as a substring of the
// lower-cased text, in palette order.
func (s *ParserService) extractColors(text string) []string {
	lower := strings.ToLower(text)

	found := []string{}
	for _, color := range colorPalette {
		if strings.Contains(lower, color) {
			found = append(found, color)
		}
	}
	return found
}

// extractMood identifies emotional tone by valence tier. Intensity comes
// from amplifier or downtoner words anywhere in the text.
func (s *ParserService) extractMood(text string) models.Mood {
	lower := strings.ToLower(text)

	for _, tier := range moodTiers {
		for _, emotion := range tier.Emotions {
			if !strings.Contains(lower, emotion) {
				continue
			}

			intensity := "medium"
			if strings.Contains(lower, "very") || strings.Contains(lower, "extremely") {
				intensity = "high"
			} else if strings.Contains(lower, "slightly") || strings.Contains(lower, "a bit") {
				intensity = "low"
			}

			return models.Mood{
				Emotion:   emotion,
				Valence:   tier.Valence,
				Intensity: intensity,
			}
		}
	}

	return models.Mood{Valence: "neutral", Intensity: "medium"}
}
