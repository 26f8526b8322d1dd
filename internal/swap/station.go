package swap

import (
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// SuffixVocabulary lists the location-type words a station name ends with:
// station, shop, store, public office, center and parking lot.
var SuffixVocabulary = []string{"站", "店", "門市", "公所", "中心", "停車場"}

// ExclusionPhrases are header and fee texts that end in a suffix word but
// never name a station.
var ExclusionPhrases = []string{"換電免費時段折抵", "計費數量"}

// baySuffix is the battery bay designator some statements append to a name.
var baySuffix = regexp.MustCompile(`[\s\p{Zs}]+[A-D]$`)

// Extractor pulls station names out of classified row text.
type Extractor struct {
	suffixes   []string
	exclusions []string
	pattern    *regexp.Regexp
	excluded   *ahocorasick.Matcher
}

// ExtractorOption configures an Extractor
type ExtractorOption func(*Extractor)

// WithSuffixes adds location-type suffixes to the default vocabulary
func WithSuffixes(suffixes ...string) ExtractorOption {
	return func(e *Extractor) {
		e.suffixes = appendUnique(e.suffixes, suffixes...)
	}
}

// WithExclusions adds phrases that disqualify a candidate
func WithExclusions(phrases ...string) ExtractorOption {
	return func(e *Extractor) {
		e.exclusions = appendUnique(e.exclusions, phrases...)
	}
}

// NewExtractor builds an Extractor over SuffixVocabulary and ExclusionPhrases
// plus whatever the options add.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		suffixes:   appendUnique(nil, SuffixVocabulary...),
		exclusions: appendUnique(nil, ExclusionPhrases...),
	}
	for _, opt := range opts {
		opt(e)
	}

	quoted := make([]string, len(e.suffixes))
	for i, s := range e.suffixes {
		quoted[i] = regexp.QuoteMeta(s)
	}
	// A run of letters (CJK included), digits, underscores, spaces and
	// hyphens that ends on a suffix word.
	e.pattern = regexp.MustCompile(`[\p{L}\p{N}_\s\p{Zs}-]+(?:` + strings.Join(quoted, "|") + `)`)

	if len(e.exclusions) > 0 {
		dict := make([][]byte, len(e.exclusions))
		for i, p := range e.exclusions {
			dict[i] = []byte(p)
		}
		e.excluded = ahocorasick.NewMatcher(dict)
	}

	return e
}

// Suffixes returns the suffix vocabulary in use
func (e *Extractor) Suffixes() []string {
	return append([]string(nil), e.suffixes...)
}

// Exclusions returns the exclusion phrases in use
func (e *Extractor) Exclusions() []string {
	return append([]string(nil), e.exclusions...)
}

// Extract returns the station names found in text, in order of appearance.
func (e *Extractor) Extract(text string) []string {
	var names []string
	for _, candidate := range e.pattern.FindAllString(text, -1) {
		if name, ok := e.clean(candidate); ok {
			names = append(names, name)
		}
	}
	return names
}

func (e *Extractor) clean(candidate string) (string, bool) {
	name := strings.TrimSpace(candidate)
	if e.isExcluded(name) {
		return "", false
	}
	name = strings.TrimSpace(TrimBaySuffix(name))
	return name, name != ""
}

func (e *Extractor) isExcluded(s string) bool {
	if e.excluded == nil {
		return false
	}
	return len(e.excluded.Match([]byte(s))) > 0
}

// TrimBaySuffix strips one trailing " A" to " D" bay designator. A letter
// glued to the name without whitespace is part of the name and stays.
func TrimBaySuffix(name string) string {
	return baySuffix.ReplaceAllString(name, "")
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		dup := false
		for _, existing := range dst {
			if existing == v {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
		}
	}
	return dst
}
