package emotion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
	"github.com/Conceptual-Machines/magda-harmony/pkg/embedded"
)

// DefaultModifiers are the intensity words recognized in front of a phrase
var DefaultModifiers = map[string]float64{
	"extremely": 1.5,
	"very":      1.3,
	"somewhat":  0.8,
	"slightly":  0.6,
	"a bit":     0.6,
}

type phraseEntry struct {
	text          string
	tokens        []string
	contributions map[models.Emotion]float64
}

type modifierEntry struct {
	label      string
	tokens     []string
	multiplier float64
}

// Lexicon maps normalized phrases to emotion contributions. It is immutable
// after construction and safe for concurrent use.
type Lexicon struct {
	// phrases grouped by first token, each group ordered longest first then lexically
	byFirstToken    map[string][]phraseEntry
	phraseCount     int
	modifiers       map[string]modifierEntry
	modifierLengths []int
}

// Normalize lowercases text, turns every rune that is not a letter, digit or
// space into a space, collapses runs of whitespace and trims.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize normalizes text and splits it on whitespace
func Tokenize(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return []string{}
	}
	return strings.Split(normalized, " ")
}

// NewLexicon builds a lexicon from raw phrases and modifiers. Phrases and
// modifiers are normalized the same way prompts are. Unknown emotion keys are
// dropped. When two raw phrases normalize to the same text, the lexically
// later raw phrase wins.
func NewLexicon(phrases map[string]map[string]float64, modifiers map[string]float64) (*Lexicon, error) {
	rawKeys := make([]string, 0, len(phrases))
	for k := range phrases {
		rawKeys = append(rawKeys, k)
	}
	sort.Strings(rawKeys)

	entries := make(map[string]phraseEntry, len(phrases))
	for _, raw := range rawKeys {
		text := Normalize(raw)
		if text == "" {
			continue
		}
		contributions := make(map[models.Emotion]float64)
		for k, v := range phrases[raw] {
			id := models.Emotion(k)
			if !models.IsKnownEmotion(id) {
				continue
			}
			contributions[id] = v
		}
		entries[text] = phraseEntry{
			text:          text,
			tokens:        strings.Split(text, " "),
			contributions: contributions,
		}
	}

	ordered := make([]phraseEntry, 0, len(entries))
	for _, e := range entries {
		ordered = append(ordered, e)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i].tokens) != len(ordered[j].tokens) {
			return len(ordered[i].tokens) > len(ordered[j].tokens)
		}
		return ordered[i].text < ordered[j].text
	})

	lex := &Lexicon{
		byFirstToken: make(map[string][]phraseEntry),
		phraseCount:  len(ordered),
		modifiers:    make(map[string]modifierEntry, len(modifiers)),
	}
	for _, e := range ordered {
		lex.byFirstToken[e.tokens[0]] = append(lex.byFirstToken[e.tokens[0]], e)
	}

	lengths := make(map[int]bool)
	for raw, mult := range modifiers {
		text := Normalize(raw)
		if text == "" {
			continue
		}
		if mult <= 0 {
			return nil, fmt.Errorf("modifier %q: multiplier must be positive, got %v", raw, mult)
		}
		tokens := strings.Split(text, " ")
		lex.modifiers[text] = modifierEntry{label: text, tokens: tokens, multiplier: mult}
		lengths[len(tokens)] = true
	}
	for n := range lengths {
		lex.modifierLengths = append(lex.modifierLengths, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(lex.modifierLengths)))

	return lex, nil
}

// LoadLexicon reads a JSON object of phrase -> {emotion: weight} and pairs it
// with DefaultModifiers.
func LoadLexicon(r io.Reader) (*Lexicon, error) {
	var raw map[string]map[string]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode phrase lexicon: %w", err)
	}
	for phrase, contribs := range raw {
		for k, v := range contribs {
			if v < 0 {
				return nil, fmt.Errorf("phrase %q: negative weight %v for %s", phrase, v, k)
			}
		}
	}
	return NewLexicon(raw, DefaultModifiers)
}

// LoadLexiconFile loads a lexicon from a JSON file on disk
func LoadLexiconFile(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open phrase lexicon: %w", err)
	}
	defer f.Close()
	return LoadLexicon(f)
}

// DefaultLexicon loads the embedded phrase lexicon
func DefaultLexicon() (*Lexicon, error) {
	return LoadLexicon(bytes.NewReader(embedded.PhraseLexiconJSON))
}

// Len returns the number of distinct normalized phrases
func (l *Lexicon) Len() int {
	return l.phraseCount
}
