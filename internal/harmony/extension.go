package harmony

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
	"github.com/Conceptual-Machines/magda-harmony/internal/theory"
)

// ExtensionOption is one entry of an extension menu with its sampling weight
type ExtensionOption struct {
	Suffix string
	Weight float64
}

// axes are the composite emotion dimensions extensions respond to
type axes struct {
	tension   float64
	warmth    float64
	lift      float64
	calm      float64
	wistful   float64
	nostalgia float64
	dark      float64
	suspense  float64
}

func axesFor(bias models.EmotionBias) axes {
	return axes{
		tension:   bias[models.SuspensefulTense] + bias[models.DarkBrooding],
		warmth:    bias[models.CalmMeditative] + bias[models.NostalgicSentimental],
		lift:      bias[models.HappyUplifting] + bias[models.MotivationalTriumphant],
		calm:      bias[models.CalmMeditative],
		wistful:   bias[models.WistfulLonging],
		nostalgia: bias[models.NostalgicSentimental],
		dark:      bias[models.DarkBrooding],
		suspense:  bias[models.SuspensefulTense],
	}
}

// ExtensionMenu lists the extensions available for a chord and their weights.
// Weights below zero are clamped to zero; options are never dropped.
func ExtensionMenu(symbol string, function models.Function, mode models.Mode, bias models.EmotionBias) []ExtensionOption {
	a := axesFor(bias)
	// b9 is diatonic over V in minor
	minorColor := 0.0
	if mode == models.Minor {
		minorColor = 0.3
	}

	var menu []ExtensionOption
	if function == models.Dominant {
		menu = []ExtensionOption{
			{"7", 1.0 + 0.5*a.tension - 0.4*a.calm},
			{"9", 0.5 + 0.2*a.tension + 0.4*a.calm},
			{"7b9", 0.2 + 1.2*a.tension - 0.5*a.calm + minorColor},
			{"7#9", 0.1 + 1.0*a.tension - 0.6*a.calm},
			{"7#9b13", 0.8*a.tension - 0.8*a.calm + 0.3*a.suspense},
		}
	} else {
		menu = []ExtensionOption{
			{"", 0.8 + 0.4*a.lift - 0.3*a.warmth},
			{"6", 0.3 + 0.5*a.warmth + 0.3*a.nostalgia - 0.2*a.tension},
			{"9", 0.2 + 0.5*a.calm + 0.4*a.lift - 0.2*a.tension},
		}
		if lowercaseNumeral(symbol) {
			menu = append(menu, ExtensionOption{"7", 0.3 + 0.8*a.wistful + 0.3*a.dark})
		} else {
			menu = append(menu, ExtensionOption{"maj7", 0.3 + 0.6*a.calm + 0.4*a.nostalgia + 0.2*a.warmth - 0.4*a.tension})
		}
	}

	for i := range menu {
		menu[i].Weight = max(menu[i].Weight, 0)
	}
	return menu
}

// lowercaseNumeral reports whether a numeral is written in lowercase. Symbols
// the roman parser rejects are judged by their first letter after any accidental.
func lowercaseNumeral(symbol string) bool {
	if n, err := theory.ParseRoman(symbol); err == nil {
		return n.Lowercase
	}
	r, _ := utf8.DecodeRuneInString(strings.TrimLeft(symbol, "b#"))
	return unicode.IsLower(r)
}

// ChooseExtension appends an emotionally weighted extension to symbol. When
// every option weighs zero the first option is used.
func ChooseExtension(symbol string, function models.Function, mode models.Mode, bias models.EmotionBias, rng Rand) string {
	menu := ExtensionMenu(symbol, function, mode, bias)
	return symbol + pickExtension(menu, rng).Suffix
}

func pickExtension(menu []ExtensionOption, rng Rand) ExtensionOption {
	weights := make([]float64, len(menu))
	for i, opt := range menu {
		weights[i] = opt.Weight
	}
	idx := weightedIndex(weights, rng)
	if idx < 0 {
		return menu[0]
	}
	return menu[idx]
}
