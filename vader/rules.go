package vader

import "strings"

const (
	// Empirically derived mean intensity change for booster and dampener words.
	boostIncr = 0.293
	boostDecr = -0.293

	// Mean intensity increase when an ALLCAPS word is used for emphasis.
	capsIncr = 0.733

	negScalar = -0.74

	// Normalisation constant approximating the max expected sum.
	alpha = 15.0
)

var negations = toSet(
	"aint", "arent", "cannot", "cant", "couldnt", "darent", "didnt", "doesnt",
	"ain't", "aren't", "can't", "couldn't", "daren't", "didn't", "doesn't",
	"dont", "hadnt", "hasnt", "havent", "isnt", "mightnt", "mustnt", "neither",
	"don't", "hadn't", "hasn't", "haven't", "isn't", "mightn't", "mustn't",
	"neednt", "needn't", "never", "none", "nope", "nor", "not", "nothing", "nowhere",
	"oughtnt", "shant", "shouldnt", "uhuh", "wasnt", "werent",
	"oughtn't", "shan't", "shouldn't", "uh-uh", "wasn't", "weren't",
	"without", "wont", "wouldnt", "won't", "wouldn't", "rarely", "seldom", "despite",
)

var boosters = map[string]float64{
	"absolutely": boostIncr, "amazingly": boostIncr, "awfully": boostIncr,
	"completely": boostIncr, "considerably": boostIncr, "decidedly": boostIncr,
	"deeply": boostIncr, "enormously": boostIncr, "entirely": boostIncr,
	"especially": boostIncr, "exceptionally": boostIncr, "extremely": boostIncr,
	"fabulously": boostIncr, "fully": boostIncr, "greatly": boostIncr,
	"hella": boostIncr, "highly": boostIncr, "hugely": boostIncr,
	"incredibly": boostIncr, "intensely": boostIncr, "majorly": boostIncr,
	"more": boostIncr, "most": boostIncr, "particularly": boostIncr,
	"purely": boostIncr, "quite": boostIncr, "really": boostIncr,
	"remarkably": boostIncr, "so": boostIncr, "substantially": boostIncr,
	"thoroughly": boostIncr, "totally": boostIncr, "tremendously": boostIncr,
	"uber": boostIncr, "unbelievably": boostIncr, "unusually": boostIncr,
	"utterly": boostIncr, "very": boostIncr,
	"almost": boostDecr, "barely": boostDecr, "hardly": boostDecr,
	"just enough": boostDecr, "kind of": boostDecr, "kinda": boostDecr,
	"kindof": boostDecr, "kind-of": boostDecr, "less": boostDecr,
	"little": boostDecr, "marginally": boostDecr, "occasionally": boostDecr,
	"partly": boostDecr, "scarcely": boostDecr, "slightly": boostDecr,
	"somewhat": boostDecr, "sort of": boostDecr, "sorta": boostDecr,
	"sortof": boostDecr, "sort-of": boostDecr,
}

// Idioms containing lexicon words whose combined valence replaces the word's own.
var specialIdioms = map[string]float64{
	"the shit": 3, "the bomb": 3, "bad ass": 1.5, "badass": 1.5,
	"yeah right": -2, "kiss of death": -1.5, "to die for": 3,
}

func toSet(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

func isNegation(word string) bool {
	word = strings.ToLower(word)
	if _, ok := negations[word]; ok {
		return true
	}
	return strings.Contains(word, "n't")
}

// allCapsDifferential reports whether some but not all words are ALLCAPS.
func allCapsDifferential(words []string) bool {
	caps := 0
	for _, w := range words {
		if isUpper(w) {
			caps++
		}
	}
	diff := len(words) - caps
	return diff > 0 && diff < len(words)
}

func isUpper(word string) bool {
	return word == strings.ToUpper(word) && word != strings.ToLower(word)
}

// scalarIncDec returns the booster adjustment a preceding word applies to valence.
func scalarIncDec(word string, valence float64, capsDiff bool) float64 {
	scalar, ok := boosters[strings.ToLower(word)]
	if !ok {
		return 0
	}
	if valence < 0 {
		scalar = -scalar
	}
	if isUpper(word) && capsDiff {
		if valence > 0 {
			scalar += capsIncr
		} else {
			scalar -= capsIncr
		}
	}
	return scalar
}
