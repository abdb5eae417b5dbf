package corpus

import "strings"

// ModelSize selects which entity recognition model backs the model scorer.
type ModelSize string

const (
	// ModelDefault is equivalent to ModelSmall.
	ModelDefault ModelSize = "default"
	// ModelSmall uses the built-in prose NER model.
	ModelSmall ModelSize = "small"
	// ModelLarge uses an ONNX token-classification model.
	ModelLarge ModelSize = "large"
)

// ParseModelSize maps a command-line value to a model size. Empty and
// unrecognised values fall back to ModelSmall; ok is false only for
// non-empty unrecognised values.
func ParseModelSize(value string) (size ModelSize, ok bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return ModelSmall, true
	case string(ModelDefault), string(ModelSmall):
		return ModelSmall, true
	case string(ModelLarge):
		return ModelLarge, true
	default:
		return ModelSmall, false
	}
}

// Short returns the file name tag for the size ("sm" or "lg").
func (m ModelSize) Short() string {
	if m == ModelLarge {
		return "lg"
	}
	return "sm"
}

// Record is one dataset row.
type Record struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Label string `json:"label"`
}

// Subset is the ordered records sharing one label value.
type Subset struct {
	Label   string   `json:"label"`
	Name    string   `json:"name"`
	Color   string   `json:"color"`
	Records []Record `json:"records"`
}

// Entity is a typed span returned by an entity recognizer.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// ModelScore is the model scorer output for one text.
type ModelScore struct {
	Polarity     float64  `json:"polarity"`
	Subjectivity float64  `json:"subjectivity"`
	Entities     []string `json:"entities"`
}

// ScoreResult combines both scorers' output for one record.
type ScoreResult struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Polarity     float64  `json:"polarity"`
	Subjectivity float64  `json:"subjectivity"`
	Compound     float64  `json:"compound"`
	Entities     []string `json:"entities"`
}

// RankedEntity is an entity with its number of mentions in a subset.
type RankedEntity struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SubsetReport summarises the processing of one subset.
type SubsetReport struct {
	Subset    Subset         `json:"subset"`
	Results   []ScoreResult  `json:"results"`
	Ranked    []RankedEntity `json:"ranked"`
	Skipped   []int          `json:"skipped,omitempty"`
	ChartPath string         `json:"chartPath"`
	TablePath string         `json:"tablePath"`
}
