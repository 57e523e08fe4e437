package matching

// DefaultMinConfidence is the floor below which a folder/member pair is not
// considered a candidate at all.
const DefaultMinConfidence = 30

// ScoreConfig holds the point values and similarity cutoffs of the confidence
// model. The values are tuning constants inherited from the review workflow
// this engine was built for; they are named here so they can be adjusted and
// tested independently of the model's structure.
type ScoreConfig struct {
	// Point contributions per signal.
	IDMatchPoints         int // embedded ID equals member ID
	FullNameExactPoints   int // full-name similarity at or above ExactSimilarity
	FullNameStrongPoints  int // full-name similarity at or above FuzzySimilarity
	FullNameWeakPoints    int // full-name similarity at or above WeakSimilarity
	ComponentStrongPoints int // first/last similarity at or above StrongSimilarity
	ComponentWeakPoints   int // first/last similarity at or above ComponentSimilarity
	ReversedNamePoints    int // folder name matches "Last, First" rendering
	SubstringPoints       int // member first/last name verbatim in the raw label

	// Similarity cutoffs.
	ExactSimilarity     float64
	StrongSimilarity    float64
	FuzzySimilarity     float64
	ComponentSimilarity float64
	WeakSimilarity      float64

	// Review thresholds. Confidence below ReviewConfidence always requires
	// manual review; the ambiguous band is flagged independently.
	ReviewConfidence int
	AmbiguousLow     int
	AmbiguousHigh    int
}

// DefaultScoreConfig is the production tuning.
var DefaultScoreConfig = ScoreConfig{
	IDMatchPoints:         50,
	FullNameExactPoints:   35,
	FullNameStrongPoints:  25,
	FullNameWeakPoints:    15,
	ComponentStrongPoints: 15,
	ComponentWeakPoints:   8,
	ReversedNamePoints:    10,
	SubstringPoints:       5,

	ExactSimilarity:     0.95,
	StrongSimilarity:    0.90,
	FuzzySimilarity:     0.80,
	ComponentSimilarity: 0.70,
	WeakSimilarity:      0.60,

	ReviewConfidence: 80,
	AmbiguousLow:     30,
	AmbiguousHigh:    70,
}
