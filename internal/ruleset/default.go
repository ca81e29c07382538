package ruleset

import "regexp"

// DefaultName is the name of the built-in ruleset.
const DefaultName = "default"

// Default returns the built-in ruleset. Its constants reproduce the
// America's Test Kitchen house style (section markers, yield lines),
// which is also a reasonable starting point for other cookbooks.
func Default() *Ruleset {
	r := &Ruleset{
		Name:        DefaultName,
		Description: "Built-in ruleset (ATK-style section markers)",
		Title: TitleRule{
			MinLen: 5,
			MaxLen: 60,
			ExcludeKeywords: []string{
				"PREPARE INGREDIENTS",
				"START COOKING",
				"BEFORE YOU BEGIN",
				"SERVES",
				"MAKES",
				"CHAPTER",
				"CONTENTS",
				"INDEX",
				"ACKNOWLEDGMENTS",
			},
		},
		Markers: Markers{
			IngredientsStart:  "PREPARE INGREDIENTS",
			InstructionsStart: "START COOKING!",
		},
		Classifier: ClassifierRule{
			UnitKeywords: []string{
				"cup", "cups", "tablespoon", "tablespoons", "teaspoon",
				"teaspoons", "ounce", "ounces", "pound", "pounds",
				"gram", "grams", "clove", "cloves", "pinch", "quart", "pint",
			},
			CookingVerbs: []string{
				"preheat", "stir", "whisk", "simmer", "bake", "roast",
				"saute", "sauté", "chop", "dice", "mince", "combine",
				"transfer", "season", "drain", "sprinkle", "heat", "cook",
			},
			YieldKeywords: []string{
				"SERVES", "MAKES",
			},
			TimingKeywords: []string{
				"minutes", "hours", "total time", "prep time", "cooking time",
			},
			MinPageChars: 10,
			Weights: ClassifierWeights{
				Unit:    0.06,
				Verb:    0.05,
				Yield:   0.25,
				Timing:  0.10,
				Caps:    0.08,
				Leaders: 0.20,
			},
		},
		Cleanup: []CleanupRule{
			// Hyphenation broken across line ends: "choco-\nlate" -> "chocolate"
			{Pattern: `(\w)-\n(\w)`, Replace: `$1$2`},
			// Missing space after sentence end: "bowl.Add" -> "bowl. Add"
			{Pattern: `([a-z])\.([A-Z])`, Replace: `$1. $2`},
			// Missing space between number and unit word: "2cups" -> "2 cups"
			{Pattern: `(\d)(cups?|tablespoons?|teaspoons?|ounces?|pounds?)\b`, Replace: `$1 $2`},
			// Collapse runs of spaces left by column extraction
			{Pattern: `[ \t]{2,}`, Replace: ` `},
		},
		TOC: TOCRule{
			MatchThreshold: 0.6,
			FuzzyThreshold: 0.4,
		},
		Validation: ValidationRule{
			MinIngredientsChars:  20,
			MinInstructionsChars: 20,
		},
		LookaheadPages: 2,
	}

	// Default rules are authored in code; a compile failure here is a bug.
	// Compile() can't be used here — it calls Default() to fill zero-valued
	// fields, which would recurse forever. Every field above is set, so the
	// only work Compile would do is compiling the cleanup regexes.
	for i := range r.Cleanup {
		r.Cleanup[i].re = regexp.MustCompile(r.Cleanup[i].Pattern)
	}
	return r
}
