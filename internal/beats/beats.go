// Package beats holds the Save the Cat story-structure template used to
// align source material, target the tension curve, and size scenes.
package beats

// Beat is one position in the 15-beat structure.
type Beat struct {
	Name          string
	Function      string
	TargetEmotion string
	TypicalLength int
}

// SaveTheCat is the canonical 15-beat template, in story order.
var SaveTheCat = []Beat{
	{
		Name:          "Opening Image",
		Function:      "Snapshot of protagonist's world before change",
		TargetEmotion: "curiosity",
		TypicalLength: 300,
	},
	{
		Name:          "Theme Stated",
		Function:      "Hint at the story's central question or moral",
		TargetEmotion: "intrigue",
		TypicalLength: 250,
	},
	{
		Name:          "Setup",
		Function:      "Establish normal world, characters, relationships, stakes",
		TargetEmotion: "engagement",
		TypicalLength: 400,
	},
	{
		Name:          "Catalyst",
		Function:      "The event that launches the story",
		TargetEmotion: "surprise",
		TypicalLength: 350,
	},
	{
		Name:          "Debate",
		Function:      "Protagonist hesitates, weighs options",
		TargetEmotion: "tension",
		TypicalLength: 300,
	},
	{
		Name:          "Break into Two",
		Function:      "Protagonist commits to the journey",
		TargetEmotion: "determination",
		TypicalLength: 250,
	},
	{
		Name:          "B Story",
		Function:      "Introduce subplot or relationship that will aid transformation",
		TargetEmotion: "connection",
		TypicalLength: 300,
	},
	{
		Name:          "Fun and Games",
		Function:      "The premise delivers on its promise",
		TargetEmotion: "excitement",
		TypicalLength: 450,
	},
	{
		Name:          "Midpoint",
		Function:      "False victory or false defeat; stakes raised",
		TargetEmotion: "shock",
		TypicalLength: 350,
	},
	{
		Name:          "Bad Guys Close In",
		Function:      "External and internal pressures mount",
		TargetEmotion: "anxiety",
		TypicalLength: 400,
	},
	{
		Name:          "All Is Lost",
		Function:      "Lowest point; protagonist seems defeated",
		TargetEmotion: "despair",
		TypicalLength: 300,
	},
	{
		Name:          "Dark Night of the Soul",
		Function:      "Protagonist reflects on failure, faces internal demons",
		TargetEmotion: "reflection",
		TypicalLength: 250,
	},
	{
		Name:          "Break into Three",
		Function:      "Protagonist finds solution, often by synthesizing A and B stories",
		TargetEmotion: "hope",
		TypicalLength: 200,
	},
	{
		Name:          "Finale",
		Function:      "Protagonist proves transformation, defeats antagonist",
		TargetEmotion: "triumph",
		TypicalLength: 500,
	},
	{
		Name:          "Final Image",
		Function:      "Mirror of opening image, showing change",
		TargetEmotion: "satisfaction",
		TypicalLength: 250,
	},
}

// Count returns the number of template beats.
func Count() int {
	return len(SaveTheCat)
}

// Get returns the beat at index i, clamped to the last template beat so
// runs longer than the template still get usable context.
func Get(i int) Beat {
	if i < 0 {
		i = 0
	}
	if i >= len(SaveTheCat) {
		i = len(SaveTheCat) - 1
	}
	return SaveTheCat[i]
}

// ByName returns the template beat with the given name, if any.
func ByName(name string) (Beat, bool) {
	for _, b := range SaveTheCat {
		if b.Name == name {
			return b, true
		}
	}
	return Beat{}, false
}
