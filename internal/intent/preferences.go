package intent

import (
	"github.com/justestif/go-moodmuse/internal/catalog"
	"github.com/justestif/go-moodmuse/internal/lexicon"
)

type family int

const (
	familyOther family = iota
	familySad
	familyHeartbreak
	familyNostalgic
	familyAnxious
	familyHappy
	familyLove
	familyExcited
	familyCalm
	familyTired
)

var families = map[lexicon.Preset]family{
	lexicon.Sad:          familySad,
	lexicon.Grief:        familySad,
	lexicon.Lonely:       familySad,
	lexicon.Depressed:    familySad,
	lexicon.Cry:          familySad,
	lexicon.Empty:        familySad,
	lexicon.Heartbroken:  familyHeartbreak,
	lexicon.Overwhelmed:  familyHeartbreak,
	lexicon.Nostalgic:    familyNostalgic,
	lexicon.Miss:         familyNostalgic,
	lexicon.Melancholic:  familyNostalgic,
	lexicon.Anxious:      familyAnxious,
	lexicon.Stressed:     familyAnxious,
	lexicon.Worried:      familyAnxious,
	lexicon.Confused:     familyAnxious,
	lexicon.Happy:        familyHappy,
	lexicon.Playful:      familyHappy,
	lexicon.Grateful:     familyHappy,
	lexicon.Proud:        familyHappy,
	lexicon.Love:         familyLove,
	lexicon.Romantic:     familyLove,
	lexicon.Affectionate: familyLove,
	lexicon.Excited:      familyExcited,
	lexicon.Ecstatic:     familyExcited,
	lexicon.Motivated:    familyExcited,
	lexicon.Inspired:     familyExcited,
	lexicon.Peaceful:     familyCalm,
	lexicon.Calm:         familyCalm,
	lexicon.Serious:      familyCalm,
	lexicon.Tired:        familyTired,
	lexicon.Exhausted:    familyTired,
	lexicon.Bored:        familyTired,
}

var stayPreferences = map[family][]catalog.Category{
	familySad:        {catalog.Sad, catalog.Heartbreak, catalog.Melancholy},
	familyHeartbreak: {catalog.Heartbreak, catalog.Sad},
	familyNostalgic:  {catalog.Nostalgia, catalog.Sad, catalog.Chill},
	familyAnxious:    {catalog.Chill, catalog.Sad},
	familyHappy:      {catalog.Happy, catalog.Party, catalog.Romantic},
	familyLove:       {catalog.Romantic, catalog.Chill},
	familyExcited:    {catalog.Party, catalog.Happy, catalog.Motivational},
	familyCalm:       {catalog.Chill, catalog.Romantic},
	familyTired:      {catalog.Chill, catalog.Sad},
	familyOther:      {catalog.Neutral, catalog.Romantic, catalog.Chill},
}

// Preferences returns the catalog categories that suit the dominant preset
// under intent, most preferred first.
func Preferences(p lexicon.Preset, i Intent) []catalog.Category {
	var out []catalog.Category
	switch i {
	case Lift:
		if f := families[p]; f == familySad || f == familyHeartbreak {
			out = []catalog.Category{catalog.Romantic, catalog.Chill, catalog.Nostalgia}
		} else {
			out = []catalog.Category{catalog.Motivational, catalog.Happy, catalog.Romantic}
		}
	case Distract:
		out = []catalog.Category{catalog.Party, catalog.Happy, catalog.Motivational}
	case Surprise:
		out = []catalog.Category{catalog.Chill, catalog.Nostalgia, catalog.Romantic, catalog.Neutral}
	default:
		out = append(out, stayPreferences[families[p]]...)
	}
	return out
}

// PreferenceSet is Preferences as a set.
func PreferenceSet(p lexicon.Preset, i Intent) catalog.CategorySet {
	return catalog.NewCategorySet(Preferences(p, i)...)
}
