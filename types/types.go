// Package types defines the shared data structures for the HanziQuest engine.
// This package contains only type definitions — no logic, no methods.
package types

// CharacterOrigin tags how a roster character came to exist.
type CharacterOrigin int

const (
	// OriginBase is a character added from a content-pack definition.
	OriginBase CharacterOrigin = iota
	// OriginPhrase is a character synthesized when a phrase sequence was
	// completed for the first time.
	OriginPhrase
)

// CharacterDef is the static definition of a practiceable character.
type CharacterDef struct {
	Glyph      string
	Pinyin     string
	Strokes    int // positive
	Difficulty int // 1..5
	Frequency  int // 0..100, higher = more common
	Meaning    string
}

// PhraseDef is the static definition of a multi-character phrase.
// Requirements and Characters always cover the same key set.
type PhraseDef struct {
	Text         string
	Pinyin       string
	Meaning      string
	Characters   []string       // ordered constituent glyphs
	Requirements map[string]int // glyph → minimum roster level
	Difficulty   int
	Frequency    int
}

// ItemDef is the static definition of a consumable item.
type ItemDef struct {
	ID     string
	Name   string
	Kind   string // "xp_boost"
	Value  int    // XP granted when used
	Rarity string // "common", "uncommon", "rare"
}

// AchievementDef is awarded when Event fires while the named counter has
// reached Threshold.
type AchievementDef struct {
	ID        string
	Name      string
	Event     string
	Counter   string
	Threshold int
}

// PackDef holds content-pack metadata.
type PackDef struct {
	Name        string
	Version     string
	Author      string
	Starter     []string // glyphs granted to an empty roster
	BattleAfter int      // practice sessions required before battles
}

// Stats are derived combat numbers. They are a pure function of level and
// the static attributes, recomputed on every level change and on load.
type Stats struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
}

// Character is a practiceable roster entry. Static attributes are copied
// from the definition at add time so phrase-origin characters, which have
// no definition of their own, carry them too.
type Character struct {
	Glyph         string          `json:"glyph"`
	Pinyin        string          `json:"pinyin"`
	Strokes       int             `json:"strokes"`
	Difficulty    int             `json:"difficulty"`
	Frequency     int             `json:"frequency"`
	Level         int             `json:"level"`
	XP            int             `json:"xp"`
	PracticeCount int             `json:"practice_count"`
	MistakeCount  int             `json:"mistake_count"`
	BestAccuracy  int             `json:"best_accuracy"`
	Unlocked      bool            `json:"unlocked"`
	Origin        CharacterOrigin `json:"origin"`
	SourcePhrase  string          `json:"source_phrase,omitempty"` // set only for OriginPhrase
	Stats         Stats           `json:"stats"`
}

// Phrase is the runtime progress of a phrase definition, keyed by its text.
type Phrase struct {
	Text           string `json:"text"`
	Level          int    `json:"level"`
	XP             int    `json:"xp"`
	Unlocked       bool   `json:"unlocked"`
	PracticeCount  int    `json:"practice_count"`
	FirstCompleted bool   `json:"first_completed"`
}

// Player is the overall progression wrapper.
type Player struct {
	Level            int      `json:"level"`
	XP               int      `json:"xp"`
	CharactersOwned  int      `json:"characters_owned"`
	PhrasesUnlocked  int      `json:"phrases_unlocked"`
	PracticeSessions int      `json:"practice_sessions"`
	PracticeSeconds  int      `json:"practice_seconds"`
	Achievements     []string `json:"achievements"`
}

// StrokeRecord is one stroke outcome reported by the practice widget.
type StrokeRecord struct {
	Index     int
	Correct   bool
	Attempts  int  // attempts needed for a correct stroke
	Backwards bool // mistake drawn in the reverse direction
}

// PracticeState is the modal single-character practice session.
type PracticeState struct {
	Active   bool           `json:"active"`
	Glyph    string         `json:"glyph"`
	Strokes  []StrokeRecord `json:"strokes,omitempty"`
	Mistakes int            `json:"mistakes,omitempty"`
}

// SequenceSource tags what a practice sequence was built from.
type SequenceSource int

const (
	// SequencePhrase is a sequence over a canonical phrase definition.
	SequencePhrase SequenceSource = iota
	// SequenceSynthetic is a sequence reconstructed from the text of a
	// phrase-origin character whose definition is no longer present.
	SequenceSynthetic
)

// SequenceState is the modal phrase-sequence session.
type SequenceState struct {
	Active     bool           `json:"active"`
	Source     SequenceSource `json:"source"`
	Text       string         `json:"text"`
	Characters []string       `json:"characters"`
	Index      int            `json:"index"`
}

// Opponent is the ephemeral wild battle adversary. Never persisted.
type Opponent struct {
	Name       string
	Pinyin     string
	IsPhrase   bool
	CharCount  int // constituent count when IsPhrase
	Strokes    int
	Difficulty int
	Frequency  int
	Level      int
	MaxHP      int
	CurrentHP  int
	Attack     int
	Defense    int
}

// Combatant is a roster character's transient presence in one battle.
// Its HP is discarded when the battle ends.
type Combatant struct {
	Glyph     string
	MaxHP     int
	CurrentHP int
	Attack    int
	Defense   int
	Defeated  bool
}

// Bag is a capacity-bounded multiset of consumable item stacks.
type Bag struct {
	Capacity int            `json:"capacity"`
	Items    map[string]int `json:"items"` // item id → count
}

// Event is emitted by engine operations for front-ends and achievements.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single engine operation.
type Result struct {
	Events []Event
	Output []string
}

// State is the complete mutable progress of one player.
type State struct {
	Player      Player
	Roster      map[string]*Character // keyed by glyph (or phrase text)
	Phrases     map[string]*Phrase    // keyed by phrase text
	Bag         Bag
	Counters    map[string]int
	Practice    PracticeState
	Sequence    SequenceState
	RNGSeed     int64
	RNGPosition int64
}
