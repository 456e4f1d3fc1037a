package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/nathoo/hanziquest/engine"
	"github.com/nathoo/hanziquest/engine/save"
	"github.com/nathoo/hanziquest/engine/state"
	"github.com/nathoo/hanziquest/loader"
	"github.com/nathoo/hanziquest/types"
)

// defaultPracticeMs is the assumed completion time when the terminal
// front-end finishes a practice without a measured duration.
const defaultPracticeMs = 20000

// Session dispatches text commands against the engine. Both the plain CLI
// and the TUI drive the game through it.
type Session struct {
	Engine  *engine.Engine
	SaveDir string
}

// NewSession wires a session to the given engine.
func NewSession(eng *engine.Engine, saveDir string) *Session {
	return &Session{Engine: eng, SaveDir: saveDir}
}

// Exec runs one command and returns the output lines, plus whether the
// caller should quit.
func (s *Session) Exec(input string) (lines []string, quit bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, false
	}
	if strings.HasPrefix(input, "/") {
		return s.execMeta(input)
	}

	fields := strings.Fields(input)
	verb := fields[0]
	args := fields[1:]

	switch verb {
	case "help":
		return helpText(), false
	case "status":
		return s.statusLines(), false
	case "roster":
		return s.rosterLines(), false
	case "phrases":
		return s.phraseLines(), false
	case "bag":
		return s.bagLines(), false

	case "add":
		if len(args) < 1 {
			return []string{"Add which character?"}, false
		}
		return s.report(s.Engine.AddCharacter(args[0])), false

	case "remove":
		if len(args) < 1 {
			return []string{"Remove which character?"}, false
		}
		return s.report(s.Engine.RemoveCharacter(args[0])), false

	case "practice":
		if len(args) < 1 {
			return []string{"Practice which character?"}, false
		}
		if err := s.Engine.StartPractice(args[0]); err != nil {
			return []string{errorLine(err)}, false
		}
		return []string{fmt.Sprintf("Practicing %s. Report strokes with 'stroke ok|miss', finish with 'done'.", args[0])}, false

	case "phrase":
		if len(args) < 1 {
			return []string{"Practice which phrase?"}, false
		}
		return s.report(s.Engine.StartPhraseSequence(args[0])), false

	case "stroke":
		return s.execStroke(args), false

	case "done":
		elapsed := defaultPracticeMs
		if len(args) > 0 {
			if secs, err := strconv.Atoi(args[0]); err == nil {
				elapsed = secs * 1000
			}
		}
		return s.report(s.Engine.CompletePractice(elapsed)), false

	case "use":
		if len(args) < 2 {
			return []string{"Usage: use <item> <character>"}, false
		}
		return s.report(s.Engine.UseItem(args[0], args[1])), false

	case "battle":
		return s.report(s.Engine.StartBattle()), false
	case "attack":
		return s.report(s.Engine.Attack()), false
	case "switch":
		if len(args) < 1 {
			return []string{"Switch to which character?"}, false
		}
		return s.report(s.Engine.Switch(args[0])), false
	case "flee":
		return s.report(s.Engine.Flee()), false

	default:
		return []string{fmt.Sprintf("Unknown command %q. Try 'help'.", verb)}, false
	}
}

// execStroke feeds a simulated stroke event into the active practice.
func (s *Session) execStroke(args []string) []string {
	if len(args) < 1 {
		return []string{"Usage: stroke ok [attempts] | stroke miss [backwards]"}
	}
	rec := types.StrokeRecord{}
	switch args[0] {
	case "ok":
		rec.Correct = true
		rec.Attempts = 1
		if len(args) > 1 {
			if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
				rec.Attempts = n
			}
		}
	case "miss":
		rec.Backwards = len(args) > 1 && args[1] == "backwards"
	default:
		return []string{"Usage: stroke ok [attempts] | stroke miss [backwards]"}
	}
	rec.Index = len(s.Engine.State.Practice.Strokes)
	if err := s.Engine.RecordStroke(rec); err != nil {
		return []string{errorLine(err)}
	}
	return nil
}

// execMeta handles slash commands. Returns output and whether to quit.
func (s *Session) execMeta(input string) ([]string, bool) {
	fields := strings.Fields(input)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "/quit", "/q":
		return []string{"Goodbye."}, true

	case "/save":
		name := "autosave"
		if len(args) > 0 {
			name = args[0]
		}
		return []string{s.saveTo(name)}, false

	case "/load":
		name := "autosave"
		if len(args) > 0 {
			name = args[0]
		}
		return []string{s.loadFrom(name)}, false

	case "/export":
		path := "hanziquest-export.json"
		if len(args) > 0 {
			path = args[0]
		}
		data, err := save.Export(s.Engine.State, s.Engine.Defs)
		if err != nil {
			return []string{errorLine(err)}, false
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return []string{errorLine(err)}, false
		}
		return []string{"Exported to " + path + "."}, false

	case "/import":
		if len(args) < 1 {
			return []string{"Usage: /import <dataset.json>"}, false
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return []string{errorLine(err)}, false
		}
		defs, err := loader.ImportJSON(data)
		if err != nil {
			var ve *loader.ValidationError
			if errors.As(err, &ve) {
				lines := []string{"Import rejected:"}
				for _, msg := range ve.Errors {
					lines = append(lines, "  "+msg)
				}
				return lines, false
			}
			return []string{errorLine(err)}, false
		}
		res := s.Engine.SwitchDefs(defs)
		return append([]string{"Imported " + defs.Pack.Name + "."}, res.Output...), false

	default:
		return []string{"Commands: /save [name], /load [name], /export [file], /import <file>, /quit"}, false
	}
}

func (s *Session) saveTo(name string) string {
	data, err := save.Save(s.Engine.State, s.Engine.Defs)
	if err != nil {
		return errorLine(err)
	}
	if err := os.MkdirAll(s.SaveDir, 0o755); err != nil {
		return errorLine(err)
	}
	path := filepath.Join(s.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		// Persistence failures are non-fatal; the in-memory session
		// continues untouched.
		return errorLine(err)
	}
	return "Saved to " + path + "."
}

func (s *Session) loadFrom(name string) string {
	path := filepath.Join(s.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return errorLine(err)
	}
	sd, err := save.Load(data)
	if err != nil {
		return errorLine(err)
	}
	s.Engine.Restore(sd)
	return "Loaded " + path + "."
}

func (s *Session) report(result types.Result, err error) []string {
	if err != nil {
		return []string{errorLine(err)}
	}
	return result.Output
}

func (s *Session) statusLines() []string {
	p := s.Engine.State.Player
	lines := []string{fmt.Sprintf(
		"Player Lv.%d (%d/%d XP) — %d characters, %d phrases unlocked, %d practices",
		p.Level, p.XP, engine.PlayerThreshold(p.Level),
		p.CharactersOwned, p.PhrasesUnlocked, p.PracticeSessions)}
	if len(p.Achievements) > 0 {
		lines = append(lines, "Achievements: "+strings.Join(p.Achievements, ", "))
	}
	if b := s.Engine.Battle; b != nil && !b.Over {
		a := b.ActiveCombatant()
		lines = append(lines, fmt.Sprintf("In battle: %s (HP %d/%d) vs %s (HP %d/%d)",
			a.Glyph, a.CurrentHP, a.MaxHP,
			b.Opponent.Name, b.Opponent.CurrentHP, b.Opponent.MaxHP))
	}
	return lines
}

func (s *Session) rosterLines() []string {
	st := s.Engine.State
	if len(st.Roster) == 0 {
		return []string{"Your roster is empty."}
	}
	glyphs := make([]string, 0, len(st.Roster))
	for g := range st.Roster {
		glyphs = append(glyphs, g)
	}
	sort.Strings(glyphs)
	var lines []string
	for _, g := range glyphs {
		c := st.Roster[g]
		lines = append(lines, fmt.Sprintf(
			"%s (%s) Lv.%d %d/%d XP — HP %d, Atk %d, Def %d, best %d%%",
			c.Glyph, c.Pinyin, c.Level, c.XP, engine.CharacterThreshold(c.Level),
			c.Stats.HP, c.Stats.Attack, c.Stats.Defense, c.BestAccuracy))
	}
	return lines
}

func (s *Session) phraseLines() []string {
	defs := s.Engine.Defs
	if len(defs.Phrases) == 0 {
		return []string{"No phrases defined."}
	}
	texts := make([]string, 0, len(defs.Phrases))
	for t := range defs.Phrases {
		texts = append(texts, t)
	}
	sort.Strings(texts)
	var lines []string
	for _, t := range texts {
		def := defs.Phrases[t]
		p := state.PhraseProgress(s.Engine.State, t)
		status := "locked"
		if p.Unlocked {
			status = fmt.Sprintf("Lv.%d %d/%d XP", p.Level, p.XP, engine.PhraseThreshold(p.Level))
		}
		lines = append(lines, fmt.Sprintf("%s (%s) — %s — %s", t, def.Pinyin, def.Meaning, status))
	}
	return lines
}

func (s *Session) bagLines() []string {
	st := s.Engine.State
	if len(st.Bag.Items) == 0 {
		return []string{"Your bag is empty."}
	}
	ids := make([]string, 0, len(st.Bag.Items))
	for id := range st.Bag.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	lines := []string{fmt.Sprintf("Bag (%d/%d):", state.BagTotal(st), st.Bag.Capacity)}
	for _, id := range ids {
		name := id
		if def, ok := s.Engine.Defs.Items[id]; ok {
			name = def.Name
		}
		lines = append(lines, fmt.Sprintf("  %s ×%d", name, st.Bag.Items[id]))
	}
	return lines
}

func helpText() []string {
	return []string{
		"Practice:  practice <char> · phrase <text> · stroke ok|miss · done [secs]",
		"Roster:    roster · add <char> · remove <char> · phrases · status",
		"Items:     bag · use <item> <char>",
		"Battle:    battle · attack · switch <char> · flee",
		"Meta:      /save [name] · /load [name] · /export [file] · /import <file> · /quit",
	}
}

func errorLine(err error) string {
	return "Error: " + err.Error()
}
