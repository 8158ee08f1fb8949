package profile

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/abhisek/timesdrill/internal/character"
	"github.com/abhisek/timesdrill/internal/exercise"
	"github.com/abhisek/timesdrill/internal/incentive"
)

// MigrationReport describes what Migrate had to repair.
type MigrationReport struct {
	// Fresh is set when nothing was stored.
	Fresh bool
	// Corrupted is set when the blob could not be parsed as an object and
	// was replaced with defaults. The caller should clear it.
	Corrupted bool

	DroppedExercises int
	DroppedResults   int
	DroppedCompleted int

	RolledOver    bool
	StoredVersion string
	NewerVersion  bool
}

// Migrate turns a stored blob into a valid document. Every field is type
// and range checked; anything invalid is replaced by its default. Migrate
// never fails.
func Migrate(raw []byte, now time.Time) (*Document, MigrationReport) {
	var rep MigrationReport
	doc := New(now)

	if len(bytes.TrimSpace(raw)) == 0 {
		rep.Fresh = true
		return doc, rep
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		rep.Corrupted = true
		return doc, rep
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		rep.Corrupted = true
		return doc, rep
	}

	if v, ok := obj["version"].(string); ok {
		rep.StoredVersion = v
		if semver.IsValid(v) && semver.Compare(v, FormatVersion) > 0 {
			rep.NewerVersion = true
		}
	}

	doc.User = migrateUser(obj["user"])
	rep.DroppedExercises = migrateExercises(doc.Exercises, obj["exercises"])
	doc.Results, rep.DroppedResults = migrateResults(obj["results"])
	migratePending(doc, obj)
	rep.RolledOver = migrateIncentive(&doc.Incentive, obj["incentive"], incentive.DateString(now))
	doc.Character, rep.DroppedCompleted = migrateCharacter(obj["character"])

	return doc, rep
}

func migrateUser(v any) *User {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	name, ok := m["name"].(string)
	if !ok || name == "" {
		return nil
	}
	g, present := m["gender"]
	if !present || g == nil {
		return nil
	}
	gender := GenderMale
	if s, ok := g.(string); ok && s == string(GenderFemale) {
		gender = GenderFemale
	}
	return &User{Name: name, Gender: gender}
}

// migrateExercises copies valid groups into reg and returns how many stored
// entries were unusable.
func migrateExercises(reg exercise.Registry, v any) int {
	m, ok := v.(map[string]any)
	if !ok {
		return 0
	}
	dropped := 0
	for _, ref := range exercise.CanonicalRefs() {
		entry, present := m[ref.Key()]
		if !present {
			continue
		}
		e, ok := entry.(map[string]any)
		if !ok {
			dropped++
			continue
		}
		g, ok := asInt(e["group"])
		if !ok || !exercise.Group(g).Valid() {
			dropped++
			continue
		}
		ex := reg[ref.Key()]
		ex.Group = exercise.Group(g)
		reg[ref.Key()] = ex
	}
	return dropped
}

func migrateResults(v any) ([]exercise.Result, int) {
	list, ok := v.([]any)
	if !ok {
		return []exercise.Result{}, 0
	}

	out := make([]exercise.Result, 0, len(list))
	dropped := 0
	for _, item := range list {
		r, ok := toResult(item)
		if !ok {
			dropped++
			continue
		}
		out = append(out, r)
	}
	return out, dropped
}

func toResult(item any) (exercise.Result, bool) {
	if err := resultSchema.Validate(item); err != nil {
		return exercise.Result{}, false
	}
	m := item.(map[string]any)

	a, okA := asInt(m["a"])
	b, okB := asInt(m["b"])
	ua, okU := asInt(m["userAnswer"])
	ca, okC := asInt(m["correctAnswer"])
	rt, okR := asInt(m["responseTime"])
	ts, okT := asInt(m["timestamp"])
	if !okA || !okB || !okU || !okC || !okR || !okT {
		return exercise.Result{}, false
	}
	return exercise.Result{
		A:             int(a),
		B:             int(b),
		UserAnswer:    int(ua),
		CorrectAnswer: int(ca),
		IsCorrect:     m["isCorrect"].(bool),
		ResponseTime:  rt,
		Timestamp:     ts,
	}, true
}

func migratePending(doc *Document, obj map[string]any) {
	m, ok := obj["lastWrongExercise"].(map[string]any)
	if !ok {
		return
	}
	a, okA := asInt(m["a"])
	b, okB := asInt(m["b"])
	ref := exercise.Ref{A: int(a), B: int(b)}
	if !okA || !okB || !ref.Valid() {
		return
	}
	doc.LastWrongExercise = &ref
	if show, ok := obj["showWrongExerciseNext"].(bool); ok {
		doc.ShowWrongExerciseNext = show
	}
}

// migrateIncentive copies typed fields into s and applies the day
// rollover. It reports whether a rollover happened.
func migrateIncentive(s *incentive.State, v any, today string) bool {
	m, ok := v.(map[string]any)
	if ok {
		stored := incentive.State{}
		if n, ok := asInt(m["dailyScore"]); ok {
			stored.DailyScore = int(n)
		}
		if n, ok := asInt(m["highScore"]); ok {
			stored.HighScore = max(int(n), 0)
		}
		if n, ok := asInt(m["currentStreak"]); ok {
			stored.CurrentStreak = max(int(n), 0)
		}
		if n, ok := asInt(m["totalPoints"]); ok {
			stored.TotalPoints = max(int(n), 0)
		}
		stored.LastScoreDate, _ = m["lastScoreDate"].(string)
		stored.LastStreakDate, _ = m["lastStreakDate"].(string)
		stored.FirstUsageDate, _ = m["firstUsageDate"].(string)
		stored.HasShownRecordPopupToday, _ = m["hasShownRecordPopupToday"].(bool)
		stored.NextQuestionDoublePoints, _ = m["nextQuestionDoublePoints"].(bool)
		*s = stored
	}
	return s.Rollover(today)
}

func migrateCharacter(v any) (character.State, int) {
	st := character.State{Completed: []character.Completed{}}
	m, ok := v.(map[string]any)
	if !ok {
		return st, 0
	}

	if cur, ok := m["currentCharacter"].(map[string]any); ok {
		var c character.Character
		if n, ok := asInt(cur["stage"]); ok && n >= 0 && n <= character.MaxStage {
			c.Stage = int(n)
		}
		if v, ok := cur["color"].(string); ok && character.Color(v).Valid() {
			c.Color = character.Color(v)
		}
		if v, ok := cur["skin"].(string); ok && character.Skin(v).Valid() {
			c.Skin = character.Skin(v)
		}
		if v, ok := cur["animation"].(string); ok && character.Animation(v).Valid() {
			c.Animation = character.Animation(v)
		}

		// A stage without its choices falls back to the last stage that has
		// them; choices beyond the stage are dropped.
		c.Stage = min(c.Stage, c.Supported())
		if c.Stage < 1 {
			c.Color = ""
		}
		if c.Stage < 2 {
			c.Skin = ""
		}
		if c.Stage < 3 {
			c.Animation = ""
		}
		st.Current = c
	}

	list, ok := m["completedCharacters"].([]any)
	if !ok {
		return st, 0
	}
	dropped := 0
	for _, item := range list {
		if err := completedSchema.Validate(item); err != nil {
			dropped++
			continue
		}
		c := item.(map[string]any)
		at, ok := asInt(c["completedAt"])
		if !ok {
			dropped++
			continue
		}
		st.Completed = append(st.Completed, character.Completed{
			Color:       character.Color(c["color"].(string)),
			Skin:        character.Skin(c["skin"].(string)),
			Animation:   character.Animation(c["animation"].(string)),
			CompletedAt: at,
		})
	}
	return st, dropped
}

// asInt converts a decoded JSON number with an integral value.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case float64:
		return floatToInt(n)
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
