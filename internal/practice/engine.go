package practice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/timesdrill/internal/character"
	"github.com/abhisek/timesdrill/internal/exercise"
	"github.com/abhisek/timesdrill/internal/incentive"
	"github.com/abhisek/timesdrill/internal/profile"
	"github.com/abhisek/timesdrill/internal/report"
	"github.com/abhisek/timesdrill/internal/store"
)

// DefaultProfile is used when no profile name is configured.
const DefaultProfile = "default"

// snapshotKeep is how many document backups are kept per profile.
const snapshotKeep = 5

// KindCharacterComplete is the event kind logged when a character is finished.
const KindCharacterComplete = "character_complete"

// ErrInvalidUser wraps registration validation failures.
var ErrInvalidUser = errors.New("invalid user")

// Options configures an Engine. Documents is required; the rest default.
type Options struct {
	Profile   string
	Documents store.DocumentRepo
	Events    store.EventRepo    // optional award log
	Snapshots store.SnapshotRepo // optional backups of discarded documents
	Logger    *zap.Logger
	Rand      exercise.Source
	Now       func() time.Time
}

// Engine runs practice for one profile. Every operation loads the whole
// document, changes it in memory and saves it back; operations are
// serialized by a mutex.
type Engine struct {
	mu sync.Mutex

	profile   string
	docs      store.DocumentRepo
	events    store.EventRepo
	snapshots store.SnapshotRepo
	log       *zap.Logger
	rng       exercise.Source
	now       func() time.Time
	selector  *exercise.Selector
	validate  *validator.Validate
	sessionID string

	// previous is the exercise shown last in this session.
	previous *exercise.Ref
}

// NewEngine creates an Engine.
func NewEngine(opts Options) *Engine {
	if opts.Profile == "" {
		opts.Profile = DefaultProfile
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Rand == nil {
		opts.Rand = exercise.NewSource(0)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Documents == nil {
		opts.Documents = store.NewMemoryDocuments()
	}
	sessionID := uuid.New().String()
	return &Engine{
		profile:   opts.Profile,
		docs:      opts.Documents,
		events:    opts.Events,
		snapshots: opts.Snapshots,
		log:       opts.Logger.With(zap.String("profile", opts.Profile), zap.String("session", sessionID)),
		rng:       opts.Rand,
		now:       opts.Now,
		selector:  exercise.NewSelector(opts.Rand),
		validate:  validator.New(),
		sessionID: sessionID,
	}
}

// Profile returns the profile name.
func (e *Engine) Profile() string { return e.profile }

// SessionID returns the id attached to events logged by this engine.
func (e *Engine) SessionID() string { return e.sessionID }

// Feedback is what the learner sees after an answer.
type Feedback struct {
	Outcome
	// CorrectAnswer is the full equation, e.g. "6 × 7 = 42".
	CorrectAnswer string

	Points       int // points for the answer itself, doubled if applicable
	DoublePoints bool
	Bonus        int // streak bonus, 0 if none
	Score        incentive.ScoreUpdate
	Streak       incentive.StreakUpdate
	StageUp      bool
	// DoublePointsArmed is set when the next question is worth double.
	DoublePointsArmed bool

	// Popups to show, in order.
	Popups *incentive.Queue
}

// NextExercise draws the next exercise and advances the pending repeat.
// The exercise is valid even when saving fails.
func (e *Engine) NextExercise(ctx context.Context) (exercise.Exercise, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc := e.load(ctx)
	pending := doc.Pending()
	ex := e.selector.Next(doc.Exercises, pending, e.previous)
	doc.SetPending(pending.Advance())

	ref := ex.Ref()
	e.previous = &ref

	return ex, e.save(ctx, doc)
}

// SubmitAnswer grades raw input for ex and applies every incentive rule.
// Input that is not a number returns ErrInvalidAnswer and changes nothing.
// On a save failure the feedback is still returned with the error.
func (e *Engine) SubmitAnswer(ctx context.Context, ex exercise.Exercise, raw string, elapsed time.Duration) (*Feedback, error) {
	answer, err := ParseAnswer(raw)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	today := incentive.DateString(now)
	doc := e.load(ctx)

	outcome := ProcessResult(doc, ex, answer, elapsed, now)
	fb := &Feedback{Outcome: outcome, CorrectAnswer: ex.AnswerString()}

	inc := &doc.Incentive
	couldAdvance := doc.Character.CanAdvance(inc.TotalPoints)

	fb.DoublePoints = inc.CheckAndConsumeDoublePoints()
	fb.Points = incentive.Points(outcome.Correct, outcome.Fast)
	if fb.DoublePoints {
		fb.Points *= 2
	}
	fb.Score = inc.UpdateDailyScore(fb.Points, today)
	fb.Streak = inc.UpdateStreak(outcome.Correct && outcome.Fast, today)

	if fb.Streak.Achievement > 0 {
		fb.Bonus = incentive.StreakBonus(fb.Streak.Achievement)
		bonus := inc.UpdateDailyScore(fb.Bonus, today)
		fb.Score.NewScore = bonus.NewScore
		fb.Score.IsNewRecord = fb.Score.IsNewRecord || bonus.IsNewRecord
		fb.Score.ShouldShowRecordPopup = fb.Score.ShouldShowRecordPopup || bonus.ShouldShowRecordPopup
	}

	fb.StageUp = !couldAdvance && doc.Character.CanAdvance(inc.TotalPoints)

	fb.DoublePointsArmed = e.rng.Float64() < incentive.DoublePointsChance
	inc.SetDoublePointsForNextQuestion(fb.DoublePointsArmed)

	fb.Popups = incentive.NewQueue(incentive.Events{
		Correct:           outcome.Correct,
		Streak:            fb.Streak,
		Bonus:             fb.Bonus,
		Score:             fb.Score,
		StageUp:           fb.StageUp,
		NextStage:         doc.Character.Current.Stage + 1,
		TotalPoints:       inc.TotalPoints,
		DoublePointsArmed: fb.DoublePointsArmed,
	})

	e.log.Debug("answer processed",
		zap.String("exercise", ex.Key()),
		zap.Bool("correct", outcome.Correct),
		zap.Bool("fast", outcome.Fast),
		zap.Int("group", int(outcome.Exercise.Group)),
		zap.Int("points", fb.Points),
		zap.Int("daily_score", inc.DailyScore),
	)

	saveErr := e.save(ctx, doc)
	e.recordAwards(ctx, now, fb)
	return fb, saveErr
}

// recordAwards appends the awards of one answer to the event log.
func (e *Engine) recordAwards(ctx context.Context, now time.Time, fb *Feedback) {
	for _, n := range fb.Popups.Items() {
		var (
			value  int
			detail string
		)
		switch n.Kind {
		case incentive.KindStreak:
			value = n.Streak
			detail = fmt.Sprintf("bonus %d", n.Bonus)
		case incentive.KindRecord:
			value = n.Score
		case incentive.KindStageUp:
			value = n.Stage
			detail = fmt.Sprintf("total %d", n.TotalPoints)
		}
		e.log.Info("incentive awarded", zap.String("kind", string(n.Kind)), zap.Int("value", value))
		e.appendEvent(ctx, now, string(n.Kind), value, detail)
	}
}

func (e *Engine) appendEvent(ctx context.Context, now time.Time, kind string, value int, detail string) {
	if e.events == nil {
		return
	}
	err := e.events.AppendIncentiveEvent(ctx, store.IncentiveEventData{
		Profile:   e.profile,
		SessionID: e.sessionID,
		Kind:      kind,
		Value:     value,
		Detail:    detail,
		Timestamp: now,
	})
	if err != nil {
		e.log.Warn("append incentive event", zap.String("kind", kind), zap.Error(err))
	}
}

// SelectCharacterOption grows the current character to stage using
// choice. stage must be the stage right after the current one.
func (e *Engine) SelectCharacterOption(ctx context.Context, stage int, choice string) (character.Character, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc := e.load(ctx)
	cur := doc.Character.Current
	if stage != cur.Stage+1 {
		return cur, fmt.Errorf("select stage %d from stage %d: %w", stage, cur.Stage, character.ErrWrongStage)
	}
	if err := doc.Character.Advance(doc.Incentive.TotalPoints, choice); err != nil {
		return cur, fmt.Errorf("select %s %q: %w", character.OptionLabel(cur.Stage), choice, err)
	}

	e.log.Info("character stage unlocked", zap.Int("stage", stage), zap.String("choice", choice))
	return doc.Character.Current, e.save(ctx, doc)
}

// CompleteCharacter archives a fully grown character and starts a new one.
func (e *Engine) CompleteCharacter(ctx context.Context) (character.Completed, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	doc := e.load(ctx)
	done, err := doc.Character.Complete(now)
	if err != nil {
		return done, fmt.Errorf("complete character: %w", err)
	}
	if err := e.save(ctx, doc); err != nil {
		return done, err
	}

	e.log.Info("character completed", zap.Int("completed", len(doc.Character.Completed)))
	e.appendEvent(ctx, now, KindCharacterComplete, len(doc.Character.Completed),
		fmt.Sprintf("%s/%s/%s", done.Color, done.Skin, done.Animation))
	return done, nil
}

// RegisterUser validates and stores the learner's name and gender.
func (e *Engine) RegisterUser(ctx context.Context, name string, gender profile.Gender) (*profile.User, error) {
	u := &profile.User{Name: name, Gender: gender}
	if err := e.validate.Struct(u); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUser, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	doc := e.load(ctx)
	doc.User = u
	return u, e.save(ctx, doc)
}

// Snapshot is the read-only state the UI shows between answers.
type Snapshot struct {
	User              *profile.User
	DailyScore        int
	HighScore         int
	Streak            int
	DoublePointsArmed bool
	TotalPoints       int
	Character         character.State
	// Threshold is the lifetime total needed for the next stage.
	Threshold  int
	CanAdvance bool
	Pending    exercise.PendingRepeat
}

// Snapshot returns the current incentive, character and repeat state.
// Day rollover is applied to the view but not saved.
func (e *Engine) Snapshot(ctx context.Context) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc := e.load(ctx)
	in := doc.Incentive
	return Snapshot{
		User:              doc.User,
		DailyScore:        in.DailyScore,
		HighScore:         in.HighScore,
		Streak:            in.CurrentStreak,
		DoublePointsArmed: in.NextQuestionDoublePoints,
		TotalPoints:       in.TotalPoints,
		Character:         doc.Character,
		Threshold:         doc.Character.Threshold(),
		CanAdvance:        doc.Character.CanAdvance(in.TotalPoints),
		Pending:           doc.Pending(),
	}
}

// Document returns a copy of the migrated document.
func (e *Engine) Document(ctx context.Context) *profile.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.load(ctx)
}

// Report builds the progress report as of now.
func (e *Engine) Report(ctx context.Context) report.Report {
	e.mu.Lock()
	defer e.mu.Unlock()
	return report.Build(e.load(ctx), e.now())
}

// History returns up to limit logged awards of this profile, newest first.
// It returns nil when the engine has no event log.
func (e *Engine) History(ctx context.Context, limit int) ([]store.IncentiveEventRecord, error) {
	if e.events == nil {
		return nil, nil
	}
	recs, err := e.events.QueryIncentiveEvents(ctx, store.QueryOpts{Profile: e.profile, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return recs, nil
}

// AwardCounts returns the number of logged awards per event kind.
func (e *Engine) AwardCounts(ctx context.Context) (map[string]int, error) {
	if e.events == nil {
		return map[string]int{}, nil
	}
	counts, err := e.events.IncentiveCounts(ctx, e.profile)
	if err != nil {
		return nil, fmt.Errorf("count awards: %w", err)
	}
	return counts, nil
}

// HasHistory reports whether awards are being logged.
func (e *Engine) HasHistory() bool {
	return e.events != nil
}

// Reset backs up and removes the profile document.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	raw, err := e.docs.Load(ctx, e.profile)
	if err != nil {
		return fmt.Errorf("load profile %q: %w", e.profile, err)
	}
	if raw != nil {
		e.backup(ctx, raw, "reset")
	}
	if err := e.docs.Clear(ctx, e.profile); err != nil {
		return fmt.Errorf("clear profile %q: %w", e.profile, err)
	}
	e.previous = nil
	e.log.Info("profile reset")
	return nil
}

// ErrNoBackup is returned by Restore when no backup exists.
var ErrNoBackup = errors.New("no backup")

// Restore replaces the profile document with the newest backup and returns
// the reason the backup was taken. The replaced document is itself backed
// up with reason "restore", so a second Restore undoes the first.
func (e *Engine) Restore(ctx context.Context) (string, error) {
	if e.snapshots == nil {
		return "", ErrNoBackup
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.snapshots.Latest(ctx, e.profile)
	if err != nil {
		return "", fmt.Errorf("load backup: %w", err)
	}
	if snap == nil {
		return "", ErrNoBackup
	}

	doc, rep := profile.Migrate(snap.Data, e.now())
	if rep.Corrupted {
		e.log.Warn("backup is corrupted, restoring defaults", zap.Int64("sequence", snap.Sequence))
	}

	current, err := e.docs.Load(ctx, e.profile)
	if err != nil {
		return "", fmt.Errorf("load profile %q: %w", e.profile, err)
	}
	if current != nil {
		e.backup(ctx, current, "restore")
	}
	if err := e.save(ctx, doc); err != nil {
		return "", err
	}
	e.previous = nil
	e.log.Info("profile restored", zap.String("reason", snap.Reason), zap.Int64("sequence", snap.Sequence))
	return snap.Reason, nil
}

// load reads and migrates the document. It never fails: a read error or a
// corrupted blob yields a fresh document.
func (e *Engine) load(ctx context.Context) *profile.Document {
	now := e.now()
	raw, err := e.docs.Load(ctx, e.profile)
	if err != nil {
		e.log.Warn("load profile failed, using defaults", zap.Error(err))
		return profile.New(now)
	}

	doc, rep := profile.Migrate(raw, now)
	if rep.Corrupted {
		e.log.Warn("discarding corrupted profile document", zap.Int("bytes", len(raw)))
		e.backup(ctx, raw, "corrupted")
		if err := e.docs.Clear(ctx, e.profile); err != nil {
			e.log.Warn("clear corrupted document", zap.Error(err))
		}
	}
	if rep.NewerVersion {
		e.log.Warn("profile written by a newer version",
			zap.String("stored", rep.StoredVersion),
			zap.String("supported", profile.FormatVersion))
	}
	if rep.DroppedExercises > 0 || rep.DroppedResults > 0 || rep.DroppedCompleted > 0 {
		e.log.Debug("dropped malformed records",
			zap.Int("exercises", rep.DroppedExercises),
			zap.Int("results", rep.DroppedResults),
			zap.Int("completed", rep.DroppedCompleted))
	}
	return doc
}

func (e *Engine) save(ctx context.Context, doc *profile.Document) error {
	data, err := doc.Marshal()
	if err != nil {
		e.log.Error("encode profile", zap.Error(err))
		return err
	}
	if err := e.docs.Save(ctx, e.profile, data); err != nil {
		e.log.Error("save profile", zap.Error(err))
		return fmt.Errorf("save profile %q: %w", e.profile, err)
	}
	return nil
}

func (e *Engine) backup(ctx context.Context, raw []byte, reason string) {
	if e.snapshots == nil {
		return
	}
	err := e.snapshots.Save(ctx, &store.Snapshot{
		Timestamp: e.now(),
		Profile:   e.profile,
		Reason:    reason,
		Data:      raw,
	})
	if err != nil {
		e.log.Warn("backup profile document", zap.String("reason", reason), zap.Error(err))
		return
	}
	if err := e.snapshots.Prune(ctx, e.profile, snapshotKeep); err != nil {
		e.log.Warn("prune backups", zap.Error(err))
	}
}
