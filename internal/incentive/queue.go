package incentive

// Kind identifies a notification shown after an answer.
type Kind string

const (
	KindStreak       Kind = "streak"
	KindRecord       Kind = "record"
	KindStageUp      Kind = "stage_up"
	KindDoublePoints Kind = "double_points"
)

// Notification is a single popup waiting for the learner to acknowledge it.
type Notification struct {
	Kind Kind

	Streak      int // KindStreak: milestone reached
	Bonus       int // KindStreak: bonus points granted
	Score       int // KindRecord: the new daily score
	Stage       int // KindStageUp: the stage that can now be unlocked
	TotalPoints int // KindStageUp: lifetime points
}

// Events collects the incentive outcomes of one answer.
type Events struct {
	Correct           bool
	Streak            StreakUpdate
	Bonus             int
	Score             ScoreUpdate
	StageUp           bool
	NextStage         int
	TotalPoints       int
	DoublePointsArmed bool
}

// Queue holds pending notifications in display order.
// Items are drained one at a time by Ack.
type Queue struct {
	items []Notification
}

// NewQueue orders the notifications for one answer. On a correct answer a
// streak milestone outranks a record (the record is not shown); a stage-up
// follows either. The double-points notice always comes last.
func NewQueue(e Events) *Queue {
	q := &Queue{}
	if e.Correct {
		switch {
		case e.Streak.Achievement > 0:
			q.Push(Notification{Kind: KindStreak, Streak: e.Streak.Achievement, Bonus: e.Bonus})
		case e.Score.ShouldShowRecordPopup:
			q.Push(Notification{Kind: KindRecord, Score: e.Score.NewScore})
		}
		if e.StageUp {
			q.Push(Notification{Kind: KindStageUp, Stage: e.NextStage, TotalPoints: e.TotalPoints})
		}
	}
	if e.DoublePointsArmed {
		q.Push(Notification{Kind: KindDoublePoints})
	}
	return q
}

// Push appends a notification.
func (q *Queue) Push(n Notification) {
	q.items = append(q.items, n)
}

// Peek returns the notification currently on display.
func (q *Queue) Peek() (Notification, bool) {
	if q == nil || len(q.items) == 0 {
		return Notification{}, false
	}
	return q.items[0], true
}

// Ack dismisses the current notification and returns the next one, if any.
func (q *Queue) Ack() (Notification, bool) {
	if q == nil || len(q.items) == 0 {
		return Notification{}, false
	}
	q.items = q.items[1:]
	return q.Peek()
}

// Len returns the number of notifications not yet acknowledged.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Items returns a copy of the pending notifications.
func (q *Queue) Items() []Notification {
	if q == nil {
		return nil
	}
	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}
