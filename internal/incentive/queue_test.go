package incentive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kinds(q *Queue) []Kind {
	var out []Kind
	for _, n := range q.Items() {
		out = append(out, n.Kind)
	}
	return out
}

func TestNewQueue_Precedence(t *testing.T) {
	tests := []struct {
		name   string
		events Events
		want   []Kind
	}{
		{
			name:   "nothing",
			events: Events{Correct: true},
			want:   nil,
		},
		{
			name: "streak outranks record",
			events: Events{
				Correct: true,
				Streak:  StreakUpdate{CurrentStreak: 5, Achievement: 5},
				Score:   ScoreUpdate{IsNewRecord: true, ShouldShowRecordPopup: true},
			},
			want: []Kind{KindStreak},
		},
		{
			name: "record then stage up then double points",
			events: Events{
				Correct:           true,
				Score:             ScoreUpdate{IsNewRecord: true, ShouldShowRecordPopup: true},
				StageUp:           true,
				NextStage:         1,
				DoublePointsArmed: true,
			},
			want: []Kind{KindRecord, KindStageUp, KindDoublePoints},
		},
		{
			name: "streak then stage up",
			events: Events{
				Correct: true,
				Streak:  StreakUpdate{CurrentStreak: 10, Achievement: 10},
				StageUp: true,
			},
			want: []Kind{KindStreak, KindStageUp},
		},
		{
			name: "wrong answer only shows double points",
			events: Events{
				Correct:           false,
				StageUp:           true,
				DoublePointsArmed: true,
			},
			want: []Kind{KindDoublePoints},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kinds(NewQueue(tt.events)))
		})
	}
}

func TestQueue_AckDrainsInOrder(t *testing.T) {
	q := NewQueue(Events{
		Correct:           true,
		Streak:            StreakUpdate{CurrentStreak: 20, Achievement: 20},
		Bonus:             20,
		StageUp:           true,
		NextStage:         2,
		TotalPoints:       61,
		DoublePointsArmed: true,
	})

	n, ok := q.Peek()
	assert.True(t, ok)
	assert.Equal(t, KindStreak, n.Kind)
	assert.Equal(t, 20, n.Bonus)

	n, ok = q.Ack()
	assert.True(t, ok)
	assert.Equal(t, KindStageUp, n.Kind)
	assert.Equal(t, 2, n.Stage)

	n, ok = q.Ack()
	assert.True(t, ok)
	assert.Equal(t, KindDoublePoints, n.Kind)

	_, ok = q.Ack()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())

	_, ok = q.Ack()
	assert.False(t, ok)
}

func TestQueue_Nil(t *testing.T) {
	var q *Queue
	_, ok := q.Peek()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
	assert.Nil(t, q.Items())
}
