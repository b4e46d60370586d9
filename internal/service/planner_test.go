package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countBlocks(blocks []SessionBlock) (sessions, breaks, reviews int) {
	for _, b := range blocks {
		switch {
		case b.IsBreak:
			breaks++
		case b.Topic == "Review weak areas":
			reviews++
		default:
			sessions++
		}
	}
	return
}

func TestAllocateSessions_SessionCounts(t *testing.T) {
	topics := []WeightedTopic{{Label: "Algebra", Weight: 1}}

	tests := []struct {
		name         string
		totalMinutes int
		wantSessions int
		wantBreaks   int
		wantReviews  int
	}{
		{"full evening", 180, 4, 3, 1},
		{"hundred minutes", 100, 2, 1, 0},
		{"below one session", 30, 1, 0, 0},
		{"zero minutes still studies", 0, 1, 0, 0},
		{"nine sessions", 405, 9, 8, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, breaks, reviews := countBlocks(AllocateSessions(topics, tt.totalMinutes))
			assert.Equal(t, tt.wantSessions, sessions)
			assert.Equal(t, tt.wantBreaks, breaks)
			assert.Equal(t, tt.wantReviews, reviews)
		})
	}
}

func TestAllocateSessions_SingleTopicHundredMinutes(t *testing.T) {
	blocks := AllocateSessions([]WeightedTopic{{Label: "Algebra", Weight: 1}}, 100)

	require.Len(t, blocks, 3)
	assert.Equal(t, "Algebra", blocks[0].Topic)
	assert.Equal(t, 45, blocks[0].Minutes)
	assert.True(t, blocks[1].IsBreak)
	assert.Equal(t, 15, blocks[1].Minutes)
	assert.Equal(t, "Algebra", blocks[2].Topic)
}

func TestAllocateSessions_WeightedRotation(t *testing.T) {
	topics := []WeightedTopic{
		{Label: "Algebra", Weight: 2},
		{Label: "Geometry", Weight: 1},
	}

	blocks := AllocateSessions(topics, 5*45)

	var order []string
	for _, b := range blocks {
		if !b.IsBreak && b.Topic != "Review weak areas" {
			order = append(order, b.Topic)
		}
	}
	assert.Equal(t, []string{"Algebra", "Algebra", "Geometry", "Algebra", "Algebra"}, order)
}

func TestAllocateSessions_ReviewAfterEveryThird(t *testing.T) {
	blocks := AllocateSessions([]WeightedTopic{{Label: "Algebra", Weight: 1}}, 6*45)

	sessionsSeen := 0
	for i, b := range blocks {
		if !b.IsBreak && b.Topic != "Review weak areas" {
			sessionsSeen++
			if sessionsSeen%3 == 0 {
				require.Greater(t, len(blocks), i+1)
				assert.Equal(t, "Review weak areas", blocks[i+1].Topic)
				assert.Equal(t, 20, blocks[i+1].Minutes)
			}
		}
	}
	assert.Equal(t, 6, sessionsSeen)
}

func TestAllocateSessions_EmptyPool(t *testing.T) {
	assert.Nil(t, AllocateSessions(nil, 180))
	assert.Nil(t, AllocateSessions([]WeightedTopic{}, 180))
}

func TestAllocateSessions_ZeroWeightTreatedAsOne(t *testing.T) {
	blocks := AllocateSessions([]WeightedTopic{{Label: "Algebra", Weight: 0}}, 45)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Algebra", blocks[0].Topic)
}

func TestBoostWeight(t *testing.T) {
	tests := []struct {
		name       string
		weight     float64
		ratio      float64
		hasHistory bool
		want       int
	}{
		{"boosted below half", 1, 0.3, true, 2},
		{"exactly half is not boosted", 2, 0.5, true, 2},
		{"above half keeps weight", 1, 0.6, true, 1},
		{"no history keeps weight", 1, 0.3, false, 1},
		{"double weight boosted", 2, 0.49, true, 3},
		{"never drops below one", 0.4, 0.9, true, 1},
		{"fractional boost rounds", 2.2, 0.1, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BoostWeight(tt.weight, tt.ratio, tt.hasHistory))
		})
	}
}

func TestDayBudget(t *testing.T) {
	assert.Equal(t, 180, DayBudget(1, 180))
	assert.Equal(t, 180, DayBudget(3, 180))
	assert.Equal(t, 108, DayBudget(4, 180))
	assert.Equal(t, 180, DayBudget(5, 180))
	assert.Equal(t, 108, DayBudget(8, 180))
	assert.Equal(t, 54, DayBudget(4, 90))
}

func TestSpanDays(t *testing.T) {
	today := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	examIn6 := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 7, SpanDays(&examIn6, 0, today))

	examToday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, SpanDays(&examToday, 0, today))

	examPast := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, SpanDays(&examPast, 0, today))

	assert.Equal(t, 5, SpanDays(nil, 5, today))
	assert.Equal(t, 1, SpanDays(nil, 0, today))
	assert.Equal(t, 1, SpanDays(nil, -3, today))
}

func TestBuildSchedule_FullDaysEndWithRecap(t *testing.T) {
	topics := []WeightedTopic{{Label: "Algebra", Weight: 1}}
	today := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)

	tasks := BuildSchedule(topics, 2, 90, today)
	require.NotEmpty(t, tasks)

	byDate := map[string][]string{}
	for _, task := range tasks {
		key := task.Date.Format("2006-01-02")
		byDate[key] = append(byDate[key], task.Topic)
	}
	require.Len(t, byDate, 2)

	for _, topics := range byDate {
		assert.Equal(t, "Quick recap", topics[len(topics)-1])
	}
}

func TestBuildSchedule_LightDayHasNoRecap(t *testing.T) {
	topics := []WeightedTopic{{Label: "Algebra", Weight: 1}}
	today := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	tasks := BuildSchedule(topics, 4, 180, today)

	lightDate := today.AddDate(0, 0, 3).Format("2006-01-02")
	var lightTasks []string
	study := 0
	for _, task := range tasks {
		if task.Date.Format("2006-01-02") != lightDate {
			continue
		}
		lightTasks = append(lightTasks, task.Topic)
		if !task.IsBreak && task.Topic != "Review weak areas" && task.Topic != "Quick recap" {
			study += task.Minutes
		}
	}

	require.NotEmpty(t, lightTasks)
	assert.NotContains(t, lightTasks, "Quick recap")
	// 60% of 180 is 108 minutes, which fits two 45-minute sessions.
	assert.Equal(t, 90, study)
}

func TestBuildSchedule_DatesAreConsecutive(t *testing.T) {
	topics := []WeightedTopic{{Label: "Algebra", Weight: 1}}
	today := time.Date(2026, 3, 2, 23, 50, 0, 0, time.UTC)

	tasks := BuildSchedule(topics, 3, 45, today)

	seen := map[string]bool{}
	for _, task := range tasks {
		seen[task.Date.Format("2006-01-02")] = true
	}
	assert.Equal(t, map[string]bool{
		"2026-03-02": true,
		"2026-03-03": true,
		"2026-03-04": true,
	}, seen)
}
