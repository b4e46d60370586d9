package service

import (
	"math"
	"time"

	"adhyeta_backend/internal/model"
)

// Fixed block lengths. Sessions and breaks are not configurable per
// call; the whole schedule is built from these constants.
const (
	SessionMinutes = 45
	BreakMinutes   = 15
	ReviewMinutes  = 20
	RecapMinutes   = 10

	reviewEvery   = 3
	lightDayEvery = 4
	lightDayScale = 0.6

	boostThreshold = 0.5
	boostFactor    = 1.5

	breakLabel  = "Break"
	reviewLabel = "Review weak areas"
	recapLabel  = "Quick recap"
)

// WeightedTopic is a topic label with its integer allocation weight.
// Weight below 1 is treated as 1.
type WeightedTopic struct {
	Label  string
	Weight int
}

// SessionBlock is one scheduled block of a study day.
type SessionBlock struct {
	Topic   string
	Minutes int
	IsBreak bool
}

// BoostWeight applies the weak-area boost: completion ratios strictly
// below 50% multiply the weight by 1.5, rounded to the nearest integer,
// never dropping below 1. hasHistory is false when no ratio could be
// computed (topic without lessons), in which case the weight is kept.
func BoostWeight(weight float64, completionRatio float64, hasHistory bool) int {
	w := weight
	if hasHistory && completionRatio < boostThreshold {
		w = w * boostFactor
	}

	n := int(math.Round(w))
	if n < 1 {
		n = 1
	}
	return n
}

// AllocateSessions partitions totalMinutes into 45-minute study sessions
// assigned round-robin over a weighted topic pool, with a 15-minute
// break after every session except the last and a 20-minute review block
// after every 3rd session. Deterministic given its inputs.
func AllocateSessions(topics []WeightedTopic, totalMinutes int) []SessionBlock {
	pool := make([]string, 0, len(topics))
	for _, t := range topics {
		reps := t.Weight
		if reps < 1 {
			reps = 1
		}
		for i := 0; i < reps; i++ {
			pool = append(pool, t.Label)
		}
	}
	if len(pool) == 0 {
		return nil
	}

	sessions := totalMinutes / SessionMinutes
	if sessions < 1 {
		sessions = 1
	}

	blocks := make([]SessionBlock, 0, sessions*2)
	for i := 1; i <= sessions; i++ {
		blocks = append(blocks, SessionBlock{
			Topic:   pool[(i-1)%len(pool)],
			Minutes: SessionMinutes,
		})

		// Review blocks ride on top of the session quota.
		if i%reviewEvery == 0 {
			blocks = append(blocks, SessionBlock{
				Topic:   reviewLabel,
				Minutes: ReviewMinutes,
			})
		}

		if i < sessions {
			blocks = append(blocks, SessionBlock{
				Topic:   breakLabel,
				Minutes: BreakMinutes,
				IsBreak: true,
			})
		}
	}

	return blocks
}

// DayBudget returns the scaled minute budget for a day of the span.
// Every 4th day (1-indexed) is a lighter review day at 60% of the
// nominal budget.
func DayBudget(dayInSpan, dailyMinutes int) int {
	if dayInSpan%lightDayEvery == 0 {
		return int(math.Round(float64(dailyMinutes) * lightDayScale))
	}
	return dailyMinutes
}

// SpanDays computes the plan length in days. An exam date spans from
// today through the exam day inclusive; otherwise the explicit day count
// is used. Both are floored at 1.
func SpanDays(examDate *time.Time, days int, today time.Time) int {
	if examDate != nil {
		span := int(examDate.Sub(truncateToDay(today)).Hours()/24) + 1
		if span < 1 {
			span = 1
		}
		return span
	}

	if days < 1 {
		return 1
	}
	return days
}

// BuildSchedule lays out StudyTasks for every day of the span, starting
// today. Full-budget days end with a 10-minute recap task; light days
// do not.
func BuildSchedule(topics []WeightedTopic, days, dailyMinutes int, today time.Time) []model.StudyTask {
	start := truncateToDay(today)

	var tasks []model.StudyTask
	for offset := 0; offset < days; offset++ {
		date := start.AddDate(0, 0, offset)
		minutes := DayBudget(offset+1, dailyMinutes)

		for _, block := range AllocateSessions(topics, minutes) {
			tasks = append(tasks, model.StudyTask{
				Date:    date,
				Topic:   block.Topic,
				Minutes: block.Minutes,
				IsBreak: block.IsBreak,
			})
		}

		if minutes >= dailyMinutes {
			tasks = append(tasks, model.StudyTask{
				Date:    date,
				Topic:   recapLabel,
				Minutes: RecapMinutes,
			})
		}
	}

	return tasks
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
