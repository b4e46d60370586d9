package service

import (
	"adhyeta_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlannerService(f *fixture) *PlannerService {
	return NewPlannerService(f.plan, f.course, f.progress)
}

func TestCreatePlan_RejectsEmptyTopicList(t *testing.T) {
	db := newTestDB(t)
	svc := newPlannerService(newFixture(db))

	_, err := svc.CreatePlan(1, CreatePlanInput{TopicNames: nil})
	assert.ErrorIs(t, err, util.ErrEmptyTopicList)

	_, err = svc.CreatePlan(1, CreatePlanInput{TopicNames: []string{"  ", ""}})
	assert.ErrorIs(t, err, util.ErrEmptyTopicList)
}

func TestCreatePlan_BuildsDailySchedule(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newPlannerService(f)

	course := f.seedCourse(t, "Mathematics")
	f.seedTopic(t, course.ID, "Algebra", 1, 2)

	const userID = 1
	plan, err := svc.CreatePlan(userID, CreatePlanInput{
		DaysLeft:     2,
		DailyMinutes: 90,
		TopicNames:   []string{"algebra"},
	})
	require.NoError(t, err)

	assert.True(t, plan.IsActive)
	assert.Equal(t, 2, plan.Days)
	assert.Equal(t, "Exam Study Plan", plan.Title)

	detail, err := svc.ActivePlan(userID)
	require.NoError(t, err)
	require.NotEmpty(t, detail.Tasks)

	days := map[string]bool{}
	for _, task := range detail.Tasks {
		days[task.Date.Format("2006-01-02")] = true
	}
	assert.Len(t, days, 2)

	// Both days carry the full 90-minute budget, so each ends in a recap.
	last := detail.Tasks[len(detail.Tasks)-1]
	assert.Equal(t, "Quick recap", last.Topic)
}

func TestCreatePlan_ResolvesTopicsCaseInsensitively(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newPlannerService(f)

	course := f.seedCourse(t, "Mathematics")
	f.seedTopic(t, course.ID, "Linear Algebra", 1, 2)

	plan, err := svc.CreatePlan(1, CreatePlanInput{
		DaysLeft:   1,
		TopicNames: []string{"ALGEBRA"},
	})
	require.NoError(t, err)

	detail, err := svc.GetPlan(plan.ID, 1)
	require.NoError(t, err)

	found := false
	for _, task := range detail.Tasks {
		if task.Topic == "Linear Algebra" {
			found = true
		}
	}
	assert.True(t, found, "resolved topic title should label the sessions")
}

func TestCreatePlan_UnresolvedNameBecomesPlainLabel(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newPlannerService(f)

	plan, err := svc.CreatePlan(1, CreatePlanInput{
		DaysLeft:   1,
		TopicNames: []string{"Quantum Field Theory"},
	})
	require.NoError(t, err)

	detail, err := svc.GetPlan(plan.ID, 1)
	require.NoError(t, err)

	found := false
	for _, task := range detail.Tasks {
		if task.Topic == "Quantum Field Theory" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCreatePlan_DeactivatesPreviousPlan(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newPlannerService(f)

	const userID = 1
	first, err := svc.CreatePlan(userID, CreatePlanInput{
		DaysLeft:   1,
		TopicNames: []string{"Algebra"},
	})
	require.NoError(t, err)

	second, err := svc.CreatePlan(userID, CreatePlanInput{
		DaysLeft:   1,
		TopicNames: []string{"Geometry"},
	})
	require.NoError(t, err)

	plans, err := svc.ListPlans(userID)
	require.NoError(t, err)
	require.Len(t, plans, 2)

	for _, p := range plans {
		switch p.ID {
		case first.ID:
			assert.False(t, p.IsActive, "previous plan must be deactivated")
		case second.ID:
			assert.True(t, p.IsActive)
		}
	}

	active, err := svc.ActivePlan(userID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.Plan.ID)
}

func TestCreatePlan_ExamDateSetsSpan(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newPlannerService(f)

	examDate := time.Now().AddDate(0, 0, 6)
	plan, err := svc.CreatePlan(1, CreatePlanInput{
		ExamDate:   &examDate,
		TopicNames: []string{"Algebra"},
	})
	require.NoError(t, err)

	assert.Equal(t, 7, plan.Days)
}

func TestSetTaskDone_ChecksOwnership(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newPlannerService(f)

	const owner, stranger = 1, 2
	plan, err := svc.CreatePlan(owner, CreatePlanInput{
		DaysLeft:   1,
		TopicNames: []string{"Algebra"},
	})
	require.NoError(t, err)

	detail, err := svc.GetPlan(plan.ID, owner)
	require.NoError(t, err)
	require.NotEmpty(t, detail.Tasks)
	taskID := detail.Tasks[0].ID

	err = svc.SetTaskDone(stranger, plan.ID, taskID, true)
	assert.ErrorIs(t, err, util.ErrPlanNotFound)

	require.NoError(t, svc.SetTaskDone(owner, plan.ID, taskID, true))

	detail, err = svc.GetPlan(plan.ID, owner)
	require.NoError(t, err)
	assert.True(t, detail.Tasks[0].Done)

	err = svc.SetTaskDone(owner, plan.ID, 99999, true)
	assert.ErrorIs(t, err, util.ErrTaskNotFound)
}
