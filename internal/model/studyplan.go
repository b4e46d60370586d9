package model

import "time"

// StudyPlan is the day-by-day schedule produced by the planner. At most
// one plan per user is active; creating a new plan deactivates the
// previous one instead of deleting it.
type StudyPlan struct {
	BaseModel
	UserID       uint        `gorm:"index;not null" json:"userId"`
	Title        string      `gorm:"size:160;default:'Exam Study Plan'" json:"title"`
	ExamDate     *time.Time  `json:"examDate"`
	Days         int         `gorm:"default:7" json:"days"`
	DailyMinutes int         `gorm:"default:180" json:"dailyMinutes"`
	IsActive     bool        `gorm:"default:true" json:"isActive"`
	Tasks        []StudyTask `gorm:"foreignKey:PlanID" json:"tasks,omitempty"`
}

func (StudyPlan) TableName() string {
	return "study_plans"
}

type StudyTask struct {
	BaseModel
	PlanID  uint      `gorm:"index;not null" json:"planId"`
	Date    time.Time `gorm:"type:date;not null" json:"date"`
	Topic   string    `gorm:"size:200;not null" json:"topic"`
	Minutes int       `gorm:"default:45" json:"minutes"`
	IsBreak bool      `gorm:"default:false" json:"isBreak"`
	Done    bool      `gorm:"default:false" json:"done"`
}

func (StudyTask) TableName() string {
	return "study_tasks"
}
