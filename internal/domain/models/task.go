package models

import "time"

// Task is a to-do item assigned to a user by email or name
type Task struct {
	ID         string `json:"id"`
	Task       string `json:"task" validate:"required"`
	Completed  bool   `json:"completed"`
	AssignedTo string `json:"assignedTo" validate:"required"`
	Date       Date   `json:"date"`
	CreatedAt  Date   `json:"createdAt"`
}

func (t *Task) SetID(id string) { t.ID = id }

// OnDay reports whether the task shows on the given day: undated tasks show every day.
func (t Task) OnDay(day time.Time) bool {
	if !t.Date.Valid() {
		return true
	}
	loc := DateLocation()
	y1, m1, d1 := t.Date.In(loc).Date()
	y2, m2, d2 := day.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
