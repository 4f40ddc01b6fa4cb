package logic

import (
	"time"

	"github.com/hazypayback/internal/db"
)

// DayStatus 是某个日历日的分类结果（派生值，不落库）。
type DayStatus string

const (
	DayStatusRest                 DayStatus = "rest"
	DayStatusRestExercise         DayStatus = "rest_exercise"
	DayStatusDrink                DayStatus = "drink"
	DayStatusDrinkExercise        DayStatus = "drink_exercise"
	DayStatusDrinkExerciseSuccess DayStatus = "drink_exercise_success"
	DayStatusExercise             DayStatus = "exercise"
	DayStatusNone                 DayStatus = "none"
)

// ClassifyDay 根据当日记录与打卡归类单日状态。
// drink_exercise_success 要求当日净热量 ≥ 0，即当天就把饮酒负债还清。
func ClassifyDay(date time.Time, logs []db.LogEntry, checks []db.DailyCheck, p Profile) DayStatus {
	hasBeer := false
	hasExercise := false
	balance := 0.0

	for _, l := range logs {
		if !SameDay(l.Timestamp, date) {
			continue
		}
		switch l.Type {
		case db.LogTypeBeer:
			hasBeer = true
		case db.LogTypeExercise:
			hasExercise = true
		}
		balance += EntryKcal(l, p)
	}

	isDryDay := false
	for _, c := range checks {
		if SameDay(c.Timestamp, date) && c.IsDryDay {
			isDryDay = true
			break
		}
	}

	switch {
	case isDryDay && hasExercise:
		return DayStatusRestExercise
	case isDryDay:
		return DayStatusRest
	case hasBeer && hasExercise && balance >= 0:
		return DayStatusDrinkExerciseSuccess
	case hasBeer && hasExercise:
		return DayStatusDrinkExercise
	case hasBeer:
		return DayStatusDrink
	case hasExercise:
		return DayStatusExercise
	default:
		return DayStatusNone
	}
}
