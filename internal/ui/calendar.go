package ui

import (
	"time"

	"github.com/tdlapp/tdl-go/internal/task"
)

// monthGrid is a Sunday-first month layout. Cells holds one entry per
// grid cell: 0 for a blank cell, otherwise the day of the month. The
// length is always a multiple of 7.
type monthGrid struct {
	Year  int
	Month time.Month
	Cells []int
}

func buildMonthGrid(year int, month time.Month) monthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	startWeekday := int(first.Weekday()) // 0 = Sunday
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]int, 0, 42)
	for i := 0; i < startWeekday; i++ {
		cells = append(cells, 0)
	}
	for day := 1; day <= daysInMonth; day++ {
		cells = append(cells, day)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, 0)
	}

	return monthGrid{Year: year, Month: month, Cells: cells}
}

// monthStep moves the (year, month) pair by delta months.
func monthStep(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}

// tasksByDay buckets tasks due in the given month by day of month.
// Tasks without a due date, or with an unparseable one, are skipped.
func tasksByDay(tasks []task.Task, year int, month time.Month) map[int][]task.Task {
	byDay := make(map[int][]task.Task)
	for _, t := range tasks {
		if t.DueDate == "" {
			continue
		}
		due, err := time.Parse(task.DateLayout, t.DueDate)
		if err != nil {
			continue
		}
		if due.Year() == year && due.Month() == month {
			byDay[due.Day()] = append(byDay[due.Day()], t)
		}
	}
	return byDay
}
