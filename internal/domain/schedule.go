package domain

import (
	"time"

	"github.com/m04kA/studio-booking/pkg/types"
)

// WeekdaySchedule рабочие часы студии для дня недели
// Weekday: 0 = понедельник ... 6 = воскресенье
type WeekdaySchedule struct {
	ID       int64
	Weekday  int
	Active   bool
	OpensAt  types.TimeString
	ClosesAt types.TimeString
}

// IsOpen день рабочий и часы заданы корректно
func (s *WeekdaySchedule) IsOpen() bool {
	return s.Active && s.OpensAt.Minutes() >= 0 && s.ClosesAt.Minutes() > s.OpensAt.Minutes()
}

// Blackout календарная дата, полностью закрытая для записи
type Blackout struct {
	ID     int64
	Date   time.Time
	Reason string
}

// WeekdayIndex номер дня недели с понедельника (0) по воскресенье (6)
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// IsValidWeekday проверяет номер дня недели
func IsValidWeekday(weekday int) bool {
	return weekday >= 0 && weekday <= 6
}
