package get_available_slots

import (
	"time"

	"github.com/m04kA/studio-booking/internal/domain"
	"github.com/m04kA/studio-booking/pkg/types"
)

// slotInput снимок данных, по которому считаются свободные времена начала
type slotInput struct {
	Schedule        domain.WeekdaySchedule
	DurationMinutes int
	Occupied        []domain.OccupiedInterval
	Date            time.Time // календарная дата запроса
	Now             time.Time // текущее время в часовом поясе студии
}

// computeSlots обходит рабочий день с шагом domain.SlotStepMinutes
// и оставляет времена начала, для которых [start, start+duration) не пересекается
// ни с одним занятым интервалом и целиком помещается до закрытия.
//
// Для сегодняшней даты курсор сначала сдвигается вперед, пока момент начала раньше now:
// при now = 10:05 первым возможным временем будет 10:30.
func computeSlots(in slotInput) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if !in.Schedule.IsOpen() || in.DurationMinutes <= 0 {
		return slots
	}

	opens := in.Schedule.OpensAt.Minutes()
	closes := in.Schedule.ClosesAt.Minutes()

	cursor := opens
	if isSameDay(in.Date, in.Now) {
		y, m, d := in.Date.Date()
		midnight := time.Date(y, m, d, 0, 0, 0, 0, in.Now.Location())
		for cursor < closes && midnight.Add(time.Duration(cursor)*time.Minute).Before(in.Now) {
			cursor += domain.SlotStepMinutes
		}
	}

	for ; cursor+in.DurationMinutes <= closes; cursor += domain.SlotStepMinutes {
		if overlapsAny(cursor, cursor+in.DurationMinutes, in.Occupied) {
			continue
		}

		start, err := types.NewTimeStringFromMinutes(cursor)
		if err != nil {
			break
		}
		slots = append(slots, start)
	}

	return slots
}

// overlapsAny пересекается ли [start, end) хотя бы с одним занятым интервалом
// Интервалы, которые только соприкасаются границами, не пересекаются:
//   - слот 11:30-12:00, запись 11:00-11:30 → нет пересечения
//   - слот 11:30-12:00, запись 11:20-11:40 → есть пересечение
func overlapsAny(start, end int, occupied []domain.OccupiedInterval) bool {
	for _, interval := range occupied {
		if interval.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же календарному дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что календарная дата раньше сегодняшней
// Сравниваются только год, месяц и день, часовые пояса аргументов не учитываются
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
