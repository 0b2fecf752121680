package models

import (
	"github.com/m04kA/studio-booking/internal/domain"
)

// Названия дней недели в порядке domain.WeekdayIndex
var weekdayNames = [7]string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// WeekdayName название дня недели (0 = monday)
func WeekdayName(weekday int) string {
	if !domain.IsValidWeekday(weekday) {
		return ""
	}
	return weekdayNames[weekday]
}

// Request модели

// UpsertWeekdayRequest рабочие часы дня недели
type UpsertWeekdayRequest struct {
	Active   bool   `json:"active"`
	OpensAt  string `json:"opensAt"`  // "09:00"
	ClosesAt string `json:"closesAt"` // "18:00"
}

// CreateBlackoutRequest запрос на закрытие даты
type CreateBlackoutRequest struct {
	Date   string `json:"date"` // "2026-12-25"
	Reason string `json:"reason"`
}

// Response модели

// WeekdayResponse рабочие часы дня недели
type WeekdayResponse struct {
	Weekday  int    `json:"weekday"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
	OpensAt  string `json:"opensAt"`
	ClosesAt string `json:"closesAt"`
}

// ScheduleResponse расписание на неделю
type ScheduleResponse struct {
	Days []WeekdayResponse `json:"days"`
}

// BlackoutResponse закрытая дата
type BlackoutResponse struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// BlackoutListResponse список закрытых дат
type BlackoutListResponse struct {
	Blackouts []BlackoutResponse `json:"blackouts"`
}

// FromDomainWeekday конвертирует domain модель в DTO
func FromDomainWeekday(s *domain.WeekdaySchedule) WeekdayResponse {
	return WeekdayResponse{
		Weekday:  s.Weekday,
		Name:     WeekdayName(s.Weekday),
		Active:   s.Active,
		OpensAt:  s.OpensAt.String(),
		ClosesAt: s.ClosesAt.String(),
	}
}

// FromDomainSchedule конвертирует расписание недели в DTO
func FromDomainSchedule(list []*domain.WeekdaySchedule) *ScheduleResponse {
	resp := &ScheduleResponse{Days: make([]WeekdayResponse, 0, len(list))}
	for _, s := range list {
		resp.Days = append(resp.Days, FromDomainWeekday(s))
	}
	return resp
}

// FromDomainBlackout конвертирует domain модель в DTO
func FromDomainBlackout(b *domain.Blackout) BlackoutResponse {
	return BlackoutResponse{
		ID:     b.ID,
		Date:   b.Date.Format(domain.DateFormat),
		Reason: b.Reason,
	}
}

// FromDomainBlackoutList конвертирует список закрытых дат в DTO
func FromDomainBlackoutList(list []*domain.Blackout) *BlackoutListResponse {
	resp := &BlackoutListResponse{Blackouts: make([]BlackoutResponse, 0, len(list))}
	for _, b := range list {
		resp.Blackouts = append(resp.Blackouts, FromDomainBlackout(b))
	}
	return resp
}
