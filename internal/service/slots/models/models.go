package models

import (
	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

// Request модели

// GenerateSlotsRequest запрос на генерацию слотов за период
type GenerateSlotsRequest struct {
	DateFrom        string `json:"dateFrom" validate:"required,datetime=2006-01-02"`
	DateTo          string `json:"dateTo" validate:"required,datetime=2006-01-02"`
	OpenTime        string `json:"openTime" validate:"required"`  // "08:00"
	CloseTime       string `json:"closeTime" validate:"required"` // "17:00"
	DurationMinutes int    `json:"durationMinutes" validate:"required,min=5,max=480"`
	Capacity        int    `json:"capacity" validate:"required,min=1,max=500"`
	Purpose         string `json:"purpose" validate:"required,oneof=NEW_ID RENEWAL LOST_REPLACEMENT ALL"` // ALL - слоты для каждой услуги
	SkipWeekends    bool   `json:"skipWeekends"`
}

// UpdateCapacityRequest запрос на изменение вместимости слота
type UpdateCapacityRequest struct {
	Capacity int `json:"capacity" validate:"required,min=1,max=500"`
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID                int64  `json:"id"`
	Date              string `json:"date"`      // "2025-09-01"
	StartTime         string `json:"startTime"` // "09:00"
	EndTime           string `json:"endTime"`   // "09:30"
	Purpose           string `json:"purpose"`
	Capacity          int    `json:"capacity"`
	BookedCount       int    `json:"bookedCount"`
	AvailableCapacity int    `json:"availableCapacity"`
}

// GenerateSlotsResponse итог генерации слотов
type GenerateSlotsResponse struct {
	Created []SlotResponse `json:"created"`
	Skipped int            `json:"skipped"` // уже существовавшие слоты
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:                s.ID,
		Date:              s.Date.Format(domain.DateFormat),
		StartTime:         s.StartTime.String(),
		EndTime:           s.EndTime.String(),
		Purpose:           string(s.Purpose),
		Capacity:          s.Capacity,
		BookedCount:       s.BookedCount,
		AvailableCapacity: s.AvailableCapacity(),
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.Slot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, *FromDomainSlot(s))
	}
	return result
}
