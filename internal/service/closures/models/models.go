package models

import (
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

// ClosureResponse ответ с данными закрытой даты
type ClosureResponse struct {
	Date      string    `json:"date"` // "2025-12-25"
	Remarks   string    `json:"remarks"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClosureListResponse ответ со списком закрытых дат
type ClosureListResponse struct {
	Closures []ClosureResponse `json:"closures"`
}

// FromDomainClosure конвертирует domain модель в DTO
func FromDomainClosure(c *domain.CalendarClosure) *ClosureResponse {
	if c == nil {
		return nil
	}

	return &ClosureResponse{
		Date:      c.Date.Format(domain.DateFormat),
		Remarks:   c.Remarks,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromDomainClosureList конвертирует список domain моделей в DTO
func FromDomainClosureList(closures []*domain.CalendarClosure) *ClosureListResponse {
	resp := &ClosureListResponse{
		Closures: make([]ClosureResponse, 0, len(closures)),
	}

	for _, c := range closures {
		resp.Closures = append(resp.Closures, *FromDomainClosure(c))
	}

	return resp
}
