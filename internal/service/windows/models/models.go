package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

// Request модели

// WindowRequest запрос на создание или замену окна записи
type WindowRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	StartDate   string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"endDate" validate:"required,datetime=2006-01-02"`
	Purpose     string  `json:"purpose" validate:"required,oneof=NEW_ID RENEWAL LOST_REPLACEMENT ALL"`
	IsActive    *bool   `json:"isActive,omitempty"` // по умолчанию true
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// ToDomain конвертирует запрос в domain модель и валидирует её
func (r *WindowRequest) ToDomain() (*domain.SchedulingWindow, error) {
	startDate, err := domain.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := domain.ParseDate(r.EndDate)
	if err != nil {
		return nil, err
	}
	purpose, err := domain.ParseWindowPurpose(r.Purpose)
	if err != nil {
		return nil, err
	}

	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	window := &domain.SchedulingWindow{
		Name:        r.Name,
		StartDate:   startDate,
		EndDate:     endDate,
		Purpose:     purpose,
		IsActive:    isActive,
		Description: r.Description,
	}

	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("invalid window: %w", err)
	}

	return window, nil
}

// Response модели

// WindowResponse ответ с данными окна записи
type WindowResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Purpose     string    `json:"purpose"`
	IsActive    bool      `json:"isActive"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// WindowListResponse ответ со списком окон записи
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.SchedulingWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	return &WindowResponse{
		ID:          w.ID,
		Name:        w.Name,
		StartDate:   w.StartDate.Format(domain.DateFormat),
		EndDate:     w.EndDate.Format(domain.DateFormat),
		Purpose:     string(w.Purpose),
		IsActive:    w.IsActive,
		Description: w.Description,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []*domain.SchedulingWindow) *WindowListResponse {
	resp := &WindowListResponse{
		Windows: make([]WindowResponse, 0, len(windows)),
	}

	for _, w := range windows {
		resp.Windows = append(resp.Windows, *FromDomainWindow(w))
	}

	return resp
}
