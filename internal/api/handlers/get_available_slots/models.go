package get_available_slots

import (
	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	slotModels "github.com/m04kA/SMC-IDCardBooking/internal/service/slots/models"
	getAvailableSlots "github.com/m04kA/SMC-IDCardBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date           string                    `json:"date"`
	Closed         bool                      `json:"closed"`
	ClosureRemarks *string                   `json:"closureRemarks,omitempty"`
	Slots          []slotModels.SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		Closed:         resp.Closed,
		ClosureRemarks: resp.ClosureRemarks,
		Slots:          slotModels.FromDomainSlotList(resp.Slots),
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr, purpose string) (*getAvailableSlots.Request, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{Date: date}
	if purpose != "" {
		req.Purpose = &purpose
	}
	return req, nil
}
