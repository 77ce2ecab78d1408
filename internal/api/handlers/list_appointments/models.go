package list_appointments

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	"github.com/m04kA/SMC-IDCardBooking/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(requester domain.Requester, query url.Values) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{Requester: requester}

	if v := query.Get("dateFrom"); v != "" {
		date, err := domain.ParseDate(v)
		if err != nil {
			return nil, err
		}
		req.DateFrom = &date
	}

	if v := query.Get("dateTo"); v != "" {
		date, err := domain.ParseDate(v)
		if err != nil {
			return nil, err
		}
		req.DateTo = &date
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if v := query.Get("purpose"); v != "" {
		req.Purpose = &v
	}

	if v := query.Get("slotId"); v != "" {
		slotID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.SlotID = &slotID
	}

	return req, nil
}
