package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date    time.Time // Дата (без времени)
	Purpose *string   // Фильтр по услуге (опционально)
}

// Response модель ответа со списком слотов
type Response struct {
	Date           time.Time      // Дата, на которую запрашивались слоты
	Closed         bool           // Офис закрыт в эту дату
	ClosureRemarks *string        // Причина закрытия
	Slots          []*domain.Slot // Слоты, открытые для записи (включая заполненные)
}
