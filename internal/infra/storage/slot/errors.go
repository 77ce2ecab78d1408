package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotFull возвращается, когда в слоте не осталось мест
	ErrSlotFull = errors.New("slot.repository: slot is full")

	// ErrDuplicateSlot возвращается при попытке создать слот с теми же датой, временем и услугой
	ErrDuplicateSlot = errors.New("slot.repository: duplicate slot")

	// ErrCapacityBelowBooked возвращается при попытке уменьшить вместимость ниже числа записей
	ErrCapacityBelowBooked = errors.New("slot.repository: capacity below booked count")

	// ErrSlotInUse возвращается при попытке удалить слот, на который есть записи
	ErrSlotInUse = errors.New("slot.repository: slot has appointments")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
