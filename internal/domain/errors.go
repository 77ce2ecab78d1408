package domain

import "errors"

// Таксономия ошибок ядра бронирования
// Каждая операция возвращает не более одного вида ошибки, вид определяется через KindOf
var (
	ErrSlotNotFound            = errors.New("slot not found")
	ErrSlotFull                = errors.New("slot is full")
	ErrClosedDate              = errors.New("office is closed on this date")
	ErrOutsideSchedulingWindow = errors.New("booking is not open for this purpose and date")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrRemarkRequired          = errors.New("remark is required for this status")
	ErrAppointmentNotFound     = errors.New("appointment not found")

	ErrSlotInPast          = errors.New("slot date is in the past")
	ErrSlotHasAppointments = errors.New("slot has appointments")
	ErrWindowNotFound      = errors.New("scheduling window not found")
	ErrAccessDenied        = errors.New("access denied")
	ErrInvalidInput        = errors.New("invalid input data")
	ErrInternal            = errors.New("internal error")
)

// ErrorKind машиночитаемый вид ошибки для внешних клиентов
type ErrorKind string

const (
	KindSlotNotFound            ErrorKind = "SlotNotFound"
	KindSlotFull                ErrorKind = "SlotFull"
	KindClosedDate              ErrorKind = "ClosedDate"
	KindOutsideSchedulingWindow ErrorKind = "OutsideSchedulingWindow"
	KindInvalidStatusTransition ErrorKind = "InvalidStatusTransition"
	KindRemarkRequired          ErrorKind = "RemarkRequired"
	KindAppointmentNotFound     ErrorKind = "AppointmentNotFound"
	KindSlotInPast              ErrorKind = "SlotInPast"
	KindSlotHasAppointments     ErrorKind = "SlotHasAppointments"
	KindWindowNotFound          ErrorKind = "WindowNotFound"
	KindAccessDenied            ErrorKind = "AccessDenied"
	KindInvalidInput            ErrorKind = "InvalidInput"
	KindInternal                ErrorKind = "Internal"
)

var kinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrSlotNotFound, KindSlotNotFound},
	{ErrSlotFull, KindSlotFull},
	{ErrClosedDate, KindClosedDate},
	{ErrOutsideSchedulingWindow, KindOutsideSchedulingWindow},
	{ErrInvalidStatusTransition, KindInvalidStatusTransition},
	{ErrRemarkRequired, KindRemarkRequired},
	{ErrAppointmentNotFound, KindAppointmentNotFound},
	{ErrSlotInPast, KindSlotInPast},
	{ErrSlotHasAppointments, KindSlotHasAppointments},
	{ErrWindowNotFound, KindWindowNotFound},
	{ErrAccessDenied, KindAccessDenied},
	{ErrInvalidInput, KindInvalidInput},
}

// KindOf определяет вид ошибки; всё неизвестное считается Internal
func KindOf(err error) ErrorKind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// IsRetryable true для ошибок, которые имеет смысл повторить с обновлёнными данными
// (слот только что заполнился), в отличие от закрытой даты или окна записи
func IsRetryable(err error) bool {
	return errors.Is(err, ErrSlotFull)
}
