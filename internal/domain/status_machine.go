package domain

import (
	"fmt"
	"strings"
)

// CapacityEffect действие над вместимостью слота, которое сопровождает смену статуса
type CapacityEffect int

const (
	// CapacityKeep место остаётся как есть
	CapacityKeep CapacityEffect = iota
	// CapacityRelease место возвращается в слот (переход в declined)
	CapacityRelease
	// CapacityReacquire место захватывается повторно (выход из declined)
	CapacityReacquire
)

// TransitionTable допустимые переходы: текущий статус -> разрешённые следующие
type TransitionTable map[AppointmentStatus][]AppointmentStatus

// DefaultTransitionTable из любого статуса можно перейти в любой
// Сотрудники могут откатывать запись назад для исправления ошибок
func DefaultTransitionTable() TransitionTable {
	table := make(TransitionTable, len(AllStatuses))
	for _, from := range AllStatuses {
		next := make([]AppointmentStatus, len(AllStatuses))
		copy(next, AllStatuses)
		table[from] = next
	}
	return table
}

// ParseTransitionTable разбирает таблицу переходов из конфигурации
// Пустая таблица означает DefaultTransitionTable
func ParseTransitionTable(raw map[string][]string) (TransitionTable, error) {
	if len(raw) == 0 {
		return DefaultTransitionTable(), nil
	}

	table := make(TransitionTable, len(raw))
	for fromRaw, nextRaw := range raw {
		from, err := ParseStatus(fromRaw)
		if err != nil {
			return nil, err
		}
		next := make([]AppointmentStatus, 0, len(nextRaw))
		for _, s := range nextRaw {
			to, err := ParseStatus(s)
			if err != nil {
				return nil, err
			}
			next = append(next, to)
		}
		table[from] = next
	}
	return table, nil
}

// remarkRequired статусы, вход в которые требует непустого замечания сотрудника
var remarkRequired = map[AppointmentStatus]bool{
	StatusOnHold:      true,
	StatusDeclined:    true,
	StatusForPrinting: true,
}

// StatusMachine проверяет переходы между статусами записи
type StatusMachine struct {
	allowed map[AppointmentStatus]map[AppointmentStatus]bool
}

// NewStatusMachine создает машину состояний по таблице переходов
func NewStatusMachine(table TransitionTable) *StatusMachine {
	if len(table) == 0 {
		table = DefaultTransitionTable()
	}

	allowed := make(map[AppointmentStatus]map[AppointmentStatus]bool, len(table))
	for from, next := range table {
		set := make(map[AppointmentStatus]bool, len(next))
		for _, to := range next {
			set[to] = true
		}
		allowed[from] = set
	}

	return &StatusMachine{allowed: allowed}
}

// CanTransition проверяет переход по таблице
// Повторная отправка того же статуса всегда допустима
func (m *StatusMachine) CanTransition(from, to AppointmentStatus) bool {
	if from == to {
		return true
	}
	return m.allowed[from][to]
}

// RequiresRemark true, если вход в статус требует замечания
func RequiresRemark(to AppointmentStatus) bool {
	return remarkRequired[to]
}

// Validate проверяет переход и наличие замечания
func (m *StatusMachine) Validate(from, to AppointmentStatus, remark string) error {
	if !m.CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, from, to)
	}
	if RequiresRemark(to) && strings.TrimSpace(remark) == "" {
		return fmt.Errorf("%w: %s", ErrRemarkRequired, to)
	}
	return nil
}

// CapacityEffect что нужно сделать со слотом при переходе from -> to
// Место освобождается ровно один раз: повторный declined ничего не делает
func (m *StatusMachine) CapacityEffect(from, to AppointmentStatus) CapacityEffect {
	switch {
	case from.HoldsCapacity() && !to.HoldsCapacity():
		return CapacityRelease
	case !from.HoldsCapacity() && to.HoldsCapacity():
		return CapacityReacquire
	default:
		return CapacityKeep
	}
}
