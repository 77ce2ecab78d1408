package slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-IDCardBooking/internal/domain"
	"github.com/m04kA/SMC-IDCardBooking/pkg/types"
)

// timeRange интервал одного слота
type timeRange struct {
	start types.TimeString
	end   types.TimeString
}

// generateTimeRanges делит рабочий день на последовательные слоты фиксированной длины
// Слот никогда не выходит за время закрытия: хвост короче duration отбрасывается
func generateTimeRanges(openTime, closeTime types.TimeString, duration int) []timeRange {
	ranges := make([]timeRange, 0)
	current := openTime

	for current.IsBefore(closeTime) {
		end, err := current.AddMinutes(duration)
		if err != nil {
			// конец слота перешёл через полночь, значит он точно позже закрытия
			break
		}
		if end.IsAfter(closeTime) {
			break
		}

		ranges = append(ranges, timeRange{start: current, end: end})
		current = end
	}

	return ranges
}

// generateDates возвращает дни периода (включительно), опционально без выходных
func generateDates(from, to time.Time, skipWeekends bool) []time.Time {
	dates := make([]time.Time, 0)
	for d := domain.DateOnly(from); !d.After(domain.DateOnly(to)); d = d.AddDate(0, 0, 1) {
		if skipWeekends && (d.Weekday() == time.Saturday || d.Weekday() == time.Sunday) {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

// generationPlan проверенные параметры генерации
type generationPlan struct {
	dates    []time.Time
	ranges   []timeRange
	purposes []domain.Purpose
	capacity int
}

func (p generationPlan) size() int {
	return len(p.dates) * len(p.ranges) * len(p.purposes)
}

func buildPlan(
	dateFrom, dateTo, openTime, closeTime string,
	duration, capacity int,
	purpose string,
	skipWeekends bool,
) (*generationPlan, error) {
	from, err := domain.ParseDate(dateFrom)
	if err != nil {
		return nil, err
	}
	to, err := domain.ParseDate(dateTo)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: dateTo is before dateFrom", domain.ErrInvalidInput)
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > domain.MaxGenerateDays {
		return nil, fmt.Errorf("%w: period is longer than %d days", domain.ErrInvalidInput, domain.MaxGenerateDays)
	}

	open, err := types.NewTimeStringFromString(openTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid openTime: %v", domain.ErrInvalidInput, err)
	}
	closeAt, err := types.NewTimeStringFromString(closeTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid closeTime: %v", domain.ErrInvalidInput, err)
	}
	if !open.IsBefore(closeAt) {
		return nil, fmt.Errorf("%w: openTime must be before closeTime", domain.ErrInvalidInput)
	}

	if duration < domain.MinSlotDurationMinutes || duration > domain.MaxSlotDurationMinutes {
		return nil, fmt.Errorf("%w: durationMinutes must be between %d and %d",
			domain.ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if capacity < domain.MinSlotCapacity || capacity > domain.MaxSlotCapacity {
		return nil, fmt.Errorf("%w: capacity must be between %d and %d",
			domain.ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}

	windowPurpose, err := domain.ParseWindowPurpose(purpose)
	if err != nil {
		return nil, err
	}
	purposes := []domain.Purpose{windowPurpose}
	if windowPurpose == domain.PurposeAll {
		purposes = domain.AllPurposes
	}

	return &generationPlan{
		dates:    generateDates(from, to, skipWeekends),
		ranges:   generateTimeRanges(open, closeAt, duration),
		purposes: purposes,
		capacity: capacity,
	}, nil
}
