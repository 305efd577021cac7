package entity

import (
	"fmt"
	"time"
)

// Operating grid: hourly home-visit slots from 08:00 to 20:00 inclusive.
const (
	OpeningHour = 8
	ClosingHour = 20
	SlotsPerDay = ClosingHour - OpeningHour + 1
)

// SlotGrid returns the fixed hourly grid, ascending: 08:00 .. 20:00.
func SlotGrid() []string {
	grid := make([]string, 0, SlotsPerDay)
	for h := OpeningHour; h <= ClosingHour; h++ {
		grid = append(grid, fmt.Sprintf("%02d:00", h))
	}
	return grid
}

// IsValidSlot reports whether hora lies on the operating grid.
func IsValidSlot(hora string) bool {
	for _, slot := range SlotGrid() {
		if slot == hora {
			return true
		}
	}
	return false
}

// IsOperatingDay reports whether the practice visits at all on the given date:
// Sundays are always closed, and administratively blocked dates never open.
func IsOperatingDay(fecha time.Time, blocked DateSet) bool {
	if fecha.Weekday() == time.Sunday {
		return false
	}
	return !blocked.Contains(DateKey(fecha))
}

// CountActive returns the number of non-cancelled turnos in the slice.
// A cancelled turno frees its slot immediately.
func CountActive(turnos []Appointment) int {
	n := 0
	for _, t := range turnos {
		if !t.IsCancelado() {
			n++
		}
	}
	return n
}

// IsDateAvailable is a pure function of the blocked-date snapshot and the
// day's turno snapshot: false on Sundays, blocked dates, or when every slot
// on the grid is taken.
func IsDateAvailable(fecha time.Time, blocked DateSet, turnos []Appointment) bool {
	if !IsOperatingDay(fecha, blocked) {
		return false
	}
	return CountActive(turnos) < SlotsPerDay
}

// AvailableHours returns the free slots for the date in ascending order:
// the fixed grid minus the horas held by non-cancelled turnos, or an empty
// slice when the date is not available at all. AvailableHours is empty
// exactly when IsDateAvailable is false.
func AvailableHours(fecha time.Time, blocked DateSet, turnos []Appointment) []string {
	if !IsOperatingDay(fecha, blocked) {
		return []string{}
	}

	taken := make(map[string]struct{}, len(turnos))
	for _, t := range turnos {
		if !t.IsCancelado() {
			taken[t.Hora] = struct{}{}
		}
	}

	free := make([]string, 0, SlotsPerDay)
	for _, slot := range SlotGrid() {
		if _, ok := taken[slot]; !ok {
			free = append(free, slot)
		}
	}
	return free
}
