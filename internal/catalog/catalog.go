// Package catalog holds the academy's class offerings. The catalog is
// compiled-in reference data: loaded once, never mutated at runtime.
package catalog

import "errors"

// ErrScheduleNotFound indicates the referenced schedule id is not part of
// the current catalog. Registration must fail on it rather than fall back
// to a zero price.
var ErrScheduleNotFound = errors.New("schedule not found in catalog")

// ClassSchedule describes a priced class offering with a fixed weekly slot.
type ClassSchedule struct {
	ID           string   `json:"id"`
	Category     string   `json:"category"`
	AgeBand      string   `json:"age_band"`
	Days         []string `json:"days"`
	TimeRange    string   `json:"time_range"`
	Duration     string   `json:"duration"`
	MonthlyPrice int      `json:"monthly_price"`
	Objective    string   `json:"objective"`
	Color        string   `json:"color"`
}

var schedules = []ClassSchedule{
	{
		ID:           "baby-futbol",
		Category:     "Baby Fútbol",
		AgeBand:      "3-5 años",
		Days:         []string{"Martes", "Jueves"},
		TimeRange:    "16:00 - 17:00",
		Duration:     "1 hora",
		MonthlyPrice: 180,
		Objective:    "Motricidad, coordinación y primer contacto con el balón a través del juego.",
		Color:        "#f59e0b",
	},
	{
		ID:           "infantil-a",
		Category:     "Infantil A",
		AgeBand:      "6-8 años",
		Days:         []string{"Lunes", "Miércoles", "Viernes"},
		TimeRange:    "16:30 - 18:00",
		Duration:     "1.5 horas",
		MonthlyPrice: 200,
		Objective:    "Fundamentos técnicos: conducción, pase y control orientado.",
		Color:        "#10b981",
	},
	{
		ID:           "infantil-b",
		Category:     "Infantil B",
		AgeBand:      "9-11 años",
		Days:         []string{"Lunes", "Miércoles", "Viernes"},
		TimeRange:    "18:00 - 19:30",
		Duration:     "1.5 horas",
		MonthlyPrice: 200,
		Objective:    "Técnica aplicada y principios tácticos básicos en espacios reducidos.",
		Color:        "#3b82f6",
	},
	{
		ID:           "juvenil",
		Category:     "Juvenil",
		AgeBand:      "12-15 años",
		Days:         []string{"Martes", "Jueves", "Sábado"},
		TimeRange:    "18:00 - 20:00",
		Duration:     "2 horas",
		MonthlyPrice: 220,
		Objective:    "Táctica colectiva, preparación física y competencia formativa.",
		Color:        "#8b5cf6",
	},
	{
		ID:           "competitivo",
		Category:     "Competitivo",
		AgeBand:      "16-18 años",
		Days:         []string{"Lunes", "Miércoles", "Viernes", "Sábado"},
		TimeRange:    "19:30 - 21:30",
		Duration:     "2 horas",
		MonthlyPrice: 250,
		Objective:    "Alto rendimiento: plan competitivo de liga y proyección a clubes.",
		Color:        "#ef4444",
	},
	{
		ID:           "femenino",
		Category:     "Fútbol Femenino",
		AgeBand:      "8-15 años",
		Days:         []string{"Martes", "Jueves"},
		TimeRange:    "17:00 - 19:00",
		Duration:     "2 horas",
		MonthlyPrice: 200,
		Objective:    "Formación integral en rama femenina, técnica y juego colectivo.",
		Color:        "#ec4899",
	},
	{
		ID:           "porteros",
		Category:     "Escuela de Porteros",
		AgeBand:      "8-18 años",
		Days:         []string{"Sábado"},
		TimeRange:    "09:00 - 11:00",
		Duration:     "2 horas",
		MonthlyPrice: 240,
		Objective:    "Trabajo específico de portería: posicionamiento, blocaje y juego de pies.",
		Color:        "#14b8a6",
	},
}

var byID = func() map[string]ClassSchedule {
	index := make(map[string]ClassSchedule, len(schedules))
	for _, schedule := range schedules {
		index[schedule.ID] = schedule
	}
	return index
}()

// All returns every class offering in display order.
func All() []ClassSchedule {
	out := make([]ClassSchedule, len(schedules))
	copy(out, schedules)
	return out
}

// Lookup resolves a schedule by its identifier.
func Lookup(id string) (ClassSchedule, error) {
	schedule, ok := byID[id]
	if !ok {
		return ClassSchedule{}, ErrScheduleNotFound
	}
	return schedule, nil
}
