package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJourSemaine(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), "LUNDI"},
		{time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), "MARDI"},
		{time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC), "MERCREDI"},
		{time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), "JEUDI"},
		{time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC), "VENDREDI"},
		{time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), "SAMEDI"},
		{time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC), "DIMANCHE"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, JourSemaine(tt.date), tt.date.Format("2006-01-02"))
	}
}

func TestFillJourSemaine(t *testing.T) {
	menu := Menu{Date: time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)}
	menu.FillJourSemaine()
	assert.Equal(t, "VENDREDI", menu.JourSemaine)
}

func TestFillJourSemaineKeepsExplicitValue(t *testing.T) {
	menu := Menu{
		Date:        time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
		JourSemaine: "LUNDI",
	}
	menu.FillJourSemaine()
	assert.Equal(t, "LUNDI", menu.JourSemaine)
}
