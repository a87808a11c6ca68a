package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRapportRequestValidate(t *testing.T) {
	valid := RapportRequest{Type: "HEBDOMADAIRE", Format: "PDF", Date: "2026-09-07"}
	assert.NoError(t, valid.Validate())

	// The date is optional, the period then derives from today.
	sansDate := RapportRequest{Type: "JOURNALIER", Format: "XLSX"}
	assert.NoError(t, sansDate.Validate())

	typeInconnu := RapportRequest{Type: "ANNUEL", Format: "PDF"}
	assert.Error(t, typeInconnu.Validate())

	formatInconnu := RapportRequest{Type: "MENSUEL", Format: "CSV"}
	assert.Error(t, formatInconnu.Validate())

	dateInvalide := RapportRequest{Type: "MENSUEL", Format: "PDF", Date: "07/09/2026"}
	assert.Error(t, dateInvalide.Validate())

	sansType := RapportRequest{Format: "PDF"}
	assert.Error(t, sansType.Validate())
}
