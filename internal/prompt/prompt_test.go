package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"eduglobal/internal/catalog"
)

func TestConsultantInstruction_AllDestinations(t *testing.T) {
	got := ConsultantInstruction("")

	assert.Contains(t, got, "Study Abroad Consultant")
	assert.Contains(t, got, "PGWP")
	assert.Contains(t, got, "blocked account")
	assert.Contains(t, got, "University of Toronto")
	assert.Contains(t, got, "politely steer them back")
}

func TestConsultantInstruction_FocusCountry(t *testing.T) {
	got := ConsultantInstruction(catalog.CountryGermany)

	assert.Contains(t, got, "Technical University of Munich")
	assert.NotContains(t, got, "University of Toronto")
	assert.NotContains(t, got, "PGWP")
}

func TestConsultantInstruction_EndsWithToneGuidance(t *testing.T) {
	got := ConsultantInstruction("")
	assert.True(t, strings.HasSuffix(got, "give ranges."))
}
