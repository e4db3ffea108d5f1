package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniversityByID(t *testing.T) {
	u, ok := UniversityByID("1")
	require.True(t, ok)
	assert.Equal(t, "University of Toronto", u.Name)
	assert.Equal(t, CountryCanada, u.Country)

	_, ok = UniversityByID("nope")
	assert.False(t, ok)
}

func TestProgramsByCountry(t *testing.T) {
	canada := ProgramsByCountry(CountryCanada)
	require.NotEmpty(t, canada)
	for _, p := range canada {
		assert.Equal(t, CountryCanada, p.Country)
	}

	assert.Empty(t, ProgramsByCountry(Country("Atlantis")))
}

func TestScholarshipsByCountry(t *testing.T) {
	germany := ScholarshipsByCountry(CountryGermany)
	require.Len(t, germany, 1)
	assert.Equal(t, "DAAD", germany[0].Provider)
}

func TestDestinationByID(t *testing.T) {
	d, ok := DestinationByID("canada")
	require.True(t, ok)
	assert.Contains(t, d.WorkRights, "PGWP")

	_, ok = DestinationByID("mars")
	assert.False(t, ok)
}

func TestProgramUniversityReferences(t *testing.T) {
	for _, p := range Programs() {
		u, ok := UniversityByID(p.UniversityID)
		require.True(t, ok, "program %s references unknown university %s", p.ID, p.UniversityID)
		assert.Equal(t, u.Name, p.UniversityName)
	}
}
