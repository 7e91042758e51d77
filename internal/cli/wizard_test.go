package cli

import (
	"testing"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHoursPerDay(t *testing.T) {
	assert.NoError(t, validateHoursPerDay("4"))
	assert.NoError(t, validateHoursPerDay(" 2.5 "))
	assert.NoError(t, validateHoursPerDay("24"))
	assert.Error(t, validateHoursPerDay(""))
	assert.Error(t, validateHoursPerDay("0"))
	assert.Error(t, validateHoursPerDay("0.3"))
	assert.NoError(t, validateHoursPerDay("0.5"))
	assert.Error(t, validateHoursPerDay("25"))
	assert.Error(t, validateHoursPerDay("lots"))
}

func TestValidateDateList(t *testing.T) {
	assert.NoError(t, validateDateList(""))
	assert.NoError(t, validateDateList("2025-03-14, 2025-03-21"))
	assert.Error(t, validateDateList("2025-03-14, friday"))
}

func TestPreferenceValues_RoundTrip(t *testing.T) {
	in := importer.PreferencesInput{
		MaxHoursPerDay: 3.5,
		RestDays:       []string{"Sunday", "2025-03-14"},
		StudyStyle:     "intensive",
	}

	v := preferenceValuesFrom(in)
	assert.Equal(t, "3.5", v.MaxHours)
	assert.Equal(t, []string{"sunday"}, v.Weekdays)
	assert.Equal(t, "2025-03-14", v.RestDates)
	assert.Equal(t, "intensive", v.Style)

	v.MaxHours = "5"
	v.Weekdays = append(v.Weekdays, "saturday")
	v.RestDates = "2025-03-14, 2025-03-21"

	var out importer.PreferencesInput
	v.apply(&out)
	assert.Equal(t, 5.0, out.MaxHoursPerDay)
	assert.Equal(t, []string{"sunday", "saturday", "2025-03-14", "2025-03-21"}, out.RestDays)
	assert.Equal(t, "intensive", out.StudyStyle)

	rest, err := domain.ParseRestDays(out.RestDays)
	require.NoError(t, err)
	assert.False(t, rest.Empty())
}

func TestPreferenceValues_DefaultsStyle(t *testing.T) {
	v := preferenceValuesFrom(importer.PreferencesInput{})
	assert.Equal(t, string(domain.StyleBalanced), v.Style)
	assert.Empty(t, v.MaxHours)
}

func TestPreferenceForm_Builds(t *testing.T) {
	v := preferenceValuesFrom(importer.PreferencesInput{MaxHoursPerDay: 4})
	assert.NotNil(t, preferenceForm(&v))
}

func TestStudyStyleFlag(t *testing.T) {
	var f studyStyleFlag
	require.NoError(t, f.Set("spaced-repetition"))
	assert.Equal(t, domain.StyleSpacedRepetition, f.value)
	assert.Equal(t, "spaced_repetition", f.String())
	assert.Equal(t, "style", f.Type())
	assert.Error(t, f.Set("lazy"))
}

func TestParseOptionalDate(t *testing.T) {
	d, err := parseOptionalDate("start", "")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = parseOptionalDate("start", "2025-03-03")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "2025-03-03", domain.FormatDate(*d))

	_, err = parseOptionalDate("start", "tomorrow")
	assert.ErrorContains(t, err, "--start")
}
