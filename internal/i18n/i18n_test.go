package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrenchIsDefault(t *testing.T) {
	l, err := New("")
	require.NoError(t, err)
	assert.Equal(t, "fr", l.Lang())
	assert.Equal(t, "Sélectionner une option", l.T(ButtonNone))
	assert.Equal(t, "Tout sélectionner", l.T(SelectAll))
	assert.Equal(t, "Tout désélectionner", l.T(DeselectAll))
	assert.Equal(t, "Pas de résultat", l.T(NoResults))
	assert.Equal(t, "Rechercher", l.T(SearchHolder))
}

func TestFrenchPlural(t *testing.T) {
	l := MustNew("fr")
	assert.Equal(t, "1 option sélectionnée", l.Plural(ButtonSelected, 1))
	assert.Equal(t, "2 options sélectionnées", l.Plural(ButtonSelected, 2))
	assert.Equal(t, "12 options sélectionnées", l.Plural(ButtonSelected, 12))
}

func TestEnglish(t *testing.T) {
	l := MustNew("en")
	assert.Equal(t, "Select an option", l.T(ButtonNone))
	assert.Equal(t, "1 option selected", l.Plural(ButtonSelected, 1))
	assert.Equal(t, "3 options selected", l.Plural(ButtonSelected, 3))
	assert.Equal(t, "No results", l.T(NoResults))
}

func TestUnknownLanguageFallsBackToFrench(t *testing.T) {
	l := MustNew("de")
	assert.Equal(t, "Pas de résultat", l.T(NoResults))
}

func TestMissingMessageReturnsID(t *testing.T) {
	l := MustNew("en")
	assert.Equal(t, "does.not.exist", l.T("does.not.exist"))
}

func TestAvailable(t *testing.T) {
	assert.Equal(t, []string{"en", "fr"}, MustNew("fr").Available())
	assert.True(t, Supported("en"))
	assert.True(t, Supported("en-GB"))
	assert.False(t, Supported("de"))
	assert.False(t, Supported("???"))
}
