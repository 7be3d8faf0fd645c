package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileStatusValid(t *testing.T) {
	for _, s := range []ProfileStatus{StatusDraft, StatusPublished, StatusDeactivated} {
		assert.True(t, s.Valid(), s)
	}
	for _, s := range []ProfileStatus{"", "active", "Published", "archived"} {
		assert.False(t, s.Valid(), s)
	}
}

func TestProfileStatusScanNull(t *testing.T) {
	s := StatusPublished
	require.NoError(t, s.Scan(nil))
	assert.Equal(t, ProfileStatus(""), s)

	require.NoError(t, s.Scan("deactivated"))
	assert.Equal(t, StatusDeactivated, s)
}

func TestPortfolioScan(t *testing.T) {
	var p Portfolio
	require.NoError(t, p.Scan(nil))
	assert.NotNil(t, p)
	assert.Empty(t, p)

	require.NoError(t, p.Scan([]byte(`[{"type":"link","value":"https://example.com"}]`)))
	assert.Equal(t, Portfolio{{Type: "link", Value: "https://example.com"}}, p)
}

func TestPortfolioValueNil(t *testing.T) {
	v, err := Portfolio(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)
}

func TestFormDataScan(t *testing.T) {
	var f FormData
	require.NoError(t, f.Scan([]byte(`{"city":"Dakar","step":2}`)))
	assert.Equal(t, "Dakar", f["city"])
	assert.EqualValues(t, 2, f["step"])

	require.NoError(t, f.Scan(nil))
	assert.Empty(t, f)
}

func TestEmptyDraft(t *testing.T) {
	d := EmptyDraft(uuid.New())
	assert.Equal(t, 1, d.CurrentStep)
	assert.NotNil(t, d.FormData)
	assert.Nil(t, d.UpdatedAt)
}

func TestEntrepreneurUpdateFields(t *testing.T) {
	city := "Dakar"
	code := " sn "
	active := false
	tags := []string{"Go"}
	u := EntrepreneurUpdate{City: &city, CountryCode: &code, IsActive: &active, Tags: &tags}

	assert.Equal(t, map[string]interface{}{
		"city":         "Dakar",
		"country_code": "SN",
		"is_active":    false,
		"tags":         []string{"Go"},
	}, u.Fields())

	assert.Empty(t, (&EntrepreneurUpdate{}).Fields())
}
