package encoder

import (
	"errors"
	"testing"

	"scholarmatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scholarship(name, country string, amount float64, renewable bool) *models.Scholarship {
	return &models.Scholarship{
		Name:      name,
		Provider:  "Test Provider",
		Country:   country,
		Type:      "Merit-based",
		Field:     "Engineering",
		Level:     "Graduate",
		Amount:    amount,
		Renewable: renewable,
	}
}

func fixtureRecords() []models.Record {
	return []models.Record{
		scholarship("Alpha Award", "United States", 10000, false),
		scholarship("Beta Grant", "United Kingdom", 20000, true),
		scholarship("Gamma Fellowship", "Germany", 30000, false),
	}
}

func TestFitDimension(t *testing.T) {
	enc, err := Fit(fixtureRecords())
	require.NoError(t, err)

	// 3 countries + 1 field + 1 level + 1 type, amount + fee, renewable.
	assert.Equal(t, 9, enc.Dimension())

	vec, err := enc.Encode(fixtureRecords()[0])
	require.NoError(t, err)
	assert.Len(t, vec, enc.Dimension())
}

func TestEncodeDeterministic(t *testing.T) {
	records := fixtureRecords()
	enc, err := Fit(records)
	require.NoError(t, err)

	for _, r := range records {
		first, err := enc.Encode(r)
		require.NoError(t, err)
		second, err := enc.Encode(r)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestMinMaxScaling(t *testing.T) {
	records := fixtureRecords()
	enc, err := Fit(records)
	require.NoError(t, err)

	// Categorical keys sort before numeric ones in the layout: country(3),
	// field(1), level(1), type(1), then amount, then application_fee.
	amountOff := 6

	vecs := make([][]float64, len(records))
	for i, r := range records {
		vecs[i], err = enc.Encode(r)
		require.NoError(t, err)
	}

	assert.Equal(t, 0.0, vecs[0][amountOff])
	assert.Equal(t, 0.5, vecs[1][amountOff])
	assert.Equal(t, 1.0, vecs[2][amountOff])

	// Application fee is 0 on every record, so the constant attribute maps
	// to the neutral midpoint.
	for _, vec := range vecs {
		assert.Equal(t, 0.5, vec[amountOff+1])
	}
}

func TestOneHotCategorical(t *testing.T) {
	records := fixtureRecords()
	enc, err := Fit(records)
	require.NoError(t, err)

	for _, r := range records {
		vec, err := enc.Encode(r)
		require.NoError(t, err)

		ones := 0
		for _, v := range vec[:3] { // country block
			if v == 1 {
				ones++
			}
		}
		assert.Equal(t, 1, ones, "exactly one country slot set for %s", r.Attributes().Name)
	}
}

func TestEncodeUnseenCategory(t *testing.T) {
	enc, err := Fit(fixtureRecords())
	require.NoError(t, err)

	_, err = enc.Encode(scholarship("Delta Scholarship", "France", 15000, false))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestEncodeMissingAttribute(t *testing.T) {
	enc, err := Fit(fixtureRecords())
	require.NoError(t, err)

	_, err = enc.Encode(scholarship("Empty Country Award", "", 15000, false))
	require.Error(t, err)

	var encErr *models.EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, models.AttrCountry, encErr.Attribute)
	assert.Equal(t, "Empty Country Award", encErr.Record)
}

func TestFitRejectsEmptyCatalog(t *testing.T) {
	_, err := Fit(nil)
	assert.Error(t, err)
}

func TestEncodePreferences(t *testing.T) {
	enc, err := Fit(fixtureRecords())
	require.NoError(t, err)

	min, max := 10000.0, 30000.0
	renewable := true
	vec := enc.EncodePreferences(models.Preferences{
		Country:   "United States",
		MinAmount: &min,
		MaxAmount: &max,
		Renewable: &renewable,
	})
	require.Len(t, vec, enc.Dimension())

	// Midpoint of the range scales to the middle of the observed span.
	assert.Equal(t, 0.5, vec[6])
	// Renewable flag occupies the last slot.
	assert.Equal(t, 1.0, vec[len(vec)-1])

	// A value outside the fitted vocabulary contributes nothing rather
	// than failing.
	empty := enc.EncodePreferences(models.Preferences{Country: "France"})
	for _, v := range empty {
		assert.Equal(t, 0.0, v)
	}
}
