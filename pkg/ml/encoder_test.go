package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitLabelsSortedCodes(t *testing.T) {
	e := FitLabels([]string{"Sandy", "Loamy", "Clayey", "Sandy", "Loamy"})

	assert.Equal(t, []string{"Clayey", "Loamy", "Sandy"}, e.Classes)

	code, ok := e.Transform("Loamy")
	require.True(t, ok)
	assert.Equal(t, 1, code)

	label, ok := e.Inverse(2)
	require.True(t, ok)
	assert.Equal(t, "Sandy", label)
}

func TestTransformUnseenLabel(t *testing.T) {
	e := FitLabels([]string{"Loamy"})

	_, ok := e.Transform("Martian")
	assert.False(t, ok, "unseen label must not get a code")

	_, ok = e.Inverse(99)
	assert.False(t, ok)
}

func TestFitEncodersFoldsFallbackIn(t *testing.T) {
	// dataset never contains the fallback labels
	set := FitEncoders(map[string][]string{
		"soil_type":  {"Clayey", "Sandy"},
		"crop_type":  {"Maize"},
		"crop_stage": {"Sowing"},
		"season":     {"Winter"},
	})

	require.NoError(t, set.Validate())

	for field, fb := range FallbackLabels {
		enc, ok := set.Encoder(field)
		require.True(t, ok, field)
		_, found := enc.Transform(fb)
		assert.True(t, found, "fallback %q must be encodable for %s", fb, field)
	}
}

func TestValidateRejectsMissingEncoder(t *testing.T) {
	set := &EncoderSet{Fields: map[string]*LabelEncoder{
		"soil_type": FitLabels([]string{"Loamy"}),
	}}
	assert.Error(t, set.Validate())
}
