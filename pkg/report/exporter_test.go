package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fertiq/entities"
)

func TestBuildWorkbook(t *testing.T) {
	rows := []entities.FQData{
		{IDFQ: 1, Temperature: 30, Humidity: 65, Moisture: 15, SoilType: 1, CropType: 1,
			Nitrogen: 50, Acres: 2.5, PH: 6.8, OrganicMatter: 3, Rainfall: 100,
			Potassium: 30, Phosphorous: 20, FName: "Urea", FQuantity: 42.5},
		{IDFQ: 2, FName: "DAP", FQuantity: 75},
	}

	f, err := BuildWorkbook(rows)
	require.NoError(t, err)

	sheet := f.GetSheetName(0)
	got, err := f.GetRows(sheet)
	require.NoError(t, err)

	require.Len(t, got, 3, "header + one row per prediction")
	assert.Equal(t, "id_fq", got[0][0])
	assert.Equal(t, "f_quantity", got[0][16])
	assert.Equal(t, "Urea", got[1][15])
	assert.Equal(t, "DAP", got[2][15])
}

func TestBuildWorkbookEmptyHistory(t *testing.T) {
	f, err := BuildWorkbook(nil)
	require.NoError(t, err)

	got, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, got, 1, "header only")
}
