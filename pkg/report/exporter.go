package report

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"fertiq/entities"
)

var exportHeader = []string{
	"id_fq", "temperature", "humidity", "moisture", "soil_type", "crop_type",
	"nitrogen", "crop_stage", "acres", "ph", "organic_matter", "rainfall",
	"season", "potassium", "phosphorous", "f_name", "f_quantity",
}

// BuildWorkbook renders the prediction history as a one-sheet xlsx file,
// one row per stored prediction, columns matching the fq_data table.
func BuildWorkbook(rows []entities.FQData) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, eris.Wrap(err, "header cell")
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, eris.Wrap(err, "write header")
		}
	}

	for r, p := range rows {
		values := []any{
			p.IDFQ, p.Temperature, p.Humidity, p.Moisture, p.SoilType, p.CropType,
			p.Nitrogen, p.CropStage, p.Acres, p.PH, p.OrganicMatter, p.Rainfall,
			p.Season, p.Potassium, p.Phosphorous, p.FName, p.FQuantity,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return nil, eris.Wrap(err, "data cell")
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, eris.Wrap(err, "write row "+strconv.Itoa(r))
			}
		}
	}
	return f, nil
}
