package ml

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
)

// Dataset is the training table after dedupe and encoding: one FeatureRow
// per record plus the two targets.
type Dataset struct {
	X          []FeatureRow
	Names      []float64 // fertilizer class codes
	Quantities []float64
	Encoders   *EncoderSet
	RawRows    int // before dedupe
}

// LoadDataset reads the training table from a .csv or .xlsx file, drops
// exact duplicate records, fits the label encoders and encodes the
// categorical columns.
func LoadDataset(path string) (*Dataset, error) {
	var head []string
	var recs [][]string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		head, recs, err = readXLSX(path)
	} else {
		head, recs, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	return buildDataset(head, recs)
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "open dataset")
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return nil, nil, eris.Wrap(err, "read dataset header")
	}
	var recs [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if eris.Is(err, io.EOF) {
				break
			}
			return nil, nil, eris.Wrap(err, "read dataset row")
		}
		recs = append(recs, rec)
	}
	return head, recs, nil
}

func readXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "open dataset xlsx")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, eris.New("dataset xlsx has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, eris.Wrap(err, "read dataset xlsx rows")
	}
	if len(rows) == 0 {
		return nil, nil, eris.New("dataset xlsx is empty")
	}
	return rows[0], rows[1:], nil
}

// normHeader matches headers loosely: BOM/space/case/underscore insensitive.
func normHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// headerAliases lets the loader accept known spelling variants of a column.
var headerAliases = map[string][]string{
	"temparature": {"temparature", "temperature"},
	"pH":          {"ph"},
}

func buildDataset(head []string, recs [][]string) (*Dataset, error) {
	hmap := map[string]int{}
	for i, h := range head {
		hmap[normHeader(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[normHeader(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cols := make([]int, NumFeatures)
	for i, name := range FeatureColumns {
		keys := []string{name}
		if al, ok := headerAliases[name]; ok {
			keys = al
		}
		if cols[i] = findAny(keys...); cols[i] == -1 {
			return nil, eris.Errorf("dataset missing column %q (headers: %v)", name, head)
		}
	}
	cName := findAny("f_name", "fertilizer_name")
	cQty := findAny("f_quantity", "fertilizer_quantity")
	if cName == -1 || cQty == -1 {
		return nil, eris.Errorf("dataset missing target columns f_name/f_quantity (headers: %v)", head)
	}

	catIdx := map[string]int{
		"soil_type":  FiSoilType,
		"crop_type":  FiCropType,
		"crop_stage": FiCropStage,
		"season":     FiSeason,
	}

	// guard against short rows (xlsx trims trailing empty cells)
	for i, rec := range recs {
		for len(rec) < len(head) {
			rec = append(rec, "")
		}
		recs[i] = rec
	}

	raw := len(recs)
	recs = dropDuplicates(recs)

	// fit encoders over the deduplicated categorical columns
	labelCols := map[string][]string{}
	for field, fi := range catIdx {
		vals := make([]string, 0, len(recs))
		for _, rec := range recs {
			vals = append(vals, strings.TrimSpace(rec[cols[fi]]))
		}
		labelCols[field] = vals
	}
	encoders := FitEncoders(labelCols)

	ds := &Dataset{Encoders: encoders, RawRows: raw}
	for rn, rec := range recs {
		var row FeatureRow
		for i := 0; i < NumFeatures; i++ {
			cell := strings.TrimSpace(rec[cols[i]])
			isCat := false
			for field, fi := range catIdx {
				if fi != i {
					continue
				}
				isCat = true
				code, ok := encoders.Fields[field].Transform(cell)
				if !ok {
					return nil, eris.Errorf("row %d: unencodable %s value %q", rn+2, field, cell)
				}
				row[i] = float64(code)
			}
			if isCat {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, eris.Wrapf(err, "row %d: bad %s value %q", rn+2, FeatureColumns[i], cell)
			}
			row[i] = v
		}

		code, ok := FertilizerCodes[strings.TrimSpace(rec[cName])]
		if !ok {
			return nil, eris.Errorf("row %d: unknown fertilizer name %q", rn+2, rec[cName])
		}
		qty, err := strconv.ParseFloat(strings.TrimSpace(rec[cQty]), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "row %d: bad f_quantity", rn+2)
		}

		ds.X = append(ds.X, row)
		ds.Names = append(ds.Names, float64(code))
		ds.Quantities = append(ds.Quantities, qty)
	}
	if len(ds.X) == 0 {
		return nil, eris.New("dataset has no data rows")
	}
	return ds, nil
}

// dropDuplicates removes exact duplicate records, keeping first occurrence.
func dropDuplicates(recs [][]string) [][]string {
	seen := map[string]bool{}
	out := recs[:0:0]
	for _, rec := range recs {
		key := strings.Join(rec, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
	}
	return out
}
