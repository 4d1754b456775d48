// Smoke-checks a trained bundle with a hard-coded sample, the same way the
// server will use it: encode (with fallback), assemble in training column
// order, score both models. No DB involved.
package main

import (
	"flag"
	"fmt"
	"log"

	"fertiq/pkg/ml"
)

func main() {
	bundlePath := flag.String("bundle", "fq_models.gob", "trained bundle path")
	flag.Parse()

	b, err := ml.LoadBundle(*bundlePath)
	if err != nil {
		log.Fatalf("load bundle: %v", err)
	}

	numeric := map[int]float64{
		ml.FiTemperature:   30.0,
		ml.FiHumidity:      65.0,
		ml.FiMoisture:      15.0,
		ml.FiNitrogen:      50.0,
		ml.FiAcres:         2.5,
		ml.FiPH:            6.8,
		ml.FiOrganicMatter: 3.0,
		ml.FiRainfall:      100.0,
		ml.FiPotassium:     30.0,
		ml.FiPhosphorous:   20.0,
	}
	categorical := map[string]string{
		"soil_type":  "Loamy",
		"crop_type":  "Wheat",
		"crop_stage": "Harvest",
		"season":     "Summer",
	}

	var row ml.FeatureRow
	for i, v := range numeric {
		row[i] = v
	}
	catIdx := map[string]int{
		"soil_type":  ml.FiSoilType,
		"crop_type":  ml.FiCropType,
		"crop_stage": ml.FiCropStage,
		"season":     ml.FiSeason,
	}
	for _, field := range ml.CategoricalFields {
		enc, _ := b.Encoders.Encoder(field)
		value := categorical[field]
		code, ok := enc.Transform(value)
		if !ok {
			fallback := ml.FallbackLabels[field]
			fmt.Printf("warning: %q not found in %q, using fallback %q\n", value, field, fallback)
			code, ok = enc.Transform(fallback)
			if !ok {
				log.Fatalf("fallback %q not encodable for %q", fallback, field)
			}
		}
		row[catIdx[field]] = float64(code)
	}

	class := int(b.Classifier.Predict(row))
	quantity := b.Regressor.Predict(row)

	name, ok := ml.FertilizerNames[class]
	if !ok {
		name = ml.UnknownFertilizer
	}

	fmt.Printf("Predicted Fertilizer Name: %s\n", name)
	fmt.Printf("Predicted Fertilizer Quantity: %.2f kg\n", quantity)
}
