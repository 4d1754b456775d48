// Offline training: reads the fertilizer dataset, drops duplicates, encodes
// the categorical columns, tunes a random forest classifier (fertilizer name)
// and regressor (quantity) by grid search, and serializes everything the
// server needs into one bundle file.
package main

import (
	"flag"
	"log"
	"time"

	"fertiq/config"
	"fertiq/pkg/ml"
)

func main() {
	cfg := config.Load()

	dataset := flag.String("dataset", cfg.DatasetPath, "training dataset (.csv or .xlsx)")
	out := flag.String("out", cfg.ModelBundle, "output bundle path")
	folds := flag.Int("folds", 5, "cross-validation folds")
	quick := flag.Bool("quick", false, "small grid for fast local runs")
	flag.Parse()

	ds, err := ml.LoadDataset(*dataset)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}
	log.Printf("dataset: %d rows (%d before dedupe)", len(ds.X), ds.RawRows)

	grid := ml.DefaultGrid()
	if *quick {
		grid = ml.Grid{
			NEstimators:     []int{50},
			MaxDepth:        []int{10},
			MinSamplesSplit: []int{2},
			MinSamplesLeaf:  []int{1},
		}
	}

	// classifier split keeps its own seed, as does the regressor split
	xcTr, xcTe, ycTr, ycTe := ml.TrainTestSplit(ds.X, ds.Names, 0.25, 50)
	xrTr, xrTe, yrTr, yrTe := ml.TrainTestSplit(ds.X, ds.Quantities, 0.25, 0)

	log.Printf("grid search: classifier (%d folds)", *folds)
	classifier, cParams, cScore := ml.GridSearchClassifier(xcTr, ycTr, grid, *folds, 50)
	log.Printf("best classifier params %+v (cv accuracy %.4f)", cParams, cScore)

	log.Printf("grid search: regressor (%d folds)", *folds)
	regressor, rParams, rScore := ml.GridSearchRegressor(xrTr, yrTr, grid, *folds, 0)
	log.Printf("best regressor params %+v (cv neg-mse %.4f)", rParams, rScore)

	acc := ml.Accuracy(classifier, xcTe, ycTe)
	mae := ml.MAE(regressor, xrTe, yrTe)
	log.Printf("held-out: classifier accuracy %.2f%%, regressor MAE %.2f", acc*100, mae)

	b := &ml.Bundle{
		Classifier: classifier,
		Regressor:  regressor,
		Encoders:   ds.Encoders,
		Columns:    ml.FeatureColumns,
		Meta: ml.BundleMeta{
			Dataset:          *dataset,
			Rows:             len(ds.X),
			TrainRows:        len(xcTr),
			Accuracy:         acc,
			MAE:              mae,
			ClassifierParams: cParams,
			RegressorParams:  rParams,
		},
		CreatedAt: time.Now(),
	}
	if err := b.Save(*out); err != nil {
		log.Fatalf("save bundle: %v", err)
	}
	log.Printf("bundle written to %s", *out)
}
