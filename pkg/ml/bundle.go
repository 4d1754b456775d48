package ml

import (
	"encoding/gob"
	"os"
	"time"

	"github.com/rotisserie/eris"
)

// Bundle is the serialized training artifact: both models, the label
// encoders and enough metadata to tell which dataset produced them. The
// server refuses to start without a loadable bundle.
type Bundle struct {
	Classifier *ForestClassifier
	Regressor  *ForestRegressor
	Encoders   *EncoderSet
	Columns    []string
	Meta       BundleMeta
	CreatedAt  time.Time
}

type BundleMeta struct {
	Dataset          string
	Rows             int
	TrainRows        int
	Accuracy         float64 // classifier, held-out split
	MAE              float64 // regressor, held-out split
	ClassifierParams ForestParams
	RegressorParams  ForestParams
}

func (b *Bundle) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "create bundle file")
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(b); err != nil {
		return eris.Wrap(err, "encode bundle")
	}
	return nil
}

// LoadBundle reads and sanity-checks a bundle. Any failure here is a
// configuration error, not a request error.
func LoadBundle(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "open bundle file")
	}
	defer f.Close()

	var b Bundle
	if err := gob.NewDecoder(f).Decode(&b); err != nil {
		return nil, eris.Wrap(err, "decode bundle")
	}
	if b.Classifier == nil || len(b.Classifier.Trees) == 0 {
		return nil, eris.New("bundle has no classifier")
	}
	if b.Regressor == nil || len(b.Regressor.Trees) == 0 {
		return nil, eris.New("bundle has no regressor")
	}
	if b.Encoders == nil {
		return nil, eris.New("bundle has no encoders")
	}
	if err := b.Encoders.Validate(); err != nil {
		return nil, err
	}
	if len(b.Columns) != NumFeatures {
		return nil, eris.Errorf("bundle column count %d, want %d", len(b.Columns), NumFeatures)
	}
	return &b, nil
}
