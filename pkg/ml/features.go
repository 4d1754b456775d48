package ml

// NumFeatures is the width of every row fed to the models.
const NumFeatures = 14

// FeatureRow is one encoded input row in the exact column order the models
// were trained with. Reordering these columns silently breaks predictions,
// so everything that builds a row goes through the Fi* indexes below.
type FeatureRow [NumFeatures]float64

// Column indexes into a FeatureRow.
const (
	FiTemperature = iota
	FiHumidity
	FiMoisture
	FiSoilType
	FiCropType
	FiNitrogen
	FiCropStage
	FiAcres
	FiPH
	FiOrganicMatter
	FiRainfall
	FiSeason
	FiPotassium
	FiPhosphorous
)

// FeatureColumns are the dataset column names in training order. The dataset
// spells it "temparature"; kept as-is so headers keep matching.
var FeatureColumns = []string{
	"temparature", "humidity", "moisture", "soil_type", "crop_type",
	"nitrogen", "crop_stage", "acres", "pH", "organic_matter",
	"rainfall", "season", "potassium", "phosphorous",
}

// CategoricalFields are the columns that go through a label encoder.
var CategoricalFields = []string{"soil_type", "crop_type", "crop_stage", "season"}

// FallbackLabels are substituted when a submitted categorical value was never
// seen at training time. Encoders are always fitted on a superset that
// includes these, so the fallback itself can always be encoded.
var FallbackLabels = map[string]string{
	"soil_type":  "Loamy",
	"crop_type":  "Wheat",
	"crop_stage": "Harvest",
	"season":     "Summer",
}

// FertilizerCodes maps the dataset's fertilizer names to the class codes the
// classifier is trained on. FertilizerNames is the inverse, used when mapping
// a predicted code back to a recommendation.
var FertilizerCodes = map[string]int{
	"Urea":     1,
	"DAP":      2,
	"14-35-14": 3,
	"28-28":    4,
	"20-20":    5,
}

var FertilizerNames = map[int]string{
	1: "Urea",
	2: "DAP",
	3: "14-35-14",
	4: "28-28",
	5: "20-20",
}

// UnknownFertilizer is returned when the classifier emits a code outside
// FertilizerNames.
const UnknownFertilizer = "Unknown Fertilizer"
