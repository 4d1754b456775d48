package entities

// FQData is one stored fertilizer recommendation: the 14 model inputs exactly
// as they were fed to the models (categoricals already encoded to their integer
// codes) plus the predicted name and quantity. Rows are append-only; nothing in
// the app updates or deletes them.
type FQData struct {
	IDFQ          uint    `gorm:"column:id_fq;primaryKey" json:"id_fq"`
	Temperature   float64 `gorm:"not null" json:"temperature"`
	Humidity      float64 `gorm:"not null" json:"humidity"`
	Moisture      float64 `gorm:"not null" json:"moisture"`
	SoilType      int     `gorm:"not null" json:"soil_type"`
	CropType      int     `gorm:"not null" json:"crop_type"`
	Nitrogen      float64 `gorm:"not null" json:"nitrogen"`
	CropStage     int     `gorm:"not null" json:"crop_stage"`
	Acres         float64 `gorm:"not null" json:"acres"`
	PH            float64 `gorm:"column:ph;not null" json:"ph"`
	OrganicMatter float64 `gorm:"not null" json:"organic_matter"`
	Rainfall      float64 `gorm:"not null" json:"rainfall"`
	Season        int     `gorm:"not null" json:"season"`
	Potassium     float64 `gorm:"not null" json:"potassium"`
	Phosphorous   float64 `gorm:"not null" json:"phosphorous"`
	FName         string  `gorm:"column:f_name;size:100;not null" json:"f_name"`
	FQuantity     float64 `gorm:"column:f_quantity;not null" json:"f_quantity"`
}

func (FQData) TableName() string { return "fq_data" }
