package models

// Suburb is one row of the postcode/locality reference table. Read-only after seeding.
type Suburb struct {
	ID        int64   `gorm:"primaryKey;autoIncrement:false"`
	Postcode  string  `gorm:"type:varchar(4);not null;index"`
	Locality  string  `gorm:"not null;index"`
	Region    string  `gorm:"index"`
	State     AUState `gorm:"type:varchar(3);not null;index"`
	Latitude  float64
	Longitude float64
}
