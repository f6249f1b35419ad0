package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;index"`
	FirstName    string
	LastName     string
}

func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// ProfessionalProfile is keyed by the owning user id, so a professional id
// and its user id are the same value everywhere in the API.
type ProfessionalProfile struct {
	UserID             string `gorm:"type:varchar(36);primaryKey"`
	ABN                string `gorm:"column:abn"`
	LicenseNumber      string
	CompanyName        string
	ProfessionalType   ProfessionalType `gorm:"type:varchar(32);index"`
	Regions            datatypes.JSONSlice[string]
	States             datatypes.JSONSlice[string]
	Specialisations    datatypes.JSONSlice[string]
	FirstLogin         bool
	VerificationStatus VerificationStatus `gorm:"type:varchar(16);not null;index"`
	VerifiedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	User *User `gorm:"foreignKey:UserID"`
}

func (p *ProfessionalProfile) IsVerified() bool {
	return p.VerificationStatus == VerificationStatusVerified
}
