package model

// Goal is one strategic objective of the municipal plan. Indicators hang
// off goals; a goal cannot be deleted while indicators still reference it.
type Goal struct {
	BaseModel
	DepartmentID uint   `gorm:"index;type:bigint unsigned" json:"departmentId"`
	Title        string `gorm:"size:255;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	StartYear    int    `gorm:"not null" json:"startYear"`
	EndYear      int    `gorm:"not null" json:"endYear"`
}

func (Goal) TableName() string {
	return "goals"
}
