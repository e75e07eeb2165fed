package model

type Department struct {
	BaseModel
	Name string `gorm:"size:255;not null" json:"name"`
	Code string `gorm:"size:50;unique;not null" json:"code"`
}

func (Department) TableName() string {
	return "departments"
}
