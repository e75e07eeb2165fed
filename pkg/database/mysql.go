package database

import (
	"fmt"
	"log"
	"muniplan_backend/internal/config"
	"muniplan_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Department{},
		&model.Goal{},
		&model.Indicator{},
		&model.YearlyTarget{},
		&model.DataEntry{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Bootstrap departments so the first plan can be authored immediately.
	var deptCount int64
	db.Model(&model.Department{}).Count(&deptCount)
	if deptCount == 0 {
		defaultDepartments := []model.Department{
			{Code: "planning", Name: "Strategic Planning Office"},
			{Code: "finance", Name: "Finance and Budget"},
			{Code: "services", Name: "Municipal Services"},
			{Code: "infrastructure", Name: "Infrastructure and Projects"},
		}
		for _, d := range defaultDepartments {
			db.Create(&d)
		}
	}

	// Bootstrap admin account, disabled password must be changed on first login.
	var adminCount int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&adminCount)
	if adminCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
		if err == nil {
			var planning model.Department
			db.Where("code = ?", "planning").First(&planning)
			db.Create(&model.User{
				Name:         "System Administrator",
				Email:        "admin@municipality.local",
				Password:     string(hashed),
				Role:         model.Admin,
				DepartmentID: planning.ID,
			})
		}
	}

	return db, nil
}
