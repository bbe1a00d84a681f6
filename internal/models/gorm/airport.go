package gorm

import (
	"database/sql"
	"time"
)

// Airport represents an airport record with geographic coordinates
type Airport struct {
	ID        uint            `gorm:"column:id;primaryKey;autoIncrement"`
	ICAO      string          `gorm:"column:icao;type:varchar(4);not null;uniqueIndex"`
	IATA      string          `gorm:"column:iata;type:varchar(3)"`
	Name      string          `gorm:"column:name;type:text;not null"`
	City      string          `gorm:"column:city;type:varchar(100)"`
	Region    string          `gorm:"column:region;type:varchar(100)"`
	Country   string          `gorm:"column:country;type:varchar(100)"`
	Elevation sql.NullInt64   `gorm:"column:elevation;type:integer"`
	Latitude  sql.NullFloat64 `gorm:"column:latitude;type:numeric(10,6)"`
	Longitude sql.NullFloat64 `gorm:"column:longitude;type:numeric(10,6)"`
	Timezone  sql.NullString  `gorm:"column:timezone;type:varchar(50)"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airports"
}
