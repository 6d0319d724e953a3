package model

import "time"

// LocalStorage is one named value of the client's persistent storage
type LocalStorage struct {
	Name      string    `gorm:"primaryKey;type:varchar(64)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"type:datetime"`
}

func (LocalStorage) TableName() string {
	return "local_storage"
}
