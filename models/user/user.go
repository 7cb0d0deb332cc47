package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// User is the backend user record; Role is advisory on this side.
type User struct {
	ID          string    `json:"_id"`
	UID         string    `json:"uid,omitempty"`
	Email       string    `json:"email"`
	DisplayName string    `json:"name,omitempty"`
	Photo       string    `json:"photo,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	LastLogin   time.Time `json:"last_log_in,omitempty"`
}

// Identity is a signed-in account mirrored locally on every login.
type Identity struct {
	ID            uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UID           string      `gorm:"type:varchar(128);not null;unique" json:"uid"`
	Email         string      `gorm:"type:varchar(255);not null" json:"email"`
	EmailVerified bool        `gorm:"type:bool;default:false" json:"email_verified"`
	DisplayName   string      `gorm:"type:varchar(255)" json:"display_name"`
	PhotoURL      string      `gorm:"type:varchar(2048)" json:"photo_url"`
	Providers     StringSlice `gorm:"type:json" json:"providers"`
	LastSignInAt  *time.Time  `json:"last_sign_in_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// StringSlice is stored as a JSON column
type StringSlice []string

func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, ss)
}

func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	return json.Marshal(ss)
}

// Has reports whether provider is already recorded.
func (ss StringSlice) Has(provider string) bool {
	for _, p := range ss {
		if p == provider {
			return true
		}
	}
	return false
}
