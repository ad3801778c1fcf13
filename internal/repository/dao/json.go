package dao

import (
	"database/sql/driver"
	"errors"
)

// JSONB maps a raw JSON payload onto a Postgres jsonb column, passing the
// bytes through GORM untouched in both directions.
type JSONB []byte

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSONB) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = JSONB(v)
	default:
		return errors.New("dao: unsupported jsonb source type")
	}
	return nil
}

func (JSONB) GormDataType() string {
	return "jsonb"
}
