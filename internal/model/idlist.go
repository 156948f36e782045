package model

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// IDList is a list of entity ids stored as one semicolon-joined TEXT
// column, the same layout the legacy CSV files used for list-valued
// fields.
type IDList []string

func Parse(s string) IDList {
	if s == "" {
		return IDList{}
	}
	return IDList(strings.Split(s, ";"))
}

func (l IDList) String() string {
	return strings.Join(l, ";")
}

func (l IDList) Value() (driver.Value, error) {
	return l.String(), nil
}

func (l *IDList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = IDList{}
	case string:
		*l = Parse(v)
	case []byte:
		*l = Parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into IDList", value)
	}
	return nil
}

func (IDList) GormDataType() string {
	return "idlist"
}

func (IDList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return "TEXT"
}

func (l IDList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns a copy with every occurrence of id removed.
func (l IDList) Without(id string) IDList {
	out := make(IDList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
