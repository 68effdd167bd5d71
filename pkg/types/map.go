package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Map is an arbitrary JSON document stored as TEXT. A nil Map maps to
// SQL NULL and JSON null.
type Map map[string]interface{}

func (m Map) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *Map) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into types.Map", src)
	}
}
