package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type ClientInfoJSON struct {
	Device  string `json:"device,omitempty"`
	OS      string `json:"os,omitempty"`
	Browser string `json:"browser,omitempty"`
	Locale  string `json:"locale,omitempty"`
	IP      string `json:"ip,omitempty"`
}

func (c ClientInfoJSON) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *ClientInfoJSON) Scan(value interface{}) error {
	if value == nil {
		*c = ClientInfoJSON{}
		return nil
	}
	return scanJSON(value, c)
}

func scanJSON(value interface{}, out interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, out)
	case string:
		return json.Unmarshal([]byte(v), out)
	default:
		return fmt.Errorf("expected []byte, got %T", value)
	}
}

// ScanJSON decodes a json/jsonb column value into out.
func ScanJSON(value interface{}, out interface{}) error {
	return scanJSON(value, out)
}
