package conf

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bootstrap is the root of configs/config.yaml.
type Bootstrap struct {
	Data *Data `json:"data"`
	Log  *Log  `json:"log"`
}

// Data holds storage and cache settings
type Data struct {
	Database *Database `json:"database"`
	Redis    *Redis    `json:"redis"`
}

// Database describes the relational store the catalog lives in.
// Driver is one of "mysql", "postgres" or "sqlite".
type Database struct {
	Driver          string   `json:"driver"`
	Source          string   `json:"source"`
	Name            string   `json:"name"`
	Charset         string   `json:"charset"`
	Collation       string   `json:"collation"`
	MaxIdleConns    int      `json:"max_idle_conns"`
	MaxOpenConns    int      `json:"max_open_conns"`
	ConnMaxLifetime Duration `json:"conn_max_lifetime"`
}

// Redis is optional; an empty Addr disables caching.
type Redis struct {
	Addr         string   `json:"addr"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
}

// Log configures the kratos logger
type Log struct {
	Level string `json:"level"`
}

// Duration decodes "1.5s" style strings as well as plain nanosecond numbers.
type Duration struct {
	time.Duration
}

// AsDuration returns the wrapped time.Duration.
func (d Duration) AsDuration() time.Duration {
	return d.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		if value == "" {
			d.Duration = 0
			return nil
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
	case nil:
		d.Duration = 0
	default:
		return fmt.Errorf("invalid duration type %T", v)
	}
	return nil
}
