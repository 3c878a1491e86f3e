package util

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// TimeAsMillis is stored and transmitted as milliseconds since the UNIX
// epoch but used as a time.Time.
type TimeAsMillis time.Time

func NewTimeAsMillis(ms int64) TimeAsMillis {
	return TimeAsMillis(time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond)).UTC())
}

func (t TimeAsMillis) Millis() int64 {
	// UnixNano overflows outside of years 1678-2262.
	tt := time.Time(t)
	return tt.Unix()*1000 + int64(tt.Nanosecond())/int64(time.Millisecond)
}

func (t TimeAsMillis) Value() (driver.Value, error) {
	return driver.Value(t.Millis()), nil
}

func (t TimeAsMillis) Time() time.Time {
	return time.Time(t)
}

func (t TimeAsMillis) String() string {
	return t.Time().Format("2006-01-02")
}

func (t *TimeAsMillis) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		tmp, err := strconv.ParseInt(string(src), 10, 64)
		if err != nil {
			return err
		}

		*t = NewTimeAsMillis(tmp)
	case int64:
		*t = NewTimeAsMillis(src)
	default:
		return fmt.Errorf("expected []byte or int64, got %T", src)
	}

	return nil
}

func (t TimeAsMillis) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Millis())
}

func (t *TimeAsMillis) UnmarshalJSON(b []byte) error {
	var ms int64
	if err := json.Unmarshal(b, &ms); err != nil {
		return err
	}

	*t = NewTimeAsMillis(ms)
	return nil
}
