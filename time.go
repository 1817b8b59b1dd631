package heredity

import (
	"fmt"
	"time"
)

// Time scans timestamps out of the result store. Rows written by this package
// hold unix seconds, but SQLite drivers may hand back integers, text or
// time.Time depending on the column's declared type.
type Time time.Time

func (t *Time) Scan(v interface{}) error {
	switch which := v.(type) {
	case int64:
		*t = Time(time.Unix(which, 0).UTC())
		return nil
	case time.Time:
		*t = Time(which.UTC())
		return nil
	case []byte:
		return t.parse(string(which))
	case string:
		return t.parse(which)
	}

	return fmt.Errorf("No appropriate type could be found to decode %v", v)
}

func (t *Time) parse(s string) error {
	vt, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		return err
	}
	*t = Time(vt.UTC())
	return nil
}

// Time returns t as a time.Time.
func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) String() string {
	return time.Time(t).Format(time.RFC3339)
}
