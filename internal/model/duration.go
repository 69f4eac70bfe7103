package model

import (
	"encoding/json"
	"time"
)

// Duration is an elapsed time serialized as {"secs": s, "nanos": ns}.
type Duration time.Duration

// Since returns now-begin, clamped at zero.
func Since(begin, now time.Time) Duration {
	d := now.Sub(begin)
	if d < 0 {
		return 0
	}
	return Duration(d)
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

type durationJSON struct {
	Secs  int64 `json:"secs"`
	Nanos int64 `json:"nanos"`
}

func (d Duration) MarshalJSON() ([]byte, error) {
	td := time.Duration(d)
	return json.Marshal(durationJSON{
		Secs:  int64(td / time.Second),
		Nanos: int64(td % time.Second),
	})
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v durationJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = Duration(time.Duration(v.Secs)*time.Second + time.Duration(v.Nanos))
	return nil
}
