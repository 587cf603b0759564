package loader

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration 允许配置文件以 "5s"、"250ms" 形式书写时长，也兼容纳秒整数。
type Duration time.Duration

// UnmarshalJSON 实现 json.Unmarshaler。Kratos config.Scan 通过 JSON 中转解码配置。
func (d *Duration) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*d = 0
	case float64:
		*d = Duration(time.Duration(v))
	case string:
		if v == "" {
			*d = 0
			return nil
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

// Std 返回标准库 time.Duration。
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
