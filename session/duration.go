package session

import (
	"encoding/json"
	"fmt"
	"time"
)

// jsonDuration decodes "1.5s" style strings or integer nanoseconds, so JSON
// configs read durations the same way YAML ones do
type jsonDuration time.Duration

func (d *jsonDuration) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = jsonDuration(parsed)
	case float64:
		*d = jsonDuration(time.Duration(v))
	case nil:
	default:
		return fmt.Errorf("invalid duration %s", data)
	}
	return nil
}

func (c *MemoryConfig) UnmarshalJSON(data []byte) error {
	type plain MemoryConfig
	aux := struct {
		*plain
		SessionTTL *jsonDuration `json:"session_ttl"`
	}{
		plain:      (*plain)(c),
		SessionTTL: (*jsonDuration)(&c.SessionTTL),
	}
	return json.Unmarshal(data, &aux)
}

func (c *KeyDBConfig) UnmarshalJSON(data []byte) error {
	type plain KeyDBConfig
	aux := struct {
		*plain
		SessionTTL *jsonDuration `json:"session_ttl"`
	}{
		plain:      (*plain)(c),
		SessionTTL: (*jsonDuration)(&c.SessionTTL),
	}
	return json.Unmarshal(data, &aux)
}

func (c *ConnectionConfig) UnmarshalJSON(data []byte) error {
	type plain ConnectionConfig
	aux := struct {
		*plain
		ConnectTimeout *jsonDuration `json:"connect_timeout"`
		SendTimeout    *jsonDuration `json:"send_timeout"`
		ReadTimeout    *jsonDuration `json:"read_timeout"`
	}{
		plain:          (*plain)(c),
		ConnectTimeout: (*jsonDuration)(&c.ConnectTimeout),
		SendTimeout:    (*jsonDuration)(&c.SendTimeout),
		ReadTimeout:    (*jsonDuration)(&c.ReadTimeout),
	}
	return json.Unmarshal(data, &aux)
}

func (c *KeepaliveConfig) UnmarshalJSON(data []byte) error {
	type plain KeepaliveConfig
	aux := struct {
		*plain
		MaxIdleTimeout *jsonDuration `json:"max_idle_timeout"`
	}{
		plain:          (*plain)(c),
		MaxIdleTimeout: (*jsonDuration)(&c.MaxIdleTimeout),
	}
	return json.Unmarshal(data, &aux)
}
