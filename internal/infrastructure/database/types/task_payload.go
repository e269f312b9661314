package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/eslsoft/datastd/internal/entity"
)

// TaskPayload carries a notification task payload through the jsonb column.
type TaskPayload entity.TaskPayload

// Scan implements sql.Scanner
func (p *TaskPayload) Scan(src any) error {
	if src == nil {
		*p = TaskPayload{}
		return nil
	}
	switch data := src.(type) {
	case []byte:
		if len(data) == 0 {
			*p = TaskPayload{}
			return nil
		}
		return json.Unmarshal(data, p)
	case string:
		if data == "" {
			*p = TaskPayload{}
			return nil
		}
		return json.Unmarshal([]byte(data), p)
	default:
		return fmt.Errorf("TaskPayload: unsupported src type %T", src)
	}
}

// Value implements driver.Valuer
func (p TaskPayload) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return b, nil
}
