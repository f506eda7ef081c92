package horoscope

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// mustJSON is only used with static seed data that always marshals.
func mustJSON(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return datatypes.JSON(b)
}
