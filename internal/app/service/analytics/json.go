package analytics

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// toJSON converts an optional map payload to its stored form, defaulting to
// an empty object.
func toJSON(m map[string]any) datatypes.JSON {
	if len(m) == 0 {
		return datatypes.JSON([]byte("{}"))
	}
	b, err := json.Marshal(m)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(b)
}
