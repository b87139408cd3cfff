package homework

import "fmt"

// Wire keys of the homework_statuses response.
const (
	KeyHomeworks   = "homeworks"
	KeyCurrentDate = "current_date"
	KeyName        = "homework_name"
	KeyStatus      = "status"
)

// ValidateResponse checks that body (a JSON-decoded value) is an object with a
// homeworks list. The returned map is body itself.
func ValidateResponse(body any) (map[string]any, error) {
	obj, ok := body.(map[string]any)
	if !ok {
		return nil, &ShapeError{Kind: ShapeNotObject, Got: typeName(body)}
	}
	hw, ok := obj[KeyHomeworks]
	if !ok {
		return nil, &ShapeError{Kind: ShapeMissingKey}
	}
	if _, ok := hw.([]any); !ok {
		return nil, &ShapeError{Kind: ShapeNotList, Got: typeName(hw)}
	}
	return obj, nil
}

// Homeworks returns the homeworks list of a validated response,
// most recent first.
func Homeworks(resp map[string]any) []any {
	hw, _ := resp[KeyHomeworks].([]any)
	return hw
}

// CurrentDate returns the server timestamp of a response when present.
func CurrentDate(resp map[string]any) (int64, bool) {
	switch v := resp[KeyCurrentDate].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
