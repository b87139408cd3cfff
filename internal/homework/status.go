package homework

// ParseStatus interprets one element of the homeworks list.
func ParseStatus(item any) (Status, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return Status{}, &ShapeError{Kind: ShapeItemNotObject, Got: typeName(item)}
	}
	name, ok := obj[KeyName].(string)
	if !ok {
		return Status{}, &MissingFieldError{Field: KeyName}
	}
	raw, ok := obj[KeyStatus].(string)
	if !ok {
		return Status{}, &MissingFieldError{Field: KeyStatus}
	}

	code := StatusCode(raw)
	verdict, ok := Verdict(code)
	if !ok {
		return Status{}, &UnknownStatusError{Status: raw}
	}
	return Status{Name: name, Code: code, Verdict: verdict}, nil
}
