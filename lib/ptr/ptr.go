package ptr

// Int returns a pointer to an int.
func Int(i int) *int {
	ret := i
	return &ret
}

// Int64 returns a pointer to an int64.
func Int64(i int64) *int64 {
	ret := i
	return &ret
}

// Str returns a pointer to a string.
func Str(str string) *string {
	ret := str
	return &ret
}

// DerefStr returns `*strPtr` if `strPtr` is non-nil. Otherwise it returns
// `defaultValue`.
func DerefStr(strPtr *string, defaultValue string) string {
	if strPtr != nil {
		return *strPtr
	}
	return defaultValue
}
