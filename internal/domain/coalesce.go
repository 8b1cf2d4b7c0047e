package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// MoneyFromPtrWithDefault returns the first non-nil *Money value, or the fallback.
func MoneyFromPtrWithDefault(fallback Money, ptrs ...*Money) Money {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
