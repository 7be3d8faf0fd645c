package service

import "sort"

// lockedFields cannot be changed through a self-service update once a
// profile exists.
var lockedFields = map[string]struct{}{
	"first_name":   {},
	"last_name":    {},
	"company_name": {},
	"email":        {},
	"phone":        {},
}

// CheckLockedFields returns a *LockedFieldsError when patch touches any
// locked field. The offending names are sorted.
func CheckLockedFields(patch map[string]interface{}) error {
	var hit []string
	for key := range patch {
		if _, ok := lockedFields[key]; ok {
			hit = append(hit, key)
		}
	}
	if len(hit) == 0 {
		return nil
	}
	sort.Strings(hit)
	return &LockedFieldsError{Fields: hit}
}
