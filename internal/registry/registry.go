// Package registry holds the in-memory vehicle registry index. A
// Registry is built once from reference records and is read-only
// afterwards, so it is safe to share across concurrent lookups
// without locking.
package registry

import "strings"

// Record is one vehicle registration, keyed by the canonical
// unhyphenated plate number.
type Record struct {
	PlateNumber string `json:"plate_number"`
	OwnerName   string `json:"owner_name"`
	State       string `json:"state"`
	VehicleType string `json:"vehicle_type"`
	Color       string `json:"color"`
	Year        int    `json:"year"`
	PlateType   string `json:"plate_type"`
}

// LookupResult pairs an optional record with the identifier that was
// used to find it.
type LookupResult struct {
	Identifier string  `json:"identifier"`
	Found      bool    `json:"found"`
	Record     *Record `json:"record,omitempty"`
}

type Registry struct {
	byKey map[string]Record
}

// New indexes records by canonical key. Later records win on
// duplicate keys.
func New(records []Record) *Registry {
	byKey := make(map[string]Record, len(records))
	for _, rec := range records {
		key := CanonicalKey(rec.PlateNumber)
		if key == "" {
			continue
		}
		rec.PlateNumber = key
		byKey[key] = rec
	}
	return &Registry{byKey: byKey}
}

// CanonicalKey strips everything outside A-Z0-9 and uppercases, so
// "KTS-123AB", "kts 123 ab" and "KTS123AB" all share one key. Two
// plate identifiers are equivalent exactly when their canonical keys
// are equal.
func CanonicalKey(identifier string) string {
	upper := strings.ToUpper(strings.TrimSpace(identifier))
	var b strings.Builder
	b.Grow(len(upper))
	for i := 0; i < len(upper); i++ {
		c := upper[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Lookup resolves a plate identifier in any formatting variant. A
// miss is a normal outcome, not an error.
func (r *Registry) Lookup(identifier string) LookupResult {
	key := CanonicalKey(identifier)
	res := LookupResult{Identifier: key}
	if rec, ok := r.byKey[key]; ok {
		res.Found = true
		res.Record = &rec
	}
	return res
}

// FindByOwner returns records whose owner name contains the query,
// case-insensitively.
func (r *Registry) FindByOwner(owner string) []Record {
	query := strings.ToUpper(strings.TrimSpace(owner))
	if query == "" {
		return nil
	}
	var out []Record
	for _, rec := range r.byKey {
		if strings.Contains(strings.ToUpper(rec.OwnerName), query) {
			out = append(out, rec)
		}
	}
	return out
}

// FindByStateCode returns records whose plate starts with the
// two-letter jurisdiction code.
func (r *Registry) FindByStateCode(code string) []Record {
	query := strings.ToUpper(strings.TrimSpace(code))
	if len(query) != 2 {
		return nil
	}
	var out []Record
	for key, rec := range r.byKey {
		if strings.HasPrefix(key, query) {
			out = append(out, rec)
		}
	}
	return out
}

// Len is the number of indexed records.
func (r *Registry) Len() int { return len(r.byKey) }
