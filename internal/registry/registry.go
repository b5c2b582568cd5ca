package registry

import (
	"errors"
	"fmt"
	"log"
	"strconv"
)

// ErrUnknownCategory is returned when a submission carries a violence-type
// label outside the fixed category domain.
var ErrUnknownCategory = errors.New("unknown violence category")

// CategoryRegistry is the closed, bidirectional table between violence
// category codes (persisted) and labels (displayed). Encoding is strict:
// submissions with an unknown label are rejected. Decoding is permissive:
// a code outside the domain renders as its own decimal string so historical
// or corrupted rows still display instead of breaking a read.
type CategoryRegistry struct {
	codeByLabel map[string]int
	labelByCode map[int]string
}

// DefaultCategories builds the registry over the five campus violence
// categories. The domain is closed; changing it means redeploying.
func DefaultCategories() CategoryRegistry {
	labels := map[int]string{
		1: "Physical Violence",
		2: "Psychological Violence",
		3: "Sexual Violence",
		4: "Workplace Violence",
		5: "Discrimination",
	}
	codes := make(map[string]int, len(labels))
	for code, label := range labels {
		codes[label] = code
	}
	return CategoryRegistry{codeByLabel: codes, labelByCode: labels}
}

// EncodeCategory maps a label to its persisted code. Write path only.
func (r CategoryRegistry) EncodeCategory(label string) (int, error) {
	code, ok := r.codeByLabel[label]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCategory, label)
	}
	return code, nil
}

// DecodeCategory maps a persisted code back to its label. Unknown codes are
// passed through as their string form, never an error.
func (r CategoryRegistry) DecodeCategory(code int) string {
	label, ok := r.labelByCode[code]
	if !ok {
		log.Printf("[registry] unmapped category code %d, passing through", code)
		return strconv.Itoa(code)
	}
	return label
}

// ZoneLabels maps zone ids to the display names shown on histories and
// dashboards. Same permissive decode contract as categories.
type ZoneLabels struct {
	nameByID map[int]string
}

// NewZoneLabels builds the zone display-name table. The table is copied, so
// later mutation of the argument does not reach the registry.
func NewZoneLabels(names map[int]string) ZoneLabels {
	copied := make(map[int]string, len(names))
	for id, name := range names {
		copied[id] = name
	}
	return ZoneLabels{nameByID: copied}
}

// DecodeZone maps a persisted zone id to its display name, passing unknown
// ids through as their string form.
func (z ZoneLabels) DecodeZone(id int) string {
	name, ok := z.nameByID[id]
	if !ok {
		log.Printf("[registry] unmapped zone id %d, passing through", id)
		return strconv.Itoa(id)
	}
	return name
}
