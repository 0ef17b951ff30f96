package service

import (
	"strings"
	"time"

	"github.com/ElephaSolutions/rtoappfrontend/internal/constants"
	"github.com/ElephaSolutions/rtoappfrontend/internal/models"
)

// Validity is the status badge derived from comparing a stored date to now.
type Validity string

const (
	ValidityExpired      Validity = "Expired"
	ValidityExpiringSoon Validity = "Expiring Soon"
	ValidityValid        Validity = "Valid"
)

const expiringSoonWindow = 30 * 24 * time.Hour

// ValidityOf classifies a date against now. A date equal to now is Expiring
// Soon, not Expired; a date exactly 30 days out is still Expiring Soon.
func ValidityOf(date, now time.Time) Validity {
	if date.Before(now) {
		return ValidityExpired
	}
	if !date.After(now.Add(expiringSoonWindow)) {
		return ValidityExpiringSoon
	}
	return ValidityValid
}

// ValidityForDate classifies a backend date string; unparseable values read
// as Valid so a bad date never shows a false alarm.
func ValidityForDate(value string, now time.Time) Validity {
	t, ok := parseDate(value)
	if !ok {
		return ValidityValid
	}
	return ValidityOf(t, now)
}

// FilterVehicles narrows the fetched page's rows by the search term:
// case-insensitive substring on vehicle number, raw substring on contact
// number. It never touches rows on other pages.
func FilterVehicles(vehicles []models.VehicleRecord, term string) []models.VehicleRecord {
	if term == "" {
		return vehicles
	}
	lowered := strings.ToLower(term)
	filtered := make([]models.VehicleRecord, 0, len(vehicles))
	for _, v := range vehicles {
		if strings.Contains(strings.ToLower(v.VehicleNumber), lowered) ||
			strings.Contains(v.ContactNumber, term) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// PageState is the table's pagination state. TotalItems comes from the
// backend and is never inferred locally.
type PageState struct {
	Page       int
	PageSize   int
	TotalItems int
}

func NewPageState(page, totalItems int) PageState {
	state := PageState{
		Page:       page,
		PageSize:   constants.ItemsPerPage,
		TotalItems: totalItems,
	}
	return state.Clamp()
}

// TotalPages is ceil(TotalItems / PageSize), never below 1.
func (p PageState) TotalPages() int {
	pages := (p.TotalItems + p.PageSize - 1) / p.PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Clamp confines the page number to [1, TotalPages].
func (p PageState) Clamp() PageState {
	if p.Page < 1 {
		p.Page = 1
	}
	if max := p.TotalPages(); p.Page > max {
		p.Page = max
	}
	return p
}

func (p PageState) HasPrevious() bool {
	return p.Page > 1
}

func (p PageState) HasNext() bool {
	return p.Page < p.TotalPages()
}

func (p PageState) PreviousPage() int {
	if p.Page <= 1 {
		return 1
	}
	return p.Page - 1
}

func (p PageState) NextPage() int {
	if next := p.Page + 1; next <= p.TotalPages() {
		return next
	}
	return p.TotalPages()
}

// StartIndex is the 1-based index of the page's first row across the whole
// dataset, used for the "Showing X to Y of Z" line.
func (p PageState) StartIndex() int {
	return (p.Page-1)*p.PageSize + 1
}

func (p PageState) EndIndex(rowsShown int) int {
	return (p.Page-1)*p.PageSize + rowsShown
}
