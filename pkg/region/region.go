// Package region classifies departments against geographic region filters.
package region

import "strings"

// Region is one of the fixed geographic buckets a department can belong to.
type Region string

const (
	US           Region = "us"
	Europe       Region = "europe"
	Canada       Region = "canada"
	NorthAmerica Region = "northamerica"
	SouthAmerica Region = "southamerica"
	Australasia  Region = "australasia"
	Asia         Region = "asia"
	Africa       Region = "africa"
	World        Region = "world"
)

// Info holds the geographic classification of one department.
type Info struct {
	Region       Region
	CountryAbbrv string // ISO 3166-1 alpha-2, lower case
}

// Table maps department names to their geographic info. Departments absent
// from the table are implicitly US.
type Table map[string]Info

// Matches reports whether a department passes the given region filter. It is
// a pure predicate: every (department, filter) pair yields an answer.
//
// Filters are either one of the Region values or a 2-letter country code.
// The empty filter matches everything, same as "world".
func (t Table) Matches(department, filter string) bool {
	switch Region(strings.ToLower(filter)) {
	case World, Region(""):
		return true
	case US:
		// Absence from the table means a domestic department.
		_, abroad := t[department]
		return !abroad
	case NorthAmerica:
		info, abroad := t[department]
		return !abroad || info.Region == Canada
	case Europe, SouthAmerica, Asia, Africa, Australasia, Canada:
		info, ok := t[department]
		return ok && info.Region == Region(strings.ToLower(filter))
	}

	if len(filter) == 2 {
		info, ok := t[department]
		return ok && strings.EqualFold(info.CountryAbbrv, filter)
	}
	return false
}

// KnownFilters returns the accepted named region filters, for UI building.
func KnownFilters() []Region {
	return []Region{World, US, NorthAmerica, Canada, Europe, SouthAmerica, Asia, Africa, Australasia}
}
