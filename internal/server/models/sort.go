package models

import (
	"fmt"
	"strings"
)

// SortBy is the closed set of listing orders.
type SortBy int

const (
	SortDateDesc SortBy = iota
	SortDateAsc
	SortNameAsc
	SortNameDesc
	SortSizeAsc
	SortSizeDesc
)

// DefaultSort applies when the caller does not choose one.
const DefaultSort = SortDateDesc

var sortNames = map[SortBy]string{
	SortNameAsc:  "NAME_ASC",
	SortNameDesc: "NAME_DESC",
	SortDateAsc:  "DATE_ASC",
	SortDateDesc: "DATE_DESC",
	SortSizeAsc:  "SIZE_ASC",
	SortSizeDesc: "SIZE_DESC",
}

// SortValues lists every SortBy in a stable order.
func SortValues() []SortBy {
	return []SortBy{SortNameAsc, SortNameDesc, SortDateAsc, SortDateDesc, SortSizeAsc, SortSizeDesc}
}

func (s SortBy) String() string {
	if n, ok := sortNames[s]; ok {
		return n
	}
	return fmt.Sprintf("SortBy(%d)", int(s))
}

// Valid reports whether s is one of the declared values.
func (s SortBy) Valid() bool {
	_, ok := sortNames[s]
	return ok
}

// ParseSortBy maps an exact, case-sensitive name like "SIZE_DESC" to SortBy.
func ParseSortBy(name string) (SortBy, error) {
	for k, v := range sortNames {
		if v == name {
			return k, nil
		}
	}
	names := make([]string, 0, len(sortNames))
	for _, s := range SortValues() {
		names = append(names, s.String())
	}
	return 0, fmt.Errorf("invalid sort mode %q, valid values are: %s", name, strings.Join(names, ", "))
}
