package entities

import "strings"

type RegionGroup string

const (
	RegionNorth     RegionGroup = "NORTH"
	RegionNortheast RegionGroup = "NORTHEAST"
	RegionMidwest   RegionGroup = "MIDWEST"
	RegionSoutheast RegionGroup = "SOUTHEAST"
	RegionSouth     RegionGroup = "SOUTH"
)

// DefaultRegionGroup is used for codes missing from the lookup table.
const DefaultRegionGroup = RegionSoutheast

// RegionFor maps a state code to its geographic group. Unknown codes fall
// back to DefaultRegionGroup.
func RegionFor(code string) RegionGroup {
	g, _ := LookupRegion(code)
	return g
}

// LookupRegion is RegionFor that also reports whether the code was mapped.
func LookupRegion(code string) (RegionGroup, bool) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "AC", "AM", "AP", "PA", "RO", "RR", "TO":
		return RegionNorth, true
	case "AL", "BA", "CE", "MA", "PB", "PE", "PI", "RN", "SE":
		return RegionNortheast, true
	case "DF", "GO", "MT", "MS":
		return RegionMidwest, true
	case "ES", "MG", "RJ", "SP":
		return RegionSoutheast, true
	case "PR", "RS", "SC":
		return RegionSouth, true
	}
	return DefaultRegionGroup, false
}
