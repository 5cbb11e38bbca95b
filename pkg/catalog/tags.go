package catalog

import (
	"encoding/json"
	"fmt"
)

// MeasurementUnit is the unit a variation is sold in.
type MeasurementUnit string

// Measurement units.
const (
	UnitTime    MeasurementUnit = "Time"
	UnitArea    MeasurementUnit = "Area"
	UnitCustom  MeasurementUnit = "Custom"
	UnitGeneric MeasurementUnit = "Generic"
	UnitUnits   MeasurementUnit = "Units"
	UnitLength  MeasurementUnit = "Length"
	UnitVolume  MeasurementUnit = "Volume"
	UnitWeight  MeasurementUnit = "Weight"
)

var measurementUnits = []MeasurementUnit{
	UnitTime,
	UnitArea,
	UnitCustom,
	UnitGeneric,
	UnitUnits,
	UnitLength,
	UnitVolume,
	UnitWeight,
}

// Category is the merchant business category of an item.
//
// Member names are wire values and are kept exactly as stored data spells
// them, including Beuty, FashionAndAccesories, FarmacyAndHelth,
// VehiclesAndAccesories and BabysAndKids.
type Category string

// Categories.
const (
	CategoryShop                  Category = "Shop"
	CategoryRestaurant            Category = "Restaurant"
	CategoryLiquor                Category = "Liquor"
	CategoryBeuty                 Category = "Beuty"
	CategoryFashionAndAccesories  Category = "FashionAndAccesories"
	CategoryTechnology            Category = "Technology"
	CategoryHome                  Category = "Home"
	CategoryFarmacyAndHelth       Category = "FarmacyAndHelth"
	CategoryVehiclesAndAccesories Category = "VehiclesAndAccesories"
	CategorySports                Category = "Sports"
	CategoryPets                  Category = "Pets"
	CategoryArtAndCrafts          Category = "ArtAndCrafts"
	CategoryToolsAndGarden        Category = "ToolsAndGarden"
	CategoryBabysAndKids          Category = "BabysAndKids"
	CategoryEntertainment         Category = "Entertainment"
	CategoryToysAndGames          Category = "ToysAndGames"
	CategoryBusinessesAndSupplies Category = "BusinessesAndSupplies"
	CategorySexShop               Category = "SexShop"
	CategoryPaperWork             Category = "PaperWork"
)

var categories = []Category{
	CategoryShop,
	CategoryRestaurant,
	CategoryLiquor,
	CategoryBeuty,
	CategoryFashionAndAccesories,
	CategoryTechnology,
	CategoryHome,
	CategoryFarmacyAndHelth,
	CategoryVehiclesAndAccesories,
	CategorySports,
	CategoryPets,
	CategoryArtAndCrafts,
	CategoryToolsAndGarden,
	CategoryBabysAndKids,
	CategoryEntertainment,
	CategoryToysAndGames,
	CategoryBusinessesAndSupplies,
	CategorySexShop,
	CategoryPaperWork,
}

var (
	validMeasurementUnits = tagSet(measurementUnits)
	validCategories       = tagSet(categories)
)

// MeasurementUnits returns every measurement unit in declaration order.
func MeasurementUnits() []MeasurementUnit {
	return append([]MeasurementUnit(nil), measurementUnits...)
}

// Categories returns every category in declaration order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseMeasurementUnit returns the unit named s.
// Returns ErrUnknownVariant if s is not a unit name.
func ParseMeasurementUnit(s string) (MeasurementUnit, error) {
	return parseTag("measurement unit", s, validMeasurementUnits)
}

// ParseCategory returns the category named s.
// Returns ErrUnknownVariant if s is not a category name.
func ParseCategory(s string) (Category, error) {
	return parseTag("category", s, validCategories)
}

// Valid reports whether u is a known measurement unit.
func (u MeasurementUnit) Valid() bool { return validMeasurementUnits[u] }

// Valid reports whether c is a known category.
func (c Category) Valid() bool { return validCategories[c] }

func (u MeasurementUnit) MarshalJSON() ([]byte, error) {
	return marshalTag("measurement unit", u, validMeasurementUnits)
}

func (u *MeasurementUnit) UnmarshalJSON(data []byte) error {
	return unmarshalTag("measurement unit", data, u, validMeasurementUnits)
}

func (c Category) MarshalJSON() ([]byte, error) {
	return marshalTag("category", c, validCategories)
}

func (c *Category) UnmarshalJSON(data []byte) error {
	return unmarshalTag("category", data, c, validCategories)
}

func tagSet[T ~string](tags []T) map[T]bool {
	set := make(map[T]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}

func parseTag[T ~string](kind, s string, valid map[T]bool) (T, error) {
	t := T(s)
	if !valid[t] {
		return "", fmt.Errorf("%w: %s %q", ErrUnknownVariant, kind, s)
	}
	return t, nil
}

func marshalTag[T ~string](kind string, t T, valid map[T]bool) ([]byte, error) {
	if !valid[t] {
		return nil, fmt.Errorf("%w: %s %q", ErrUnknownVariant, kind, string(t))
	}
	return json.Marshal(string(t))
}

func unmarshalTag[T ~string](kind string, data []byte, dst *T, valid map[T]bool) error {
	if isNull(data) {
		return fmt.Errorf("%w: %s: null", ErrMalformedField, kind)
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s must be a string: %v", ErrMalformedField, kind, err)
	}
	t, err := parseTag(kind, s, valid)
	if err != nil {
		return err
	}
	*dst = t
	return nil
}
