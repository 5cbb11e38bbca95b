package catalog

// pricePrefix namespaces the flattened Price fields inside a variation or
// modification record.
const pricePrefix = "price_"

// ItemVariation is a purchasable, stockable unit of an Item. ItemID names
// the item without owning it. AvailableUnits may be negative to represent
// backorder. Price is flattened into the record with the price_ prefix.
type ItemVariation[ID any] struct {
	ItemID           ID
	Name             string
	SKU              string
	Images           []Image
	UPC              *string
	Enabled          bool
	MeasurementUnits MeasurementUnit
	AvailableUnits   int32
	Price            Price
}

func (v ItemVariation[ID]) MarshalJSON() ([]byte, error) {
	f, err := newFields(
		entry{"item_id", v.ItemID},
		entry{"name", v.Name},
		entry{"sku", v.SKU},
		entry{"images", nonNil(v.Images)},
		entry{"upc", v.UPC},
		entry{"enabled", v.Enabled},
		entry{"measurement_units", v.MeasurementUnits},
		entry{"available_units", v.AvailableUnits},
	)
	if err != nil {
		return nil, err
	}
	pf, err := encodeFlatPrice(v.Price, pricePrefix)
	if err != nil {
		return nil, err
	}
	if err := f.merge(pf); err != nil {
		return nil, err
	}
	return f.marshal()
}

func (v *ItemVariation[ID]) UnmarshalJSON(data []byte) error {
	f, err := parseFields(data)
	if err != nil {
		return err
	}
	price, own, err := decodeFlatPrice(f, pricePrefix)
	if err != nil {
		return err
	}

	out := ItemVariation[ID]{Price: price}
	if err := own.requireAll(
		entry{"item_id", &out.ItemID},
		entry{"name", &out.Name},
		entry{"sku", &out.SKU},
		entry{"images", &out.Images},
		entry{"enabled", &out.Enabled},
		entry{"measurement_units", &out.MeasurementUnits},
		entry{"available_units", &out.AvailableUnits},
	); err != nil {
		return err
	}
	var upc string
	ok, err := own.optional("upc", &upc)
	if err != nil {
		return err
	}
	if ok {
		out.UPC = &upc
	}
	*v = out
	return nil
}

// ItemModification is an add-on to an Item: priced like a variation but
// with no SKU, UPC, unit or stock count.
type ItemModification[ID any] struct {
	ItemID  ID
	Name    string
	Images  []Image
	Price   Price
	Enabled bool
}

func (m ItemModification[ID]) MarshalJSON() ([]byte, error) {
	f, err := newFields(
		entry{"item_id", m.ItemID},
		entry{"name", m.Name},
		entry{"images", nonNil(m.Images)},
		entry{"enabled", m.Enabled},
	)
	if err != nil {
		return nil, err
	}
	pf, err := encodeFlatPrice(m.Price, pricePrefix)
	if err != nil {
		return nil, err
	}
	if err := f.merge(pf); err != nil {
		return nil, err
	}
	return f.marshal()
}

func (m *ItemModification[ID]) UnmarshalJSON(data []byte) error {
	f, err := parseFields(data)
	if err != nil {
		return err
	}
	price, own, err := decodeFlatPrice(f, pricePrefix)
	if err != nil {
		return err
	}

	out := ItemModification[ID]{Price: price}
	if err := own.requireAll(
		entry{"item_id", &out.ItemID},
		entry{"name", &out.Name},
		entry{"images", &out.Images},
		entry{"enabled", &out.Enabled},
	); err != nil {
		return err
	}
	*m = out
	return nil
}
