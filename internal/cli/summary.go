package cli

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/catalog/pkg/catalog"
	"github.com/mesh-intelligence/catalog/pkg/store"
)

// summaryVisitor renders a one-line description of a catalog object.
type summaryVisitor struct {
	line string
}

func (v *summaryVisitor) VisitItem(item catalog.Item) error {
	v.line = fmt.Sprintf("Item %q category=%s tags=[%s] enabled=%t",
		item.Name, item.Category, strings.Join(item.Tags, ","), item.Enabled)
	return nil
}

func (v *summaryVisitor) VisitVariation(iv catalog.ItemVariation[string]) error {
	upc := "-"
	if iv.UPC != nil {
		upc = *iv.UPC
	}
	v.line = fmt.Sprintf("Variation %q item=%s sku=%s upc=%s price=%s available=%d %s enabled=%t",
		iv.Name, iv.ItemID, iv.SKU, upc, formatPrice(iv.Price), iv.AvailableUnits, iv.MeasurementUnits, iv.Enabled)
	return nil
}

func (v *summaryVisitor) VisitModification(m catalog.ItemModification[string]) error {
	v.line = fmt.Sprintf("Modification %q item=%s price=%s enabled=%t",
		m.Name, m.ItemID, formatPrice(m.Price), m.Enabled)
	return nil
}

// summarize returns the one-line description of obj.
func summarize(obj store.Object) (string, error) {
	var v summaryVisitor
	if err := obj.Visit(&v); err != nil {
		return "", err
	}
	return v.line, nil
}

// objectName returns the display name of obj.
func objectName(obj store.Object) string {
	if item, ok := obj.Item(); ok {
		return item.Name
	}
	if iv, ok := obj.Variation(); ok {
		return iv.Name
	}
	if m, ok := obj.Modification(); ok {
		return m.Name
	}
	return ""
}

func formatPrice(p catalog.Price) string {
	switch p := p.(type) {
	case catalog.Fixed:
		return fmt.Sprintf("%.2f %s", p.Amount, p.Currency)
	case nil:
		return "-"
	default:
		return string(p.PriceType())
	}
}
