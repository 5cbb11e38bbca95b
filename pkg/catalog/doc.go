// Package catalog defines the merchant catalog data model and its wire
// encoding: primitive value types (Category, MeasurementUnit, Image, Price),
// the entity shapes Item, ItemVariation and ItemModification, the
// CatalogObject envelope and the Document record that carries identity,
// ownership, version and creation time around an envelope.
//
// Identity and ownership are type parameters. ItemVariation[ID],
// ItemModification[ID], CatalogObject[ID] and Document[ID, Account] accept
// any ID and Account type that encoding/json can marshal; the package never
// generates identifiers or checks ownership.
//
// Wire format (JSON):
//
//	{
//	  "id": 42, "account": 7, "version": 1, "created_at": 1700000000,
//	  "type": "Variation",
//	  "data": {
//	    "item_id": 41, "name": "Large", "sku": "TS-L", "images": [],
//	    "upc": null, "enabled": true, "measurement_units": "Units",
//	    "available_units": 12,
//	    "price_type": "Fixed", "price_amount": 9.99, "price_currency": "USD"
//	  }
//	}
//
// Every value in this package is immutable once built and every function
// is safe for concurrent use.
package catalog
