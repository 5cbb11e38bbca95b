// Package store defines the storage contract for catalog documents: the
// Store interface, its Config and the errors backends return.
//
// A Store assigns document identity (UUID v7 strings), takes the owning
// account as a string, stamps created_at on first write and advances the
// version on every later write. The catalog package itself stays unaware
// of all of this.
package store

import "github.com/mesh-intelligence/catalog/pkg/catalog"

// Document is a catalog document with string identity and account.
type Document = catalog.Document[string, string]

// Object is a draft catalog envelope whose references are string IDs.
type Object = catalog.CatalogObject[string]
