package catalog

// Image references an externally stored picture. The URL is not checked.
type Image struct {
	URL string
}

func (img Image) MarshalJSON() ([]byte, error) {
	f, err := newFields(entry{"url", img.URL})
	if err != nil {
		return nil, err
	}
	return f.marshal()
}

func (img *Image) UnmarshalJSON(data []byte) error {
	f, err := parseFields(data)
	if err != nil {
		return err
	}
	var out Image
	if err := f.require("url", &out.URL); err != nil {
		return err
	}
	*img = out
	return nil
}

// Item is a product as the merchant thinks of it, independent of how it is
// sold or priced. Tags keep their order on the wire.
type Item struct {
	Category    Category
	Tags        []string
	Name        string
	Description string
	Enabled     bool
}

func (it Item) MarshalJSON() ([]byte, error) {
	f, err := newFields(
		entry{"category", it.Category},
		entry{"tags", nonNil(it.Tags)},
		entry{"name", it.Name},
		entry{"description", it.Description},
		entry{"enabled", it.Enabled},
	)
	if err != nil {
		return nil, err
	}
	return f.marshal()
}

func (it *Item) UnmarshalJSON(data []byte) error {
	f, err := parseFields(data)
	if err != nil {
		return err
	}
	var out Item
	if err := f.require("category", &out.Category); err != nil {
		return err
	}
	if out.Tags, err = f.requireStrings("tags"); err != nil {
		return err
	}
	if err := f.requireAll(
		entry{"name", &out.Name},
		entry{"description", &out.Description},
		entry{"enabled", &out.Enabled},
	); err != nil {
		return err
	}
	*it = out
	return nil
}

// nonNil encodes a nil slice as an empty JSON array instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
