package model

// IndexOf returns the position of the vendor named name, or -1.
func IndexOf(vendors []*Vendor, name string) int {
	for i, v := range vendors {
		if v != nil && v.Name == name {
			return i
		}
	}
	return -1
}

// Upsert stores v in the collection. A vendor with the same name is replaced
// in place; otherwise v is appended.
func Upsert(vendors []*Vendor, v *Vendor) []*Vendor {
	if i := IndexOf(vendors, v.Name); i >= 0 {
		vendors[i] = v
		return vendors
	}
	return append(vendors, v)
}

// Remove drops the vendor named name, reporting whether one was found.
func Remove(vendors []*Vendor, name string) ([]*Vendor, bool) {
	i := IndexOf(vendors, name)
	if i < 0 {
		return vendors, false
	}
	out := make([]*Vendor, 0, len(vendors)-1)
	out = append(out, vendors[:i]...)
	return append(out, vendors[i+1:]...), true
}

// CloneAll deep-copies a collection.
func CloneAll(vendors []*Vendor) []*Vendor {
	out := make([]*Vendor, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, v.Clone())
	}
	return out
}
