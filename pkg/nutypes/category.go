package nutypes

// Category groups commands for help browsing.
type Category int

const (
	CategoryCore Category = iota
	CategoryFilesystem
	CategoryMath
	CategoryMisc
	CategoryStrings
	CategorySystem
)

func (c Category) String() string {
	switch c {
	case CategoryCore:
		return "core"
	case CategoryFilesystem:
		return "filesystem"
	case CategoryMath:
		return "math"
	case CategoryStrings:
		return "strings"
	case CategorySystem:
		return "system"
	default:
		return "misc"
	}
}

// MarshalText renders the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
