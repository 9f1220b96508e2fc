package codegraph

// Access is the visibility of a member within its composite type.
type Access int

const (
	// AccessDefault resolves to private in a class and public in a struct or union.
	AccessDefault Access = iota
	Public
	Protected
	Private
)

// accessOrder is the order member groups are emitted in.
var accessOrder = [...]Access{Public, Protected, Private}

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	}
	return "default"
}

func (a Access) resolve(fallback Access) Access {
	if a == AccessDefault {
		return fallback
	}
	return a
}
