package facts

type Fact uint8

const (
	// maximumFactValue is the value of the highest currently known Fact.
	maximumFactValue = 3

	// None is the default value for Fact.
	// Getting a Fact of type None means there are no facts for the given key.
	None Fact = 0

	// StructType is a Fact that represents a named Go struct type.
	StructType Fact = 1

	// InterfaceType is a Fact that represents a named Go interface type.
	InterfaceType Fact = 2

	// AliasType is a Fact that represents any other named type, emitted as a typedef.
	AliasType Fact = 3
)

func (f Fact) String() string {
	switch f {
	case None:
		return "None"
	case StructType:
		return "Struct"
	case InterfaceType:
		return "Interface"
	case AliasType:
		return "Alias"
	default:
		return "Unknown"
	}
}
