package shaper

// Type names one of the shaper families this package can synthesize. It is
// backed by a string, so any string converts to a Type; the set of families
// is closed by the fixed Valid() check, which Synthesize and Configure apply.
type Type string

const (
	TypeNone   Type = "none"
	TypeDAA    Type = "daa"
	TypeZVD    Type = "zvd"
	TypeZVDD   Type = "zvdd"
	TypeEI2    Type = "ei2"
	TypeEI3    Type = "ei3"
	TypeCustom Type = "custom"
)

// MaxExtraImpulses bounds NumExtraImpulses to {0..4}; EI3 is the widest
// built-in shaper at 4 impulses.
const MaxExtraImpulses = 4

var validTypes = map[Type]bool{
	TypeNone:   true,
	TypeDAA:    true,
	TypeZVD:    true,
	TypeZVDD:   true,
	TypeEI2:    true,
	TypeEI3:    true,
	TypeCustom: true,
}

// Valid reports whether t is one of the recognised shaper types.
func (t Type) Valid() bool {
	return validTypes[t]
}

// String returns the type's configuration-command name.
func (t Type) String() string {
	return string(t)
}
