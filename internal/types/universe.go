package types

// universe maps predeclared type names to their basic types.
var universe map[string]*Basic

func init() {
	universe = make(map[string]*Basic, len(Typ))
	for _, b := range Typ {
		if b != nil {
			universe[b.name] = b
		}
	}
}

// LookupBasic returns the predeclared basic type with the given name,
// or nil if there is none.
func LookupBasic(name string) *Basic {
	return universe[name]
}
