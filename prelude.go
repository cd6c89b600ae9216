// prelude.go
//
// The default prelude: macros written in the language itself that the
// base vocabulary expects to exist. `fuzzent` backs the `@` prefix; it
// takes a literal from the stack and leaves the entities whose names
// fuzzy-match it.
package fyfth

const DefaultPrelude = `
# word -> iter of entities whose name fuzzy-matches word
macro "fuzzent" entities dup name 3 rotl fuzzy filter ;
`

// LoadPrelude parses and runs src, typically DefaultPrelude, leaving its
// macro definitions in the variable environment.
func (it *Interp) LoadPrelude(src string, world World) error {
	if err := it.Parse(src); err != nil {
		return err
	}
	_, err := it.Run(world)
	return err
}
