// Package spec implements composable predicates ("specifications") and a
// lazy filter over any item type.
//
// Atomic specifications test a single attribute of a model.Product. And and
// Or combine any number of specifications into a new one, so compositions
// chain freely:
//
//	largeBlue := spec.And(spec.SizeIs(model.SizeLarge), spec.ColorIs(model.ColorBlue))
//	for p := range spec.Filter(slices.Values(products), largeBlue) {
//	    fmt.Println(p.Name())
//	}
//
// An And with no children is always satisfied; an Or with no children never
// is.
package spec
