package algorithms

import (
	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/visit"
)

// Connect removes every state not on some start-to-final path, in place.
//
// Steps:
//  1. If f has no start state, delete every state (the empty Fst is
//     trivially connected) and return.
//  2. Run visit.SCC from the start state to get Access/Coaccess per state.
//  3. Delete every state that is not both accessible and coaccessible.
//  4. Mark the result Accessible|Coaccessible.
func Connect(f *fst.VectorFst) error {
	start, ok := f.Start()
	if !ok {
		ids := make([]fst.StateId, f.NumStates())
		for i := range ids {
			ids[i] = fst.StateId(i)
		}
		return f.DeleteStates(ids)
	}
	scc := visit.SCC(f, start)
	var dead []fst.StateId
	for s := 0; s < f.NumStates(); s++ {
		id := fst.StateId(s)
		if !scc.Access[id] || !scc.Coaccess[id] {
			dead = append(dead, id)
		}
	}
	if len(dead) == 0 {
		f.SetProperties(f.Properties() | fst.Accessible | fst.Coaccessible)
		return nil
	}
	if err := f.DeleteStates(dead); err != nil {
		return err
	}
	f.SetProperties((f.Properties() &^ (fst.NotAccessible | fst.NotCoaccessible)) | fst.Accessible | fst.Coaccessible)
	return nil
}
