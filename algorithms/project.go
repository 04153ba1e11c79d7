package algorithms

import "github.com/wstrand/gofst/fst"

// ProjectType selects which label Project overwrites the other with.
type ProjectType int

const (
	ProjectInput ProjectType = iota
	ProjectOutput
)

// Project overwrites one label with the other on every transition. The
// result is always an Acceptor.
func Project(f *fst.VectorFst, typ ProjectType) error {
	n := f.NumStates()
	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		trs := f.GetTrs(sid)
		if len(trs) == 0 {
			continue
		}
		if err := f.ReplaceTrs(sid, projectTrs(trs, typ)); err != nil {
			return err
		}
	}
	f.SetProperties((f.Properties() &^ fst.NotAcceptor) | fst.Acceptor)
	return nil
}

func projectTrs(trs []fst.Tr, typ ProjectType) []fst.Tr {
	out := make([]fst.Tr, len(trs))
	for i, tr := range trs {
		if typ == ProjectInput {
			tr.Olabel = tr.Ilabel
		} else {
			tr.Ilabel = tr.Olabel
		}
		out[i] = tr
	}
	return out
}
