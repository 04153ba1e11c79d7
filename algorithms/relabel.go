package algorithms

import "github.com/wstrand/gofst/fst"

// Relabel applies imap/omap over every transition's ilabel/olabel in
// place. A label absent from the map is left unchanged. A nil map is
// treated as the identity map for that side.
func Relabel(f *fst.VectorFst, imap, omap map[fst.Label]fst.Label) error {
	n := f.NumStates()
	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		trs := f.GetTrs(sid)
		if len(trs) == 0 {
			continue
		}
		for i := range trs {
			if imap != nil {
				if v, ok := imap[trs[i].Ilabel]; ok {
					trs[i].Ilabel = v
				}
			}
			if omap != nil {
				if v, ok := omap[trs[i].Olabel]; ok {
					trs[i].Olabel = v
				}
			}
		}
		if err := f.ReplaceTrs(sid, trs); err != nil {
			return err
		}
	}
	// Labels changed arbitrarily: sortedness, acceptor-ness and epsilon
	// bits are no longer reliably known except by full recomputation.
	f.SetProperties(f.Properties() &^ (fst.ILabelSorted | fst.NotILabelSorted | fst.OLabelSorted | fst.NotOLabelSorted |
		fst.Acceptor | fst.NotAcceptor | fst.IEpsilons | fst.NoIEpsilons | fst.OEpsilons | fst.NoOEpsilons))
	return nil
}
