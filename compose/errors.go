package compose

import "github.com/wstrand/gofst/ferr"

// ErrAmbiguousPriority is returned when both sides' matchers report
// RequirePriority for the same state pair, so MatchComposeFilter cannot
// pick a side.
var ErrAmbiguousPriority = ferr.New(ferr.Invariant, "compose: both matchers require priority on the same state pair")
