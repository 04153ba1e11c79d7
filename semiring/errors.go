package semiring

import (
	"github.com/wstrand/gofst/ferr"
)

func divideByZeroErr(semiringName string) error {
	return ferr.Newf(ferr.Semiring, "semiring: divide by zero in %s semiring", semiringName)
}

func notDivisibleErr(semiringName string) error {
	return ferr.Newf(ferr.Semiring, "semiring: %s semiring is not weakly divisible", semiringName)
}
