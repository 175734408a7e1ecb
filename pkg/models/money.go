package models

import "fmt"

// Cents is a fixed-point currency amount in centavos. All ledger arithmetic is
// integral; floats never touch a monetary value.
type Cents int64

// BasisPoints expresses a commission percentage in hundredths of a percent,
// so 20% == 2000 bp and 12.5% == 1250 bp.
type BasisPoints int64

// String renders the amount as a decimal currency string, e.g. 2450 -> "24.50".
func (c Cents) String() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// ApplyPercentage computes round-half-up(c * bp / 10000). This is the single
// rounding rule for all commission math.
func (c Cents) ApplyPercentage(bp BasisPoints) Cents {
	if c <= 0 || bp <= 0 {
		return 0
	}
	return Cents((int64(c)*int64(bp) + 5000) / 10000)
}

// SplitCommission divides a delivery total into the driver share and the
// platform commission. The two always sum back to the total: the commission is
// rounded once and the driver share is the exact remainder.
func (c Cents) SplitCommission(bp BasisPoints) (driver, commission Cents) {
	commission = c.ApplyPercentage(bp)
	if commission > c {
		commission = c
	}
	return c - commission, commission
}
