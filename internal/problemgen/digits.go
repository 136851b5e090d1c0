package problemgen

// Column-wise carry/borrow simulation mirroring the standard written
// algorithms. These drive both the structural predicates during generation
// and the property tests.

// digitsOf returns the decimal digits of n, least significant first.
// digitsOf(0) returns [0].
func digitsOf(n int) []int {
	if n == 0 {
		return []int{0}
	}
	var ds []int
	for n > 0 {
		ds = append(ds, n%10)
		n /= 10
	}
	return ds
}

// numDigits returns the number of decimal digits in n (1 for 0).
func numDigits(n int) int {
	return len(digitsOf(n))
}

// pow10 returns 10^k for k >= 0.
func pow10(k int) int {
	p := 1
	for range k {
		p *= 10
	}
	return p
}

// countCarries simulates written addition of a and b and returns the number
// of columns that carry. A column carries iff its digit sum, including the
// incoming carry, is >= 10.
func countCarries(a, b int) int {
	carries, carry := 0, 0
	for a > 0 || b > 0 {
		if a%10+b%10+carry >= 10 {
			carries++
			carry = 1
		} else {
			carry = 0
		}
		a /= 10
		b /= 10
	}
	return carries
}

// countBorrows simulates written subtraction a - b (requires a >= b) and
// returns the number of columns that borrow. A column borrows iff the
// minuend digit, after satisfying an outgoing borrow, is smaller than the
// subtrahend digit.
func countBorrows(a, b int) int {
	borrows, borrow := 0, 0
	for a > 0 || b > 0 {
		if a%10-borrow < b%10 {
			borrows++
			borrow = 1
		} else {
			borrow = 0
		}
		a /= 10
		b /= 10
	}
	return borrows
}

// countProductCarries returns the number of single-digit products a_i * b_j
// that are >= 10, across every digit pair of a and b. This is the carry
// notion the multiplication skills constrain.
func countProductCarries(a, b int) int {
	count := 0
	for _, da := range digitsOf(a) {
		for _, db := range digitsOf(b) {
			if da*db >= 10 {
				count++
			}
		}
	}
	return count
}
