package hashset

// NextPrime returns the smallest odd prime that is greater than or equal to n.
func NextPrime(n int) int {
	if n%2 == 0 {
		n++
	}

	for !IsPrime(n) {
		n += 2
	}

	return n
}

// IsPrime returns true if n is prime.
func IsPrime(n int) bool {
	if n == 2 || n == 3 {
		return true
	}

	if n < 2 || n%2 == 0 {
		return false
	}

	for i := 3; i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}

	return true
}
