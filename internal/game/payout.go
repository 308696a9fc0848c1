package game

import "math/rand/v2"

// DividePot splits pot into n shares that sum to pot exactly. The chips
// left over by integer division go one each to distinct shares chosen
// uniformly at random.
func DividePot(pot, n int, rng *rand.Rand) []int {
	if n <= 0 {
		return nil
	}
	shares := make([]int, n)
	for i := range shares {
		shares[i] = pot / n
	}

	remainder := pot % n
	if remainder == 0 {
		return shares
	}
	perm := rand.Perm
	if rng != nil {
		perm = rng.Perm
	}
	for _, i := range perm(n)[:remainder] {
		shares[i]++
	}
	return shares
}
