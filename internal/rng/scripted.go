package rng

// Scripted replays fixed sequences of draws. Once a sequence is exhausted it
// keeps returning zero values. Ints are reduced modulo n so a scripted value is
// always a legal draw.
//
// Scripted is meant for tests that need to force a particular combat outcome
// or generation result.
type Scripted struct {
	Ints   []int
	Floats []float64
}

// Intn returns the next scripted int, reduced into [0, n).
func (s *Scripted) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Float64 returns the next scripted float.
func (s *Scripted) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

// Constant always returns the same draws. Handy for pinning damage variance.
type Constant struct {
	Int   int
	Float float64
}

// Intn returns c.Int reduced into [0, n).
func (c Constant) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	v := c.Int % n
	if v < 0 {
		v += n
	}
	return v
}

// Float64 returns c.Float.
func (c Constant) Float64() float64 { return c.Float }
