package pointer

// Smoother is a fixed-capacity ring of recent mapped positions whose output
// is the arithmetic mean of its contents. It is cleared only on hand loss
// so smoothing persists across frames.
type Smoother struct {
	buf   []Point
	size  int
	next  int
	count int
}

// NewSmoother creates a Smoother holding up to size samples.
// Sizes below 1 are treated as 1.
func NewSmoother(size int) *Smoother {
	if size < 1 {
		size = 1
	}
	return &Smoother{buf: make([]Point, size), size: size}
}

// Push adds a sample and returns the mean of the buffered samples.
func (s *Smoother) Push(p Point) Point {
	s.buf[s.next] = p
	s.next = (s.next + 1) % s.size
	if s.count < s.size {
		s.count++
	}
	return s.mean()
}

func (s *Smoother) mean() Point {
	var sum Point
	for i := 0; i < s.count; i++ {
		sum.X += s.buf[i].X
		sum.Y += s.buf[i].Y
	}
	return Point{X: sum.X / float64(s.count), Y: sum.Y / float64(s.count)}
}

// Len returns the number of buffered samples.
func (s *Smoother) Len() int {
	return s.count
}

// Size returns the buffer capacity.
func (s *Smoother) Size() int {
	return s.size
}

// Reset clears the buffer.
func (s *Smoother) Reset() {
	s.next = 0
	s.count = 0
}

// Resize changes the capacity, preserving the most recent samples that fit.
// A no-op when the size is unchanged.
func (s *Smoother) Resize(size int) {
	if size < 1 {
		size = 1
	}
	if size == s.size {
		return
	}

	recent := s.recent()
	if len(recent) > size {
		recent = recent[len(recent)-size:]
	}

	s.buf = make([]Point, size)
	s.size = size
	s.next = 0
	s.count = 0
	for _, p := range recent {
		s.buf[s.next] = p
		s.next = (s.next + 1) % s.size
		s.count++
	}
	s.next = s.next % s.size
}

// recent returns the buffered samples oldest-first.
func (s *Smoother) recent() []Point {
	out := make([]Point, 0, s.count)
	if s.count < s.size {
		out = append(out, s.buf[:s.count]...)
		return out
	}
	for i := 0; i < s.size; i++ {
		out = append(out, s.buf[(s.next+i)%s.size])
	}
	return out
}
