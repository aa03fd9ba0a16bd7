package monitor

// DefaultCapacity is the number of samples the live graph keeps (one minute at 1s).
const DefaultCapacity = 60

// Point is one sample in a series.
type Point struct {
	Tick  int
	Value float64
}

// Series is a fixed-capacity sliding window of samples backed by a ring
// buffer. Once full, each Push evicts the oldest sample. A Series belongs to
// a single live-graph session and is not safe for concurrent use.
type Series struct {
	data  []Point
	head  int
	count int
	size  int
}

// NewSeries creates a series with the given capacity (DefaultCapacity if <= 0).
func NewSeries(capacity int) *Series {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Series{
		data: make([]Point, capacity),
		size: capacity,
	}
}

// Push appends a sample, evicting the oldest one when the series is full.
func (s *Series) Push(tick int, value float64) {
	s.data[s.head] = Point{Tick: tick, Value: value}
	s.head = (s.head + 1) % s.size
	if s.count < s.size {
		s.count++
	}
}

// Len returns the number of stored samples.
func (s *Series) Len() int {
	return s.count
}

// Cap returns the series capacity.
func (s *Series) Cap() int {
	return s.size
}

// Points returns the stored samples in arrival order (oldest first).
func (s *Series) Points() []Point {
	if s.count == 0 {
		return nil
	}

	result := make([]Point, s.count)

	// head is the next write position, so the oldest sample sits count slots behind it.
	start := (s.head - s.count + s.size) % s.size
	for i := 0; i < s.count; i++ {
		result[i] = s.data[(start+i)%s.size]
	}
	return result
}

// Ticks returns the stored tick indices, oldest first.
func (s *Series) Ticks() []int {
	points := s.Points()
	if points == nil {
		return nil
	}
	ticks := make([]int, len(points))
	for i, p := range points {
		ticks[i] = p.Tick
	}
	return ticks
}

// Values returns the stored values, oldest first.
func (s *Series) Values() []float64 {
	points := s.Points()
	if points == nil {
		return nil
	}
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return values
}

// Latest returns the most recent sample.
func (s *Series) Latest() (Point, bool) {
	if s.count == 0 {
		return Point{}, false
	}
	return s.data[(s.head-1+s.size)%s.size], true
}

// Reset drops all samples.
func (s *Series) Reset() {
	s.head = 0
	s.count = 0
}
