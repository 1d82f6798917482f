package chess

// Direction is a compass step on the board. North is increasing rank.
type Direction uint8

// Directions.
const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionDeltas = [...][2]int{
	North:     {0, 1},
	NorthEast: {1, 1},
	East:      {1, 0},
	SouthEast: {1, -1},
	South:     {0, -1},
	SouthWest: {-1, -1},
	West:      {-1, 0},
	NorthWest: {-1, 1},
}

var directionNames = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

var (
	orthogonals = []Direction{North, East, South, West}
	diagonals   = []Direction{NorthEast, SouthEast, SouthWest, NorthWest}
	everyWay    = []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
)

// Delta returns the file and rank offsets of one step.
// An unknown direction has no offset.
func (d Direction) Delta() (int, int) {
	if !d.valid() {
		return 0, 0
	}
	delta := directionDeltas[d]
	return delta[0], delta[1]
}

func (d Direction) valid() bool {
	return int(d) < len(directionDeltas)
}

func (d Direction) String() string {
	if !d.valid() {
		return "?"
	}
	return directionNames[d]
}
