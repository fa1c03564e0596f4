// Package cart holds the local shopping-cart store: an ordered list of
// lines behind a swappable persistence port. The DB carts in
// controllers/cart serve signed-in users; this store backs everything
// that lives outside a user row — guest carts on the server and the
// storefront client's own cart.
package cart

import "sync"

// Line is one book entry in a cart with its quantity. Book fields are
// snapshotted at add time.
type Line struct {
	BookID     uint    `json:"book_id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	CoverImage string  `json:"cover_image"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
}

// Persistence is the storage port behind a Store. Implementations must
// treat Load of missing state as an empty cart, not an error.
type Persistence interface {
	Load() ([]Line, error)
	Save(lines []Line) error
	Clear() error
}

// Store is an ordered collection of cart lines, at most one per book.
// Every mutation persists a full snapshot through the port. All
// operations are total: bad input degrades to a no-op, never an error.
type Store struct {
	mu    sync.Mutex
	lines []Line
	port  Persistence
}

// NewStore loads the persisted snapshot through p. Unreadable or
// unparsable state starts an empty cart.
func NewStore(p Persistence) *Store {
	s := &Store{port: p}
	if lines, err := p.Load(); err == nil {
		s.lines = lines
	}
	return s
}

// Add appends a new line with the given quantity, or increments the
// existing line for the same book. Quantities below 1 count as 1.
func (s *Store) Add(line Line, qty int) {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].BookID == line.BookID {
			s.lines[i].Quantity += qty
			s.persist()
			return
		}
	}
	line.Quantity = qty
	s.lines = append(s.lines, line)
	s.persist()
}

// UpdateQuantity sets the quantity for a book's line. A quantity of
// zero or less removes the line. Unknown books are ignored.
func (s *Store) UpdateQuantity(bookID uint, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].BookID != bookID {
			continue
		}
		if qty <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			s.lines[i].Quantity = qty
		}
		s.persist()
		return
	}
}

// Remove deletes the line for a book if present.
func (s *Store) Remove(bookID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].BookID == bookID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist()
			return
		}
	}
}

// Clear empties the cart, used after checkout confirmation.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	if s.port != nil {
		_ = s.port.Clear()
	}
}

// Lines returns the cart contents in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItems is the sum of quantities across all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is Σ(unit price × quantity) in the book's own currency unit.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, l := range s.lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// persist writes the current snapshot. Storage failures are swallowed:
// the in-memory cart stays authoritative for the session.
func (s *Store) persist() {
	if s.port == nil {
		return
	}
	snapshot := make([]Line, len(s.lines))
	copy(snapshot, s.lines)
	_ = s.port.Save(snapshot)
}
