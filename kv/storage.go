package kv

type Pair struct {
	Key, Value string
}

// Storage is an associative structure for storing (string, string) pairs. It acts as a map
// but uses linear search instead, which proves to be more efficient on the relatively low
// amount of entries a single request carries. Unlike a map, it remembers insertion order.
//
// Keys are compared exactly as received, case included. Set overwrites an already present
// key, so on duplicates the last written value wins.
type Storage struct {
	pairs []Pair
}

func New() *Storage {
	return new(Storage)
}

// NewPrealloc returns an instance of Storage with pre-allocated underlying storage.
func NewPrealloc(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
	}
}

// Set inserts a new pair or replaces the value of an existing key.
func (s *Storage) Set(key, value string) *Storage {
	for i, pair := range s.pairs {
		if pair.Key == key {
			s.pairs[i].Value = value
			return s
		}
	}

	s.pairs = append(s.pairs, Pair{
		Key:   key,
		Value: value,
	})

	return s
}

// Value returns the value corresponding to the key. Otherwise, empty string is returned.
func (s *Storage) Value(key string) string {
	return s.ValueOr(key, "")
}

// ValueOr returns either the value corresponding to the key or a custom fallback, defined
// via the second parameter.
func (s *Storage) ValueOr(key, or string) string {
	value, found := s.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns a value and a bool, indicating whether the key was found. If it wasn't,
// the value is an empty string.
func (s *Storage) Get(key string) (value string, found bool) {
	for _, pair := range s.pairs {
		if pair.Key == key {
			return pair.Value, true
		}
	}

	return "", false
}

// Has tells whether the key is present.
func (s *Storage) Has(key string) bool {
	_, found := s.Get(key)
	return found
}

// Keys returns all keys in insertion order.
func (s *Storage) Keys() []string {
	keys := make([]string, len(s.pairs))
	for i, pair := range s.pairs {
		keys[i] = pair.Key
	}

	return keys
}

// Pairs returns the underlying pairs in insertion order. The returned slice must not
// be modified.
func (s *Storage) Pairs() []Pair {
	return s.pairs
}

// Len returns the number of stored pairs.
func (s *Storage) Len() int {
	return len(s.pairs)
}

// Clear all the stored pairs, keeping the underlying storage for re-use.
func (s *Storage) Clear() *Storage {
	s.pairs = s.pairs[:0]
	return s
}
