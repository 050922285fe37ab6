package utils

// Set implements a set for the key type K, built on top of a map.
type Set[K comparable] map[K]struct{}

// MakeSet returns an empty Set of the given type, with the given capacity hint.
func MakeSet[K comparable](size ...int) Set[K] {
	if len(size) == 0 {
		return make(Set[K])
	}
	return make(Set[K], size[0])
}

// SetWith returns a Set with the given elements inserted.
func SetWith[K comparable](elements ...K) Set[K] {
	s := MakeSet[K](len(elements))
	for _, element := range elements {
		s.Insert(element)
	}
	return s
}

// Has returns whether the key is present in the set.
func (s Set[K]) Has(key K) bool {
	_, found := s[key]
	return found
}

// Insert the given keys into the set.
func (s Set[K]) Insert(keys ...K) {
	for _, key := range keys {
		s[key] = struct{}{}
	}
}
