package digest

import (
	"sort"

	"otoran/internal/domain"
)

// Collections maps a collection word to its search definition. It is built once
// at startup and only read afterwards.
type Collections map[string]domain.Collection

// DefaultCollections returns the collections served by the site
func DefaultCollections() Collections {
	return NewCollections(
		domain.Collection{Word: "otomad", Query: "音MAD", Name: "音MAD"},
		domain.Collection{Word: "ytpmv", Query: "YTPMV", Name: "YTPMV"},
		domain.Collection{Word: "otomad-title", Query: "音MAD", Targets: "title", Name: "タイトルに音MADを含む動画"},
	)
}

// NewCollections indexes collections by word
func NewCollections(collections ...domain.Collection) Collections {
	c := make(Collections, len(collections))
	for _, collection := range collections {
		c[collection.Word] = collection
	}
	return c
}

// Lookup returns the collection for word
func (c Collections) Lookup(word string) (domain.Collection, bool) {
	collection, ok := c[word]
	return collection, ok
}

// List returns all collections sorted by word
func (c Collections) List() []domain.Collection {
	list := make([]domain.Collection, 0, len(c))
	for _, collection := range c {
		list = append(list, collection)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Word < list[j].Word
	})
	return list
}
