// Package notes holds the client-side note collection: an ordered sequence
// of notes keyed by id.
package notes

import "github.com/dmitrijs2005/micronotes/internal/client/models"

// Collection keeps notes in display order and indexes them by id. The zero
// value is an empty collection ready to use. Collection is not safe for
// concurrent use; the session guards it.
type Collection struct {
	items []models.Note
	index map[models.NoteID]int
}

// Reset replaces the contents with notes, keeping their order. When an id
// repeats, the first occurrence wins.
func (c *Collection) Reset(notes []models.Note) {
	c.items = make([]models.Note, 0, len(notes))
	c.index = make(map[models.NoteID]int, len(notes))
	for _, n := range notes {
		if _, dup := c.index[n.ID]; dup {
			continue
		}
		c.index[n.ID] = len(c.items)
		c.items = append(c.items, n)
	}
}

// Clear empties the collection.
func (c *Collection) Clear() {
	c.items = nil
	c.index = nil
}

// Prepend puts n at the front. A note already present under the same id is
// dropped from its old position.
func (c *Collection) Prepend(n models.Note) {
	items := make([]models.Note, 0, len(c.items)+1)
	items = append(items, n)
	for _, it := range c.items {
		if it.ID != n.ID {
			items = append(items, it)
		}
	}
	c.Reset(items)
}

// Replace swaps the note stored under n.ID for n, keeping its position.
// It reports false when no such note exists.
func (c *Collection) Replace(n models.Note) bool {
	i, ok := c.index[n.ID]
	if !ok {
		return false
	}
	c.items[i] = n
	return true
}

// Remove drops the note with id. It reports false when no such note exists.
func (c *Collection) Remove(id models.NoteID) bool {
	i, ok := c.index[id]
	if !ok {
		return false
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].ID] = j
	}
	return true
}

func (c *Collection) Get(id models.NoteID) (models.Note, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.Note{}, false
	}
	return c.items[i], true
}

// All returns a copy of the notes in display order.
func (c *Collection) All() []models.Note {
	out := make([]models.Note, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection) Len() int { return len(c.items) }
