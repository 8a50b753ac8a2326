package notes

import (
	"testing"

	"github.com/dmitrijs2005/micronotes/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func note(id models.NoteID, title string) models.Note {
	return models.Note{ID: id, Title: title, Body: title + " body"}
}

func filled(ns []models.Note) *Collection {
	c := &Collection{}
	c.Reset(ns)
	return c
}

func ids(c *Collection) []models.NoteID {
	var out []models.NoteID
	for _, n := range c.All() {
		out = append(out, n.ID)
	}
	return out
}

func TestZeroValueIsUsable(t *testing.T) {
	var c Collection
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.All())

	c.Prepend(note(1, "a"))
	assert.Equal(t, []models.NoteID{1}, ids(&c))
	assert.False(t, c.Replace(note(2, "b")))
	assert.False(t, c.Remove(2))
}

func TestReset_KeepsOrderAndDropsDuplicates(t *testing.T) {
	c := filled([]models.Note{note(3, "c"), note(2, "b"), note(3, "dup"), note(1, "a")})

	assert.Equal(t, []models.NoteID{3, 2, 1}, ids(c))
	n, ok := c.Get(3)
	require.True(t, ok)
	assert.Equal(t, "c", n.Title)
}

func TestPrepend(t *testing.T) {
	c := filled([]models.Note{note(2, "b"), note(1, "a")})

	c.Prepend(models.Note{ID: 7, Title: "Groceries", Body: "Milk, eggs"})
	assert.Equal(t, []models.NoteID{7, 2, 1}, ids(c))

	// an id already present moves to the front instead of repeating
	c.Prepend(note(1, "a2"))
	assert.Equal(t, []models.NoteID{1, 7, 2}, ids(c))
	n, _ := c.Get(1)
	assert.Equal(t, "a2", n.Title)
	assert.Equal(t, 3, c.Len())
}

func TestReplace_KeepsPosition(t *testing.T) {
	c := filled([]models.Note{note(3, "c"), note(2, "b"), note(1, "a")})

	require.True(t, c.Replace(models.Note{ID: 2, Title: "B", Body: "new"}))
	assert.Equal(t, []models.NoteID{3, 2, 1}, ids(c))

	n, ok := c.Get(2)
	require.True(t, ok)
	assert.Equal(t, models.Note{ID: 2, Title: "B", Body: "new"}, n)
}

func TestRemove_ReindexesTail(t *testing.T) {
	c := filled([]models.Note{note(4, "d"), note(3, "c"), note(2, "b"), note(1, "a")})

	require.True(t, c.Remove(3))
	assert.Equal(t, []models.NoteID{4, 2, 1}, ids(c))

	_, ok := c.Get(3)
	assert.False(t, ok)

	// index must still point at the shifted elements
	require.True(t, c.Replace(note(1, "A")))
	n, _ := c.Get(1)
	assert.Equal(t, "A", n.Title)
	require.True(t, c.Remove(1))
	assert.Equal(t, []models.NoteID{4, 2}, ids(c))
}

func TestAll_ReturnsCopy(t *testing.T) {
	c := filled([]models.Note{note(1, "a")})
	snap := c.All()
	snap[0].Title = "mutated"

	n, _ := c.Get(1)
	assert.Equal(t, "a", n.Title)
}

func TestRemove_DoesNotAliasEarlierSnapshot(t *testing.T) {
	c := filled([]models.Note{note(3, "c"), note(2, "b"), note(1, "a")})
	before := c.All()
	c.Remove(3)
	assert.Equal(t, []models.NoteID{3, 2, 1}, []models.NoteID{before[0].ID, before[1].ID, before[2].ID})
}

func TestClear(t *testing.T) {
	c := filled([]models.Note{note(1, "a"), note(2, "b")})
	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get(1)
	assert.False(t, ok)
	c.Prepend(note(5, "e"))
	assert.Equal(t, []models.NoteID{5}, ids(c))
}
