package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		q := Parse("")
		assert.True(t, q.IsEmpty())
	})

	t.Run("id exact", func(t *testing.T) {
		q := Parse("id:42")
		require.NotNil(t, q.ID)
		assert.Equal(t, uint(42), *q.ID)
		assert.Empty(t, q.Text)
	})

	t.Run("name and email combinable", func(t *testing.T) {
		q := Parse("name:Ann email:a@b.com")
		assert.Equal(t, "Ann", q.Name)
		assert.Equal(t, "a@b.com", q.Email)
		assert.Nil(t, q.ID)
		assert.Empty(t, q.Text)
	})

	t.Run("bare text", func(t *testing.T) {
		q := Parse("  ann  smith ")
		assert.Equal(t, "ann smith", q.Text)
		assert.Nil(t, q.ID)
	})

	t.Run("mixed prefixed and bare", func(t *testing.T) {
		q := Parse("name:Ann 9876")
		assert.Equal(t, "Ann", q.Name)
		assert.Equal(t, "9876", q.Text)
	})

	t.Run("non numeric id treated as text", func(t *testing.T) {
		q := Parse("id:abc")
		assert.Nil(t, q.ID)
		assert.Equal(t, "id:abc", q.Text)
	})

	t.Run("unknown prefix treated as text", func(t *testing.T) {
		q := Parse("phone:12345")
		assert.Equal(t, "phone:12345", q.Text)
	})

	t.Run("prefix case insensitive", func(t *testing.T) {
		q := Parse("NAME:ann")
		assert.Equal(t, "ann", q.Name)
	})

	t.Run("email value keeps colon-free form", func(t *testing.T) {
		q := Parse("email:Ann@Example.com")
		assert.Equal(t, "Ann@Example.com", q.Email)
	})
}
