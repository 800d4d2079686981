package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser(t *testing.T) {
	t.Run("Password hashing", func(t *testing.T) {
		u := User{Username: "bob"}
		require.NoError(t, u.SetPassword("sunset-pw"))

		assert.NotEmpty(t, u.PasswordHash)
		assert.NotEqual(t, "sunset-pw", u.PasswordHash)
		assert.True(t, u.CheckPassword("sunset-pw"))
		assert.False(t, u.CheckPassword("wrong"))
	})

	t.Run("Same password salts differently", func(t *testing.T) {
		a, b := User{}, User{}
		require.NoError(t, a.SetPassword("pw"))
		require.NoError(t, b.SetPassword("pw"))
		assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
	})

	t.Run("Password too long", func(t *testing.T) {
		u := User{}
		assert.Error(t, u.SetPassword(strings.Repeat("A", 100)))
	})

	t.Run("Flat permissions", func(t *testing.T) {
		u := User{}
		assert.True(t, u.HasPerm("photoshare.delete_post", nil))
		assert.True(t, u.HasModulePerms("photoshare"))
		assert.False(t, u.IsStaff())

		u.IsAdmin = true
		assert.True(t, u.IsStaff())
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "@bob", User{Username: "bob"}.String())
	})
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "Bob@example.com", NormalizeEmail("  Bob@EXAMPLE.Com "))
	assert.Equal(t, "a@b@example.org", NormalizeEmail("a@b@Example.ORG"))
	assert.Equal(t, "no-at-sign", NormalizeEmail("no-at-sign"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestStringForms(t *testing.T) {
	bob := User{Username: "bob"}
	post := Post{Title: "Sunset", Author: bob}

	assert.Equal(t, "Sunset by @bob", post.String())
	assert.Equal(t, "Trips by @bob", Collection{Title: "Trips", Author: bob}.String())
	assert.Equal(t, "gallery Summer by @bob", Gallery{Title: "Summer", Author: bob}.String())
	assert.Equal(t, "comment to post 'Sunset by @bob' by @carol",
		Comment{Post: post, Author: User{Username: "carol"}}.String())
}

func TestGalleryWindow(t *testing.T) {
	open := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	g := Gallery{TimeOpen: open, TimeClose: open.Add(2 * time.Hour)}

	t.Run("IsOpenAt", func(t *testing.T) {
		assert.False(t, g.IsOpenAt(open.Add(-time.Second)))
		assert.True(t, g.IsOpenAt(open))
		assert.True(t, g.IsOpenAt(open.Add(time.Hour)))
		assert.True(t, g.IsOpenAt(open.Add(2*time.Hour)))
		assert.False(t, g.IsOpenAt(open.Add(3*time.Hour)))
	})

	t.Run("Admits", func(t *testing.T) {
		assert.True(t, g.Admits(1000))

		limit := 2
		g.LimitVisitors = &limit
		assert.True(t, g.Admits(1))
		assert.False(t, g.Admits(2))
	})
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "likes", Liked{}.TableName())
}
