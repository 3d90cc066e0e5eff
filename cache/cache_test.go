package cache

import (
	"testing"

	"github.com/matryer/is"

	"github.com/Nikque/Edaxbook-findmismatch-error-check/book"
)

func TestLoadCachesByPath(t *testing.T) {
	is := is.New(t)
	CreateGlobalBookCache()

	calls := 0
	loader := func(path string) (*book.Store, error) {
		calls++
		return book.NewStore(), nil
	}

	s1, err := Load("a.dat", loader)
	is.NoErr(err)
	s2, err := Load("a.dat", loader)
	is.NoErr(err)
	is.Equal(calls, 1)
	is.True(s1 == s2)
}

func TestLoadDistinguishesPaths(t *testing.T) {
	is := is.New(t)
	CreateGlobalBookCache()

	calls := 0
	loader := func(path string) (*book.Store, error) {
		calls++
		return book.NewStore(), nil
	}

	_, err := Load("a.dat", loader)
	is.NoErr(err)
	_, err = Load("b.dat", loader)
	is.NoErr(err)
	is.Equal(calls, 2)
}
