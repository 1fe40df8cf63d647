package transform_test

import (
	"strings"
	"testing"

	"github.com/Gobd/valerror/transform"
	"github.com/stretchr/testify/assert"
)

type tfAddress struct {
	Street string
	Lines  [2]string
}

type tfUser struct {
	Name      string
	Nick      *string
	Addresses []tfAddress
	Primary   *tfAddress
	Extra     any
	Labels    map[string]string
	secret    string
}

func TestTrimSpace(t *testing.T) {
	nick := " nick "
	extra := &tfAddress{Street: " x "}
	u := &tfUser{
		Name:      " Ann ",
		Nick:      &nick,
		Addresses: []tfAddress{{Street: " 1 Main ", Lines: [2]string{" a", "b "}}},
		Primary:   &tfAddress{Street: "\t2 Main\n"},
		Extra:     extra,
		Labels:    map[string]string{"k": " v "},
		secret:    " s ",
	}

	transform.TrimSpace(u)

	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "nick", nick)
	assert.Equal(t, "1 Main", u.Addresses[0].Street)
	assert.Equal(t, [2]string{"a", "b"}, u.Addresses[0].Lines)
	assert.Equal(t, "2 Main", u.Primary.Street)
	assert.Equal(t, "x", extra.Street)
	assert.Equal(t, " v ", u.Labels["k"])
	assert.Equal(t, " s ", u.secret)
}

func TestStringFunc(t *testing.T) {
	u := &tfUser{Name: "Ann", Addresses: []tfAddress{{Street: "Main"}}}
	transform.StringFunc(u, strings.ToUpper)
	assert.Equal(t, "ANN", u.Name)
	assert.Equal(t, "MAIN", u.Addresses[0].Street)
}

func TestStringFunc_IgnoresNonPointers(t *testing.T) {
	u := tfUser{Name: " Ann "}
	transform.TrimSpace(u)
	assert.Equal(t, " Ann ", u.Name)

	var nilUser *tfUser
	transform.TrimSpace(nilUser)
	transform.TrimSpace(nil)

	s := " plain "
	transform.TrimSpace(&s)
	assert.Equal(t, "plain", s)
}
