package config

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New([]byte("my raw passphrase"))
	b := New([]byte("my raw passphrase"))
	assert.Equal(t, a.Key(), b.Key())
}

func TestNewDifferentKeysDiffer(t *testing.T) {
	a := New([]byte("passphrase one"))
	b := New([]byte("passphrase two"))
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestNewFromBase64Roundtrip(t *testing.T) {
	raw := []byte("arbitrary length raw key material")
	encoded := base64.RawStdEncoding.EncodeToString(raw)

	cfg, err := NewFromBase64(encoded)
	assert.Nil(t, err)
	assert.Equal(t, New(raw).Key(), cfg.Key())
}

func TestNewFromBase64InvalidInput(t *testing.T) {
	_, err := NewFromBase64("not valid base64!!")
	assert.NotNil(t, err)
}

func TestNewFromStringMatchesNew(t *testing.T) {
	raw := "my raw passphrase held as a string"
	assert.Equal(t, New([]byte(raw)).Key(), NewFromString(raw).Key())
}
