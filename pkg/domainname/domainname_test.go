package domainname

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
	}{
		{"", ""},
		{"   ", ""},
		{"Shop.Example.COM", "shop.example.com"},
		{"  https://Shop.example.com/path?q=1 ", "shop.example.com"},
		{"http://shop.example.com:8080/", "shop.example.com"},
		{"shop.example.com.", "shop.example.com"},
		{"shop.example.com..", "shop.example.com"},
		{"shop.example.com:443", "shop.example.com"},
		{"ftp://shop.example.com", "ftp"},
		{"https://", ""},
		{"acme.platform.io. ", "acme.platform.io"},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, Normalize(c.raw), "raw input %q", c.raw)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	f := func(raw string) bool {
		once := Normalize(raw)
		return Normalize(once) == once
	}
	assert.NoError(t, quick.Check(f, &quick.Config{MaxCount: 2000}))

	for _, raw := range []string{"http://http://x.io", "HTTPS://a.b.c.:99/..", " . . ", "a. ."} {
		once := Normalize(raw)
		assert.Equal(t, once, Normalize(once), "raw input %q", raw)
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"example.com", "shop.example.com", "a-b.example.co", "x1.io", "xn--bcher-kva.example"}
	for _, d := range valid {
		assert.True(t, IsValid(d), d)
	}
	invalid := []string{"", "localhost", "-shop.example.com", "shop-.example.com", "shop..example.com",
		"shop.example.c", "shop.example.123", "shop_example.com", "Shop.example.com", "shop.example.com."}
	for _, d := range invalid {
		assert.False(t, IsValid(d), d)
	}
}

func TestIsWithin(t *testing.T) {
	assert.True(t, IsWithin("platform.io", "platform.io"))
	assert.True(t, IsWithin("acme.platform.io", "platform.io"))
	assert.True(t, IsWithin("https://Deep.Acme.Platform.io/", "platform.io."))
	assert.False(t, IsWithin("notplatform.io", "platform.io"))
	assert.False(t, IsWithin("platform.io.evil.com", "platform.io"))
	assert.False(t, IsWithin("shop.example.com", ""))
}

func TestFirstLabel(t *testing.T) {
	label, ok := FirstLabel("ACME.platform.io", "platform.io")
	assert.True(t, ok)
	assert.Equal(t, "acme", label)

	_, ok = FirstLabel("deep.acme.platform.io", "platform.io")
	assert.False(t, ok)
	_, ok = FirstLabel("platform.io", "platform.io")
	assert.False(t, ok)
	_, ok = FirstLabel("acme.example.com", "platform.io")
	assert.False(t, ok)
}
