package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanImageURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"null string", "null", ""},
		{"https", "https://x/y.jpg", DefaultImageProxyPrefix + "x/y.jpg"},
		{"http", "http://www.superherodb.com/pictures2/portraits/10/100/639.jpg", DefaultImageProxyPrefix + "www.superherodb.com/pictures2/portraits/10/100/639.jpg"},
		{"scheme relative", "//cdn.example.com/a.png", DefaultImageProxyPrefix + "cdn.example.com/a.png"},
		{"upper case scheme", "HTTPS://x/y.jpg", DefaultImageProxyPrefix + "x/y.jpg"},
		{"no scheme", "x/y.jpg", DefaultImageProxyPrefix + "x/y.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanImageURL(tt.in))
		})
	}
}

func TestCleanImageURL_StripsScheme(t *testing.T) {
	got := CleanImageURL("https://x/y.jpg")
	assert.True(t, strings.HasPrefix(got, DefaultImageProxyPrefix))
	assert.Contains(t, got, "x/y.jpg")
	assert.NotContains(t, strings.TrimPrefix(got, DefaultImageProxyPrefix), "https://")
}

func TestCleanImageURL_Idempotent(t *testing.T) {
	once := CleanImageURL("https://x/y.jpg")
	assert.Equal(t, once, CleanImageURL(once))
}

func TestProxyImageURL_NoPrefixPassesThrough(t *testing.T) {
	assert.Equal(t, "https://x/y.jpg", ProxyImageURL("", "https://x/y.jpg"))
}

func TestCharacterCDNURL(t *testing.T) {
	assert.Equal(t, "", CharacterCDNURL(""))
	assert.Equal(t, "https://cdn.jsdelivr.net/gh/akabab/superhero-api@0.3.0/api/images/md/70.jpg", CharacterCDNURL("70"))
}
