package utils

import "strings"

// DefaultImageProxyPrefix routes images through a resizing proxy so the
// front-end never hotlinks the upstream hosts directly.
const DefaultImageProxyPrefix = "https://images.weserv.nl/?url="

// CharacterCDNURL is the static image mirror for superhero api ids, used
// when the upstream record has no image of its own.
func CharacterCDNURL(id string) string {
	if strings.TrimSpace(id) == "" {
		return ""
	}
	return "https://cdn.jsdelivr.net/gh/akabab/superhero-api@0.3.0/api/images/md/" + id + ".jpg"
}

// CleanImageURL proxies raw through the default image proxy.
func CleanImageURL(raw string) string {
	return ProxyImageURL(DefaultImageProxyPrefix, raw)
}

// ProxyImageURL strips the scheme from raw and prefixes it with the proxy's
// url parameter. Empty input gives "", already proxied input is unchanged.
func ProxyImageURL(prefix, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return ""
	}
	if prefix == "" || strings.HasPrefix(raw, prefix) {
		return raw
	}

	stripped := raw
	for _, scheme := range []string{"https://", "http://", "//"} {
		if len(stripped) >= len(scheme) && strings.EqualFold(stripped[:len(scheme)], scheme) {
			stripped = stripped[len(scheme):]
			break
		}
	}
	return prefix + stripped
}
