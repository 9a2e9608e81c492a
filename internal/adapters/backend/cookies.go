package backend

import (
	"net/http"
	"sort"
	"strings"
)

// mergeSetCookies aplica los Set-Cookie de una respuesta sobre el header
// Cookie guardado ("a=1; b=2"). Cookies vencidas se quitan.
func mergeSetCookies(current string, h http.Header) (string, bool) {
	set := (&http.Response{Header: h}).Cookies()
	if len(set) == 0 {
		return current, false
	}

	jar := parseCookieHeader(current)
	for _, c := range set {
		if c.MaxAge < 0 || c.Value == "" {
			delete(jar, c.Name)
			continue
		}
		jar[c.Name] = c.Value
	}

	merged := formatCookieHeader(jar)
	return merged, merged != current
}

func parseCookieHeader(v string) map[string]string {
	out := map[string]string{}
	for _, part := range strings.Split(v, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || name == "" {
			continue
		}
		out[name] = value
	}
	return out
}

func formatCookieHeader(jar map[string]string) string {
	names := make([]string, 0, len(jar))
	for name := range jar {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+jar[name])
	}
	return strings.Join(parts, "; ")
}
