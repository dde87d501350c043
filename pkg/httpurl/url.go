// Package httpurl implements the generic URI model used to address and
// rewrite HTTP requests: parsing into (scheme, user, password, host, port,
// path, fragment), merging a relative reference against a base, and the two
// path/query helpers consumed by request dispatch. Grounded on afl::net::Url
// (afl/net/url.{hpp,cpp}).
package httpurl

import (
	"strconv"
	"strings"

	"github.com/stefanreuther/afl-sub002/pkg/header"
)

// Url holds the components of a parsed URI. All fields except Path are
// percent-decoded; Path is kept verbatim, still percent-encoded. String
// reconstructs a URI from them without re-encoding
// (matching the source's own documented FIXME).
type Url struct {
	Scheme   string
	User     string
	Password string
	Host     string
	Port     string
	Path     string
	Fragment string
}

func (u *Url) clear() {
	*u = Url{}
}

// Parse decodes s into u, replacing any previous contents. It reports
// whether s was syntactically valid; on failure u's contents are undefined
// (the source leaves them partially overwritten, so we preserve that rather
// than rolling back).
func (u *Url) Parse(s string) bool {
	u.clear()

	n := strings.IndexAny(s, "@:/#")
	if n >= 0 && n != 0 && s[n] == ':' {
		u.Scheme = percentDecode(s[:n])
		n++
	} else {
		n = 0
	}

	var forceRoot bool
	if len(s)-n >= 2 && s[n:n+2] == "//" {
		n += 2

		atPos := indexFrom(s, '@', n)
		if atPos == n {
			return false
		}
		if atPos >= 0 {
			colonPos := indexFrom(s, ':', n)
			if colonPos == n {
				return false
			}
			if colonPos >= 0 && colonPos < atPos {
				u.User = percentDecode(s[n:colonPos])
				u.Password = percentDecode(s[colonPos+1 : atPos])
			} else {
				u.User = percentDecode(s[n:atPos])
				u.Password = ""
			}
			n = atPos + 1
		} else {
			u.User = ""
			u.Password = ""
		}

		if n < len(s) && s[n] == '[' {
			bracketPos := indexFrom(s, ']', n)
			if bracketPos < 0 || bracketPos == n {
				return false
			}
			u.Host = percentDecode(s[n+1 : bracketPos])
			n = bracketPos + 1
			if n < len(s) && s[n] != ':' && s[n] != '/' && s[n] != '#' {
				return false
			}
		} else {
			endPos := strings.IndexAny(s[n:], ":/#?")
			if endPos >= 0 {
				endPos += n
				u.Host = percentDecode(s[n:endPos])
				n = endPos
			} else {
				u.Host = percentDecode(s[n:])
				n = len(s)
			}
		}

		if n < len(s) && s[n] == ':' {
			n++
			portEnd := n
			for portEnd < len(s) && s[portEnd] >= '0' && s[portEnd] <= '9' {
				portEnd++
			}
			if portEnd == n {
				return false
			}
			u.Port = percentDecode(s[n:portEnd])
			n = portEnd
			if n < len(s) && s[n] != '/' && s[n] != '#' && s[n] != '?' {
				return false
			}
		}

		forceRoot = true
	} else {
		forceRoot = false
	}

	if fragPos := strings.IndexByte(s[n:], '#'); fragPos >= 0 {
		fragPos += n
		u.Path = s[n:fragPos]
		u.Fragment = percentDecode(s[fragPos:])
	} else {
		u.Path = s[n:]
		u.Fragment = ""
	}

	if forceRoot && (u.Path == "" || u.Path[0] != '/') {
		u.Path = "/" + u.Path
	}
	return true
}

// indexFrom returns the index of the first occurrence of c in s at or after
// from, or -1.
func indexFrom(s string, c byte, from int) int {
	i := strings.IndexByte(s[from:], c)
	if i < 0 {
		return -1
	}
	return i + from
}

// MergeFrom fills in components of u that are empty/absent from other,
// following RFC-1808-style relative resolution: scheme, then
// host+user+password+port as a block, then path. The fragment is never
// merged.
func (u *Url) MergeFrom(other *Url) {
	keep := false

	if u.Scheme == "" {
		u.Scheme = other.Scheme
	} else {
		keep = true
	}

	if u.Host == "" && !keep {
		u.Host = other.Host
		u.Port = other.Port
		u.User = other.User
		u.Password = other.Password
	} else {
		keep = true
	}

	if !keep {
		switch {
		case u.Path != "" && u.Path[0] == '/':
			// absolute path, keep
		case u.Path == "":
			u.Path = other.Path
		default:
			u.Path = mergePath(other.Path, u.Path)
		}
	}
}

// IsNull reports whether the URL carries no information at all.
func (u *Url) IsNull() bool {
	return u.Scheme == "" && u.Path == "" && u.Fragment == ""
}

// IsValid reports whether the URL has at least a scheme and a path.
func (u *Url) IsValid() bool {
	return u.Scheme != "" && u.Path != ""
}

// IsValidId reports whether the URL identifies a local resource with no
// associated host (e.g. "file:///etc/passwd" or an opaque urn).
func (u *Url) IsValidId() bool {
	return u.Scheme != "" && u.Path != "" && u.Host == ""
}

// IsValidHost reports whether the URL addresses a resource on a remote host.
func (u *Url) IsValidHost() bool {
	return u.Scheme != "" && u.Path != "" && u.Host != ""
}

// HostPort returns the host, and the port if one was given, service
// otherwise — the pairing used to open a connection.
func (u *Url) HostPort(service string) (host, port string) {
	if u.Port != "" {
		return u.Host, u.Port
	}
	return u.Host, service
}

// String reconstructs a URI string from u's components. It does not
// re-percent-encode the components (matching the source's own documented
// limitation).
func (u *Url) String() string {
	var b strings.Builder
	if u.Scheme != "" {
		b.WriteString(u.Scheme)
		b.WriteByte(':')
	}
	if u.Host != "" {
		b.WriteString("//")
		if u.User != "" {
			b.WriteString(u.User)
			b.WriteByte(':')
			b.WriteString(u.Password)
			b.WriteByte('@')
		}
		if strings.ContainsRune(u.Host, ':') {
			b.WriteByte('[')
			b.WriteString(u.Host)
			b.WriteByte(']')
		} else {
			b.WriteString(u.Host)
		}
		if u.Port != "" {
			b.WriteByte(':')
			b.WriteString(u.Port)
		}
		if u.Path == "" || u.Path[0] != '/' {
			b.WriteByte('/')
		}
	}
	b.WriteString(u.Path)
	b.WriteString(u.Fragment)
	return b.String()
}

// MatchPath reports whether path either equals prefix exactly, or is
// prefix followed by '/' or '?'; suffix holds everything at and after that
// point.
func MatchPath(path, prefix string) (suffix string, ok bool) {
	if path == prefix {
		return "", true
	}
	if len(path) > len(prefix) && strings.HasPrefix(path, prefix) &&
		(path[len(prefix)] == '?' || path[len(prefix)] == '/') {
		return path[len(prefix):], true
	}
	return "", false
}

// MatchArguments splits the query string (if any) off *path, percent-decodes
// each "name=value" or bare "name" pair and delivers it to consumer, then
// trims the query string from *path.
func MatchArguments(path *string, consumer header.Consumer) {
	p := strings.IndexByte(*path, '?')
	if p < 0 {
		return
	}

	s := *path
	n := p
	for n < len(s) {
		n++ // skip the '?' or '&'

		end := strings.IndexByte(s[n:], '&')
		if end < 0 {
			end = len(s)
		} else {
			end += n
		}

		eqRel := strings.IndexByte(s[n:end], '=')
		switch {
		case eqRel >= 0:
			eq := n + eqRel
			consumer.HandleHeader(percentDecode(s[n:eq]), percentDecode(s[eq+1:end]))
		case end != n:
			consumer.HandleHeader(percentDecode(s[n:end]), "")
		}
		n = end
	}

	*path = s[:p]
}

// percentDecode decodes %XX escapes. Invalid escapes pass the '%' and
// following bytes through unchanged, matching permissive RFC 1630 decoders.
func percentDecode(s string) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
				b.WriteByte(byte(v))
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func mergePath(left, right string) string {
	result := left
	if n := strings.LastIndexByte(result, '/'); n >= 0 {
		result = result[:n+1]
	}

	n := 0
	for {
		p := strings.IndexByte(right[n:], '/')
		if p < 0 {
			break
		}
		p += n
		length := p - n
		switch {
		case length == 2 && right[n] == '.' && right[n+1] == '.':
			if len(result) >= 2 {
				if drop := strings.LastIndexByte(result[:len(result)-1], '/'); drop >= 0 {
					result = result[:drop+1]
				} else {
					result = "/"
				}
			} else {
				result = "/"
			}
		case length == 1 && right[n] == '.':
			// ignore
		default:
			result += right[n : p+1]
		}
		n = p + 1
	}

	rem := len(right) - n
	switch {
	case rem == 2 && right[n] == '.' && right[n+1] == '.':
		if len(result) >= 2 {
			if drop := strings.LastIndexByte(result[:len(result)-1], '/'); drop >= 0 {
				result = result[:drop]
			} else {
				result = "/"
			}
		} else {
			result = "/"
		}
	case rem == 1 && right[n] == '.':
		// ignore
	default:
		result += right[n:]
	}

	return result
}
