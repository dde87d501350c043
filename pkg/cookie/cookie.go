// Package cookie implements the HTTP cookie model (construction from a
// server Set-Cookie field, expiration and URL matching, cookies.txt
// serialization) and a thread-safe jar. Grounded on afl::net::http::Cookie
// and afl::net::http::CookieJar
// (afl/net/http/{cookie,cookiejar}.{hpp,cpp}).
package cookie

import (
	"strconv"
	"strings"
	"time"

	"github.com/stefanreuther/afl-sub002/pkg/header"
	"github.com/stefanreuther/afl-sub002/pkg/httpurl"
)

// Cookie is a single stored cookie.
type Cookie struct {
	Sequence uint32
	Name     string
	Value    string
	Host     string
	Path     string

	hostDomainMatch bool
	persistent      bool
	secure          bool
	expiration      time.Time
}

func directoryOf(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return "/"
	}
	dir := path[:idx+1]
	if dir == "" {
		return "/"
	}
	return dir
}

// New constructs a Cookie from a request URL, the current time, and a
// pre-parsed Set-Cookie header field (name = cookie name, value = cookie
// value and attributes).
func New(u *httpurl.Url, now time.Time, field header.Field) *Cookie {
	c := &Cookie{
		Name:  field.Name,
		Value: field.GetPrimaryValue(header.NoComments | header.NoQuotes),
		Host:  u.Host,
		Path:  directoryOf(u.Path),
	}

	var maxAgeSet bool
	field.EnumerateSecondaryValues(header.NoComments|header.NoQuotes, header.ConsumerFunc(func(name, value string) {
		switch strings.ToLower(name) {
		case "max-age":
			if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
				c.expiration = now.Add(time.Duration(secs) * time.Second)
				c.persistent = true
				maxAgeSet = true
			}
		case "expires":
			if !maxAgeSet {
				if t, ok := parseCookieDate(value); ok {
					c.expiration = t
					c.persistent = true
				}
			}
		case "domain":
			c.Host = strings.ToLower(value)
			c.hostDomainMatch = true
		case "path":
			if strings.HasPrefix(value, "/") {
				c.Path = value
			}
		case "secure":
			c.secure = true
		}
	}))

	// Some servers send an IP address with a port number in "Domain=" (an
	// unbracketed IPv6 literal is indistinguishable from this and gets
	// truncated the same way — a known quirk preserved verbatim from the
	// source library rather than special-cased away).
	if n := strings.LastIndexAny(c.Host, ":]"); n >= 0 && c.Host[n] == ':' {
		c.Host = c.Host[:n]
	}

	return c
}

// IsValid reports whether this is a well-formed cookie.
func (c *Cookie) IsValid() bool {
	return c.Name != "" && c.Host != "" && c.Path != "" && strings.HasPrefix(c.Path, "/")
}

// IsPersistent reports whether the cookie carries an expiration date.
func (c *Cookie) IsPersistent() bool { return c.persistent }

// IsExpired reports whether the cookie should be discarded as of now.
// Session cookies (no expiration) never expire.
func (c *Cookie) IsExpired(now time.Time) bool {
	return c.persistent && !now.Before(c.expiration)
}

func isIPLiteral(host string) bool {
	if strings.Contains(host, ":") {
		return true
	}
	allDigitsAndDots := true
	for i := 0; i < len(host); i++ {
		if host[i] != '.' && (host[i] < '0' || host[i] > '9') {
			allDigitsAndDots = false
			break
		}
	}
	return allDigitsAndDots && host != ""
}

// MatchURL reports whether this cookie should be sent with a request for u.
func (c *Cookie) MatchURL(u *httpurl.Url) bool {
	if !c.matchHost(u.Host) {
		return false
	}
	if !c.matchPath(u.Path) {
		return false
	}
	if c.secure && u.Scheme != "https" {
		return false
	}
	return true
}

func (c *Cookie) matchHost(reqHost string) bool {
	if reqHost == c.Host {
		return true
	}
	if !c.hostDomainMatch {
		return false
	}
	if len(reqHost) <= len(c.Host) {
		return false
	}
	if isIPLiteral(reqHost) {
		return false
	}
	if !strings.HasSuffix(reqHost, c.Host) {
		return false
	}
	prefixLen := len(reqHost) - len(c.Host)
	return reqHost[prefixLen-1] == '.' || strings.HasPrefix(c.Host, ".")
}

func (c *Cookie) matchPath(reqPath string) bool {
	if reqPath == c.Path {
		return true
	}
	if strings.HasPrefix(reqPath, c.Path) && len(reqPath) > len(c.Path) {
		rest := reqPath[len(c.Path):]
		if strings.HasSuffix(c.Path, "/") || rest[0] == '/' {
			return true
		}
	}
	// Tolerance: a request path one character shorter that would match
	// with an added trailing '/'.
	if len(reqPath)+1 == len(c.Path) && c.Path[len(c.Path)-1] == '/' && reqPath == c.Path[:len(c.Path)-1] {
		return true
	}
	return false
}

// MatchCookie reports whether c should replace other in a jar: same
// (host, path, name) identity.
func (c *Cookie) MatchCookie(other *Cookie) bool {
	return c.Host == other.Host && c.Path == other.Path && c.Name == other.Name
}

// ParseFromString parses a cookies.txt line (without trailing newline).
// Lines starting with '#', or with a non-integer time field or missing
// fields, are rejected.
func ParseFromString(line string) (*Cookie, bool) {
	if strings.HasPrefix(line, "#") {
		return nil, false
	}
	parts := strings.Split(line, "\t")
	if len(parts) != 7 {
		return nil, false
	}
	host, hostMatchStr, path, secureStr, timeStr, name, value := parts[0], parts[1], parts[2], parts[3], parts[4], parts[5], parts[6]

	unixTime, err := strconv.ParseInt(timeStr, 10, 64)
	if err != nil {
		return nil, false
	}

	c := &Cookie{
		Name:            name,
		Value:           value,
		Host:            host,
		Path:            path,
		hostDomainMatch: hostMatchStr == "TRUE",
		secure:          secureStr == "TRUE",
	}
	if unixTime != 0 {
		c.expiration = time.Unix(unixTime, 0).UTC()
		c.persistent = true
	}
	return c, true
}

// String renders the cookie as a cookies.txt line.
func (c *Cookie) String() string {
	boolStr := func(b bool) string {
		if b {
			return "TRUE"
		}
		return "FALSE"
	}
	var unixTime int64
	if c.persistent {
		unixTime = c.expiration.Unix()
	}
	return strings.Join([]string{
		c.Host,
		boolStr(c.hostDomainMatch),
		c.Path,
		boolStr(c.secure),
		strconv.FormatInt(unixTime, 10),
		c.Name,
		c.Value,
	}, "\t")
}
