package cookie

import (
	"bufio"
	"io"
	"sync"
	"time"

	"github.com/stefanreuther/afl-sub002/pkg/header"
	"github.com/stefanreuther/afl-sub002/pkg/httpurl"
)

// Jar is a thread-safe collection of cookies.
type Jar struct {
	mu      sync.Mutex
	cookies []*Cookie
	counter uint32
}

// Add inserts c, assigning it the next sequence number and replacing any
// existing cookie with the same (host, path, name) identity.
func (j *Jar) Add(c *Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.counter++
	c.Sequence = j.counter

	for i, existing := range j.cookies {
		if c.MatchCookie(existing) {
			j.cookies[i] = c
			return
		}
	}
	j.cookies = append(j.cookies, c)
}

// Remove deletes c's identity match from the jar, if present.
func (j *Jar) Remove(c *Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for i, existing := range j.cookies {
		if c.MatchCookie(existing) {
			j.cookies = append(j.cookies[:i], j.cookies[i+1:]...)
			return
		}
	}
}

// AddFromResponse constructs and adds cookies from the Set-Cookie fields of
// a response addressed to requestURL.
func (j *Jar) AddFromResponse(requestURL *httpurl.Url, now time.Time, setCookieValues []string) {
	for _, raw := range setCookieValues {
		// Set-Cookie fields are delivered as "name=value; attr..."; the
		// field name for cookie construction is the part before '='.
		name, value, hasEq := cutOnce(raw, '=')
		if !hasEq {
			continue
		}
		c := New(requestURL, now, header.NewField(name, value))
		if c.IsValid() {
			j.Add(c)
		}
	}
}

func cutOnce(s string, sep byte) (before, after string, found bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

// EnumerateFor invokes consumer for every matching, non-expired cookie
// addressed to u, in insertion order, calling consumer once per cookie.
func (j *Jar) EnumerateFor(u *httpurl.Url, now time.Time, consumer func(cookie *Cookie)) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, c := range j.cookies {
		if c.IsExpired(now) {
			continue
		}
		if c.MatchURL(u) {
			consumer(c)
		}
	}
}

// Load reads cookies.txt-format lines from r, skipping any that fail to
// parse.
func (j *Jar) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if c, ok := ParseFromString(scanner.Text()); ok {
			j.Add(c)
		}
	}
	return scanner.Err()
}

// Save writes every cookie to w in cookies.txt format, one per line.
func (j *Jar) Save(w io.Writer) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, c := range j.cookies {
		if _, err := io.WriteString(w, c.String()+"\n"); err != nil {
			return err
		}
	}
	return nil
}
