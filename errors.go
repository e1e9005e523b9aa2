package reqcache

import "fmt"

// InvalidTTLError reports a ttl argument outside the accepted range
// (-1, 0 or positive). It is returned before any cache or network
// activity takes place.
type InvalidTTLError struct {
	TTL int
}

func (e *InvalidTTLError) Error() string {
	return fmt.Sprintf("cache ttl must be -1, 0 or positive, got %d", e.TTL)
}

// MalformedRequestError reports a request that cannot be fingerprinted,
// typically because its URL does not parse or is not absolute. There is
// no fallback fingerprint; the request is rejected.
type MalformedRequestError struct {
	URL string
	Err error
}

func (e *MalformedRequestError) Error() string {
	return fmt.Sprintf("cannot fingerprint request to %q: %v", e.URL, e.Err)
}

func (e *MalformedRequestError) Unwrap() error {
	return e.Err
}
