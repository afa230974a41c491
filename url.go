package fetcher

import "net/url"

// ValidateURL reports whether raw parses with both a scheme and an authority.
func ValidateURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// URLScheme returns the scheme of raw.
func URLScheme(raw string) (string, error) {
	u, err := parseURL(raw)
	if err != nil {
		return "", err
	}
	return u.Scheme, nil
}

// URLAuthority returns the network location (host and port) of raw.
func URLAuthority(raw string) (string, error) {
	u, err := parseURL(raw)
	if err != nil {
		return "", err
	}
	return u.Host, nil
}

// URLPath returns the path of raw.
func URLPath(raw string) (string, error) {
	u, err := parseURL(raw)
	if err != nil {
		return "", err
	}
	return u.Path, nil
}

func parseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	return u, nil
}
