package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const defaultLookupTimeout = 3 * time.Second

type resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// DomainChecker reports whether an email's domain can receive mail: it
// has an MX record or at least resolves to an address.
type DomainChecker struct {
	r       resolver
	timeout time.Duration
}

func NewDomainChecker(timeout time.Duration) *DomainChecker {
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &DomainChecker{r: net.DefaultResolver, timeout: timeout}
}

func (d *DomainChecker) Valid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if mx, err := d.r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := d.r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

func IsEmailDomainValid(email string) bool {
	return NewDomainChecker(defaultLookupTimeout).Valid(email)
}
