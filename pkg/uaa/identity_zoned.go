package uaa

// Identity zone switching headers.
const (
	IdentityZoneIDHeader        = "X-Identity-Zone-Id"
	IdentityZoneSubdomainHeader = "X-Identity-Zone-Subdomain"
)

// IdentityZoned selects the identity zone a request runs against. The zero
// value targets the zone of the token.
type IdentityZoned struct {
	IdentityZoneID        string `json:"-" url:"-" yaml:"-"`
	IdentityZoneSubdomain string `json:"-" url:"-" yaml:"-"`
}

// Headers implements cfapi.HeaderProvider.
func (z IdentityZoned) Headers() map[string]string {
	headers := make(map[string]string, 2)

	if z.IdentityZoneID != "" {
		headers[IdentityZoneIDHeader] = z.IdentityZoneID
	}

	if z.IdentityZoneSubdomain != "" {
		headers[IdentityZoneSubdomainHeader] = z.IdentityZoneSubdomain
	}

	return headers
}
