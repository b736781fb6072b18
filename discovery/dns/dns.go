package dns

import (
	"fmt"
	"net"
)

// Provider is a discovery provider that resolves cluster member seeds via
// DNS. This is useful in cluster management systems that register all
// members under a single dns name, eg. kubernetes with the SkyDNS addon.
type Provider struct {
	Hostname string
	Port     int
}

// Hosts returns a slice with all hostports currently resolved for Hostname,
// as plain "ip:port" strings. The entries carry no "id@" member-id prefix,
// so discovery.Seeds rejects them as seeds.
func (k *Provider) Hosts() ([]string, error) {
	addrs, err := net.LookupHost(k.Hostname)
	if err != nil {
		return nil, err
	}

	for i := range addrs {
		addrs[i] = fmt.Sprintf("%s:%d", addrs[i], k.Port)
	}
	return addrs, nil
}
