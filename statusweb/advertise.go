// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package statusweb

import (
	"errors"
	"fmt"
	"net"

	"github.com/grandcat/zeroconf"
)

// ServiceType is the DNS-SD service type registered by Advertise.
const ServiceType = "_http._tcp"

// Advertiser announces the status server on the local network over mDNS.
type Advertiser struct {
	server *zeroconf.Server
}

// Advertise registers instance on the port listening at addr (e.g. ":8080")
// on all multicast capable interfaces. The TXT record carries the path of the
// status stream.
func Advertise(instance, addr string) (*Advertiser, error) {
	if instance == "" {
		return nil, errors.New("statusweb: empty mDNS instance name")
	}
	port, err := portOf(addr)
	if err != nil {
		return nil, err
	}
	server, err := zeroconf.Register(instance, ServiceType, "local.", port, []string{"path=/", "format=json"}, nil)
	if err != nil {
		return nil, fmt.Errorf("statusweb: mDNS registration failed: %w", err)
	}
	return &Advertiser{server: server}, nil
}

func (a *Advertiser) String() string {
	return "mDNS"
}

// Halt implements conn.Resource and withdraws the registration.
func (a *Advertiser) Halt() error {
	a.server.Shutdown()
	return nil
}

// portOf extracts the TCP port of a listen address.
func portOf(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("statusweb: %w", err)
	}
	port, err := net.LookupPort("tcp", p)
	if err != nil {
		return 0, fmt.Errorf("statusweb: %w", err)
	}
	if port == 0 {
		return 0, fmt.Errorf("statusweb: cannot advertise a dynamic port in %q", addr)
	}
	return port, nil
}
