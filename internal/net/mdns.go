package net

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_airpaint._tcp"

// Advertise announces the pointer feed on the local network so that a
// headset can find it without typing an address.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	info := []string{"AirPaint", "path=" + FeedPath}
	service, err := mdns.NewMDNSService(
		host,        // instance name
		serviceType, // service type
		"",          // domain, defaults to .local
		"",          // host name, defaults to the OS host name
		port,
		nil, // IPs, auto-detected
		info,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse looks for advertised feeds for the given duration and calls found
// with the websocket URL of each one.
func Browse(timeout time.Duration, found func(url string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(FeedURL(e.AddrV4.String(), e.Port))
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mDNS browse: %w", err)
	}
	return nil
}

// FeedURL builds the websocket URL of a feed.
func FeedURL(host string, port int) string {
	return fmt.Sprintf("ws://%s:%d%s", host, port, FeedPath)
}

// LocalFeedURL returns the URL a device on the local network uses to reach
// a feed listening on listen, and the listen port. A wildcard host is
// replaced with this machine's LAN address.
func LocalFeedURL(listen string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(listen)
	if err != nil {
		return "", 0, fmt.Errorf("feed address %q: %w", listen, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return "", 0, fmt.Errorf("feed address %q: bad port %q", listen, portStr)
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = lanAddress()
	}
	return FeedURL(host, port), port, nil
}

// lanAddress picks the IPv4 address a headset is most likely to reach,
// preferring private ranges. Without one the feed is only reachable locally.
func lanAddress() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		log.Printf("Could not list interfaces: %v", err)
		return "127.0.0.1"
	}
	var fallback string
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() || ipnet.IP.To4() == nil {
			continue
		}
		if ipnet.IP.IsPrivate() {
			return ipnet.IP.String()
		}
		if fallback == "" {
			fallback = ipnet.IP.String()
		}
	}
	if fallback == "" {
		log.Println("No LAN address found, feed is only reachable from this machine.")
		return "127.0.0.1"
	}
	return fallback
}
