//go:build !js

package native

import (
	"slices"
	"strings"

	psnet "github.com/shirou/gopsutil/net"

	"github.com/remix-pwa/pwa-client/domain/entities"
)

// InterfaceLister lists the network interfaces of the machine.
type InterfaceLister func() ([]psnet.InterfaceStat, error)

// SystemInterfaces lists interfaces through gopsutil.
func SystemInterfaces() ([]psnet.InterfaceStat, error) {
	ifaces, err := psnet.Interfaces()
	if err != nil {
		return nil, err
	}
	return ifaces, nil
}

// Interface name prefixes by link type, checked in order.
var interfacePrefixes = []struct {
	prefix   string
	connType entities.ConnectionType
}{
	{"wlan", entities.ConnectionWifi},
	{"wlp", entities.ConnectionWifi},
	{"wl", entities.ConnectionWifi},
	{"wifi", entities.ConnectionWifi},
	{"ath", entities.ConnectionWifi},
	{"eth", entities.ConnectionEthernet},
	{"enp", entities.ConnectionEthernet},
	{"eno", entities.ConnectionEthernet},
	{"ens", entities.ConnectionEthernet},
	{"en", entities.ConnectionEthernet},
	{"wwan", entities.ConnectionCellular},
	{"rmnet", entities.ConnectionCellular},
	{"ppp", entities.ConnectionCellular},
	{"bnep", entities.ConnectionBluetooth},
	{"bt", entities.ConnectionBluetooth},
	{"wimax", entities.ConnectionWimax},
}

// ClassifyInterface guesses the link type from an interface name.
func ClassifyInterface(name string) entities.ConnectionType {
	lower := strings.ToLower(name)
	for _, p := range interfacePrefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.connType
		}
	}
	return entities.ConnectionOther
}

// summarize reports the machine online when a non-loopback interface is up
// and has an address. The link type is that of the first such interface.
func summarize(ifaces []psnet.InterfaceStat) linkStatus {
	for _, iface := range ifaces {
		if !slices.Contains(iface.Flags, "up") || slices.Contains(iface.Flags, "loopback") {
			continue
		}
		if len(iface.Addrs) == 0 {
			continue
		}
		return linkStatus{online: true, connType: ClassifyInterface(iface.Name)}
	}
	return linkStatus{connType: entities.ConnectionNone}
}
