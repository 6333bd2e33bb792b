package entities

// ConnectionType is the kind of network link reported by the host.
type ConnectionType string

const (
	ConnectionBluetooth ConnectionType = "bluetooth"
	ConnectionCellular  ConnectionType = "cellular"
	ConnectionEthernet  ConnectionType = "ethernet"
	ConnectionNone      ConnectionType = "none"
	ConnectionWifi      ConnectionType = "wifi"
	ConnectionWimax     ConnectionType = "wimax"
	ConnectionOther     ConnectionType = "other"
	ConnectionUnknown   ConnectionType = "unknown"
)

// ParseConnectionType maps a host string onto a ConnectionType. Unrecognised
// values become ConnectionUnknown.
func ParseConnectionType(s string) ConnectionType {
	switch ct := ConnectionType(s); ct {
	case ConnectionBluetooth, ConnectionCellular, ConnectionEthernet, ConnectionNone,
		ConnectionWifi, ConnectionWimax, ConnectionOther:
		return ct
	default:
		return ConnectionUnknown
	}
}

// NetworkInformation is a snapshot of the host connection object.
type NetworkInformation struct {
	Type          ConnectionType `json:"type" yaml:"type"`
	EffectiveType string         `json:"effectiveType,omitempty" yaml:"effective_type"`
	Downlink      float64        `json:"downlink,omitempty" yaml:"downlink"`        // Mbit/s
	DownlinkMax   float64        `json:"downlinkMax,omitempty" yaml:"downlink_max"` // Mbit/s
	RTT           int            `json:"rtt,omitempty" yaml:"rtt"`                  // Milliseconds
	SaveData      bool           `json:"saveData,omitempty" yaml:"save_data"`
}
