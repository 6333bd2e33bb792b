package ports

import "github.com/remix-pwa/pwa-client/domain/entities"

// Connection is the host network-information object.
type Connection interface {
	Type() entities.ConnectionType
	Info() entities.NetworkInformation
}
