// Package topology holds the abstract and resolved topology models and
// the build, validate, and repair operations over them.
package topology

import (
	"context"
	"fmt"
	"strings"

	"github.com/ensp-automation/enspgen/pkg/catalog"
	"github.com/ensp-automation/enspgen/pkg/util"
)

// EndpointSeparator separates device and interface names in a
// connection endpoint ("R1:GigabitEthernet0/0/0").
const EndpointSeparator = ":"

// Attributes are the optional per-device inputs a producer may supply.
type Attributes struct {
	ManagementIP string   `yaml:"management_ip,omitempty" json:"management_ip,omitempty"`
	SubnetMask   string   `yaml:"subnet_mask,omitempty" json:"subnet_mask,omitempty"`
	VLANs        []string `yaml:"vlans,omitempty" json:"vlans,omitempty"`
}

// AbstractDevice is a producer-supplied device description, prior to
// catalog resolution.
type AbstractDevice struct {
	Name       string     `yaml:"name" json:"name"`
	Type       string     `yaml:"type" json:"type"`
	Attributes Attributes `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// AbstractConnection is a producer-supplied link between two endpoints
// in "deviceName:interfaceName" form.
type AbstractConnection struct {
	From      string `yaml:"from" json:"from"`
	To        string `yaml:"to" json:"to"`
	Bandwidth string `yaml:"bandwidth,omitempty" json:"bandwidth,omitempty"`
}

// AbstractTopology is the engine's read-only input.
type AbstractTopology struct {
	Devices     []AbstractDevice     `yaml:"devices" json:"devices"`
	Connections []AbstractConnection `yaml:"connections" json:"connections"`
}

// Interface is one concrete port on a resolved device. The remote
// fields are an informational back-reference, not ownership.
type Interface struct {
	Name            string `json:"name"`
	Connected       bool   `json:"connected"`
	RemoteDevice    string `json:"remote_device,omitempty"`
	RemoteInterface string `json:"remote_interface,omitempty"`
}

// Device is a fully resolved device with generated configuration text.
// ID is only used for serialization and carries no semantics.
type Device struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Type       string        `json:"type"`
	Class      catalog.Class `json:"class"`
	Model      string        `json:"model"`
	Version    string        `json:"version"`
	Config     string        `json:"config"`
	Interfaces []Interface   `json:"interfaces"`
}

// Connection links two resolved endpoints, kept in endpoint string form.
type Connection struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Bandwidth string `json:"bandwidth"`
}

// Topology is the resolved device/connection graph. Built fresh per
// request; never cached or shared across requests.
type Topology struct {
	Version     string        `json:"version"`
	Devices     []*Device     `json:"devices"`
	Connections []*Connection `json:"connections"`
	GeneratedAt string        `json:"generated_at"`
}

// Device returns the named device, or nil.
func (t *Topology) Device(name string) *Device {
	for _, d := range t.Devices {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// SplitEndpoint splits an endpoint into device and interface names.
// Endpoints with a missing or duplicated separator are malformed.
func SplitEndpoint(endpoint string) (device, iface string, err error) {
	parts := strings.Split(endpoint, EndpointSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", util.NewMalformedEndpointError(endpoint)
	}
	return parts[0], parts[1], nil
}

// JoinEndpoint renders a device/interface pair in endpoint form.
func JoinEndpoint(device, iface string) string {
	return fmt.Sprintf("%s%s%s", device, EndpointSeparator, iface)
}

// ConfigDeliverer is the contract required from the external
// device-automation collaborator: push ordered configuration lines to a
// device address and return the combined session output. The engine
// only produces configuration text; it never transmits it.
type ConfigDeliverer interface {
	Deliver(ctx context.Context, addr string, lines []string) (output string, err error)
}
