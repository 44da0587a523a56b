// Package catalog provides the static device-type registry used to
// resolve free-form device type labels into device-type specifications.
package catalog

import (
	"strings"

	"github.com/ensp-automation/enspgen/pkg/util"
)

// Class is a device's generalized category. It governs which
// configuration template and validation checklist apply.
type Class string

const (
	ClassSwitch             Class = "switch"
	ClassRouter             Class = "router"
	ClassFirewall           Class = "firewall"
	ClassWirelessController Class = "wireless-controller"
	ClassAccessPoint        Class = "access-point"
	ClassTerminal           Class = "terminal"
	ClassBridge             Class = "bridge" // bridge/cloud adapter devices
)

// DeviceTypeSpec describes one supported device type: its canonical
// model token, firmware version label, interface layout as range specs,
// and the configuration template it renders with.
type DeviceTypeSpec struct {
	Model      string   // canonical model token, e.g. "S5700-V200R019C00"
	Version    string   // firmware version label
	Interfaces []string // interface-name ranges, e.g. "GE0/0/1-24"
	Template   string   // configuration template identifier
	Class      Class
}

// Entry pairs a registry key with its spec. The registry is an ordered
// list, not a map: the substring fallback in Resolve depends on
// insertion order and overlapping keys must resolve identically across
// runs.
type Entry struct {
	Type string
	Spec DeviceTypeSpec
}

// Catalog is an immutable device-type registry, constructed once and
// injected into the topology builder.
type Catalog struct {
	entries []Entry
	exact   map[string]*DeviceTypeSpec
}

// New builds a catalog from ordered entries.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: entries,
		exact:   make(map[string]*DeviceTypeSpec, len(entries)),
	}
	for i := range c.entries {
		c.exact[c.entries[i].Type] = &c.entries[i].Spec
	}
	return c
}

// Resolve looks up the spec for a device type label. Exact key matches
// win; otherwise the registry is scanned in insertion order and the
// first entry whose key is a substring of the label is returned.
func (c *Catalog) Resolve(typeLabel string) (*DeviceTypeSpec, error) {
	if spec, ok := c.exact[typeLabel]; ok {
		return spec, nil
	}
	for i := range c.entries {
		if strings.Contains(typeLabel, c.entries[i].Type) {
			return &c.entries[i].Spec, nil
		}
	}
	return nil, util.NewUnsupportedDeviceTypeError("", typeLabel)
}

// Types returns the registry keys in insertion order.
func (c *Catalog) Types() []string {
	types := make([]string, len(c.entries))
	for i, e := range c.entries {
		types[i] = e.Type
	}
	return types
}

// Default returns the built-in device-type registry. Entry order is part
// of the lookup contract.
func Default() *Catalog {
	return New([]Entry{
		// Switches
		{"CE6850", DeviceTypeSpec{
			Model:      "CE6850-V200R019C00",
			Version:    "V200R019C00",
			Interfaces: []string{"GE1/0/1-48", "XGE1/0/49-52"},
			Template:   "ce6850_base.cfg",
			Class:      ClassSwitch,
		}},
		{"CE6800", DeviceTypeSpec{
			Model:      "CE6800-V200R019C00",
			Version:    "V200R019C00",
			Interfaces: []string{"GE1/0/1-48", "XGE1/0/49-52"},
			Template:   "ce6800_base.cfg",
			Class:      ClassSwitch,
		}},
		{"CE12800", DeviceTypeSpec{
			Model:      "CE12800-V200R019C00",
			Version:    "V200R019C00",
			Interfaces: []string{"GE1/0/1-48", "XGE1/0/49-56"},
			Template:   "ce12800_base.cfg",
			Class:      ClassSwitch,
		}},
		{"S5730", DeviceTypeSpec{
			Model:      "S5730-V200R019C00",
			Version:    "V200R019C00",
			Interfaces: []string{"GE0/0/1-24", "XGE0/0/25-28"},
			Template:   "s5730_base.cfg",
			Class:      ClassSwitch,
		}},
		{"S5700", DeviceTypeSpec{
			Model:      "S5700-V200R019C00",
			Version:    "V200R019C00",
			Interfaces: []string{"GE0/0/1-24"},
			Template:   "s5700_base.cfg",
			Class:      ClassSwitch,
		}},
		{"S3700", DeviceTypeSpec{
			Model:      "S3700-V200R019C00",
			Version:    "V200R019C00",
			Interfaces: []string{"GE0/0/1-24"},
			Template:   "s3700_base.cfg",
			Class:      ClassSwitch,
		}},
		// Routers
		{"AR2220", DeviceTypeSpec{
			Model:      "AR2220-V200R009C00",
			Version:    "V200R009C00",
			Interfaces: []string{"GE0/0/0-1"},
			Template:   "ar2220_base.cfg",
			Class:      ClassRouter,
		}},
		{"AR3260", DeviceTypeSpec{
			Model:      "AR3260-V200R009C00",
			Version:    "V200R009C00",
			Interfaces: []string{"GE0/0/0-5"},
			Template:   "ar3260_base.cfg",
			Class:      ClassRouter,
		}},
		// Security
		{"USG6000", DeviceTypeSpec{
			Model:      "USG6000-V200R011C10",
			Version:    "V200R011C10",
			Interfaces: []string{"GE1/0/1-8"},
			Template:   "usg6000_base.cfg",
			Class:      ClassFirewall,
		}},
		// Wireless
		{"AC6005-8", DeviceTypeSpec{
			Model:      "AC6005-8-V200R019C00",
			Version:    "V200R019C00",
			Interfaces: []string{"GE0/0/1-8"},
			Template:   "ac6005_base.cfg",
			Class:      ClassWirelessController,
		}},
		{"AC6605-26", DeviceTypeSpec{
			Model:      "AC6605-26-V200R019C00",
			Version:    "V200R019C00",
			Interfaces: []string{"GE0/0/1-24", "XGE0/0/25-26"},
			Template:   "ac6605_base.cfg",
			Class:      ClassWirelessController,
		}},
		{"AD9430-28", DeviceTypeSpec{
			Model:      "AD9430-28-V200R019C00",
			Version:    "V200R019C00",
			Interfaces: []string{"GE0/0/1-24", "XGE0/0/25-28"},
			Template:   "ad9430_base.cfg",
			Class:      ClassAccessPoint,
		}},
		// Terminals
		{"PC", DeviceTypeSpec{
			Model:      "PC",
			Version:    "PC",
			Interfaces: []string{"Ethernet0/0/0"},
			Template:   "pc_base.cfg",
			Class:      ClassTerminal,
		}},
		{"MCS", DeviceTypeSpec{
			Model:      "MCS",
			Version:    "MCS",
			Interfaces: []string{"Ethernet0/0/0"},
			Template:   "mcs_base.cfg",
			Class:      ClassTerminal,
		}},
		{"Client", DeviceTypeSpec{
			Model:      "Client",
			Version:    "Client",
			Interfaces: []string{"Ethernet0/0/0"},
			Template:   "client_base.cfg",
			Class:      ClassTerminal,
		}},
		{"Server", DeviceTypeSpec{
			Model:      "Server",
			Version:    "Server",
			Interfaces: []string{"Ethernet0/0/0-1"},
			Template:   "server_base.cfg",
			Class:      ClassTerminal,
		}},
		{"STA", DeviceTypeSpec{
			Model:      "STA",
			Version:    "STA",
			Interfaces: []string{"WLAN-Radio0/0/0"},
			Template:   "sta_base.cfg",
			Class:      ClassTerminal,
		}},
		{"Cellphone", DeviceTypeSpec{
			Model:      "Cellphone",
			Version:    "Cellphone",
			Interfaces: []string{"WLAN-Radio0/0/0"},
			Template:   "cellphone_base.cfg",
			Class:      ClassTerminal,
		}},
		// Cloud / bridge devices
		{"Cloud", DeviceTypeSpec{
			Model:      "Cloud",
			Version:    "Cloud",
			Interfaces: []string{"Ethernet0/0/0-3"},
			Template:   "cloud_base.cfg",
			Class:      ClassBridge,
		}},
		{"FRSW", DeviceTypeSpec{
			Model:      "FRSW",
			Version:    "FRSW",
			Interfaces: []string{"Serial0/0/0-3"},
			Template:   "frsw_base.cfg",
			Class:      ClassBridge,
		}},
		{"HUB", DeviceTypeSpec{
			Model:      "HUB",
			Version:    "HUB",
			Interfaces: []string{"Ethernet0/0/0-7"},
			Template:   "hub_base.cfg",
			Class:      ClassBridge,
		}},
	})
}
