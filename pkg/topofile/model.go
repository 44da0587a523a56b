// Package topofile renders a resolved topology into the .topo XML file
// consumed by the external network simulator.
package topofile

import "strings"

// CanonicalModel collapses a free-form device type label onto one of
// the fixed model tokens the simulator understands. Unrecognized
// labels fall back to the S5700 token.
func CanonicalModel(typeLabel string) string {
	switch {
	case containsAny(typeLabel, "S5700", "S5730", "S3700"):
		return "S5700"
	case containsAny(typeLabel, "CE6850", "CE6800", "CE12800"):
		return "CE6800"
	case containsAny(typeLabel, "AR2220", "AR3260"):
		return "AR2220"
	case strings.Contains(typeLabel, "USG"):
		return "USG6000V"
	case containsAny(typeLabel, "AC6005", "AC6605"):
		return "AC6005"
	case strings.Contains(typeLabel, "AD9430"):
		return "AD9430"
	case typeLabel == "PC" || typeLabel == "Client" || typeLabel == "Server" || typeLabel == "MCS":
		return "PC"
	case typeLabel == "STA" || typeLabel == "Cellphone":
		return "STA"
	case typeLabel == "Cloud":
		return "Cloud"
	case typeLabel == "FRSW":
		return "FRSW"
	case typeLabel == "HUB":
		return "HUB"
	default:
		return "S5700"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// InterfaceLayout describes one interface descriptor of a device slot:
// the interface family, name prefix, and port count.
type InterfaceLayout struct {
	SzType string
	Prefix string
	Count  int
}

// HardwareLayout returns the slot interface descriptors for a canonical
// model. AR2220 deliberately emits two single-port descriptors rather
// than one count=2 descriptor; the simulator expects that shape.
func HardwareLayout(model string) []InterfaceLayout {
	switch model {
	case "S5700":
		return []InterfaceLayout{{"Ethernet", "GE", 24}}
	case "CE6800":
		return []InterfaceLayout{{"Ethernet", "GE", 48}, {"Ethernet", "XGE", 4}}
	case "AR2220":
		return []InterfaceLayout{{"Ethernet", "GE", 1}, {"Ethernet", "GE", 1}}
	case "USG6000V":
		return []InterfaceLayout{{"Ethernet", "GE", 8}}
	case "AC6005":
		return []InterfaceLayout{{"Ethernet", "GE", 8}}
	case "AD9430":
		return []InterfaceLayout{{"Ethernet", "GE", 24}, {"Ethernet", "XGE", 4}}
	case "PC":
		return []InterfaceLayout{{"Ethernet", "Ethernet", 1}}
	case "STA":
		return []InterfaceLayout{{"WLAN", "WLAN-Radio", 1}}
	case "Cloud":
		return []InterfaceLayout{{"Ethernet", "Ethernet", 4}}
	case "FRSW":
		return []InterfaceLayout{{"Serial", "Serial", 4}}
	case "HUB":
		return []InterfaceLayout{{"Ethernet", "Ethernet", 8}}
	default:
		return []InterfaceLayout{{"Ethernet", "Ethernet", 1}}
	}
}
