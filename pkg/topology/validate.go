package topology

import (
	"fmt"
	"strings"

	"github.com/ensp-automation/enspgen/pkg/catalog"
)

// IssueKind classifies a validation issue for the repairer.
type IssueKind string

const (
	IssueMissingName       IssueKind = "missing-name"
	IssueMissingType       IssueKind = "missing-type"
	IssueMissingConfig     IssueKind = "missing-config"
	IssueMissingVLAN       IssueKind = "missing-vlan"
	IssueMissingSSH        IssueKind = "missing-ssh"
	IssueMissingICMP       IssueKind = "missing-icmp"
	IssueMissingZone       IssueKind = "missing-zone"
	IssueMissingHostname   IssueKind = "missing-hostname"
	IssueInterfaceDisabled IssueKind = "interface-disabled"
	IssueUnknownDevice     IssueKind = "unknown-device"
	IssueIPConflict        IssueKind = "ip-conflict"
)

// Issue is one validation finding, with enough structure to drive the
// repairer.
type Issue struct {
	Kind       IssueKind
	Device     string
	Connection string
	Message    string
}

func (i Issue) String() string { return i.Message }

// ipAssignToken marks configuration lines that assign an address.
// Validation scans for it line-by-line rather than re-parsing the
// configuration structurally: the generator controls the vocabulary of
// the text it checks. Sub-interface or secondary addressing may
// over-match; this is a documented heuristic, not an exhaustive
// conflict guarantee.
const ipAssignToken = "ip address"

// Validate inspects a built topology for structural and semantic issues
// without mutating it. It returns overall validity and the accumulated
// issue list.
func Validate(t *Topology) (bool, []Issue) {
	var issues []Issue

	for _, dev := range t.Devices {
		issues = append(issues, checkDevice(dev)...)
	}
	issues = append(issues, checkConnections(t)...)
	issues = append(issues, checkAddressConflicts(t)...)

	return len(issues) == 0, issues
}

func checkDevice(dev *Device) []Issue {
	var issues []Issue

	name := dev.Name
	if name == "" {
		name = "Unknown"
		issues = append(issues, Issue{
			Kind:    IssueMissingName,
			Message: "device is missing a name",
		})
	}
	if dev.Type == "" {
		issues = append(issues, Issue{
			Kind:    IssueMissingType,
			Device:  dev.Name,
			Message: fmt.Sprintf("device %s is missing a type", name),
		})
	}
	if dev.Config == "" {
		issues = append(issues, Issue{
			Kind:    IssueMissingConfig,
			Device:  dev.Name,
			Message: fmt.Sprintf("device %s is missing configuration text", name),
		})
		return issues
	}

	issues = append(issues, checkClassConfig(dev)...)
	return issues
}

// checkClassConfig applies the per-class configuration checklist as
// explicit substring predicates.
func checkClassConfig(dev *Device) []Issue {
	var issues []Issue
	config := dev.Config

	switch dev.Class {
	case catalog.ClassSwitch:
		if !strings.Contains(config, "vlan batch") {
			issues = append(issues, Issue{
				Kind:    IssueMissingVLAN,
				Device:  dev.Name,
				Message: fmt.Sprintf("switch %s has no VLAN declaration", dev.Name),
			})
		}
		if !strings.Contains(config, "stelnet server enable") {
			issues = append(issues, Issue{
				Kind:    IssueMissingSSH,
				Device:  dev.Name,
				Message: fmt.Sprintf("switch %s does not enable SSH access", dev.Name),
			})
		}
		if !strings.Contains(config, "permit icmp") {
			issues = append(issues, Issue{
				Kind:    IssueMissingICMP,
				Device:  dev.Name,
				Message: fmt.Sprintf("switch %s has no ICMP permit rule", dev.Name),
			})
		}

	case catalog.ClassRouter:
		if !interfacesEnabled(config) {
			issues = append(issues, Issue{
				Kind:    IssueInterfaceDisabled,
				Device:  dev.Name,
				Message: fmt.Sprintf("router %s declares interfaces without enabling them", dev.Name),
			})
		}

	case catalog.ClassFirewall:
		if !strings.Contains(config, "firewall zone trust") || !strings.Contains(config, "firewall zone untrust") {
			issues = append(issues, Issue{
				Kind:    IssueMissingZone,
				Device:  dev.Name,
				Message: fmt.Sprintf("firewall %s is missing zone assignment", dev.Name),
			})
		}
		if !strings.Contains(config, "policy interzone trust untrust") ||
			!strings.Contains(config, "policy interzone untrust trust") {
			issues = append(issues, Issue{
				Kind:    IssueMissingICMP,
				Device:  dev.Name,
				Message: fmt.Sprintf("firewall %s has no bidirectional ICMP policy", dev.Name),
			})
		}

	case catalog.ClassWirelessController, catalog.ClassAccessPoint, catalog.ClassTerminal, catalog.ClassBridge:
		if !strings.Contains(config, "sysname ") && !strings.Contains(config, "hostname ") {
			issues = append(issues, Issue{
				Kind:    IssueMissingHostname,
				Device:  dev.Name,
				Message: fmt.Sprintf("device %s has no hostname line", dev.Name),
			})
		}
	}

	return issues
}

// interfacesEnabled reports whether every interface-declaration block
// contains an enable directive before the block ends.
func interfacesEnabled(config string) bool {
	lines := strings.Split(config, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "interface ") {
			continue
		}
		enabled := false
		for j := i + 1; j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if strings.HasPrefix(next, "interface ") || next == "#" || next == "quit" || next == "return" {
				break
			}
			if strings.Contains(next, "undo shutdown") {
				enabled = true
				break
			}
		}
		if !enabled {
			return false
		}
	}
	return true
}

func checkConnections(t *Topology) []Issue {
	var issues []Issue
	names := make(map[string]bool, len(t.Devices))
	for _, dev := range t.Devices {
		names[dev.Name] = true
	}

	for _, conn := range t.Connections {
		for _, endpoint := range []string{conn.Source, conn.Target} {
			devName, _, err := SplitEndpoint(endpoint)
			if err != nil {
				continue
			}
			if !names[devName] {
				issues = append(issues, Issue{
					Kind:       IssueUnknownDevice,
					Device:     devName,
					Connection: fmt.Sprintf("%s -> %s", conn.Source, conn.Target),
					Message:    fmt.Sprintf("connection %s -> %s references unknown device %s", conn.Source, conn.Target, devName),
				})
			}
		}
	}
	return issues
}

func checkAddressConflicts(t *Topology) []Issue {
	var issues []Issue
	owners := make(map[string]string)

	for _, dev := range t.Devices {
		for _, line := range strings.Split(dev.Config, "\n") {
			ip := extractAssignedIP(line)
			if ip == "" {
				continue
			}
			if owner, seen := owners[ip]; seen {
				issues = append(issues, Issue{
					Kind:    IssueIPConflict,
					Device:  dev.Name,
					Message: fmt.Sprintf("IP address %s is configured on both %s and %s", ip, owner, dev.Name),
				})
				continue
			}
			owners[ip] = dev.Name
		}
	}
	return issues
}

// extractAssignedIP returns the address assigned on a configuration
// line, or "" when the line is not an address assignment.
func extractAssignedIP(line string) string {
	if !strings.Contains(line, ipAssignToken) {
		return ""
	}
	fields := strings.Fields(line)
	for i, f := range fields {
		if f == "address" && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return ""
}
