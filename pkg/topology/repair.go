package topology

import (
	"strings"

	"github.com/ensp-automation/enspgen/pkg/catalog"
	"github.com/ensp-automation/enspgen/pkg/util"
)

// Repair applies one bounded repair pass over the issues found by
// Validate, mutating the topology in place. Only disabled router
// interfaces and IP conflicts are auto-repaired; everything else is
// left for the caller's issue report. The caller re-validates exactly
// once afterwards.
func Repair(t *Topology, issues []Issue) {
	disabled := make(map[string]bool)
	conflicts := false
	for _, issue := range issues {
		switch issue.Kind {
		case IssueInterfaceDisabled:
			disabled[issue.Device] = true
		case IssueIPConflict:
			conflicts = true
		}
	}

	for _, dev := range t.Devices {
		if dev.Class == catalog.ClassRouter && disabled[dev.Name] {
			util.WithDevice(dev.Name).Info("enabling declared interfaces")
			dev.Config = enableInterfaces(dev.Config)
		}
	}

	if conflicts {
		repairAddressConflicts(t)
	}
}

// enableInterfaces inserts an enable directive immediately after each
// interface-declaration line whose block lacks one.
func enableInterfaces(config string) string {
	lines := strings.Split(config, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		out = append(out, line)
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
			out = append(out, " undo shutdown")
		}
	}
	return strings.Join(out, "\n")
}

// repairAddressConflicts rewrites duplicate address assignments. The
// first owner of an address keeps it; each later owner gets its last
// octet advanced by 10 (mod 254, wrapping 0 to 1), then incremented by
// 1 while the candidate still collides with an assigned address.
func repairAddressConflicts(t *Topology) {
	assigned := make(map[string]string)

	for _, dev := range t.Devices {
		lines := strings.Split(dev.Config, "\n")
		changed := false

		for i, line := range lines {
			ip := extractAssignedIP(line)
			if ip == "" {
				continue
			}
			if _, taken := assigned[ip]; taken {
				candidate := util.ShiftLastOctet(ip, 10)
				for _, collides := assigned[candidate]; collides; _, collides = assigned[candidate] {
					candidate = util.ShiftLastOctet(candidate, 1)
				}
				util.WithDevice(dev.Name).Infof("resolving IP conflict: %s -> %s", ip, candidate)
				lines[i] = strings.Replace(line, ip, candidate, 1)
				ip = candidate
				changed = true
			}
			assigned[ip] = dev.Name
		}

		if changed {
			dev.Config = strings.Join(lines, "\n")
		}
	}
}
