// Package configgen synthesizes per-device management-plane
// configuration text, either from an external template file or from
// embedded per-class defaults.
package configgen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/ensp-automation/enspgen/pkg/catalog"
	"github.com/ensp-automation/enspgen/pkg/util"
)

// DeviceData carries the attributes a template can reference.
type DeviceData struct {
	Name         string
	Type         string
	ManagementIP string
	SubnetMask   string
	VLANs        []string
}

// Generator produces configuration text for resolved devices.
type Generator struct {
	templateDir string
}

// New creates a generator that renders external templates from
// templateDir. An empty dir disables external templates entirely.
func New(templateDir string) *Generator {
	return &Generator{templateDir: templateDir}
}

// Generate produces configuration text for a device of the given class.
// It first attempts to render the external template identified by
// templateID; any failure is logged as a warning and the embedded
// per-class default is used instead. A broken template never aborts a
// build.
func (g *Generator) Generate(class catalog.Class, data DeviceData, templateID string) string {
	if data.SubnetMask == "" {
		data.SubnetMask = "255.255.255.0"
	}

	if g.templateDir != "" && templateID != "" {
		text, err := g.render(templateID, data)
		if err == nil {
			return text
		}
		util.WithDevice(data.Name).Warnf("template %s failed, using default %s configuration: %v",
			templateID, class, err)
	}

	return defaultConfig(class, data)
}

func (g *Generator) render(templateID string, data DeviceData) (string, error) {
	path := filepath.Join(g.templateDir, templateID)
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading template: %w", err)
	}

	tmpl, err := template.New(templateID).Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}
	return buf.String(), nil
}

func defaultConfig(class catalog.Class, data DeviceData) string {
	switch class {
	case catalog.ClassSwitch:
		return switchConfig(data)
	case catalog.ClassRouter:
		return routerConfig(data)
	case catalog.ClassFirewall:
		return firewallConfig(data)
	case catalog.ClassWirelessController:
		return wirelessConfig(data)
	case catalog.ClassAccessPoint:
		return accessPointConfig(data)
	case catalog.ClassTerminal:
		return terminalConfig(data)
	case catalog.ClassBridge:
		return "hostname " + data.Name
	default:
		return fmt.Sprintf("sysname %s\nreturn", data.Name)
	}
}

func switchConfig(data DeviceData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#\n# %s configuration\n#\nsysname %s\n#\nvlan batch 1\n", data.Name, data.Name)

	if len(data.VLANs) > 0 {
		fmt.Fprintf(&b, "vlan batch %s\n", strings.Join(data.VLANs, " "))
		for _, vlan := range data.VLANs {
			fmt.Fprintf(&b, "vlan %s\n description VLAN-%s\n", vlan, vlan)
		}
	}

	b.WriteString("#\nundo telnet server enable\nstelnet server enable\n#\n")

	if data.ManagementIP != "" {
		fmt.Fprintf(&b, "interface Vlanif1\n description Management_Interface\n ip address %s %s\nquit\n#\n",
			data.ManagementIP, data.SubnetMask)
	}

	b.WriteString(`interface GigabitEthernet0/0/1
 port link-type access
 port default vlan 1
 undo shutdown
quit
#
acl 2000
 rule 5 permit source 192.168.0.0 0.0.255.255
 rule 10 permit icmp
quit
#
undo ip icmp rate-limit
`)

	if data.ManagementIP != "" {
		b.WriteString("ip icmp source Vlanif1\n")
	}

	b.WriteString("#\ninfo-center enable\ninfo-center source default channel 0 log level warning\n#\nsave\nreturn\n")
	return b.String()
}

func routerConfig(data DeviceData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#\nsysname %s\n#\nundo info-center enable\n#\n", data.Name)

	if data.ManagementIP != "" {
		fmt.Fprintf(&b, "interface GigabitEthernet0/0/0\n ip address %s %s\n undo shutdown\n#\n",
			data.ManagementIP, data.SubnetMask)
	}

	// Remaining interfaces only need enabling
	b.WriteString("interface GigabitEthernet0/0/1\n undo shutdown\n#\n")

	if data.ManagementIP != "" {
		if gw := util.DefaultGateway(data.ManagementIP); gw != "" {
			fmt.Fprintf(&b, "ip route-static 0.0.0.0 0.0.0.0 %s\n#\n", gw)
		}
	}

	b.WriteString("return")
	return b.String()
}

func firewallConfig(data DeviceData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#\n# %s configuration\n#\nsysname %s\n#\n", data.Name, data.Name)
	b.WriteString(`info-center timestamp log date-time
#
firewall zone trust
firewall zone untrust
#
`)

	if data.ManagementIP != "" {
		fmt.Fprintf(&b, `interface GigabitEthernet1/0/1
 description Management_Interface
 ip address %s %s
 firewall zone trust
 undo shutdown
#
interface GigabitEthernet1/0/2
 description External_Interface
 undo shutdown
 firewall zone untrust
#
`, data.ManagementIP, data.SubnetMask)
	}

	b.WriteString(`security-policy
 rule name allow-icmp
  action permit
  source-zone trust
  destination-zone untrust
  service ICMP
 rule name allow-icmp-inbound
  action permit
  source-zone untrust
  destination-zone trust
  service ICMP
quit
#
policy interzone trust untrust
 policy 10 permit icmp
quit
policy interzone untrust trust
 policy 10 permit icmp
quit
#
ip icmp-reply
#
save
y
return
`)
	return b.String()
}

func wirelessConfig(data DeviceData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#\nsysname %s\n#\nvlan batch 1\n#\nundo info-center enable\n#\n", data.Name)
	if data.ManagementIP != "" {
		fmt.Fprintf(&b, "interface Vlanif1\n ip address %s %s\n#\n", data.ManagementIP, data.SubnetMask)
	}
	b.WriteString("return")
	return b.String()
}

func accessPointConfig(data DeviceData) string {
	return fmt.Sprintf("#\nsysname %s\n#\nundo info-center enable\n#\nreturn", data.Name)
}

func terminalConfig(data DeviceData) string {
	config := "hostname " + data.Name
	if data.ManagementIP != "" {
		config += fmt.Sprintf("\nip %s %s", data.ManagementIP, data.SubnetMask)
	}
	return config
}
