package configgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ensp-automation/enspgen/pkg/catalog"
)

func testData() DeviceData {
	return DeviceData{
		Name:         "SW1",
		Type:         "S5700",
		ManagementIP: "192.168.1.10",
	}
}

// =============================================================================
// Default (embedded) templates
// =============================================================================

func TestDefaultSwitchConfig(t *testing.T) {
	config := New("").Generate(catalog.ClassSwitch, testData(), "s5700_base.cfg")

	for _, want := range []string{
		"sysname SW1",
		"vlan batch",
		"stelnet server enable",
		"permit icmp",
		"interface GigabitEthernet0/0/1",
		"ip address 192.168.1.10 255.255.255.0",
	} {
		if !strings.Contains(config, want) {
			t.Errorf("switch config missing %q", want)
		}
	}
}

func TestDefaultSwitchConfig_VLANs(t *testing.T) {
	data := testData()
	data.VLANs = []string{"10", "20"}
	config := New("").Generate(catalog.ClassSwitch, data, "")

	if !strings.Contains(config, "vlan batch 10 20") {
		t.Error("switch config missing requested VLAN batch")
	}
	if !strings.Contains(config, "description VLAN-10") {
		t.Error("switch config missing per-VLAN description")
	}
}

func TestDefaultRouterConfig(t *testing.T) {
	data := DeviceData{Name: "R1", Type: "AR2220", ManagementIP: "192.168.1.1"}
	config := New("").Generate(catalog.ClassRouter, data, "")

	for _, want := range []string{
		"sysname R1",
		"ip address 192.168.1.1 255.255.255.0",
		"undo shutdown",
		"ip route-static 0.0.0.0 0.0.0.0 192.168.1.1",
	} {
		if !strings.Contains(config, want) {
			t.Errorf("router config missing %q", want)
		}
	}
}

func TestDefaultRouterConfig_NoManagementIP(t *testing.T) {
	config := New("").Generate(catalog.ClassRouter, DeviceData{Name: "R2"}, "")
	if strings.Contains(config, "ip address") {
		t.Error("router without management IP should not assign an address")
	}
	if strings.Contains(config, "route-static") {
		t.Error("router without management IP should not install a default route")
	}
	if !strings.Contains(config, "undo shutdown") {
		t.Error("router interfaces must still be enabled")
	}
}

func TestDefaultFirewallConfig(t *testing.T) {
	data := DeviceData{Name: "FW1", Type: "USG6000", ManagementIP: "10.0.0.1"}
	config := New("").Generate(catalog.ClassFirewall, data, "")

	for _, want := range []string{
		"firewall zone trust",
		"firewall zone untrust",
		"policy interzone trust untrust",
		"policy interzone untrust trust",
		"permit icmp",
	} {
		if !strings.Contains(config, want) {
			t.Errorf("firewall config missing %q", want)
		}
	}
}

func TestDefaultTerminalConfig(t *testing.T) {
	data := DeviceData{Name: "PC1", Type: "PC", ManagementIP: "192.168.1.100"}
	config := New("").Generate(catalog.ClassTerminal, data, "")

	want := "hostname PC1\nip 192.168.1.100 255.255.255.0"
	if config != want {
		t.Errorf("terminal config = %q, want %q", config, want)
	}
}

func TestDefaultBridgeConfig(t *testing.T) {
	config := New("").Generate(catalog.ClassBridge, DeviceData{Name: "Cloud1"}, "")
	if config != "hostname Cloud1" {
		t.Errorf("bridge config = %q, want %q", config, "hostname Cloud1")
	}
}

// =============================================================================
// External templates
// =============================================================================

func TestExternalTemplate(t *testing.T) {
	dir := t.TempDir()
	tmpl := "sysname {{.Name}}\nvlan batch 1\n"
	if err := os.WriteFile(filepath.Join(dir, "r1.cfg"), []byte(tmpl), 0644); err != nil {
		t.Fatal(err)
	}

	config := New(dir).Generate(catalog.ClassRouter, DeviceData{Name: "R1"}, "r1.cfg")
	if !strings.Contains(config, "sysname R1") {
		t.Errorf("template not rendered: %q", config)
	}
}

func TestExternalTemplate_MissingFallsBack(t *testing.T) {
	config := New(t.TempDir()).Generate(catalog.ClassSwitch, testData(), "missing.cfg")
	if !strings.Contains(config, "vlan batch") {
		t.Error("missing template should fall back to the default switch config")
	}
}

func TestExternalTemplate_MalformedFallsBack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.cfg"), []byte("sysname {{.Name"), 0644); err != nil {
		t.Fatal(err)
	}

	config := New(dir).Generate(catalog.ClassSwitch, testData(), "bad.cfg")
	if !strings.Contains(config, "vlan batch") {
		t.Error("malformed template should fall back to the default switch config")
	}
}
