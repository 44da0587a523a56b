package topology

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ensp-automation/enspgen/pkg/catalog"
	"github.com/ensp-automation/enspgen/pkg/configgen"
	"github.com/ensp-automation/enspgen/pkg/util"
)

func testBuilder() *Builder {
	return NewBuilder(catalog.Default(), configgen.New(""))
}

// testAbstract is the reference two-device scenario: router and switch
// sharing a management address.
func testAbstract() *AbstractTopology {
	return &AbstractTopology{
		Devices: []AbstractDevice{
			{Name: "R1", Type: "AR2220", Attributes: Attributes{ManagementIP: "192.168.1.1"}},
			{Name: "SW1", Type: "S5700", Attributes: Attributes{ManagementIP: "192.168.1.1"}},
		},
		Connections: []AbstractConnection{
			{From: "R1:GigabitEthernet0/0/0", To: "SW1:GigabitEthernet0/0/1"},
		},
	}
}

// =============================================================================
// Builder
// =============================================================================

func TestBuild(t *testing.T) {
	topo, err := testBuilder().Build(testAbstract())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(topo.Devices) != 2 {
		t.Fatalf("device count = %d, want 2", len(topo.Devices))
	}
	if len(topo.Connections) != 1 {
		t.Fatalf("connection count = %d, want 1", len(topo.Connections))
	}
	if topo.GeneratedAt == "" {
		t.Error("GeneratedAt not set")
	}

	r1 := topo.Device("R1")
	if r1 == nil {
		t.Fatal("R1 not found")
	}
	if len(r1.Interfaces) != 2 {
		t.Errorf("R1 interface count = %d, want 2", len(r1.Interfaces))
	}
	if r1.Model != "AR2220-V200R009C00" {
		t.Errorf("R1 model = %q, want AR2220-V200R009C00", r1.Model)
	}
	if r1.Class != catalog.ClassRouter {
		t.Errorf("R1 class = %q, want router", r1.Class)
	}
	if r1.ID == "" || r1.ID != strings.ToUpper(r1.ID) {
		t.Errorf("R1 ID = %q, want non-empty uppercase identifier", r1.ID)
	}

	sw1 := topo.Device("SW1")
	if sw1 == nil {
		t.Fatal("SW1 not found")
	}
	if len(sw1.Interfaces) != 24 {
		t.Errorf("SW1 interface count = %d, want 24", len(sw1.Interfaces))
	}

	conn := topo.Connections[0]
	if conn.Bandwidth != "1G" {
		t.Errorf("bandwidth = %q, want default 1G", conn.Bandwidth)
	}
}

func TestBuild_UniqueIDs(t *testing.T) {
	topo, err := testBuilder().Build(testAbstract())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if topo.Devices[0].ID == topo.Devices[1].ID {
		t.Error("device IDs must be unique")
	}
}

func TestBuild_SubstringType(t *testing.T) {
	abs := &AbstractTopology{
		Devices: []AbstractDevice{{Name: "SW2", Type: "S5700-28C-HI"}},
	}
	topo, err := testBuilder().Build(abs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := topo.Device("SW2").Model; got != "S5700-V200R019C00" {
		t.Errorf("model = %q, want S5700-V200R019C00", got)
	}
}

func TestBuild_UnsupportedType(t *testing.T) {
	abs := &AbstractTopology{
		Devices: []AbstractDevice{{Name: "X1", Type: "FooBarSwitch9000"}},
	}
	_, err := testBuilder().Build(abs)
	if err == nil {
		t.Fatal("expected error for unsupported device type")
	}
	if !errors.Is(err, util.ErrUnsupportedDeviceType) {
		t.Errorf("error = %v, want ErrUnsupportedDeviceType", err)
	}
}

func TestBuild_MalformedEndpoints(t *testing.T) {
	for _, endpoint := range []string{
		"R1-GigabitEthernet0/0/0", // no separator
		"R1:GE0/0/0:extra",        // duplicated separator
		":GE0/0/0",                // empty device
		"R1:",                     // empty interface
	} {
		abs := testAbstract()
		abs.Connections = []AbstractConnection{{From: endpoint, To: "SW1:GigabitEthernet0/0/1"}}
		_, err := testBuilder().Build(abs)
		if err == nil {
			t.Errorf("endpoint %q: expected error", endpoint)
			continue
		}
		if !errors.Is(err, util.ErrMalformedEndpoint) {
			t.Errorf("endpoint %q: error = %v, want ErrMalformedEndpoint", endpoint, err)
		}
	}
}

func TestBuild_DanglingConnectionDoesNotAbort(t *testing.T) {
	abs := testAbstract()
	abs.Connections = append(abs.Connections, AbstractConnection{
		From: "R1:GigabitEthernet0/0/1", To: "SW9:GigabitEthernet0/0/1",
	})
	topo, err := testBuilder().Build(abs)
	if err != nil {
		t.Fatalf("Build should defer endpoint existence to validation: %v", err)
	}
	if len(topo.Connections) != 2 {
		t.Errorf("connection count = %d, want 2", len(topo.Connections))
	}
}

// =============================================================================
// Validation & repair
// =============================================================================

func TestValidateRepair_IPConflict(t *testing.T) {
	topo, err := testBuilder().Build(testAbstract())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	valid, issues := Validate(topo)
	if valid {
		t.Fatal("expected conflicting topology to be invalid")
	}
	if len(issues) != 1 {
		t.Fatalf("issue count = %d, want 1 (got %v)", len(issues), issues)
	}
	if issues[0].Kind != IssueIPConflict {
		t.Fatalf("issue kind = %q, want %q", issues[0].Kind, IssueIPConflict)
	}

	Repair(topo, issues)

	// First owner keeps the address; the second moves +10 on the last octet.
	if !strings.Contains(topo.Device("R1").Config, "192.168.1.1 ") {
		t.Error("R1 should keep its original address")
	}
	if !strings.Contains(topo.Device("SW1").Config, "192.168.1.11") {
		t.Error("SW1 should be rewritten to 192.168.1.11")
	}

	valid, issues = Validate(topo)
	if !valid {
		t.Errorf("expected repaired topology to validate, issues: %v", issues)
	}
}

func TestRepair_CandidateCollision(t *testing.T) {
	// SW2 holds the +10 candidate before SW1 is reached, forcing the
	// increment-by-1 probe.
	abs := &AbstractTopology{
		Devices: []AbstractDevice{
			{Name: "R1", Type: "AR2220", Attributes: Attributes{ManagementIP: "192.168.1.1"}},
			{Name: "SW2", Type: "S5700", Attributes: Attributes{ManagementIP: "192.168.1.11"}},
			{Name: "SW1", Type: "S5700", Attributes: Attributes{ManagementIP: "192.168.1.1"}},
		},
	}
	topo, err := testBuilder().Build(abs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	_, issues := Validate(topo)
	Repair(topo, issues)

	if !strings.Contains(topo.Device("SW1").Config, "192.168.1.12") {
		t.Errorf("SW1 should be rewritten to 192.168.1.12, config:\n%s", topo.Device("SW1").Config)
	}

	if valid, issues := Validate(topo); !valid {
		t.Errorf("expected repaired topology to validate, issues: %v", issues)
	}
}

func TestRepair_Idempotent(t *testing.T) {
	topo, err := testBuilder().Build(testAbstract())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	_, issues := Validate(topo)
	Repair(topo, issues)

	before := make(map[string]string)
	for _, dev := range topo.Devices {
		before[dev.Name] = dev.Config
	}

	_, issues = Validate(topo)
	Repair(topo, issues)

	for _, dev := range topo.Devices {
		if dev.Config != before[dev.Name] {
			t.Errorf("device %s changed on second repair pass", dev.Name)
		}
	}
}

func TestRepair_DisabledRouterInterfaces(t *testing.T) {
	topo, err := testBuilder().Build(testAbstract())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	r1 := topo.Device("R1")
	r1.Config = strings.ReplaceAll(r1.Config, " undo shutdown\n", "")

	valid, issues := Validate(topo)
	if valid {
		t.Fatal("expected disabled interfaces to be flagged")
	}

	Repair(topo, issues)

	if !interfacesEnabled(topo.Device("R1").Config) {
		t.Errorf("interfaces still disabled after repair:\n%s", topo.Device("R1").Config)
	}
}

func TestValidate_UnknownDevice(t *testing.T) {
	abs := testAbstract()
	abs.Devices[1].Attributes.ManagementIP = "192.168.1.2" // avoid the IP conflict
	abs.Connections = append(abs.Connections, AbstractConnection{
		From: "R1:GigabitEthernet0/0/1", To: "SW9:GigabitEthernet0/0/1",
	})
	topo, err := testBuilder().Build(abs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	valid, issues := Validate(topo)
	if valid {
		t.Fatal("expected dangling connection to be flagged")
	}
	if len(issues) != 1 || issues[0].Kind != IssueUnknownDevice {
		t.Fatalf("issues = %v, want one unknown-device issue", issues)
	}

	// Not auto-repairable: the issue must survive the repair pass.
	valid, issues = Reconcile(topo)
	if valid {
		t.Error("unknown-device issue should not be repairable")
	}
	if len(issues) != 1 {
		t.Errorf("issue count after reconcile = %d, want 1", len(issues))
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	topo, err := testBuilder().Build(testAbstract())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	before := topo.Device("SW1").Config
	Validate(topo)
	if topo.Device("SW1").Config != before {
		t.Error("Validate must not mutate the topology")
	}
}

// =============================================================================
// Reconciler state machine
// =============================================================================

func TestReconcile_RepairsOnce(t *testing.T) {
	topo, err := testBuilder().Build(testAbstract())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	r := NewReconciler()
	if r.Phase() != PhaseBuilt {
		t.Errorf("initial phase = %v, want built", r.Phase())
	}

	valid, issues := r.Run(topo)
	if !valid {
		t.Errorf("expected valid after single repair pass, issues: %v", issues)
	}
	if r.Phase() != PhaseValidated {
		t.Errorf("final phase = %v, want validated", r.Phase())
	}
}

func TestReconcile_SecondRunDoesNotRepair(t *testing.T) {
	abs := testAbstract()
	abs.Connections = append(abs.Connections, AbstractConnection{
		From: "R1:GigabitEthernet0/0/1", To: "SW9:GigabitEthernet0/0/1",
	})
	topo, err := testBuilder().Build(abs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	r := NewReconciler()
	valid, first := r.Run(topo)
	if valid {
		t.Fatal("dangling connection cannot be repaired")
	}

	// Only one Repaired -> Validated transition is allowed; a second
	// run must validate without repairing again.
	snapshot := topo.Device("SW1").Config
	valid, second := r.Run(topo)
	if valid {
		t.Error("second run should report the same unresolved issues")
	}
	if len(second) != len(first) {
		t.Errorf("issue count changed across runs: %d vs %d", len(first), len(second))
	}
	if topo.Device("SW1").Config != snapshot {
		t.Error("second run must not mutate the topology")
	}
}

// =============================================================================
// Loader & snapshot
// =============================================================================

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topo.yml")
	data := `devices:
  - name: R1
    type: AR2220
    attributes:
      management_ip: 192.168.1.1
  - name: SW1
    type: S5700
connections:
  - from: R1:GigabitEthernet0/0/0
    to: SW1:GigabitEthernet0/0/1
    bandwidth: 1G
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	abs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(abs.Devices) != 2 || len(abs.Connections) != 1 {
		t.Errorf("loaded %d devices, %d connections; want 2, 1", len(abs.Devices), len(abs.Connections))
	}
	if abs.Devices[0].Attributes.ManagementIP != "192.168.1.1" {
		t.Errorf("management IP = %q, want 192.168.1.1", abs.Devices[0].Attributes.ManagementIP)
	}
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topo.json")
	data := `{"devices":[{"name":"R1","type":"AR2220"}],"connections":[]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	abs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(abs.Devices) != 1 {
		t.Errorf("device count = %d, want 1", len(abs.Devices))
	}
}

func TestLoad_NoDevices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yml")
	if err := os.WriteFile(path, []byte("devices: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for topology without devices")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	topo, err := testBuilder().Build(testAbstract())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	path := filepath.Join(t.TempDir(), "snap.json")
	if err := SaveSnapshot(topo, path); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(loaded.Devices) != len(topo.Devices) {
		t.Errorf("device count = %d, want %d", len(loaded.Devices), len(topo.Devices))
	}
	if len(loaded.Connections) != len(topo.Connections) {
		t.Errorf("connection count = %d, want %d", len(loaded.Connections), len(topo.Connections))
	}
	if loaded.Device("R1").ID != topo.Device("R1").ID {
		t.Error("device ID not preserved across snapshot round trip")
	}
}
