package topology

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ensp-automation/enspgen/pkg/catalog"
	"github.com/ensp-automation/enspgen/pkg/configgen"
	"github.com/ensp-automation/enspgen/pkg/util"
)

// TopologyVersion is stamped into every built topology.
const TopologyVersion = "1.0"

// Builder resolves abstract topologies into fully expanded topology
// graphs. It is stateless and reentrant; each Build call produces an
// independent Topology.
type Builder struct {
	catalog *catalog.Catalog
	gen     *configgen.Generator
}

// NewBuilder creates a builder over the given catalog and generator.
func NewBuilder(cat *catalog.Catalog, gen *configgen.Generator) *Builder {
	return &Builder{catalog: cat, gen: gen}
}

// Build resolves every device through the catalog, expands interface
// layouts, generates configuration text, and carries connections over.
// An unresolvable device type or a malformed endpoint aborts the build;
// a connection referencing an unknown device or interface does not —
// that check is deferred to Validate.
func (b *Builder) Build(abs *AbstractTopology) (*Topology, error) {
	topo := &Topology{
		Version:     TopologyVersion,
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
	}

	for _, ad := range abs.Devices {
		dev, err := b.buildDevice(ad)
		if err != nil {
			return nil, err
		}
		topo.Devices = append(topo.Devices, dev)
	}

	for _, ac := range abs.Connections {
		conn, err := buildConnection(ac)
		if err != nil {
			return nil, err
		}
		topo.Connections = append(topo.Connections, conn)
	}

	linkInterfaces(topo)

	util.Infof("built topology: %d devices, %d connections",
		len(topo.Devices), len(topo.Connections))
	return topo, nil
}

func (b *Builder) buildDevice(ad AbstractDevice) (*Device, error) {
	spec, err := b.catalog.Resolve(ad.Type)
	if err != nil {
		return nil, fmt.Errorf("resolving device %s: %w", ad.Name, err)
	}

	var interfaces []Interface
	for _, rangeSpec := range spec.Interfaces {
		names, err := util.ExpandInterfaceRange(rangeSpec)
		if err != nil {
			return nil, fmt.Errorf("expanding interfaces of %s: %w", ad.Name, err)
		}
		for _, name := range names {
			interfaces = append(interfaces, Interface{Name: name})
		}
	}

	config := b.gen.Generate(spec.Class, configgen.DeviceData{
		Name:         ad.Name,
		Type:         ad.Type,
		ManagementIP: ad.Attributes.ManagementIP,
		SubnetMask:   ad.Attributes.SubnetMask,
		VLANs:        ad.Attributes.VLANs,
	}, spec.Template)

	return &Device{
		ID:         strings.ToUpper(uuid.New().String()),
		Name:       ad.Name,
		Type:       ad.Type,
		Class:      spec.Class,
		Model:      spec.Model,
		Version:    spec.Version,
		Config:     config,
		Interfaces: interfaces,
	}, nil
}

func buildConnection(ac AbstractConnection) (*Connection, error) {
	srcDev, srcIface, err := SplitEndpoint(ac.From)
	if err != nil {
		return nil, err
	}
	dstDev, dstIface, err := SplitEndpoint(ac.To)
	if err != nil {
		return nil, err
	}

	bandwidth := ac.Bandwidth
	if bandwidth == "" {
		bandwidth = "1G"
	}

	return &Connection{
		Source:    JoinEndpoint(srcDev, srcIface),
		Target:    JoinEndpoint(dstDev, dstIface),
		Bandwidth: bandwidth,
	}, nil
}

// linkInterfaces records informational back-references on interfaces
// whose endpoints resolve. Dangling endpoints are left untouched for
// the validator to flag.
func linkInterfaces(topo *Topology) {
	for _, conn := range topo.Connections {
		srcDev, srcIface, _ := SplitEndpoint(conn.Source)
		dstDev, dstIface, _ := SplitEndpoint(conn.Target)
		markConnected(topo, srcDev, srcIface, dstDev, dstIface)
		markConnected(topo, dstDev, dstIface, srcDev, srcIface)
	}
}

func markConnected(topo *Topology, devName, ifaceName, remoteDev, remoteIface string) {
	dev := topo.Device(devName)
	if dev == nil {
		return
	}
	for i := range dev.Interfaces {
		if dev.Interfaces[i].Name == ifaceName {
			dev.Interfaces[i].Connected = true
			dev.Interfaces[i].RemoteDevice = remoteDev
			dev.Interfaces[i].RemoteInterface = remoteIface
			return
		}
	}
}
