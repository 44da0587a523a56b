package topofile

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/ensp-automation/enspgen/pkg/topology"
	"github.com/ensp-automation/enspgen/pkg/util"
)

// FormatVersion is the schema version attribute the simulator's parser
// expects on the root element.
const FormatVersion = "1.3.00.100"

// Device grid placement: three devices per row from a fixed origin.
const (
	originX  = 170.0
	originY  = 170.0
	spacingX = 150.0
	spacingY = 100.0
	gridCols = 3
)

type topoXML struct {
	XMLName xml.Name   `xml:"topo"`
	Version string     `xml:"version,attr"`
	Devices devicesXML `xml:"devices"`
	Lines   linesXML   `xml:"lines"`
	// Always-present empty elements the consumer's parser requires.
	Shapes  struct{} `xml:"shapes"`
	TxtTips struct{} `xml:"txttips"`
}

type devicesXML struct {
	Devices []devXML `xml:"dev"`
}

type devXML struct {
	ID    string  `xml:"id,attr"`
	Name  string  `xml:"name,attr"`
	Model string  `xml:"model,attr"`
	CX    string  `xml:"cx,attr"`
	CY    string  `xml:"cy,attr"`
	Slot  slotXML `xml:"slot"`
}

type slotXML struct {
	Number      string        `xml:"number,attr"`
	IsMainBoard string        `xml:"isMainBoard,attr"`
	Interfaces  []ifaceXML    `xml:"interface"`
	Maps        []ifaceMapXML `xml:"interfaceMap"`
}

type ifaceXML struct {
	SzType string `xml:"sztype,attr"`
	Name   string `xml:"interfacename,attr"`
	Count  string `xml:"count,attr"`
}

type ifaceMapXML struct {
	SzType          string `xml:"sztype,attr"`
	Name            string `xml:"interfacename,attr"`
	DisplayNo       string `xml:"displayNo,attr"`
	RemoteDisplayNo string `xml:"remoteDisplayNo,attr"`
	AdapterUID      string `xml:"adapterUid,attr"`
	IsOpen          string `xml:"isOpen,attr"`
	UDPPort         string `xml:"udpPort,attr"`
	PeerIPAdd       string `xml:"peerIPAdd,attr"`
	PeerIP          string `xml:"peerIP,attr"`
	PeerPort        string `xml:"peerPort,attr"`
}

type linesXML struct {
	Lines []lineXML `xml:"line"`
}

type lineXML struct {
	SrcDeviceID  string           `xml:"srcDeviceID,attr"`
	DestDeviceID string           `xml:"destDeviceID,attr"`
	Pair         interfacePairXML `xml:"interfacePair"`
}

// interfacePairXML carries the line-type label and endpoint indices.
// The geometry, offset, and speedlimit attributes are fixed values the
// consumer's parser requires but this generator never positions.
type interfacePairXML struct {
	LineName          string `xml:"lineName,attr"`
	SrcIndex          string `xml:"srcIndex,attr"`
	SrcBoundRectMoved string `xml:"srcBoundRectIsMoved,attr"`
	SrcBoundRectX     string `xml:"srcBoundRect_X,attr"`
	SrcBoundRectY     string `xml:"srcBoundRect_Y,attr"`
	SrcOffsetX        string `xml:"srcOffset_X,attr"`
	SrcOffsetY        string `xml:"srcOffset_Y,attr"`
	TarIndex          string `xml:"tarIndex,attr"`
	TarBoundRectMoved string `xml:"tarBoundRectIsMoved,attr"`
	TarBoundRectX     string `xml:"tarBoundRect_X,attr"`
	TarBoundRectY     string `xml:"tarBoundRect_Y,attr"`
	TarOffsetX        string `xml:"tarOffset_X,attr"`
	TarOffsetY        string `xml:"tarOffset_Y,attr"`
	SrcIfIndex        string `xml:"srcIfindex,attr"`
	TarIfIndex        string `xml:"tarIfindex,attr"`
	SpeedLimit        string `xml:"speedlimit,attr"`
}

// Serializer renders topologies into the simulator's .topo format.
type Serializer struct {
	adapters AdapterSource
}

// NewSerializer creates a serializer. A nil adapter source disables the
// host adapter query; cloud devices then bind to the placeholder.
func NewSerializer(adapters AdapterSource) *Serializer {
	return &Serializer{adapters: adapters}
}

// Serialize writes the topology to outputPath in .topo XML form. A
// connection referencing an unknown device is a serialization failure,
// as is a file write that fails after one raw-byte retry. A failed
// serialization never leaves a file reported as valid.
func (s *Serializer) Serialize(t *topology.Topology, outputPath string) error {
	doc, err := s.buildDocument(t)
	if err != nil {
		return err
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return util.NewSerializationError(outputPath, "encoding topology XML", err)
	}
	content := []byte(xml.Header + string(body) + "\n")

	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		util.Warnf("primary write of %s failed, retrying raw write: %v", outputPath, err)
		if err := rawWrite(outputPath, content); err != nil {
			return util.NewSerializationError(outputPath, "writing topology file", err)
		}
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return util.NewSerializationError(outputPath, "verifying topology file", err)
	}
	if info.Size() == 0 {
		return util.NewSerializationError(outputPath, "topology file is empty", nil)
	}

	util.Infof("wrote %s (%d bytes, %d devices, %d lines)",
		outputPath, info.Size(), len(doc.Devices.Devices), len(doc.Lines.Lines))
	return nil
}

func (s *Serializer) buildDocument(t *topology.Topology) (*topoXML, error) {
	doc := &topoXML{Version: FormatVersion}
	idByName := make(map[string]string, len(t.Devices))

	for i, dev := range t.Devices {
		id := dev.ID
		if id == "" {
			id = strings.ToUpper(uuid.New().String())
		}
		idByName[dev.Name] = id

		col := i % gridCols
		row := i / gridCols
		model := CanonicalModel(dev.Type)

		d := devXML{
			ID:    id,
			Name:  dev.Name,
			Model: model,
			CX:    fmt.Sprintf("%.6f", originX+float64(col)*spacingX),
			CY:    fmt.Sprintf("%.6f", originY+float64(row)*spacingY),
			Slot: slotXML{
				Number:      "slot17",
				IsMainBoard: "1",
			},
		}

		for _, layout := range HardwareLayout(model) {
			d.Slot.Interfaces = append(d.Slot.Interfaces, ifaceXML{
				SzType: layout.SzType,
				Name:   layout.Prefix,
				Count:  fmt.Sprintf("%d", layout.Count),
			})
		}

		if model == "Cloud" {
			d.Slot.Maps = s.cloudAdapterMaps(dev.Name)
		}

		doc.Devices.Devices = append(doc.Devices.Devices, d)
	}

	for _, conn := range t.Connections {
		line, err := buildLine(conn, idByName)
		if err != nil {
			return nil, err
		}
		doc.Lines.Lines = append(doc.Lines.Lines, line)
	}

	return doc, nil
}

// cloudAdapterMaps emits the two host-adapter bindings of a cloud
// device: one open binding onto a host adapter (best-effort, falling
// back to the placeholder identifier) and one closed binding for the
// virtual side.
func (s *Serializer) cloudAdapterMaps(device string) []ifaceMapXML {
	adapterUID := PlaceholderAdapterUID
	if s.adapters != nil {
		uid, err := s.adapters.AdapterUID()
		if err != nil {
			util.WithDevice(device).Debugf("host adapter query failed, using placeholder: %v", err)
		} else {
			adapterUID = uid
		}
	}

	return []ifaceMapXML{
		{
			SzType: "Ethernet", Name: "Ethernet",
			DisplayNo: "1", RemoteDisplayNo: "2",
			AdapterUID: adapterUID, IsOpen: "1",
			UDPPort: "0", PeerIPAdd: "0.0.0.0", PeerIP: "0", PeerPort: "0",
		},
		{
			SzType: "Ethernet", Name: "Ethernet",
			DisplayNo: "2", RemoteDisplayNo: "1",
			AdapterUID: "", IsOpen: "0",
			UDPPort: "0", PeerIPAdd: "0.0.0.0", PeerIP: "0", PeerPort: "0",
		},
	}
}

func buildLine(conn *topology.Connection, idByName map[string]string) (lineXML, error) {
	srcDev, srcIface, err := topology.SplitEndpoint(conn.Source)
	if err != nil {
		return lineXML{}, util.NewSerializationError("", fmt.Sprintf("invalid endpoint %q", conn.Source), err)
	}
	dstDev, dstIface, err := topology.SplitEndpoint(conn.Target)
	if err != nil {
		return lineXML{}, util.NewSerializationError("", fmt.Sprintf("invalid endpoint %q", conn.Target), err)
	}

	srcID, ok := idByName[srcDev]
	if !ok {
		return lineXML{}, util.NewSerializationError("",
			fmt.Sprintf("connection %s -> %s references unknown device %s", conn.Source, conn.Target, srcDev), nil)
	}
	dstID, ok := idByName[dstDev]
	if !ok {
		return lineXML{}, util.NewSerializationError("",
			fmt.Sprintf("connection %s -> %s references unknown device %s", conn.Source, conn.Target, dstDev), nil)
	}

	return lineXML{
		SrcDeviceID:  srcID,
		DestDeviceID: dstID,
		Pair: interfacePairXML{
			LineName:          "Copper",
			SrcIndex:          fmt.Sprintf("%d", util.TrailingIndex(srcIface)),
			SrcBoundRectMoved: "1",
			SrcBoundRectX:     "251.898056",
			SrcBoundRectY:     "238.959305",
			SrcOffsetX:        "0.000000",
			SrcOffsetY:        "0.000000",
			TarIndex:          fmt.Sprintf("%d", util.TrailingIndex(dstIface)),
			TarBoundRectMoved: "1",
			TarBoundRectX:     "339.101959",
			TarBoundRectY:     "249.040695",
			TarOffsetX:        "0.000000",
			TarOffsetY:        "0.000000",
			SrcIfIndex:        "0",
			TarIfIndex:        "0",
			SpeedLimit:        "100.0",
		},
	}, nil
}

func rawWrite(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
