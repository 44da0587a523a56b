package topofile

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// PlaceholderAdapterUID is substituted for cloud-device adapter
// bindings when no host adapter can be resolved.
const PlaceholderAdapterUID = `\Device\NPF_{8D6783D1-0E30-4C3F-9C5E-5A84041B0E0E}`

// ErrAdapterUnsupported indicates the host platform cannot enumerate
// network adapters in the form the simulator expects.
var ErrAdapterUnsupported = errors.New("host adapter query not supported on this platform")

// AdapterSource resolves the host network adapter identifier bound to
// cloud devices. Implementations are best-effort: callers treat any
// error as "use the placeholder".
type AdapterSource interface {
	AdapterUID() (string, error)
}

type fixedAdapterSource string

func (s fixedAdapterSource) AdapterUID() (string, error) { return string(s), nil }

// FixedAdapterSource returns a source that always yields uid.
func FixedAdapterSource(uid string) AdapterSource {
	return fixedAdapterSource(uid)
}

const adapterQueryTimeout = 3 * time.Second

type systemAdapterSource struct {
	timeout time.Duration
}

// SystemAdapterSource queries the host for the identifier of an active
// network adapter. Only Windows exposes the NPF adapter namespace the
// simulator binds to; other platforms report ErrAdapterUnsupported.
func SystemAdapterSource() AdapterSource {
	return &systemAdapterSource{timeout: adapterQueryTimeout}
}

func (s *systemAdapterSource) AdapterUID() (string, error) {
	if runtime.GOOS != "windows" {
		return "", ErrAdapterUnsupported
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "powershell", "-Command",
		"Get-NetAdapter | Where-Object {$_.Status -eq 'Up'} | ForEach-Object { $_ | Get-NetAdapterAdvancedProperty -RegistryKeyword 'NetCfgInstanceId' | Select-Object -ExpandProperty RegistryValue }").Output()
	if err != nil {
		return "", fmt.Errorf("querying network adapters: %w", err)
	}

	id := strings.TrimSpace(strings.SplitN(string(out), "\n", 2)[0])
	if id == "" {
		return "", errors.New("no active network adapter found")
	}
	return fmt.Sprintf(`\Device\NPF_{%s}`, id), nil
}
