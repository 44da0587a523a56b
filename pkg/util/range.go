package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ExpandInterfaceRange expands interface range notation into concrete names.
// Supports formats like:
//   - "GE0/0/1-24"  -> ["GE0/0/1", ..., "GE0/0/24"]
//   - "XGE1/0/49-52" -> ["XGE1/0/49", ..., "XGE1/0/52"]
//   - "Ethernet0/0/0" -> ["Ethernet0/0/0"] (no range)
//
// The range bound applies to the trailing digit run of the base name; the
// remainder of the name is the fixed prefix.
func ExpandInterfaceRange(spec string) ([]string, error) {
	if spec == "" {
		return nil, fmt.Errorf("empty interface range")
	}

	dash := strings.LastIndex(spec, "-")
	if dash < 0 {
		return []string{spec}, nil
	}

	base := spec[:dash]
	endPart := spec[dash+1:]

	prefix := strings.TrimRight(base, "0123456789")
	if prefix == base {
		// No trailing digits before the dash; the dash is part of the
		// name itself (e.g. "WLAN-Radio0/0/0").
		return []string{spec}, nil
	}

	start, err := strconv.Atoi(base[len(prefix):])
	if err != nil {
		return nil, fmt.Errorf("invalid start value in range %s: %v", spec, err)
	}
	end, err := strconv.Atoi(endPart)
	if err != nil {
		return nil, fmt.Errorf("invalid end value in range %s: %v", spec, err)
	}
	if start > end {
		return nil, fmt.Errorf("start value %d greater than end value %d in range %s", start, end, spec)
	}

	result := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		result = append(result, fmt.Sprintf("%s%d", prefix, i))
	}
	return result, nil
}

// RangeCount returns the number of interfaces an interface-range spec
// expands to, without materializing the names.
func RangeCount(spec string) (int, error) {
	names, err := ExpandInterfaceRange(spec)
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

// TrailingIndex extracts the trailing digit run of an interface name as
// its numeric index. Names without a trailing digit run yield 0.
// "GigabitEthernet0/0/23" -> 23, "Vlanif1" -> 1, "mgmt" -> 0.
func TrailingIndex(name string) int {
	end := len(name)
	start := end
	for start > 0 && name[start-1] >= '0' && name[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0
	}
	n, err := strconv.Atoi(name[start:end])
	if err != nil {
		return 0
	}
	return n
}
