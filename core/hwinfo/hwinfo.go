// Package hwinfo gathers hardware information.
package hwinfo

import (
	"github.com/usnistgov/parhist/core/logging"
	"github.com/zyedidia/generic"
)

var logger = logging.New("hwinfo")

// CoreInfo describes a logical CPU core.
type CoreInfo struct {
	ID          int `json:"id"`
	NumaSocket  int `json:"numaSocket"`
	PhysicalKey int `json:"physicalKey"`
}

// Cores contains information about CPU cores.
type Cores []CoreInfo

// ByNumaSocket classifies cores as map[NumaSocket]Cores.
func (cores Cores) ByNumaSocket() (m map[int]Cores) {
	m = map[int]Cores{}
	for _, core := range cores {
		m[core.NumaSocket] = append(m[core.NumaSocket], core)
	}
	return m
}

// MaxNumaSocket determines the maximum NUMA socket.
func (cores Cores) MaxNumaSocket() int {
	maxSocket := -1
	for _, core := range cores {
		maxSocket = generic.Max(maxSocket, core.NumaSocket)
	}
	return maxSocket
}

// IDs returns logical core IDs.
func (cores Cores) IDs() (list []int) {
	for _, core := range cores {
		list = append(list, core.ID)
	}
	return list
}

// ListPrimary returns a list of logical cores that are the first logical core in each physical core.
func (cores Cores) ListPrimary() []int {
	return cores.listHyperThread(false)
}

// ListSecondary returns a list of logical cores that are not in ListPrimary().
func (cores Cores) ListSecondary() []int {
	return cores.listHyperThread(true)
}

func (cores Cores) listHyperThread(secondary bool) (list []int) {
	ht := map[int]bool{}
	for _, core := range cores {
		if ht[core.PhysicalKey] == secondary {
			list = append(list, core.ID)
		}
		ht[core.PhysicalKey] = true
	}
	return list
}

// MemInfo describes system memory in octets.
type MemInfo struct {
	Total     uint64 `json:"total"`
	Available uint64 `json:"available"`
}

// Provider provides information about hardware.
type Provider interface {
	// Cores provides information about CPU cores usable by this process.
	Cores() Cores

	// Memory provides information about system memory.
	// ok is false if the information is unavailable.
	Memory() (mem MemInfo, ok bool)
}

// Default is the default Provider implementation.
var Default Provider = &procinfoProvider{}

// Static is a Provider that returns fixed information.
type Static struct {
	CoreList Cores
	Mem      *MemInfo
}

var _ Provider = Static{}

// Cores implements Provider interface.
func (p Static) Cores() Cores {
	return p.CoreList
}

// Memory implements Provider interface.
func (p Static) Memory() (mem MemInfo, ok bool) {
	if p.Mem == nil {
		return MemInfo{}, false
	}
	return *p.Mem, true
}

// Uniform constructs a Static provider with n logical cores on one NUMA socket.
// Every pair of consecutive logical cores shares a physical core if ht is true.
func Uniform(n int, ht bool) (p Static) {
	for i := 0; i < n; i++ {
		core := CoreInfo{ID: i, PhysicalKey: i}
		if ht {
			core.PhysicalKey = i / 2
		}
		p.CoreList = append(p.CoreList, core)
	}
	return p
}
