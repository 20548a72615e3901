package hwinfo

import (
	"fmt"
	"math/big"
	"runtime"

	procinfo "github.com/c9s/goprocinfo/linux"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

const (
	pathCPUInfo       = "/proc/cpuinfo"
	pathMemInfo       = "/proc/meminfo"
	pathProcessStatus = "/proc/self/status"
	pathSystemNode    = "/sys/devices/system/node"
	maxPhysicalCore   = 4096
	maxNumaNode       = 32
)

type procinfoProvider struct {
	cachedCores Cores
}

func (p *procinfoProvider) Cores() (cores Cores) {
	if len(p.cachedCores) > 0 {
		return p.cachedCores
	}

	cores, e := p.readCores()
	if e != nil || len(cores) == 0 {
		logger.Warn("cannot read CPU topology, assuming uniform cores",
			zap.Int("n", runtime.NumCPU()),
			zap.Error(e),
		)
		cores = Uniform(runtime.NumCPU(), false).CoreList
	}

	p.cachedCores = cores
	return cores
}

func (p *procinfoProvider) readCores() (cores Cores, e error) {
	status, e := procinfo.ReadProcessStatus(pathProcessStatus)
	if e != nil {
		return nil, fmt.Errorf("%s %w", pathProcessStatus, e)
	}
	allowed := &big.Int{}
	for _, word := range status.CpusAllowed {
		allowed.Lsh(allowed, 32)
		allowed.Add(allowed, big.NewInt(int64(word)))
	}

	cpuInfo, e := procinfo.ReadCPUInfo(pathCPUInfo)
	if e != nil {
		return nil, fmt.Errorf("%s %w", pathCPUInfo, e)
	}

	for _, processor := range cpuInfo.Processors {
		if allowed.Bit(int(processor.Id)) == 0 || processor.CoreId >= maxPhysicalCore {
			continue
		}
		cores = append(cores, CoreInfo{
			ID:          int(processor.Id),
			NumaSocket:  p.findNumaSocket(processor),
			PhysicalKey: maxPhysicalCore*int(processor.PhysicalId) + int(processor.CoreId),
		})
	}
	return cores, nil
}

func (procinfoProvider) findNumaSocket(processor procinfo.Processor) int {
	for i := 0; i < maxNumaNode; i++ {
		path := fmt.Sprintf("%s/node%d/cpu%d", pathSystemNode, i, processor.Id)
		if unix.Access(path, unix.F_OK) == nil {
			return i
		}
	}
	return 0
}

func (procinfoProvider) Memory() (mem MemInfo, ok bool) {
	mi, e := procinfo.ReadMemInfo(pathMemInfo)
	if e != nil {
		logger.Debug("cannot read memory information", zap.Error(e))
		return MemInfo{}, false
	}
	// /proc/meminfo reports kibibytes
	mem.Total = mi.MemTotal << 10
	mem.Available = mi.MemAvailable << 10
	return mem, mem.Available > 0
}
