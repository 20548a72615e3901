package main

import (
	"os"

	"github.com/urfave/cli/v2"
	"github.com/usnistgov/parhist/core/hwinfo"
)

type numaSocketReport struct {
	Socket    int   `json:"socket"`
	Primary   []int `json:"primary"`
	Secondary []int `json:"secondary,omitempty"`
}

type coresReport struct {
	Cores       hwinfo.Cores       `json:"cores"`
	NumaSockets []numaSocketReport `json:"numaSockets"`
	Memory      *hwinfo.MemInfo    `json:"memory,omitempty"`
}

// makeCoresReport groups logical cores by NUMA socket, separating hyper-thread siblings.
func makeCoresReport(p hwinfo.Provider) (r coresReport) {
	r.Cores = p.Cores()
	byNuma := r.Cores.ByNumaSocket()
	for socket, last := 0, r.Cores.MaxNumaSocket(); socket <= last; socket++ {
		cores, ok := byNuma[socket]
		if !ok {
			continue
		}
		r.NumaSockets = append(r.NumaSockets, numaSocketReport{
			Socket:    socket,
			Primary:   cores.ListPrimary(),
			Secondary: cores.ListSecondary(),
		})
	}
	if mem, ok := p.Memory(); ok {
		r.Memory = &mem
	}
	return r
}

func init() {
	defineCommand(&cli.Command{
		Name:  "cores",
		Usage: "Show CPU cores, NUMA sockets, and available memory.",
		Action: func(c *cli.Context) error {
			return printJSON(os.Stdout, makeCoresReport(hwinfo.Default))
		},
	})
}
