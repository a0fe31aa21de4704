package hotspot

import "github.com/aldehir/rangesum/workload"

// NewProfile returns a read-mostly stream concentrated on a small pool of
// wide ranges.
func NewProfile() workload.Profile {
	return workload.Profile{
		Name:     "hotspot",
		HotPool:  30,
		PHot:     0.95,
		PUpdate:  0.03,
		MinValue: 1,
		MaxValue: 100,
	}
}
