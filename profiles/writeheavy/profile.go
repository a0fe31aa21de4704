package writeheavy

import "github.com/aldehir/rangesum/workload"

func NewProfile() workload.Profile {
	return workload.Profile{
		Name:     "writeheavy",
		HotPool:  30,
		PHot:     0.95,
		PUpdate:  0.25,
		MinValue: 1,
		MaxValue: 100,
	}
}
