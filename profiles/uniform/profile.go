package uniform

import "github.com/aldehir/rangesum/workload"

func NewProfile() workload.Profile {
	return workload.Profile{
		Name:     "uniform",
		PUpdate:  0.03,
		MinValue: 1,
		MaxValue: 100,
	}
}
