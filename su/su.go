// Service unit (SU) cost models.
//
// An SU is a core-hour times the cluster's charge rate.  Which model applies depends on what is
// known about a job: Fixed when the exact CPU allocation is known, Utilization when only a
// per-task CPU percentage is known, Charge for raw core counts against a billing rate.  The
// cores-per-CPU figure is always a parameter, the 64 of the reference cluster is bound in the
// cluster profile and not here.

package su

// SU for a task that held cpuCount CPUs for the whole duration.

func Fixed(durationHours float64, coresPerCpu, cpuCount int) float64 {
	return durationHours * float64(coresPerCpu) * float64(cpuCount)
}

// SU for a task of which only the CPU utilization percentage is known.

func Utilization(cpuPercent float64, coresPerCpu int, durationHours float64) float64 {
	return (cpuPercent / 100) * float64(coresPerCpu) * durationHours
}

// Core count actually exercised by a task at the given utilization.

func UsedCores(cpuPercent float64, coresPerCpu int) float64 {
	return (cpuPercent / 100) * float64(coresPerCpu)
}

// SU charged for holding cores for wallTimeHours at the cluster's core-hour rate.

func Charge(cores int, wallTimeHours, suPerCoreHour float64) float64 {
	return float64(cores) * wallTimeHours * suPerCoreHour
}
