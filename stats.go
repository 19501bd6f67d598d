package galois

// StepStats is one round's ParaMeter record: how many tasks were
// admitted, and how many ultimately retired (a measure of the
// available parallelism actually exploited that round).
type StepStats struct {
	Round          int
	TasksScheduled int
	Parallelism    int
}

// Stats summarizes a completed ForEachOrdered* run. StepRecords is
// only populated when Config.EnableParaMeter is set.
type Stats struct {
	Loopname     string
	Mode         SpecMode
	Rounds       int
	TotalTasks   int
	TotalRetired int
	StepRecords  []StepStats
}

// EfficiencyPercent is TotalRetired as a percentage of TotalTasks.
// TotalTasks counts only the initial items, while TotalRetired also
// counts retired children pushed by committed tasks, so retired
// children can push the value above 100. A task that aborted and was
// retried counts once, when it finally retires.
func (s *Stats) EfficiencyPercent() float64 {
	if s.TotalTasks == 0 {
		return 0
	}
	return 100 * float64(s.TotalRetired) / float64(s.TotalTasks)
}

// AvgParallelism is the mean number of tasks retired per round.
func (s *Stats) AvgParallelism() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.TotalRetired) / float64(s.Rounds)
}
