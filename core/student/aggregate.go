package student

// Fold merges one engagement score into the student's running average
// for the given week and subject, and returns the updated aggregate.
//
// The update is an exact readings-weighted mean, not a decayed average:
// newScore = (score*readings + incoming) / (readings + 1). Early and
// late observations carry equal weight. A week record is appended only
// when no record with the same key exists yet; within a week, subjects
// start from {Medium, 0, 0}.
func (s *Student) Fold(week, subject string, score float64) PerformanceSubject {
	rec := s.weekRecord(week)
	if rec == nil {
		s.Performance = append(s.Performance, WeeklyRecord{
			Week:     week,
			Subjects: make(map[string]PerformanceSubject),
		})
		rec = &s.Performance[len(s.Performance)-1]
	}
	if rec.Subjects == nil {
		rec.Subjects = make(map[string]PerformanceSubject)
	}

	perf, ok := rec.Subjects[subject]
	if !ok {
		perf = PerformanceSubject{Attention: AttentionMedium, Score: 0, Readings: 0}
	}

	readings := perf.Readings + 1
	avg := (perf.Score*float64(perf.Readings) + score) / float64(readings)

	perf = PerformanceSubject{
		Attention: AttentionFor(avg),
		Score:     avg,
		Readings:  readings,
	}
	rec.Subjects[subject] = perf
	return perf
}
