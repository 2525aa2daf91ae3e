// Package trends aggregates completed sessions and body measurements into
// per-day volume, estimated 1RM series and a split-window volume change.
package trends

import (
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/ikrystian/kluska/internal/training"
	"github.com/ikrystian/kluska/internal/training/strength"
	"github.com/ikrystian/kluska/pkg"
)

const topExercisesLimit = 5

type VolumePoint struct {
	Date         string  `json:"date"`
	Volume       float64 `json:"volume"`
	SessionCount int     `json:"sessionCount"`
}

type OneRepMaxPoint struct {
	Date               string  `json:"date"`
	ExerciseName       string  `json:"exerciseName"`
	Weight             float64 `json:"weight"`
	Repetitions        int     `json:"repetitions"`
	EstimatedOneRepMax float64 `json:"estimatedOneRepMax"`
}

type BodyWeightPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// CircumferencePoint is encoded flat: {"date": "...", "waist": 80, ...}.
type CircumferencePoint struct {
	Date   string
	Values map[string]float64
}

func (p CircumferencePoint) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(p.Values)+1)
	for k, v := range p.Values {
		flat[k] = v
	}
	flat["date"] = p.Date
	return json.Marshal(flat)
}

func (p *CircumferencePoint) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	p.Values = make(map[string]float64, len(flat))
	for k, raw := range flat {
		if k == "date" {
			if err := json.Unmarshal(raw, &p.Date); err != nil {
				return err
			}
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		p.Values[k] = v
	}
	return nil
}

type ExerciseVolume struct {
	Name   string  `json:"name"`
	Volume float64 `json:"volume"`
}

type Summary struct {
	TotalVolume         float64          `json:"totalVolume"`
	VolumeChangePercent int              `json:"volumeChangePercent"`
	SessionCount        int              `json:"sessionCount"`
	TopExercises        []ExerciseVolume `json:"topExercises"`
}

type ProgressReport struct {
	VolumeTrends []VolumePoint `json:"volumeTrends"`
	// OneRepMax series keyed by exercise id, in session order.
	OneRepMax      map[string][]OneRepMaxPoint `json:"estimatedOneRepMax"`
	BodyWeight     []BodyWeightPoint           `json:"bodyWeight"`
	Circumferences []CircumferencePoint        `json:"circumferences"`
	Summary        Summary                     `json:"summary"`
}

func dayKey(t time.Time) string {
	return t.UTC().Format(pkg.DateLayout)
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// ComputeProgress builds the progress report for the sessions completed and the
// measurements taken within [windowStart, windowEnd]. It never fails: no data
// yields an empty report.
func ComputeProgress(
	sessions []training.TrainingSession,
	measurements []training.BodyMeasurementSample,
	windowStart, windowEnd time.Time,
) ProgressReport {
	completed := make([]training.TrainingSession, 0, len(sessions))
	for _, s := range sessions {
		if s.IsCompleted() && inWindow(*s.CompletedAt, windowStart, windowEnd) {
			completed = append(completed, s)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].CompletedAt.Before(*completed[j].CompletedAt)
	})

	volumeByDay := make(map[string]*VolumePoint)
	oneRepMax := make(map[string][]OneRepMaxPoint)
	volumeByExercise := make(map[string]float64)

	for _, s := range completed {
		day := dayKey(*s.CompletedAt)
		point, ok := volumeByDay[day]
		if !ok {
			point = &VolumePoint{Date: day}
			volumeByDay[day] = point
		}
		point.SessionCount++

		for _, ex := range s.Exercises {
			if ex.Kind != training.ExerciseKindWeight {
				continue
			}

			volume := exerciseVolume(ex)
			point.Volume += volume
			volumeByExercise[ex.ExerciseName] += volume

			estimate, ok := strength.EstimateOneRepMax(ex.Observations)
			if !ok {
				continue
			}
			oneRepMax[ex.ExerciseID] = append(oneRepMax[ex.ExerciseID], OneRepMaxPoint{
				Date:               day,
				ExerciseName:       ex.ExerciseName,
				Weight:             estimate.Weight,
				Repetitions:        estimate.Repetitions,
				EstimatedOneRepMax: strength.Round(estimate.OneRepMax, 1),
			})
		}
	}

	volumeTrends := make([]VolumePoint, 0, len(volumeByDay))
	var totalVolume float64
	for _, p := range volumeByDay {
		p.Volume = math.Round(p.Volume)
		totalVolume += p.Volume
		volumeTrends = append(volumeTrends, *p)
	}
	sort.Slice(volumeTrends, func(i, j int) bool {
		return volumeTrends[i].Date < volumeTrends[j].Date
	})

	bodyWeight, circumferences := bodySeries(measurements, windowStart, windowEnd)

	return ProgressReport{
		VolumeTrends:   volumeTrends,
		OneRepMax:      oneRepMax,
		BodyWeight:     bodyWeight,
		Circumferences: circumferences,
		Summary: Summary{
			TotalVolume:         totalVolume,
			VolumeChangePercent: VolumeChangePercent(volumeTrends),
			SessionCount:        len(completed),
			TopExercises:        TopExercises(volumeByExercise, topExercisesLimit),
		},
	}
}

func exerciseVolume(ex training.ExercisePerformance) float64 {
	var volume float64
	for _, o := range ex.Observations {
		if o.Completed && o.Weight > 0 && o.Repetitions > 0 {
			volume += float64(o.Repetitions) * o.Weight
		}
	}
	return volume
}

// VolumeChangePercent compares the second half of the ascending series with the
// first half, split at floor(n/2). Zero volume in the first half yields 0.
func VolumeChangePercent(points []VolumePoint) int {
	mid := len(points) / 2
	var first, second float64
	for i, p := range points {
		if i < mid {
			first += p.Volume
		} else {
			second += p.Volume
		}
	}
	if first == 0 {
		return 0
	}
	return int(math.Round((second - first) / first * 100))
}

// TopExercises sorts by volume descending, equal volumes by name, and keeps the first limit.
func TopExercises(volumeByName map[string]float64, limit int) []ExerciseVolume {
	top := make([]ExerciseVolume, 0, len(volumeByName))
	for name, volume := range volumeByName {
		top = append(top, ExerciseVolume{Name: name, Volume: math.Round(volume)})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Volume != top[j].Volume {
			return top[i].Volume > top[j].Volume
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

func bodySeries(
	measurements []training.BodyMeasurementSample,
	windowStart, windowEnd time.Time,
) ([]BodyWeightPoint, []CircumferencePoint) {
	inRange := make([]training.BodyMeasurementSample, 0, len(measurements))
	for _, m := range measurements {
		if inWindow(m.Date, windowStart, windowEnd) {
			inRange = append(inRange, m)
		}
	}
	sort.SliceStable(inRange, func(i, j int) bool {
		return inRange[i].Date.Before(inRange[j].Date)
	})

	bodyWeight := make([]BodyWeightPoint, 0, len(inRange))
	circumferences := make([]CircumferencePoint, 0, len(inRange))
	for _, m := range inRange {
		day := dayKey(m.Date)
		if m.Weight != nil {
			bodyWeight = append(bodyWeight, BodyWeightPoint{Date: day, Weight: *m.Weight})
		}
		values := make(map[string]float64, len(m.Circumferences))
		for k, v := range m.Circumferences {
			values[k] = v
		}
		circumferences = append(circumferences, CircumferencePoint{Date: day, Values: values})
	}
	return bodyWeight, circumferences
}
