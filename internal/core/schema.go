package core

import (
	"github.com/samber/lo"
)

// FieldSchema describes one numeric field of a tracker: its wire name,
// display label, unit, and per-day aggregation kind.
type FieldSchema struct {
	Name  string
	Label string
	Unit  string
	Agg   Aggregation
}

// TrackerSchema is the single canonical definition of a tracker
// category. Forms, charts, and legends all read the same schema, so
// field lists cannot drift apart.
type TrackerSchema struct {
	ID     string
	Name   string
	Icon   string
	Fields []FieldSchema
}

// FieldNames returns the tracker's field names in schema order.
func (t TrackerSchema) FieldNames() []string {
	return lo.Map(t.Fields, func(f FieldSchema, _ int) string { return f.Name })
}

// Field looks a field up by wire name.
func (t TrackerSchema) Field(name string) (FieldSchema, bool) {
	return lo.Find(t.Fields, func(f FieldSchema) bool { return f.Name == name })
}

// Aggregation returns the tracker's per-day aggregation kind. Mixed
// trackers declare it per field; the tracker-level kind is the one
// shared by the majority of fields and is what the series builder uses
// when charting the whole tracker.
func (t TrackerSchema) Aggregation() Aggregation {
	sums := lo.CountBy(t.Fields, func(f FieldSchema) bool { return f.Agg == AggSum })
	if sums*2 > len(t.Fields) {
		return AggSum
	}
	return AggAverage
}

// trackers is the ordered registry. Field names follow the backend's
// log tables; counts and durations aggregate by sum, sampled quantities
// by average.
var trackers = []TrackerSchema{
	{
		ID: "weight", Name: "Weight", Icon: "⚖️",
		Fields: []FieldSchema{
			{Name: "weight", Label: "Weight", Unit: "lbs", Agg: AggAverage},
		},
	},
	{
		ID: "water", Name: "Water", Icon: "💧",
		Fields: []FieldSchema{
			{Name: "amount", Label: "Amount", Unit: "oz", Agg: AggSum},
		},
	},
	{
		ID: "steps", Name: "Steps", Icon: "👟",
		Fields: []FieldSchema{
			{Name: "steps", Label: "Steps", Unit: "steps", Agg: AggSum},
		},
	},
	{
		ID: "cardio", Name: "Cardio", Icon: "🏃",
		Fields: []FieldSchema{
			{Name: "duration", Label: "Duration", Unit: "min", Agg: AggSum},
			{Name: "distance", Label: "Distance", Unit: "mi", Agg: AggSum},
			{Name: "calories_burned", Label: "Calories", Unit: "kcal", Agg: AggSum},
			{Name: "heart_rate", Label: "Heart Rate", Unit: "bpm", Agg: AggAverage},
		},
	},
	{
		ID: "sleep", Name: "Sleep", Icon: "😴",
		Fields: []FieldSchema{
			{Name: "time_in_light_sleep", Label: "Light Sleep", Unit: "min", Agg: AggSum},
			{Name: "time_in_deep_sleep", Label: "Deep Sleep", Unit: "min", Agg: AggSum},
			{Name: "time_in_rem_sleep", Label: "REM Sleep", Unit: "min", Agg: AggSum},
			{Name: "number_of_times_woke_up", Label: "Wake-ups", Unit: "times", Agg: AggSum},
			{Name: "resting_heart_rate", Label: "Resting HR", Unit: "bpm", Agg: AggAverage},
		},
	},
	{
		ID: "measurements", Name: "Measurements", Icon: "📏",
		Fields: []FieldSchema{
			{Name: "upper_arm", Label: "Upper Arm", Unit: "in", Agg: AggAverage},
			{Name: "lower_arm", Label: "Lower Arm", Unit: "in", Agg: AggAverage},
			{Name: "waist", Label: "Waist", Unit: "in", Agg: AggAverage},
			{Name: "shoulder", Label: "Shoulder", Unit: "in", Agg: AggAverage},
			{Name: "leg", Label: "Leg", Unit: "in", Agg: AggAverage},
			{Name: "calf", Label: "Calf", Unit: "in", Agg: AggAverage},
		},
	},
	{
		ID: "health", Name: "Health", Icon: "❤️",
		Fields: []FieldSchema{
			{Name: "resting_heart_rate", Label: "Resting HR", Unit: "bpm", Agg: AggAverage},
			{Name: "blood_pressure_systolic", Label: "BP Systolic", Unit: "mmHg", Agg: AggAverage},
			{Name: "blood_pressure_diastolic", Label: "BP Diastolic", Unit: "mmHg", Agg: AggAverage},
			{Name: "morning_energy", Label: "Energy", Unit: "1-10", Agg: AggAverage},
			{Name: "stress_level", Label: "Stress", Unit: "1-10", Agg: AggAverage},
			{Name: "mood", Label: "Mood", Unit: "1-10", Agg: AggAverage},
			{Name: "soreness", Label: "Soreness", Unit: "1-10", Agg: AggAverage},
			{Name: "illness_level", Label: "Illness", Unit: "1-10", Agg: AggAverage},
		},
	},
	{
		ID: "workouts", Name: "Workouts", Icon: "🏋️",
		Fields: []FieldSchema{
			{Name: "weight", Label: "Weight", Unit: "lbs", Agg: AggAverage},
			{Name: "reps", Label: "Reps", Unit: "reps", Agg: AggSum},
			{Name: "rir", Label: "RIR", Unit: "0-10", Agg: AggAverage},
			{Name: "rest_time", Label: "Rest", Unit: "s", Agg: AggAverage},
		},
	},
}

// Trackers returns the registry in display order.
func Trackers() []TrackerSchema {
	out := make([]TrackerSchema, len(trackers))
	copy(out, trackers)
	return out
}

// TrackerByID looks a tracker schema up by its ID.
func TrackerByID(id string) (TrackerSchema, bool) {
	return lo.Find(trackers, func(t TrackerSchema) bool { return t.ID == id })
}

// TrackerIDs returns all registered tracker IDs in display order.
func TrackerIDs() []string {
	return lo.Map(trackers, func(t TrackerSchema, _ int) string { return t.ID })
}
