package suggest

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/Wassimkraiem/plant-tracker/internal/catalog"
	"github.com/Wassimkraiem/plant-tracker/internal/garden"
)

// RuleFunc derives zero or more suggestions from a plant at now. It must
// not modify the plant and must not keep state between calls.
type RuleFunc func(p *garden.Plant, now time.Time, cat *catalog.Catalog) []Suggestion

// Rule is a named rule function.
type Rule struct {
	Name string
	Eval RuleFunc
}

// Rule names.
const (
	RuleWatering      = "watering"
	RuleOverdueTasks  = "overdue-tasks"
	RuleUpcomingTasks = "upcoming-tasks"
	RuleAge           = "age"
	RuleSeasonal      = "seasonal"
	RuleTypeTip       = "type-tip"
	RuleActivity      = "activity"
)

// Thresholds used by the rules, in whole days unless noted.
const (
	urgentGraceDays      = 2
	soonThresholdDays    = 1
	overwateringSample   = 3
	upcomingWindow       = 3 * day // duration
	youngPlantMaxAge     = 30
	careTaskNudgeAge     = 14
	lowActivityThreshold = 30
)

// DefaultRules returns the built-in rules in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: RuleWatering, Eval: wateringRule},
		{Name: RuleOverdueTasks, Eval: overdueTasksRule},
		{Name: RuleUpcomingTasks, Eval: upcomingTasksRule},
		{Name: RuleAge, Eval: ageRule},
		{Name: RuleSeasonal, Eval: seasonalRule},
		{Name: RuleTypeTip, Eval: typeTipRule},
		{Name: RuleActivity, Eval: activityRule},
	}
}

// wateringRule reports the watering schedule state and, independently,
// a watering cadence well above the configured frequency.
//
// Schedule branches are checked in order and at most one fires:
// urgent (daysSince > freq+2), due (daysSince >= freq), soon (dueIn <= 1).
func wateringRule(p *garden.Plant, now time.Time, _ *catalog.Catalog) []Suggestion {
	if !p.HasWateringHistory() {
		return []Suggestion{{
			Kind:     KindWarning,
			Title:    "No Watering History",
			Message:  fmt.Sprintf("%s has never been watered. Make sure to water it soon!", p.Name),
			Icon:     "💧",
			Priority: 10,
		}}
	}

	var out []Suggestion
	freq := p.WateringFrequencyDays
	daysSince := wholeDays(*p.LastWateredDate, now)
	dueIn := freq - daysSince

	switch {
	case daysSince > freq+urgentGraceDays:
		out = append(out, Suggestion{
			Kind:     KindWarning,
			Title:    "Urgent: Overdue Watering",
			Message:  fmt.Sprintf("%s is %d days overdue for watering! Water immediately to prevent stress.", p.Name, daysSince-freq),
			Icon:     "🚨",
			Priority: 10,
		})
	case daysSince >= freq:
		out = append(out, Suggestion{
			Kind:     KindWarning,
			Title:    "Watering Due",
			Message:  fmt.Sprintf("%s needs watering today. It's been %d days since last watering.", p.Name, daysSince),
			Icon:     "💧",
			Priority: 8,
		})
	case dueIn <= soonThresholdDays:
		out = append(out, Suggestion{
			Kind:     KindInfo,
			Title:    "Watering Soon",
			Message:  fmt.Sprintf("%s will need watering in %d day(s). Prepare to water soon!", p.Name, dueIn),
			Icon:     "📅",
			Priority: 5,
		})
	}

	if overwatered(p.WateringLogs.Items(), freq) {
		out = append(out, Suggestion{
			Kind:     KindInfo,
			Title:    "Possible Overwatering",
			Message:  fmt.Sprintf("You're watering %s more frequently than recommended. Monitor for yellowing leaves or soggy soil.", p.Name),
			Icon:     "⚠️",
			Priority: 6,
		})
	}

	return out
}

// overwatered reports whether the average gap between the three most
// recent waterings is below 70% of freq. Gaps are whole days.
func overwatered(logs []garden.WateringLog, freq int) bool {
	if len(logs) < overwateringSample {
		return false
	}

	// logs is a copy owned by the caller of Items.
	slices.SortStableFunc(logs, func(a, b garden.WateringLog) int {
		return b.WateredDate.Compare(a.WateredDate)
	})
	recent := logs[:overwateringSample]

	sum := 0
	for i := 0; i < len(recent)-1; i++ {
		sum += wholeDays(recent[i+1].WateredDate, recent[i].WateredDate)
	}
	gaps := len(recent) - 1

	// sum/gaps < 0.7*freq, kept in integers.
	return 10*sum < 7*freq*gaps
}

// overdueTasksRule summarizes open tasks whose due date has passed and
// names the one overdue the longest.
func overdueTasksRule(p *garden.Plant, now time.Time, _ *catalog.Catalog) []Suggestion {
	var overdue []garden.CareTask
	for _, t := range p.CareTasks.Items() {
		if t.IsOpen() && t.DueDate.Before(now) {
			overdue = append(overdue, t)
		}
	}
	if len(overdue) == 0 {
		return nil
	}

	slices.SortStableFunc(overdue, func(a, b garden.CareTask) int {
		return a.DueDate.Compare(*b.DueDate)
	})
	first := overdue[0]
	n := len(overdue)

	return []Suggestion{{
		Kind:     KindWarning,
		Title:    fmt.Sprintf("%d Overdue Task%s", n, plural(n > 1)),
		Message:  fmt.Sprintf("%s has %d overdue task%s. '%s' is %d days overdue.", p.Name, n, plural(n > 1), first.TaskName, wholeDays(*first.DueDate, now)),
		Icon:     "📋",
		Priority: 7,
	}}
}

// upcomingTasksRule points at the first open task, in stored order, that is
// due within the next three days.
func upcomingTasksRule(p *garden.Plant, now time.Time, _ *catalog.Catalog) []Suggestion {
	horizon := now.Add(upcomingWindow)
	for _, t := range p.CareTasks.Items() {
		if !t.IsOpen() || t.DueDate.Before(now) || t.DueDate.After(horizon) {
			continue
		}
		daysUntil := wholeDays(now, *t.DueDate)
		return []Suggestion{{
			Kind:     KindInfo,
			Title:    "Upcoming Task",
			Message:  fmt.Sprintf("%s: '%s' is due in %d day%s.", p.Name, t.TaskName, daysUntil, plural(daysUntil != 1)),
			Icon:     "📅",
			Priority: 4,
		}}
	}
	return nil
}

// ageRule covers establishment care for young plants and harvest
// milestones for tomatoes and cucumbers. Each check is independent.
func ageRule(p *garden.Plant, now time.Time, _ *catalog.Catalog) []Suggestion {
	var out []Suggestion
	age := wholeDays(p.PlantedDate, now)

	if age <= youngPlantMaxAge {
		out = append(out, Suggestion{
			Kind:     KindTip,
			Title:    "Young Plant Care",
			Message:  fmt.Sprintf("%s is only %d days old. Keep soil consistently moist and protect from extreme conditions during establishment.", p.Name, age),
			Icon:     "🌱",
			Priority: 3,
		})
	}

	if p.Type == "Tomato" && age >= 60 && age <= 70 {
		out = append(out, Suggestion{
			Kind:     KindSuccess,
			Title:    "Harvest Time Approaching",
			Message:  fmt.Sprintf("%s is about %d days old - tomatoes are typically ready to harvest around 60-80 days!", p.Name, age),
			Icon:     "🍅",
			Priority: 5,
		})
	}

	if p.Type == "Cucumber" && age >= 50 && age <= 60 {
		out = append(out, Suggestion{
			Kind:     KindSuccess,
			Title:    "Harvest Ready Soon",
			Message:  fmt.Sprintf("%s should start producing cucumbers soon! Check daily for 6-8 inch cucumbers.", p.Name),
			Icon:     "🥒",
			Priority: 5,
		})
	}

	return out
}

// seasonalRule emits the catalog advisory for the season of now, if it
// applies to the plant's type.
func seasonalRule(p *garden.Plant, now time.Time, cat *catalog.Catalog) []Suggestion {
	tip, ok := cat.Seasonal(catalog.SeasonOf(now.Month()))
	if !ok || !tip.AppliesTo(p.Type) {
		return nil
	}
	return []Suggestion{{
		Kind:     KindTip,
		Title:    tip.Title,
		Message:  catalog.Render(tip.Message, p.Name),
		Icon:     tip.Icon,
		Priority: tip.Priority,
	}}
}

// typeTipRule picks one catalog tip for the plant's type. The choice is
// stable for a plant within a calendar day.
func typeTipRule(p *garden.Plant, now time.Time, cat *catalog.Catalog) []Suggestion {
	tips := cat.TipsFor(p.Type)
	if len(tips) == 0 {
		return nil
	}
	tip := tips[pickTip(p.ID, now, len(tips))]
	return []Suggestion{{
		Kind:     KindTip,
		Title:    tip.Title,
		Message:  fmt.Sprintf("%s: %s", p.Name, tip.Message),
		Icon:     tip.Icon,
		Priority: 2,
	}}
}

// pickTip returns an index in [0, n) from a generator seeded with
// plantID + day of year. Each call owns its generator.
func pickTip(plantID int64, now time.Time, n int) int {
	rng := rand.New(rand.NewSource(plantID + int64(now.YearDay())))
	return rng.Intn(n)
}

// activityRule nudges owners of established plants without care tasks and
// plants whose last recorded watering is over a month old.
func activityRule(p *garden.Plant, now time.Time, _ *catalog.Catalog) []Suggestion {
	var out []Suggestion

	if wholeDays(p.PlantedDate, now) > careTaskNudgeAge && p.CareTasks.IsEmpty() {
		out = append(out, Suggestion{
			Kind:     KindInfo,
			Title:    "Add Care Tasks",
			Message:  fmt.Sprintf("Consider adding care tasks for %s like fertilizing, pruning, or pest checks to stay on top of maintenance.", p.Name),
			Icon:     "📝",
			Priority: 3,
		})
	}

	logs := p.WateringLogs.Items()
	if len(logs) > 0 {
		last := slices.MaxFunc(logs, func(a, b garden.WateringLog) int {
			return a.WateredDate.Compare(b.WateredDate)
		})
		if since := wholeDays(last.WateredDate, now); since > lowActivityThreshold {
			out = append(out, Suggestion{
				Kind:     KindInfo,
				Title:    "Low Activity",
				Message:  fmt.Sprintf("It's been %d days since any recorded activity for %s. Don't forget to track your care!", since, p.Name),
				Icon:     "📊",
				Priority: 2,
			})
		}
	}

	return out
}

func plural(many bool) string {
	if many {
		return "s"
	}
	return ""
}
