package tour

// Catalog maps each sequence to its ordered steps. Built once at startup and
// never mutated.
type Catalog map[SequenceID][]Step

// Steps returns the steps for seq, or nil if unknown.
func (c Catalog) Steps(seq SequenceID) []Step { return c[seq] }

// Sequences returns every sequence id in the catalog.
func (c Catalog) Sequences() []SequenceID {
	out := make([]SequenceID, 0, len(c))
	for seq := range c {
		out = append(out, seq)
	}
	return out
}

// Targets returns the set of target names referenced by any step.
func (c Catalog) Targets() map[TargetName]bool {
	out := make(map[TargetName]bool)
	for _, steps := range c {
		for _, s := range steps {
			out[s.Target] = true
		}
	}
	return out
}

// DefaultCatalog is the product tour shipped with the app.
func DefaultCatalog() Catalog {
	return Catalog{
		SequenceToday: {
			{ID: "today.add", Title: "Log a moment", Message: "Press a to record something a kid did — good or needs-work. It takes two keys.", Icon: "✚", Target: TargetAddButton},
			{ID: "today.streak", Title: "Streaks", Message: "Days in a row with at least one positive moment. Keep it alive.", Icon: "🔥", Target: TargetStreakBadge},
			{ID: "today.tabs", Title: "Get around", Message: "Number keys switch tabs: Today, Kids, Goals, Insights, Settings.", Icon: "⇄", Target: TargetTabBar},
		},
		SequenceKids: {
			{ID: "kids.roster", Title: "Your crew", Message: "Everyone you track, with their points for the week. Press a to add a kid.", Icon: "👧", Target: TargetKidsList},
		},
		SequenceGoals: {
			{ID: "goals.card", Title: "Goals", Message: "Set a points target per kid. Progress fills as positive moments land.", Icon: "🎯", Target: TargetGoalCard},
			{ID: "goals.add", Title: "New goal", Message: "Press a here to create a goal and pick its target.", Icon: "✚", Target: TargetAddButton},
		},
		SequenceInsights: {
			{ID: "insights.feed", Title: "Patterns", Message: "Recurring themes from your notes, grouped automatically. More logging, better patterns.", Icon: "💡", Target: TargetInsightsFeed},
		},
	}
}
