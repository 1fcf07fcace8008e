package catalog

// Built-in tables. Never mutated; Default copies them into a Catalog.
var (
	defaultTips = map[string][]Tip{
		"Tomato": {
			{"Pinch Suckers", "Remove suckers (shoots between stem and branches) weekly for larger fruits and better air circulation.", "✂️"},
			{"Support Check", "Ensure tomato cages or stakes are secure. Heavy fruit can cause plants to topple.", "🎋"},
			{"Leaf Health", "Check undersides of leaves for pests like hornworms or aphids. Early detection prevents major infestations.", "🔍"},
		},
		"Cucumber": {
			{"Daily Harvest", "Check for cucumbers daily once fruiting begins. Harvest promptly to encourage more production.", "🥒"},
			{"Trellis Training", "Train vines up trellis for better air circulation and easier harvesting.", "🌿"},
			{"Powdery Mildew", "Watch for white powder on leaves. Ensure good air flow and avoid watering leaves.", "🍃"},
		},
		"Pepper": {
			{"First Flowers", "Consider pinching off the first few flowers to encourage stronger plant growth before fruiting.", "🌸"},
			{"Calcium Boost", "Add crushed eggshells or calcium supplement to prevent blossom end rot.", "🥚"},
			{"Color Development", "Peppers change color as they ripen. Green to red takes 2-3 additional weeks but sweeter flavor.", "🫑"},
		},
		"Olive Tree": {
			{"Drainage Check", "Ensure excellent drainage. Olives hate wet feet - root rot is a common issue.", "💧"},
			{"Pruning Shape", "Maintain open center structure for sunlight penetration and air circulation.", "✂️"},
			{"Patience", "Olive trees take 5-8 years to produce fruit. Focus on strong growth in early years.", "⏳"},
		},
	}

	defaultSeasonal = map[Season]SeasonalTip{
		Winter: {
			OnlyType: "Olive Tree",
			Title:    "Winter Pruning Time",
			Message:  "Winter is the ideal time to prune {plant}. Remove dead or crossing branches while the tree is dormant.",
			Icon:     "✂️",
			Priority: 4,
		},
		Spring: {
			Title:    "Spring Feeding",
			Message:  "Spring is here! Consider fertilizing {plant} to support new growth. Check soil moisture more frequently as growth accelerates.",
			Icon:     "🌸",
			Priority: 4,
		},
		Summer: {
			Title:    "Summer Heat Care",
			Message:  "During summer heat, {plant} may need more frequent watering. Check soil daily and water in early morning or evening.",
			Icon:     "☀️",
			Priority: 5,
		},
		Fall: {
			OnlyType: "Olive Tree",
			Title:    "Harvest Season",
			Message:  "Fall is olive harvest time! Check {plant} for ripe olives. Green olives ripen first, followed by black olives.",
			Icon:     "🫒",
			Priority: 6,
		},
	}
)

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(defaultTips, defaultSeasonal)
}
