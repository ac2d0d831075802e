package region

// Default returns the built-in dataset. The profiles are simplified; a real
// deployment would load a full 47-prefecture dataset via LoadFile. Adjacency
// mixes geographic borders with cultural proximity (Tokyo-Osaka-Kyoto are
// treated as neighbors despite the distance) and is kept symmetric.
func Default() *Dataset {
	return &Dataset{
		Regions: []Region{
			{
				ID: "Tokyo", Population: 13960000, Area: "Kanto", Cluster: "urban",
				Preferences:     []string{"tech-savvy", "quality-oriented", "luxury-oriented"},
				AgeDistribution: map[string]float64{"20s": 0.15, "30s": 0.18, "40s": 0.16, "50s": 0.14, "60s+": 0.37},
			},
			{
				ID: "Kanagawa", Population: 9237000, Area: "Kanto", Cluster: "urban",
				Preferences:     []string{"tech-savvy", "quality-oriented", "convenience-oriented"},
				AgeDistribution: map[string]float64{"20s": 0.14, "30s": 0.17, "40s": 0.16, "50s": 0.15, "60s+": 0.38},
			},
			{
				ID: "Saitama", Population: 7345000, Area: "Kanto", Cluster: "balanced",
				Preferences:     []string{"price-sensitive", "family-oriented", "convenience-oriented"},
				AgeDistribution: map[string]float64{"20s": 0.13, "30s": 0.16, "40s": 0.16, "50s": 0.15, "60s+": 0.40},
			},
			{
				ID: "Osaka", Population: 8809000, Area: "Kansai", Cluster: "urban",
				Preferences:     []string{"price-sensitive", "traditional", "food-loving"},
				AgeDistribution: map[string]float64{"20s": 0.12, "30s": 0.15, "40s": 0.15, "50s": 0.16, "60s+": 0.42},
			},
			{
				ID: "Kyoto", Population: 2583000, Area: "Kansai", Cluster: "tourism-oriented",
				Preferences:     []string{"traditional", "quality-oriented", "culture-oriented"},
				AgeDistribution: map[string]float64{"20s": 0.12, "30s": 0.14, "40s": 0.15, "50s": 0.16, "60s+": 0.43},
			},
			{
				ID: "Nara", Population: 1324000, Area: "Kansai", Cluster: "tourism-oriented",
				Preferences:     []string{"traditional", "culture-oriented", "quality-oriented"},
				AgeDistribution: map[string]float64{"20s": 0.11, "30s": 0.13, "40s": 0.14, "50s": 0.16, "60s+": 0.46},
			},
			{
				ID: "Hyogo", Population: 5465000, Area: "Kansai", Cluster: "balanced",
				Preferences:     []string{"price-sensitive", "quality-oriented", "food-loving"},
				AgeDistribution: map[string]float64{"20s": 0.12, "30s": 0.15, "40s": 0.15, "50s": 0.16, "60s+": 0.42},
			},
			{
				ID: "Shiga", Population: 1414000, Area: "Kansai", Cluster: "balanced",
				Preferences:     []string{"family-oriented", "environmentally-conscious", "traditional"},
				AgeDistribution: map[string]float64{"20s": 0.12, "30s": 0.15, "40s": 0.16, "50s": 0.16, "60s+": 0.41},
			},
			{
				ID: "Hokkaido", Population: 5250000, Area: "Hokkaido", Cluster: "rural",
				Preferences:     []string{"traditional", "environmentally-conscious", "outdoor-oriented"},
				AgeDistribution: map[string]float64{"20s": 0.10, "30s": 0.12, "40s": 0.14, "50s": 0.18, "60s+": 0.46},
			},
			{
				ID: "Aomori", Population: 1238000, Area: "Tohoku", Cluster: "rural",
				Preferences:     []string{"traditional", "price-sensitive", "outdoor-oriented"},
				AgeDistribution: map[string]float64{"20s": 0.09, "30s": 0.11, "40s": 0.13, "50s": 0.18, "60s+": 0.49},
			},
			{
				ID: "Iwate", Population: 1211000, Area: "Tohoku", Cluster: "rural",
				Preferences:     []string{"traditional", "environmentally-conscious", "outdoor-oriented"},
				AgeDistribution: map[string]float64{"20s": 0.09, "30s": 0.11, "40s": 0.13, "50s": 0.18, "60s+": 0.49},
			},
			{
				ID: "Akita", Population: 960000, Area: "Tohoku", Cluster: "rural",
				Preferences:     []string{"traditional", "price-sensitive", "health-conscious"},
				AgeDistribution: map[string]float64{"20s": 0.08, "30s": 0.10, "40s": 0.12, "50s": 0.18, "60s+": 0.52},
			},
			{
				ID: "Aichi", Population: 7552000, Area: "Chubu", Cluster: "industrial",
				Preferences:     []string{"tech-savvy", "price-sensitive", "manufacturing-oriented"},
				AgeDistribution: map[string]float64{"20s": 0.13, "30s": 0.16, "40s": 0.16, "50s": 0.15, "60s+": 0.40},
			},
			{
				ID: "Fukuoka", Population: 5104000, Area: "Kyushu", Cluster: "balanced",
				Preferences:     []string{"tech-savvy", "food-loving", "health-conscious"},
				AgeDistribution: map[string]float64{"20s": 0.14, "30s": 0.15, "40s": 0.15, "50s": 0.15, "60s+": 0.41},
			},
		},
		Adjacency: map[string][]string{
			"Tokyo":    {"Kanagawa", "Saitama", "Osaka", "Kyoto"},
			"Kanagawa": {"Tokyo"},
			"Saitama":  {"Tokyo"},
			"Osaka":    {"Tokyo", "Kyoto", "Nara", "Hyogo"},
			"Kyoto":    {"Tokyo", "Osaka", "Nara", "Shiga"},
			"Nara":     {"Osaka", "Kyoto"},
			"Hyogo":    {"Osaka"},
			"Shiga":    {"Kyoto"},
			"Hokkaido": {"Aomori", "Iwate", "Akita"},
			"Aomori":   {"Hokkaido", "Iwate", "Akita"},
			"Iwate":    {"Hokkaido", "Aomori"},
			"Akita":    {"Hokkaido", "Aomori"},
			"Aichi":    {},
			"Fukuoka":  {},
		},
		Similarity: map[string]map[string]float64{
			"Tokyo":    {"Osaka": 0.7, "Kyoto": 0.6, "Kanagawa": 0.8, "Saitama": 0.75, "Hokkaido": 0.3},
			"Kanagawa": {"Tokyo": 0.8},
			"Saitama":  {"Tokyo": 0.75},
			"Osaka":    {"Tokyo": 0.7, "Kyoto": 0.8, "Nara": 0.75, "Hyogo": 0.7, "Hokkaido": 0.4},
			"Kyoto":    {"Tokyo": 0.6, "Osaka": 0.8, "Nara": 0.7, "Shiga": 0.65, "Hokkaido": 0.5},
			"Nara":     {"Osaka": 0.75, "Kyoto": 0.7},
			"Hyogo":    {"Osaka": 0.7},
			"Shiga":    {"Kyoto": 0.65},
			"Hokkaido": {"Tokyo": 0.3, "Osaka": 0.4, "Kyoto": 0.5, "Aomori": 0.6, "Iwate": 0.5, "Akita": 0.5},
			"Aomori":   {"Hokkaido": 0.6, "Iwate": 0.65, "Akita": 0.6},
			"Iwate":    {"Hokkaido": 0.5, "Aomori": 0.65},
			"Akita":    {"Hokkaido": 0.5, "Aomori": 0.6},
		},
	}
}
