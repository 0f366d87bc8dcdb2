package taxonomy

// defaultAreas is the built-in venue table. Roots are declared before their
// children; declaration order is also the display order used by the
// summarizer's tie-break.
var defaultAreas = []AreaDef{
	// AI
	{Code: "ai", Label: "AI"},
	{Code: "aaai", Label: "AI", Parent: "ai"},
	{Code: "ijcai", Label: "AI", Parent: "ai"},
	{Code: "vision", Label: "Computer vision"},
	{Code: "cvpr", Label: "Computer vision", Parent: "vision"},
	{Code: "eccv", Label: "Computer vision", Parent: "vision"},
	{Code: "iccv", Label: "Computer vision", Parent: "vision"},
	{Code: "mlmining", Label: "Machine learning & data mining"},
	{Code: "icml", Label: "Machine learning & data mining", Parent: "mlmining"},
	{Code: "kdd", Label: "Machine learning & data mining", Parent: "mlmining"},
	{Code: "nips", Label: "Machine learning & data mining", Parent: "mlmining"},
	{Code: "nlp", Label: "Natural language processing"},
	{Code: "acl", Label: "Natural language processing", Parent: "nlp"},
	{Code: "emnlp", Label: "Natural language processing", Parent: "nlp"},
	{Code: "naacl", Label: "Natural language processing", Parent: "nlp", NextTier: true},
	{Code: "inforet", Label: "The Web & information retrieval"},
	{Code: "sigir", Label: "The Web & information retrieval", Parent: "inforet"},
	{Code: "www", Label: "The Web & information retrieval", Parent: "inforet"},

	// Systems
	{Code: "arch", Label: "Computer architecture"},
	{Code: "asplos", Label: "Computer architecture", Parent: "arch"},
	{Code: "isca", Label: "Computer architecture", Parent: "arch"},
	{Code: "micro", Label: "Computer architecture", Parent: "arch"},
	{Code: "hpca", Label: "Computer architecture", Parent: "arch", NextTier: true},
	{Code: "comm", Label: "Computer networks"},
	{Code: "sigcomm", Label: "Computer networks", Parent: "comm"},
	{Code: "nsdi", Label: "Computer networks", Parent: "comm"},
	{Code: "sec", Label: "Computer security"},
	{Code: "ccs", Label: "Computer security", Parent: "sec"},
	{Code: "oakland", Label: "Computer security", Parent: "sec"},
	{Code: "usenixsec", Label: "Computer security", Parent: "sec"},
	{Code: "ndss", Label: "Computer security", Parent: "sec", NextTier: true},
	{Code: "mod", Label: "Databases"},
	{Code: "sigmod", Label: "Databases", Parent: "mod"},
	{Code: "vldb", Label: "Databases", Parent: "mod"},
	{Code: "icde", Label: "Databases", Parent: "mod", NextTier: true},
	{Code: "pods", Label: "Databases", Parent: "mod", NextTier: true},
	{Code: "da", Label: "Design automation"},
	{Code: "dac", Label: "Design automation", Parent: "da"},
	{Code: "iccad", Label: "Design automation", Parent: "da"},
	{Code: "bed", Label: "Embedded & real-time systems"},
	{Code: "emsoft", Label: "Embedded & real-time systems", Parent: "bed"},
	{Code: "rtas", Label: "Embedded & real-time systems", Parent: "bed"},
	{Code: "rtss", Label: "Embedded & real-time systems", Parent: "bed"},
	{Code: "hpc", Label: "High-performance computing"},
	{Code: "sc", Label: "High-performance computing", Parent: "hpc"},
	{Code: "hpdc", Label: "High-performance computing", Parent: "hpc"},
	{Code: "ics", Label: "High-performance computing", Parent: "hpc"},
	{Code: "mobile", Label: "Mobile computing"},
	{Code: "mobicom", Label: "Mobile computing", Parent: "mobile"},
	{Code: "mobisys", Label: "Mobile computing", Parent: "mobile"},
	{Code: "sensys", Label: "Mobile computing", Parent: "mobile"},
	{Code: "metrics", Label: "Measurement & perf. analysis"},
	{Code: "imc", Label: "Measurement & perf. analysis", Parent: "metrics"},
	{Code: "sigmetrics", Label: "Measurement & perf. analysis", Parent: "metrics"},
	{Code: "ops", Label: "Operating systems"},
	{Code: "sosp", Label: "Operating systems", Parent: "ops"},
	{Code: "osdi", Label: "Operating systems", Parent: "ops"},
	{Code: "eurosys", Label: "Operating systems", Parent: "ops", NextTier: true},
	{Code: "fast", Label: "Operating systems", Parent: "ops", NextTier: true},
	{Code: "usenixatc", Label: "Operating systems", Parent: "ops", NextTier: true},
	{Code: "plan", Label: "Programming languages"},
	{Code: "popl", Label: "Programming languages", Parent: "plan"},
	{Code: "pldi", Label: "Programming languages", Parent: "plan"},
	{Code: "icfp", Label: "Programming languages", Parent: "plan", NextTier: true},
	{Code: "oopsla", Label: "Programming languages", Parent: "plan", NextTier: true},
	{Code: "soft", Label: "Software engineering"},
	{Code: "fse", Label: "Software engineering", Parent: "soft"},
	{Code: "icse", Label: "Software engineering", Parent: "soft"},
	{Code: "ase", Label: "Software engineering", Parent: "soft", NextTier: true},
	{Code: "issta", Label: "Software engineering", Parent: "soft", NextTier: true},

	// Theory
	{Code: "act", Label: "Algorithms & complexity"},
	{Code: "focs", Label: "Algorithms & complexity", Parent: "act"},
	{Code: "soda", Label: "Algorithms & complexity", Parent: "act"},
	{Code: "stoc", Label: "Algorithms & complexity", Parent: "act"},
	{Code: "crypt", Label: "Cryptography"},
	{Code: "crypto", Label: "Cryptography", Parent: "crypt"},
	{Code: "eurocrypt", Label: "Cryptography", Parent: "crypt"},
	{Code: "log", Label: "Logic & verification"},
	{Code: "cav", Label: "Logic & verification", Parent: "log"},
	{Code: "lics", Label: "Logic & verification", Parent: "log"},

	// Interdisciplinary
	{Code: "bio", Label: "Comp. bio & bioinformatics"},
	{Code: "ismb", Label: "Comp. bio & bioinformatics", Parent: "bio"},
	{Code: "recomb", Label: "Comp. bio & bioinformatics", Parent: "bio"},
	{Code: "graph", Label: "Computer graphics"},
	{Code: "siggraph", Label: "Computer graphics", Parent: "graph"},
	{Code: "siggraph-asia", Label: "Computer graphics", Parent: "graph"},
	{Code: "chi", Label: "Human-computer interaction"},
	{Code: "chiconf", Label: "Human-computer interaction", Parent: "chi"},
	{Code: "ubicomp", Label: "Human-computer interaction", Parent: "chi"},
	{Code: "uist", Label: "Human-computer interaction", Parent: "chi"},
	{Code: "robotics", Label: "Robotics"},
	{Code: "icra", Label: "Robotics", Parent: "robotics"},
	{Code: "iros", Label: "Robotics", Parent: "robotics"},
	{Code: "rss", Label: "Robotics", Parent: "robotics"},
	{Code: "visualization", Label: "Visualization"},
	{Code: "vis", Label: "Visualization", Parent: "visualization"},
	{Code: "vr", Label: "Visualization", Parent: "visualization"},
}

// PresetName identifies a named root-area selection.
type PresetName string

const (
	PresetAll               PresetName = "all"
	PresetAI                PresetName = "ai-group"
	PresetSystems           PresetName = "systems"
	PresetTheory            PresetName = "theory"
	PresetInterdisciplinary PresetName = "interdisciplinary"
)

var presets = map[PresetName][]string{
	PresetAI:                {"ai", "vision", "mlmining", "nlp", "inforet"},
	PresetSystems:           {"arch", "comm", "sec", "mod", "da", "bed", "hpc", "mobile", "metrics", "ops", "plan", "soft"},
	PresetTheory:            {"act", "crypt", "log"},
	PresetInterdisciplinary: {"bio", "graph", "chi", "robotics", "visualization"},
}

// GetPreset returns the root-area codes for a named preset. PresetAll is
// resolved against the taxonomy so config overrides stay consistent.
func (t *Taxonomy) GetPreset(name PresetName) ([]string, bool) {
	if name == PresetAll {
		return t.Roots(), true
	}
	roots, ok := presets[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), roots...), true
}

// ListPresets returns all available preset names.
func ListPresets() []PresetName {
	return []PresetName{
		PresetAll,
		PresetAI,
		PresetSystems,
		PresetTheory,
		PresetInterdisciplinary,
	}
}
