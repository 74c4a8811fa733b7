// Package catalog provides skill canonicalization and lookup of skill and
// organization display metadata.
package catalog

// DefaultAliases is the stock alias table collapsing common variants of a
// skill onto one canonical key. Keys are already in normalized form (the
// output of the cleanup steps in Canonicalize before alias lookup); values are
// themselves canonical so that canonicalization stays idempotent. Deployments
// can inject their own table at construction time.
var DefaultAliases = map[string]string{
	// tech & dev
	"postgresql":             "postgres",
	"typescript":             "ts",
	"javascript":             "js",
	"amazonwebservices":      "aws",
	"artificialintelligence": "ai",
	"machinelearning":        "ml",
	"reactjs":                "react",
	"nextjs":                 "next",
	"tailwindcss":            "tailwind",
	"frontend":               "frontend",
	"backend":                "backend",

	// design & creative
	"adobephotoshop":   "photoshop",
	"adobeillustrator": "illustrator",
	"userexperience":   "ux",
	"userinterface":    "ui",
	"productdesign":    "productdesign",
	"graphicdesign":    "design",

	// marketing & business
	"searchengineoptimization":       "seo",
	"searchenginemarketing":          "sem",
	"googleads":                      "googleads",
	"socialmediamarketing":           "smm",
	"customerrelationshipmanagement": "crm",
	"businessintelligence":           "bi",
	"growthhacking":                  "growth",

	// finance & legal
	"financialanalysis": "finanzas",
	"investmentbanking": "banking",
	"corporatelegal":    "legal",
	"humanresources":    "hr",
	"talentacquisition": "recruitment",

	// soft skills
	"publicspeaking":    "oratoria",
	"teamleadership":    "liderazgo",
	"projectmanagement": "gestion",
	"criticalthinking":  "pensamientocritico",
}
