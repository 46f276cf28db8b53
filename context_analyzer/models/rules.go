package models

// TagRule yields Tag when the content contains any of AnyOf and all of AllOf.
// An empty list is ignored; a rule with both lists empty never matches.
type TagRule struct {
	Tag        string   `mapstructure:"tag" json:"tag"`
	AnyOf      []string `mapstructure:"any_of" json:"any_of"`
	AllOf      []string `mapstructure:"all_of" json:"all_of"`
	IgnoreCase bool     `mapstructure:"ignore_case" json:"ignore_case"`
}

// Rules carries every fixed vocabulary the analyzer uses. Components receive
// it explicitly instead of reading package-level defaults.
type Rules struct {
	SourceDir           string    `mapstructure:"source_dir" json:"source_dir"`
	SourceExtensions    []string  `mapstructure:"source_extensions" json:"source_extensions"`
	ComponentExtensions []string  `mapstructure:"component_extensions" json:"component_extensions"`
	ManifestFile        string    `mapstructure:"manifest_file" json:"manifest_file"`
	FrameworkDependency string    `mapstructure:"framework_dependency" json:"framework_dependency"`
	FrameworkLabel      string    `mapstructure:"framework_label" json:"framework_label"`
	UnknownFramework    string    `mapstructure:"unknown_framework" json:"unknown_framework"`
	Language            string    `mapstructure:"language" json:"language"`
	HookNames           []string  `mapstructure:"hook_names" json:"hook_names"`
	StateHook           string    `mapstructure:"state_hook" json:"state_hook"`
	EffectHook          string    `mapstructure:"effect_hook" json:"effect_hook"`
	EndpointRules       []TagRule `mapstructure:"endpoint_rules" json:"endpoint_rules"`
	StateRules          []TagRule `mapstructure:"state_rules" json:"state_rules"`
	ExcludedDirs        []string  `mapstructure:"excluded_dirs" json:"excluded_dirs"`
	AllowedDotfiles     []string  `mapstructure:"allowed_dotfiles" json:"allowed_dotfiles"`
	MaxTreeDepth        int       `mapstructure:"max_tree_depth" json:"max_tree_depth"`
}

// DefaultRules returns the vocabularies of a React/TypeScript front end.
func DefaultRules() Rules {
	return Rules{
		SourceDir:           "src",
		SourceExtensions:    []string{".js", ".jsx", ".ts", ".tsx"},
		ComponentExtensions: []string{".jsx", ".tsx"},
		ManifestFile:        "package.json",
		FrameworkDependency: "react",
		FrameworkLabel:      "React",
		UnknownFramework:    "Unknown",
		Language:            "TypeScript",
		HookNames:           []string{"useState", "useEffect", "useContext", "useReducer", "useMemo", "useCallback"},
		StateHook:           "useState",
		EffectHook:          "useEffect",
		EndpointRules: []TagRule{
			{Tag: "fetch_api_detected", AnyOf: []string{"fetch("}},
			{Tag: "axios_api_detected", AnyOf: []string{"axios"}},
		},
		StateRules: []TagRule{
			{Tag: "React Hooks", AnyOf: []string{"useState", "useReducer"}},
			{Tag: "Redux", AnyOf: []string{"redux"}, IgnoreCase: true},
			{Tag: "React Context", AllOf: []string{"context", "provider"}, IgnoreCase: true},
		},
		ExcludedDirs:    []string{"node_modules", "dist", "build", "coverage"},
		AllowedDotfiles: []string{".env.example"},
		MaxTreeDepth:    64,
	}
}
