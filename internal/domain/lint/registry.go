package lint

// CheckFunc is the uniform classifier signature. rule carries the effective
// severity after config overrides; the function must not modify f.
type CheckFunc func(f *SourceFile, cfg Config, rule Rule) []Issue

// Rule describes one classifier.
type Rule struct {
	Category  string
	Label     string
	Severity  Severity
	FileLevel bool
	// Triggers are substrings at least one of which must occur in the file
	// for the classifier to report anything. Empty means always run.
	Triggers []string
	Check    CheckFunc
}

// Prefilter finds which trigger keywords occur in a file's content in a
// single pass. Implementations must not miss a keyword that is present.
type Prefilter interface {
	Match(content string) []string
}

// AllCategories lists every category in registry order.
var AllCategories = []string{
	CatFileSize,
	CatUnusedImport,
	CatConsoleLog,
	CatComment,
	CatCommentedCode,
	CatTodoComment,
	CatLongFunction,
	CatTooManyParams,
	CatRepetitivePattern,
	CatDuplicatePattern,
	CatTooManyStates,
	CatHookPlacement,
	CatHookExtraction,
	CatInvalidHookCall,
	CatLargeConstant,
	CatScatteredConstant,
	CatMultipleComponent,
	CatInlineType,
	CatLargeJSX,
	CatDataAccess,
	CatAtomicDesign,
}

var (
	commentTriggers = []string{"//", "/*"}
	// A lone "*" line counts as a comment line for the marker check.
	markerTriggers = []string{"//", "*"}
	effectTriggers = []string{"useEffect", "useCallback", "useMemo", "useLayoutEffect"}
)

// DefaultRules returns the built-in classifiers in report order.
func DefaultRules() []Rule {
	return []Rule{
		{Category: CatFileSize, Label: "File exceeds the line limit", Severity: SevWarn, FileLevel: true, Check: checkFileLength},
		{Category: CatUnusedImport, Label: "Imported name never used", Severity: SevError, Triggers: []string{"import"}, Check: checkUnusedImports},
		{Category: CatConsoleLog, Label: "console statement left in code", Severity: SevWarn, Triggers: []string{"console"}, Check: checkConsole},
		{Category: CatComment, Label: "Comment in component code", Severity: SevWarn, Triggers: commentTriggers, Check: checkInlineComments},
		{Category: CatCommentedCode, Label: "Commented-out code", Severity: SevWarn, Triggers: []string{"//"}, Check: checkCommentedCode},
		{Category: CatTodoComment, Label: "TODO/FIXME style marker", Severity: SevWarn, Triggers: markerTriggers, Check: checkTodoComments},
		{Category: CatLongFunction, Label: "Function exceeds the line limit", Severity: SevWarn, Check: checkFunctionLength},
		{Category: CatTooManyParams, Label: "Function takes too many parameters", Severity: SevWarn, Check: checkParams},
		{Category: CatRepetitivePattern, Label: "Handlers repeat the same load-then-set logic", Severity: SevWarn, Triggers: []string{"set"}, Check: checkRepetitiveHandlers},
		{Category: CatDuplicatePattern, Label: "Repeated try/catch blocks", Severity: SevWarn, FileLevel: true, Triggers: []string{"try"}, Check: checkTryBlocks},
		{Category: CatTooManyStates, Label: "Component keeps too many state hooks", Severity: SevWarn, Triggers: []string{"useState", "useReducer"}, Check: checkStateCount},
		{Category: CatHookPlacement, Label: "Custom hook declared outside the hooks folder", Severity: SevWarn, Triggers: []string{"use"}, Check: checkMisplacedHooks},
		{Category: CatHookExtraction, Label: "Effect and memo logic to extract into a hook", Severity: SevWarn, FileLevel: true, Triggers: effectTriggers, Check: checkHookExtraction},
		{Category: CatInvalidHookCall, Label: "Hook called outside a component or hook", Severity: SevError, Triggers: []string{"use"}, Check: checkInvalidHookCalls},
		{Category: CatLargeConstant, Label: "Constant spans too many lines", Severity: SevWarn, Triggers: []string{"{", "["}, Check: checkLargeConstants},
		{Category: CatScatteredConstant, Label: "Constants scattered outside the constants folder", Severity: SevWarn, FileLevel: true, Triggers: []string{"const"}, Check: checkScatteredConstants},
		{Category: CatMultipleComponent, Label: "More than one component per file", Severity: SevWarn, Triggers: []string{"<"}, Check: checkMultipleComponents},
		{Category: CatInlineType, Label: "Type declared outside the types folder", Severity: SevWarn, Triggers: []string{"type", "interface", ":"}, Check: checkInlineTypes},
		{Category: CatLargeJSX, Label: "JSX block exceeds the line limit", Severity: SevWarn, Triggers: []string{"<"}, Check: checkJSXLength},
		{Category: CatDataAccess, Label: "Data access inside a component", Severity: SevWarn, Triggers: []string{"supabase", "fetch"}, Check: checkDataAccess},
		{Category: CatAtomicDesign, Label: "Component outside the atomic design structure", Severity: SevWarn, FileLevel: true, Check: checkAtomicDesign},
	}
}

// Registry is an ordered set of classifiers.
type Registry struct {
	rules     []Rule
	prefilter Prefilter
}

// NewRegistry builds a registry from rules, kept in the given order.
func NewRegistry(rules ...Rule) *Registry {
	return &Registry{rules: append([]Rule(nil), rules...)}
}

// DefaultRegistry returns a registry holding DefaultRules.
func DefaultRegistry() *Registry {
	return NewRegistry(DefaultRules()...)
}

// WithPrefilter returns a copy of the registry that consults p before
// running each classifier.
func (r *Registry) WithPrefilter(p Prefilter) *Registry {
	return &Registry{rules: r.rules, prefilter: p}
}

// Rules returns the classifiers in order.
func (r *Registry) Rules() []Rule {
	return append([]Rule(nil), r.rules...)
}

// Triggers returns every distinct trigger keyword across the registry.
func (r *Registry) Triggers() []string {
	seen := make(map[string]bool)
	var out []string
	for _, rule := range r.rules {
		for _, t := range rule.Triggers {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// Analyze runs every enabled classifier over f and concatenates the
// results in registry order. No deduplication happens across classifiers.
func (r *Registry) Analyze(f *SourceFile, cfg Config) []Issue {
	var present map[string]bool
	if r.prefilter != nil {
		present = make(map[string]bool)
		for _, kw := range r.prefilter.Match(f.Content) {
			present[kw] = true
		}
	}

	var issues []Issue
	for _, rule := range r.rules {
		if cfg.IsDisabled(rule.Category) {
			continue
		}
		if present != nil && !anyPresent(rule.Triggers, present) {
			continue
		}
		if sev, ok := cfg.Severity[rule.Category]; ok {
			rule.Severity = sev
		}
		issues = append(issues, rule.Check(f, cfg, rule)...)
	}
	return issues
}

func anyPresent(triggers []string, present map[string]bool) bool {
	if len(triggers) == 0 {
		return true
	}
	for _, t := range triggers {
		if present[t] {
			return true
		}
	}
	return false
}

// Analyze runs the default registry over one file.
func Analyze(f *SourceFile, cfg Config) []Issue {
	return DefaultRegistry().Analyze(f, cfg)
}
