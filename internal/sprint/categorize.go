package sprint

import "strings"

// TagRule maps a tag substring to a category. Tag signals are checked before
// any title inspection because they are the most reliable marker for
// specially flagged work.
type TagRule struct {
	Substring string   `yaml:"substring"`
	Category  Category `yaml:"category"`
}

// KeywordRule maps a list of title keywords to a category. Rules are
// evaluated in declaration order; the first keyword hit wins.
type KeywordRule struct {
	Category Category `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// CategoryConfig is the externally supplied classification vocabulary. A
// zero value falls back to the built-in defaults field by field, so a config
// file only needs to override what it cares about.
type CategoryConfig struct {
	TypeOverrides map[string]Category `yaml:"type_overrides"`
	TagRules      []TagRule           `yaml:"tag_rules"`
	KeywordRules  []KeywordRule       `yaml:"keyword_rules"`
	Default       Category            `yaml:"default"`
}

// DefaultCategoryConfig returns the historical classification vocabulary.
// The Frontend default for unmatched items mirrors the original reporting
// behavior; teams that prefer a neutral bucket set Default to "Other".
func DefaultCategoryConfig() CategoryConfig {
	return CategoryConfig{
		TypeOverrides: map[string]Category{
			"Bug": CategoryBug,
		},
		TagRules: []TagRule{
			{Substring: "uxe", Category: CategoryUX},
		},
		KeywordRules: []KeywordRule{
			{Category: CategoryUX, Keywords: []string{
				"ux ", "user experience", "usability", "user interface design",
				"interaction design", "user research", "wireframe", "mockup", "prototype",
				"user journey", "persona", "accessibility", "user testing", "design system",
				"visual design", "information architecture", "user flow", "design pattern",
				"user story mapping", "design thinking", "user-centered",
			}},
			{Category: CategoryQA, Keywords: []string{
				"qa", "quality assurance", "testing", "test", "sqa", "software quality",
				"test case", "test plan", "automation test", "regression test",
				"integration test", "unit test", "performance test", "load test",
				"security test", "acceptance test", "validation", "verification",
			}},
			{Category: CategoryFrontend, Keywords: []string{
				"frontend", "front-end", "fe ", "ui", "user interface", "button", "screen",
				"window", "tab", "grid", "upload", "branding", "alert", "breadcrumb",
				"scroll", "menu", "settings", "angular", "component", "react", "vue",
				"javascript", "typescript", "css", "html", "scss", "responsive", "mobile",
				"browser", "dom", "form", "modal", "dropdown", "navigation", "header",
				"footer", "sidebar", "layout",
			}},
			{Category: CategoryBackend, Keywords: []string{
				"backend", "back-end", "api", "service", "endpoint", "lambda", "aws",
				"database", "postgres", "server", "deprecate", "workflow", "metric",
				"email", "microservice", "rest", "graphql", "sql", "nosql", "redis",
				"cache", "queue", "job", "cron", "batch", "authentication",
				"authorization", "encryption", "token", "middleware", "docker",
				"kubernetes", "deployment", "infrastructure", "cloud", "integration",
				"webhook", "event", "stream",
			}},
		},
		Default: CategoryFrontend,
	}
}

// Categorizer classifies work items by type, tags and title keywords.
type Categorizer struct {
	cfg CategoryConfig
}

// NewCategorizer builds a Categorizer, filling unset config fields from the
// defaults so a partial vocabulary never leaves items uncategorized.
func NewCategorizer(cfg CategoryConfig) *Categorizer {
	defaults := DefaultCategoryConfig()
	if cfg.TypeOverrides == nil {
		cfg.TypeOverrides = defaults.TypeOverrides
	}
	if cfg.TagRules == nil {
		cfg.TagRules = defaults.TagRules
	}
	if cfg.KeywordRules == nil {
		cfg.KeywordRules = defaults.KeywordRules
	}
	if cfg.Default == "" {
		cfg.Default = defaults.Default
	}
	return &Categorizer{cfg: cfg}
}

// Categorize maps a (title, type, tags) triple to exactly one category.
// It is total and deterministic: every input produces a label.
//
// Decision order, first match wins:
//  1. work-item type override
//  2. tag substring rules
//  3. keyword rule groups, in declaration order
//  4. configured default
func (c *Categorizer) Categorize(title, workType, tags string) Category {
	if cat, ok := c.cfg.TypeOverrides[workType]; ok {
		return cat
	}

	titleLower := strings.ToLower(title)
	tagsLower := strings.ToLower(tags)

	for _, rule := range c.cfg.TagRules {
		if rule.Substring != "" && strings.Contains(tagsLower, strings.ToLower(rule.Substring)) {
			return rule.Category
		}
	}

	for _, group := range c.cfg.KeywordRules {
		for _, kw := range group.Keywords {
			if strings.Contains(titleLower, strings.ToLower(kw)) {
				return group.Category
			}
		}
	}

	return c.cfg.Default
}
