package analysis

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/Vani131975/ai-powered-compliance-auditor/model"
)

// CategoryPolicy is the reference policy for one legal category: phrase
// patterns a clause of that category must carry, patterns it must not carry,
// and the risk weight applied when its checks fail.
type CategoryPolicy struct {
	Risk      string   `yaml:"risk"`
	Mandatory []string `yaml:"mandatory"`
	Forbidden []string `yaml:"forbidden"`

	mandatory []*regexp.Regexp
	forbidden []*regexp.Regexp
}

// Policy is the full compliance rule set, keyed by category label. It is
// versionable data, not code: rule updates never touch pipeline logic.
type Policy struct {
	Categories map[string]*CategoryPolicy `yaml:"categories"`
}

// LoadPolicy reads a policy YAML file and compiles its patterns. An empty
// path yields the built-in default policy.
func LoadPolicy(path string) (*Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}
	if err := p.compile(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Policy) compile() error {
	for name, cat := range p.Categories {
		if cat == nil {
			return fmt.Errorf("category %q has no policy body", name)
		}
		switch cat.Risk {
		case model.RiskLow, model.RiskMedium, model.RiskHigh:
		case "":
			cat.Risk = model.RiskMedium
		default:
			return fmt.Errorf("category %q has invalid risk %q", name, cat.Risk)
		}

		cat.mandatory = cat.mandatory[:0]
		for _, expr := range cat.Mandatory {
			re, err := regexp.Compile(expr)
			if err != nil {
				return fmt.Errorf("category %q mandatory pattern %q: %w", name, expr, err)
			}
			cat.mandatory = append(cat.mandatory, re)
		}

		cat.forbidden = cat.forbidden[:0]
		for _, expr := range cat.Forbidden {
			re, err := regexp.Compile(expr)
			if err != nil {
				return fmt.Errorf("category %q forbidden pattern %q: %w", name, expr, err)
			}
			cat.forbidden = append(cat.forbidden, re)
		}
	}
	return nil
}

// DefaultPolicy returns the built-in rule set for the fixed legal-category
// vocabulary. Deployments override it via the policy file.
func DefaultPolicy() *Policy {
	p := &Policy{
		Categories: map[string]*CategoryPolicy{
			"confidentiality": {
				Risk:      model.RiskMedium,
				Mandatory: []string{`(?i)confidential|secre(?:t|cy)|non-?disclosure`},
				Forbidden: []string{`(?i)no\s+(?:duty|obligation)\s+of\s+confidentiality`},
			},
			"indemnification": {
				Risk:      model.RiskHigh,
				Mandatory: []string{`(?i)indemnif|hold\s+harmless`},
				Forbidden: []string{`(?i)indemnif\w*[^.]*(?:any|all)\s+(?:claims?|losses)\s+(?:whatsoever|of\s+any\s+kind|without\s+limit)`},
			},
			"termination": {
				Risk:      model.RiskMedium,
				Mandatory: []string{`(?i)\bnotice\b`, `(?i)\b\d+\s+(?:days?|months?)\b`},
				Forbidden: []string{`(?i)terminat\w*[^.]*at\s+any\s+time\s+without\s+(?:notice|cause)`},
			},
			"liability": {
				Risk:      model.RiskHigh,
				Mandatory: []string{`(?i)limited\s+to|shall\s+not\s+exceed|capped\s+at|aggregate\s+liability`},
				Forbidden: []string{`(?i)(?:no|not|neither)[^.]*liable\s+for\s+any[^.]*damages\s+whatsoever|under\s+no\s+circumstances[^.]*liable`},
			},
			"governing-law": {
				Risk:      model.RiskLow,
				Mandatory: []string{`(?i)governed\s+by|governing\s+law|laws?\s+of\s+`},
			},
			"payment": {
				Risk:      model.RiskMedium,
				Mandatory: []string{`(?i)within\s+\d+\s+(?:business\s+)?days|due\s+(?:date|upon)|payment\s+terms|invoice`},
				Forbidden: []string{`(?i)pay\w*[^.]*sole\s+discretion`},
			},
			"data-protection": {
				Risk:      model.RiskHigh,
				Mandatory: []string{`(?i)personal\s+data|data\s+protection|gdpr`, `(?i)notif\w*[^.]*breach|breach\s+notification`},
				Forbidden: []string{`(?i)no\s+(?:liability|responsibility)[^.]*data\s+breach`},
			},
		},
	}

	// Built-in patterns are constants; a compile failure here is a bug.
	if err := p.compile(); err != nil {
		panic(err)
	}
	return p
}

// Category returns the policy for a label, or nil when the label is outside
// the policy vocabulary.
func (p *Policy) Category(label string) *CategoryPolicy {
	return p.Categories[label]
}
