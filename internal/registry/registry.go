package registry

import (
	"fmt"
	"strings"
	"time"
)

// ConfigError reports missing or malformed registry reference data. It is the
// only fatal error class in the system: calculation never starts without a
// valid registry.
type ConfigError struct {
	Section string
	Msg     string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("registry config: %s: %s", e.Section, e.Msg)
}

// Registry is the immutable bank/tariff/rider reference data set. It is built
// once at startup and shared read-only by the extractor, calculator and
// optimizer.
type Registry struct {
	banks   []BankConfig
	byAlias map[string]*BankConfig

	life          map[LifeModel]LifeSchedule
	propertyBase  []PropertyRule
	propertyBanks map[string][]PropertyRule
	titleDefault  []TitleRule
	titleBanks    map[string][]TitleRule
	riders        []RiderProduct

	Discounts DiscountDefaults
	Optimizer OptimizerConfig
}

// Load assembles the registry from the compiled-in reference data and
// validates it. The data is versioned with the binary; swapping tariffs means
// shipping a new build.
func Load() (*Registry, error) {
	r := &Registry{
		banks:         defaultBanks(),
		life:          defaultLifeSchedules(),
		propertyBase:  defaultPropertyBase(),
		propertyBanks: defaultPropertyBanks(),
		titleDefault:  defaultTitleRules(),
		titleBanks:    defaultTitleBanks(),
		riders:        defaultRiders(),
		Discounts:     DiscountDefaults{Life: 20, Property: 10, Title: 30},
		Optimizer: OptimizerConfig{
			GapMin:                  200,
			GapMax:                  2200,
			GapTarget:               2200,
			SizingThreshold:         3000,
			SizingTarget:            3000,
			EnhancedDiscountPercent: 30,
		},
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	r.byAlias = map[string]*BankConfig{}
	for i := range r.banks {
		b := &r.banks[i]
		r.byAlias[strings.ToLower(b.Name)] = b
		for _, a := range b.Aliases {
			r.byAlias[strings.ToLower(a)] = b
		}
	}
	return r, nil
}

// MustLoad is Load for program startup paths where a broken registry should
// stop the process.
func MustLoad() *Registry {
	r, err := Load()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) validate() error {
	if len(r.banks) == 0 {
		return &ConfigError{Section: "banks", Msg: "no banks configured"}
	}
	for _, b := range r.banks {
		if len(b.Terms) == 0 {
			return &ConfigError{Section: "banks", Msg: fmt.Sprintf("%s has no terms", b.Name)}
		}
		for i := 1; i < len(b.Terms); i++ {
			if !b.Terms[i].ValidFrom.After(b.Terms[i-1].ValidFrom) {
				return &ConfigError{Section: "banks", Msg: fmt.Sprintf("%s terms out of order", b.Name)}
			}
		}
		if _, ok := r.life[b.LifeModel]; !ok {
			return &ConfigError{Section: "life", Msg: fmt.Sprintf("%s references unknown life model %q", b.Name, b.LifeModel)}
		}
	}
	for model, sched := range r.life {
		if len(sched) == 0 {
			return &ConfigError{Section: "life", Msg: fmt.Sprintf("model %q has empty schedule", model)}
		}
		for _, v := range sched {
			if err := checkLifeTable(v.Table); err != nil {
				return err
			}
			if v.Overflow != nil {
				if err := checkLifeTable(v.Overflow); err != nil {
					return err
				}
			}
		}
	}
	if len(r.propertyBase) == 0 {
		return &ConfigError{Section: "property", Msg: "no base property rates"}
	}
	if len(r.titleDefault) == 0 {
		return &ConfigError{Section: "title", Msg: "no default title rate"}
	}
	for _, p := range r.riders {
		if len(p.Covers) == 0 && len(p.Packs) == 0 {
			return &ConfigError{Section: "riders", Msg: fmt.Sprintf("%s has neither covers nor packs", p.ID)}
		}
		if len(p.Covers) > 0 && len(p.Packs) > 0 {
			return &ConfigError{Section: "riders", Msg: fmt.Sprintf("%s mixes covers and packs", p.ID)}
		}
		for _, c := range p.Covers {
			for i, t := range c.Tiers {
				if t.MinSum >= t.MaxSum || t.Rate <= 0 {
					return &ConfigError{Section: "riders", Msg: fmt.Sprintf("%s %s tier %d invalid", p.ID, c.Kind, i)}
				}
			}
		}
	}
	return nil
}

func checkLifeTable(t *LifeTable) error {
	span := t.MaxAge - t.MinAge + 1
	if len(t.Male) != span || len(t.Female) != span {
		return &ConfigError{
			Section: "life",
			Msg:     fmt.Sprintf("table %q has %d/%d rates for age span %d", t.Name, len(t.Male), len(t.Female), span),
		}
	}
	return nil
}

// Bank resolves a canonical bank name or exact alias (case-insensitive).
func (r *Registry) Bank(name string) (*BankConfig, bool) {
	b, ok := r.byAlias[strings.ToLower(strings.TrimSpace(name))]
	return b, ok
}

func (r *Registry) Banks() []BankConfig { return r.banks }

// BankNames lists canonical names, for validation messages.
func (r *Registry) BankNames() []string {
	names := make([]string, len(r.banks))
	for i, b := range r.banks {
		names[i] = b.Name
	}
	return names
}

// LifeRate resolves the life tariff rate in percent for a borrower.
// The schedule version is chosen by contract date; ages the chosen table does
// not cover fall through to its overflow table when one is configured.
func (r *Registry) LifeRate(bank *BankConfig, g Gender, age int, contractDate time.Time) (float64, bool) {
	sched := r.life[bank.LifeModel]
	v := sched[0]
	if !contractDate.IsZero() {
		for _, cand := range sched[1:] {
			if cand.ValidFrom.After(contractDate) {
				break
			}
			v = cand
		}
	}
	if rate, ok := v.Table.Rate(g, age); ok {
		return rate, true
	}
	if v.Overflow != nil {
		return v.Overflow.Rate(g, age)
	}
	return 0, false
}

// PropertyRate resolves the property tariff in percent for a bank and object
// type. Banks without their own rule list use the base rates.
func (r *Registry) PropertyRate(bankName string, obj ObjectType, contractDate time.Time, withLife bool) (float64, bool) {
	rules := r.propertyBase
	if own, ok := r.propertyBanks[bankName]; ok {
		rules = own
	}
	rule := pickPropertyRule(rules, contractDate)
	rates := rule.Rates
	if withLife && rule.BundledRates != nil {
		rates = rule.BundledRates
	}
	rate, ok := rates[obj]
	if !ok {
		// Bank-specific rule lists may be partial; fall back to base.
		rate, ok = pickPropertyRule(r.propertyBase, contractDate).Rates[obj]
	}
	return rate, ok
}

func pickPropertyRule(rules []PropertyRule, contractDate time.Time) PropertyRule {
	rule := rules[0]
	if contractDate.IsZero() {
		return rule
	}
	for _, cand := range rules[1:] {
		if cand.ValidFrom.After(contractDate) {
			break
		}
		rule = cand
	}
	return rule
}

// TitleRate resolves the title tariff in percent.
func (r *Registry) TitleRate(bankName string, contractDate time.Time, withLife bool) float64 {
	rules := r.titleDefault
	if own, ok := r.titleBanks[bankName]; ok {
		rules = own
	}
	rule := rules[0]
	if !contractDate.IsZero() {
		for _, cand := range rules[1:] {
			if cand.ValidFrom.After(contractDate) {
				break
			}
			rule = cand
		}
	}
	if withLife {
		return rule.WithLife
	}
	return rule.Solo
}

// Riders returns the catalog entries eligible for an object type.
func (r *Registry) Riders(obj ObjectType) []*RiderProduct {
	var out []*RiderProduct
	for i := range r.riders {
		if r.riders[i].Eligible(obj) {
			out = append(out, &r.riders[i])
		}
	}
	return out
}

// DiscountPercent resolves the standard discount for a risk category under
// the given bank terms, honoring per-bank overrides. ok is false when the
// bank disallows the discount.
func (r *Registry) DiscountPercent(terms BankTerms, risk Risk) (float64, bool) {
	switch risk {
	case RiskLife:
		if !terms.AllowDiscountLife {
			return 0, false
		}
		if terms.DiscountLifePercent != nil {
			return *terms.DiscountLifePercent, true
		}
		return r.Discounts.Life, true
	case RiskProperty:
		if !terms.AllowDiscountProperty {
			return 0, false
		}
		if terms.DiscountPropertyPercent != nil {
			return *terms.DiscountPropertyPercent, true
		}
		return r.Discounts.Property, true
	case RiskTitle:
		if !terms.AllowDiscountTitle {
			return 0, false
		}
		if terms.DiscountTitlePercent != nil {
			return *terms.DiscountTitlePercent, true
		}
		return r.Discounts.Title, true
	}
	return 0, false
}
