package settings

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/napolitain/factory-planner/internal/factory"
)

// Settings string sections, in the order Format writes them.
const (
	keyItems     = "items"
	keyAlt       = "alt"
	keyMiners    = "miners"
	keyOverclock = "overclock"
	keyIgnore    = "ignore"
	keyBelt      = "belt"
	keyAssembler = "assembler"
	keySmelter   = "smelter"

	// rateMode marks a target given in items per minute
	rateMode = "r"
)

// Format serializes spec as a settings string, e.g.
//
//	items=iron_ingot:r:30,screw:r:60&alt=screw:alt_cast_screw&belt=belt2
//
// Sections holding only default values are omitted.
func Format(spec *factory.Specification) string {
	return FromSpec(spec).Fragment()
}

// Apply loads a settings string produced by Format into spec. A leading
// "#" is accepted.
func Apply(spec *factory.Specification, fragment string) error {
	p, err := ParseFragment(fragment)
	if err != nil {
		return err
	}
	return p.Apply(spec)
}

// Fragment encodes the plan as a settings string
func (p *Plan) Fragment() string {
	var parts []string
	add := func(key string, values []string) {
		if len(values) > 0 {
			parts = append(parts, key+"="+strings.Join(values, ","))
		}
	}

	var items []string
	for _, t := range p.Targets {
		items = append(items, t.Item+":"+rateMode+":"+t.Rate)
	}
	add(keyItems, items)

	var alts []string
	for _, item := range sortedKeys(p.Alternates) {
		alts = append(alts, item+":"+p.Alternates[item])
	}
	add(keyAlt, alts)

	var miners []string
	for _, m := range p.Miners {
		miners = append(miners, m.Recipe+":"+m.Miner+":"+m.Purity)
	}
	add(keyMiners, miners)

	var ocs []string
	for _, recipe := range sortedKeys(p.Overclock) {
		ocs = append(ocs, recipe+":"+p.Overclock[recipe])
	}
	add(keyOverclock, ocs)

	add(keyIgnore, p.Ignore)

	if p.Belt != "" {
		add(keyBelt, []string{p.Belt})
	}
	if p.Assembler != "" {
		add(keyAssembler, []string{p.Assembler})
	}
	if p.Smelter != "" {
		add(keySmelter, []string{p.Smelter})
	}
	return strings.Join(parts, "&")
}

// ParseFragment decodes a settings string into a plan. Unknown sections are
// skipped.
func ParseFragment(fragment string) (*Plan, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(fragment, "#"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	p := &Plan{}
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		// last one wins
		val := vals[len(vals)-1]

		switch key {
		case keyItems:
			for _, field := range splitList(val) {
				parts := strings.Split(field, ":")
				if len(parts) != 3 || parts[1] != rateMode {
					return nil, fmt.Errorf("invalid target %q", field)
				}
				p.Targets = append(p.Targets, Target{Item: parts[0], Rate: parts[2]})
			}
		case keyAlt:
			p.Alternates = make(map[string]string)
			for _, field := range splitList(val) {
				item, recipe, ok := strings.Cut(field, ":")
				if !ok {
					return nil, fmt.Errorf("invalid alternate %q", field)
				}
				p.Alternates[item] = recipe
			}
		case keyMiners:
			for _, field := range splitList(val) {
				parts := strings.Split(field, ":")
				if len(parts) != 3 {
					return nil, fmt.Errorf("invalid miner %q", field)
				}
				p.Miners = append(p.Miners, Miner{Recipe: parts[0], Miner: parts[1], Purity: parts[2]})
			}
		case keyOverclock:
			p.Overclock = make(map[string]string)
			for _, field := range splitList(val) {
				recipe, factor, ok := strings.Cut(field, ":")
				if !ok {
					return nil, fmt.Errorf("invalid overclock %q", field)
				}
				p.Overclock[recipe] = factor
			}
		case keyIgnore:
			p.Ignore = splitList(val)
		case keyBelt:
			p.Belt = val
		case keyAssembler:
			p.Assembler = val
		case keySmelter:
			p.Smelter = val
		default:
			slog.Debug("skipping unknown settings section", "section", key)
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
