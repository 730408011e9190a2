package variant

import (
	"math"

	"github.com/quotelab/mortgage-quoter/internal/registry"
)

// size grows the chosen rider when the saving overshoots the sizing
// threshold, aiming the gap back at the sizing target. Returns nil when the
// product cannot be grown.
func (o *Optimizer) size(c *candidate, insured, core, v1 float64) *candidate {
	switch c.product.ID {
	case "moyakvartira":
		return o.sizeTiered(c, core, v1)
	case "express":
		return o.sizePacked(c, core, v1)
	case "bastion":
		return o.sizeConstruct(c, insured, core, v1)
	}
	return nil
}

// sizeTiered rebuilds the rider from the product's sub-coverages, adding them
// in order until the premium reaches what the target gap requires.
func (o *Optimizer) sizeTiered(c *candidate, core, v1 float64) *candidate {
	needed := v1 - o.cfg.SizingTarget - core
	if needed <= 0 {
		return nil
	}

	sized := candidate{product: c.product}
	for _, kind := range []registry.CoverKind{
		registry.CoverFinish, registry.CoverMovable, registry.CoverLiability,
	} {
		cover, ok := c.product.Cover(kind)
		if !ok {
			continue
		}
		remaining := needed - sized.premium
		if remaining <= 0 {
			break
		}
		sum := coverSumFor(cover, remaining)
		prem := round2(sum * cover.RateFor(sum))
		sized.riders = append(sized.riders, RiderLine{
			Product: c.product.ID,
			Name:    c.product.Name,
			Label:   cover.Label,
			Sum:     sum,
			Premium: prem,
		})
		sized.premium = round2(sized.premium + prem)
	}
	if len(sized.riders) == 0 {
		return nil
	}
	sized.total = round2(core + sized.premium)
	return &sized
}

// coverSumFor inverts the first-tier rate to estimate the sum insured that
// yields the wanted premium, clamped to the coverage table.
func coverSumFor(cover registry.SubCoverage, wantPremium float64) float64 {
	sum := math.Round(wantPremium / cover.Tiers[0].Rate)
	if sum < cover.MinSum() {
		sum = cover.MinSum()
	}
	if sum > cover.MaxSum() {
		sum = cover.MaxSum()
	}
	return sum
}

// sizePacked upgrades a pack-priced product to the pack nearest the premium
// the target gap requires, capped at 1.5 times that premium.
func (o *Optimizer) sizePacked(c *candidate, core, v1 float64) *candidate {
	target := v1 - o.cfg.SizingTarget - core
	if target <= 0 {
		return nil
	}

	var best *registry.Pack
	bestDiff := math.Inf(1)
	for i := range c.product.Packs {
		pk := &c.product.Packs[i]
		if pk.Premium > target*1.5 {
			continue
		}
		if d := math.Abs(pk.Premium - target); d < bestDiff {
			best, bestDiff = pk, d
		}
	}
	if best == nil {
		for i := range c.product.Packs {
			pk := &c.product.Packs[i]
			if best == nil || pk.Premium > best.Premium {
				best = pk
			}
		}
	}

	sized := candidate{
		product: c.product,
		premium: best.Premium,
		riders: []RiderLine{{
			Product: c.product.ID,
			Name:    c.product.Name,
			Label:   c.product.RiskName,
			Premium: best.Premium,
		}},
	}
	sized.total = round2(core + sized.premium)
	return &sized
}

// sizeConstruct grows the construct sub-coverage toward the target gap and
// keeps the seeded finish line alongside it.
func (o *Optimizer) sizeConstruct(c *candidate, insured, core, v1 float64) *candidate {
	cons, ok := c.product.Cover(registry.CoverConstruct)
	if !ok {
		return nil
	}

	needed := (v1 - c.total) - o.cfg.SizingTarget
	minSum := cons.MinSum()
	rate := cons.RateFor(minSum)
	basePrem := round2(minSum * rate)

	sum := minSum
	if extra := needed - basePrem; extra > 0 {
		sum = math.Min(cons.MaxSum(), minSum+math.Round(extra/rate))
	}
	prem := round2(sum * cons.RateFor(sum))

	sized := candidate{
		product: c.product,
		riders: []RiderLine{{
			Product: c.product.ID,
			Name:    c.product.Name,
			Label:   cons.Label,
			Sum:     sum,
			Premium: prem,
		}},
		premium: prem,
	}

	// The seeded finish line stays in the grown quote.
	for _, r := range c.riders {
		sized.riders = append(sized.riders, r)
		sized.premium = round2(sized.premium + r.Premium)
	}
	sized.total = round2(core + sized.premium)
	return &sized
}
