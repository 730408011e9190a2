package registry

// Rider catalog for the discounted second quote. Бастион is the only product
// sold against houses; the rest cover flat-like objects.

var flatObjects = []ObjectType{ObjectFlat, ObjectApartment, ObjectTownhouse}

func defaultRiders() []RiderProduct {
	return []RiderProduct{
		{
			ID:       "moyakvartira",
			Name:     "Моя квартира",
			RiskName: "отделка и инженерное оборудование",
			Objects:  flatObjects,
			Priority: true,
			Covers: []SubCoverage{
				{
					Kind:  CoverFinish,
					Label: "отделка и инженерное оборудование",
					Tiers: []Tier{
						{MinSum: 200_000, MaxSum: 350_000, Rate: 0.0080},
						{MinSum: 350_000, MaxSum: 500_000, Rate: 0.0095},
					},
				},
				{
					Kind:  CoverMovable,
					Label: "движимое имущество",
					Tiers: []Tier{
						{MinSum: 50_000, MaxSum: 500_000, Rate: 0.0040},
						{MinSum: 500_000, MaxSum: 2_000_000, Rate: 0.0050},
					},
				},
				{
					Kind:  CoverLiability,
					Label: "гражданская ответственность",
					Tiers: []Tier{
						{MinSum: 100_000, MaxSum: 300_000, Rate: 0.0020},
						{MinSum: 300_000, MaxSum: 500_000, Rate: 0.0025},
					},
				},
			},
		},
		{
			ID:       "express",
			Name:     "Экспресс квартира",
			RiskName: "отделка и движимое имущество",
			Objects:  flatObjects,
			Priority: true,
			Packs: []Pack{
				{FinishSum: 100_000, MovableSum: 50_000, Premium: 550},
				{FinishSum: 150_000, MovableSum: 100_000, Premium: 990},
				{FinishSum: 250_000, MovableSum: 150_000, Premium: 1590},
				{FinishSum: 400_000, MovableSum: 250_000, Premium: 2490},
				{FinishSum: 600_000, MovableSum: 400_000, Premium: 3790},
			},
		},
		{
			ID:       "express_go",
			Name:     "Экспресс ГО",
			RiskName: "гражданская ответственность",
			Objects:  flatObjects,
			Packs: []Pack{
				{LiabilitySum: 300_000, Premium: 500},
				{LiabilitySum: 500_000, Premium: 750},
				{LiabilitySum: 1_000_000, Premium: 1300},
				{LiabilitySum: 1_500_000, Premium: 1800},
			},
		},
		{
			ID:       "bastion",
			Name:     "Бастион",
			RiskName: "военные риски",
			Covers: []SubCoverage{
				{
					Kind:  CoverFinish,
					Label: "отделка и инженерное оборудование",
					Tiers: []Tier{
						{MinSum: 100_000, MaxSum: 1_000_000, Rate: 0.0030},
					},
				},
				{
					Kind:  CoverConstruct,
					Label: "конструктивные элементы",
					Tiers: []Tier{
						{MinSum: 500_000, MaxSum: 5_000_000, Rate: 0.0010},
					},
				},
			},
		},
	}
}
