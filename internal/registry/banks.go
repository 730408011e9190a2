package registry

import "time"

// Reference data below mirrors the insurer's published bank sheet. Dates are
// rule-change cutoffs supplied by the partner banks.

func pct(v float64) *float64 { return &v }

var (
	vtbCutoff = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	gpbCutoff = time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
)

func defaultBanks() []BankConfig {
	return []BankConfig{
		{
			Name:      "Абсолют Банк",
			Aliases:   []string{"абсолют", "абсолют банк", "абсолютбанк", "абсолют-банк"},
			LifeModel: LifeModelBase,
			Terms:     []BankTerms{{MarkupPercent: pct(0), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "Ак Барс",
			Aliases:   []string{"ак барс", "ак-барс", "акбарс"},
			LifeModel: LifeModelBase,
			Terms:     []BankTerms{{MarkupPercent: pct(0), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "Альфа Банк",
			Aliases:   []string{"альфа", "альфабанк", "альфа банк"},
			LifeModel: LifeModelBase,
			// Markup is quoted per client; discounts are contractually barred.
			Terms: []BankTerms{{MarkupPercent: nil}},
		},
		{
			Name:      "Банк СПБ",
			Aliases:   []string{"банк спб", "спб", "спб банк", "банк санкт-петербург"},
			LifeModel: LifeModelSPB,
			Terms:     []BankTerms{{MarkupPercent: pct(0), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:           "ВТБ",
			Aliases:        []string{"втб", "втб банк", "открытие", "банк открытие"},
			LifeModel:      LifeModelVTB,
			ShareSumExempt: true,
			Terms: []BankTerms{
				{MarkupPercent: pct(10), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true},
				{ValidFrom: vtbCutoff, MarkupPercent: pct(0)},
			},
		},
		{
			Name:      "Газпромбанк",
			Aliases:   []string{"гпб", "газпромбанк", "газпром банк"},
			LifeModel: LifeModelGPB,
			Terms:     []BankTerms{{MarkupPercent: pct(0), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "Дом.РФ",
			Aliases:   []string{"дом.рф", "дом рф", "домрф", "дом. рф"},
			LifeModel: LifeModelDomRF,
			Terms:     []BankTerms{{MarkupPercent: pct(0)}},
		},
		{
			Name:      "Зенит",
			Aliases:   []string{"зенит", "зенит банк"},
			LifeModel: LifeModelBase,
			Terms:     []BankTerms{{MarkupPercent: pct(10), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "ИТБ / ТКБ",
			Aliases:   []string{"итб", "ткб", "ткб/итб", "итб/ткб"},
			LifeModel: LifeModelBase,
			Terms:     []BankTerms{{MarkupPercent: pct(10), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "Металлинвест",
			Aliases:   []string{"металлинвест", "металлинвестбанк"},
			LifeModel: LifeModelBase,
			Terms:     []BankTerms{{MarkupPercent: pct(10), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "МКБ",
			Aliases:   []string{"мкб", "мкб банк", "московский кредитный банк"},
			LifeModel: LifeModelMKB,
			Terms:     []BankTerms{{MarkupPercent: pct(0), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "МТС Банк",
			Aliases:   []string{"мтс", "мтс банк"},
			LifeModel: LifeModelBase,
			Terms:     []BankTerms{{MarkupPercent: pct(10), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "ПСБ (Промсвязьбанк)",
			Aliases:   []string{"псб", "промсвязьбанк", "псб банк"},
			LifeModel: LifeModelBase,
			Terms:     []BankTerms{{MarkupPercent: pct(0), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "Райффайзенбанк",
			Aliases:   []string{"райф", "райффайзен", "райфайзен", "райфайзенбанк", "raiffaisen"},
			LifeModel: LifeModelBase,
			Terms:     []BankTerms{{MarkupPercent: pct(10), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "Росбанк / Т-Банк",
			Aliases:   []string{"росбанк", "т банк", "т-банк", "тбанк", "t bank", "тинькофф", "тиньков", "тинкофф", "tinkoff"},
			LifeModel: LifeModelBase,
			Terms:     []BankTerms{{MarkupPercent: pct(0), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "РСХБ",
			Aliases:   []string{"рсхб", "россельхоз", "россельхозбанк"},
			LifeModel: LifeModelRSHB,
			Terms:     []BankTerms{{MarkupPercent: pct(10), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "Сбербанк",
			Aliases:   []string{"сбер", "сбербанк", "sber"},
			LifeModel: LifeModelBase,
			Terms:     []BankTerms{{MarkupPercent: pct(0), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "Тимер Банк",
			Aliases:   []string{"тимер", "тимер банк"},
			LifeModel: LifeModelBase,
			Terms:     []BankTerms{{MarkupPercent: pct(0), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "УБРИР",
			Aliases:   []string{"убрир", "у б р и р", "ubr"},
			LifeModel: LifeModelBase,
			Terms:     []BankTerms{{MarkupPercent: nil, AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "Уралсиб",
			Aliases:   []string{"уралсиб"},
			LifeModel: LifeModelBase,
			Terms:     []BankTerms{{MarkupPercent: pct(0), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "Энергобанк",
			Aliases:   []string{"энерго", "энергобанк", "энерго банк", "энерго-банк"},
			LifeModel: LifeModelBase,
			Terms:     []BankTerms{{MarkupPercent: pct(0), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
		{
			Name:      "Юникредит Банк",
			Aliases:   []string{"юникредит", "unicredit", "uni credit"},
			LifeModel: LifeModelBase,
			Terms:     []BankTerms{{MarkupPercent: pct(0), AllowDiscountLife: true, AllowDiscountProperty: true, AllowDiscountTitle: true}},
		},
	}
}

func defaultPropertyBase() []PropertyRule {
	return []PropertyRule{{
		Rates: map[ObjectType]float64{
			ObjectFlat:       0.10,
			ObjectHouseBrick: 0.18,
			ObjectHouseWood:  0.43,
		},
	}}
}

func defaultPropertyBanks() map[string][]PropertyRule {
	return map[string][]PropertyRule{
		"Дом.РФ": {{
			Rates: map[ObjectType]float64{
				ObjectFlat:       0.144,
				ObjectHouseBrick: 0.18,
				ObjectHouseWood:  0.43,
			},
		}},
	}
}

func defaultTitleRules() []TitleRule {
	return []TitleRule{{WithLife: 0.2, Solo: 0.2}}
}

func defaultTitleBanks() map[string][]TitleRule {
	return map[string][]TitleRule{
		"Газпромбанк": {
			{WithLife: 0.28, Solo: 0.336},
			{ValidFrom: gpbCutoff, WithLife: 0.38, Solo: 0.457},
		},
	}
}
