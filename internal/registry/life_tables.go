package registry

// Life tariff tables, percent of insured amount per year, indexed by age.
// Sourced from the insurer's current rate sheets.

var lifeTableBase = &LifeTable{
	Name:   "base",
	MinAge: 18,
	MaxAge: 64,
	Male: []float64{
		0.17, 0.18, 0.19, 0.20, 0.21, 0.22, 0.23, 0.24, 0.25, 0.26,
		0.27, 0.28, 0.30, 0.33, 0.36, 0.39, 0.42, 0.45, 0.48, 0.51,
		0.54, 0.57, 0.61, 0.67, 0.73, 0.79, 0.85, 0.91, 0.97, 1.03,
		1.09, 1.15, 1.24, 1.33, 1.42, 1.51, 1.60, 1.69, 1.78, 1.87,
		1.96, 2.05, 2.17, 2.29, 2.41, 2.53, 2.65,
	},
	Female: []float64{
		0.10, 0.10, 0.11, 0.11, 0.12, 0.12, 0.13, 0.13, 0.14, 0.14,
		0.15, 0.15, 0.17, 0.19, 0.21, 0.23, 0.25, 0.27, 0.29, 0.31,
		0.33, 0.35, 0.38, 0.42, 0.46, 0.50, 0.54, 0.58, 0.62, 0.66,
		0.70, 0.74, 0.80, 0.86, 0.92, 0.98, 1.04, 1.10, 1.16, 1.22,
		1.28, 1.34, 1.42, 1.50, 1.58, 1.66, 1.74,
	},
}

var lifeTableDomRF = &LifeTable{
	Name:   "domrf",
	MinAge: 18,
	MaxAge: 64,
	Male: []float64{
		0.20, 0.21, 0.22, 0.23, 0.24, 0.25, 0.26, 0.28, 0.29, 0.30,
		0.31, 0.32, 0.34, 0.38, 0.41, 0.45, 0.48, 0.52, 0.55, 0.59,
		0.62, 0.66, 0.70, 0.77, 0.84, 0.91, 0.98, 1.05, 1.12, 1.18,
		1.25, 1.32, 1.43, 1.53, 1.63, 1.74, 1.84, 1.94, 2.05, 2.15,
		2.25, 2.36, 2.50, 2.63, 2.77, 2.91, 3.05,
	},
	Female: []float64{
		0.11, 0.11, 0.13, 0.13, 0.14, 0.14, 0.15, 0.15, 0.16, 0.16,
		0.17, 0.17, 0.20, 0.22, 0.24, 0.26, 0.29, 0.31, 0.33, 0.36,
		0.38, 0.40, 0.44, 0.48, 0.53, 0.57, 0.62, 0.67, 0.71, 0.76,
		0.80, 0.85, 0.92, 0.99, 1.06, 1.13, 1.20, 1.26, 1.33, 1.40,
		1.47, 1.54, 1.63, 1.72, 1.82, 1.91, 2.00,
	},
}

var lifeTableRSHB = &LifeTable{
	Name:      "rshb",
	MinAge:    18,
	MaxAge:    64,
	ClampAges: true,
	Male: []float64{
		0.21, 0.22, 0.24, 0.25, 0.26, 0.28, 0.29, 0.30, 0.31, 0.33,
		0.34, 0.35, 0.38, 0.41, 0.45, 0.49, 0.53, 0.56, 0.60, 0.64,
		0.68, 0.71, 0.76, 0.84, 0.91, 0.99, 1.06, 1.14, 1.21, 1.29,
		1.36, 1.44, 1.55, 1.66, 1.77, 1.89, 2.00, 2.11, 2.23, 2.34,
		2.45, 2.56, 2.71, 2.86, 3.01, 3.16, 3.31,
	},
	Female: []float64{
		0.12, 0.12, 0.14, 0.14, 0.15, 0.15, 0.16, 0.16, 0.18, 0.18,
		0.19, 0.19, 0.21, 0.24, 0.26, 0.29, 0.31, 0.34, 0.36, 0.39,
		0.41, 0.44, 0.47, 0.53, 0.58, 0.62, 0.68, 0.72, 0.78, 0.83,
		0.88, 0.93, 1.00, 1.07, 1.15, 1.23, 1.30, 1.38, 1.45, 1.52,
		1.60, 1.68, 1.77, 1.88, 1.98, 2.07, 2.17,
	},
}

var lifeTableSPB = &LifeTable{
	Name:   "spb",
	MinAge: 18,
	MaxAge: 64,
	Male: []float64{
		0.15, 0.16, 0.17, 0.18, 0.19, 0.20, 0.21, 0.22, 0.23, 0.23,
		0.24, 0.25, 0.27, 0.30, 0.32, 0.35, 0.38, 0.41, 0.43, 0.46,
		0.49, 0.51, 0.55, 0.60, 0.66, 0.71, 0.77, 0.82, 0.87, 0.93,
		0.98, 1.03, 1.12, 1.20, 1.28, 1.36, 1.44, 1.52, 1.60, 1.68,
		1.76, 1.84, 1.95, 2.06, 2.17, 2.28, 2.38,
	},
	Female: []float64{
		0.09, 0.09, 0.10, 0.10, 0.11, 0.11, 0.12, 0.12, 0.13, 0.13,
		0.14, 0.14, 0.15, 0.17, 0.19, 0.21, 0.23, 0.24, 0.26, 0.28,
		0.30, 0.32, 0.34, 0.38, 0.41, 0.45, 0.49, 0.52, 0.56, 0.59,
		0.63, 0.67, 0.72, 0.77, 0.83, 0.88, 0.94, 0.99, 1.04, 1.10,
		1.15, 1.21, 1.28, 1.35, 1.42, 1.49, 1.57,
	},
}

var lifeTableMKB = &LifeTable{
	Name:   "mkb",
	MinAge: 18,
	MaxAge: 64,
	Male: []float64{
		0.19, 0.20, 0.21, 0.22, 0.23, 0.24, 0.25, 0.26, 0.28, 0.29,
		0.30, 0.31, 0.33, 0.36, 0.40, 0.43, 0.46, 0.50, 0.53, 0.56,
		0.59, 0.63, 0.67, 0.74, 0.80, 0.87, 0.94, 1.00, 1.07, 1.13,
		1.20, 1.26, 1.36, 1.46, 1.56, 1.66, 1.76, 1.86, 1.96, 2.06,
		2.16, 2.25, 2.39, 2.52, 2.65, 2.78, 2.92,
	},
	Female: []float64{
		0.11, 0.11, 0.12, 0.12, 0.13, 0.13, 0.14, 0.14, 0.15, 0.15,
		0.17, 0.17, 0.19, 0.21, 0.23, 0.25, 0.28, 0.30, 0.32, 0.34,
		0.36, 0.39, 0.42, 0.46, 0.51, 0.55, 0.59, 0.64, 0.68, 0.73,
		0.77, 0.81, 0.88, 0.95, 1.01, 1.08, 1.14, 1.21, 1.28, 1.34,
		1.41, 1.47, 1.56, 1.65, 1.74, 1.83, 1.91,
	},
}

var lifeTableGPBOld = &LifeTable{
	Name:   "gpb-2022",
	MinAge: 18,
	MaxAge: 64,
	Male: []float64{
		0.18, 0.19, 0.20, 0.21, 0.22, 0.23, 0.24, 0.25, 0.26, 0.27,
		0.28, 0.29, 0.32, 0.35, 0.38, 0.41, 0.44, 0.47, 0.50, 0.54,
		0.57, 0.60, 0.64, 0.70, 0.77, 0.83, 0.89, 0.96, 1.02, 1.08,
		1.14, 1.21, 1.30, 1.40, 1.49, 1.59, 1.68, 1.77, 1.87, 1.96,
		2.06, 2.15, 2.28, 2.40, 2.53, 2.66, 2.78,
	},
	Female: []float64{
		0.11, 0.11, 0.12, 0.12, 0.13, 0.13, 0.14, 0.14, 0.15, 0.15,
		0.16, 0.16, 0.18, 0.20, 0.22, 0.24, 0.26, 0.28, 0.30, 0.33,
		0.35, 0.37, 0.40, 0.44, 0.48, 0.53, 0.57, 0.61, 0.65, 0.69,
		0.73, 0.78, 0.84, 0.90, 0.97, 1.03, 1.09, 1.16, 1.22, 1.28,
		1.34, 1.41, 1.49, 1.58, 1.66, 1.74, 1.83,
	},
}

var lifeTableGPBNew = &LifeTable{
	Name:   "gpb-2024",
	MinAge: 18,
	MaxAge: 64,
	Male: []float64{
		0.22, 0.23, 0.25, 0.26, 0.27, 0.29, 0.30, 0.31, 0.33, 0.34,
		0.35, 0.36, 0.39, 0.43, 0.47, 0.51, 0.55, 0.59, 0.62, 0.66,
		0.70, 0.74, 0.79, 0.87, 0.95, 1.03, 1.10, 1.18, 1.26, 1.34,
		1.42, 1.49, 1.61, 1.73, 1.85, 1.96, 2.08, 2.20, 2.31, 2.43,
		2.55, 2.67, 2.82, 2.98, 3.13, 3.29, 3.44,
	},
	Female: []float64{
		0.13, 0.13, 0.14, 0.14, 0.16, 0.16, 0.17, 0.17, 0.18, 0.18,
		0.20, 0.20, 0.22, 0.25, 0.27, 0.30, 0.33, 0.35, 0.38, 0.40,
		0.43, 0.45, 0.49, 0.55, 0.60, 0.65, 0.70, 0.75, 0.81, 0.86,
		0.91, 0.96, 1.04, 1.12, 1.20, 1.27, 1.35, 1.43, 1.51, 1.59,
		1.66, 1.74, 1.85, 1.95, 2.05, 2.16, 2.26,
	},
}

// ВТБ tariffs in force from 2025-02-01 cover ages 18..50 only; older
// borrowers stay on the base table via the schedule's overflow slot.
var lifeTableVTBNew = &LifeTable{
	Name:   "vtb-2025",
	MinAge: 18,
	MaxAge: 50,
	Male: []float64{
		0.14, 0.15, 0.16, 0.17, 0.18, 0.19, 0.20, 0.20, 0.21, 0.22,
		0.23, 0.24, 0.26, 0.28, 0.31, 0.33, 0.36, 0.38, 0.41, 0.43,
		0.46, 0.48, 0.52, 0.57, 0.62, 0.67, 0.72, 0.77, 0.82, 0.88,
		0.93, 0.98, 1.05,
	},
	Female: []float64{
		0.09, 0.09, 0.09, 0.09, 0.10, 0.10, 0.11, 0.11, 0.12, 0.12,
		0.13, 0.13, 0.14, 0.16, 0.18, 0.20, 0.21, 0.23, 0.25, 0.26,
		0.28, 0.30, 0.32, 0.36, 0.39, 0.42, 0.46, 0.49, 0.53, 0.56,
		0.59, 0.63, 0.68,
	},
}

func defaultLifeSchedules() map[LifeModel]LifeSchedule {
	return map[LifeModel]LifeSchedule{
		LifeModelBase:  {{Table: lifeTableBase}},
		LifeModelDomRF: {{Table: lifeTableDomRF}},
		LifeModelRSHB:  {{Table: lifeTableRSHB}},
		LifeModelSPB:   {{Table: lifeTableSPB}},
		LifeModelMKB:   {{Table: lifeTableMKB}},
		LifeModelGPB: {
			{Table: lifeTableGPBOld},
			{ValidFrom: gpbCutoff, Table: lifeTableGPBNew},
		},
		LifeModelVTB: {
			{Table: lifeTableBase},
			{ValidFrom: vtbCutoff, Table: lifeTableVTBNew, Overflow: lifeTableBase},
		},
	}
}
