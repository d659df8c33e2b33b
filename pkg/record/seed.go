package record

import (
	"log"
	"time"

	"agristat/entities"
	"agristat/pkg/record/repository"
)

// CONAB consolidated coffee series 2018-2026. Minas Gerais carries the
// arabica biennial swing; Espirito Santo shows steady conillon expansion.
var historical = []struct {
	id           string
	year         int
	state        string
	crop         string
	production   float64
	productivity float64
	area         float64
}{
	{"mg-2018", 2018, "MG", "Café Arábica", 33400, 1810, 1108},
	{"mg-2019", 2019, "MG", "Café Arábica", 24500, 1330, 1105},
	{"mg-2020", 2020, "MG", "Café Arábica", 34650, 1880, 1105},
	{"mg-2021", 2021, "MG", "Café Arábica", 22140, 1210, 1100},
	{"mg-2022", 2022, "MG", "Café Arábica", 28450, 1550, 1102},
	{"mg-2023", 2023, "MG", "Café Arábica", 29020, 1585, 1098},
	{"mg-2024", 2024, "MG", "Café Arábica", 31500, 1720, 1100},
	{"mg-2025", 2025, "MG", "Café Arábica", 32800, 1790, 1100},
	{"mg-2026", 2026, "MG", "Café Arábica", 34100, 1860, 1100},

	{"es-2018", 2018, "ES", "Café Conillon", 9200, 1880, 294},
	{"es-2019", 2019, "ES", "Café Conillon", 9800, 2005, 293},
	{"es-2020", 2020, "ES", "Café Conillon", 10150, 2080, 293},
	{"es-2021", 2021, "ES", "Café Conillon", 11200, 2290, 294},
	{"es-2022", 2022, "ES", "Café Conillon", 12350, 2510, 295},
	{"es-2023", 2023, "ES", "Café Conillon", 13800, 2800, 296},
	{"es-2024", 2024, "ES", "Café Conillon", 14500, 2950, 295},
	{"es-2025", 2025, "ES", "Café Conillon", 15400, 3120, 296},
	{"es-2026", 2026, "ES", "Café Conillon", 16100, 3260, 296},

	{"sp-2018", 2018, "SP", "Café Arábica", 6450, 1920, 201},
	{"sp-2020", 2020, "SP", "Café Arábica", 6200, 1850, 201},
	{"sp-2022", 2022, "SP", "Café Arábica", 4300, 1285, 201},
	{"sp-2024", 2024, "SP", "Café Arábica", 5400, 1620, 200},
	{"sp-2026", 2026, "SP", "Café Arábica", 5850, 1760, 200},

	{"ro-2018", 2018, "RO", "Café Robusta", 2150, 1980, 65},
	{"ro-2020", 2020, "RO", "Café Robusta", 2420, 2230, 65},
	{"ro-2022", 2022, "RO", "Café Robusta", 2650, 2450, 65},
	{"ro-2024", 2024, "RO", "Café Robusta", 2900, 2680, 65},
	{"ro-2026", 2026, "RO", "Café Robusta", 3120, 2880, 65},

	{"ba-2018", 2018, "BA", "Café Arábica", 3800, 1300, 175},
	{"ba-2020", 2020, "BA", "Café Arábica", 3950, 1350, 175},
	{"ba-2022", 2022, "BA", "Café Arábica", 3600, 1230, 175},
	{"ba-2024", 2024, "BA", "Café Arábica", 4100, 1405, 175},
	{"ba-2026", 2026, "BA", "Café Arábica", 4250, 1460, 175},

	{"pr-2026", 2026, "PR", "Café Arábica", 850, 1250, 41},

	{"go-2026", 2026, "GO", "Café Arábica", 320, 1480, 13},

	{"rj-2026", 2026, "RJ", "Café Arábica", 240, 1150, 12},

	{"mt-2026", 2026, "MT", "Café Robusta", 180, 1320, 8},
}

// HistoricalData returns a fresh copy of the built-in dataset.
func HistoricalData(capturedAt time.Time) []entities.CropRecord {
	out := make([]entities.CropRecord, len(historical))
	for i, h := range historical {
		out[i] = entities.CropRecord{
			ID:           h.id,
			Year:         h.year,
			RegionCode:   h.state,
			RegionGroup:  entities.RegionFor(h.state),
			CropType:     h.crop,
			Production:   h.production,
			Productivity: h.productivity,
			Area:         h.area,
			CapturedAt:   capturedAt,
		}
	}
	return out
}

// Seed loads the built-in dataset when the store is empty and reports how
// many records were inserted.
func Seed(repo repository.RecordRepository) (int, error) {
	n, err := repo.Count()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	data := HistoricalData(time.Now().UTC())
	if err := repo.UpsertMany(data); err != nil {
		return 0, err
	}
	log.Printf("[db] seeded %d historical records", len(data))
	return len(data), nil
}
