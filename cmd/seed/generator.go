package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

var manufacturers = []string{"PharmaCorp", "MediLife", "HealthCare Solutions", "BioPharm", "GlobalMed"}

var dosageForms = []string{"tablet", "capsule", "syrup", "injection"}

var variants = []string{"Regular", "Extended Release", "Rapid Action"}

type baseMedicine struct {
	name      string
	generic   string
	dosage    string
	category  string
	basePrice float64
}

var baseMedicines = []baseMedicine{
	{"Amoxicillin", "Amoxicillin Trihydrate", "500mg", "Antibiotics", 5.00},
	{"Paracetamol", "Acetaminophen", "500mg", "Analgesics", 2.50},
	{"Metformin", "Metformin Hydrochloride", "850mg", "Antidiabetics", 4.25},
	{"Amlodipine", "Amlodipine Besylate", "5mg", "Antihypertensives", 6.00},
	{"Cetirizine", "Cetirizine Hydrochloride", "10mg", "Antihistamines", 3.20},
	{"Omeprazole", "Omeprazole Magnesium", "20mg", "Antacids", 3.75},
	{"Losartan", "Losartan Potassium", "50mg", "Antihypertensives", 5.40},
	{"Aspirin", "Acetylsalicylic Acid", "81mg", "Analgesics", 1.80},
	{"Metoprolol", "Metoprolol Tartrate", "25mg", "Beta Blockers", 4.60},
	{"Lisinopril", "Lisinopril Dihydrate", "10mg", "Antihypertensives", 4.90},
}

// seedItem un medicamento con sus lotes iniciales.
type seedItem struct {
	Medicine entity.Medicine
	Batches  []entity.Batch
}

// generate arma n medicamentos deterministas para la semilla dada. Cada uno recibe un lote regular
// (100..1099 unidades, vence en 180..730 días) y con 20 % de probabilidad un lote próximo a vencer
// (50..149 unidades, vence en 0..90 días). Costo unitario = precio * 0.6.
func generate(n int, seed uint64, now time.Time) []seedItem {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	today := entity.DateOf(now)
	prefix := "BAT" + today.Format("200601")
	combos := len(baseMedicines) * len(variants)

	items := make([]seedItem, 0, n)
	seq := 0
	for i := 0; i < n; i++ {
		base := baseMedicines[i%len(baseMedicines)]
		variant := variants[(i/len(baseMedicines))%len(variants)]
		// nombre + dosis es único: la presentación cambia en cada vuelta completa de combinaciones
		pack := 10 * (i/combos + 1)

		price := decimal.NewFromFloat(base.basePrice + rng.Float64()*5).Round(2)
		med := entity.Medicine{
			ID:           uuid.New().String(),
			Name:         fmt.Sprintf("%s %s x%d", base.name, variant, pack),
			GenericName:  base.generic,
			Manufacturer: manufacturers[i%len(manufacturers)],
			Category:     base.category,
			Dosage:       base.dosage,
			Unit:         dosageForms[i%len(dosageForms)],
			UnitPrice:    price,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		cost := price.Mul(decimal.NewFromFloat(0.6)).Round(2)

		seq++
		batches := []entity.Batch{{
			ID:           uuid.New().String(),
			ProductID:    med.ID,
			BatchNumber:  fmt.Sprintf("%s%04d", prefix, seq),
			Quantity:     int64(100 + rng.IntN(1000)),
			UnitCost:     cost,
			ExpiryDate:   today.AddDate(0, 0, 180+rng.IntN(551)),
			ReceivedDate: today,
			CreatedAt:    now,
		}}
		if rng.Float64() < 0.2 {
			seq++
			batches = append(batches, entity.Batch{
				ID:           uuid.New().String(),
				ProductID:    med.ID,
				BatchNumber:  fmt.Sprintf("%sEXP%04d", prefix, seq),
				Quantity:     int64(50 + rng.IntN(100)),
				UnitCost:     cost,
				ExpiryDate:   today.AddDate(0, 0, rng.IntN(91)),
				ReceivedDate: today,
				CreatedAt:    now,
			})
		}
		items = append(items, seedItem{Medicine: med, Batches: batches})
	}
	return items
}
