// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package petcare

// breedIdealWeight holds the ideal weight (kg) for a breed, per gender,
// grounded on original_source's BreedService.get_breed_ideal_weight
// (`weight_kg: {male, female}` per breed document). A breed present in
// this table but missing a weight for the requested gender falls back to
// the pet's initial_weight_kg (spec §4.9); a breed absent from this table
// entirely fails registration outright (SPEC_FULL.md §4's breed-validation
// decision).
type breedIdealWeight struct {
	MaleKg   *float64
	FemaleKg *float64
}

func kg(v float64) *float64 { return &v }

// breedTable is a representative seed of common breeds this core
// recognizes. In the original system this data lives in a `breeds`
// Firestore collection populated by an operator import; here it is a
// static table, since seeding an external reference collection is outside
// this core's write surface.
var breedTable = map[string]breedIdealWeight{
	"Golden Retriever":     {MaleKg: kg(32), FemaleKg: kg(27)},
	"Labrador Retriever":   {MaleKg: kg(32), FemaleKg: kg(29)},
	"Poodle":               {MaleKg: kg(7), FemaleKg: kg(6.5)},
	"Miniature Poodle":     {MaleKg: kg(6), FemaleKg: kg(5.5)},
	"Pomeranian":           {MaleKg: kg(3.5), FemaleKg: kg(3)},
	"Shih Tzu":              {MaleKg: kg(6.5), FemaleKg: kg(6)},
	"Maltese":               {MaleKg: kg(3), FemaleKg: kg(2.5)},
	"French Bulldog":        {MaleKg: kg(10), FemaleKg: kg(9)},
	"Bichon Frise":          {MaleKg: kg(6), FemaleKg: kg(5.5)},
	"Welsh Corgi":           {MaleKg: kg(12), FemaleKg: kg(11)},
	"Chihuahua":             {MaleKg: kg(2.5), FemaleKg: kg(2)},
	"Pug":                   {MaleKg: kg(8), FemaleKg: kg(7)},
	"Border Collie":         {MaleKg: kg(20), FemaleKg: kg(17)},
	"Jindo":                 {MaleKg: kg(20), FemaleKg: kg(18)},
	"Mixed Breed":           {},
}

// lookupBreed reports whether breed is known to this core, and the ideal
// weight for gender if the table has one.
func lookupBreed(breed string, gender Gender) (idealWeightKg *float64, known bool) {
	entry, known := breedTable[breed]
	if !known {
		return nil, false
	}

	switch gender {
	case GenderMale:
		return entry.MaleKg, true
	case GenderFemale:
		return entry.FemaleKg, true
	default:
		return nil, true
	}
}
