// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package petcare

import (
	"context"
	"math"
	"time"

	"github.com/happydog/core/internal/platform/apperr"
	"github.com/happydog/core/internal/platform/constants"
	"github.com/happydog/core/internal/platform/docstore"
	"github.com/happydog/core/internal/platform/validate"
	"github.com/happydog/core/pkg/clock"
	"github.com/happydog/core/pkg/ids"
)

func parseBirthdate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// waterBowlFormula derives the bowl capacity and per-log increment from a
// pet's initial weight (spec §4.9): capacity scales at 60ml/kg, the
// increment is 20% of capacity, floored at 1ml so a toy-breed pet still
// gets a usable increment.
func waterBowlFormula(initialWeightKg float64) (capacityMl, incrementMl int) {
	capacityMl = int(math.Round(initialWeightKg * 60))
	incrementMl = int(math.Round(float64(capacityMl) * 0.2))
	if incrementMl < 1 {
		incrementMl = 1
	}
	return capacityMl, incrementMl
}

// Service implements pet registration and care-record logging.
type Service struct {
	docs  *docstore.Store
	store *Store
	clock clock.Clock
}

// NewService constructs a [Service].
func NewService(docs *docstore.Store, store *Store, c clock.Clock) *Service {
	return &Service{docs: docs, store: store, clock: c}
}

// RegistrationInput carries register_pet's caller-supplied fields.
type RegistrationInput struct {
	OwnerUserID     string
	Name            string
	Gender          Gender
	Breed           string
	Birthdate       string // caller-supplied YYYY-MM-DD; RegisterPet parses it
	InitialWeightKg float64
	FurColor        *string
	HealthConcerns  []string
}

// RegisterPet is the only compound write in this component (spec §4.9):
// in a single transaction it inserts the Pet and deterministically
// computes and inserts its PetCareSettings. An unrecognized breed fails
// the whole transaction with ValidationError — registration and settings
// creation are never partial.
func (s *Service) RegisterPet(ctx context.Context, in RegistrationInput) (Pet, error) {
	v := &validate.Validator{}
	v.Required("name", in.Name).
		Required("breed", in.Breed).
		Custom("initial_weight_kg", in.InitialWeightKg <= 0, "Must be greater than 0")
	if err := v.Err(); err != nil {
		return Pet{}, err
	}

	idealWeight, known := lookupBreed(in.Breed, in.Gender)
	if !known {
		return Pet{}, apperr.ValidationError("unknown breed: " + in.Breed)
	}

	goalWeightKg := in.InitialWeightKg
	if idealWeight != nil {
		goalWeightKg = *idealWeight
	}

	capacityMl, incrementMl := waterBowlFormula(in.InitialWeightKg)

	birthdate, err := parseBirthdate(in.Birthdate)
	if err != nil {
		return Pet{}, apperr.ValidationError("birthdate must be YYYY-MM-DD")
	}

	pet := Pet{
		PetID:           ids.New(),
		OwnerUserID:     in.OwnerUserID,
		Name:            in.Name,
		Gender:          in.Gender,
		Breed:           in.Breed,
		Birthdate:       birthdate,
		InitialWeightKg: in.InitialWeightKg,
		IsVerified:      false,
		FurColor:        in.FurColor,
		HealthConcerns:  in.HealthConcerns,
	}

	settings := CareSettings{
		PetID:                    pet.PetID,
		GoalWeightKg:             goalWeightKg,
		WaterBowlCapacityMl:      capacityMl,
		WaterIncrementMl:         incrementMl,
		GoalActivityMinutes:      constants.DefaultGoalActivityMinutes,
		ActivityIncrementMinutes: constants.DefaultActivityIncrementMinutes,
		GoalMealCount:            constants.DefaultGoalMealCount,
		MealIncrementCount:       constants.DefaultMealIncrementCount,
	}

	err = s.docs.Transaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		if err := tx.Set(ctx, docstore.CollectionPets, pet.PetID, pet); err != nil {
			return err
		}
		return tx.Set(ctx, collectionCareSettings, settings.PetID, settings)
	})
	if err != nil {
		return Pet{}, err
	}

	return pet, nil
}
