// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/happydog/core/internal/biometric"
	"github.com/happydog/core/internal/petcare"
	requestutil "github.com/happydog/core/internal/platform/request"
	"github.com/happydog/core/internal/platform/respond"
	"github.com/happydog/core/internal/users"
)

/*
PetsHandler implements the HTTP surface for pet registration and
biometric admission (spec §6.1's /api/pets group).

It fronts two collaborating services that must not depend on each other
directly: [petcare.Service] owns the Pet record, [biometric.Service] owns
the nose-print decision and already depends on petcare's store to read
Pet/write its verification fields. Composing both here, one layer above
either package, is what keeps that dependency one-directional.
*/
type PetsHandler struct {
	pets      *petcare.Service
	biometric *biometric.Service
	users     *users.Service
}

// NewPetsHandler constructs a new [PetsHandler].
func NewPetsHandler(pets *petcare.Service, biometricSvc *biometric.Service, usersSvc *users.Service) *PetsHandler {
	return &PetsHandler{pets: pets, biometric: biometricSvc, users: usersSvc}
}

// Routes returns the chi.Router for the authenticated /api/pets group.
func (handler *PetsHandler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.registerPet)
	router.Post("/{petID}/nose-print", handler.admitNosePrint)
	return router
}

type registerPetRequest struct {
	Name            string   `json:"name"`
	Gender          string   `json:"gender"`
	Breed           string   `json:"breed"`
	Birthdate       string   `json:"birthdate"`
	InitialWeightKg float64  `json:"initial_weight_kg"`
	FurColor        *string  `json:"fur_color"`
	HealthConcerns  []string `json:"health_concerns"`
}

/*
POST /api/pets.

Registers a new pet for the caller, deriving its care settings in the
same transaction (spec §4.9).
*/
func (handler *PetsHandler) registerPet(writer http.ResponseWriter, request *http.Request) {
	user, err := resolveCaller(request, handler.users)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input registerPetRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pet, err := handler.pets.RegisterPet(request.Context(), petcare.RegistrationInput{
		OwnerUserID:     user.UserID,
		Name:            input.Name,
		Gender:          petcare.Gender(input.Gender),
		Breed:           input.Breed,
		Birthdate:       input.Birthdate,
		InitialWeightKg: input.InitialWeightKg,
		FurColor:        input.FurColor,
		HealthConcerns:  input.HealthConcerns,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, pet)
}

type admitNosePrintRequest struct {
	StagingKey string `json:"staging_key"`
}

/*
POST /api/pets/{petID}/nose-print.

Submits a staged image for biometric admission (spec §4.7). The response
body always carries a status — SUCCESS, DUPLICATE, INVALID_IMAGE,
ALREADY_VERIFIED, or ERROR (the staged image is missing, or the index
insert failed after the Pet was committed) — rather than a bare error for
the outcomes a caller is expected to handle inline; only an unknown pet,
a caller who does not own the pet, or a genuine infrastructure failure
surfaces as a non-2xx response.
*/
func (handler *PetsHandler) admitNosePrint(writer http.ResponseWriter, request *http.Request) {
	user, err := resolveCaller(request, handler.users)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	petID := requestutil.ID(request, "petID")

	var input admitNosePrintRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.biometric.Admit(request.Context(), biometric.AdmitInput{
		PetID:      petID,
		CallerID:   user.UserID,
		StagingKey: input.StagingKey,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
