// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package petcare implements the Pet & Care Profile component (spec.md
§4.9): pet registration with its derived care-settings formulas, and the
CareRecord log that feeds the daily water/activity/meal counters.
*/
package petcare

import "time"

// Gender enumerates Pet.gender.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Pet is the registered animal a User owns (spec §3). is_verified is owned
// by the Biometric Admission Engine (C7), never written here directly.
type Pet struct {
	PetID           string    `json:"pet_id"`
	OwnerUserID     string    `json:"owner_user_id"`
	Name            string    `json:"name"`
	Gender          Gender    `json:"gender"`
	Breed           string    `json:"breed"`
	Birthdate       time.Time `json:"birthdate"`
	InitialWeightKg float64   `json:"initial_weight_kg"`
	IsVerified      bool      `json:"is_verified"`
	NosePrintURL    *string   `json:"nose_print_url,omitempty"`
	VectorIndexID   *uint32   `json:"vector_index_id,omitempty"`
	FurColor        *string   `json:"fur_color,omitempty"`
	HealthConcerns  []string  `json:"health_concerns"`
}

// Snapshot is the denormalized copy embedded into Post.pet.
type Snapshot struct {
	PetID  string `json:"pet_id"`
	Name   string `json:"name"`
	Breed  string `json:"breed"`
	Gender Gender `json:"gender"`
}

// ToSnapshot captures p's denormalizable fields.
func (p Pet) ToSnapshot() Snapshot {
	return Snapshot{PetID: p.PetID, Name: p.Name, Breed: p.Breed, Gender: p.Gender}
}

// CareSettings is PetCareSettings (spec §3): computed once at registration
// and not changed afterwards; the increment operations in records.go
// update CareRecord documents, not these settings.
type CareSettings struct {
	PetID                     string  `json:"pet_id"`
	GoalWeightKg              float64 `json:"goal_weight_kg"`
	WaterBowlCapacityMl       int     `json:"water_bowl_capacity_ml"`
	WaterIncrementMl          int     `json:"water_increment_ml"`
	GoalActivityMinutes       int     `json:"goal_activity_minutes"`
	ActivityIncrementMinutes  int     `json:"activity_increment_minutes"`
	GoalMealCount             int     `json:"goal_meal_count"`
	MealIncrementCount        int     `json:"meal_increment_count"`
}

// RecordType enumerates CareRecord.record_type.
type RecordType string

const (
	RecordWeight   RecordType = "weight"
	RecordWater    RecordType = "water"
	RecordActivity RecordType = "activity"
	RecordMeal     RecordType = "meal"
)

// CareRecord is one logged event for a Pet (spec §3).
type CareRecord struct {
	LogID      string     `json:"log_id"`
	PetID      string     `json:"pet_id"`
	RecordType RecordType `json:"record_type"`
	EventTime  time.Time  `json:"event_time"`
	SearchDate string     `json:"search_date"`
	Data       float64    `json:"data"`
	Notes      *string    `json:"notes,omitempty"`
}
