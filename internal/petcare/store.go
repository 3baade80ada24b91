// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package petcare

import (
	"context"

	"github.com/happydog/core/internal/platform/docstore"
)

// Store persists Pet, PetCareSettings, and CareRecord documents.
//
// PetCareSettings is kept in its own "pet_care_settings" collection, keyed
// by pet_id, rather than nested inside the Pet document itself, mirroring
// the original system's separate Firestore subcollection. It is written
// once, in the same transaction as its Pet (spec §3).
type Store struct {
	docs *docstore.Store
}

// NewStore constructs a [Store] bound to a shared docstore handle.
func NewStore(docs *docstore.Store) *Store {
	return &Store{docs: docs}
}

const collectionCareSettings = "pet_care_settings"

// GetPet fetches a Pet by id.
func (s *Store) GetPet(ctx context.Context, petID string) (Pet, error) {
	return docstore.Get[Pet](ctx, s.docs, docstore.CollectionPets, petID)
}

// FindFirstPetByOwner returns the first Pet owned by userID. The social
// graph surface assumes one pet per user (spec §4.6.1); this helper
// implements that "first match" lookup.
func (s *Store) FindFirstPetByOwner(ctx context.Context, userID string) (Pet, error) {
	result, err := docstore.Query[Pet](ctx, s.docs, docstore.CollectionPets, docstore.QueryParams{
		Filters: []docstore.Filter{{Field: "owner_user_id", Op: docstore.OpEq, Value: userID}},
		OrderBy: "pet_id",
		Limit:   1,
	})
	if err != nil {
		return Pet{}, err
	}
	if len(result.Items) == 0 {
		return Pet{}, docstore.ErrNoMatch
	}
	return result.Items[0], nil
}

// GetCareSettings fetches the PetCareSettings for petID.
func (s *Store) GetCareSettings(ctx context.Context, petID string) (CareSettings, error) {
	return docstore.Get[CareSettings](ctx, s.docs, collectionCareSettings, petID)
}

// CountVerified returns the number of Pet documents with is_verified=true,
// the reference cardinality a VectorIndex consistency self-check compares
// against its own entry count (spec §4.7).
func (s *Store) CountVerified(ctx context.Context) (int64, error) {
	return docstore.Count(ctx, s.docs, docstore.CollectionPets, []docstore.Filter{
		{Field: "is_verified", Op: docstore.OpEq, Value: true},
	})
}

// ListVerified returns one page of verified Pet documents ordered by
// pet_id, for cmd/reconcile's full-table replay scan.
func (s *Store) ListVerified(ctx context.Context, cursor string, limit int) (docstore.QueryResult[Pet], error) {
	return docstore.Query[Pet](ctx, s.docs, docstore.CollectionPets, docstore.QueryParams{
		Filters: []docstore.Filter{{Field: "is_verified", Op: docstore.OpEq, Value: true}},
		OrderBy: "pet_id",
		Cursor:  cursor,
		Limit:   limit,
	})
}

// SavePet overwrites a Pet document in place, used by cmd/reconcile to
// patch a replayed vector_index_id back onto its Pet.
func (s *Store) SavePet(ctx context.Context, pet Pet) error {
	return docstore.Set(ctx, s.docs, docstore.CollectionPets, pet.PetID, pet)
}

// CreateCareRecord writes a new CareRecord.
func (s *Store) CreateCareRecord(ctx context.Context, record CareRecord) error {
	return docstore.Set(ctx, s.docs, docstore.CollectionCareRecords, record.LogID, record)
}

// ListCareRecordsByDate returns every CareRecord for petID on searchDate.
func (s *Store) ListCareRecordsByDate(ctx context.Context, petID, searchDate string) ([]CareRecord, error) {
	result, err := docstore.Query[CareRecord](ctx, s.docs, docstore.CollectionCareRecords, docstore.QueryParams{
		Filters: []docstore.Filter{
			{Field: "pet_id", Op: docstore.OpEq, Value: petID},
			{Field: "search_date", Op: docstore.OpEq, Value: searchDate},
		},
		OrderBy: "event_time",
		Limit:   100,
	})
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}
