// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package biometric

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/happydog/core/internal/objectstore"
	"github.com/happydog/core/internal/petcare"
	"github.com/happydog/core/internal/platform/apperr"
	"github.com/happydog/core/internal/platform/constants"
	"github.com/happydog/core/internal/platform/docstore"
	"github.com/happydog/core/internal/vectorindex"
)

// Service implements the Biometric Admission Engine (spec §4.7).
type Service struct {
	docs     *docstore.Store
	pets     *petcare.Store
	objects  *objectstore.Store
	index    *vectorindex.Index
	detector Detector
	embedder Embedder
	logger   *slog.Logger

	// decisionMu is the VectorIndex's single-writer lock at the
	// orchestration level: count, search, classify, the Pet-document
	// commit, and the vector insert must run as one critical section so
	// two concurrent admissions can never be handed the same ordinal_id.
	// vectorindex.Index.Add serializes the append+flush internally, but
	// that alone is not enough here because a DocStore transaction runs
	// between the search and the insert.
	decisionMu sync.Mutex
}

// NewService constructs a [Service] bound to every collaborator the
// admission pipeline spans.
func NewService(docs *docstore.Store, pets *petcare.Store, objects *objectstore.Store, index *vectorindex.Index, detector Detector, embedder Embedder, logger *slog.Logger) *Service {
	return &Service{
		docs:     docs,
		pets:     pets,
		objects:  objects,
		index:    index,
		detector: detector,
		embedder: embedder,
		logger:   logger,
	}
}

// AdmitInput carries admit_nose_print's caller-supplied fields (spec
// §4.7's Inputs).
type AdmitInput struct {
	PetID      string
	CallerID   string
	StagingKey string
}

/*
Admit runs the full nose-print admission pipeline for one Pet (spec
§4.7). The read phase (download, detect, extract) holds no lock at all;
the decision phase (count, search, classify, commit, insert) holds
[Service.decisionMu] for its entire duration.

The database commit always precedes the vector insert: a crash between
them leaves the index strictly smaller than the committed ordinal_ids, a
state a reconciliation pass (cmd/reconcile) can safely replay forward.
The reverse ordering would leave an ordinal_id with no owning Pet, which
nothing could ever recover.
*/
func (s *Service) Admit(ctx context.Context, in AdmitInput) (Result, error) {
	pet, err := s.pets.GetPet(ctx, in.PetID)
	if err != nil {
		return Result{}, err
	}
	if pet.OwnerUserID != in.CallerID {
		return Result{}, apperr.Forbidden("you do not own this pet")
	}
	if pet.IsVerified {
		return Result{Status: StatusAlreadyVerified, Message: "this pet already has a verified nose-print"}, nil
	}

	image, err := s.objects.Download(ctx, in.StagingKey)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.Code == "NOT_FOUND" {
			return Result{Status: StatusError, Message: "the staged nose-print image was not found"}, nil
		}
		return Result{}, err
	}

	candidate := image
	if crop, ok := s.detector.Detect(ctx, image); ok {
		candidate = crop
	} else {
		s.logger.Warn("biometric_detect_miss", slog.String("pet_id", in.PetID))
	}

	vector, err := s.embedder.Embed(ctx, candidate)
	if err != nil {
		return Result{}, apperr.Internal(fmt.Errorf("biometric: embed: %w", err))
	}

	return s.decide(ctx, in, pet, vector)
}

func (s *Service) decide(ctx context.Context, in AdmitInput, pet petcare.Pet, vector []float32) (Result, error) {
	s.decisionMu.Lock()
	defer s.decisionMu.Unlock()

	count := s.index.Count()
	if count > 0 {
		neighbors, err := s.index.Search(vector, 1)
		if err != nil {
			return Result{}, apperr.Internal(fmt.Errorf("biometric: search: %w", err))
		}
		if len(neighbors) > 0 {
			nearest := neighbors[0]
			switch classifyDistance(nearest.Distance) {
			case StatusDuplicate:
				return Result{
					Status:    StatusDuplicate,
					Message:   "this nose-print matches an already-registered pet",
					Distance:  &nearest.Distance,
					NearestID: ptrUint32(nearest.OrdinalID),
				}, nil
			case StatusInvalidImage:
				return Result{
					Status:   StatusInvalidImage,
					Message:  "this image does not look like a dog nose-print",
					Distance: &nearest.Distance,
				}, nil
			}
		}
	}

	ordinalID := uint32(count)

	publicURL, err := s.objects.MakePublic(ctx, in.StagingKey)
	if err != nil {
		return Result{}, err
	}

	err = s.docs.Transaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		return tx.Update(ctx, docstore.CollectionPets, pet.PetID, map[string]any{
			"is_verified":     true,
			"nose_print_url":  publicURL,
			"vector_index_id": ordinalID,
		})
	})
	if err != nil {
		return Result{}, err
	}

	if _, err := s.index.Add(vector); err != nil {
		s.logger.Error("biometric_vector_insert_failed", slog.String("pet_id", pet.PetID), slog.Any("err", err))
		return Result{Status: StatusError, Message: "nose-print verified but could not be indexed"}, nil
	}

	return Result{Status: StatusSuccess, Message: "nose-print verified"}, nil
}

// classifyDistance applies the duplicate/outlier thresholds from spec
// §4.7's classification table to a nearest-neighbor distance. It returns
// StatusSuccess for the "otherwise" row, meaning the caller should proceed
// to commit rather than short-circuit.
func classifyDistance(distance float64) Status {
	switch {
	case distance <= constants.DuplicateThreshold:
		return StatusDuplicate
	case distance >= constants.OutlierThreshold:
		return StatusInvalidImage
	default:
		return StatusSuccess
	}
}

func ptrUint32(v uint32) *uint32 { return &v }
