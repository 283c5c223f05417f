package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bucket-metrics/internal/models"
	"bucket-metrics/internal/shared/filestorages"
)

var (
	ErrIntakeBatchAlreadyExist = errors.New("intake batch already exists")
)

// IntakeBatchStore records each delivered bucket batch exactly once. Put uses the file storage's
// create-if-not-exists publish, so of two deliveries with the same batch id only the first is
// accepted and the second gets ErrIntakeBatchAlreadyExist. Delete releases a recorded batch
// whose buckets never made it onto the queue, so its delivery can be retried.
//
//go:generate mockgen -source=intake_batch_store.go -destination=./mocks/intake_batch_store_mock.go -package=mocks
type IntakeBatchStore interface {
	Put(ctx context.Context, batch *models.IntakeBatch) error
	Delete(ctx context.Context, batch *models.IntakeBatch) error
}

type intakeBatchStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewIntakeBatchStore(fileStorage filestorages.FileStorage) IntakeBatchStore {
	return &intakeBatchStore{fileStorage: fileStorage, dir: "intake-batches"}
}

func (s *intakeBatchStore) Put(ctx context.Context, batch *models.IntakeBatch) error {
	key, err := s.batchKey(batch)
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal intake batch: %w", err)
	}

	_, err = s.fileStorage.Put(ctx, key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrIntakeBatchAlreadyExist
		}
		return fmt.Errorf("failed to put intake batch: %w", err)
	}
	return nil
}

func (s *intakeBatchStore) Delete(ctx context.Context, batch *models.IntakeBatch) error {
	key, err := s.batchKey(batch)
	if err != nil {
		return err
	}
	if err := s.fileStorage.Delete(ctx, key); err != nil && !errors.Is(err, filestorages.ErrFileNotFound) {
		return fmt.Errorf("failed to delete intake batch: %w", err)
	}
	return nil
}

func (s *intakeBatchStore) batchKey(batch *models.IntakeBatch) (string, error) {
	account, err := pathSegment(batch.AccountID)
	if err != nil {
		return "", err
	}
	batchID, err := pathSegment(batch.BatchID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s.json", s.dir, account, batchID), nil
}
