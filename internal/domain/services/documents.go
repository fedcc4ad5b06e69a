package services

import (
	"context"
	"fmt"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
	Logger "github.com/Urbanbaseprops/property-manager/pkg/logger"
)

// listDecoded reads a whole collection. Documents that no longer decode are logged and skipped.
func listDecoded[T any, PT models.Entity[T]](ctx context.Context, store docstore.Store, collection string) ([]T, error) {
	records, err := store.ListAll(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	items, errs := models.FromRecords[T, PT](records)
	for _, e := range errs {
		Logger.Warning("skipping %s document: %v", collection, e)
	}
	return items, nil
}

// queryDecoded is listDecoded over a single-field equality filter.
func queryDecoded[T any, PT models.Entity[T]](ctx context.Context, store docstore.Store, collection, field string, value interface{}) ([]T, error) {
	records, err := store.QueryEquals(ctx, collection, field, value)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	items, errs := models.FromRecords[T, PT](records)
	for _, e := range errs {
		Logger.Warning("skipping %s document: %v", collection, e)
	}
	return items, nil
}

// getDecoded reads one document.
func getDecoded[T any, PT models.Entity[T]](ctx context.Context, store docstore.Store, collection, id string) (*T, error) {
	record, err := store.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	v, err := models.FromRecord[T, PT](record)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// insertEntity stores an entity and returns it with its new id.
func insertEntity[T any, PT models.Entity[T]](ctx context.Context, store docstore.Store, collection string, entity T) (*T, error) {
	fields, err := models.ToFields(entity)
	if err != nil {
		return nil, err
	}
	id, err := store.Insert(ctx, collection, fields)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", collection, err)
	}
	PT(&entity).SetID(id)
	return &entity, nil
}
