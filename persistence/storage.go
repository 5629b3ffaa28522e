package persistence

import (
	"errors"
	"fmt"

	"github.com/donorflow/server/model"
)

type StorageLayerError struct {
	Message string
}

func (e StorageLayerError) Error() string {
	return fmt.Sprintf("storage layer error %s", e.Message)
}

// ErrNotFound is returned on lookup of a flow id that is not stored.
var ErrNotFound = errors.New("flow not found")

type FlowStorage interface {
	Save(flow model.Flow) error

	Get(id string) (*model.Flow, error)

	Delete(id string) error

	List() ([]model.Flow, error)
}
