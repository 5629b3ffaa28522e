package inmem

import (
	"sort"
	"sync"

	"github.com/donorflow/server/model"
	"github.com/donorflow/server/persistence"
	"github.com/donorflow/server/util"
)

var _ persistence.FlowStorage = new(inMemFlowStorage)

// inMemFlowStorage keeps flows in process memory for the lifetime of the
// session. Stored and returned values are deep copies, so callers can
// mutate their drafts without touching the committed state.
type inMemFlowStorage struct {
	mu             sync.RWMutex
	flows          map[string]model.Flow
	encoderDecoder util.EncoderDecoder[model.Flow]
}

func NewInMemFlowStorage() *inMemFlowStorage {
	return &inMemFlowStorage{
		flows:          make(map[string]model.Flow),
		encoderDecoder: util.NewJsonEncoderDecoder[model.Flow](),
	}
}

func (s *inMemFlowStorage) Save(flow model.Flow) error {
	cp, err := util.DeepCopy[model.Flow](s.encoderDecoder, flow)
	if err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flows[flow.Id] = *cp
	return nil
}

func (s *inMemFlowStorage) Get(id string) (*model.Flow, error) {
	s.mu.RLock()
	flow, ok := s.flows[id]
	s.mu.RUnlock()
	if !ok {
		return nil, persistence.ErrNotFound
	}
	cp, err := util.DeepCopy[model.Flow](s.encoderDecoder, flow)
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return cp, nil
}

func (s *inMemFlowStorage) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, id)
	return nil
}

func (s *inMemFlowStorage) List() ([]model.Flow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	flows := make([]model.Flow, 0, len(s.flows))
	for _, flow := range s.flows {
		cp, err := util.DeepCopy[model.Flow](s.encoderDecoder, flow)
		if err != nil {
			return nil, persistence.StorageLayerError{Message: err.Error()}
		}
		flows = append(flows, *cp)
	}
	sort.Slice(flows, func(i, j int) bool {
		if flows[i].CreatedDate != flows[j].CreatedDate {
			return flows[i].CreatedDate < flows[j].CreatedDate
		}
		return flows[i].Name < flows[j].Name
	})
	return flows, nil
}
