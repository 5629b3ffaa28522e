package redis

import (
	"context"
	"errors"

	rd "github.com/go-redis/redis/v9"
	"github.com/donorflow/server/logger"
	"github.com/donorflow/server/model"
	"github.com/donorflow/server/persistence"
	"github.com/donorflow/server/util"
	"go.uber.org/zap"
)

var _ persistence.FlowStorage = new(redisFlowStorage)

const FLOW_DEF string = "FLOW"

type redisFlowStorage struct {
	*baseDao
	encoderDecoder util.EncoderDecoder[model.Flow]
}

func NewRedisFlowStorage(conf Config) *redisFlowStorage {
	return &redisFlowStorage{
		baseDao:        newBaseDao(conf),
		encoderDecoder: util.NewJsonEncoderDecoder[model.Flow](),
	}
}

func (rfs *redisFlowStorage) Save(flow model.Flow) error {
	key := rfs.baseDao.getNamespaceKey(FLOW_DEF)
	ctx := context.Background()
	data, err := rfs.encoderDecoder.Encode(flow)
	if err != nil {
		return err
	}
	if err := rfs.redisClient.HSet(ctx, key, []string{flow.Id, string(data)}).Err(); err != nil {
		logger.Error("error in saving flow", zap.String("flow", flow.Id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (rfs *redisFlowStorage) Get(id string) (*model.Flow, error) {
	key := rfs.baseDao.getNamespaceKey(FLOW_DEF)
	ctx := context.Background()
	val, err := rfs.redisClient.HGet(ctx, key, id).Result()
	if err != nil {
		if errors.Is(err, rd.Nil) {
			return nil, persistence.ErrNotFound
		}
		logger.Error("error in getting flow", zap.String("flow", id), zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	return rfs.encoderDecoder.Decode([]byte(val))
}

func (rfs *redisFlowStorage) Delete(id string) error {
	key := rfs.baseDao.getNamespaceKey(FLOW_DEF)
	ctx := context.Background()
	if err := rfs.redisClient.HDel(ctx, key, id).Err(); err != nil {
		logger.Error("error in deleting flow", zap.String("flow", id), zap.Error(err))
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (rfs *redisFlowStorage) List() ([]model.Flow, error) {
	key := rfs.baseDao.getNamespaceKey(FLOW_DEF)
	ctx := context.Background()
	vals, err := rfs.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		logger.Error("error in listing flows", zap.Error(err))
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	flows := make([]model.Flow, 0, len(vals))
	for _, val := range vals {
		flow, err := rfs.encoderDecoder.Decode([]byte(val))
		if err != nil {
			return nil, err
		}
		flows = append(flows, *flow)
	}
	return flows, nil
}
