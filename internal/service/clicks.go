package service

import (
	"context"
	"strconv"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"shrinklink/constant"
)

// FlushClicks drains the buffered redis click counters into the store with
// one atomic add per link. GETDEL keeps fetch-and-reset atomic, so a crash
// between the fetch and the store write can only under-count, never double.
// Wired to a cron schedule in main.
func (s *LinkService) FlushClicks() error {
	if s.pool == nil {
		return nil
	}

	links, err := s.links.ListAll(context.Background())
	if err != nil {
		zap.L().Error("Failed to list links for click flush", zap.Error(err))
		return err
	}

	conn := s.pool.Get()
	defer closeConn(conn)

	for _, link := range links {
		key := constant.GetPendingClicksKey(link.ShortCode)
		raw, err := redis.String(conn.Do("GETDEL", key))
		if err != nil {
			if err != redis.ErrNil {
				zap.L().Warn("Failed to drain click counter",
					zap.String("key", key),
					zap.Error(err))
			}
			continue
		}
		pending, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || pending <= 0 {
			continue
		}
		if err := s.links.AddClicks(context.Background(), link.ID, pending); err != nil {
			zap.L().Error("Failed to persist drained clicks",
				zap.Uint("id", link.ID),
				zap.Int64("pending", pending),
				zap.Error(err))
		}
	}
	return nil
}
