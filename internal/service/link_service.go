package service

import (
	"context"
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"shrinklink/constant"
	"shrinklink/internal/apperrors"
	"shrinklink/internal/auth"
	"shrinklink/internal/dto"
	"shrinklink/internal/model"
	"shrinklink/internal/ratelimit"
	"shrinklink/internal/reachability"
	"shrinklink/internal/shortcode"
	"shrinklink/internal/store"
	"shrinklink/pkg/utils"
	"shrinklink/response"
)

// codeAttempts bounds collision retries for generated short codes.
const codeAttempts = 5

const defaultExpirationMonths = 3

// URLChecker probes a destination before a link is created.
type URLChecker interface {
	Validate(ctx context.Context, rawURL string) reachability.Result
}

// LinkService orchestrates validation, rate limiting, code generation,
// persistence and redirect resolution for short links.
type LinkService struct {
	links   store.LinkStore
	groups  store.GroupStore
	limiter ratelimit.Limiter
	checker URLChecker
	cache   linkCache
	pool    *redis.Pool

	generate func(length int) (string, error)
	now      func() time.Time
}

// NewLinkService wires the service. pool may be nil; caching and click
// buffering then degrade to direct store access.
func NewLinkService(links store.LinkStore, groups store.GroupStore, limiter ratelimit.Limiter, checker URLChecker, pool *redis.Pool) *LinkService {
	return &LinkService{
		links:    links,
		groups:   groups,
		limiter:  limiter,
		checker:  checker,
		cache:    linkCache{pool: pool},
		pool:     pool,
		generate: shortcode.Generate,
		now:      time.Now,
	}
}

// Create runs the full submission pipeline and returns the persisted link.
func (s *LinkService) Create(ctx context.Context, req dto.CreateLinkRequest, actor auth.Actor) (*model.Link, error) {
	if strings.TrimSpace(req.OriginalURL) == "" {
		return nil, apperrors.ValidationErrorDefault()
	}

	if !actor.Authenticated() {
		// Guests cannot set owner-only fields; expirationMonths is silently
		// pinned to the default further down instead of rejected.
		if req.Alias != "" || req.Description != "" || req.GroupID != nil {
			return nil, apperrors.Unauthenticated()
		}
		if result := s.limiter.Check(actor.ClientKey); !result.Allowed {
			zap.L().Info("Guest submission rate limited",
				zap.String("client_key", actor.ClientKey))
			return nil, apperrors.RateLimited()
		}
	}

	normalized := utils.NormalizeURL(req.OriginalURL)
	if utils.IsInsecure(normalized) {
		return nil, apperrors.InsecureScheme()
	}
	if err := utils.ValidateTargetURL(normalized); err != nil {
		return nil, apperrors.ValidationKeyed(err.Error())
	}

	code := ""
	if actor.Authenticated() && req.Alias != "" {
		if err := utils.ValidateAlias(req.Alias); err != nil {
			return nil, apperrors.InvalidAlias()
		}
		taken, err := s.links.ExistsByShortCode(ctx, req.Alias)
		if err != nil {
			return nil, apperrors.PersistenceError(err)
		}
		if taken {
			return nil, apperrors.AliasTaken()
		}
		code = req.Alias
	}

	if actor.Authenticated() && req.GroupID != nil {
		if err := s.ownedGroup(ctx, *req.GroupID, actor); err != nil {
			return nil, err
		}
	}

	if probe := s.checker.Validate(ctx, normalized); !probe.OK {
		return nil, apperrors.UnreachableURL(probe.Reason)
	}

	if code == "" {
		generated, err := s.uniqueCode(ctx)
		if err != nil {
			return nil, err
		}
		code = generated
	}

	months := defaultExpirationMonths
	if actor.Authenticated() && req.ExpirationMonths != 0 {
		months = req.ExpirationMonths
	}
	switch months {
	case 3, 6, 12:
	default:
		return nil, apperrors.ValidationErrorDefault()
	}

	link := &model.Link{
		ShortCode:   code,
		OriginalURL: normalized,
		Clicks:      0,
		Expiration:  s.now().AddDate(0, months, 0).Unix(),
		OwnerID:     actor.UserID,
	}
	if actor.Authenticated() {
		link.Description = strings.TrimSpace(req.Description)
		link.GroupID = req.GroupID
	}

	if err := s.links.Create(ctx, link); err != nil {
		// The unique index on short_code backstops the query-then-write
		// race on concurrent creations with the same code.
		zap.L().Warn("Link creation failed",
			zap.String("short_code", code),
			zap.Error(err))
		return nil, apperrors.PersistenceError(err)
	}

	s.cache.set(link)
	return link, nil
}

// uniqueCode generates a short code not yet present in the store, retrying
// on collision a bounded number of times.
func (s *LinkService) uniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := s.generate(shortcode.DefaultLength)
		if err != nil {
			return "", apperrors.PersistenceError(err)
		}
		taken, err := s.links.ExistsByShortCode(ctx, code)
		if err != nil {
			return "", apperrors.PersistenceError(err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", apperrors.CodeSpaceExhausted()
}

// Resolve looks up a short code for redirecting. On success the click
// increment is dispatched on its own goroutine and never awaited; a failed
// increment is logged and the redirect proceeds regardless.
func (s *LinkService) Resolve(ctx context.Context, shortCode string) (*model.Link, error) {
	link, found := s.cache.get(shortCode)
	if !found {
		var err error
		link, err = s.links.GetByShortCode(ctx, shortCode)
		if err != nil {
			return nil, apperrors.PersistenceError(err)
		}
		if link == nil {
			s.cache.setNegative(shortCode)
		} else {
			s.cache.set(link)
		}
	}
	if link == nil {
		return nil, apperrors.NotFound()
	}

	if link.Expired(s.now()) {
		return nil, apperrors.Expired()
	}

	go s.recordClick(link.ID, link.ShortCode)

	return link, nil
}

// recordClick buffers the increment in redis for the cron flusher; without
// redis (or when it errors) it falls back to a direct atomic add. Failures
// are swallowed so the redirect path is never blocked.
func (s *LinkService) recordClick(id uint, shortCode string) {
	if s.pool != nil {
		conn := s.pool.Get()
		defer closeConn(conn)
		if _, err := conn.Do("INCR", constant.GetPendingClicksKey(shortCode)); err == nil {
			return
		} else {
			zap.L().Warn("Failed to buffer click, falling back to direct add",
				zap.String("short_code", shortCode),
				zap.Error(err))
		}
	}
	if err := s.links.AddClicks(context.Background(), id, 1); err != nil {
		zap.L().Warn("Failed to record click",
			zap.Uint("id", id),
			zap.String("short_code", shortCode),
			zap.Error(err))
	}
}

// Update applies an owner-only partial update of destination, description
// or group. The destination is overwritten without a reachability re-check.
func (s *LinkService) Update(ctx context.Context, id uint, req dto.UpdateLinkRequest, actor auth.Actor) error {
	link, err := s.owned(ctx, id, actor)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if req.OriginalURL != nil {
		normalized := utils.NormalizeURL(*req.OriginalURL)
		if utils.IsInsecure(normalized) {
			return apperrors.InsecureScheme()
		}
		if err := utils.ValidateTargetURL(normalized); err != nil {
			return apperrors.ValidationKeyed(err.Error())
		}
		fields["original_url"] = normalized
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.GroupID != nil {
		if err := s.ownedGroup(ctx, *req.GroupID, actor); err != nil {
			return err
		}
		fields["group_id"] = *req.GroupID
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.links.UpdateFields(ctx, id, fields); err != nil {
		return apperrors.PersistenceError(err)
	}
	s.cache.invalidate(link.ShortCode)
	return nil
}

// Delete removes an owned link.
func (s *LinkService) Delete(ctx context.Context, id uint, actor auth.Actor) error {
	link, err := s.owned(ctx, id, actor)
	if err != nil {
		return err
	}
	if err := s.links.Delete(ctx, id); err != nil {
		return apperrors.PersistenceError(err)
	}
	s.cache.invalidate(link.ShortCode)
	s.cache.dropPending(link.ShortCode)
	return nil
}

// Get returns an owned link, for the QR endpoint.
func (s *LinkService) Get(ctx context.Context, id uint, actor auth.Actor) (*model.Link, error) {
	return s.owned(ctx, id, actor)
}

// List pages the owner's dashboard, optionally filtered by group or a
// short-code fragment.
func (s *LinkService) List(ctx context.Context, actor auth.Actor, page, size int, groupID *uint, q string) (*response.PageResponse[model.Link], error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	links, total, err := s.links.ListByOwner(ctx, actor.UserID, page, size, groupID, q)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	totalPage := (int(total) + size - 1) / size
	return &response.PageResponse[model.Link]{
		Page:      page,
		Size:      size,
		Total:     int(total),
		TotalPage: totalPage,
		List:      links,
	}, nil
}

// ownedGroup verifies the target group exists and belongs to the actor
// before a link may join it. Without this, a link attached to a foreign
// group would be swept up by that owner's cascade delete.
func (s *LinkService) ownedGroup(ctx context.Context, groupID uint, actor auth.Actor) error {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return apperrors.PersistenceError(err)
	}
	if group == nil {
		return apperrors.GroupNotFound()
	}
	if group.OwnerID != actor.UserID {
		return apperrors.Unauthorized()
	}
	return nil
}

func (s *LinkService) owned(ctx context.Context, id uint, actor auth.Actor) (*model.Link, error) {
	link, err := s.links.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	if link == nil {
		return nil, apperrors.NotFound()
	}
	if !actor.Authenticated() || link.OwnerID != actor.UserID {
		return nil, apperrors.Unauthorized()
	}
	return link, nil
}
